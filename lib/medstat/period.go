package medstat

import (
	"fmt"
	"strconv"
	"time"
)

// Period identifies one reporting period on the portal. Month is zero for
// annual figures, which is the portal's default granularity.
type Period struct {
	Year  int
	Month time.Month
}

func AnnualPeriod(year int) Period {
	return Period{Year: year}
}

func MonthlyPeriod(year int, month time.Month) Period {
	return Period{Year: year, Month: month}
}

// ParsePeriod accepts the portal's period tokens: "YYYY" for annual
// figures and "YYYYMM" for monthly ones.
func ParsePeriod(s string) (Period, error) {
	switch len(s) {
	case 4:
		year, err := strconv.Atoi(s)
		if err != nil {
			break
		}
		return Period{Year: year}, nil
	case 6:
		year, err := strconv.Atoi(s[:4])
		if err != nil {
			break
		}
		month, err := strconv.Atoi(s[4:])
		if err != nil || month < 1 || month > 12 {
			break
		}
		return Period{Year: year, Month: time.Month(month)}, nil
	}
	return Period{}, fmt.Errorf("bad period token %q", s)
}

func (p Period) String() string {
	if p.Month == 0 {
		return fmt.Sprintf("%04d", p.Year)
	}
	return fmt.Sprintf("%04d%02d", p.Year, int(p.Month))
}

// Compare orders periods chronologically; an annual period sorts before
// the months of the same year.
func (p Period) Compare(q Period) int {
	pk := p.Year*100 + int(p.Month)
	qk := q.Year*100 + int(q.Month)
	switch {
	case pk < qk:
		return -1
	case pk > qk:
		return 1
	}
	return 0
}

func (p Period) Before(q Period) bool {
	return p.Compare(q) < 0
}

func (p Period) After(q Period) bool {
	return p.Compare(q) > 0
}
