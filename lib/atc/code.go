package atc

import (
	"errors"
	"fmt"
	"regexp"
)

// ATC codes are hierarchical: an anatomical group letter, then optionally
// a two digit therapeutic group, a pharmacological group letter, a
// chemical group letter and a two digit substance number. A prefix ending
// at any level is itself a valid code, e.g. "N", "N06", "N06A", "N06AB",
// "N06AB04".
var codePattern = regexp.MustCompile(`^[A-Z]([0-9]{2}([A-Z]([A-Z]([0-9]{2})?)?)?)?$`)

// Level reports the hierarchy depth of a syntactically valid code,
// from 1 (anatomical group) to 5 (chemical substance).
func Level(code string) int {
	switch len(code) {
	case 1:
		return 1
	case 3:
		return 2
	case 4:
		return 3
	case 5:
		return 4
	case 7:
		return 5
	}
	return 0
}

// ValidateCode checks a classification code against the ATC grammar.
func ValidateCode(code string) error {
	if code == "" {
		return errors.New("atc code is empty")
	}
	if !codePattern.MatchString(code) {
		return fmt.Errorf("%q does not match the atc code grammar", code)
	}
	return nil
}
