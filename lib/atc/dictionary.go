package atc

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"medstat/lib/configutil"

	"github.com/antzucaro/matchr"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Dictionary maps classification codes to their human readable labels.
// It is loaded once at startup and never mutated afterwards; pass it
// explicitly to whatever needs code labelling.
type Dictionary struct {
	labels map[string]string
}

type dictionaryFile struct {
	Codes map[string]string `json:"codes"`
}

// LoadDictionary reads a code -> label dictionary from a json5 file of
// the shape { codes: { "N06A": "Antidepressants", ... } }. Every key is
// validated against the code grammar.
func LoadDictionary(path string) (Dictionary, error) {
	file, err := configutil.ReadConfig[dictionaryFile](path)
	if err != nil {
		return Dictionary{}, err
	}
	for code := range file.Codes {
		if err := ValidateCode(code); err != nil {
			return Dictionary{}, fmt.Errorf("dictionary %s: %w", path, err)
		}
	}
	return Dictionary{labels: file.Codes}, nil
}

func NewDictionary(labels map[string]string) (Dictionary, error) {
	for code := range labels {
		if err := ValidateCode(code); err != nil {
			return Dictionary{}, err
		}
	}
	copied := make(map[string]string, len(labels))
	for code, label := range labels {
		copied[code] = label
	}
	return Dictionary{labels: copied}, nil
}

func (d Dictionary) Len() int {
	return len(d.labels)
}

// Label returns the human readable label for a code.
func (d Dictionary) Label(code string) (string, bool) {
	label, ok := d.labels[code]
	return label, ok
}

// Codes returns every known code, sorted.
func (d Dictionary) Codes() []string {
	codes := make([]string, 0, len(d.labels))
	for code := range d.labels {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Search finds the code whose label is closest to the given name by
// Levenshtein distance. Reports false when the dictionary is empty.
func (d Dictionary) Search(name string) (string, string, bool) {
	bestCode := ""
	bestLabel := ""
	bestDistance := -1
	for _, code := range d.Codes() {
		label := d.labels[code]
		distance := matchr.Levenshtein(
			strings.ToLower(name),
			strings.ToLower(label),
		)
		if bestDistance < 0 || distance < bestDistance {
			bestCode = code
			bestLabel = label
			bestDistance = distance
		}
	}
	if bestDistance < 0 {
		return "", "", false
	}
	return bestCode, bestLabel, true
}

// WriteTo renders the dictionary as a two column table.
func (d Dictionary) WriteTo(w io.Writer) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Code", "Label"})
	for _, code := range d.Codes() {
		tw.AppendRow(table.Row{code, d.labels[code]})
	}
	tw.Render()
}
