package atc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDictionary(t *testing.T) {
	dict, err := LoadDictionary("testdata/dictionary.json5")
	require.NoError(t, err)
	require.Greater(t, dict.Len(), 0)

	label, ok := dict.Label("N06AB")
	require.True(t, ok)
	require.Equal(t, "Selective serotonin reuptake inhibitors", label)

	_, ok = dict.Label("A10")
	require.False(t, ok)
}

func TestNewDictionaryRejectsBadCodes(t *testing.T) {
	_, err := NewDictionary(map[string]string{
		"not a code": "Something",
	})
	require.Error(t, err)
}

func TestDictionarySearch(t *testing.T) {
	dict, err := LoadDictionary("testdata/dictionary.json5")
	require.NoError(t, err)

	code, label, ok := dict.Search("antidepressants")
	require.True(t, ok)
	require.Equal(t, "N06A", code)
	require.Equal(t, "Antidepressants", label)

	code, _, ok = dict.Search("citalopram")
	require.True(t, ok)
	require.Equal(t, "N06AB04", code)
}

func TestDictionarySearchEmpty(t *testing.T) {
	dict, err := NewDictionary(nil)
	require.NoError(t, err)

	_, _, ok := dict.Search("anything")
	require.False(t, ok)
}

func TestDictionaryWriteTo(t *testing.T) {
	dict, err := LoadDictionary("testdata/dictionary.json5")
	require.NoError(t, err)

	var out strings.Builder
	dict.WriteTo(&out)
	require.Contains(t, out.String(), "N06AB")
	require.Contains(t, out.String(), "Selective serotonin reuptake inhibitors")
}
