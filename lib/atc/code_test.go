package atc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateCode(t *testing.T) {
	testCases := []struct {
		code  string
		level int
		bad   bool
	}{
		{code: "N", level: 1},
		{code: "N06", level: 2},
		{code: "N06A", level: 3},
		{code: "N06AB", level: 4},
		{code: "N06AB04", level: 5},
		{code: "A10BA02", level: 5},
		{code: "", bad: true},
		{code: "n06ab", bad: true},
		{code: "6N0AB", bad: true},
		{code: "N6", bad: true},
		{code: "N06A1", bad: true},
		{code: "N06AB4", bad: true},
		{code: "N06AB043", bad: true},
		{code: "N06 AB", bad: true},
	}

	for _, test := range testCases {
		err := ValidateCode(test.code)
		if test.bad {
			require.Error(t, err, "code %q", test.code)
			continue
		}
		require.NoError(t, err, "code %q", test.code)
		require.Equal(t, test.level, Level(test.code), "code %q", test.code)
	}
}
