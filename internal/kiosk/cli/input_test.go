package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/dmitrijs2005/drinkkiosk/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  hello world \n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "y\n", true},
		{"full yes mixed case", "Yes\n", true},
		{"no", "n\n", false},
		{"empty means no", "\n", false},
		{"asks again on garbage", "maybe\nyes\n", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := Confirm(rdr(tc.input), "Delete?", &out)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestConfirm_EOF(t *testing.T) {
	var out bytes.Buffer
	_, err := Confirm(rdr(""), "Delete?", &out)
	require.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	for _, s := range []string{"0", "1.5", "$2.00", " 99999 "} {
		_, err := ParseAmount(s)
		require.NoError(t, err, s)
	}

	d, err := ParseAmount("$1.25")
	require.NoError(t, err)
	assert.Equal(t, "1.25", d.StringFixed(2))

	for _, s := range []string{"", "abc", "1.234"} {
		_, err := ParseAmount(s)
		require.ErrorIs(t, err, common.ErrInvalidAmount, s)
	}
}
