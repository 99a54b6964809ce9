package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

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
	assert.ErrorIs(t, err, io.EOF)
}

func TestGetTextWithDefault(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		def        string
		want       string
		wantPrompt string
	}{
		{name: "enter keeps default", input: "\n", def: "asha@example.com", want: "asha@example.com", wantPrompt: "Email [asha@example.com]\n> "},
		{name: "typed value wins", input: "ravi@example.com\n", def: "asha@example.com", want: "ravi@example.com", wantPrompt: "Email [asha@example.com]\n> "},
		{name: "no default", input: "\n", def: "", want: "", wantPrompt: "Email\n> "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetTextWithDefault(rdr(tc.input), "Email", tc.def, &out)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantPrompt, out.String())
		})
	}
}

func stubTerminal(t *testing.T, terminal bool, pw []byte, err error) {
	t.Helper()
	origIs, origRead := isTerminal, readPassword
	isTerminal = func(int) bool { return terminal }
	readPassword = func(int) ([]byte, error) { return pw, err }
	t.Cleanup(func() {
		isTerminal = origIs
		readPassword = origRead
	})
}

func TestGetPassword_Terminal(t *testing.T) {
	stubTerminal(t, true, []byte("s3cret"), nil)

	var out bytes.Buffer
	pw, err := GetPassword(rdr("ignored\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), pw)
	assert.Equal(t, "Enter password: \n", out.String())
}

func TestGetPassword_Error(t *testing.T) {
	stubTerminal(t, true, nil, errors.New("boom"))

	var out bytes.Buffer
	_, err := GetPassword(rdr(""), &out)
	require.Error(t, err)
}

func TestGetPassword_PipedInput(t *testing.T) {
	stubTerminal(t, false, nil, errors.New("must not be called"))

	var out bytes.Buffer
	pw, err := GetPassword(rdr("piped-pass\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("piped-pass"), pw)
}
