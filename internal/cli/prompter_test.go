package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewPrompter(strings.NewReader(input), out), out
}

func TestReadIntSingleAttempt(t *testing.T) {
	p, _ := newTestPrompter("abc\n")
	_, err := p.ReadInt("qty: ")
	require.ErrorIs(t, err, ErrInvalidInput)

	p, _ = newTestPrompter("42\n")
	n, err := p.ReadInt("qty: ")
	require.NoError(t, err)
	require.Equal(t, 42, n)
}

func TestReadIntRetryLoopsUntilNumeric(t *testing.T) {
	p, out := newTestPrompter("abc\n\n7\n")
	n, err := p.ReadIntRetry("qty: ")
	require.NoError(t, err)
	require.Equal(t, 7, n)
	require.Contains(t, out.String(), "Please enter a valid number.")
}

func TestReadChoiceRejectsInvalidOptions(t *testing.T) {
	p, out := newTestPrompter("x\n9\n2\n")
	n, err := p.ReadChoice("choice: ", 1, 2, 3)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Contains(t, out.String(), "Please enter a valid option.")
}

func TestReadYesNo(t *testing.T) {
	p, _ := newTestPrompter("maybe\nYES\n")
	ok, err := p.ReadYesNo("continue?")
	require.NoError(t, err)
	require.True(t, ok)

	p, _ = newTestPrompter("n\n")
	ok, err = p.ReadYesNo("continue?")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReadPhoneRequiresTenDigits(t *testing.T) {
	p, out := newTestPrompter("12ab\n98123456789\n9812345678\n")
	phone, err := p.ReadPhone("phone: ")
	require.NoError(t, err)
	require.Equal(t, "9812345678", phone)
	require.Contains(t, out.String(), "Invalid phone number.")
}

func TestReadDecimal(t *testing.T) {
	p, _ := newTestPrompter("12.5\n")
	d, err := p.ReadDecimal("price: ")
	require.NoError(t, err)
	require.Equal(t, "12.5", d.String())

	p, _ = newTestPrompter("-5\n")
	_, err = p.ReadDecimal("price: ")
	require.ErrorIs(t, err, ErrInvalidInput)

	p, _ = newTestPrompter("abc\n")
	_, err = p.ReadDecimal("price: ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestReadLineExhaustedInput(t *testing.T) {
	p, _ := newTestPrompter("")
	_, err := p.ReadLine("name: ")
	require.ErrorIs(t, err, io.EOF)
}
