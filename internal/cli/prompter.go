// Package cli wraps the blocking console dialogue behind explicit
// parse-and-validate calls. Single-attempt readers return ErrInvalidInput on
// bad entries so each workflow can apply its own retry policy; the Retry and
// choice helpers loop indefinitely until the operator types something usable.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrInvalidInput marks a non-numeric or out-of-range entry.
var ErrInvalidInput = errors.New("cli: invalid input")

// Prompter drives one console dialogue over an input/output pair.
type Prompter struct {
	in       *bufio.Scanner
	out      io.Writer
	validate *validator.Validate
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:       bufio.NewScanner(in),
		out:      out,
		validate: validator.New(),
	}
}

// Printf writes to the console.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a line to the console.
func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// ReadLine prints the prompt and returns the next input line, trimmed.
// It fails only when the input is exhausted.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("cli: read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// ReadInt reads a single integer entry. A non-numeric entry fails with
// ErrInvalidInput; the caller decides whether to retry.
func (p *Prompter) ReadInt(prompt string) (int, error) {
	text, err := p.ReadLine(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, text)
	}
	return n, nil
}

// ReadIntRetry re-prompts until a numeric entry arrives.
func (p *Prompter) ReadIntRetry(prompt string) (int, error) {
	for {
		n, err := p.ReadInt(prompt)
		if errors.Is(err, ErrInvalidInput) {
			p.Println("Please enter a valid number.")
			continue
		}
		return n, err
	}
}

// ReadDecimal reads a single non-negative decimal entry, single attempt.
func (p *Prompter) ReadDecimal(prompt string) (decimal.Decimal, error) {
	text, err := p.ReadLine(prompt)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, text)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s is negative", ErrInvalidInput, d)
	}
	return d, nil
}

// ReadChoice re-prompts until one of the valid options is entered.
func (p *Prompter) ReadChoice(prompt string, valid ...int) (int, error) {
	for {
		n, err := p.ReadInt(prompt)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				p.Println("Please enter a valid option.")
				continue
			}
			return 0, err
		}
		for _, v := range valid {
			if n == v {
				return n, nil
			}
		}
		p.Println("Please enter a valid option.")
	}
}

// ReadYesNo re-prompts until the operator answers y/yes or n/no.
func (p *Prompter) ReadYesNo(prompt string) (bool, error) {
	for {
		text, err := p.ReadLine(prompt + " (y/n): ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(text) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.Println("Invalid input. Please try again.")
	}
}

// ReadPhone re-prompts until a phone number of exactly ten digits is entered.
func (p *Prompter) ReadPhone(prompt string) (string, error) {
	for {
		text, err := p.ReadLine(prompt)
		if err != nil {
			return "", err
		}
		if p.validate.Var(text, "len=10,number") != nil {
			p.Println("Invalid phone number. It must be exactly 10 digits.")
			continue
		}
		return text, nil
	}
}
