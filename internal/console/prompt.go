package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter reads console input line by line. Malformed numeric input is a
// validation error returned to the caller; the current operation aborts with
// no partial effect and the menu loop continues.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewPrompter creates a Prompter over the given input and output streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Printf writes formatted output to the console.
func (p *Prompter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

// ReadLine prompts and returns one trimmed line.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadInt prompts for an integer.
func (p *Prompter) ReadInt(prompt string) (int, error) {
	line, err := p.ReadLine(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", line)
	}
	return n, nil
}

// ReadFloat prompts for a decimal number.
func (p *Prompter) ReadFloat(prompt string) (float64, error) {
	line, err := p.ReadLine(prompt)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", line)
	}
	return f, nil
}

// ReadOptionalInt prompts for an integer; an empty line means "keep current"
// and returns nil.
func (p *Prompter) ReadOptionalInt(prompt string) (*int, error) {
	line, err := p.ReadLine(prompt)
	if err != nil {
		return nil, err
	}
	if line == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return nil, fmt.Errorf("%q is not a whole number", line)
	}
	return &n, nil
}

// ReadOptionalFloat prompts for a decimal; an empty line returns nil.
func (p *Prompter) ReadOptionalFloat(prompt string) (*float64, error) {
	line, err := p.ReadLine(prompt)
	if err != nil {
		return nil, err
	}
	if line == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", line)
	}
	return &f, nil
}

// ReadOptionalString prompts for a line; an empty line returns nil.
func (p *Prompter) ReadOptionalString(prompt string) (*string, error) {
	line, err := p.ReadLine(prompt)
	if err != nil {
		return nil, err
	}
	if line == "" {
		return nil, nil
	}
	return &line, nil
}
