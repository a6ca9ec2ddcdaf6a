package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// New creates a Prompter. Typical callers pass os.Stdin and os.Stdout.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Line prints the question and returns the trimmed answer line.
// EOF or a read error returns an empty string.
func (p *Prompter) Line(question string) string {
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		return ""
	}
	return strings.TrimSpace(p.in.Text())
}

// YesNo asks a yes/no question. Only an answer of exactly "y"
// (case-insensitive) counts as yes; anything else, including EOF, is no.
func (p *Prompter) YesNo(question string) bool {
	return strings.EqualFold(p.Line(question), "y")
}

// IntOrDefault asks for a number. An empty answer keeps the default.
// A non-numeric answer warns and keeps the default rather than re-asking,
// so a single bad keystroke never stalls the run.
func (p *Prompter) IntOrDefault(question string, def int) int {
	answer := p.Line(question)
	if answer == "" {
		return def
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		fmt.Fprintf(p.out, "Invalid number, using default of %d\n", def)
		return def
	}
	return n
}
