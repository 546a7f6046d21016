// Package prompt asks the user for the arguments of main.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"

	"saltino/pkg/ast"
	"saltino/pkg/color"
	"saltino/pkg/interpreter"

	"github.com/peterh/liner"
)

var ErrAborted = errors.New("argument input aborted")

// LineReader reads one line of input after showing a prompt
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// Prompter reads argument values one parameter at a time, asking again
// after an invalid entry.
type Prompter struct {
	in      LineReader
	out     io.Writer
	history func(string)
	close   func() error
}

// New returns a Prompter on the terminal
func New() *Prompter {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)

	return &Prompter{
		in:      ln,
		out:     os.Stdout,
		history: ln.AppendHistory,
		close:   ln.Close,
	}
}

// NewWithReader returns a Prompter reading from r and reporting to out
func NewWithReader(r LineReader, out io.Writer) *Prompter {
	return &Prompter{in: r, out: out}
}

// Close restores the terminal
func (p *Prompter) Close() error {
	if p.close == nil {
		return nil
	}
	return p.close()
}

// Args asks for a value for every parameter of fn
func (p *Prompter) Args(fn *ast.Function) ([]interpreter.Value, error) {
	args := make([]interpreter.Value, 0, len(fn.Params))

	for _, param := range fn.Params {
		for {
			line, err := p.in.Prompt(fmt.Sprintf("%s = ", param))
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				return nil, ErrAborted
			}
			if err != nil {
				return nil, err
			}

			v, err := ParseValue(line)
			if err != nil {
				fmt.Fprintln(p.out, color.RedText(err.Error()))
				continue
			}

			if p.history != nil {
				p.history(line)
			}
			args = append(args, v)
			break
		}
	}

	return args, nil
}
