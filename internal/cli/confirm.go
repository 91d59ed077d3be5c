package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInputCancelled is returned when a prompt is abandoned because ctx ended.
var ErrInputCancelled = errors.New("input canceled")

type answer struct {
	err  error
	text string
}

// Confirmer asks yes/no questions on a terminal.
type Confirmer struct {
	in     *bufio.Reader
	writer io.Writer
	// pending holds a read that outlived a canceled prompt.
	pending chan answer
}

// NewConfirmer creates a Confirmer reading answers from in.
func NewConfirmer(in io.Reader, out io.Writer) *Confirmer {
	if in == nil {
		panic("confirmer input cannot be nil")
	}
	return &Confirmer{in: bufio.NewReader(in), writer: out}
}

// Confirm prints question and reports whether the answer was yes.
// Anything other than y or yes, including end of input, counts as no.
func (c *Confirmer) Confirm(ctx context.Context, question string) (bool, error) {
	if _, err := fmt.Fprint(c.writer, FormatPrompt(question+" [y/N]")); err != nil {
		return false, err
	}

	reply, err := c.readAnswer(ctx)
	if errors.Is(err, io.EOF) && reply == "" {
		return false, nil
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	switch strings.ToLower(reply) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// readAnswer reads one trimmed line. Terminal reads cannot be interrupted, so
// the read runs in its own goroutine and a canceled prompt leaves it pending
// for the next question.
func (c *Confirmer) readAnswer(ctx context.Context) (string, error) {
	if c.pending == nil {
		c.pending = make(chan answer, 1)
		go func(ch chan<- answer) {
			line, err := c.in.ReadString('\n')
			ch <- answer{text: strings.TrimSpace(line), err: err}
		}(c.pending)
	}

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case a := <-c.pending:
		c.pending = nil
		return a.text, a.err
	}
}
