package command

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// ErrNoTerminal is returned when an interactive prompt runs without a terminal
var ErrNoTerminal = errors.New("interactive input requires a terminal")

// TerminalPrompt asks yes/no questions on in and out. At most one read of in
// is in flight; an answer typed after a cancelled Confirm goes to the next one.
type TerminalPrompt struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader

	mu      sync.Mutex
	pending bool
	lines   chan promptLine
}

type promptLine struct {
	text string
	err  error
}

func NewTerminalPrompt(in io.Reader, out io.Writer) *TerminalPrompt {
	return &TerminalPrompt{
		in:     in,
		out:    out,
		reader: bufio.NewReader(in),
		lines:  make(chan promptLine, 1),
	}
}

// Confirm prints summary and accepts "y" or "yes"
func (p *TerminalPrompt) Confirm(ctx context.Context, summary string) (bool, error) {
	if f, ok := p.in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return false, ErrNoTerminal
	}

	fmt.Fprintf(p.out, "%s\nConfirm? [y/N]: ", summary)

	p.mu.Lock()
	if !p.pending {
		p.pending = true
		go p.readLine()
	}
	p.mu.Unlock()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case line := <-p.lines:
		p.mu.Lock()
		p.pending = false
		p.mu.Unlock()

		if line.err != nil && !errors.Is(line.err, io.EOF) {
			return false, errors.Wrap(line.err, "failed to read answer")
		}

		switch strings.ToLower(strings.TrimSpace(line.text)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}

func (p *TerminalPrompt) readLine() {
	text, err := p.reader.ReadString('\n')
	p.lines <- promptLine{text: text, err: err}
}

// PromptSecret reads a line from the terminal without echoing it
func PromptSecret(out io.Writer, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrNoTerminal
	}

	fmt.Fprint(out, prompt)

	secret, err := term.ReadPassword(fd)
	if err != nil {
		return "", errors.Wrap(err, "failed to read from terminal")
	}

	fmt.Fprintln(out)

	return strings.TrimSpace(string(secret)), nil
}
