package out

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	sessionout "timetrack/internal/modules/session/port/out"
)

// PromptConfirmer asks a yes/no question on a line-based terminal. Anything
// other than y/yes, including EOF, is a no.
type PromptConfirmer struct {
	in  io.Reader
	out io.Writer
}

func NewPromptConfirmer(in io.Reader, out io.Writer) sessionout.Confirmer {
	return &PromptConfirmer{in: in, out: out}
}

func (c *PromptConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if _, err := fmt.Fprintf(c.out, "%s [y/N]: ", prompt); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}
	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
