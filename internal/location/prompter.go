package location

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// TerminalPrompter implements PermissionRequester over an interactive terminal.
// It prints one question and reads one answer; "y" or "yes" grants access.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalPrompter creates a prompter reading answers from in and writing
// the question to out.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{in: bufio.NewReader(in), out: out}
}

// Request asks the user once for permission to use their location.
func (p *TerminalPrompter) Request(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("permission prompt aborted: %w", err)
	}

	fmt.Fprint(p.out, "Allow access to your location to find specialists nearby? [y/N]: ")

	answer, err := p.in.ReadString('\n')
	if err != nil && answer == "" {
		return false, fmt.Errorf("failed to read permission answer: %w", err)
	}

	answer = strings.ToLower(strings.TrimSpace(answer))

	return answer == "y" || answer == "yes", nil
}
