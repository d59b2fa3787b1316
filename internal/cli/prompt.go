package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompter reads answers from a line-oriented input
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter() *prompter {
	return &prompter{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

// Confirm asks a [y/N] question; anything but y or yes declines
func (p *prompter) Confirm(_ context.Context, prompt string) bool {
	answer := strings.ToLower(p.line(prompt + " [y/N]: "))
	return answer == "y" || answer == "yes"
}

func (p *prompter) line(label string) string {
	fmt.Fprint(p.out, label)
	s, _ := p.in.ReadString('\n')
	return strings.TrimSpace(s)
}

// password reads without echo when stdin is a terminal
func (p *prompter) password(label string) string {
	fmt.Fprint(p.out, label)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, _ := term.ReadPassword(fd)
		fmt.Fprintln(p.out)
		return string(b)
	}
	s, _ := p.in.ReadString('\n')
	return strings.TrimSpace(s)
}

// printNotifier writes console notices to stdout
type printNotifier struct{}

func (printNotifier) Notify(msg string) {
	fmt.Println("📣 " + msg)
}
