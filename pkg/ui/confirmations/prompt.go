// Package confirmations asks the operator to confirm destructive actions.
package confirmations

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Asker shows prompt and returns the operator's answer.
type Asker func(prompt string) (string, error)

// Console asks on the terminal with an interactive input when stdin is a
// terminal, and reads one line from stdin otherwise.
func Console() Asker {
	if isatty.IsTerminal(os.Stdin.Fd()) {
		return func(prompt string) (string, error) {
			return pterm.DefaultInteractiveTextInput.Show(prompt)
		}
	}
	return FromReader(os.Stdin, os.Stderr)
}

// FromReader prints prompt to w and reads the answer up to the end of the
// line from r. The trailing newline is dropped; other whitespace is kept
// so the answer must match exactly.
func FromReader(r io.Reader, w io.Writer) Asker {
	br := bufio.NewReader(r)
	return func(prompt string) (string, error) {
		if _, err := fmt.Fprintf(w, "%s: ", prompt); err != nil {
			return "", err
		}
		line, err := br.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}
