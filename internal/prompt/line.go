package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/conn-castle/cylc-layer/internal/messages"
)

// LineUI asks questions on plain text streams. It serves screen readers and
// terminals where the full-screen form is unwanted (ACCESSIBLE set).
type LineUI struct {
	In  io.Reader
	Out io.Writer
}

// Confirm prints the description and asks title with *value as the default.
func (ui LineUI) Confirm(title string, description string, value *bool) error {
	if description != "" {
		if _, err := fmt.Fprintln(ui.Out, description); err != nil {
			return err
		}
	}
	answer, err := promptYesNo(ui.In, ui.Out, title, *value)
	if err != nil {
		return err
	}
	*value = answer
	return nil
}

// promptYesNo asks a yes/no question and returns the user's choice or an error.
// defaultYes controls the result when the user provides an empty response.
// End of input without an answer means no.
func promptYesNo(in io.Reader, out io.Writer, prompt string, defaultYes bool) (bool, error) {
	reader := bufio.NewReader(in)
	format := messages.PromptNoDefaultFmt
	if defaultYes {
		format = messages.PromptYesDefaultFmt
	}
	for {
		if _, err := fmt.Fprintf(out, format, prompt); err != nil {
			return false, err
		}
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		eof := errors.Is(err, io.EOF)
		response := strings.TrimSpace(line)
		if response == "" {
			if eof {
				return false, nil
			}
			return defaultYes, nil
		}
		switch strings.ToLower(response) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if eof {
			return false, fmt.Errorf(messages.PromptInvalidResponseFmt, response)
		}
		if _, err := fmt.Fprintln(out, messages.PromptRetryYesNo); err != nil {
			return false, err
		}
	}
}
