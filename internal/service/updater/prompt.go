package updater

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the user for the modpack URL.
type Prompter interface {
	// PromptURL returns the first entered URL that passes validation.
	PromptURL(ctx context.Context) (string, error)
}

// URLPrompter reads URLs line by line and asks again until one is valid.
type URLPrompter struct {
	// reader is the line source.
	reader *bufio.Reader
	// out receives the prompts.
	out io.Writer
	// prefix is the prefix every accepted URL starts with.
	prefix string
}

// NewURLPrompter creates a prompter reading from in and writing prompts to out.
func NewURLPrompter(in io.Reader, out io.Writer, prefix string) *URLPrompter {
	return &URLPrompter{
		reader: bufio.NewReader(in),
		out:    out,
		prefix: prefix,
	}
}

// PromptURL asks for a URL until a valid one is entered.
// There is no attempt limit; it stops only on a valid URL, closed input, or a canceled context.
func (p *URLPrompter) PromptURL(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		fmt.Fprintf(p.out, "[PREPARATION] Please enter modpack url (should start with: %q)\n", p.prefix)

		line, readErr := p.reader.ReadString('\n')

		fmt.Fprintln(p.out)

		candidate := strings.TrimSpace(line)
		if err := ValidateURL(candidate, p.prefix); err == nil {
			return candidate, nil
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return "", ErrInputClosed
			}

			return "", fmt.Errorf("failed to read url: %w", readErr)
		}

		fmt.Fprintln(p.out, "[PREPARATION] Invalid url")
	}
}

// ValidateURL checks that rawURL is not empty and starts with prefix.
func ValidateURL(rawURL, prefix string) error {
	if rawURL == "" {
		return ErrEmptyURL
	}

	if !strings.HasPrefix(rawURL, prefix) {
		return fmt.Errorf("%w: '%s'", ErrInvalidURLPrefix, prefix)
	}

	return nil
}
