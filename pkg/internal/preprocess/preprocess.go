// Package preprocess cleans raw text before it reaches the repair engine.
package preprocess

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode converts raw input to a UTF-8 string. A UTF-8 or UTF-16 byte order
// mark selects the encoding and is dropped; without one the input is read
// as UTF-8 and invalid sequences become U+FFFD.
func Decode(raw []byte) (string, error) {
	out, _, err := transform.Bytes(newDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("decoding input: %w", err)
	}
	return string(out), nil
}

// DecodeReader is Decode for a stream.
func DecodeReader(r io.Reader) (string, error) {
	out, err := io.ReadAll(transform.NewReader(r, newDecoder()))
	if err != nil {
		return "", fmt.Errorf("decoding input: %w", err)
	}
	return string(out), nil
}

func newDecoder() transform.Transformer {
	return unicode.BOMOverride(unicode.UTF8.NewDecoder())
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Sanitize drops a leading U+FEFF, turns CRLF and lone CR into LF and
// removes control characters other than tab and newline.
func Sanitize(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = newlines.Replace(s)
	return strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\t' && r != '\n' {
			return -1
		}
		return r
	}, s)
}

const fence = "```"

// StripMarkdown unwraps input held in a single inline code span or in a
// fenced code block. The inner text is returned only when it looks like a
// JSON object or array; anything else is returned unchanged.
func StripMarkdown(s string) string {
	t := strings.TrimSpace(s)
	if len(t) >= 2 && t[0] == '`' && t[len(t)-1] == '`' {
		if inner := strings.TrimSpace(t[1 : len(t)-1]); isContainer(inner) {
			return inner
		}
	}
	if !strings.Contains(t, fence) {
		return s
	}

	lines := strings.Split(t, "\n")
	open := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), fence) {
			open = i
			break
		}
	}
	if open < 0 {
		return s
	}
	for j := open + 1; j < len(lines); j++ {
		if !strings.HasPrefix(strings.TrimSpace(lines[j]), fence) {
			continue
		}
		body := strings.TrimSpace(strings.Join(lines[open+1:j], "\n"))
		if isContainer(body) {
			return body
		}
		break
	}
	return s
}

func isContainer(s string) bool {
	if len(s) < 2 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	return (first == '{' && last == '}') || (first == '[' && last == ']')
}
