package frontmatter

import (
	"bytes"
	"errors"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingFrontmatter is returned by MustParse when no frontmatter is found.
var ErrMissingFrontmatter = errors.New("missing frontmatter")

// ErrUnclosedFrontmatter is returned when an opening delimiter has no
// matching closing delimiter.
var ErrUnclosedFrontmatter = errors.New("missing closing frontmatter delimiter")

// delimiter is the frontmatter fence line.
const delimiter = "---"

// Split separates raw frontmatter YAML from the document body.
//
// If the content has no frontmatter, matter is nil, body is the full
// content, and bodyLine is 1. Otherwise bodyLine is the 1-based line
// number of the first body line in the original content, counting both
// delimiter lines.
func Split(content []byte) (matter, body []byte, bodyLine int, err error) {
	lines := bytes.Split(content, []byte("\n"))
	if len(lines) == 0 || !isDelimiter(lines[0]) {
		return nil, content, 1, nil
	}

	for i := 1; i < len(lines); i++ {
		if !isDelimiter(lines[i]) {
			continue
		}
		matter = bytes.Join(lines[1:i], []byte("\n"))
		body = bytes.Join(lines[i+1:], []byte("\n"))
		return matter, body, i + 2, nil
	}

	return nil, content, 1, ErrUnclosedFrontmatter
}

// isDelimiter reports whether a line is a frontmatter fence, tolerating a
// trailing carriage return from CRLF files.
func isDelimiter(line []byte) bool {
	return strings.TrimRight(string(line), "\r") == delimiter
}

// Parse extracts YAML frontmatter into matter and returns the body.
// If no frontmatter is present, matter is left untouched and the full
// content is returned as body with bodyLine 1. Parsing fails if the
// frontmatter is unclosed or contains invalid YAML.
func Parse[T any](content []byte, matter *T) (body []byte, bodyLine int, err error) {
	raw, body, bodyLine, err := Split(content)
	if err != nil {
		return nil, 0, err
	}
	if raw == nil {
		return body, bodyLine, nil
	}
	if err := yaml.Unmarshal(raw, matter); err != nil {
		return nil, 0, err
	}
	return body, bodyLine, nil
}

// MustParse is like Parse but returns ErrMissingFrontmatter when the
// content does not begin with a frontmatter block.
func MustParse[T any](content []byte, matter *T) (body []byte, bodyLine int, err error) {
	raw, _, _, splitErr := Split(content)
	if splitErr != nil {
		return nil, 0, splitErr
	}
	if raw == nil {
		return nil, 0, ErrMissingFrontmatter
	}
	return Parse(content, matter)
}

// Format formats content with YAML frontmatter.
// The matter struct is serialized to YAML and wrapped in "---" delimiters,
// followed by the body content.
func Format(matter any, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(matter); err != nil {
		return nil, err
	}

	buf.WriteString(delimiter + "\n")
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}
