// Package document parses MDC rule files into a structure validators can
// inspect without re-parsing.
//
// An MDC file combines YAML frontmatter, @name{...} JSON annotation blocks,
// inline XML-style tags, and a markdown body. Parse produces a Document
// carrying all four views plus a line index, so every validator works from
// the same read-only parse and can report 1-based file locations.
package document

import (
	"fmt"
	"sort"
)

// Document is a parsed MDC file. All fields are populated once by Parse
// and treated as read-only by validators.
type Document struct {
	// Path is the file path the document was loaded from.
	Path string

	// Raw is the complete file content.
	Raw []byte

	// Body is the content after the frontmatter block.
	Body []byte

	// BodyLine is the 1-based line number in Raw where Body starts.
	BodyLine int

	// HasFrontmatter reports whether a frontmatter block was present.
	HasFrontmatter bool

	// Frontmatter is the decoded YAML mapping, nil when absent.
	Frontmatter map[string]any

	// Annotations are the @name{...} blocks found in the body.
	Annotations []Annotation

	// Tags are the XML-style tag occurrences found in the body.
	Tags []Tag

	// Headings are the markdown headings in the body.
	Headings []Heading

	// CodeBlocks are the fenced code blocks in the body.
	CodeBlocks []CodeBlock

	// Links are inline and reference-style link targets in the body.
	Links []Link

	bodyLines lineIndex
	fences    []fenceSpan
}

// Annotation is one @name{...} block.
type Annotation struct {
	// Name is the identifier after '@'.
	Name string
	// Payload is the text between the braces, braces included.
	Payload string
	// Line and Column locate the '@' in the file (1-based).
	Line   int
	Column int
	// Unterminated reports that the closing brace was never found.
	Unterminated bool
}

// TagKind distinguishes opening, closing, and self-closing tags.
type TagKind int

const (
	// TagOpen is an opening tag like <rule>.
	TagOpen TagKind = iota
	// TagClose is a closing tag like </rule>.
	TagClose
	// TagSelfClose is a self-closing tag like <rule/>.
	TagSelfClose
)

// Tag is one XML-style tag occurrence in the body.
type Tag struct {
	// Name is the tag name without angle brackets or slashes.
	Name string
	// Raw is the full tag text including brackets.
	Raw string
	// Kind reports whether the tag opens, closes, or self-closes.
	Kind TagKind
	// Line and Column locate the '<' in the file (1-based).
	Line   int
	Column int
}

// Heading is one markdown heading.
type Heading struct {
	// Level is 1 for H1 through 6 for H6.
	Level int
	// Text is the heading text with inline markup flattened.
	Text string
	// Line is the 1-based file line of the heading.
	Line int
}

// CodeBlock is one fenced code block.
type CodeBlock struct {
	// Language is the info string on the opening fence, empty if omitted.
	Language string
	// Line is the 1-based file line of the opening fence.
	Line int
	// EndLine is the file line of the closing fence, or the last file
	// line when the fence is unclosed.
	EndLine int
}

// Link is one link target found in the body.
type Link struct {
	// Text is the link text, empty for autolinks and images.
	Text string
	// Target is the destination as written.
	Target string
	// Line is the 1-based file line of the link.
	Line int
	// RefDef reports a reference-style definition ([label]: target).
	RefDef bool
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return d.BodyLine - 1 + d.bodyLines.count()
}

// lineIndex maps byte offsets to 1-based line and column numbers.
type lineIndex struct {
	starts []int // byte offset of each line start
}

func newLineIndex(content []byte) lineIndex {
	starts := []int{0}
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return lineIndex{starts: starts}
}

func (li lineIndex) count() int {
	return len(li.starts)
}

// lineCol returns the 1-based line and column for a byte offset.
func (li lineIndex) lineCol(offset int) (line, col int) {
	i := sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	})
	line = i // starts[i-1] <= offset < starts[i]
	col = offset - li.starts[line-1] + 1
	return line, col
}

// bodyLineCol converts a byte offset within Body to file coordinates.
func (d *Document) bodyLineCol(offset int) (line, col int) {
	line, col = d.bodyLines.lineCol(offset)
	return line + d.BodyLine - 1, col
}

// fenceSpan is a fenced code region in body line coordinates, fences included.
type fenceSpan struct {
	start int // 1-based body line of opening fence
	end   int // 1-based body line of closing fence (or last line)
}

// inFence reports whether a 1-based body line falls inside a fenced block.
func (d *Document) inFence(bodyLine int) bool {
	for _, f := range d.fences {
		if bodyLine >= f.start && bodyLine <= f.end {
			return true
		}
	}
	return false
}

// ParseError describes a document-fatal parse failure: the file could not
// be read or its structure could not be decoded at all.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string
	// Line is the 1-based line of the failure, 0 if unknown.
	Line int
	// Msg describes the failure.
	Msg string
	// Err is the underlying error, if any.
	Err error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
