package document

import (
	"bytes"
	"regexp"
	"strings"
)

// scanFences locates fenced code blocks by line. The resulting spans are
// the skip regions for the annotation, tag, and reference scanners, which
// must not fire inside example code.
func scanFences(d *Document) ([]fenceSpan, []CodeBlock) {
	var spans []fenceSpan
	var blocks []CodeBlock

	lines := bytes.Split(d.Body, []byte("\n"))
	var open bool
	var fenceChar byte
	var fenceLen int
	var openLine int
	var language string

	for i, raw := range lines {
		line := strings.TrimRight(string(raw), "\r")
		trimmed := strings.TrimLeft(line, " ")
		bodyLine := i + 1

		if !open {
			marker, info := fenceMarker(trimmed)
			if marker == "" {
				continue
			}
			open = true
			fenceChar = marker[0]
			fenceLen = len(marker)
			openLine = bodyLine
			language = info
			continue
		}

		marker, info := fenceMarker(trimmed)
		if marker == "" || marker[0] != fenceChar || len(marker) < fenceLen || info != "" {
			continue
		}
		spans = append(spans, fenceSpan{start: openLine, end: bodyLine})
		blocks = append(blocks, CodeBlock{
			Language: language,
			Line:     openLine + d.BodyLine - 1,
			EndLine:  bodyLine + d.BodyLine - 1,
		})
		open = false
	}

	if open {
		last := len(lines)
		spans = append(spans, fenceSpan{start: openLine, end: last})
		blocks = append(blocks, CodeBlock{
			Language: language,
			Line:     openLine + d.BodyLine - 1,
			EndLine:  last + d.BodyLine - 1,
		})
	}

	return spans, blocks
}

// fenceMarker splits a trimmed line into its fence marker and info string.
// Returns an empty marker when the line is not a fence.
func fenceMarker(line string) (marker, info string) {
	for _, c := range []byte{'`', '~'} {
		n := 0
		for n < len(line) && line[n] == c {
			n++
		}
		if n >= 3 {
			return line[:n], strings.TrimSpace(line[n:])
		}
	}
	return "", ""
}

// annotationStart matches the head of an @name{...} block.
var annotationStart = regexp.MustCompile(`@([A-Za-z][A-Za-z0-9_-]*)[ \t]*\{`)

// scanAnnotations extracts @name{...} blocks from the body. Payloads may
// span lines; braces inside JSON strings do not count toward nesting.
func scanAnnotations(d *Document) []Annotation {
	var out []Annotation
	body := d.Body
	lastEnd := 0

	for _, m := range annotationStart.FindAllSubmatchIndex(body, -1) {
		if m[0] < lastEnd {
			// Inside the previous annotation's payload.
			continue
		}
		bodyLine, _ := d.bodyLines.lineCol(m[0])
		if d.inFence(bodyLine) {
			continue
		}

		name := string(body[m[2]:m[3]])
		openBrace := m[1] - 1
		payload, end, closed := matchBraces(body, openBrace)

		line, col := d.bodyLineCol(m[0])
		out = append(out, Annotation{
			Name:         name,
			Payload:      payload,
			Line:         line,
			Column:       col,
			Unterminated: !closed,
		})
		lastEnd = end
	}

	return out
}

// matchBraces consumes a balanced-brace block starting at the opening
// brace. Double-quoted strings are honored so "{" inside a JSON string
// does not change the depth. Returns the block text (braces included),
// the offset past the block, and whether the block was closed.
func matchBraces(body []byte, open int) (payload string, end int, closed bool) {
	depth := 0
	inString := false
	for i := open; i < len(body); i++ {
		c := body[i]
		if inString {
			switch c {
			case '\\':
				i++ // skip escaped character
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return string(body[open : i+1]), i + 1, true
			}
		}
	}
	return string(body[open:]), len(body), false
}

// tagPattern matches XML-style tags embedded in prose. The name must look
// like an identifier so comparison operators in text are not mistaken for
// tags.
var tagPattern = regexp.MustCompile(`</?[A-Za-z][A-Za-z0-9_.:-]*(?:[ \t][^<>]*)?/?>`)

// scanTags extracts XML-style tag occurrences outside fenced code.
func scanTags(d *Document) []Tag {
	var out []Tag

	for _, m := range tagPattern.FindAllIndex(d.Body, -1) {
		bodyLine, _ := d.bodyLines.lineCol(m[0])
		if d.inFence(bodyLine) {
			continue
		}

		raw := string(d.Body[m[0]:m[1]])
		kind := TagOpen
		name := strings.TrimPrefix(raw[1:len(raw)-1], "/")
		switch {
		case strings.HasPrefix(raw, "</"):
			kind = TagClose
		case strings.HasSuffix(raw, "/>"):
			kind = TagSelfClose
			name = strings.TrimSuffix(name, "/")
		}
		if i := strings.IndexAny(name, " \t"); i >= 0 {
			name = name[:i]
		}

		line, col := d.bodyLineCol(m[0])
		out = append(out, Tag{
			Name:   name,
			Raw:    raw,
			Kind:   kind,
			Line:   line,
			Column: col,
		})
	}

	return out
}

// refDefPattern matches reference-style link definitions.
var refDefPattern = regexp.MustCompile(`^[ \t]*\[([^\]]+)\]:[ \t]*(\S+)`)

// scanRefDefs extracts reference-style link definitions ([label]: target),
// which goldmark consumes during parsing rather than exposing in the AST.
func scanRefDefs(d *Document) []Link {
	var out []Link

	for i, raw := range bytes.Split(d.Body, []byte("\n")) {
		bodyLine := i + 1
		if d.inFence(bodyLine) {
			continue
		}
		m := refDefPattern.FindSubmatch(raw)
		if m == nil {
			continue
		}
		out = append(out, Link{
			Text:   string(m[1]),
			Target: string(m[2]),
			Line:   bodyLine + d.BodyLine - 1,
			RefDef: true,
		})
	}

	return out
}
