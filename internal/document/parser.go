package document

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/mdcheck/pkg/fileutil"
	"github.com/thoreinstein/mdcheck/pkg/frontmatter"
)

// Parse loads and parses the MDC file at path.
// Any document-fatal condition (unreadable file, oversized file, unclosed
// frontmatter, invalid frontmatter YAML) is returned as a *ParseError.
func Parse(path string) (*Document, error) {
	content, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, &ParseError{Path: path, Msg: "reading file: " + err.Error(), Err: err}
	}
	return ParseBytes(path, content)
}

// ParseBytes parses content as the MDC file at path.
func ParseBytes(path string, content []byte) (*Document, error) {
	matter, body, bodyLine, err := frontmatter.Split(content)
	if err != nil {
		return nil, &ParseError{Path: path, Line: 1, Msg: "unclosed frontmatter delimiter", Err: err}
	}

	d := &Document{
		Path:     path,
		Raw:      content,
		Body:     body,
		BodyLine: bodyLine,
	}

	if matter != nil {
		d.HasFrontmatter = true
		var fm map[string]any
		if err := yaml.Unmarshal(matter, &fm); err != nil {
			return nil, &ParseError{Path: path, Line: 1, Msg: "invalid frontmatter YAML", Err: err}
		}
		d.Frontmatter = fm
	}

	d.bodyLines = newLineIndex(body)
	d.fences, d.CodeBlocks = scanFences(d)
	d.Annotations = scanAnnotations(d)
	d.Tags = scanTags(d)
	parseMarkdown(d)
	d.Links = append(d.Links, scanRefDefs(d)...)

	// Stable order regardless of which scanner found a link first.
	sort.SliceStable(d.Links, func(i, j int) bool {
		if d.Links[i].Line != d.Links[j].Line {
			return d.Links[i].Line < d.Links[j].Line
		}
		return d.Links[i].Target < d.Links[j].Target
	})

	return d, nil
}

// parseMarkdown extracts headings and links from the body using goldmark.
// Fenced code is handled by the fence scanner, which goldmark agrees with
// for the structures we extract: headings and links inside fences are not
// produced by either.
func parseMarkdown(d *Document) {
	reader := text.NewReader(d.Body)
	root := goldmark.DefaultParser().Parse(reader)

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Heading:
			d.Headings = append(d.Headings, Heading{
				Level: v.Level,
				Text:  nodeText(v, d.Body),
				Line:  nodeLine(d, v),
			})
		case *ast.Link:
			d.Links = append(d.Links, Link{
				Text:   nodeText(v, d.Body),
				Target: string(v.Destination),
				Line:   nodeLine(d, v),
			})
		case *ast.Image:
			d.Links = append(d.Links, Link{
				Target: string(v.Destination),
				Line:   nodeLine(d, v),
			})
		case *ast.AutoLink:
			d.Links = append(d.Links, Link{
				Target: string(v.URL(d.Body)),
				Line:   nodeLine(d, v),
			})
		}
		return ast.WalkContinue, nil
	})
}

// nodeText flattens the text content of a node, dropping inline markup.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := c.(*ast.Text); ok {
				b.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// nodeLine resolves the 1-based file line of a node. Block nodes carry
// their own segments; inline nodes borrow the first text segment below
// them, falling back to the enclosing block.
func nodeLine(d *Document, n ast.Node) int {
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		line, _ := d.bodyLineCol(n.Lines().At(0).Start)
		return line
	}
	if seg, ok := firstTextSegment(n); ok {
		line, _ := d.bodyLineCol(seg.Start)
		return line
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == ast.TypeBlock && p.Lines().Len() > 0 {
			line, _ := d.bodyLineCol(p.Lines().At(0).Start)
			return line
		}
	}
	return d.BodyLine
}

func firstTextSegment(n ast.Node) (text.Segment, bool) {
	if t, ok := n.(*ast.Text); ok {
		return t.Segment, true
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if seg, ok := firstTextSegment(c); ok {
			return seg, true
		}
	}
	return text.Segment{}, false
}
