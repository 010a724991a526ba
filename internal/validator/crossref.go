package validator

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/mdcheck/internal/document"
	"github.com/thoreinstein/mdcheck/internal/slug"
)

// CrossRef rule identifiers.
const (
	RuleCrossRefRelatedDocs  = "crossref/related-docs"
	RuleCrossRefBrokenLink   = "crossref/broken-link"
	RuleCrossRefURL          = "crossref/url"
	RuleCrossRefAnchor       = "crossref/anchor"
	RuleCrossRefAbsolutePath = "crossref/absolute-path"
	RuleCrossRefExtension    = "crossref/extension"
)

// ExistsFunc reports whether a filesystem path exists. It must be a pure
// read with no side effects.
type ExistsFunc func(path string) bool

func statExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CrossRef validates reference integrity: related_docs entries resolve
// against the workspace root, inline links resolve against the file's own
// directory, URLs are syntactically well formed, and in-document anchors
// match a heading slug. No network calls are made.
type CrossRef struct {
	root   string
	exists ExistsFunc
}

// NewCrossRef returns the crossref validator. Paths in related_docs
// resolve against root; a nil exists falls back to os.Stat.
func NewCrossRef(root string, exists ExistsFunc) *CrossRef {
	if exists == nil {
		exists = statExists
	}
	return &CrossRef{root: root, exists: exists}
}

func (c *CrossRef) Name() string { return "crossref" }

func (c *CrossRef) Description() string {
	return "Validates related_docs entries, inline links, URLs, and anchors"
}

func (c *CrossRef) Validate(_ context.Context, doc *document.Document, cfg Config) []Result {
	var results []Result

	anchors := make(map[string]bool, len(doc.Headings))
	for _, h := range doc.Headings {
		anchors[slug.Slug(h.Text)] = true
	}

	results = append(results, c.checkRelatedDocs(doc, cfg)...)

	checked := make(map[string]bool)
	for _, link := range doc.Links {
		if checked[link.Target] {
			continue
		}
		checked[link.Target] = true
		results = append(results, c.checkLink(doc, link, cfg, anchors)...)
	}

	return results
}

func (c *CrossRef) checkRelatedDocs(doc *document.Document, cfg Config) []Result {
	raw, present := doc.Frontmatter["related_docs"]
	if !present {
		return nil
	}
	entries, bad := stringList(raw)
	if bad {
		// Shape errors belong to the frontmatter validator.
		return nil
	}

	var results []Result
	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry == "" || seen[entry] {
			continue
		}
		seen[entry] = true
		if !c.exists(filepath.Join(c.root, filepath.FromSlash(entry))) {
			results = append(results, Fail(c.Name(), RuleCrossRefRelatedDocs,
				cfg.RuleSeverity(RuleCrossRefRelatedDocs, SeverityError),
				fmt.Sprintf("related document %q does not exist", entry),
				&Location{Path: doc.Path, Line: 1, Section: "related_docs"}))
		}
	}
	return results
}

func (c *CrossRef) checkLink(doc *document.Document, link document.Link, cfg Config, anchors map[string]bool) []Result {
	target := link.Target
	loc := &Location{Path: doc.Path, Line: link.Line, Section: link.Text}

	switch {
	case target == "":
		return nil

	case strings.HasPrefix(target, "#"):
		name := strings.TrimPrefix(target, "#")
		if !anchors[name] && !anchors[slug.Slug(name)] {
			return []Result{Fail(c.Name(), RuleCrossRefAnchor,
				cfg.RuleSeverity(RuleCrossRefAnchor, SeverityError),
				fmt.Sprintf("anchor %q does not match any heading in the document", target), loc)}
		}
		return nil

	case strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://"):
		u, err := url.Parse(target)
		if err != nil || u.Host == "" {
			return []Result{Fail(c.Name(), RuleCrossRefURL,
				cfg.RuleSeverity(RuleCrossRefURL, SeverityError),
				fmt.Sprintf("URL %q is not well formed", target), loc)}
		}
		return nil

	case strings.Contains(target, "://") || strings.HasPrefix(target, "mailto:"):
		// Non-http schemes are out of scope.
		return nil
	}

	// Filesystem target, possibly with a trailing anchor. Anchors into
	// other files are not resolved; only the path portion is checked.
	path := target
	if i := strings.IndexByte(path, '#'); i >= 0 {
		path = path[:i]
		if path == "" {
			return nil
		}
	}

	if strings.HasPrefix(path, "/") && cfg.BoolOption("require_relative_paths", true) {
		return []Result{Fail(c.Name(), RuleCrossRefAbsolutePath,
			cfg.RuleSeverity(RuleCrossRefAbsolutePath, SeverityError),
			fmt.Sprintf("link target %q must be a relative path", target), loc)}
	}

	var results []Result
	if allowed := cfg.StringSliceOption("allowed_extensions"); len(allowed) > 0 {
		if ext := filepath.Ext(path); ext != "" && !containsFold(allowed, ext) {
			results = append(results, Fail(c.Name(), RuleCrossRefExtension,
				cfg.RuleSeverity(RuleCrossRefExtension, SeverityWarning),
				fmt.Sprintf("link target %q has a disallowed extension %s", target, ext), loc))
		}
	}

	resolved := filepath.FromSlash(path)
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(doc.Path), resolved)
	}
	if !c.exists(resolved) {
		results = append(results, Fail(c.Name(), RuleCrossRefBrokenLink,
			cfg.RuleSeverity(RuleCrossRefBrokenLink, SeverityError),
			fmt.Sprintf("link target %q does not exist", target), loc))
	}
	return results
}
