// Package frontmatter provides parsing of YAML frontmatter from MDC and
// markdown files.
//
// Frontmatter is delimited by lines containing only "---" at the start and
// end. The content between delimiters is parsed as YAML. Unlike a plain
// split, the parser reports the 1-based line number at which the body
// begins, so findings against the body can be mapped back to file lines.
//
// # Basic Usage
//
//	type RuleMeta struct {
//		Description string   `yaml:"description"`
//		Globs       []string `yaml:"globs"`
//	}
//
//	var meta RuleMeta
//	body, bodyLine, err := frontmatter.Parse(content, &meta)
//	if err != nil {
//		// invalid YAML or unclosed delimiter
//	}
//
// # Error Handling
//
// The package defines sentinel errors for common failure conditions:
//
//   - [ErrMissingFrontmatter]: returned by [MustParse] when the file does
//     not start with a "---" delimiter
//   - [ErrUnclosedFrontmatter]: an opening delimiter without a closing one
//
// These can be checked using errors.Is. Both Unix (LF) and Windows (CRLF)
// line endings are handled.
package frontmatter
