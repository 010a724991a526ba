// Package validator provides the validation framework for MDC rule files.
//
// It defines shared types for representing findings (errors, warnings,
// info) across the structural concerns of an MDC document, the contract
// concrete validators implement, and the built-in validator set
// (frontmatter, annotations, content, xmltags, crossref).
//
// # Core Concepts
//
//   - [Severity]: Distinguishes blocking errors from non-blocking warnings.
//   - [Result]: Represents a single finding with location context.
//   - [Validator]: The capability every concrete validator implements.
//   - [Registry]: An ordered, name-addressable validator set.
//   - [Summary]: Aggregated counts over a validation run.
//
// # Basic Usage
//
//	v := validator.NewFrontmatter()
//	results := v.Validate(ctx, doc, validator.Config{})
//	for _, r := range results {
//		if r.Severity == validator.SeverityError {
//			// handle blocking finding
//		}
//	}
//
// Validators are read-only with respect to the document and never panic on
// malformed-but-parseable input; structural defects are reported as
// results, not raised.
package validator
