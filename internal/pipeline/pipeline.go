// Package pipeline orchestrates validator execution over a set of MDC
// documents with bounded concurrency and deterministic output.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/thoreinstein/mdcheck/internal/document"
	"github.com/thoreinstein/mdcheck/internal/errors"
	"github.com/thoreinstein/mdcheck/internal/logging"
	"github.com/thoreinstein/mdcheck/internal/validator"
)

// Pipeline rule identifiers for results the pipeline itself produces.
const (
	RuleParseError     = "pipeline/parse-error"
	RuleValidatorFault = "pipeline/validator-fault"
)

// pipelineName attributes results produced by the pipeline rather than a
// validator.
const pipelineName = "pipeline"

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithWorkers sets the maximum number of documents validated
// concurrently. Values below 1 fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithLogger sets the structured logger used for per-document progress.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithParser overrides how documents are loaded, for tests.
func WithParser(parse func(path string) (*document.Document, error)) Option {
	return func(p *Pipeline) {
		if parse != nil {
			p.parse = parse
		}
	}
}

// Pipeline runs an ordered validator set over documents. Configuration is
// read-only after construction, so one Pipeline may serve concurrent Run
// calls.
type Pipeline struct {
	validators []validator.Validator
	configs    map[string]validator.Config
	workers    int
	logger     *slog.Logger
	parse      func(path string) (*document.Document, error)
}

// New builds a Pipeline from a registry and per-validator configuration.
// Config keys must name registered validators; an unknown name fails fast
// before any document is processed. Validators run in registration order;
// disabled validators are dropped here.
func New(registry *validator.Registry, configs map[string]validator.Config, opts ...Option) (*Pipeline, error) {
	for name := range configs {
		if _, ok := registry.Get(name); !ok {
			return nil, errors.Wrapf(errors.ErrUnknownValidator, "config references %q", name)
		}
	}

	if configs == nil {
		configs = make(map[string]validator.Config)
	}

	p := &Pipeline{
		configs: configs,
		workers: runtime.GOMAXPROCS(0),
		logger:  logging.NewDiscard(),
		parse:   document.Parse,
	}
	for _, v := range registry.Validators() {
		if configs[v.Name()].IsEnabled() {
			p.validators = append(p.validators, v)
		}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run validates every path and returns the aggregated report. Documents
// are processed concurrently up to the worker bound; results within each
// document are sorted before aggregation so output never depends on
// scheduling. Cancellation stops dispatching new documents; documents not
// reached are reported as skipped.
func (p *Pipeline) Run(ctx context.Context, paths []string) (*validator.RunReport, error) {
	if len(paths) == 0 {
		return nil, errors.ErrNoDocuments
	}

	reports := make([]validator.DocumentReport, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, path := range paths {
		if ctx.Err() != nil {
			reports[i] = validator.DocumentReport{Path: path, Status: validator.StatusSkipped}
			continue
		}
		g.Go(func() error {
			reports[i] = p.validateDocument(ctx, path)
			return nil
		})
	}
	_ = g.Wait()

	return &validator.RunReport{
		Documents: reports,
		Summary:   validator.Summarize(reports),
	}, nil
}

// validateDocument parses one file and runs every enabled validator
// against it.
func (p *Pipeline) validateDocument(ctx context.Context, path string) validator.DocumentReport {
	if ctx.Err() != nil {
		return validator.DocumentReport{Path: path, Status: validator.StatusSkipped}
	}

	log := p.logger.With(slog.String("path", path))
	log.Debug("validating document")

	doc, err := p.parse(path)
	if err != nil {
		log.Debug("parse failed", slog.String("error", err.Error()))
		return validator.DocumentReport{
			Path:    path,
			Status:  validator.StatusError,
			Results: []validator.Result{parseResult(path, err)},
		}
	}

	var results []validator.Result
	for _, v := range p.validators {
		results = append(results, p.runValidator(ctx, v, doc)...)
	}
	validator.SortResults(results)

	status := validator.StatusFor(results)
	log.Debug("document validated",
		slog.String("status", string(status)),
		slog.Int("results", len(results)))

	return validator.DocumentReport{Path: path, Status: status, Results: results}
}

// runValidator invokes one validator, converting a panic into an error
// result attributed to the pipeline so one fault never aborts the run.
func (p *Pipeline) runValidator(ctx context.Context, v validator.Validator, doc *document.Document) (results []validator.Result) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("validator fault",
				slog.String("validator", v.Name()),
				slog.String("path", doc.Path),
				slog.Any("panic", r))
			results = []validator.Result{{
				Validator: pipelineName,
				Rule:      RuleValidatorFault,
				Severity:  validator.SeverityError,
				Message:   fmt.Sprintf("validator %q failed: %v", v.Name(), r),
				Location:  &validator.Location{Path: doc.Path},
			}}
		}
	}()
	return v.Validate(ctx, doc, p.configs[v.Name()])
}

// parseResult converts a document-fatal parse failure into the single
// result reported for that document.
func parseResult(path string, err error) validator.Result {
	loc := &validator.Location{Path: path}
	var perr *document.ParseError
	if errors.As(err, &perr) {
		loc.Line = perr.Line
	}
	return validator.Result{
		Validator: pipelineName,
		Rule:      RuleParseError,
		Severity:  validator.SeverityError,
		Message:   err.Error(),
		Location:  loc,
	}
}
