package validator

import (
	"context"

	"github.com/thoreinstein/mdcheck/internal/document"
	"github.com/thoreinstein/mdcheck/internal/errors"
)

// Validator is the capability every concrete validator implements:
// inspect a document, produce zero or more results.
//
// Implementations must be read-only with respect to the document and must
// not panic for malformed-but-parseable input; structural defects are
// reported as error-severity results. A panic is treated as a validator
// fault and converted by the pipeline into an error result, so one
// validator's fault never aborts a run.
type Validator interface {
	// Name returns the unique, non-empty validator name.
	Name() string
	// Description returns a one-line description for CLI listing.
	Description() string
	// Validate inspects the document and returns its findings.
	Validate(ctx context.Context, doc *document.Document, cfg Config) []Result
}

// Registry is an ordered, name-addressable set of validators.
// Iteration order is registration order.
type Registry struct {
	order  []string
	byName map[string]Validator
}

// NewRegistry creates a registry containing the given validators.
// Duplicate names panic: the built-in set is assembled at startup and a
// collision is a programming error.
func NewRegistry(validators ...Validator) *Registry {
	r := &Registry{byName: make(map[string]Validator, len(validators))}
	for _, v := range validators {
		if err := r.Register(v); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a validator, rejecting empty and duplicate names.
func (r *Registry) Register(v Validator) error {
	name := v.Name()
	if name == "" {
		return errors.New("validator name must be non-empty")
	}
	if _, exists := r.byName[name]; exists {
		return errors.Newf("validator %q already registered", name)
	}
	r.byName[name] = v
	r.order = append(r.order, name)
	return nil
}

// Get returns the validator with the given name.
func (r *Registry) Get(name string) (Validator, bool) {
	v, ok := r.byName[name]
	return v, ok
}

// Names returns validator names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Validators returns the validators in registration order.
func (r *Registry) Validators() []Validator {
	out := make([]Validator, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}
