package compose

import (
	"strings"

	"github.com/Bantey17/river/core/feature"
	"github.com/Bantey17/river/pkg/errors"
)

// Select is a stateless transformer that keeps only the named features. Its
// main use is as a union branch carrying raw features past sibling branches
// that emit derived ones.
type Select struct {
	keys []string
}

// NewSelect builds a Select for the given feature names.
func NewSelect(keys ...string) (*Select, error) {
	if len(keys) == 0 {
		return nil, errors.NewConfigurationError("NewSelect", "at least one feature name is required")
	}
	out := make([]string, len(keys))
	copy(out, keys)
	return &Select{keys: out}, nil
}

// TransformOne implements model.Transformer. A selected feature missing from
// the record is an input-shape error.
func (s *Select) TransformOne(x feature.Record) (feature.Record, error) {
	out := feature.New()
	for _, k := range s.keys {
		v, ok := x.Get(k)
		if !ok {
			return nil, errors.NewInputShapeError("Select", k, "missing selected feature")
		}
		out.Set(k, v)
	}
	return out, nil
}

// ObserveOne implements model.Transformer. Select carries no state.
func (s *Select) ObserveOne(feature.Record) error { return nil }

// String renders the selection as "Select(a, b)".
func (s *Select) String() string {
	return "Select(" + strings.Join(s.keys, ", ") + ")"
}
