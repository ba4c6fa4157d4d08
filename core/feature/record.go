package feature

import (
	"sort"
	"strings"

	"github.com/Bantey17/river/pkg/errors"
)

// Record is the per-sample mapping from feature name to value. Keys are
// unique within one record at a given pipeline stage; iteration order carries
// no meaning.
type Record map[string]Value

// New returns an empty record.
func New() Record {
	return make(Record)
}

// Clone returns a shallow copy of the record. Values are immutable, so a
// shallow copy is enough to keep union branches from observing each other's
// output.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Set stores a value under the given feature name, replacing any previous one.
func (r Record) Set(key string, v Value) {
	r[key] = v
}

// Get returns the value stored under the given feature name.
func (r Record) Get(key string) (Value, bool) {
	v, ok := r[key]
	return v, ok
}

// Float returns the numeric value stored under the given feature name.
// The second return value is false if the key is absent or non-numeric.
func (r Record) Float(key string) (float64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	return v.Float()
}

// Keys returns the feature names in sorted order. Sorting keeps output such
// as traces and error messages deterministic.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge copies every entry of other into r. A key present in both records is
// a configuration error: colliding keys mean two pipeline branches emit the
// same feature, and overwriting one silently would corrupt downstream state.
// On error r is left unchanged.
func (r Record) Merge(other Record) error {
	for k := range other {
		if _, exists := r[k]; exists {
			return errors.NewConfigurationErrorf("Record.Merge", "feature %q emitted by more than one branch", k)
		}
	}
	for k, v := range other {
		r[k] = v
	}
	return nil
}

// Equal reports whether two records have identical key sets and values.
func (r Record) Equal(other Record) bool {
	if len(r) != len(other) {
		return false
	}
	for k, v := range r {
		ov, ok := other[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// String renders the record as "{a: 1, b: x}" with keys sorted.
func (r Record) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range r.Keys() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(r[k].String())
	}
	sb.WriteByte('}')
	return sb.String()
}
