package prognosis

import (
	"fmt"
	"maps"
	"slices"

	"agebounds/domain/core"
)

// TableName identifies one age-stratified probability column
type TableName string

const (
	SymptomaticProbs TableName = "symp_probs"
	SevereProbs      TableName = "severe_probs"
)

// Table is an ordered, read-only sequence of probabilities, one per age bucket.
// Values are not assumed monotonic.
type Table struct {
	values []float64
}

// NewTable copies values into a new table
func NewTable(values []float64) Table {
	return Table{values: slices.Clone(values)}
}

// Len returns the number of buckets
func (t Table) Len() int {
	return len(t.values)
}

// At returns the probability for bucket i. It panics on an out-of-range index,
// like a slice; callers guard with Len.
func (t Table) At(i int) float64 {
	return t.values[i]
}

// Values returns a copy of the underlying probabilities
func (t Table) Values() []float64 {
	return slices.Clone(t.values)
}

// Filled returns a new table of the same length with every entry set to v
func (t Table) Filled(v float64) Table {
	out := make([]float64, len(t.values))
	for i := range out {
		out[i] = v
	}
	return Table{values: out}
}

// Set bundles named tables with the age anchors their buckets are keyed to.
// A Set is never mutated after construction; overrides produce a derived Set.
type Set struct {
	anchors []float64
	tables  map[TableName]Table
}

// NewSet validates that every table has one entry per anchor
func NewSet(anchors []float64, tables map[TableName][]float64) (Set, error) {
	if len(anchors) == 0 {
		return Set{}, fmt.Errorf("prognosis set needs at least one age anchor")
	}
	if !slices.IsSorted(anchors) {
		return Set{}, fmt.Errorf("age anchors must be ascending: %v", anchors)
	}

	s := Set{
		anchors: slices.Clone(anchors),
		tables:  make(map[TableName]Table, len(tables)),
	}
	for name, values := range tables {
		if len(values) != len(anchors) {
			return Set{}, fmt.Errorf("table %s has %d entries, want %d", name, len(values), len(anchors))
		}
		for i, v := range values {
			if v < 0 || v > 1 {
				return Set{}, fmt.Errorf("table %s entry %d is not a probability: %g", name, i, v)
			}
		}
		s.tables[name] = NewTable(values)
	}
	return s, nil
}

// IsZero reports whether the set was never constructed
func (s Set) IsZero() bool {
	return s.tables == nil
}

// Anchors returns a copy of the bucket age anchors
func (s Set) Anchors() []float64 {
	return slices.Clone(s.anchors)
}

// Names returns the table names in sorted order
func (s Set) Names() []TableName {
	return slices.Sorted(maps.Keys(s.tables))
}

// Table looks up a named table
func (s Set) Table(name TableName) (Table, error) {
	t, ok := s.tables[name]
	if !ok {
		return Table{}, fmt.Errorf("%w: %s", core.ErrUnknownTable, name)
	}
	return t, nil
}

// WithConstant derives a new Set in which the named table is replaced by a
// constant-valued table. The receiver is left untouched.
func (s Set) WithConstant(name TableName, v float64) (Set, error) {
	t, err := s.Table(name)
	if err != nil {
		return Set{}, err
	}
	derived := Set{
		anchors: s.anchors,
		tables:  maps.Clone(s.tables),
	}
	derived.tables[name] = t.Filled(v)
	return derived, nil
}

// Record is an individual's prognosis: one probability per table
type Record map[TableName]float64

// Equal reports whether two records hold identical probabilities
func (r Record) Equal(other Record) bool {
	return maps.Equal(r, other)
}
