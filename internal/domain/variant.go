package domain

import "sort"

// Selection is an in-progress choice of attribute values, keyed by axis name.
// It may be empty or cover only some of a product's axes.
type Selection map[string]string

// AttributeMatrix maps each attribute axis of a product to the distinct
// values appearing across the product's variants. Axis and value order
// follow first appearance in the variant list so the UI renders stably.
// The matrix is derived data: rebuild it whenever the variant list changes.
type AttributeMatrix struct {
	axes   []string
	values map[string][]string
}

// BuildAttributeMatrix derives the attribute matrix from a variant list.
func BuildAttributeMatrix(variants []Variant) AttributeMatrix {
	m := AttributeMatrix{values: make(map[string][]string)}
	for _, v := range variants {
		for _, axis := range attributeAxes(v) {
			value := v.Attributes[axis]
			if _, ok := m.values[axis]; !ok {
				m.axes = append(m.axes, axis)
			}
			if !contains(m.values[axis], value) {
				m.values[axis] = append(m.values[axis], value)
			}
		}
	}
	return m
}

// Axes returns the attribute axes in first-appearance order.
func (m AttributeMatrix) Axes() []string {
	return m.axes
}

// Values returns the distinct values for an axis in first-appearance order.
func (m AttributeMatrix) Values(axis string) []string {
	return m.values[axis]
}

// Empty reports whether the product has no variant attributes at all, in
// which case the base product price and stock apply.
func (m AttributeMatrix) Empty() bool {
	return len(m.axes) == 0
}

// SelectableValues returns, for the given axis, the set of values for which
// at least one selectable variant agrees with the current selection on every
// already-chosen axis. The axis under test is overridden by each candidate
// value, so re-choosing an axis never requires clearing the others first.
// Values absent from the result render as disabled, never hidden.
func SelectableValues(axis string, selection Selection, variants []Variant) map[string]bool {
	selectable := make(map[string]bool)
	for i := range variants {
		v := &variants[i]
		if !v.Selectable() {
			continue
		}
		value, ok := v.Attributes[axis]
		if !ok {
			continue
		}
		if agreesOnChosenAxes(v, axis, selection) {
			selectable[value] = true
		}
	}
	return selectable
}

// ResolveVariant maps a complete selection to the single matching selectable
// variant. A variant matches only when the selection covers exactly the
// variant's axes and agrees on all of them; a subset or superset selection
// resolves to no match, signaling the caller to keep prompting. Malformed
// selections are never an error.
func ResolveVariant(selection Selection, variants []Variant) (*Variant, bool) {
	if len(selection) == 0 {
		return nil, false
	}
	for i := range variants {
		v := &variants[i]
		if !v.Selectable() {
			continue
		}
		if len(v.Attributes) != len(selection) {
			continue
		}
		if matchesAll(v, selection) {
			return v, true
		}
	}
	return nil, false
}

// agreesOnChosenAxes checks that the variant carries the chosen value for
// every axis in the selection other than the axis under test.
func agreesOnChosenAxes(v *Variant, overrideAxis string, selection Selection) bool {
	for axis, chosen := range selection {
		if axis == overrideAxis {
			continue
		}
		if v.Attributes[axis] != chosen {
			return false
		}
	}
	return true
}

// matchesAll checks that every variant axis agrees with the selection.
func matchesAll(v *Variant, selection Selection) bool {
	for axis, value := range v.Attributes {
		if selection[axis] != value {
			return false
		}
	}
	return true
}

// attributeAxes returns the variant's axes sorted. The backend serves
// attributes as a JSON object, so the map itself carries no order; sorting
// within a variant keeps matrix construction deterministic while axis order
// across variants still follows first appearance.
func attributeAxes(v Variant) []string {
	axes := make([]string, 0, len(v.Attributes))
	for axis := range v.Attributes {
		axes = append(axes, axis)
	}
	sort.Strings(axes)
	return axes
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
