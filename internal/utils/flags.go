package utils

import (
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// NameIndex resolves registered flag names back to their values, for command-line parsing.
// Rendering values as strings is left to common.FlagStringMapping.
type NameIndex[T constraints.Integer] struct {
	names map[T]string
	order []T
}

func NewNameIndex[T constraints.Integer]() NameIndex[T] {
	return NameIndex[T]{names: make(map[T]string)}
}

func (m *NameIndex[T]) Register(value T, str string) {
	if _, exists := m.names[value]; !exists {
		m.order = append(m.order, value)
		slices.Sort(m.order)
	}
	m.names[value] = str
}

// Lookup matches names case-insensitively
func (m *NameIndex[T]) Lookup(str string) (T, bool) {
	for _, value := range m.order {
		if strings.EqualFold(m.names[value], str) {
			return value, true
		}
	}
	return 0, false
}

func (m *NameIndex[T]) Names() []string {
	names := make([]string, 0, len(m.order))
	for _, value := range m.order {
		names = append(names, m.names[value])
	}
	return names
}
