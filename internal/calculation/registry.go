package calculation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/finwork/loancalc/internal/domain"
)

// UnsupportedTypeError is returned when the registry is asked for a
// calculation type it does not hold. It names the available types so the
// caller bug is obvious.
type UnsupportedTypeError struct {
	Type      domain.CalculationType
	Available []domain.CalculationType
}

func (e *UnsupportedTypeError) Error() string {
	names := make([]string, len(e.Available))
	for i, t := range e.Available {
		names[i] = string(t)
	}
	return fmt.Sprintf("unsupported calculation type %q (available: %s)", e.Type, strings.Join(names, ", "))
}

// Registry maps calculation types to strategy instances. It is populated
// once at construction and read-only afterwards; Register exists so a
// caller assembling its own registry can extend the set before use.
type Registry struct {
	strategies map[domain.CalculationType]Strategy
}

// NewRegistry builds a registry holding the three standard strategies.
func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[domain.CalculationType]Strategy)}
	r.Register(NewSimpleStrategy())
	r.Register(NewAmortizedStrategy())
	r.Register(NewInterestOnlyStrategy())
	return r
}

// Register adds a strategy under its own name.
func (r *Registry) Register(s Strategy) {
	r.strategies[s.Name()] = s
}

// Create resolves the strategy for a calculation type. An unknown type is a
// caller bug, not a user input error, and fails with an
// UnsupportedTypeError.
func (r *Registry) Create(t domain.CalculationType) (Strategy, error) {
	s, ok := r.strategies[t]
	if !ok {
		return nil, &UnsupportedTypeError{Type: t, Available: r.AvailableTypes()}
	}
	return s, nil
}

// IsSupported reports whether a strategy is registered for the type.
func (r *Registry) IsSupported(t domain.CalculationType) bool {
	_, ok := r.strategies[t]
	return ok
}

// AvailableTypes lists the registered calculation types in a stable order.
func (r *Registry) AvailableTypes() []domain.CalculationType {
	types := make([]domain.CalculationType, 0, len(r.strategies))
	for t := range r.strategies {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
