package component

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrForeignWrite is returned when an instance value is written from outside
// one of the instance's own hook bodies.
var ErrForeignWrite = errors.New("component value written outside its own hook")

// BoundHook is a hook entry point bound to one instance.
type BoundHook func(a *Args) any

// Instance is one attachment of a Kind to an entity.
type Instance struct {
	kind  *Kind
	value any
	state any

	// raw keeps persisted data that could not be installed into typed state,
	// so a later save does not lose it.
	raw json.RawMessage

	owner    *Entity
	invoking int
}

// Kind returns the registered prototype of c.
func (c *Instance) Kind() *Kind { return c.kind }

// Nid returns the component identifier.
func (c *Instance) Nid() string { return c.kind.meta.Nid }

// Owner returns the entity c is attached to, or nil when detached.
func (c *Instance) Owner() *Entity { return c.owner }

// Value returns a copy of the current value.
func (c *Instance) Value() any { return Clone(c.value) }

// Hook returns the entry point for h bound to c, or nil when the kind does
// not implement h.
func (c *Instance) Hook(h Hook) BoundHook {
	if c == nil || c.kind == nil {
		return nil
	}
	fn, ok := c.kind.hooks[h]
	if !ok {
		return nil
	}
	return func(a *Args) any {
		c.invoking++
		defer func() { c.invoking-- }()
		return fn(c, a)
	}
}

// SetValue replaces the value. It is only allowed while one of c's own hooks
// is running.
func (c *Instance) SetValue(v any) error {
	if c.invoking == 0 {
		return fmt.Errorf("%s: %w", c.Nid(), ErrForeignWrite)
	}
	decoded, err := Decode(c.kind.meta.Expose, v)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Nid(), err)
	}
	c.value = decoded
	return nil
}

// State returns the kind-specific state of c; nil for stateless kinds.
func (c *Instance) State() any { return c.state }

// StateOf returns the typed state of c, or nil when c carries a different type.
func StateOf[T any](c *Instance) *T {
	s, _ := c.state.(*T)
	return s
}

// IntValue reads the value of c as an int; fractional or non-numeric values
// yield 0.
func IntValue(c *Instance) int {
	n, _ := AsInt(c.value)
	return n
}

// FloatValue reads the value of c as a float64.
func FloatValue(c *Instance) float64 {
	f, _ := AsFloat(c.value)
	return f
}

// StringValue reads the value of c as a string.
func StringValue(c *Instance) string {
	s, _ := AsString(c.value)
	return s
}

// StringsValue reads a list value of c.
func StringsValue(c *Instance) []string { return AsStrings(c.value) }

// PairsValue reads a mapping value of c.
func PairsValue(c *Instance) []Pair {
	return Clone(AsPairs(c.value)).([]Pair)
}
