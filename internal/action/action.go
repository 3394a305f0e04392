// Package action holds reversible gameplay mutations, the pending list hooks
// append to during a phase and the committed history used for rewind.
package action

import (
	"encoding/hex"
	"log/slog"

	"github.com/udisondev/tactica/internal/rng"
	"golang.org/x/crypto/blake2b"
)

// Action is a reversible gameplay mutation.
type Action interface {
	Do()
	Reverse()
	Describe() string
}

// Eager actions have already taken effect when appended. Committing does not
// run them again and discarding a list reverses them.
type Eager interface {
	Action
	Eager()
}

func isEager(a Action) bool {
	_, ok := a.(Eager)
	return ok
}

// List accumulates the actions of one phase until the caller commits or
// discards it.
type List struct {
	actions []Action
}

// NewList creates an empty pending list.
func NewList() *List { return &List{} }

// Append adds a to the list.
func (l *List) Append(a Action) { l.actions = append(l.actions, a) }

// Actions returns the pending actions in order.
func (l *List) Actions() []Action {
	out := make([]Action, len(l.actions))
	copy(out, l.actions)
	return out
}

// Len returns the number of pending actions.
func (l *List) Len() int { return len(l.actions) }

// Discard drops the pending actions, reversing eager ones newest first.
func (l *List) Discard() {
	for i := len(l.actions) - 1; i >= 0; i-- {
		if isEager(l.actions[i]) {
			l.actions[i].Reverse()
		}
	}
	l.actions = nil
}

// History is the committed action log of a session.
type History struct {
	actions []Action
}

// NewHistory creates an empty history.
func NewHistory() *History { return &History{} }

// Commit applies every pending action of l in order and empties l.
func (h *History) Commit(l *List) {
	for _, a := range l.actions {
		if !isEager(a) {
			a.Do()
		}
		h.actions = append(h.actions, a)
	}
	l.actions = nil
}

// Do applies a immediately and records it.
func (h *History) Do(a Action) {
	if !isEager(a) {
		a.Do()
	}
	h.actions = append(h.actions, a)
}

// Mark returns the current position for a later RewindTo.
func (h *History) Mark() int { return len(h.actions) }

// RewindTo reverses every action committed after mark, newest first.
func (h *History) RewindTo(mark int) {
	if mark < 0 {
		mark = 0
	}
	for len(h.actions) > mark {
		last := h.actions[len(h.actions)-1]
		last.Reverse()
		h.actions = h.actions[:len(h.actions)-1]
	}
	slog.Debug("history rewound", "mark", mark)
}

// Len returns the number of committed actions.
func (h *History) Len() int { return len(h.actions) }

// Actions returns the committed actions in order.
func (h *History) Actions() []Action {
	out := make([]Action, len(h.actions))
	copy(out, h.actions)
	return out
}

// Digest fingerprints the committed log. Two sessions replayed from the same
// seed and inputs produce the same digest.
func (h *History) Digest() string {
	hash, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	for _, a := range h.actions {
		hash.Write([]byte(a.Describe()))
		hash.Write([]byte{0})
	}
	return hex.EncodeToString(hash.Sum(nil))
}

// RandomAdvance records a random stream transition that already happened.
type RandomAdvance struct {
	Stream *rng.Stream
	Before []byte
	After  []byte
}

func (r *RandomAdvance) Eager() {}

// Do moves the stream to the post-roll position.
func (r *RandomAdvance) Do() {
	if err := r.Stream.Restore(r.After); err != nil {
		slog.Error("random stream replay failed", "err", err)
	}
}

// Reverse moves the stream back to the pre-roll position.
func (r *RandomAdvance) Reverse() {
	if err := r.Stream.Restore(r.Before); err != nil {
		slog.Error("random stream rewind failed", "err", err)
	}
}

func (r *RandomAdvance) Describe() string {
	return "random " + hex.EncodeToString(r.After)
}

// Roll draws from s and records the transition on l.
func Roll(l *List, s *rng.Stream, n int) int {
	before := s.State()
	v := s.Roll(n)
	l.Append(&RandomAdvance{Stream: s, Before: before, After: s.State()})
	return v
}
