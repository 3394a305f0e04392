// Package game ties the component engine to one running skirmish: the board,
// the seeded random stream and the committed action history.
package game

import (
	"github.com/udisondev/tactica/internal/action"
	"github.com/udisondev/tactica/internal/component"
	"github.com/udisondev/tactica/internal/equation"
	"github.com/udisondev/tactica/internal/model"
	"github.com/udisondev/tactica/internal/playback"
	"github.com/udisondev/tactica/internal/rng"
)

// Session is the mutable state shared by every hook invocation of a skirmish.
type Session struct {
	Engine    *component.Engine
	Equations *equation.Set
	Board     *model.Board
	Random    *rng.Stream
	History   *action.History
	Playback  *playback.Log

	// Skills builds status skills granted by components. May be nil.
	Skills component.SkillFactory
	// Calc is installed by the combat resolver.
	Calc component.Calculator
}

// NewSession creates a session seeded with seed.
func NewSession(eng *component.Engine, eqs *equation.Set, board *model.Board, seed uint64) *Session {
	if eqs == nil {
		eqs = equation.Default()
	}
	return &Session{
		Engine:    eng,
		Equations: eqs,
		Board:     board,
		Random:    rng.New(seed),
		History:   action.NewHistory(),
		Playback:  playback.NewLog(),
	}
}

// Args returns hook arguments bound to the session collaborators and l.
func (s *Session) Args(l *action.List) *component.Args {
	a := &component.Args{
		Actions:  l,
		Playback: s.Playback,
		Random:   s.Random,
		Eval:     s.Equations,
		Skills:   s.Skills,
		Calc:     s.Calc,
	}
	// A nil *model.Board must not become a non-nil interface.
	if s.Board != nil {
		a.Board = s.Board
	}
	return a
}

// Settle commits l when ok, otherwise discards it.
func (s *Session) Settle(l *action.List, ok bool) {
	if ok {
		s.History.Commit(l)
		return
	}
	l.Discard()
}

// Digest fingerprints the committed history.
func (s *Session) Digest() string { return s.History.Digest() }
