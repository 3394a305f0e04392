// Package rng provides the deterministic random stream owned by a combat or
// turn session.
package rng

import (
	"fmt"
	"math/rand/v2"
)

// Stream is a seeded PCG stream whose full state can be captured and
// restored, so that a rewound phase replays the same rolls.
type Stream struct {
	src *rand.PCG
	r   *rand.Rand
}

// New creates a stream from seed.
func New(seed uint64) *Stream {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Stream{src: src, r: rand.New(src)}
}

// Roll returns an integer in [0, n). n <= 0 yields 0 without advancing.
func (s *Stream) Roll(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.IntN(n)
}

// Percent returns an integer in [0, 100).
func (s *Stream) Percent() int { return s.Roll(100) }

// State captures the stream position.
func (s *Stream) State() []byte {
	b, err := s.src.MarshalBinary()
	if err != nil {
		// PCG.MarshalBinary never fails.
		panic(err)
	}
	return b
}

// Restore rewinds or fast-forwards the stream to a captured position.
func (s *Stream) Restore(state []byte) error {
	if err := s.src.UnmarshalBinary(state); err != nil {
		return fmt.Errorf("restoring random stream: %w", err)
	}
	return nil
}
