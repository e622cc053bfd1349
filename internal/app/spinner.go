package app

import (
	"math/rand"
	"sync"
	"time"

	"wheel-quiz-service/internal/domain"
)

const (
	minRotation   = 720
	rotationRange = 720
)

// RandomSource is the randomness the spinner draws from. *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

// Spinner performs weighted-random segment selection.
type Spinner struct {
	mu  sync.Mutex
	rnd RandomSource
}

// NewSpinner wraps rnd; a nil source falls back to a time-seeded generator.
func NewSpinner(rnd RandomSource) *Spinner {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Spinner{rnd: rnd}
}

// NewSeededSpinner is a convenience for reproducible wheels (tests, demos).
func NewSeededSpinner(seed int64) *Spinner {
	return NewSpinner(rand.New(rand.NewSource(seed)))
}

// Spin picks a segment with probability proportional to its weight.
// Segments with a non-positive weight are never picked.
func (s *Spinner) Spin(segments []domain.Segment) (domain.Segment, error) {
	total := 0.0
	for _, seg := range segments {
		if seg.Probability > 0 {
			total += seg.Probability
		}
	}
	if total <= 0 {
		return domain.Segment{}, domain.ErrNoSegments
	}

	s.mu.Lock()
	r := s.rnd.Float64() * total
	s.mu.Unlock()

	var (
		running float64
		last    int
	)
	for i, seg := range segments {
		if seg.Probability <= 0 {
			continue
		}
		running += seg.Probability
		last = i
		if r < running {
			return seg, nil
		}
	}
	// float rounding can leave r at the very top of the range
	return segments[last], nil
}

// Rotation returns a cosmetic wheel rotation in [720, 1440) degrees.
func (s *Spinner) Rotation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return minRotation + s.rnd.Intn(rotationRange)
}
