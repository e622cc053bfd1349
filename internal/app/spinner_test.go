package app

import (
	"errors"
	"math"
	"testing"

	"wheel-quiz-service/internal/domain"
)

func TestSpinFrequencyConvergesToWeights(t *testing.T) {
	segments := []domain.Segment{
		{ID: "small", Probability: 1},
		{ID: "medium", Probability: 3},
		{ID: "large", Probability: 6},
	}
	spinner := NewSeededSpinner(42)

	const trials = 100000
	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		seg, err := spinner.Spin(segments)
		if err != nil {
			t.Fatalf("spin: %v", err)
		}
		counts[seg.ID]++
	}

	for _, seg := range segments {
		want := seg.Probability / 10
		got := float64(counts[seg.ID]) / trials
		if math.Abs(got-want) > 0.01 {
			t.Errorf("segment %s frequency %.4f, want %.2f", seg.ID, got, want)
		}
	}
}

func TestSpinNeverPicksZeroWeight(t *testing.T) {
	segments := []domain.Segment{
		{ID: "never", Probability: 0},
		{ID: "always", Probability: 0.5},
		{ID: "negative", Probability: -1},
	}
	spinner := NewSeededSpinner(1)
	for i := 0; i < 1000; i++ {
		seg, err := spinner.Spin(segments)
		if err != nil {
			t.Fatalf("spin: %v", err)
		}
		if seg.ID != "always" {
			t.Fatalf("picked %s", seg.ID)
		}
	}
}

func TestSpinEmptyWheel(t *testing.T) {
	spinner := NewSeededSpinner(1)
	for _, segments := range [][]domain.Segment{nil, {{ID: "zero", Probability: 0}}} {
		if _, err := spinner.Spin(segments); !errors.Is(err, domain.ErrNoSegments) {
			t.Fatalf("expected ErrNoSegments, got %v", err)
		}
		if _, err := spinner.Spin(segments); !errors.Is(err, domain.ErrInvalidOperation) {
			t.Fatalf("expected invalid operation kind, got %v", err)
		}
	}
}

func TestSpinTopOfRange(t *testing.T) {
	spinner := NewSpinner(fixedSource{f: 0.9999999999999999})
	seg, err := spinner.Spin([]domain.Segment{{ID: "a", Probability: 0.1}, {ID: "b", Probability: 0.2}})
	if err != nil {
		t.Fatalf("spin: %v", err)
	}
	if seg.ID != "b" {
		t.Fatalf("expected last segment, got %s", seg.ID)
	}
}

func TestRotationRange(t *testing.T) {
	spinner := NewSeededSpinner(3)
	for i := 0; i < 5000; i++ {
		r := spinner.Rotation()
		if r < 720 || r >= 1440 {
			t.Fatalf("rotation %d out of range", r)
		}
	}
}

type fixedSource struct {
	f float64
	n int
}

func (s fixedSource) Float64() float64 { return s.f }
func (s fixedSource) Intn(int) int     { return s.n }
