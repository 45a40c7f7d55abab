package catalog

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"placebook/models"
)

func threeVenues() []models.Venue {
	return []models.Venue{{Title: "A"}, {Title: "B"}, {Title: "C"}}
}

func TestPickEmpty(t *testing.T) {
	p := NewPicker(rand.NewPCG(1, 2), RouletteDelay)
	if _, err := p.Pick(nil); !errors.Is(err, ErrNotReady) {
		t.Errorf("expected ErrNotReady, got %v", err)
	}
}

func TestPickDistribution(t *testing.T) {
	p := NewPicker(rand.NewPCG(7, 11), RouletteDelay)
	venues := threeVenues()

	const trials = 30000
	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		v, err := p.Pick(venues)
		if err != nil {
			t.Fatalf("Pick: %v", err)
		}
		counts[v.Title]++
	}

	if len(counts) != 3 {
		t.Fatalf("picked outside the set or missed members: %v", counts)
	}
	for title, n := range counts {
		share := float64(n) / trials
		if share < 0.30 || share > 0.37 {
			t.Errorf("%s share %.3f is far from 1/3", title, share)
		}
	}
}

func TestSpinWaitsThenPicks(t *testing.T) {
	p := NewPicker(rand.NewPCG(1, 2), 20*time.Millisecond)

	start := time.Now()
	v, err := p.Spin(context.Background(), threeVenues())
	if err != nil {
		t.Fatalf("Spin: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Spin returned after %v, before the delay", elapsed)
	}
	if v.Title == "" {
		t.Error("Spin returned an empty venue")
	}
}

func TestSpinCancelled(t *testing.T) {
	p := NewPicker(nil, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Spin(ctx, threeVenues()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSpinEmptyFailsFast(t *testing.T) {
	p := NewPicker(nil, time.Hour)
	if _, err := p.Spin(context.Background(), nil); !errors.Is(err, ErrNotReady) {
		t.Errorf("expected ErrNotReady, got %v", err)
	}
}
