package catalog

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"placebook/models"
)

// RouletteDelay is how long the roulette overlay spins before the pick shows.
const RouletteDelay = 1400 * time.Millisecond

// NotReadyMessage is the alert shown when there is nothing to pick from.
const NotReadyMessage = "식당 데이터가 아직 준비되지 않았습니다."

// ErrNotReady is returned when picking from an empty catalog.
var ErrNotReady = errors.New("catalog: " + NotReadyMessage)

// Picker selects venues uniformly at random, independently on every call.
type Picker struct {
	rng   *rand.Rand
	delay time.Duration
}

// NewPicker creates a Picker. A nil src seeds from the runtime.
func NewPicker(src rand.Source, delay time.Duration) *Picker {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Picker{rng: rand.New(src), delay: delay}
}

// Delay returns the overlay duration.
func (p *Picker) Delay() time.Duration {
	return p.delay
}

// Pick returns venues[floor(u*n)] for u uniform in [0,1).
func (p *Picker) Pick(venues []models.Venue) (models.Venue, error) {
	if len(venues) == 0 {
		return models.Venue{}, ErrNotReady
	}
	i := int(math.Floor(p.rng.Float64() * float64(len(venues))))
	return venues[i], nil
}

// Spin waits for the overlay delay and then picks. An empty catalog fails
// immediately without waiting.
func (p *Picker) Spin(ctx context.Context, venues []models.Venue) (models.Venue, error) {
	if len(venues) == 0 {
		return models.Venue{}, ErrNotReady
	}
	t := time.NewTimer(p.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return models.Venue{}, ctx.Err()
	case <-t.C:
	}
	return p.Pick(venues)
}
