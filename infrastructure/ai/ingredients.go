package ai

import (
	"math/rand"
	"sync"

	"ideaforge-backend/application/ports"
	pkgerrors "ideaforge-backend/pkg/errors"
)

// defaultIngredients is the curated pool of mashup ingredients. Entries are
// deliberately mundane, the comedy comes from the combination.
var defaultIngredients = []string{
	"toaster",
	"umbrella",
	"houseplant",
	"skateboard",
	"alarm clock",
	"vending machine",
	"karaoke machine",
	"treadmill",
	"fish tank",
	"doorbell",
	"lawn mower",
	"coffee grinder",
	"shopping cart",
	"telescope",
	"hammock",
	"pizza oven",
	"parking meter",
	"disco ball",
	"garden gnome",
	"luggage",
	"microwave",
	"birdhouse",
	"snow globe",
	"stapler",
	"bathtub",
	"traffic cone",
	"jukebox",
	"picnic basket",
	"periscope",
	"metronome",
}

// IngredientPool implements ports.IngredientSource over a fixed list.
type IngredientPool struct {
	mu    sync.Mutex
	items []string
	rng   *rand.Rand
}

// NewIngredientPool creates a pool from the given items, falling back to the
// built-in list when items is empty.
func NewIngredientPool(items []string, seed int64) *IngredientPool {
	if len(items) == 0 {
		items = defaultIngredients
	}
	return &IngredientPool{
		items: items,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

var _ ports.IngredientSource = (*IngredientPool)(nil)

// RandomPair returns two distinct ingredients.
func (p *IngredientPool) RandomPair() (string, string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.items) < 2 {
		return "", "", pkgerrors.NewInternalError("ingredient pool too small")
	}

	i := p.rng.Intn(len(p.items))
	j := p.rng.Intn(len(p.items) - 1)
	if j >= i {
		j++
	}

	return p.items[i], p.items[j], nil
}

// All returns a copy of the full ingredient pool.
func (p *IngredientPool) All() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, len(p.items))
	copy(out, p.items)
	return out
}
