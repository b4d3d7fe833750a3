package topics

import (
	"math/rand/v2"
	"sync"

	"autoblog/internal/core"
)

// Picker draws a topic with probability proportional to its relevance.
type Picker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPicker uses rng for draws; nil seeds from the runtime source.
func NewPicker(rng *rand.Rand) *Picker {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Picker{rng: rng}
}

// NewSeededPicker is deterministic for a given seed.
func NewSeededPicker(seed uint64) *Picker {
	return NewPicker(rand.New(rand.NewPCG(seed, seed)))
}

// Pick returns one topic. An empty list yields the first fallback topic;
// if every weight is zero the first topic wins.
func (p *Picker) Pick(topics []core.Topic) core.Topic {
	if len(topics) == 0 {
		return FallbackTopics()[0]
	}

	var total float64
	for _, t := range topics {
		total += t.Relevance
	}
	if total <= 0 {
		return topics[0]
	}

	p.mu.Lock()
	r := p.rng.Float64() * total
	p.mu.Unlock()

	for _, t := range topics {
		r -= t.Relevance
		if r <= 0 {
			return t
		}
	}
	return topics[0]
}
