// Package randomize produces the session's random assignments: agent,
// task order, pole reversal, per-type task draws, and per-render item
// shuffles. Assignment freezing is enforced by the record's guarded
// setters; this package only draws.
package randomize

import (
	"math/rand"
	"time"

	"github.com/philhmdresearch-afk/trust-ai-study/internal/catalog"
)

// Engine wraps a random source. Production code uses New; tests inject a
// seed through NewSeeded for reproducible draws.
type Engine struct {
	rng *rand.Rand
}

// New returns an engine seeded from the current time.
func New() *Engine {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns an engine with a deterministic source.
func NewSeeded(seed int64) *Engine {
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

// CoinFlip returns true with probability 0.5.
func (e *Engine) CoinFlip() bool {
	return e.rng.Intn(2) == 0
}

// PickAgent draws uniformly from the catalog's agent list.
func (e *Engine) PickAgent(agents []catalog.Agent) catalog.Agent {
	return agents[e.rng.Intn(len(agents))]
}

// PickTaskOrder draws uniformly between the two possible orderings of
// the task types.
func (e *Engine) PickTaskOrder() []catalog.TaskType {
	if e.CoinFlip() {
		return []catalog.TaskType{catalog.TaskInformational, catalog.TaskGenerative}
	}
	return []catalog.TaskType{catalog.TaskGenerative, catalog.TaskInformational}
}

// PickTask draws uniformly from the tasks of one type.
func (e *Engine) PickTask(tasks []catalog.TaskDef) catalog.TaskDef {
	return tasks[e.rng.Intn(len(tasks))]
}

// ShuffleItems returns a freshly shuffled copy of items. The shuffle is
// recomputed on every render and never persisted: responses are keyed by
// item id, not display position.
func (e *Engine) ShuffleItems(items []catalog.ScaleItem) []catalog.ScaleItem {
	shuffled := append([]catalog.ScaleItem(nil), items...)
	e.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// CanonicalValue maps a 1-7 screen position to the stored canonical
// value. Position counts from the left pole; when poles are displayed
// reversed the mapping flips so that a stored 7 always means the
// positive pole and a stored 1 always means the negative pole.
func CanonicalValue(position int, reversed bool) int {
	if reversed {
		return 8 - position
	}
	return position
}

// DisplayPoles returns the left and right pole labels for an item under
// the session's reversal flag.
func DisplayPoles(item catalog.ScaleItem, reversed bool) (left, right string) {
	if reversed {
		return item.PosPole, item.NegPole
	}
	return item.NegPole, item.PosPole
}
