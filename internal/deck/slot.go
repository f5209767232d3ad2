package deck

import (
	"context"
	"sync"

	"github.com/youruser/cardtoolkit/internal/cards"
	"github.com/youruser/cardtoolkit/internal/surface"
)

// slot owns the painted surface of one card. gen counts schedules; a paint
// may only commit while its generation is still the current one.
type slot struct {
	mu        sync.Mutex
	card      cards.Card
	gen       uint64
	committed uint64
	cancel    context.CancelFunc
	released  bool

	surface surface.Surface
	err     error
	// changed is closed and replaced on every commit and on release.
	changed chan struct{}
}

type slotState struct {
	card    cards.Card
	surface surface.Surface
	err     error
}

func newSlot(c cards.Card) *slot {
	return &slot{card: c, changed: make(chan struct{})}
}

// next starts a new generation, cancelling the paint of the previous one.
func (sl *slot) next(cancel context.CancelFunc) (uint64, cards.Card) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	if sl.cancel != nil {
		sl.cancel()
	}
	sl.gen++
	sl.cancel = cancel
	return sl.gen, sl.card
}

// commit stores s as the slot's paint unless gen has been superseded.
func (sl *slot) commit(gen uint64, s surface.Surface, err error) bool {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	if sl.released || gen != sl.gen {
		return false
	}
	sl.surface, sl.err, sl.committed = s, err, gen
	sl.signal()
	return true
}

func (sl *slot) signal() {
	close(sl.changed)
	sl.changed = make(chan struct{})
}

// release cancels any in-flight paint; the slot accepts no further commits.
func (sl *slot) release() {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	if sl.released {
		return
	}
	sl.released = true
	if sl.cancel != nil {
		sl.cancel()
	}
	sl.signal()
}

// settled reports whether the latest generation has been committed. When
// it has not, the returned channel is closed on the next change.
func (sl *slot) settled() (bool, <-chan struct{}) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.released || sl.committed == sl.gen, sl.changed
}

func (sl *slot) edit(title, content string) {
	sl.mu.Lock()
	sl.card.Title, sl.card.Content = title, content
	sl.mu.Unlock()
}

func (sl *slot) renumber(page int) {
	sl.mu.Lock()
	sl.card.PageIndex = page
	sl.mu.Unlock()
}

func (sl *slot) snapshot() slotState {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return slotState{card: sl.card, surface: sl.surface, err: sl.err}
}
