// Package deck keeps one painted surface per card and repaints them in the
// background whenever the cards or the render setting change.
package deck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/youruser/cardtoolkit/internal/cards"
	"github.com/youruser/cardtoolkit/internal/fonts"
	imagepkg "github.com/youruser/cardtoolkit/internal/image"
	"github.com/youruser/cardtoolkit/internal/setting"
	"github.com/youruser/cardtoolkit/internal/surface"
)

var (
	// ErrClosed is returned by operations on a closed deck.
	ErrClosed = errors.New("deck closed")
	// ErrNotPainted is returned when a slot has no committed paint yet.
	ErrNotPainted = errors.New("card not painted yet")
)

// DefaultWorkers bounds concurrent paints when no option overrides it.
const DefaultWorkers = 4

// Renderer paints card onto s.
type Renderer func(ctx context.Context, s surface.Surface, st setting.RenderSetting, card cards.Card) error

// SurfaceFactory returns a fresh, cleared surface.
type SurfaceFactory func(width, height int) surface.Surface

type Option func(*Deck)

func WithRenderer(r Renderer) Option {
	return func(d *Deck) { d.render = r }
}

func WithSurfaceFactory(f SurfaceFactory) Option {
	return func(d *Deck) { d.newSurface = f }
}

// WithFonts makes the default surface factory resolve fonts from reg.
func WithFonts(reg *fonts.Registry) Option {
	return func(d *Deck) { d.fonts = reg }
}

func WithWorkers(n int) Option {
	return func(d *Deck) {
		if n > 0 {
			d.workers = n
		}
	}
}

// Deck is the registry from card position to surface slot.
type Deck struct {
	width, height int
	render        Renderer
	newSurface    SurfaceFactory
	fonts         *fonts.Registry
	workers       int
	sem           *semaphore.Weighted

	ctx  context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup

	mu      sync.Mutex
	setting setting.RenderSetting
	slots   []*slot
	closed  bool
}

// New returns an empty deck whose cards are painted on width×height
// surfaces with st.
func New(width, height int, st setting.RenderSetting, opts ...Option) *Deck {
	d := &Deck{
		width:   width,
		height:  height,
		render:  imagepkg.RenderCard,
		workers: DefaultWorkers,
		setting: st,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.newSurface == nil {
		reg := d.fonts
		d.newSurface = func(w, h int) surface.Surface { return surface.NewCanvas(w, h, reg) }
	}
	d.sem = semaphore.NewWeighted(int64(d.workers))
	d.ctx, d.stop = context.WithCancel(context.Background())
	return d
}

// Setting returns the setting new paints use.
func (d *Deck) Setting() setting.RenderSetting {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.setting
}

// SetSetting replaces the render setting and repaints every card.
func (d *Deck) SetSetting(st setting.RenderSetting) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.setting = st
	for _, sl := range d.slots {
		d.schedule(sl, st)
	}
	return nil
}

// SetCards replaces every card. Existing slots are released and their
// in-flight paints cancelled.
func (d *Deck) SetCards(cs []cards.Card) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	for _, sl := range d.slots {
		sl.release()
	}
	d.slots = make([]*slot, 0, len(cs))
	for _, c := range cards.Renumber(cs) {
		sl := newSlot(c)
		d.slots = append(d.slots, sl)
		d.schedule(sl, d.setting)
	}
	return nil
}

// Add appends c as the last page and paints it.
func (d *Deck) Add(c cards.Card) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	c.PageIndex = len(d.slots) + 1
	sl := newSlot(c)
	d.slots = append(d.slots, sl)
	d.schedule(sl, d.setting)
	return nil
}

// Remove drops the card at position i (0-based). The cards after it keep
// their paints; only their page numbers change.
func (d *Deck) Remove(i int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if i < 0 || i >= len(d.slots) {
		return fmt.Errorf("%w: position %d of %d", cards.ErrNoCard, i, len(d.slots))
	}
	d.slots[i].release()
	d.slots = append(d.slots[:i:i], d.slots[i+1:]...)
	for n, sl := range d.slots[i:] {
		sl.renumber(i + n + 1)
	}
	return nil
}

// Update replaces the text of the card at position i and repaints it.
func (d *Deck) Update(i int, title, content string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if i < 0 || i >= len(d.slots) {
		return fmt.Errorf("%w: position %d of %d", cards.ErrNoCard, i, len(d.slots))
	}
	sl := d.slots[i]
	sl.edit(title, content)
	d.schedule(sl, d.setting)
	return nil
}

// Cards returns the current cards in page order.
func (d *Deck) Cards() []cards.Card {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]cards.Card, len(d.slots))
	for i, sl := range d.slots {
		out[i] = sl.snapshot().card
	}
	return out
}

func (d *Deck) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.slots)
}

// Surface returns the most recently committed paint of card i.
func (d *Deck) Surface(i int) (surface.Surface, error) {
	d.mu.Lock()
	if i < 0 || i >= len(d.slots) {
		n := len(d.slots)
		d.mu.Unlock()
		return nil, fmt.Errorf("%w: position %d of %d", cards.ErrNoCard, i, n)
	}
	sl := d.slots[i]
	d.mu.Unlock()

	st := sl.snapshot()
	if st.surface == nil {
		return nil, fmt.Errorf("page %d: %w", st.card.PageIndex, ErrNotPainted)
	}
	return st.surface, nil
}

// Wait blocks until every card has committed a paint of its latest
// schedule, or ctx ends.
func (d *Deck) Wait(ctx context.Context) error {
	d.mu.Lock()
	slots := append([]*slot(nil), d.slots...)
	d.mu.Unlock()

	for _, sl := range slots {
		for {
			current, changed := sl.settled()
			if current {
				break
			}
			select {
			case <-changed:
			case <-ctx.Done():
				return ctx.Err()
			case <-d.ctx.Done():
				return ErrClosed
			}
		}
	}
	return nil
}

// Close cancels every in-flight paint and waits for the painters to exit.
func (d *Deck) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.stop()
	d.wg.Wait()
}

// schedule starts a new paint generation for sl. Callers hold d.mu.
func (d *Deck) schedule(sl *slot, st setting.RenderSetting) {
	ctx, cancel := context.WithCancel(d.ctx)
	gen, card := sl.next(cancel)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()
		d.paint(ctx, sl, gen, card, st)
	}()
}

func (d *Deck) paint(ctx context.Context, sl *slot, gen uint64, card cards.Card, st setting.RenderSetting) {
	log := slog.With("page", card.PageIndex, "generation", gen)
	if err := d.sem.Acquire(ctx, 1); err != nil {
		return
	}
	defer d.sem.Release(1)

	s := d.newSurface(d.width, d.height)
	err := d.render(ctx, s, st, card)
	if ctx.Err() != nil {
		log.Debug("paint superseded")
		return
	}
	if err != nil {
		log.Warn("paint failed, using background fill", "error", err)
		s = d.newSurface(d.width, d.height)
		fallback(s, st)
	}
	if !sl.commit(gen, s, err) {
		log.Debug("stale paint discarded")
		return
	}
	log.Debug("paint committed")
}

// fallback fills s with the setting's background color, or white when the
// color itself is unusable.
func fallback(s surface.Surface, st setting.RenderSetting) {
	bg, err := st.BackgroundColor.Parse()
	if err != nil {
		bg, _ = setting.Default().BackgroundColor.Parse()
	}
	s.SetGlobalAlpha(1)
	s.FillRect(0, 0, float64(s.Width()), float64(s.Height()), bg)
}
