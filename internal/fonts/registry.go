package fonts

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFamily is used whenever a requested family is not registered.
const DefaultFamily = "Arial"

// DefaultFamilies lists the families offered by the toolkit out of the box.
var DefaultFamilies = []string{"Arial", "Georgia", "Times New Roman", "Courier New"}

type family struct {
	faces map[Weight]*truetype.Font
}

// pick returns the registered font closest to w, preferring the lighter
// one on ties.
func (f *family) pick(w Weight) *truetype.Font {
	var best *truetype.Font
	bestDist := -1
	for fw, ft := range f.faces {
		d := int(fw - w)
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist || (d == bestDist && fw < w) {
			best, bestDist = ft, d
		}
	}
	return best
}

// Registry maps family names and weights to parsed TrueType fonts.
// Parsed fonts are read-only and may be shared across goroutines; faces are
// not, so callers build their own faces from the returned fonts.
type Registry struct {
	mu       sync.RWMutex
	families map[string]*family
}

// NewRegistry returns a registry preloaded with DefaultFamilies, all backed
// by the bundled Go fonts.
func NewRegistry() *Registry {
	r := &Registry{families: map[string]*family{}}
	sans := map[Weight]*truetype.Font{
		WeightNormal: bundled().regular,
		WeightMedium: bundled().medium,
		WeightBold:   bundled().bold,
	}
	mono := map[Weight]*truetype.Font{
		WeightNormal: bundled().mono,
		WeightBold:   bundled().monoBold,
	}
	for _, name := range DefaultFamilies {
		faces := sans
		if name == "Courier New" {
			faces = mono
		}
		for w, f := range faces {
			r.add(name, w, f)
		}
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process wide registry.
func Default() *Registry {
	defaultOnce.Do(func() { defaultRegistry = NewRegistry() })
	return defaultRegistry
}

func (r *Registry) add(name string, w Weight, f *truetype.Font) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(name)
	fam, ok := r.families[key]
	if !ok {
		fam = &family{faces: map[Weight]*truetype.Font{}}
		r.families[key] = fam
	}
	fam.faces[w] = f
}

// Register parses ttf and makes it available as name at weight w.
func (r *Registry) Register(name string, w Weight, ttf []byte) error {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", name, err)
	}
	r.add(name, w, f)
	return nil
}

// Font returns the font for family at weight w, falling back to
// DefaultFamily when family is unknown.
func (r *Registry) Font(name string, w Weight) *truetype.Font {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if fam, ok := r.families[strings.ToLower(name)]; ok {
		return fam.pick(w)
	}
	return r.families[strings.ToLower(DefaultFamily)].pick(w)
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.families[strings.ToLower(name)]
	return ok
}

// Families returns the registered family keys in sorted order.
func (r *Registry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.families))
	for k := range r.families {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// LoadDir registers every .ttf file in dir. File names follow the
// "Family-Weight.ttf" convention ("Nanum Gothic-Bold.ttf",
// "Pretendard-700.ttf"); a name without a suffix is registered as normal.
// It returns the number of fonts registered.
func (r *Registry) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read font dir %s: %w", dir, err)
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".ttf") {
			continue
		}
		name, w := splitFileName(e.Name())
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return n, fmt.Errorf("read font %s: %w", e.Name(), err)
		}
		if err := r.Register(name, w, b); err != nil {
			slog.Warn("skipping font file", "file", e.Name(), "error", err)
			continue
		}
		n++
	}
	return n, nil
}

func splitFileName(file string) (string, Weight) {
	base := strings.TrimSuffix(file, filepath.Ext(file))
	i := strings.LastIndex(base, "-")
	if i <= 0 {
		return base, WeightNormal
	}
	w, err := ParseWeight(base[i+1:])
	if err != nil {
		return base, WeightNormal
	}
	return base[:i], w
}

type goFonts struct {
	regular, medium, bold, mono, monoBold *truetype.Font
}

var (
	goFontsOnce sync.Once
	goFontsSet  goFonts
)

func bundled() goFonts {
	goFontsOnce.Do(func() {
		goFontsSet = goFonts{
			regular:  mustParse(goregular.TTF),
			medium:   mustParse(gomedium.TTF),
			bold:     mustParse(gobold.TTF),
			mono:     mustParse(gomono.TTF),
			monoBold: mustParse(gomonobold.TTF),
		}
	})
	return goFontsSet
}

func mustParse(ttf []byte) *truetype.Font {
	f, err := truetype.Parse(ttf)
	if err != nil {
		panic("fonts: bundled font: " + err.Error())
	}
	return f
}
