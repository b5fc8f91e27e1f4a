package font

import "sync"

// FixedFace is a face with uniform per-codepoint advances. It backs the
// tests and any headless run, and doubles as the last-resort fallback when
// no real font file loaded.
type FixedFace struct {
	// AdvanceRatio is the advance of every codepoint as a fraction of the
	// font size. Zero means the conventional 0.6.
	AdvanceRatio float64
}

func (f *FixedFace) ratio() float64 {
	if f.AdvanceRatio == 0 {
		return 0.6
	}
	return f.AdvanceRatio
}

func (f *FixedFace) Advance(r rune, sizePx float64) float64 {
	return sizePx * f.ratio()
}

func (f *FixedFace) Ascent(sizePx float64) float64 {
	return sizePx * 0.8
}

func (f *FixedFace) Descent(sizePx float64) float64 {
	return sizePx * 0.2
}

func (f *FixedFace) TextWidth(s string, sizePx float64) float64 {
	return MeasureWidth(f, s, sizePx)
}

func (f *FixedFace) HitTest(s string, localX, sizePx float64) int {
	return HitTestString(f, s, localX, sizePx)
}

func (f *FixedFace) PositionAtIndex(s string, index int, sizePx float64) float64 {
	return PositionAt(f, s, index, sizePx)
}

// Registry is a Provider over named faces. Registration may happen from
// loader goroutines; lookups lock briefly and the returned Face is
// immutable afterwards.
type Registry struct {
	mu       sync.RWMutex
	faces    map[faceKey]Face
	families map[string]bool
	fallback Face
}

type faceKey struct {
	family string
	bold   bool
	italic bool
}

// NewRegistry creates an empty registry with the given last-resort face
// (nil means text measures zero-width until something is registered).
func NewRegistry(fallback Face) *Registry {
	return &Registry{
		faces:    make(map[faceKey]Face),
		families: make(map[string]bool),
		fallback: fallback,
	}
}

// Register adds a face for a family/weight/style combination.
func (reg *Registry) Register(family string, weight int, style string, face Face) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.faces[faceKey{family, weight >= 600, style == "italic"}] = face
	reg.families[family] = true
}

// GetFont resolves the family list, then serif, then any registered face,
// then the fallback.
func (reg *Registry) GetFont(families []string, weight int, style string) Face {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	bold := weight >= 600
	italic := style == "italic"

	lookup := func(family string) Face {
		// Prefer the exact variant, then degrade toward regular.
		for _, key := range []faceKey{
			{family, bold, italic},
			{family, bold, false},
			{family, false, italic},
			{family, false, false},
		} {
			if f, ok := reg.faces[key]; ok {
				return f
			}
		}
		return nil
	}

	for _, family := range families {
		if f := lookup(family); f != nil {
			return f
		}
	}
	if f := lookup("serif"); f != nil {
		return f
	}
	for _, f := range reg.faces {
		return f
	}
	return reg.fallback
}

// FixedProvider returns a Provider that serves the same FixedFace for every
// request. Tests use it for deterministic metrics.
func FixedProvider(ratio float64) Provider {
	return fixedProvider{face: &FixedFace{AdvanceRatio: ratio}}
}

type fixedProvider struct {
	face Face
}

func (p fixedProvider) GetFont(families []string, weight int, style string) Face {
	return p.face
}
