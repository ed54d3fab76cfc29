package emotion

import (
	"math/rand/v2"
)

// DefaultWeight is the weight Normal falls back to when nothing else is positive
const DefaultWeight = 1.0

// Weight is one blender entry
type Weight struct {
	Emotion Emotion
	Weight  float64
}

// Blender keeps a weighted set of emotions in insertion order
// Weights are stored as given. Normal is never removed and counts as
// DefaultWeight while no entry is positive, so some emotion is always effective
type Blender struct {
	entries []Weight
}

// NewBlender returns a blender holding Normal at DefaultWeight
func NewBlender() *Blender {
	return &Blender{entries: []Weight{{Emotion: Normal, Weight: DefaultWeight}}}
}

func (b *Blender) index(e Emotion) int {
	for i, w := range b.entries {
		if w.Emotion == e {
			return i
		}
	}
	return -1
}

// SetEmotion upserts the weight for e
// An overwrite keeps the original insertion position. A weight <= 0 removes the
// entry, except Normal which is kept at zero. Invalid emotions are ignored
func (b *Blender) SetEmotion(e Emotion, weight float64) {
	if !e.Valid() {
		return
	}
	i := b.index(e)
	switch {
	case weight > 0:
		if i >= 0 {
			b.entries[i].Weight = weight
		} else {
			b.entries = append(b.entries, Weight{Emotion: e, Weight: weight})
		}
	case e == Normal:
		b.entries[i].Weight = 0
	case i >= 0:
		b.entries = append(b.entries[:i], b.entries[i+1:]...)
	}
}

// fallback reports whether no stored weight is positive
func (b *Blender) fallback() bool {
	for _, w := range b.entries {
		if w.Weight > 0 {
			return false
		}
	}
	return true
}

// effective returns the entries with the Normal fallback applied
func (b *Blender) effective() []Weight {
	if !b.fallback() {
		return b.entries
	}
	out := make([]Weight, len(b.entries))
	copy(out, b.entries)
	out[b.index(Normal)].Weight = DefaultWeight
	return out
}

// Weight returns the effective weight of e, 0 when absent
func (b *Blender) Weight(e Emotion) float64 {
	if e == Normal && b.fallback() {
		return DefaultWeight
	}
	if i := b.index(e); i >= 0 {
		return b.entries[i].Weight
	}
	return 0
}

// Weights returns the effective entries in insertion order
func (b *Blender) Weights() []Weight {
	ws := b.effective()
	out := make([]Weight, len(ws))
	copy(out, ws)
	return out
}

// Reset returns to Normal at DefaultWeight
func (b *Blender) Reset() {
	b.entries = append(b.entries[:0], Weight{Emotion: Normal, Weight: DefaultWeight})
}

// Dominant returns the highest weighted emotion
// Ties go to the entry inserted first
func (b *Blender) Dominant() (Emotion, float64) {
	ws := b.effective()
	best := ws[0]
	for _, w := range ws[1:] {
		if w.Weight > best.Weight {
			best = w
		}
	}
	return best.Emotion, best.Weight
}

// Sample picks an emotion at random, proportional to weight
// A nil r uses the global source
func (b *Blender) Sample(r *rand.Rand) Emotion {
	ws := b.effective()
	var total float64
	for _, w := range ws {
		if w.Weight > 0 {
			total += w.Weight
		}
	}
	var x float64
	if r != nil {
		x = r.Float64() * total
	} else {
		x = rand.Float64() * total
	}

	last := Normal
	for _, w := range ws {
		if w.Weight <= 0 {
			continue
		}
		if x < w.Weight {
			return w.Emotion
		}
		x -= w.Weight
		last = w.Emotion
	}
	// Float rounding can leave x just past the final bucket
	return last
}

// Blend returns the weight-normalised average shape of all positive entries
func (b *Blender) Blend() Shape {
	var (
		sum   Shape
		total float64
	)
	for _, w := range b.effective() {
		if w.Weight <= 0 {
			continue
		}
		sum = sum.Add(w.Emotion.Shape().Scale(w.Weight))
		total += w.Weight
	}
	if total == 0 {
		return Neutral
	}
	return sum.Scale(1 / total)
}
