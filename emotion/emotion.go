// Package emotion holds the closed set of expressions and the weighted blender
// that selects which one the eyes show
package emotion

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknown is returned by Parse for names outside the enumeration
var ErrUnknown = errors.New("unknown emotion")

// Emotion identifies one expression
type Emotion uint8

const (
	Normal Emotion = iota
	Happy
	Sad
	Angry
	Surprised
	Fearful
	Disgusted
	Glee
	Content
	Relaxed
	Focused
	Confused
	Frustrated
	Determined
	Concerned
	Expectant
	Joyful
	Loving

	// Count is the number of valid emotions
	Count
)

var names = [Count]string{
	Normal:     "normal",
	Happy:      "happy",
	Sad:        "sad",
	Angry:      "angry",
	Surprised:  "surprised",
	Fearful:    "fearful",
	Disgusted:  "disgusted",
	Glee:       "glee",
	Content:    "content",
	Relaxed:    "relaxed",
	Focused:    "focused",
	Confused:   "confused",
	Frustrated: "frustrated",
	Determined: "determined",
	Concerned:  "concerned",
	Expectant:  "expectant",
	Joyful:     "joyful",
	Loving:     "loving",
}

// Valid reports whether e is inside the enumeration
func (e Emotion) Valid() bool {
	return e < Count
}

func (e Emotion) String() string {
	if !e.Valid() {
		return fmt.Sprintf("emotion(%d)", uint8(e))
	}
	return names[e]
}

// Parse maps a case-insensitive name to its Emotion
func Parse(name string) (Emotion, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range names {
		if s == n {
			return Emotion(i), nil
		}
	}
	return Normal, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// All returns every emotion in declaration order
func All() []Emotion {
	out := make([]Emotion, Count)
	for i := range out {
		out[i] = Emotion(i)
	}
	return out
}
