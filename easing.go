package reel

import (
	"sort"

	"github.com/tanema/gween/ease"
)

// easings maps the names accepted by EasingByName to gween curves. The names
// are the gween function names with a lower-case first letter, so they read
// naturally in YAML, JSON and tengo scripts.
var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"inQuad":       ease.InQuad,
	"outQuad":      ease.OutQuad,
	"inOutQuad":    ease.InOutQuad,
	"inCubic":      ease.InCubic,
	"outCubic":     ease.OutCubic,
	"inOutCubic":   ease.InOutCubic,
	"inQuart":      ease.InQuart,
	"outQuart":     ease.OutQuart,
	"inOutQuart":   ease.InOutQuart,
	"inQuint":      ease.InQuint,
	"outQuint":     ease.OutQuint,
	"inOutQuint":   ease.InOutQuint,
	"inSine":       ease.InSine,
	"outSine":      ease.OutSine,
	"inOutSine":    ease.InOutSine,
	"inExpo":       ease.InExpo,
	"outExpo":      ease.OutExpo,
	"inOutExpo":    ease.InOutExpo,
	"inCirc":       ease.InCirc,
	"outCirc":      ease.OutCirc,
	"inOutCirc":    ease.InOutCirc,
	"inElastic":    ease.InElastic,
	"outElastic":   ease.OutElastic,
	"inOutElastic": ease.InOutElastic,
	"inBack":       ease.InBack,
	"outBack":      ease.OutBack,
	"inOutBack":    ease.InOutBack,
	"inBounce":     ease.InBounce,
	"outBounce":    ease.OutBounce,
	"inOutBounce":  ease.InOutBounce,
}

// EasingByName returns the gween easing curve called name, e.g. "outCubic".
func EasingByName(name string) (ease.TweenFunc, bool) {
	fn, ok := easings[name]
	return fn, ok
}

// EasingNames returns every name EasingByName accepts, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// easeAt evaluates fn at progress t in [0, 1].
func easeAt(fn ease.TweenFunc, t float64) float64 {
	return float64(fn(float32(t), 0, 1, 1))
}
