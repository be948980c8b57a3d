package reel

import (
	"fmt"
	"io"
	"os"
)

// debugEnabled gates all diagnostic output. reel is single-threaded, so a
// plain bool is enough.
var debugEnabled bool

// debugOut is where diagnostics are written. Tests swap it for a buffer.
var debugOut io.Writer = os.Stderr

// SetDebugMode enables or disables debug mode. When enabled, controller mode
// changes, tweener flushes, lerper resolution failures and watcher errors are
// printed to stderr with a "[reel]" prefix.
func SetDebugMode(enabled bool) {
	debugEnabled = enabled
}

// DebugMode reports whether debug mode is on.
func DebugMode() bool {
	return debugEnabled
}

// debugLog prints one diagnostic line when debug mode is on.
func debugLog(format string, args ...any) {
	if !debugEnabled {
		return
	}
	_, _ = fmt.Fprintf(debugOut, "[reel] "+format+"\n", args...)
}

// debugMaxTweens is the active tween count above which the tweener warns
// once per flush. A tween count this high usually means tweens are created
// every tick and never finish.
const debugMaxTweens = 1000

func debugCheckTweenCount(n int) {
	if n > debugMaxTweens {
		debugLog("warning: %d active tweens exceeds %d", n, debugMaxTweens)
	}
}
