package tui

import (
	"fmt"
	"math"
	"strings"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// mbps formats a speed, "n/a" for NaN.
func mbps(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f Mbps", v)
}

// truncate cuts s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// padRight pads s with spaces to at least n runes.
func padRight(s string, n int) string {
	if w := len([]rune(s)); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
