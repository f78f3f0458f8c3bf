package tui

import (
	"fmt"
	"time"
)

// FormatDurationAuto formats a duration as MMm SSs if <1h, or as Hh MMm if >=1h
func FormatDurationAuto(dur time.Duration) string {
	dur = dur.Round(time.Second)
	if dur < time.Hour {
		m := int(dur.Minutes())
		s := int(dur.Seconds()) % 60
		return fmt.Sprintf("%02dm %02ds", m, s)
	}
	h := int(dur.Hours())
	m := int(dur.Minutes()) % 60
	return fmt.Sprintf("%dh %02dm", h, m)
}

// Seconds converts session seconds to a duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
