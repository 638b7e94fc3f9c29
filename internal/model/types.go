// Package model defines shared data structures.
package model

import "time"

// Config defines widget settings.
type Config struct {
	RowWidth   int
	FPS        int
	ShowDigits bool
	LogFile    string
}

// FrameInterval returns the delay between timer refreshes.
func (c Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FPS)
}
