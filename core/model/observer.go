package model

import "time"

// Window is an observer's on-shift interval for one day.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether [start, end] lies fully inside the window.
func (w Window) Contains(start, end time.Time) bool {
	return !start.Before(w.Start) && !end.After(w.End)
}

// Empty reports whether the window has no usable width.
func (w Window) Empty() bool {
	return !w.End.After(w.Start)
}

// Observer is the person requesting a schedule.
type Observer struct {
	Name   string
	Window Window
}
