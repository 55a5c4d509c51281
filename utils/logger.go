package utils

import (
	"log"
	"time"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf and
// can be swapped with SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil mutes diagnostics.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Timer measures a labelled scope and reports it through Logf on Stop
type Timer struct {
	label string
	start time.Time
}

// StartTimer opens a measurement scope. Pair it with a deferred Stop.
func StartTimer(label string) *Timer {
	return &Timer{label: label, start: time.Now()}
}

// Stop logs the elapsed time and returns it
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Logf("%s: %v", t.label, elapsed)
	return elapsed
}
