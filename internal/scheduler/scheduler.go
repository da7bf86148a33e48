// Package scheduler abstracts cancellable repeating tasks so the countdown
// and regeneration engines can be driven manually in tests.
package scheduler

import (
	"sync"
	"time"
)

// Scheduler runs a function repeatedly at a fixed interval
type Scheduler interface {
	// Every invokes fn every interval until the returned stop function is
	// called. Stop is safe to call more than once.
	Every(interval time.Duration, fn func()) (stop func())
}

// Ticker is the production Scheduler backed by time.Ticker
type Ticker struct{}

// NewTicker creates the production scheduler
func NewTicker() Ticker {
	return Ticker{}
}

func (Ticker) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}
