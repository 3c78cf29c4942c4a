package commands

import (
	"context"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/notesync/internal/domain/entities"
)

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. The scheduler never reads the time itself.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

// NewSystemClock returns a Clock backed by time.AfterFunc.
func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// AutosaveScheduler debounces edits and focus loss into save requests. Both
// sources share one timer: every Touch restarts the same countdown.
type AutosaveScheduler struct {
	clock    Clock
	save     Save
	session  *entities.Session
	settings *entities.Settings

	mu         sync.Mutex
	timer      Timer
	generation uint64
	stopped    bool
	onResult   func(SaveResult, error)
}

// NewAutosaveScheduler creates a new AutosaveScheduler.
func NewAutosaveScheduler(
	clock Clock,
	save Save,
	session *entities.Session,
	settings *entities.Settings,
) *AutosaveScheduler {
	return &AutosaveScheduler{clock: clock, save: save, session: session, settings: settings}
}

// OnResult registers a callback receiving the outcome of every autosave.
func (it *AutosaveScheduler) OnResult(fn func(SaveResult, error)) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.onResult = fn
}

// Touch cancels the pending countdown, if any, and starts a new one.
func (it *AutosaveScheduler) Touch() {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.stopped {
		return
	}
	if it.timer != nil {
		it.timer.Stop()
	}
	it.generation++
	generation := it.generation
	it.timer = it.clock.AfterFunc(it.settings.AutosaveDelay, func() {
		it.fire(generation)
	})
}

// Stop cancels the countdown for good.
func (it *AutosaveScheduler) Stop() {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.stopped = true
	if it.timer != nil {
		it.timer.Stop()
		it.timer = nil
	}
}

func (it *AutosaveScheduler) fire(generation uint64) {
	it.mu.Lock()
	// a timer that lost the race with a newer Touch or Stop
	if it.stopped || generation != it.generation {
		it.mu.Unlock()
		return
	}
	it.timer = nil
	onResult := it.onResult
	it.mu.Unlock()

	if !it.session.IsDirty() {
		logger.Debug("Autosave skipped, note is clean")
		return
	}

	result, err := it.save.Execute(context.Background())
	if err != nil {
		logger.Errorf("Autosave failed: %v", err)
	} else if result.Outcome == OutcomeBusy {
		logger.Debug("Autosave dropped, a save is already in flight")
	}
	if onResult != nil {
		onResult(result, err)
	}
}
