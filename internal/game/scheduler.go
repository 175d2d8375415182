package game

import (
	"sync"
	"time"
)

// Scheduler runs a task after a delay. The returned function cancels the
// task if it has not started yet; calling it more than once is harmless.
type Scheduler interface {
	Schedule(delay time.Duration, task func()) (cancel func())
}

// TimerScheduler fires tasks from time.AfterFunc. Each due task is handed to
// dispatch, which decides where it runs. The terminal front end dispatches
// through the tcell event queue so tasks run on the event loop goroutine.
type TimerScheduler struct {
	dispatch func(task func())
}

// NewTimerScheduler creates a timer-backed scheduler. A nil dispatch runs
// tasks directly on the timer goroutine.
func NewTimerScheduler(dispatch func(task func())) *TimerScheduler {
	if dispatch == nil {
		dispatch = func(task func()) { task() }
	}
	return &TimerScheduler{dispatch: dispatch}
}

// Schedule implements Scheduler.
func (s *TimerScheduler) Schedule(delay time.Duration, task func()) func() {
	t := time.AfterFunc(delay, func() {
		s.dispatch(task)
	})
	return func() { t.Stop() }
}

// ImmediateScheduler ignores delays and runs tasks synchronously in the
// order they were scheduled. A task scheduled from inside a running task is
// queued and runs once the current one returns.
type ImmediateScheduler struct {
	mu      sync.Mutex
	queue   []*immediateTask
	running bool
}

type immediateTask struct {
	run       func()
	cancelled bool
}

// NewImmediateScheduler creates a synchronous scheduler.
func NewImmediateScheduler() *ImmediateScheduler {
	return &ImmediateScheduler{}
}

// Schedule implements Scheduler.
func (s *ImmediateScheduler) Schedule(_ time.Duration, task func()) func() {
	it := &immediateTask{run: task}

	s.mu.Lock()
	s.queue = append(s.queue, it)
	if s.running {
		s.mu.Unlock()
		return s.canceller(it)
	}
	s.running = true
	s.mu.Unlock()

	s.drain()
	return s.canceller(it)
}

func (s *ImmediateScheduler) drain() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.running = false
			s.mu.Unlock()
			return
		}
		it := s.queue[0]
		s.queue = s.queue[1:]
		cancelled := it.cancelled
		s.mu.Unlock()

		if !cancelled {
			it.run()
		}
	}
}

func (s *ImmediateScheduler) canceller(it *immediateTask) func() {
	return func() {
		s.mu.Lock()
		it.cancelled = true
		s.mu.Unlock()
	}
}
