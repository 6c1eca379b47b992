package timer

import (
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

const DefaultTickInterval = 100 * time.Millisecond

var (
	ErrAlreadyRunning = errors.New("timer is already running")
	ErrExhausted      = errors.New("timer has no time left")
)

// Hooks receive clock-originated events. They are called from the ticker
// goroutine with no timer lock held, so they may call back into the timer.
type Hooks struct {
	OnTick    func(playerID, matchID string)
	OnTimeout func(playerID, matchID string)
}

// Timer is a per-player countdown with a Fischer increment.
type Timer struct {
	mu sync.Mutex

	clock    clock.Clock
	interval time.Duration
	hooks    Hooks

	playerID string
	matchID  string

	timeLeft time.Duration
	running  bool
	lastTick time.Time
	stop     chan struct{}
}

// Snapshot is the externally visible state of a Timer.
type Snapshot struct {
	IsRunning bool
	TimeLeft  time.Duration
}

func New(clk clock.Clock, playerID, matchID string, budget, interval time.Duration, hooks Hooks) *Timer {
	if clk == nil {
		clk = clock.New()
	}

	if interval <= 0 {
		interval = DefaultTickInterval
	}

	return &Timer{
		clock:    clk,
		interval: interval,
		hooks:    hooks,
		playerID: playerID,
		matchID:  matchID,
		timeLeft: max(budget, 0),
	}
}

// Start begins counting down and ticking.
func (that *Timer) Start() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.running {
		return ErrAlreadyRunning
	}

	if that.timeLeft <= 0 {
		return ErrExhausted
	}

	that.running = true
	that.lastTick = that.clock.Now()
	that.stop = make(chan struct{})

	go that.run(that.clock.Ticker(that.interval), that.stop)

	return nil
}

// Stop deducts the time spent since the last tick and credits increment.
// It is a no-op when the timer is not running.
func (that *Timer) Stop(increment time.Duration) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.running {
		return
	}

	that.timeLeft = max(that.timeLeft-that.clock.Since(that.lastTick), 0) + max(increment, 0)
	that.halt()
}

// Reset sets a new budget and leaves the timer idle.
func (that *Timer) Reset(budget time.Duration) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.running {
		that.halt()
	}

	that.timeLeft = max(budget, 0)
	that.lastTick = time.Time{}
}

func (that *Timer) Snapshot() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return Snapshot{
		IsRunning: that.running,
		TimeLeft:  that.remaining(),
	}
}

func (that *Timer) TimeLeft() time.Duration {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.remaining()
}

func (that *Timer) Exhausted() bool {
	return that.TimeLeft() <= 0
}

func (that *Timer) IsRunning() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.running
}

func (that *Timer) run(ticker *clock.Ticker, stop <-chan struct{}) {
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			expired, alive := that.tick(stop)
			if !alive {
				return
			}

			if expired {
				if that.hooks.OnTimeout != nil {
					that.hooks.OnTimeout(that.playerID, that.matchID)
				}
				return
			}

			if that.hooks.OnTick != nil {
				that.hooks.OnTick(that.playerID, that.matchID)
			}
		}
	}
}

// tick reports alive=false when stop was called after the ticker fired.
func (that *Timer) tick(stop <-chan struct{}) (expired, alive bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.running || that.stop != stop {
		return false, false
	}

	now := that.clock.Now()
	that.timeLeft -= now.Sub(that.lastTick)
	that.lastTick = now

	if that.timeLeft > 0 {
		return false, true
	}

	that.timeLeft = 0
	that.halt()

	return true, true
}

func (that *Timer) remaining() time.Duration {
	if !that.running {
		return that.timeLeft
	}

	return max(that.timeLeft-that.clock.Since(that.lastTick), 0)
}

// halt must be called with mu held.
func (that *Timer) halt() {
	that.running = false
	close(that.stop)
	that.stop = nil
}
