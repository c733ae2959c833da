// Package timer implements per-move time budgeting: allocating a share
// of the remaining main/byo-yomi time, and the early-exit check used
// when the leading move is already dominant.
package timer

import "time"

// Config holds the time-control tuning knobs.
type Config struct {
	C                float64
	FastplayBudget   float64
	FastplayThreshold float64
	MinStones        int
}

// DefaultConfig mirrors the compiled-in defaults.
func DefaultConfig() Config {
	return Config{
		C:                 0.5,
		FastplayBudget:    0.4,
		FastplayThreshold: 0.95,
		MinStones:         1,
	}
}

// Timer tracks the remaining main time and byo-yomi budget for one
// color and computes the per-move budget.
type Timer struct {
	cfg Config

	mainTimeLeft   time.Duration
	byoTimeLeft    time.Duration
	byoTime        time.Duration
	byoStonesLeft  int
	byoStones      int

	start time.Time
}

// New creates a Timer with the given main time and byo-yomi settings.
func New(cfg Config, mainTime, byoTime time.Duration, byoStones int) *Timer {
	return &Timer{
		cfg:           cfg,
		mainTimeLeft:  mainTime,
		byoTimeLeft:   byoTime,
		byoTime:       byoTime,
		byoStonesLeft: byoStones,
		byoStones:     byoStones,
	}
}

// SetTimeLeft applies a GTP time_left update.
func (t *Timer) SetTimeLeft(remaining time.Duration, stones int) {
	if stones == 0 {
		t.mainTimeLeft = remaining
		return
	}
	t.byoTimeLeft = remaining
	t.byoStonesLeft = stones
}

// Start marks the beginning of the current move's thinking time.
func (t *Timer) Start() {
	t.start = time.Now()
}

// Elapsed returns the time spent thinking on the current move.
func (t *Timer) Elapsed() time.Duration {
	if t.start.IsZero() {
		return 0
	}
	return time.Since(t.start)
}

// Budget computes the time allowed for the next move: a share of the
// remaining main time scaled by the board's vacant point count, or the
// byo-yomi per-stone share once main time is exhausted.
func (t *Timer) Budget(vacantPoints int) time.Duration {
	if t.mainTimeLeft > 0 {
		divisor := vacantPoints
		if divisor < t.cfg.MinStones {
			divisor = t.cfg.MinStones
		}
		if divisor <= 0 {
			divisor = 1
		}
		seconds := float64(t.mainTimeLeft) / t.cfg.C / float64(divisor)
		return time.Duration(seconds)
	}
	if t.byoStonesLeft > 0 {
		return t.byoTimeLeft / time.Duration(t.byoStonesLeft)
	}
	return 0
}

// Adjust deducts the elapsed move time from the remaining budget once a
// move has been played, resetting the byo-yomi period when it is used up.
func (t *Timer) Adjust(vacantPoints int) {
	elapsed := t.Elapsed()
	if t.mainTimeLeft > 0 {
		t.mainTimeLeft -= elapsed
		if t.mainTimeLeft < 0 {
			overtime := -t.mainTimeLeft
			t.mainTimeLeft = 0
			t.byoTimeLeft -= overtime
		}
		return
	}
	t.byoTimeLeft -= elapsed
	t.byoStonesLeft--
	if t.byoStonesLeft <= 0 {
		t.byoStonesLeft = t.byoStones
		t.byoTimeLeft = t.byoTime
	}
}

// RanOutOfTime reports whether the engine should stop searching: either
// the full per-move budget has elapsed, or the fastplay fraction of it
// has elapsed and the current best move's win ratio already clears the
// fastplay threshold.
func (t *Timer) RanOutOfTime(vacantPoints int, currentBestWinRatio float64) bool {
	budget := t.Budget(vacantPoints)
	elapsed := t.Elapsed()
	if elapsed >= budget {
		return true
	}
	fastplayBudget := time.Duration(float64(budget) * t.cfg.FastplayBudget)
	return elapsed >= fastplayBudget && currentBestWinRatio >= t.cfg.FastplayThreshold
}
