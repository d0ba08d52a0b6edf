package frame

import "time"

const spinWindow = 200 * time.Microsecond

// Stats summarizes the frames measured since the last Report.
type Stats struct {
	Frames int
	// Slow counts frames whose work exceeded the limiter's Slow threshold.
	Slow int
	// Late counts frames that missed their slot and forced a resync.
	Late  int
	Worst time.Duration
	Total time.Duration
}

// Average returns the mean frame work time.
func (s Stats) Average() time.Duration {
	if s.Frames == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Frames)
}

// Limiter paces the frame loop to a target rate and accounts the work time
// of each frame, measured from Begin to Wait.
type Limiter struct {
	FPS int
	// Slow is the work time above which a frame counts as slow. Zero
	// disables slow frame accounting.
	Slow time.Duration

	next  time.Time
	begin time.Time
	stats Stats
}

func NewLimiter(fps int, slow time.Duration) *Limiter {
	return &Limiter{FPS: fps, Slow: slow}
}

// Begin marks the start of a frame's work.
func (l *Limiter) Begin() {
	l.begin = time.Now()
}

// Wait records the frame started by Begin, then blocks until the next frame
// slot. A non-positive FPS disables pacing. It returns the frame work time,
// or zero when Begin was not called.
func (l *Limiter) Wait() time.Duration {
	work := l.record()
	if l.FPS <= 0 {
		l.next = time.Time{}
		return work
	}

	target := time.Second / time.Duration(l.FPS)
	if l.next.IsZero() {
		l.next = time.Now().Add(target)
	} else {
		l.next = l.next.Add(target)
	}

	for {
		remaining := time.Until(l.next)
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			time.Sleep(remaining - spinWindow)
		}
	}

	// Resync after a hitch instead of rushing to catch up.
	if late := -time.Until(l.next); late > target {
		l.stats.Late++
		l.next = time.Now().Add(target)
	}
	return work
}

// IsSlow reports whether a frame work time crosses the Slow threshold.
func (l *Limiter) IsSlow(work time.Duration) bool {
	return l.Slow > 0 && work > l.Slow
}

// Report returns the stats accumulated since the previous call and starts a
// new window.
func (l *Limiter) Report() Stats {
	s := l.stats
	l.stats = Stats{}
	return s
}

func (l *Limiter) record() time.Duration {
	if l.begin.IsZero() {
		return 0
	}
	work := time.Since(l.begin)
	l.begin = time.Time{}

	l.stats.Frames++
	l.stats.Total += work
	if work > l.stats.Worst {
		l.stats.Worst = work
	}
	if l.IsSlow(work) {
		l.stats.Slow++
	}
	return work
}
