package hal

import "time"

// systemClock measures monotonic milliseconds since construction. The same
// implementation serves host and TinyGo builds.
type systemClock struct {
	start time.Time
}

func newSystemClock() *systemClock {
	return &systemClock{start: time.Now()}
}

func (c *systemClock) NowMillis() int64 {
	return time.Since(c.start).Milliseconds()
}

func (c *systemClock) SleepMillis(n int) {
	if n <= 0 {
		return
	}
	time.Sleep(time.Duration(n) * time.Millisecond)
}
