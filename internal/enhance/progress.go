package enhance

import (
	"math/rand"
	"sync"
	"time"
)

// rampCeiling is the highest percentage the simulated ramp reports while the
// request is still outstanding. Completion snaps to 100.
const rampCeiling = 90

// ramp emits a simulated progress percentage at a fixed interval while an
// enhancement request is in flight. The reported value climbs in random
// increments and never exceeds rampCeiling until Finish is called.
type ramp struct {
	interval time.Duration
	onUpdate func(percent int)

	mu      sync.Mutex
	percent int
	done    chan struct{}
	stopped sync.WaitGroup
}

func newRamp(interval time.Duration, onUpdate func(percent int)) *ramp {
	if interval <= 0 {
		interval = 300 * time.Millisecond
	}
	return &ramp{
		interval: interval,
		onUpdate: onUpdate,
		done:     make(chan struct{}),
	}
}

func (r *ramp) start() {
	r.stopped.Add(1)
	go func() {
		defer r.stopped.Done()
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.done:
				return
			case <-ticker.C:
				r.advance()
			}
		}
	}()
}

func (r *ramp) advance() {
	r.mu.Lock()
	r.percent += rand.Intn(15) + 5
	if r.percent > rampCeiling {
		r.percent = rampCeiling
	}
	percent := r.percent
	r.mu.Unlock()
	r.onUpdate(percent)
}

// finish stops the ramp. On success the final reported value is 100; on
// failure the last ramped value stands.
func (r *ramp) finish(success bool) {
	close(r.done)
	r.stopped.Wait()
	if success {
		r.mu.Lock()
		r.percent = 100
		r.mu.Unlock()
		r.onUpdate(100)
	}
}
