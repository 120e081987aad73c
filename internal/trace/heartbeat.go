package trace

import (
	"context"
	"strconv"
	"time"
)

// Heartbeat emits a driver-scope event every interval until ctx is done.
// status is polled on each tick and reported as the event detail.
// The returned function stops the heartbeat and waits for it to exit.
func Heartbeat(ctx context.Context, t Tracer, interval time.Duration, status func() string) (stop func()) {
	if interval <= 0 || !Enabled(t, ScopeDriver) {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var n int
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				n++
				detail := ""
				if status != nil {
					detail = status()
				}
				t.Emit(&Event{
					Time:   now,
					Seq:    nextSeq(),
					Kind:   KindHeartbeat,
					Scope:  ScopeDriver,
					Name:   "heartbeat",
					Detail: detail,
					Extra:  map[string]string{"n": strconv.Itoa(n)},
				})
			}
		}
	}()
	return func() {
		cancel()
		<-done
	}
}
