package contxt

import (
	"context"
	"time"
)

// NewContext returns a self-cancelling context for one poll run. The timeout
// matches the poll interval so an overrunning run is abandoned before the
// next one fires.
func NewContext(timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ctx
}
