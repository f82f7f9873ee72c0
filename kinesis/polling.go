package kinesis

import (
	"context"
	"time"
)

// runPolling периодически переносит фактическое положение оси в статус устройства.
// Опрос прекращается при отмене контекста.
func (d *simDevice) runPolling(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.mu.Lock()
			d.reported = d.position
			d.mu.Unlock()
		}
	}
}
