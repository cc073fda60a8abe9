package chat

import "time"

const (
	backoffBase = 10 * time.Second
	backoffCap  = 60 * time.Second
)

// ReconnectDelay returns the backoff delay before reconnect attempt n
// (1-based): base*n, capped. Attempts are unbounded; only the delay grows.
func ReconnectDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := time.Duration(attempt) * backoffBase
	if d > backoffCap {
		return backoffCap
	}
	return d
}
