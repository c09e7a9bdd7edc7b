package orchestrator

import (
	"fmt"
	"time"
)

// formatSeconds renders d as seconds with two decimals.
func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.2f seconds", d.Seconds())
}

// Summary is the message shown once a run succeeded.
func (r *RunRecord) Summary() string {
	return fmt.Sprintf("Successfully processed in %.2f seconds", r.Elapsed.Seconds())
}
