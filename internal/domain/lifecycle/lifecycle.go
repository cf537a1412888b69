// Package lifecycle holds shared timing constants for startup and shutdown
// hooks.
package lifecycle

import "time"

// DefaultTimeout bounds how long a lifecycle hook may block during startup or
// graceful shutdown.
const DefaultTimeout = 10 * time.Second
