// Package lifecycle holds timing shared by components that hook into application start and stop.
package lifecycle

import "time"

// DefaultTimeout bounds each start or stop hook, such as the database ping or HTTP shutdown.
const DefaultTimeout = 10 * time.Second
