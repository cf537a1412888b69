// Package delivery defines the serving surfaces of the application.
package delivery

import "context"

// Delivery is a long-running serving surface started by the application
// container. Serve blocks until the surface is shut down.
type Delivery interface {
	Serve(ctx context.Context) error
}
