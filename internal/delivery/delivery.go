// Package delivery defines the contract shared by all inbound transports.
package delivery

import "context"

// Delivery is implemented by every server the application can expose.
// Serve blocks until the server stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
