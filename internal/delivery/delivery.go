// Package delivery defines the contract every transport adapter fulfills.
package delivery

import "context"

// Delivery is a serving endpoint (HTTP server, worker, ...) managed by the
// application lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
