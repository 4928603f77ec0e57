//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package service provides interfaces and implementations for validation
// service servers.
//
// A validation server exposes the engine as a network service that filing
// pipelines can call to check a filing before submission.
//
// # Usage
//
// Create and start a validation server:
//
//	engine, _ := core.NewEngine()
//	server, _ := rest.CreateServer(engine, 8080)
//	defer server.Stop(ctx)
package service

import "context"

// Server is the interface for validation servers that can be gracefully
// stopped.
//
// Implementations must ensure that [Stop] completes any in-flight requests
// before returning.
type Server interface {
	// Stop gracefully shuts down the server, waiting for active requests
	// to complete or until the context is cancelled.
	Stop(context.Context) error
}
