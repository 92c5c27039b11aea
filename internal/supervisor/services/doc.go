// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

// Package services contains suture.Service wrappers for the components
// the supervisor tree runs: the HTTP server and the store GC loop. Each
// wrapper translates a component's own lifecycle into suture's blocking
// Serve(ctx) contract and implements fmt.Stringer so supervisor logs
// name the service.
package services
