// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

/*
Package supervisor provides process supervision for Reelharbor using suture v4.

The supervisor tree organizes services into two layers for failure isolation:

	RootSupervisor ("reelharbor")
	├── StorageSupervisor ("storage-layer")
	│   └── StoreGCService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart automatically with exponential backoff; a crash
in store maintenance never takes the HTTP server down with it. Supervisor
events are logged through the zerolog-backed slog adapter in
internal/logging.

The wrappers that adapt concrete components to suture.Service live in the
services subpackage.
*/
package supervisor
