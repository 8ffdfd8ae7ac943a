// Copyright (C) 2021-2026, The Revault Developers. All rights reserved.
// See the file LICENSE for licensing terms.

// Package revaultd is a client for the revaultd vault daemon: it starts
// and supervises the daemon process, exchanges typed requests with it
// over its unix socket, and assembles the returned collections into
// application-level views.
//
// The daemon owns all wallet state, chain synchronization and signing.
// This package never reimplements any of that; it only requests and
// receives already-computed results.
//
// # Usage
//
//	if err := revaultd.StartDaemon(ctx, "", confPath); err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg, err := revaultd.LoadConfig(confPath)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// New fails if the daemon never answers the readiness probe.
//	client, err := revaultd.New(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pairs, err := client.VaultsWithTransactions(ctx)
//
// # Errors
//
// Every failure surfaces as a *Error with one of five kinds: KindStart
// (the daemon process could not be launched), KindIO (transport failure,
// with the OS error reachable through errors.Is), KindRPC (the daemon
// replied with an error payload), KindNoAnswer (a reply with neither
// result nor error), and KindUnexpected (everything else, including
// result shapes that do not decode). Nothing is retried by this package
// except the readiness probe, whose attempt budget is configurable.
//
// # Architecture
//
// The package separates concerns:
//
//   - client.go: the Client facade, named operations and call dispatch
//   - transport.go: one-request-per-connection unix socket transport
//   - request.go: wire request/response shapes
//   - errors.go: the five-kind error taxonomy
//   - daemon.go: process spawn-and-verify
//   - join.go: the vault/transaction join
//   - config.go: daemon config parsing and socket resolution
//
// A Client is safe for concurrent use: each operation dials its own
// connection and the handle itself holds no mutable state. The daemon's
// serialization of wallet-mutating calls is its own; concurrent
// submissions for the same vault are not made atomic here.
package revaultd
