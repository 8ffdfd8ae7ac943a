// Copyright (C) 2021-2026, The Revault Developers. All rights reserved.
// See the file LICENSE for licensing terms.

package revaultd

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"time"
)

// Transport delivers one serialized request to the daemon and returns the
// raw bytes of its response. Implementations must classify their failures:
// every error returned is a *Error.
type Transport interface {
	RoundTrip(ctx context.Context, req []byte) ([]byte, error)
}

// socketTransport talks to the daemon over its unix socket. Each round
// trip dials a fresh connection and closes it on every exit path; the
// daemon never multiplexes, so there is no connection reuse and no
// request correlation.
type socketTransport struct {
	path string

	// timeout bounds dial, write and read of a single round trip.
	// Zero means no bound: a read against an unresponsive daemon
	// blocks until the context or the peer gives up.
	timeout time.Duration
}

func (t *socketTransport) RoundTrip(ctx context.Context, req []byte) ([]byte, error) {
	d := net.Dialer{Timeout: t.timeout}
	conn, err := d.DialContext(ctx, "unix", t.path)
	if err != nil {
		return nil, ioError(err, "connecting to %s", t.path)
	}
	defer conn.Close()

	if t.timeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(t.timeout)); err != nil {
			return nil, ioError(err, "setting deadline on %s", t.path)
		}
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, ioError(err, "setting deadline on %s", t.path)
		}
	}

	if _, err := conn.Write(req); err != nil {
		return nil, ioError(err, "writing request to %s", t.path)
	}

	// The daemon answers with exactly one JSON value and keeps the
	// connection open, so the decoder is what finds the response
	// boundary. Reading raw here keeps shape decoding out of the
	// transport.
	var raw json.RawMessage
	if err := json.NewDecoder(conn).Decode(&raw); err != nil {
		return nil, classifyReadError(err, t.path)
	}
	return raw, nil
}

// classifyReadError splits transport-level read failures from a daemon
// that wrote something other than JSON. A closed or reset connection is
// io; garbage on an otherwise healthy connection is not.
func classifyReadError(err error, path string) *Error {
	var netErr net.Error
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.As(err, &netErr) {

		return ioError(err, "reading response from %s", path)
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return newError(KindUnexpected, err, "invalid response from %s", path)
	}
	return ioError(err, "reading response from %s", path)
}
