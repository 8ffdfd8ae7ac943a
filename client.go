// Copyright (C) 2021-2026, The Revault Developers. All rights reserved.
// See the file LICENSE for licensing terms.

package revaultd

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/cenkalti/backoff/v4"
)

// Client is the handle application code holds on a running daemon. It is
// bound to exactly one socket for its lifetime, caches no wallet state,
// and is safe to share across concurrent callers: every operation is an
// independent round trip on its own connection.
type Client struct {
	transport  Transport
	socketPath string
	network    string
}

// Option configures client construction.
type Option func(*options)

type options struct {
	timeout       time.Duration
	probeRetries  uint64
	probeInterval time.Duration
	transport     Transport
}

func defaultOptions() *options {
	return &options{
		probeRetries:  4,
		probeInterval: 100 * time.Millisecond,
	}
}

// WithTimeout bounds the dial, write and read of every round trip. The
// default of zero applies no bound.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithProbeRetries sets how many times the readiness probe is retried
// after its first attempt. The daemon creates its socket asynchronously
// after the launcher exits, so the first attempts may race it. Zero means
// a single attempt.
func WithProbeRetries(n uint64) Option {
	return func(o *options) { o.probeRetries = n }
}

// WithProbeInterval sets the initial backoff interval between readiness
// probe attempts.
func WithProbeInterval(d time.Duration) Option {
	return func(o *options) { o.probeInterval = d }
}

// withTransport overrides the socket transport, for tests.
func withTransport(t Transport) Option {
	return func(o *options) { o.transport = t }
}

// New resolves the daemon's socket from its configuration and connects to
// it. Construction fails if the daemon never answers the readiness probe;
// a *Client is only ever returned ready to use.
func New(ctx context.Context, cfg *Config, opts ...Option) (*Client, error) {
	socketPath, err := cfg.SocketPath()
	if err != nil {
		return nil, newError(KindUnexpected, err,
			"resolving daemon socket path")
	}

	c, err := Connect(ctx, socketPath, opts...)
	if err != nil {
		return nil, err
	}
	c.network = cfg.Network()
	return c, nil
}

// Connect builds a client against an already-known socket path and runs
// the readiness probe.
func Connect(ctx context.Context, socketPath string, opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	t := o.transport
	if t == nil {
		t = &socketTransport{path: socketPath, timeout: o.timeout}
	}
	c := &Client{transport: t, socketPath: socketPath}

	log.Debugf("Connecting to revaultd at %s", socketPath)
	if err := c.probe(ctx, o); err != nil {
		return nil, err
	}
	log.Infof("Connected to revaultd at %s", socketPath)

	return c, nil
}

// probe issues getinfo until the daemon answers or the attempt budget is
// spent. Only transport failures are retried: an RPC-level rejection will
// not heal with time.
func (c *Client) probe(ctx context.Context, o *options) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = o.probeInterval
	policy := backoff.WithContext(
		backoff.WithMaxRetries(bo, o.probeRetries), ctx,
	)

	err := backoff.Retry(func() error {
		_, err := c.GetInfo(ctx)
		if err != nil && !IsKind(err, KindIO) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
	if err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return newError(KindUnexpected, err, "readiness probe")
		}
		return err
	}
	return nil
}

// call dispatches one daemon method: serialize the request, run it
// through the transport, then split the reply into a decoded result, a
// daemon-reported error, or a protocol violation. It is generic over the
// input and output shapes so every named operation shares it.
func (c *Client) call(ctx context.Context, method string, params, reply interface{}) error {
	body, err := json.Marshal(Request{Method: method, Params: params})
	if err != nil {
		return newError(KindUnexpected, err, "encoding %s request", method)
	}

	log.Debugf("Sending %s request", method)

	raw, err := c.transport.RoundTrip(ctx, body)
	if err != nil {
		log.Errorf("Method %s failed: %v", method, err)
		var e *Error
		if errors.As(err, &e) {
			return e
		}
		return newError(KindUnexpected, err, "method %s", method)
	}

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return newError(KindUnexpected, err,
			"decoding %s response", method)
	}

	// An error payload wins even if a result is (invalidly) present too.
	if resp.Error != nil {
		log.Errorf("Method %s failed: %v", method, resp.Error)
		return newError(KindRPC, resp.Error, "method %s failed", method)
	}
	if !resp.hasResult() {
		log.Errorf("Method %s returned neither result nor error", method)
		return newError(KindNoAnswer, nil,
			"method %s returned neither result nor error", method)
	}

	if reply == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Result, reply); err != nil {
		return newError(KindUnexpected, err, "decoding %s result", method)
	}
	return nil
}

// GetInfo returns the daemon's status: chain height, network, sync
// progress and version.
func (c *Client) GetInfo(ctx context.Context) (*Info, error) {
	var info Info
	if err := c.call(ctx, "getinfo", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ListVaults returns every vault the daemon currently knows about.
func (c *Client) ListVaults(ctx context.Context) ([]Vault, error) {
	var res struct {
		Vaults []Vault `json:"vaults"`
	}
	if err := c.call(ctx, "listvaults", nil, &res); err != nil {
		return nil, err
	}
	return res.Vaults, nil
}

// ListTransactions returns the on-chain transactions of the vaults whose
// deposit outpoints are listed. A nil filter requests the transactions of
// every vault and is encoded with no params field at all; an empty
// non-nil filter is a real (empty) restriction and goes on the wire.
func (c *Client) ListTransactions(ctx context.Context, outpoints []string) ([]VaultTransactions, error) {
	var params interface{}
	if outpoints != nil {
		params = []interface{}{outpoints}
	}

	var res struct {
		Transactions []VaultTransactions `json:"transactions"`
	}
	if err := c.call(ctx, "listtransactions", params, &res); err != nil {
		return nil, err
	}
	return res.Transactions, nil
}

// GetRevocationTxs fetches the unsigned revocation transactions of the
// vault deposited at the given outpoint.
func (c *Client) GetRevocationTxs(ctx context.Context, outpoint string) (*RevocationTransactions, error) {
	var res RevocationTransactions
	if err := c.call(ctx, "getrevocationtxs", []string{outpoint}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SetRevocationTxs submits the signed revocation transactions of a vault.
// The daemon's acknowledgement carries no information and is discarded;
// any error is propagated as usual.
func (c *Client) SetRevocationTxs(ctx context.Context, outpoint string,
	cancel, emergency, emergencyUnvault *psbt.Packet) error {

	cancelB64, err := encodePsbt(cancel)
	if err != nil {
		return newError(KindUnexpected, err, "encoding cancel tx")
	}
	emergencyB64, err := encodePsbt(emergency)
	if err != nil {
		return newError(KindUnexpected, err, "encoding emergency tx")
	}
	emergencyUnvaultB64, err := encodePsbt(emergencyUnvault)
	if err != nil {
		return newError(KindUnexpected, err,
			"encoding emergency unvault tx")
	}

	params := []string{outpoint, cancelB64, emergencyB64, emergencyUnvaultB64}
	return c.call(ctx, "revocationtxs", params, nil)
}

// Network returns the bitcoin network name from the daemon configuration
// the client was built from, or "" for a Client built with Connect.
func (c *Client) Network() string {
	return c.network
}

// SocketPath returns the daemon socket this client is bound to.
func (c *Client) SocketPath() string {
	return c.socketPath
}
