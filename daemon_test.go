// Copyright (C) 2021-2026, The Revault Developers. All rights reserved.
// See the file LICENSE for licensing terms.

package revaultd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeDaemonBin writes an executable standing in for the daemon binary.
func fakeDaemonBin(t *testing.T, script string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "revaultd")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestStartDaemon(t *testing.T) {
	// The daemon forks into the background and the launcher exits zero.
	bin := fakeDaemonBin(t, "#!/bin/sh\nexit 0\n")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, StartDaemon(ctx, bin, "/etc/revaultd.toml"))
}

func TestStartDaemonNonZeroExit(t *testing.T) {
	bin := fakeDaemonBin(t,
		"#!/bin/sh\necho 'cannot read conf' >&2\nexit 1\n")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := StartDaemon(ctx, bin, "/nonexistent/conf.toml")
	require.Error(t, err)
	require.True(t, IsKind(err, KindStart))

	// The launcher's stderr is reported verbatim.
	require.Contains(t, err.Error(), "cannot read conf")
}

func TestStartDaemonNonZeroExitEmptyStderr(t *testing.T) {
	bin := fakeDaemonBin(t, "#!/bin/sh\nexit 3\n")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := StartDaemon(ctx, bin, "/etc/revaultd.toml")
	require.Error(t, err)
	require.True(t, IsKind(err, KindStart))
	require.Contains(t, err.Error(), "status 3")
}

func TestStartDaemonMissingBinary(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	bin := filepath.Join(t.TempDir(), "no-such-daemon")
	err := StartDaemon(ctx, bin, "/etc/revaultd.toml")
	require.Error(t, err)
	require.True(t, IsKind(err, KindStart))
}

func TestStartDaemonPassesConfFlag(t *testing.T) {
	// The binary receives exactly --conf <path>.
	out := filepath.Join(t.TempDir(), "args")
	bin := fakeDaemonBin(t, "#!/bin/sh\necho \"$@\" > "+out+"\nexit 0\n")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, StartDaemon(ctx, bin, "/etc/revaultd.toml"))

	args, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "--conf /etc/revaultd.toml\n", string(args))
}
