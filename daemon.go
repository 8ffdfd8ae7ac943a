// Copyright (C) 2021-2026, The Revault Developers. All rights reserved.
// See the file LICENSE for licensing terms.

package revaultd

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// DefaultDaemonBin is the daemon binary looked up on PATH when no
// explicit path is given to StartDaemon.
const DefaultDaemonBin = "revaultd"

// StartDaemon launches the daemon with the given configuration file and
// waits for the launcher to terminate. The daemon forks itself into the
// background, so a zero exit here means the handoff succeeded, not that
// the long-running service is up; callers confirm that with the client's
// readiness probe.
//
// Exactly one spawn is attempted. A non-zero exit is reported as a
// KindStart error carrying the launcher's stderr verbatim; so is a spawn
// that never got off the ground (missing binary, permission denied).
func StartDaemon(ctx context.Context, bin, confPath string) error {
	if bin == "" {
		bin = DefaultDaemonBin
	}

	log.Debugf("Starting %s with config %s", bin, confPath)

	cmd := exec.CommandContext(ctx, bin, "--conf", confPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return startError(err,
				"daemon exited with status %d, stderr: %s",
				exitErr.ExitCode(),
				strings.TrimSpace(stderr.String()))
		}
		return startError(err, "failed to launch %s", bin)
	}

	log.Infof("Daemon started")
	return nil
}
