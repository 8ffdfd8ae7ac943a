// Copyright (C) 2021-2026, The Revault Developers. All rights reserved.
// See the file LICENSE for licensing terms.

package revaultd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config mirrors the daemon's own TOML configuration file — the same file
// handed to StartDaemon. The client only needs the fields that locate the
// daemon's socket; everything else in the file is ignored.
type Config struct {
	// DataDir is the daemon's data directory. Empty means the daemon
	// default of ~/.revaultd.
	DataDir string `toml:"data_dir"`

	BitcoindConfig BitcoindConfig `toml:"bitcoind_config"`
}

// BitcoindConfig is the subsection of the daemon configuration describing
// its bitcoind backend. Network selects the per-network subdirectory of
// the data dir.
type BitcoindConfig struct {
	Network    string `toml:"network"`
	Addr       string `toml:"addr"`
	CookiePath string `toml:"cookie_path"`
}

// LoadConfig parses a daemon configuration file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.BitcoindConfig.Network == "" {
		return nil, fmt.Errorf("config %s: missing bitcoind_config.network", path)
	}
	return &cfg, nil
}

// Network returns the configured bitcoin network name.
func (c *Config) Network() string {
	return c.BitcoindConfig.Network
}

// SocketPath resolves the daemon's socket, <data_dir>/<network>/revaultd_rpc.
// Resolution happens once at client construction; the endpoint is
// immutable afterwards.
func (c *Config) SocketPath() (string, error) {
	dataDir := c.DataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".revaultd")
	}

	network := c.BitcoindConfig.Network
	if network == "" {
		return "", fmt.Errorf("no network in configuration")
	}

	return filepath.Join(dataDir, network, "revaultd_rpc"), nil
}
