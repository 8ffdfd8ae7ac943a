// Copyright (C) 2021-2026, The Revault Developers. All rights reserved.
// See the file LICENSE for licensing terms.

package revaultd

import "context"

// VaultWithTransactions pairs a vault with its on-chain transactions.
type VaultWithTransactions struct {
	Vault        Vault
	Transactions VaultTransactions
}

// VaultsWithTransactions fetches every vault, then the transactions of
// all their outpoints in a single filtered round trip, and joins the two
// collections on the deposit outpoint. Pairs come back in the daemon's
// vault order.
//
// A vault whose outpoint has no transaction record is excluded from the
// result.
func (c *Client) VaultsWithTransactions(ctx context.Context) ([]VaultWithTransactions, error) {
	vaults, err := c.ListVaults(ctx)
	if err != nil {
		return nil, err
	}

	outpoints := make([]string, len(vaults))
	for i, vault := range vaults {
		outpoints[i] = vault.Outpoint()
	}

	txs, err := c.ListTransactions(ctx, outpoints)
	if err != nil {
		return nil, err
	}

	return pairVaults(vaults, txs), nil
}

// pairVaults joins the two collections on outpoint equality, preserving
// the vault order and emitting each vault at most once.
func pairVaults(vaults []Vault, txs []VaultTransactions) []VaultWithTransactions {
	byOutpoint := make(map[string]VaultTransactions, len(txs))
	for _, tx := range txs {
		byOutpoint[tx.Outpoint] = tx
	}

	pairs := make([]VaultWithTransactions, 0, len(vaults))
	for _, vault := range vaults {
		tx, ok := byOutpoint[vault.Outpoint()]
		if !ok {
			log.Warnf("No transactions for vault %s", vault.Outpoint())
			continue
		}
		pairs = append(pairs, VaultWithTransactions{
			Vault:        vault,
			Transactions: tx,
		})
	}
	return pairs
}
