// Copyright (C) 2021-2026, The Revault Developers. All rights reserved.
// See the file LICENSE for licensing terms.

package revaultd

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/psbt"
)

// Info is the daemon's getinfo result.
type Info struct {
	Blockheight uint64  `json:"blockheight"`
	Network     string  `json:"network"`
	Sync        float64 `json:"sync"`
	Version     string  `json:"version"`
}

// VaultStatus is a vault's position in its lifecycle. It depends both on
// the chain and on which pre-signed transactions exist.
type VaultStatus string

const (
	// StatusFunded: the deposit transaction is confirmed.
	StatusFunded VaultStatus = "funded"

	// StatusSecured: the emergency transaction is signed.
	StatusSecured VaultStatus = "secured"

	// StatusActive: the unvault transaction is signed, which implies the
	// cancel and second emergency transactions are too.
	StatusActive VaultStatus = "active"

	// StatusUnvaulting: the unvault transaction has been broadcast.
	StatusUnvaulting VaultStatus = "unvaulting"

	// StatusUnvaulted: the unvault transaction is confirmed.
	StatusUnvaulted VaultStatus = "unvaulted"

	// StatusCanceling: the cancel transaction has been broadcast.
	StatusCanceling VaultStatus = "canceling"

	// StatusCanceled: the cancel transaction is confirmed.
	StatusCanceled VaultStatus = "canceled"

	// StatusEmergencyVaulting: one of the emergency transactions has
	// been broadcast.
	StatusEmergencyVaulting VaultStatus = "emergencyvaulting"

	// StatusEmergencyVaulted: one of the emergency transactions is
	// confirmed.
	StatusEmergencyVaulted VaultStatus = "emergencyvaulted"

	// StatusSpendable: the unvault transaction's CSV delay has expired.
	StatusSpendable VaultStatus = "spendable"

	// StatusSpending: the spend transaction has been broadcast.
	StatusSpending VaultStatus = "spending"

	// StatusSpent: the spend transaction is confirmed.
	StatusSpent VaultStatus = "spent"
)

// Vault is one deposit under the daemon's watch, identified by the
// outpoint of its deposit transaction.
type Vault struct {
	// Amount of the deposit, in satoshis on the wire.
	Amount btcutil.Amount `json:"amount"`

	Status VaultStatus `json:"status"`

	// TxID and Vout of the deposit transaction.
	TxID string `json:"txid"`
	Vout uint32 `json:"vout"`
}

// Outpoint returns the "txid:vout" identifier of the vault's deposit.
// It is unique among currently-known vaults and is the key joining a
// Vault to its VaultTransactions.
func (v Vault) Outpoint() string {
	return fmt.Sprintf("%s:%d", v.TxID, v.Vout)
}

// BroadcastTransaction is one on-chain transaction of a vault's
// lifecycle, as reported by the daemon. Blockheight is zero while
// unconfirmed.
type BroadcastTransaction struct {
	Blockheight uint64 `json:"blockheight,omitempty"`
	Hex         string `json:"hex"`
	ReceivedAt  int64  `json:"received_at"`
}

// VaultTransactions carries the on-chain transactions tied to one
// vault's lifecycle. Every transaction but the deposit may be absent.
type VaultTransactions struct {
	// Outpoint of the vault's deposit, matching Vault.Outpoint.
	Outpoint string `json:"outpoint"`

	Deposit          *BroadcastTransaction `json:"deposit,omitempty"`
	Unvault          *BroadcastTransaction `json:"unvault,omitempty"`
	Cancel           *BroadcastTransaction `json:"cancel,omitempty"`
	Emergency        *BroadcastTransaction `json:"emergency,omitempty"`
	UnvaultEmergency *BroadcastTransaction `json:"unvault_emergency,omitempty"`
	Spend            *BroadcastTransaction `json:"spend,omitempty"`
}

// RevocationTransactions are the three pre-signed transactions securing a
// vault, exchanged with the daemon as base64 PSBTs.
type RevocationTransactions struct {
	CancelTx           *psbt.Packet
	EmergencyTx        *psbt.Packet
	EmergencyUnvaultTx *psbt.Packet
}

type revocationTransactionsJSON struct {
	CancelTx           string `json:"cancel_tx"`
	EmergencyTx        string `json:"emergency_tx"`
	EmergencyUnvaultTx string `json:"emergency_unvault_tx"`
}

func (r *RevocationTransactions) UnmarshalJSON(b []byte) error {
	var raw revocationTransactionsJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var err error
	if r.CancelTx, err = decodePsbt(raw.CancelTx); err != nil {
		return fmt.Errorf("cancel_tx: %w", err)
	}
	if r.EmergencyTx, err = decodePsbt(raw.EmergencyTx); err != nil {
		return fmt.Errorf("emergency_tx: %w", err)
	}
	if r.EmergencyUnvaultTx, err = decodePsbt(raw.EmergencyUnvaultTx); err != nil {
		return fmt.Errorf("emergency_unvault_tx: %w", err)
	}
	return nil
}

func (r RevocationTransactions) MarshalJSON() ([]byte, error) {
	cancel, err := encodePsbt(r.CancelTx)
	if err != nil {
		return nil, fmt.Errorf("cancel_tx: %w", err)
	}
	emergency, err := encodePsbt(r.EmergencyTx)
	if err != nil {
		return nil, fmt.Errorf("emergency_tx: %w", err)
	}
	emergencyUnvault, err := encodePsbt(r.EmergencyUnvaultTx)
	if err != nil {
		return nil, fmt.Errorf("emergency_unvault_tx: %w", err)
	}
	return json.Marshal(revocationTransactionsJSON{
		CancelTx:           cancel,
		EmergencyTx:        emergency,
		EmergencyUnvaultTx: emergencyUnvault,
	})
}

func decodePsbt(b64 string) (*psbt.Packet, error) {
	return psbt.NewFromRawBytes(strings.NewReader(b64), true)
}

func encodePsbt(packet *psbt.Packet) (string, error) {
	var buf bytes.Buffer
	if err := packet.Serialize(&buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
