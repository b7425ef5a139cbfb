// Package nodeadapter implements directsend.Chain and
// directsend.UTXOSource against a bitcoind RPC connection, the same
// ordishs/go-bitcoin client the teacher's api/transaction_handler and
// metamorph/Server.go wrap for their own node lookups.
package nodeadapter

import (
	"encoding/hex"
	"fmt"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/bscript"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/ordishs/go-bitcoin"

	"github.com/bitcoin-sv/directsend/internal/directsend"
)

// Adapter implements directsend.Chain and directsend.UTXOSource over a
// single bitcoind RPC connection. It does not maintain a mempool spend
// index: MempoolNextTx always reports unknown, since building one
// requires a full mempool walk that is out of scope for this client.
type Adapter struct {
	node *bitcoin.Bitcoind
}

// New dials a bitcoind JSON-RPC endpoint.
func New(host string, port int, user, password string, useSSL bool) (*Adapter, error) {
	node, err := bitcoin.New(host, port, user, password, useSSL)
	if err != nil {
		return nil, fmt.Errorf("nodeadapter: connecting to node: %w", err)
	}

	return &Adapter{node: node}, nil
}

// CurrentHeight implements directsend.Chain.
func (a *Adapter) CurrentHeight() int32 {
	info, err := a.node.GetInfo()
	if err != nil {
		return 0
	}

	return int32(info.Blocks)
}

// IsFinalized implements directsend.Chain. A transaction is considered
// finalized once the node reports it as part of a block.
func (a *Adapter) IsFinalized(txHash chainhash.Hash) bool {
	raw, err := a.node.GetRawTransaction(txHash.String())
	if err != nil || raw == nil {
		return false
	}

	return raw.BlockHash != ""
}

// GetTx implements directsend.Chain.
func (a *Adapter) GetTx(txHash chainhash.Hash) (*bt.Tx, chainhash.Hash, bool) {
	raw, err := a.node.GetRawTransaction(txHash.String())
	if err != nil || raw == nil {
		return nil, chainhash.Hash{}, false
	}

	tx, err := bt.NewTxFromString(raw.Hex)
	if err != nil {
		return nil, chainhash.Hash{}, false
	}

	h, err := chainhash.NewHashFromStr(tx.TxID())
	if err != nil {
		return nil, chainhash.Hash{}, false
	}

	return tx, *h, true
}

// FetchRawTx resolves a txid reported over ZMQ's "hashtx" topic into
// its raw transaction bytes, serving as a zmqfeed.TxFetcher.
func (a *Adapter) FetchRawTx(txidHex string) ([]byte, error) {
	raw, err := a.node.GetRawTransaction(txidHex)
	if err != nil {
		return nil, fmt.Errorf("nodeadapter: fetching raw tx %s: %w", txidHex, err)
	}

	return hex.DecodeString(raw.Hex)
}

// MempoolNextTx implements directsend.Chain. Always unknown.
func (a *Adapter) MempoolNextTx(directsend.Outpoint) (chainhash.Hash, bool) {
	return chainhash.Hash{}, false
}

// Lookup implements directsend.UTXOSource.
func (a *Adapter) Lookup(o directsend.Outpoint) (directsend.UTXOEntry, bool) {
	out, err := a.node.GetTxOut(o.TxHash.String(), int(o.Index), true)
	if err != nil || out == nil {
		return directsend.UTXOEntry{}, false
	}

	height := a.CurrentHeight() - int32(out.Confirmations) + 1
	if height < 0 {
		height = 0
	}

	script, err := bscript.NewFromHexString(out.ScriptPubKey.Hex)
	if err != nil {
		return directsend.UTXOEntry{}, false
	}

	return directsend.UTXOEntry{
		Height: height,
		Value:  int64(out.Value * 1e8),
		Script: *script,
	}, true
}
