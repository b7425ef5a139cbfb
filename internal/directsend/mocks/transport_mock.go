// Code generated by moq; hand-authored here in the same shape since
// the example pack ships the go:generate directives but not the
// generated output. DO NOT EDIT structure without keeping it in sync
// with internal/directsend.Transport.

package mocks

import (
	"sync"

	bt "github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"

	"github.com/bitcoin-sv/directsend/internal/directsend"
)

// TransportMock is a mock implementation of directsend.Transport.
type TransportMock struct {
	RelayInventoryFunc   func(kind directsend.InventoryKind, hash chainhash.Hash)
	RelayTransactionFunc func(req *bt.Tx)

	mu    sync.RWMutex
	calls struct {
		RelayInventory []struct {
			Kind directsend.InventoryKind
			Hash chainhash.Hash
		}
		RelayTransaction []struct {
			Req *bt.Tx
		}
	}
}

func (m *TransportMock) RelayInventory(kind directsend.InventoryKind, hash chainhash.Hash) {
	m.mu.Lock()
	m.calls.RelayInventory = append(m.calls.RelayInventory, struct {
		Kind directsend.InventoryKind
		Hash chainhash.Hash
	}{Kind: kind, Hash: hash})
	m.mu.Unlock()
	if m.RelayInventoryFunc != nil {
		m.RelayInventoryFunc(kind, hash)
	}
}

func (m *TransportMock) RelayInventoryCalls() []struct {
	Kind directsend.InventoryKind
	Hash chainhash.Hash
} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.RelayInventory
}

func (m *TransportMock) RelayTransaction(req *bt.Tx) {
	m.mu.Lock()
	m.calls.RelayTransaction = append(m.calls.RelayTransaction, struct{ Req *bt.Tx }{Req: req})
	m.mu.Unlock()
	if m.RelayTransactionFunc != nil {
		m.RelayTransactionFunc(req)
	}
}

func (m *TransportMock) RelayTransactionCalls() []struct{ Req *bt.Tx } {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.RelayTransaction
}
