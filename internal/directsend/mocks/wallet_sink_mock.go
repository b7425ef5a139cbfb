// Code generated by moq; hand-authored here in the same shape since
// the example pack ships the go:generate directives but not the
// generated output. DO NOT EDIT structure without keeping it in sync
// with internal/directsend.WalletSink.

package mocks

import (
	"sync"

	bt "github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// WalletSinkMock is a mock implementation of directsend.WalletSink.
type WalletSinkMock struct {
	TransactionUpdatedFunc func(txHash chainhash.Hash) bool
	LockNotificationFunc   func(req *bt.Tx)

	mu    sync.RWMutex
	calls struct {
		LockNotification []struct{ Req *bt.Tx }
	}
}

func (m *WalletSinkMock) TransactionUpdated(txHash chainhash.Hash) bool {
	if m.TransactionUpdatedFunc == nil {
		return false
	}
	return m.TransactionUpdatedFunc(txHash)
}

func (m *WalletSinkMock) LockNotification(req *bt.Tx) {
	m.mu.Lock()
	m.calls.LockNotification = append(m.calls.LockNotification, struct{ Req *bt.Tx }{Req: req})
	m.mu.Unlock()
	if m.LockNotificationFunc != nil {
		m.LockNotificationFunc(req)
	}
}

func (m *WalletSinkMock) LockNotificationCalls() []struct{ Req *bt.Tx } {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.LockNotification
}
