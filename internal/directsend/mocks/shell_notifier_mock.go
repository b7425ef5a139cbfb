// Code generated by moq; hand-authored here in the same shape since
// the example pack ships the go:generate directives but not the
// generated output. DO NOT EDIT structure without keeping it in sync
// with internal/directsend.ShellNotifier.

package mocks

import (
	"sync"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// ShellNotifierMock is a mock implementation of
// directsend.ShellNotifier.
type ShellNotifierMock struct {
	NotifyFunc func(txHash chainhash.Hash)

	mu    sync.RWMutex
	calls struct {
		Notify []chainhash.Hash
	}
}

func (m *ShellNotifierMock) Notify(txHash chainhash.Hash) {
	m.mu.Lock()
	m.calls.Notify = append(m.calls.Notify, txHash)
	m.mu.Unlock()
	if m.NotifyFunc != nil {
		m.NotifyFunc(txHash)
	}
}

func (m *ShellNotifierMock) NotifyCalls() []chainhash.Hash {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Notify
}
