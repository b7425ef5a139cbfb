// Code generated by moq; hand-authored here in the same shape since
// the example pack ships the go:generate directives but not the
// generated output. DO NOT EDIT structure without keeping it in sync
// with internal/directsend.UTXOSource.

package mocks

import (
	"sync"

	"github.com/bitcoin-sv/directsend/internal/directsend"
)

// UTXOSourceMock is a mock implementation of directsend.UTXOSource.
type UTXOSourceMock struct {
	// LookupFunc mocks the Lookup method.
	LookupFunc func(outpoint directsend.Outpoint) (directsend.UTXOEntry, bool)

	calls struct {
		Lookup []struct {
			Outpoint directsend.Outpoint
		}
	}
	lockLookup sync.RWMutex
}

// Lookup calls LookupFunc.
func (m *UTXOSourceMock) Lookup(outpoint directsend.Outpoint) (directsend.UTXOEntry, bool) {
	if m.LookupFunc == nil {
		panic("UTXOSourceMock.LookupFunc: method is nil but UTXOSource.Lookup was just called")
	}
	m.lockLookup.Lock()
	m.calls.Lookup = append(m.calls.Lookup, struct {
		Outpoint directsend.Outpoint
	}{Outpoint: outpoint})
	m.lockLookup.Unlock()
	return m.LookupFunc(outpoint)
}

// LookupCalls gets all the calls that were made to Lookup.
func (m *UTXOSourceMock) LookupCalls() []struct {
	Outpoint directsend.Outpoint
} {
	m.lockLookup.RLock()
	defer m.lockLookup.RUnlock()
	return m.calls.Lookup
}
