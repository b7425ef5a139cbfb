// Code generated by moq; hand-authored here in the same shape since
// the example pack ships the go:generate directives but not the
// generated output. DO NOT EDIT structure without keeping it in sync
// with internal/directsend.KeyStore.

package mocks

import "github.com/bitcoin-sv/directsend/internal/directsend"

// KeyStoreMock is a mock implementation of directsend.KeyStore.
type KeyStoreMock struct {
	PrivateKeyFunc func(voter directsend.VoterID) ([]byte, bool)
}

func (m *KeyStoreMock) PrivateKey(voter directsend.VoterID) ([]byte, bool) {
	if m.PrivateKeyFunc == nil {
		return nil, false
	}
	return m.PrivateKeyFunc(voter)
}
