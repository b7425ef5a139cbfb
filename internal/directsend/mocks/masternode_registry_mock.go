// Code generated by moq; hand-authored here in the same shape since
// the example pack ships the go:generate directives but not the
// generated output. DO NOT EDIT structure without keeping it in sync
// with internal/directsend.MasternodeRegistry.

package mocks

import (
	"sync"

	"github.com/bitcoin-sv/directsend/internal/directsend"
)

// MasternodeRegistryMock is a mock implementation of
// directsend.MasternodeRegistry.
type MasternodeRegistryMock struct {
	HasFunc                func(voter directsend.VoterID) bool
	InfoFunc               func(voter directsend.VoterID) (directsend.MasternodeInfo, bool)
	AskPeerFunc            func(origin directsend.PeerRef, voter directsend.VoterID)
	BanFunc                func(voter directsend.VoterID)
	RankFunc               func(voter directsend.VoterID, o directsend.Outpoint, height int32, protocolVersion uint32) (int, bool)
	IsSyncedFunc           func() bool
	IsLocalMasternodeFunc  func() (directsend.VoterID, bool)

	mu    sync.RWMutex
	calls struct {
		Ban []directsend.VoterID
	}
}

func (m *MasternodeRegistryMock) Has(voter directsend.VoterID) bool {
	if m.HasFunc == nil {
		panic("MasternodeRegistryMock.HasFunc is nil")
	}
	return m.HasFunc(voter)
}

func (m *MasternodeRegistryMock) Info(voter directsend.VoterID) (directsend.MasternodeInfo, bool) {
	if m.InfoFunc == nil {
		panic("MasternodeRegistryMock.InfoFunc is nil")
	}
	return m.InfoFunc(voter)
}

func (m *MasternodeRegistryMock) AskPeer(origin directsend.PeerRef, voter directsend.VoterID) {
	if m.AskPeerFunc == nil {
		return
	}
	m.AskPeerFunc(origin, voter)
}

func (m *MasternodeRegistryMock) Ban(voter directsend.VoterID) {
	m.mu.Lock()
	m.calls.Ban = append(m.calls.Ban, voter)
	m.mu.Unlock()
	if m.BanFunc != nil {
		m.BanFunc(voter)
	}
}

func (m *MasternodeRegistryMock) BanCalls() []directsend.VoterID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Ban
}

func (m *MasternodeRegistryMock) Rank(voter directsend.VoterID, o directsend.Outpoint, height int32, protocolVersion uint32) (int, bool) {
	if m.RankFunc == nil {
		panic("MasternodeRegistryMock.RankFunc is nil")
	}
	return m.RankFunc(voter, o, height, protocolVersion)
}

func (m *MasternodeRegistryMock) IsSynced() bool {
	if m.IsSyncedFunc == nil {
		return true
	}
	return m.IsSyncedFunc()
}

func (m *MasternodeRegistryMock) IsLocalMasternode() (directsend.VoterID, bool) {
	if m.IsLocalMasternodeFunc == nil {
		return directsend.VoterID{}, false
	}
	return m.IsLocalMasternodeFunc()
}
