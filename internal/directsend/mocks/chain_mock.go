// Code generated by moq; hand-authored here in the same shape since
// the example pack ships the go:generate directives but not the
// generated output. DO NOT EDIT structure without keeping it in sync
// with internal/directsend.Chain.

package mocks

import (
	bt "github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"

	"github.com/bitcoin-sv/directsend/internal/directsend"
)

// ChainMock is a mock implementation of directsend.Chain.
type ChainMock struct {
	CurrentHeightFunc  func() int32
	IsFinalizedFunc    func(txHash chainhash.Hash) bool
	GetTxFunc          func(txHash chainhash.Hash) (*bt.Tx, chainhash.Hash, bool)
	MempoolNextTxFunc  func(o directsend.Outpoint) (chainhash.Hash, bool)
}

func (m *ChainMock) CurrentHeight() int32 {
	if m.CurrentHeightFunc == nil {
		return 0
	}
	return m.CurrentHeightFunc()
}

func (m *ChainMock) IsFinalized(txHash chainhash.Hash) bool {
	if m.IsFinalizedFunc == nil {
		return false
	}
	return m.IsFinalizedFunc(txHash)
}

func (m *ChainMock) GetTx(txHash chainhash.Hash) (*bt.Tx, chainhash.Hash, bool) {
	if m.GetTxFunc == nil {
		return nil, chainhash.Hash{}, false
	}
	return m.GetTxFunc(txHash)
}

func (m *ChainMock) MempoolNextTx(o directsend.Outpoint) (chainhash.Hash, bool) {
	if m.MempoolNextTxFunc == nil {
		return chainhash.Hash{}, false
	}
	return m.MempoolNextTxFunc(o)
}
