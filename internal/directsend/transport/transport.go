// Package transport implements the directsend.Transport adapter over
// a libsv/go-p2p peer manager.
package transport

import (
	"fmt"

	bthash "github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/libsv/go-p2p"
	"github.com/libsv/go-p2p/chaincfg/chainhash"

	"github.com/bitcoin-sv/directsend/internal/directsend"
)

// PeerTransport relays DirectSend inventory and transactions over a
// libsv/go-p2p peer manager, grounded on the teacher's PeerHandler and
// its use of pm.AnnounceTransaction/pm.RequestTransaction.
type PeerTransport struct {
	pm p2p.PeerManagerI
}

// New builds a PeerTransport around an already-running peer manager.
func New(pm p2p.PeerManagerI) *PeerTransport {
	return &PeerTransport{pm: pm}
}

// RelayInventory announces a lock-vote (or other DirectSend inventory
// item) to connected peers. The hash crosses from this module's
// bsv-blockchain/go-bt/v2/chainhash into libsv/go-p2p's own chainhash
// generation at this one boundary point.
func (t *PeerTransport) RelayInventory(_ directsend.InventoryKind, hash bthash.Hash) {
	converted, err := chainhash.NewHash(hash[:])
	if err != nil {
		// Both chainhash generations use a 32-byte array; this only
		// fails if that invariant is ever broken upstream.
		panic(fmt.Sprintf("directsend/transport: invalid hash: %v", err))
	}
	t.pm.AnnounceTransaction(converted, nil)
}

// RelayTransaction requests the full Lock Request transaction from
// peers, mirroring the teacher's RequestTransaction call for
// transactions this node has only seen announced.
func (t *PeerTransport) RelayTransaction(req *bt.Tx) {
	h, err := chainhash.NewHashFromStr(req.TxID())
	if err != nil {
		return
	}
	t.pm.RequestTransaction(h)
}
