package directsend

import (
	"fmt"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// AlreadyHave implements already-have(hash) of spec §4.4.
func (e *Engine) AlreadyHave(hash chainhash.Hash) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if _, ok := e.acceptedRequests[hash]; ok {
		return true
	}
	if _, ok := e.rejectedRequests[hash]; ok {
		return true
	}
	if _, ok := e.votes[hash]; ok {
		return true
	}
	return false
}

// IsReadyToLock implements is-ready-to-lock(tx-hash) of spec §4.4.
func (e *Engine) IsReadyToLock(txHash chainhash.Hash) bool {
	e.mu.RLock()
	cand, ok := e.candidates[txHash]
	e.mu.RUnlock()
	if !ok {
		return false
	}
	return cand.AllReady(e.cfg.SignaturesRequired)
}

// IsLocked implements is-locked(tx-hash) of spec §4.4. Gated on the
// block-filtering feature-flag, since this predicate drives whether the
// rest of the node treats the transaction as settled.
func (e *Engine) IsLocked(txHash chainhash.Hash) bool {
	if !e.sporks.Enabled(SporkDirectSendBlockFiltering) {
		return false
	}

	e.mu.RLock()
	cand, ok := e.candidates[txHash]
	e.mu.RUnlock()
	if !ok {
		return false
	}

	outpoints := cand.Outpoints()
	if len(outpoints) == 0 {
		return false
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, o := range outpoints {
		lockedBy, locked := e.lockedOutpoints[o]
		if !locked || lockedBy != txHash {
			return false
		}
	}
	return true
}

// Confirmations implements confirmations(tx-hash) of spec §4.4.
func (e *Engine) Confirmations(txHash chainhash.Hash) int32 {
	if e.IsLocked(txHash) {
		return e.cfg.KeepLockDepth
	}
	return 0
}

// Sentinel returns of Signatures, matching the three disabled/unknown/
// fork-warning states carried over from the original implementation's
// nSignatures return value.
const (
	SignaturesUnknown     int32 = -1
	SignaturesForkWarning int32 = -2
	SignaturesFeatureOff  int32 = -3
)

// Signatures implements signatures(tx-hash) of spec §4.4: total votes
// across inputs, or a negative sentinel when the count is not
// meaningful. A transaction that was dropped to rejected_requests by
// conflict resolution reports SignaturesForkWarning rather than a
// count, since its vote tallies no longer reflect consensus on this
// chain tip.
func (e *Engine) Signatures(txHash chainhash.Hash) int32 {
	if !e.sporks.Enabled(SporkDirectSendEnabled) {
		return SignaturesFeatureOff
	}

	e.mu.RLock()
	_, rejected := e.rejectedRequests[txHash]
	cand, ok := e.candidates[txHash]
	e.mu.RUnlock()

	if rejected {
		return SignaturesForkWarning
	}
	if !ok {
		return SignaturesUnknown
	}

	return int32(cand.TotalVotes())
}

// VoteByHash returns a previously ingested vote by its own hash. Used
// by gossip transports that advertise inventory by hash and must
// answer a peer's follow-up fetch.
func (e *Engine) VoteByHash(hash chainhash.Hash) (*Vote, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.votes[hash]
	return v, ok
}

// RequestByHash returns a previously accepted or rejected Lock Request
// by transaction hash. Used by gossip transports answering a peer's
// RelayTransaction-style fetch.
func (e *Engine) RequestByHash(hash chainhash.Hash) (*bt.Tx, bool) {
	return e.lookupKnownRequest(hash)
}

// Snapshot renders a short diagnostic summary of engine state, in the
// spirit of the teacher's ToString()-style dumps used for periodic
// debug logging.
func (e *Engine) Snapshot() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return fmt.Sprintf(
		"candidates=%d votes=%d orphans=%d locked=%d accepted=%d rejected=%d lockCounter=%d height=%d",
		len(e.candidates), len(e.votes), len(e.orphanVotes), len(e.lockedOutpoints),
		len(e.acceptedRequests), len(e.rejectedRequests), e.lockCounter, e.cachedHeight,
	)
}
