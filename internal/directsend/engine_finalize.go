package directsend

import (
	"log/slog"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// tryFinalize implements Finalization of spec §4.4. Called after any
// candidate mutation. Gated on the directsend feature-flag.
func (e *Engine) tryFinalize(cand *LockCandidate) {
	if !e.sporks.Enabled(SporkDirectSendEnabled) {
		return
	}

	hash := cand.TxHash()
	outpoints := cand.Outpoints()

	if !cand.AllReady(e.cfg.SignaturesRequired) || e.isAlreadyLocked(hash, outpoints) {
		return
	}

	if err := e.resolveConflicts(cand); err != nil {
		e.logger.Debug("finalization deferred: conflict unresolved", slog.String("tx", hash.String()), slog.String("err", err.Error()))
		return
	}

	e.mu.Lock()
	for _, o := range outpoints {
		e.lockedOutpoints[o] = hash
	}
	e.lockCounter++
	e.mu.Unlock()

	req, _ := cand.Request()
	e.wallet.LockNotification(req)
	if e.notifier != nil {
		e.notifier.Notify(hash)
	}
}

func (e *Engine) isAlreadyLocked(hash chainhash.Hash, outpoints []Outpoint) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, o := range outpoints {
		if lockedBy, ok := e.lockedOutpoints[o]; ok && lockedBy == hash {
			return true
		}
	}
	return false
}

// resolveConflicts implements Conflict resolution of spec §4.4.
func (e *Engine) resolveConflicts(cand *LockCandidate) error {
	hash := cand.TxHash()

	for _, o := range cand.Outpoints() {
		e.mu.RLock()
		lockedBy, locked := e.lockedOutpoints[o]
		e.mu.RUnlock()

		if locked && lockedBy != hash {
			e.dropConflictingCandidates(hash, lockedBy)
			return ErrConflictingLock
		}

		if spender, ok := e.chain.MempoolNextTx(o); ok && spender != hash {
			return ErrMempoolConflict
		}
	}

	if e.chain.IsFinalized(hash) {
		return nil
	}

	for _, o := range cand.Outpoints() {
		if _, ok := e.utxos.Lookup(o); !ok {
			return ErrInputVanished
		}
	}

	return nil
}

// dropConflictingCandidates implements the "two completed-but-disagreeing
// locks" branch of Conflict resolution: both candidates are forced to
// expire on the next GC sweep and both requests are recorded as rejected.
func (e *Engine) dropConflictingCandidates(a, b chainhash.Hash) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, h := range [2]chainhash.Hash{a, b} {
		if cand, ok := e.candidates[h]; ok {
			cand.SetConfirmedHeight(0)
		}
		if req, ok := e.acceptedRequests[h]; ok {
			e.rejectedRequests[h] = req
			delete(e.acceptedRequests, h)
		}
	}
}

// SyncTransaction implements sync-transaction(tx, block?) of spec §4.4:
// propagates the confirming height into the candidate and every vote
// attached to every OutpointLock, and into matching orphan_votes entries.
func (e *Engine) SyncTransaction(txHash chainhash.Hash, blockHeight int32) {
	newHeight := blockHeight
	if blockHeight == 0 {
		newHeight = UnconfirmedHeight
	}

	e.mu.RLock()
	cand, ok := e.candidates[txHash]
	e.mu.RUnlock()

	if ok {
		cand.SetConfirmedHeight(newHeight)
	}

	e.mu.RLock()
	orphans := make([]*Vote, 0)
	for _, v := range e.orphanVotes {
		if v.TxHash == txHash {
			orphans = append(orphans, v)
		}
	}
	e.mu.RUnlock()

	for _, v := range orphans {
		v.SetConfirmedHeight(newHeight)
	}
}
