package directsend

import (
	"log/slog"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// CheckAndRemove implements the garbage-collection sweep of spec §4.4.
// Gated on the masternode list being synced. Steps run in the order
// given by the spec to preserve its invariants; this ordering (in
// particular the two separate passes over votes, one for orphan timeouts
// and one for failed votes) is preserved verbatim from the original
// implementation this subsystem is modeled on rather than simplified.
func (e *Engine) CheckAndRemove() {
	if !e.registry.IsSynced() {
		return
	}

	height := e.height()
	now := e.now()

	e.removeExpiredCandidates(height)
	e.removeExpiredVotes(height)
	e.removeTimedOutOrphans(now)
	e.removeFailedVotes(now)
	e.removeStaleOrphanEpochs(now)

	e.logger.Debug("check-and-remove complete", slog.String("summary", e.Snapshot()))
}

// Step 1: remove candidates where expired(cached_height).
func (e *Engine) removeExpiredCandidates(height int32) {
	e.mu.RLock()
	expired := make([]chainhash.Hash, 0)
	for h, cand := range e.candidates {
		if cand.Expired(height, e.cfg.KeepLockDepth) {
			expired = append(expired, h)
		}
	}
	e.mu.RUnlock()

	if len(expired) == 0 {
		return
	}

	e.mu.Lock()
	for _, h := range expired {
		cand, ok := e.candidates[h]
		if !ok {
			continue
		}
		for _, o := range cand.Outpoints() {
			if lockedBy, ok := e.lockedOutpoints[o]; ok && lockedBy == h {
				delete(e.lockedOutpoints, o)
			}
			if set, ok := e.votedOutpoints[o]; ok {
				delete(set, h)
				if len(set) == 0 {
					delete(e.votedOutpoints, o)
				}
			}
		}
		delete(e.candidates, h)
		delete(e.acceptedRequests, h)
		delete(e.rejectedRequests, h)
	}
	e.mu.Unlock()
}

// Step 2: remove votes in votes where expired(cached_height).
func (e *Engine) removeExpiredVotes(height int32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for h, v := range e.votes {
		if v.Expired(height, e.cfg.KeepLockDepth) {
			delete(e.votes, h)
		}
	}
}

// Step 3: remove orphan votes where timed-out(); also delete them from
// votes.
func (e *Engine) removeTimedOutOrphans(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for h, v := range e.orphanVotes {
		if v.TimedOut(now, e.cfg.LockTimeout) {
			delete(e.orphanVotes, h)
			delete(e.votes, h)
		}
	}
}

// Step 4: remove votes where failed().
func (e *Engine) removeFailedVotes(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for h, v := range e.votes {
		locked := e.voteIsLockedLocked(v)
		if v.Failed(now, e.cfg.FailedTimeout, locked) {
			delete(e.votes, h)
		}
	}
}

func (e *Engine) voteIsLockedLocked(v *Vote) bool {
	lockedBy, ok := e.lockedOutpoints[v.Outpoint]
	return ok && lockedBy == v.TxHash
}

// Step 5: remove voter_orphan_epoch entries whose epoch is in the past.
func (e *Engine) removeStaleOrphanEpochs(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for voter, epoch := range e.voterOrphanEpoch {
		if !epoch.After(now) {
			delete(e.voterOrphanEpoch, voter)
		}
	}
}
