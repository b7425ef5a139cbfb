package directsend

// reconcileOrphans implements "Orphan reconciliation" of spec §4.4:
// iterate orphan_votes; for each, re-dispatch it now that more candidates
// may have attached their Lock Request. On success (the vote is now
// absorbed by a live candidate) the entry is removed; on failure it is
// left in place.
func (e *Engine) reconcileOrphans() {
	e.mu.RLock()
	snapshot := make([]*Vote, 0, len(e.orphanVotes))
	for _, v := range e.orphanVotes {
		snapshot = append(snapshot, v)
	}
	e.mu.RUnlock()

	for _, v := range snapshot {
		e.mu.RLock()
		cand, exists := e.candidates[v.TxHash]
		e.mu.RUnlock()

		if !exists {
			continue
		}
		if _, hasRequest := cand.Request(); !hasRequest {
			continue
		}
		if cand.TimedOut(e.now(), e.cfg.LockTimeout) {
			continue
		}

		e.handleLiveVote(v, cand)

		e.mu.Lock()
		delete(e.orphanVotes, v.Hash())
		e.mu.Unlock()
	}
}
