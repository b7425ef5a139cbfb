package directsend

import (
	"log/slog"
	"time"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// ProcessVoteMessage implements process-vote-message(v, origin) of spec
// §4.4. Its precondition is that the caller has already deduplicated the
// message against votes by vote-hash; this entry point re-checks that
// dedup defensively so repeated delivery of the same vote is always a
// no-op, matching the round-trip law of spec §8.
func (e *Engine) ProcessVoteMessage(v *Vote, origin PeerRef) error {
	hash := v.Hash()

	e.mu.RLock()
	_, already := e.votes[hash]
	e.mu.RUnlock()
	if already {
		return nil
	}

	return e.ingestVote(v, origin)
}

func (e *Engine) ingestVote(v *Vote, origin PeerRef) error {
	if err := ValidateVote(v, origin, e.registry, e.utxos, e.scheme, e.cfg); err != nil {
		e.logger.Debug("vote rejected", slog.String("outpoint", v.Outpoint.String()), slog.String("err", err.Error()))
		return err
	}

	// Relay immediately: the valid-vote fast path. Relaying before the
	// candidate lookup is deliberate, so other honest nodes converge on
	// the same double-vote verdict even if our own candidate lookup
	// later fails.
	e.transport.RelayInventory(InvLockVote, v.Hash())

	e.mu.Lock()
	e.votes[v.Hash()] = v
	e.mu.Unlock()

	e.dispatchVote(v)
	return nil
}

func (e *Engine) dispatchVote(v *Vote) {
	e.mu.RLock()
	cand, exists := e.candidates[v.TxHash]
	e.mu.RUnlock()

	var hasRequest bool
	if exists {
		_, hasRequest = cand.Request()
	}

	if !exists || !hasRequest {
		e.handleOrphanVote(v, exists, cand)
		return
	}
	e.handleLiveVote(v, cand)
}

// handleOrphanVote implements the Orphan branch of process-vote-message.
func (e *Engine) handleOrphanVote(v *Vote, shellExists bool, shell *LockCandidate) {
	if e.orphanRateLimited(v.VoterID) {
		e.logger.Debug("dropping orphan vote: rate limited", slog.String("voter", v.VoterID.String()))
		return
	}
	e.touchOrphanEpoch(v.VoterID)

	e.mu.Lock()
	e.orphanVotes[v.Hash()] = v
	if !shellExists {
		shell = NewLockCandidate(v.TxHash, e.now())
		e.candidates[v.TxHash] = shell
	}
	e.mu.Unlock()

	shell.AddOutpointLock(v.Outpoint)
	_, _ = shell.AddVote(v)

	req, known := e.lookupKnownRequest(v.TxHash)
	if known && e.orphanCountSatisfiesQuorum(v.TxHash, req) {
		_ = e.ProcessLockRequest(req)
	}
}

// handleLiveVote implements the Live branch of process-vote-message.
func (e *Engine) handleLiveVote(v *Vote, cand *LockCandidate) {
	if cand.TimedOut(e.now(), e.cfg.LockTimeout) {
		return
	}

	e.mu.RLock()
	competitors := make([]chainhash.Hash, 0, len(e.votedOutpoints[v.Outpoint]))
	for h := range e.votedOutpoints[v.Outpoint] {
		competitors = append(competitors, h)
	}
	e.mu.RUnlock()

	for _, h := range competitors {
		if h == v.TxHash {
			continue
		}
		e.mu.RLock()
		other, ok := e.candidates[h]
		e.mu.RUnlock()
		if !ok {
			continue
		}
		if other.HasVoterVoted(v.Outpoint, v.VoterID) {
			cand.MarkOutpointAttacked(v.Outpoint)
			other.MarkOutpointAttacked(v.Outpoint)
			e.registry.Ban(v.VoterID)
			e.logger.Warn("double vote detected", slog.String("voter", v.VoterID.String()), slog.String("outpoint", v.Outpoint.String()), slog.String("txA", v.TxHash.String()), slog.String("txB", h.String()))
		}
	}

	e.mu.Lock()
	set, ok := e.votedOutpoints[v.Outpoint]
	if !ok {
		set = make(map[chainhash.Hash]struct{})
		e.votedOutpoints[v.Outpoint] = set
	}
	set[v.TxHash] = struct{}{}
	e.mu.Unlock()

	// The attacked-input vote is still recorded here even when this very
	// call just latched the attacked flag above: readiness is gated by
	// the flag independently, so the observable outcome is unchanged.
	_, _ = cand.AddVote(v)

	e.tryFinalize(cand)
}

func (e *Engine) lookupKnownRequest(h chainhash.Hash) (*bt.Tx, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if req, ok := e.acceptedRequests[h]; ok {
		return req, true
	}
	if req, ok := e.rejectedRequests[h]; ok {
		return req, true
	}
	return nil, false
}

// orphanCountSatisfiesQuorum reports whether every input of req already
// has at least SignaturesRequired orphan votes recorded.
func (e *Engine) orphanCountSatisfiesQuorum(h chainhash.Hash, req *bt.Tx) bool {
	inputs, err := requestOutpoints(req)
	if err != nil || len(inputs) == 0 {
		return false
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, o := range inputs {
		count := 0
		for _, v := range e.orphanVotes {
			if v.TxHash == h && v.Outpoint == o {
				count++
			}
		}
		if count < e.cfg.SignaturesRequired {
			return false
		}
	}
	return true
}

// orphanRateLimited implements the per-voter orphan rate-limit of spec
// §4.4: a voter is spam-classified if its previously recorded epoch is
// still in the future and exceeds the mean of all currently tracked
// voter epochs. Every call records the voter's new epoch via
// touchOrphanEpoch before the check, whether or not the vote is then
// dropped, matching the original's "update, then check the prior value"
// ordering.
func (e *Engine) orphanRateLimited(voter VoterID) bool {
	now := e.now()

	e.mu.RLock()
	prevEpoch, tracked := e.voterOrphanEpoch[voter]
	e.mu.RUnlock()

	e.touchOrphanEpoch(voter)

	if !tracked {
		return false
	}
	if !prevEpoch.After(now) {
		return false
	}

	return prevEpoch.After(e.meanOrphanEpoch())
}

func (e *Engine) meanOrphanEpoch() time.Time {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.voterOrphanEpoch) == 0 {
		return e.now()
	}

	var total int64
	for _, t := range e.voterOrphanEpoch {
		total += t.UnixNano()
	}
	return time.Unix(0, total/int64(len(e.voterOrphanEpoch)))
}

func (e *Engine) touchOrphanEpoch(voter VoterID) {
	e.mu.Lock()
	e.voterOrphanEpoch[voter] = e.now().Add(e.cfg.OrphanRateLimitWindow)
	e.mu.Unlock()
}
