package directsend

import (
	"log/slog"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// runVoterProtocol implements the Voter role of spec §4.4: when this node
// is itself an elected quorum member for one of a candidate's inputs, it
// generates, signs, stores, and relays its own vote.
//
// Gated on: node is configured as a masternode; feature-flag enabled;
// masternode list is synced.
func (e *Engine) runVoterProtocol(cand *LockCandidate) {
	self, isMasternode := e.registry.IsLocalMasternode()
	if !isMasternode {
		return
	}
	if !e.sporks.Enabled(SporkDirectSendEnabled) {
		return
	}
	if !e.registry.IsSynced() {
		return
	}

	for _, o := range cand.Outpoints() {
		entry, ok := e.utxos.Lookup(o)
		if !ok {
			// Cannot rank without the UTXO's height: abort voting for the
			// whole candidate, not just this input.
			return
		}

		rank, ok := e.registry.Rank(self, o, entry.Height+e.cfg.RankHeightOffset, e.cfg.ProtocolVersion)
		if !ok || rank > e.cfg.SignaturesTotal {
			continue
		}

		if e.hasVoterVotedOnOutpoint(o, self) {
			continue
		}

		vote := NewVote(cand.TxHash(), o, self, e.now())
		if err := vote.Sign(e.scheme, e.keys); err != nil {
			e.logger.Error("failed to sign own vote", slog.String("outpoint", o.String()), slog.String("err", err.Error()))
			return
		}
		if !vote.CheckSignature(e.scheme, e.selfPubKey(self)) {
			e.logger.Error("self-verification of own vote failed", slog.String("outpoint", o.String()))
			return
		}

		e.mu.Lock()
		e.votes[vote.Hash()] = vote
		set, ok := e.votedOutpoints[o]
		if !ok {
			set = make(map[chainhash.Hash]struct{})
			e.votedOutpoints[o] = set
		}
		set[cand.TxHash()] = struct{}{}
		e.mu.Unlock()

		_, _ = cand.AddVote(vote)

		e.transport.RelayInventory(InvLockVote, vote.Hash())
	}
}

func (e *Engine) hasVoterVotedOnOutpoint(o Outpoint, voter VoterID) bool {
	e.mu.RLock()
	txHashes := e.votedOutpoints[o]
	candidates := make([]*LockCandidate, 0, len(txHashes))
	for h := range txHashes {
		if c, ok := e.candidates[h]; ok {
			candidates = append(candidates, c)
		}
	}
	e.mu.RUnlock()

	for _, c := range candidates {
		if c.HasVoterVoted(o, voter) {
			return true
		}
	}
	return false
}

func (e *Engine) selfPubKey(self VoterID) []byte {
	info, ok := e.registry.Info(self)
	if !ok {
		return nil
	}
	return info.PubKey
}
