package directsend

import (
	"github.com/sasha-s/go-deadlock"
)

// OutpointLock is the per-input vote aggregator inside a LockCandidate.
// It collects at most one vote per voter-id for a single outpoint and
// latches "attacked" permanently once a voter conflict is detected.
type OutpointLock struct {
	mu       deadlock.RWMutex
	outpoint Outpoint
	votes    map[VoterID]*Vote
	attacked bool
}

// NewOutpointLock creates an empty aggregator for the given outpoint.
func NewOutpointLock(o Outpoint) *OutpointLock {
	return &OutpointLock{
		outpoint: o,
		votes:    make(map[VoterID]*Vote),
	}
}

// Outpoint returns the input this lock aggregates votes for.
func (l *OutpointLock) Outpoint() Outpoint {
	return l.outpoint
}

// AddVote inserts v iff its voter has not already voted on this outpoint
// in this OutpointLock. Returns whether the insertion occurred. Does not
// re-validate v; callers must pre-validate via ValidateVote.
func (l *OutpointLock) AddVote(v *Vote) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.votes[v.VoterID]; exists {
		return false
	}
	l.votes[v.VoterID] = v
	return true
}

// HasVoted reports whether voter already has a stored vote on this input.
func (l *OutpointLock) HasVoted(voter VoterID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.votes[voter]
	return ok
}

// Count returns the number of distinct voters recorded.
func (l *OutpointLock) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.votes)
}

// Ready reports whether the vote count has reached SignaturesRequired and
// the attacked flag is unset.
func (l *OutpointLock) Ready(signaturesRequired int) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return !l.attacked && len(l.votes) >= signaturesRequired
}

// MarkAttacked is a one-way latch. Once set, Ready always returns false.
func (l *OutpointLock) MarkAttacked() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.attacked = true
}

// Attacked reports whether the latch has been set.
func (l *OutpointLock) Attacked() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.attacked
}

// Votes returns a copy of the votes currently held, for relay.
func (l *OutpointLock) Votes() []*Vote {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Vote, 0, len(l.votes))
	for _, v := range l.votes {
		out = append(out, v)
	}
	return out
}
