package directsend

import (
	"time"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/sasha-s/go-deadlock"
)

// LockCandidate is the per-transaction vote aggregator: one OutpointLock
// per input of the transaction, plus the optional Lock Request itself. A
// candidate created from an orphan vote has no Request until one arrives;
// it exists only as a shell to accumulate orphan votes, and is itself
// time-bounded.
type LockCandidate struct {
	mu              deadlock.RWMutex
	txHash          chainhash.Hash
	request         *bt.Tx
	outpointLocks   map[Outpoint]*OutpointLock
	createdAt       time.Time
	confirmedHeight int32
}

// NewLockCandidate creates a candidate shell for txHash with no request
// and no registered inputs yet.
func NewLockCandidate(txHash chainhash.Hash, now time.Time) *LockCandidate {
	return &LockCandidate{
		txHash:          txHash,
		outpointLocks:   make(map[Outpoint]*OutpointLock),
		createdAt:       now,
		confirmedHeight: UnconfirmedHeight,
	}
}

// TxHash is the candidate's identity.
func (c *LockCandidate) TxHash() chainhash.Hash {
	return c.txHash
}

// Request returns the attached lock request, if any.
func (c *LockCandidate) Request() (*bt.Tx, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.request, c.request != nil
}

// AttachRequest attaches req and registers one OutpointLock per input,
// skipping inputs already registered (idempotent with respect to inputs
// seeded by earlier orphan votes).
func (c *LockCandidate) AttachRequest(req *bt.Tx) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.request = req
	for _, in := range req.Inputs {
		prevHash, err := chainhash.NewHashFromStr(in.PreviousTxIDStr())
		if err != nil {
			continue
		}
		o := Outpoint{TxHash: *prevHash, Index: in.PreviousTxOutIndex}
		if _, ok := c.outpointLocks[o]; !ok {
			c.outpointLocks[o] = NewOutpointLock(o)
		}
	}
}

// AddOutpointLock registers an empty OutpointLock for input o, if not
// already present, and returns the lock for o. Called for an arriving
// orphan vote; AttachRequest registers a request's inputs itself.
func (c *LockCandidate) AddOutpointLock(o Outpoint) *OutpointLock {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.outpointLocks[o]
	if !ok {
		l = NewOutpointLock(o)
		c.outpointLocks[o] = l
	}
	return l
}

// OutpointLock returns the lock registered for o, if any.
func (c *LockCandidate) OutpointLock(o Outpoint) (*OutpointLock, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	l, ok := c.outpointLocks[o]
	return l, ok
}

// AddVote dispatches v to the OutpointLock for v.Outpoint. Returns
// ErrInputNotRegistered if that input is not registered on this
// candidate.
func (c *LockCandidate) AddVote(v *Vote) (bool, error) {
	c.mu.RLock()
	l, ok := c.outpointLocks[v.Outpoint]
	c.mu.RUnlock()

	if !ok {
		return false, ErrInputNotRegistered
	}
	return l.AddVote(v), nil
}

// MarkOutpointAttacked latches the attacked flag on a specific input, if
// registered.
func (c *LockCandidate) MarkOutpointAttacked(o Outpoint) {
	c.mu.RLock()
	l, ok := c.outpointLocks[o]
	c.mu.RUnlock()

	if ok {
		l.MarkAttacked()
	}
}

// HasVoterVoted queries whether voter already voted on o for this
// candidate.
func (c *LockCandidate) HasVoterVoted(o Outpoint, voter VoterID) bool {
	c.mu.RLock()
	l, ok := c.outpointLocks[o]
	c.mu.RUnlock()

	if !ok {
		return false
	}
	return l.HasVoted(voter)
}

// AllReady reports whether the outpoint-lock map is non-empty and every
// OutpointLock is ready. Distinct from total vote count.
func (c *LockCandidate) AllReady(signaturesRequired int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.outpointLocks) == 0 {
		return false
	}
	for _, l := range c.outpointLocks {
		if !l.Ready(signaturesRequired) {
			return false
		}
	}
	return true
}

// Outpoints returns the inputs registered on this candidate.
func (c *LockCandidate) Outpoints() []Outpoint {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Outpoint, 0, len(c.outpointLocks))
	for o := range c.outpointLocks {
		out = append(out, o)
	}
	return out
}

// TotalVotes sums votes across all inputs. Informational only.
func (c *LockCandidate) TotalVotes() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, l := range c.outpointLocks {
		total += l.Count()
	}
	return total
}

// ConfirmedHeight returns the height propagated by the most recent
// sync-transaction call, or UnconfirmedHeight.
func (c *LockCandidate) ConfirmedHeight() int32 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.confirmedHeight
}

// SetConfirmedHeight propagates new_height from sync-transaction into the
// candidate and every vote attached to every OutpointLock.
func (c *LockCandidate) SetConfirmedHeight(height int32) {
	c.mu.Lock()
	locks := make([]*OutpointLock, 0, len(c.outpointLocks))
	for _, l := range c.outpointLocks {
		locks = append(locks, l)
	}
	c.confirmedHeight = height
	c.mu.Unlock()

	for _, l := range locks {
		for _, v := range l.Votes() {
			v.SetConfirmedHeight(height)
		}
	}
}

// CreatedAt is when the candidate shell was first constructed.
func (c *LockCandidate) CreatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.createdAt
}

// Expired mirrors Vote's Expired semantics against the candidate's own
// confirmed height.
func (c *LockCandidate) Expired(currentHeight int32, keepLockDepth int32) bool {
	h := c.ConfirmedHeight()
	if h == UnconfirmedHeight {
		return false
	}
	return currentHeight-h > keepLockDepth
}

// TimedOut mirrors Vote's TimedOut semantics against the candidate's own
// creation time. Used to expire empty shells awaiting a Request.
func (c *LockCandidate) TimedOut(now time.Time, lockTimeout time.Duration) bool {
	return now.Sub(c.CreatedAt()) > lockTimeout
}
