package directsend_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitcoin-sv/directsend/internal/directsend"
)

func TestLockCandidateAddVoteRejectsUnregisteredInput(t *testing.T) {
	txHash := hash32(t, 1)
	cand := directsend.NewLockCandidate(txHash, time.Now())

	unregistered := directsend.Outpoint{TxHash: hash32(t, 2), Index: 0}
	v := directsend.NewVote(txHash, unregistered, directsend.VoterID{TxHash: hash32(t, 3), Index: 0}, time.Now())

	_, err := cand.AddVote(v)
	assert.ErrorIs(t, err, directsend.ErrInputNotRegistered)
}

func TestLockCandidateAddVoteDispatchesToRegisteredInput(t *testing.T) {
	txHash := hash32(t, 1)
	cand := directsend.NewLockCandidate(txHash, time.Now())

	o := directsend.Outpoint{TxHash: hash32(t, 2), Index: 0}
	cand.AddOutpointLock(o)

	voter := directsend.VoterID{TxHash: hash32(t, 3), Index: 0}
	v := directsend.NewVote(txHash, o, voter, time.Now())

	added, err := cand.AddVote(v)
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, cand.HasVoterVoted(o, voter))
	assert.Equal(t, 1, cand.TotalVotes())
}

func TestLockCandidateAddOutpointLockIdempotent(t *testing.T) {
	cand := directsend.NewLockCandidate(hash32(t, 1), time.Now())
	o := directsend.Outpoint{TxHash: hash32(t, 2), Index: 0}

	l1 := cand.AddOutpointLock(o)
	l2 := cand.AddOutpointLock(o)

	assert.Same(t, l1, l2, "re-registering the same input must return the existing aggregator")
	assert.Len(t, cand.Outpoints(), 1)
}

func TestLockCandidateAllReady(t *testing.T) {
	txHash := hash32(t, 1)
	cand := directsend.NewLockCandidate(txHash, time.Now())

	o1 := directsend.Outpoint{TxHash: hash32(t, 2), Index: 0}
	o2 := directsend.Outpoint{TxHash: hash32(t, 3), Index: 1}
	cand.AddOutpointLock(o1)
	cand.AddOutpointLock(o2)

	voter := directsend.VoterID{TxHash: hash32(t, 4), Index: 0}
	cand.AddVote(directsend.NewVote(txHash, o1, voter, time.Now()))

	assert.False(t, cand.AllReady(1), "one of two inputs has no votes yet")

	cand.AddVote(directsend.NewVote(txHash, o2, voter, time.Now()))
	assert.True(t, cand.AllReady(1))
}

func TestLockCandidateAllReadyEmptyIsFalse(t *testing.T) {
	cand := directsend.NewLockCandidate(hash32(t, 1), time.Now())
	assert.False(t, cand.AllReady(1), "a shell with no registered inputs is never ready")
}

func TestLockCandidateMarkOutpointAttacked(t *testing.T) {
	txHash := hash32(t, 1)
	cand := directsend.NewLockCandidate(txHash, time.Now())

	o := directsend.Outpoint{TxHash: hash32(t, 2), Index: 0}
	cand.AddOutpointLock(o)
	cand.AddVote(directsend.NewVote(txHash, o, directsend.VoterID{TxHash: hash32(t, 3), Index: 0}, time.Now()))

	cand.MarkOutpointAttacked(o)

	l, ok := cand.OutpointLock(o)
	require.True(t, ok)
	assert.True(t, l.Attacked())
	assert.False(t, cand.AllReady(1))
}

func TestLockCandidateSetConfirmedHeightPropagatesToVotes(t *testing.T) {
	txHash := hash32(t, 1)
	cand := directsend.NewLockCandidate(txHash, time.Now())

	o := directsend.Outpoint{TxHash: hash32(t, 2), Index: 0}
	cand.AddOutpointLock(o)
	v := directsend.NewVote(txHash, o, directsend.VoterID{TxHash: hash32(t, 3), Index: 0}, time.Now())
	cand.AddVote(v)

	assert.Equal(t, directsend.UnconfirmedHeight, cand.ConfirmedHeight())

	cand.SetConfirmedHeight(500)

	assert.Equal(t, int32(500), cand.ConfirmedHeight())
	l, ok := cand.OutpointLock(o)
	require.True(t, ok)
	for _, stored := range l.Votes() {
		assert.Equal(t, int32(500), stored.ConfirmedHeight())
	}
}

func TestLockCandidateExpiredAndTimedOut(t *testing.T) {
	created := time.Unix(1000, 0)
	cand := directsend.NewLockCandidate(hash32(t, 1), created)

	assert.False(t, cand.Expired(2000, 10), "unconfirmed candidates never expire")
	cand.SetConfirmedHeight(100)
	assert.False(t, cand.Expired(105, 10))
	assert.True(t, cand.Expired(200, 10))

	assert.False(t, cand.TimedOut(created.Add(5*time.Second), 10*time.Second))
	assert.True(t, cand.TimedOut(created.Add(20*time.Second), 10*time.Second))
}

func TestLockCandidateRequestAbsentByDefault(t *testing.T) {
	cand := directsend.NewLockCandidate(hash32(t, 1), time.Now())

	_, ok := cand.Request()
	assert.False(t, ok, "a shell created from an orphan vote has no request until AttachRequest runs")
}
