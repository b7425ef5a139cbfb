package directsend_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitcoin-sv/directsend/internal/directsend"
)

func TestOutpointLockAddVoteRejectsDuplicateVoter(t *testing.T) {
	o := directsend.Outpoint{TxHash: hash32(t, 1), Index: 0}
	lock := directsend.NewOutpointLock(o)

	voter := directsend.VoterID{TxHash: hash32(t, 2), Index: 0}
	v1 := directsend.NewVote(hash32(t, 3), o, voter, time.Now())
	v2 := directsend.NewVote(hash32(t, 3), o, voter, time.Now())

	assert.True(t, lock.AddVote(v1))
	assert.False(t, lock.AddVote(v2), "a second vote from the same voter must not be counted")
	assert.Equal(t, 1, lock.Count())
	assert.True(t, lock.HasVoted(voter))
}

func TestOutpointLockReadyRequiresQuorum(t *testing.T) {
	o := directsend.Outpoint{TxHash: hash32(t, 1), Index: 0}
	lock := directsend.NewOutpointLock(o)

	for i := byte(0); i < 5; i++ {
		voter := directsend.VoterID{TxHash: hash32(t, 10+i), Index: 0}
		lock.AddVote(directsend.NewVote(hash32(t, 3), o, voter, time.Now()))
	}

	assert.False(t, lock.Ready(6))
	assert.True(t, lock.Ready(5))
}

func TestOutpointLockMarkAttackedLatchesReadyFalse(t *testing.T) {
	o := directsend.Outpoint{TxHash: hash32(t, 1), Index: 0}
	lock := directsend.NewOutpointLock(o)

	voter := directsend.VoterID{TxHash: hash32(t, 2), Index: 0}
	lock.AddVote(directsend.NewVote(hash32(t, 3), o, voter, time.Now()))

	assert.True(t, lock.Ready(1))

	lock.MarkAttacked()

	assert.True(t, lock.Attacked())
	assert.False(t, lock.Ready(1), "once attacked, the outpoint never reports ready again")

	// A subsequent vote does not clear the latch.
	other := directsend.VoterID{TxHash: hash32(t, 4), Index: 0}
	lock.AddVote(directsend.NewVote(hash32(t, 3), o, other, time.Now()))
	assert.False(t, lock.Ready(1))
}

func TestOutpointLockVotesReturnsCopy(t *testing.T) {
	o := directsend.Outpoint{TxHash: hash32(t, 1), Index: 0}
	lock := directsend.NewOutpointLock(o)

	voter := directsend.VoterID{TxHash: hash32(t, 2), Index: 0}
	lock.AddVote(directsend.NewVote(hash32(t, 3), o, voter, time.Now()))

	votes := lock.Votes()
	assert.Len(t, votes, 1)

	votes[0] = nil
	assert.Len(t, lock.Votes(), 1)
	assert.NotNil(t, lock.Votes()[0])
}
