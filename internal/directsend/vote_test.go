package directsend_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitcoin-sv/directsend/internal/directsend"
	"github.com/bitcoin-sv/directsend/internal/directsend/mocks"
)

func TestVoteHashDeterministic(t *testing.T) {
	now := time.Unix(1000, 0)
	txHash := hash32(t, 1)
	outpoint := directsend.Outpoint{TxHash: hash32(t, 2), Index: 3}
	voter := directsend.VoterID{TxHash: hash32(t, 4), Index: 5}

	v1 := directsend.NewVote(txHash, outpoint, voter, now)
	v2 := directsend.NewVote(txHash, outpoint, voter, now)

	assert.Equal(t, v1.Hash(), v2.Hash())
}

func TestVoteHashChangesWithVoter(t *testing.T) {
	now := time.Unix(1000, 0)
	txHash := hash32(t, 1)
	outpoint := directsend.Outpoint{TxHash: hash32(t, 2), Index: 3}

	v1 := directsend.NewVote(txHash, outpoint, directsend.VoterID{TxHash: hash32(t, 4), Index: 0}, now)
	v2 := directsend.NewVote(txHash, outpoint, directsend.VoterID{TxHash: hash32(t, 5), Index: 0}, now)

	assert.NotEqual(t, v1.Hash(), v2.Hash())
}

func TestVoteSignAndCheckSignature(t *testing.T) {
	now := time.Unix(1000, 0)
	voter := directsend.VoterID{TxHash: hash32(t, 1), Index: 0}
	v := directsend.NewVote(hash32(t, 2), directsend.Outpoint{TxHash: hash32(t, 3), Index: 0}, voter, now)

	privKey := []byte("local-private-key")
	pubKey := []byte("local-public-key")

	keys := &mocks.KeyStoreMock{
		PrivateKeyFunc: func(id directsend.VoterID) ([]byte, bool) {
			if id == voter {
				return privKey, true
			}
			return nil, false
		},
	}
	scheme := &mocks.SignatureSchemeMock{
		SignFunc: func(priv, message []byte) ([]byte, error) {
			assert.Equal(t, privKey, priv)
			assert.Equal(t, v.SignedMessage(), message)
			return []byte("signature"), nil
		},
		VerifyFunc: func(pub, message, signature []byte) bool {
			return string(pub) == string(pubKey) && string(signature) == "signature"
		},
	}

	require.NoError(t, v.Sign(scheme, keys))
	assert.True(t, v.CheckSignature(scheme, pubKey))
}

func TestVoteSignNoLocalKey(t *testing.T) {
	voter := directsend.VoterID{TxHash: hash32(t, 1), Index: 0}
	v := directsend.NewVote(hash32(t, 2), directsend.Outpoint{}, voter, time.Now())

	keys := &mocks.KeyStoreMock{
		PrivateKeyFunc: func(directsend.VoterID) ([]byte, bool) { return nil, false },
	}
	scheme := &mocks.SignatureSchemeMock{}

	err := v.Sign(scheme, keys)
	assert.ErrorIs(t, err, directsend.ErrNoLocalKey)
}

func TestVoteCheckSignatureEmptyAlwaysFails(t *testing.T) {
	v := directsend.NewVote(hash32(t, 1), directsend.Outpoint{}, directsend.VoterID{}, time.Now())
	scheme := &mocks.SignatureSchemeMock{
		VerifyFunc: func([]byte, []byte, []byte) bool { return true },
	}

	assert.False(t, v.CheckSignature(scheme, []byte("pub")))
}

func TestVoteExpired(t *testing.T) {
	tt := []struct {
		name            string
		confirmedHeight int32
		currentHeight   int32
		keepLockDepth   int32
		expected        bool
	}{
		{name: "unconfirmed never expires", confirmedHeight: directsend.UnconfirmedHeight, currentHeight: 1000, keepLockDepth: 10, expected: false},
		{name: "within keep depth", confirmedHeight: 100, currentHeight: 105, keepLockDepth: 10, expected: false},
		{name: "past keep depth", confirmedHeight: 100, currentHeight: 120, keepLockDepth: 10, expected: true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			v := directsend.NewVote(hash32(t, 1), directsend.Outpoint{}, directsend.VoterID{}, time.Now())
			v.SetConfirmedHeight(tc.confirmedHeight)

			assert.Equal(t, tc.expected, v.Expired(tc.currentHeight, tc.keepLockDepth))
		})
	}
}

func TestVoteTimedOutAndFailed(t *testing.T) {
	created := time.Unix(1000, 0)
	v := directsend.NewVote(hash32(t, 1), directsend.Outpoint{}, directsend.VoterID{}, created)

	assert.False(t, v.TimedOut(created.Add(5*time.Second), 10*time.Second))
	assert.True(t, v.TimedOut(created.Add(20*time.Second), 10*time.Second))

	assert.False(t, v.Failed(created.Add(20*time.Second), 10*time.Second, true), "a locked vote never fails")
	assert.True(t, v.Failed(created.Add(20*time.Second), 10*time.Second, false))
}

func TestVoteMarshalRoundTrip(t *testing.T) {
	created := time.Unix(1700000000, 0)
	orig := directsend.NewVote(hash32(t, 1), directsend.Outpoint{TxHash: hash32(t, 2), Index: 7}, directsend.VoterID{TxHash: hash32(t, 3), Index: 2}, created)
	orig.Signature = []byte("compact-signature-bytes")

	data, err := orig.MarshalBinary()
	require.NoError(t, err)

	decoded := &directsend.Vote{}
	require.NoError(t, decoded.UnmarshalBinary(data))

	assert.Equal(t, orig.TxHash, decoded.TxHash)
	assert.Equal(t, orig.Outpoint, decoded.Outpoint)
	assert.Equal(t, orig.VoterID, decoded.VoterID)
	assert.Equal(t, orig.Signature, decoded.Signature)
	assert.WithinDuration(t, orig.CreatedAt, decoded.CreatedAt, time.Nanosecond)
	assert.Equal(t, directsend.UnconfirmedHeight, decoded.ConfirmedHeight(), "decoded votes are always unconfirmed until sync-transaction runs")
}

func TestVoteUnmarshalTooShort(t *testing.T) {
	v := &directsend.Vote{}
	err := v.UnmarshalBinary([]byte("short"))
	assert.Error(t, err)
}
