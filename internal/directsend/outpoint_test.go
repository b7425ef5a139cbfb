package directsend_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitcoin-sv/directsend/internal/directsend"
)

func TestOutpointBytesRoundTrip(t *testing.T) {
	o := directsend.Outpoint{TxHash: hash32(t, 9), Index: 42}

	encoded := o.Bytes()
	assert.Len(t, encoded, 36)

	// decodeOutpoint is unexported; round-trip it indirectly through a
	// Vote, which decodes outpoint fields the same way.
	v := directsend.NewVote(hash32(t, 1), o, directsend.VoterID{}, time.Now())
	data, err := v.MarshalBinary()
	require.NoError(t, err)

	decoded := &directsend.Vote{}
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, o, decoded.Outpoint)
}

func TestOutpointString(t *testing.T) {
	o := directsend.Outpoint{TxHash: hash32(t, 1), Index: 3}
	assert.Contains(t, o.String(), ":3")
	assert.Equal(t, o.String(), o.Short())
}

func TestVoterIDStringAndBytes(t *testing.T) {
	v := directsend.VoterID{TxHash: hash32(t, 5), Index: 1}
	assert.Equal(t, directsend.Outpoint(v).String(), v.String())
	assert.Equal(t, directsend.Outpoint(v).Bytes(), v.Bytes())
}
