package directsend_test

import (
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/stretchr/testify/require"
)

// hash32 builds a deterministic, distinct chainhash.Hash per seed, for
// tests that only need stable-but-different identities.
func hash32(t *testing.T, seed byte) chainhash.Hash {
	t.Helper()

	var raw [32]byte
	raw[0] = seed
	h, err := chainhash.NewHash(raw[:])
	require.NoError(t, err)
	return *h
}
