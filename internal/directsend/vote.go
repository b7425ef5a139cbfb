package directsend

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// UnconfirmedHeight is the sentinel confirmed-height meaning "unconfirmed
// or reorged away".
const UnconfirmedHeight int32 = -1

// Vote is a signed attestation by one voter that one input of one
// transaction should be locked. Immutable after construction, except for
// SetConfirmedHeight.
type Vote struct {
	TxHash          chainhash.Hash
	Outpoint        Outpoint
	VoterID         VoterID
	Signature       []byte
	CreatedAt       time.Time
	confirmedHeight int32
}

// NewVote constructs an unsigned vote. Use Sign to attach a signature
// before relaying it.
func NewVote(txHash chainhash.Hash, outpoint Outpoint, voter VoterID, now time.Time) *Vote {
	return &Vote{
		TxHash:          txHash,
		Outpoint:        outpoint,
		VoterID:         voter,
		CreatedAt:       now,
		confirmedHeight: UnconfirmedHeight,
	}
}

// Hash is the vote's identity: H(tx-hash || outpoint || voter-id).
func (v *Vote) Hash() chainhash.Hash {
	return hash256(v.TxHash[:], v.Outpoint.Bytes(), v.VoterID.Bytes())
}

// SignedMessage is the canonical message signed by the voter:
// hex(tx-hash) || short(outpoint).
func (v *Vote) SignedMessage() []byte {
	msg := v.TxHash.String() + v.Outpoint.Short()
	return []byte(msg)
}

// ConfirmedHeight returns the height of the block that confirmed the
// vote's transaction, or UnconfirmedHeight.
func (v *Vote) ConfirmedHeight() int32 {
	return v.confirmedHeight
}

// SetConfirmedHeight records the height of the block that confirmed the
// vote's transaction, propagated from sync-transaction.
func (v *Vote) SetConfirmedHeight(height int32) {
	v.confirmedHeight = height
}

// Sign signs SignedMessage() under the voter's private key, sourced from
// keys. Fails if the local node does not hold that voter's key.
func (v *Vote) Sign(scheme SignatureScheme, keys KeyStore) error {
	priv, ok := keys.PrivateKey(v.VoterID)
	if !ok {
		return ErrNoLocalKey
	}

	sig, err := scheme.Sign(priv, v.SignedMessage())
	if err != nil {
		return err
	}

	v.Signature = sig
	return nil
}

// CheckSignature verifies Signature against the voter's known public key.
func (v *Vote) CheckSignature(scheme SignatureScheme, pubKey []byte) bool {
	if len(v.Signature) == 0 {
		return false
	}
	return scheme.Verify(pubKey, v.SignedMessage(), v.Signature)
}

// Expired reports whether keep_lock_depth confirmations have passed since
// the vote's transaction was confirmed. Unconfirmed votes never expire by
// this predicate.
func (v *Vote) Expired(currentHeight, keepLockDepth int32) bool {
	if v.confirmedHeight == UnconfirmedHeight {
		return false
	}
	return currentHeight-v.confirmedHeight > keepLockDepth
}

// TimedOut reports whether more than lockTimeout has passed since the
// vote was created. Used for orphan-vote GC.
func (v *Vote) TimedOut(now time.Time, lockTimeout time.Duration) bool {
	return now.Sub(v.CreatedAt) > lockTimeout
}

// Failed reports whether the vote has outlived FAILED_TIMEOUT_SECONDS
// while its transaction remains unlocked.
func (v *Vote) Failed(now time.Time, failedTimeout time.Duration, locked bool) bool {
	if locked {
		return false
	}
	return now.Sub(v.CreatedAt) > failedTimeout
}

// MarshalBinary encodes the vote for transport over a message bus:
// tx-hash(32) || outpoint(36) || voter-id(36) || created-at unix nano(8)
// || len(signature)(2) || signature.
func (v *Vote) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, 32+36+36+8+2+len(v.Signature))
	buf = append(buf, v.TxHash[:]...)
	buf = append(buf, v.Outpoint.Bytes()...)
	buf = append(buf, v.VoterID.Bytes()...)

	var ts [8]byte
	binary.LittleEndian.PutUint64(ts[:], uint64(v.CreatedAt.UnixNano()))
	buf = append(buf, ts[:]...)

	var sigLen [2]byte
	binary.LittleEndian.PutUint16(sigLen[:], uint16(len(v.Signature)))
	buf = append(buf, sigLen[:]...)
	buf = append(buf, v.Signature...)

	return buf, nil
}

// UnmarshalBinary decodes a vote encoded by MarshalBinary.
func (v *Vote) UnmarshalBinary(data []byte) error {
	const headerLen = 32 + 36 + 36 + 8 + 2
	if len(data) < headerLen {
		return fmt.Errorf("directsend: vote payload too short: %d bytes", len(data))
	}

	copy(v.TxHash[:], data[0:32])

	outpoint, err := decodeOutpoint(data[32:68])
	if err != nil {
		return err
	}
	v.Outpoint = outpoint

	voter, err := decodeOutpoint(data[68:104])
	if err != nil {
		return err
	}
	v.VoterID = VoterID(voter)

	v.CreatedAt = time.Unix(0, int64(binary.LittleEndian.Uint64(data[104:112])))

	sigLen := int(binary.LittleEndian.Uint16(data[112:114]))
	if len(data) < headerLen+sigLen {
		return fmt.Errorf("directsend: vote signature truncated")
	}
	v.Signature = append([]byte(nil), data[headerLen:headerLen+sigLen]...)
	v.confirmedHeight = UnconfirmedHeight

	return nil
}
