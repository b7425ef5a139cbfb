package directsend

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// Outpoint references a specific output of a prior transaction.
type Outpoint struct {
	TxHash chainhash.Hash
	Index  uint32
}

func (o Outpoint) String() string {
	return fmt.Sprintf("%s:%d", o.TxHash.String(), o.Index)
}

// Short returns the wire form used inside a Vote's signed message:
// hex(tx-hash) ":" dec(index).
func (o Outpoint) Short() string {
	return o.String()
}

// Bytes returns the 36-byte wire encoding: tx-hash (32B) || index (4B LE).
func (o Outpoint) Bytes() []byte {
	buf := make([]byte, 36)
	copy(buf[:32], o.TxHash[:])
	binary.LittleEndian.PutUint32(buf[32:], o.Index)
	return buf
}

// decodeOutpoint parses the 36-byte wire encoding produced by Bytes.
func decodeOutpoint(data []byte) (Outpoint, error) {
	if len(data) != 36 {
		return Outpoint{}, fmt.Errorf("directsend: outpoint payload must be 36 bytes, got %d", len(data))
	}
	var o Outpoint
	copy(o.TxHash[:], data[:32])
	o.Index = binary.LittleEndian.Uint32(data[32:])
	return o, nil
}

// VoterID identifies a masternode by its own funding outpoint.
type VoterID Outpoint

func (v VoterID) String() string {
	return Outpoint(v).String()
}

func (v VoterID) Bytes() []byte {
	return Outpoint(v).Bytes()
}

func hash256(parts ...[]byte) chainhash.Hash {
	first := sha256.New()
	for _, p := range parts {
		first.Write(p)
	}
	sum1 := first.Sum(nil)
	sum2 := sha256.Sum256(sum1)
	h, err := chainhash.NewHash(sum2[:])
	if err != nil {
		// sum2 is always exactly 32 bytes; NewHash cannot fail here.
		panic(err)
	}
	return *h
}
