// Package sigscheme implements directsend.SignatureScheme over
// github.com/libsv/go-bk/bec, the compact-ECDSA package the teacher's
// own miner-ID signing middleware (handler/load.go's signBody) uses.
package sigscheme

import (
	"errors"

	"github.com/libsv/go-bk/bec"
)

var ErrInvalidPrivateKey = errors.New("sigscheme: invalid private key")

// BEC implements directsend.SignatureScheme.
type BEC struct{}

func New() BEC { return BEC{} }

// Sign implements directsend.SignatureScheme, producing a compact
// signature over message with privKey.
func (BEC) Sign(privKey, message []byte) ([]byte, error) {
	priv, pub := bec.PrivKeyFromBytes(bec.S256(), privKey)
	if priv == nil || pub == nil {
		return nil, ErrInvalidPrivateKey
	}

	return bec.SignCompact(bec.S256(), priv, message, true)
}

// Verify implements directsend.SignatureScheme by recovering the
// signer's public key from the compact signature and comparing it
// against pubKey.
func (BEC) Verify(pubKey, message, signature []byte) bool {
	recovered, _, err := bec.RecoverCompact(bec.S256(), signature, message)
	if err != nil || recovered == nil {
		return false
	}

	return string(recovered.SerialiseCompressed()) == string(pubKey)
}
