package registry

import "github.com/bitcoin-sv/directsend/internal/directsend"

// StaticKeyStore implements directsend.KeyStore from a config-supplied
// map of local masternode private keys. Real key custody (HSM, wallet
// integration) is out of scope for this subsystem.
type StaticKeyStore struct {
	keys map[directsend.VoterID][]byte
}

func NewStaticKeyStore(keys map[directsend.VoterID][]byte) *StaticKeyStore {
	return &StaticKeyStore{keys: keys}
}

func (k *StaticKeyStore) PrivateKey(voter directsend.VoterID) ([]byte, bool) {
	priv, ok := k.keys[voter]
	return priv, ok
}
