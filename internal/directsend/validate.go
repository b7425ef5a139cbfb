package directsend

// ValidateVote implements Vote §4.1 validate(origin). Returns nil if v may
// be stored; otherwise one of the sentinel errors of errors.go classifying
// why, per the taxonomy of spec §7.
//
// Unknown-voter and missing-UTXO are "not yet verifiable" outcomes: the
// caller must not store the vote, must not penalize origin, but may ask
// origin for the missing masternode record.
func ValidateVote(v *Vote, origin PeerRef, registry MasternodeRegistry, utxos UTXOSource, scheme SignatureScheme, cfg EngineConfig) error {
	if !registry.Has(v.VoterID) {
		registry.AskPeer(origin, v.VoterID)
		return ErrUnknownVoter
	}

	entry, ok := utxos.Lookup(v.Outpoint)
	if !ok {
		return ErrMissingUTXO
	}

	rank, ok := registry.Rank(v.VoterID, v.Outpoint, entry.Height+cfg.RankHeightOffset, cfg.ProtocolVersion)
	if !ok || rank > cfg.SignaturesTotal {
		return ErrOutOfQuorum
	}

	info, ok := registry.Info(v.VoterID)
	if !ok {
		return ErrUnknownVoter
	}

	if !v.CheckSignature(scheme, info.PubKey) {
		return ErrInvalidSignature
	}

	return nil
}
