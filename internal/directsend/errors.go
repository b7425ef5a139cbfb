package directsend

import "errors"

// Sentinel errors for the taxonomy of spec §7, returned by the leaf
// operations (Vote, LockCandidate, ValidateVote) and by the engine's own
// ingress and conflict-resolution helpers, so callers can classify
// outcomes without string matching.
var (
	ErrNoLocalKey           = errors.New("directsend: no private key configured for voter")
	ErrUnknownVoter         = errors.New("directsend: voter not known to masternode registry")
	ErrMissingUTXO          = errors.New("directsend: utxo for outpoint not found")
	ErrOutOfQuorum          = errors.New("directsend: voter not within quorum rank for outpoint")
	ErrInvalidSignature     = errors.New("directsend: vote signature invalid")
	ErrCandidateTimedOut    = errors.New("directsend: lock candidate timed out")
	ErrInputNotRegistered   = errors.New("directsend: outpoint not registered on this candidate")
	ErrStructurallyInvalid  = errors.New("directsend: lock request structurally invalid")
	ErrConflictingLock      = errors.New("directsend: conflicting completed lock on shared input")
	ErrMempoolConflict      = errors.New("directsend: mempool spend conflict on input")
	ErrInputVanished        = errors.New("directsend: input no longer present in utxo set")
	ErrFeatureDisabled      = errors.New("directsend: directsend feature-flag disabled")
	ErrMasternodeListUnsynced = errors.New("directsend: masternode list not yet synced")
)
