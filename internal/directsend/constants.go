package directsend

import "time"

// EngineConfig carries the runtime-fixed constants and configuration
// parameters of spec §6. Defaults match the values historically used by
// the original DirectSend implementation this subsystem is modeled on.
type EngineConfig struct {
	// SignaturesTotal is the quorum size per outpoint (top-N by rank).
	SignaturesTotal int
	// SignaturesRequired is the threshold at which an outpoint is
	// considered locked. Must be strictly less than SignaturesTotal.
	SignaturesRequired int
	// LockTimeout bounds how long an orphan vote may wait before GC
	// reclaims it, and how long after its creation a candidate still
	// accepts votes (and, as an empty shell, a Lock Request). GC does
	// not remove candidates by this timeout.
	LockTimeout time.Duration
	// FailedTimeout bounds how long an unlocked vote may linger before
	// GC reclaims it as failed.
	FailedTimeout time.Duration
	// KeepLockDepth is the number of confirmations beyond which lock
	// data for a confirmed transaction may be pruned.
	KeepLockDepth int32
	// ConfirmationsRequired is the minimum age (in confirmations) an
	// input must have before its spending transaction is eligible for
	// locking. It is carried as configuration only: lock requests are
	// not checked against it.
	ConfirmationsRequired int32
	// WarnManyInputs is a log-only threshold; exceeding it never rejects
	// a lock request.
	WarnManyInputs int
	// MinFeePerInput is the per-input minimum fee; the required fee is
	// this value times the input count. It is not adjusted by
	// SporkLowFeeActivation.
	MinFeePerInput int64
	// ProtocolVersion is passed to MasternodeRegistry.Rank when computing
	// a voter's rank.
	ProtocolVersion uint32
	// RankHeightOffset is added to a UTXO's confirming height to compute
	// the height at which voter rank for that outpoint is evaluated.
	RankHeightOffset int32
	// OrphanRateLimitWindow bounds how soon the same voter may submit
	// another orphan vote.
	OrphanRateLimitWindow time.Duration
	// GCInterval is the period of the background check-and-remove sweep.
	GCInterval time.Duration
	// NotifyCommand is the directsend-notify external command template,
	// with "%s" standing for the tx-hash. The engine does not read this
	// field; shell-notify is installed with WithShellNotifier.
	NotifyCommand string
}

// DefaultEngineConfig mirrors the historical constants this subsystem's
// voting protocol was modeled on.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		SignaturesTotal:       10,
		SignaturesRequired:    6,
		LockTimeout:           15 * time.Second,
		FailedTimeout:         60 * time.Second,
		KeepLockDepth:         6,
		ConfirmationsRequired: 6,
		WarnManyInputs:        4,
		MinFeePerInput:        10000,
		ProtocolVersion:       70213,
		RankHeightOffset:      4,
		OrphanRateLimitWindow: 10 * time.Second,
		GCInterval:            1 * time.Second,
	}
}
