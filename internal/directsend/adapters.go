package directsend

import (
	"time"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// UTXOEntry describes a known, unspent transaction output as seen by the
// chain adapter.
type UTXOEntry struct {
	Height int32
	Value  int64
	Script []byte
}

// UTXOSource resolves outpoints to the output they reference. Deliberately
// out of scope for this subsystem: transaction validation and UTXO
// indexing live elsewhere, this is only the read interface.
//
//go:generate moq -pkg mocks -out ./mocks/utxo_source_mock.go . UTXOSource
type UTXOSource interface {
	Lookup(outpoint Outpoint) (UTXOEntry, bool)
}

// MasternodeInfo is what the registry knows about a voter.
type MasternodeInfo struct {
	PubKey []byte
}

// PeerRef is an opaque handle to the peer a message arrived from, passed
// back to MasternodeRegistry.AskPeer.
type PeerRef interface {
	String() string
}

// MasternodeRegistry is the masternode set + rank oracle. Masternode
// identity and election are out of scope here; only this read/control
// surface is specified.
//
//go:generate moq -pkg mocks -out ./mocks/masternode_registry_mock.go . MasternodeRegistry
type MasternodeRegistry interface {
	Has(voter VoterID) bool
	Info(voter VoterID) (MasternodeInfo, bool)
	AskPeer(origin PeerRef, voter VoterID)
	Ban(voter VoterID)
	// Rank returns the voter's rank among the quorum for outpoint o at the
	// given height under the given protocol version, or ok=false if the
	// rank cannot be computed (e.g. masternode list not yet synced).
	Rank(voter VoterID, o Outpoint, height int32, protocolVersion uint32) (rank int, ok bool)
	// IsSynced reports whether the local masternode list is considered
	// complete enough to vote and to run GC.
	IsSynced() bool
	// IsLocalMasternode reports whether this node itself is an elected
	// voter, and if so under which VoterID.
	IsLocalMasternode() (VoterID, bool)
}

// InventoryKind distinguishes lock-vote inventory from other gossip kinds
// on the wire.
type InventoryKind uint32

// InvLockVote is the inventory kind code for relaying a Vote by its hash.
const InvLockVote InventoryKind = 0x1000

// Transport is the abstract view onto the P2P gossip network. The wire
// transport itself, and signature primitives, are out of scope; only this
// contract is specified.
//
//go:generate moq -pkg mocks -out ./mocks/transport_mock.go . Transport
type Transport interface {
	RelayInventory(kind InventoryKind, hash chainhash.Hash)
	RelayTransaction(req *bt.Tx)
}

// SporkID identifies a feature-flag.
type SporkID int

const (
	SporkDirectSendEnabled SporkID = iota
	SporkDirectSendBlockFiltering
	SporkDirectSendMaxValue
	SporkLowFeeActivation
)

// FeatureFlagOracle answers whether a feature-flag ("spork") is active.
//
//go:generate moq -pkg mocks -out ./mocks/feature_flag_oracle_mock.go . FeatureFlagOracle
type FeatureFlagOracle interface {
	Enabled(flag SporkID) bool
	// Value returns a numeric flag payload, e.g. directsend_max_value.
	Value(flag SporkID) int64
}

// Chain is the read-only view onto chain state and the mempool's spend
// index. Block-index traversal itself is out of scope.
//
//go:generate moq -pkg mocks -out ./mocks/chain_mock.go . Chain
type Chain interface {
	CurrentHeight() int32
	IsFinalized(txHash chainhash.Hash) bool
	GetTx(txHash chainhash.Hash) (*bt.Tx, chainhash.Hash, bool)
	// MempoolNextTx returns the tx-hash currently spending outpoint in the
	// mempool's spend index, if any.
	MempoolNextTx(o Outpoint) (chainhash.Hash, bool)
}

// WalletSink is the wallet/notification collaborator.
//
//go:generate moq -pkg mocks -out ./mocks/wallet_sink_mock.go . WalletSink
type WalletSink interface {
	TransactionUpdated(txHash chainhash.Hash) bool
	LockNotification(req *bt.Tx)
}

// ShellNotifier fires the external directsend-notify command, with "%s"
// substituted for the tx-hash. Implementations must not block the caller.
//
//go:generate moq -pkg mocks -out ./mocks/shell_notifier_mock.go . ShellNotifier
type ShellNotifier interface {
	Notify(txHash chainhash.Hash)
}

// SignatureScheme is the signature primitive collaborator. Out of scope
// for this subsystem beyond this interface.
//
//go:generate moq -pkg mocks -out ./mocks/signature_scheme_mock.go . SignatureScheme
type SignatureScheme interface {
	Sign(privKey, message []byte) ([]byte, error)
	Verify(pubKey, message, signature []byte) bool
}

// KeyStore resolves the local node's own masternode private keys, if any.
//
//go:generate moq -pkg mocks -out ./mocks/key_store_mock.go . KeyStore
type KeyStore interface {
	PrivateKey(voter VoterID) (priv []byte, ok bool)
}

// clock abstracts time.Now for deterministic tests, mirroring the
// teacher's WithNow option on Processor and ProcessorResponseMap.
type clock func() time.Time
