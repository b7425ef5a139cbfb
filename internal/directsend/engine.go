package directsend

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/sasha-s/go-deadlock"
)

// Engine is the singleton voting-protocol state machine. It owns every
// index of §3, ingests gossiped lock requests and votes, runs the voter
// protocol when this node is itself an elected masternode, reconciles
// orphan votes, finalizes ready candidates, resolves conflicts, and
// drives periodic garbage collection.
//
// Construct once per process via NewEngine; pass by reference to message
// handlers and periodic tasks. Never accessed via ambient/global state.
type Engine struct {
	mu deadlock.RWMutex

	candidates       map[chainhash.Hash]*LockCandidate
	votes            map[chainhash.Hash]*Vote
	orphanVotes      map[chainhash.Hash]*Vote
	votedOutpoints   map[Outpoint]map[chainhash.Hash]struct{}
	lockedOutpoints  map[Outpoint]chainhash.Hash
	acceptedRequests map[chainhash.Hash]*bt.Tx
	rejectedRequests map[chainhash.Hash]*bt.Tx

	voterOrphanEpoch map[VoterID]time.Time
	cachedHeight     int32

	lockCounter int64

	cfg    EngineConfig
	logger *slog.Logger
	now    clock

	utxos     UTXOSource
	registry  MasternodeRegistry
	transport Transport
	sporks    FeatureFlagOracle
	chain     Chain
	wallet    WalletSink
	notifier  ShellNotifier
	scheme    SignatureScheme
	keys      KeyStore

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// Option configures optional Engine fields, mirroring the functional
// options used throughout the teacher's processor constructors.
type Option func(*Engine)

// WithNow overrides the engine's time source. Used by tests.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger overrides the engine's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithEngineConfig overrides the default runtime constants.
func WithEngineConfig(cfg EngineConfig) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithShellNotifier installs the directsend-notify external hook.
func WithShellNotifier(n ShellNotifier) Option {
	return func(e *Engine) { e.notifier = n }
}

type noopNotifier struct{}

func (noopNotifier) Notify(chainhash.Hash) {}

// NewEngine constructs the engine, validates its required adapters, and
// starts the background GC sweep. Call Shutdown to stop it.
func NewEngine(
	utxos UTXOSource,
	registry MasternodeRegistry,
	transport Transport,
	sporks FeatureFlagOracle,
	chain Chain,
	wallet WalletSink,
	scheme SignatureScheme,
	keys KeyStore,
	opts ...Option,
) (*Engine, error) {
	if utxos == nil {
		return nil, errors.New("directsend: utxo source cannot be nil")
	}
	if registry == nil {
		return nil, errors.New("directsend: masternode registry cannot be nil")
	}
	if transport == nil {
		return nil, errors.New("directsend: transport cannot be nil")
	}
	if sporks == nil {
		return nil, errors.New("directsend: feature-flag oracle cannot be nil")
	}
	if chain == nil {
		return nil, errors.New("directsend: chain adapter cannot be nil")
	}
	if wallet == nil {
		return nil, errors.New("directsend: wallet sink cannot be nil")
	}
	if scheme == nil {
		return nil, errors.New("directsend: signature scheme cannot be nil")
	}
	if keys == nil {
		return nil, errors.New("directsend: key store cannot be nil")
	}

	cfg := DefaultEngineConfig()

	e := &Engine{
		candidates:       make(map[chainhash.Hash]*LockCandidate),
		votes:            make(map[chainhash.Hash]*Vote),
		orphanVotes:      make(map[chainhash.Hash]*Vote),
		votedOutpoints:   make(map[Outpoint]map[chainhash.Hash]struct{}),
		lockedOutpoints:  make(map[Outpoint]chainhash.Hash),
		acceptedRequests: make(map[chainhash.Hash]*bt.Tx),
		rejectedRequests: make(map[chainhash.Hash]*bt.Tx),
		voterOrphanEpoch: make(map[VoterID]time.Time),
		cfg:              cfg,
		logger:           slog.Default(),
		now:              time.Now,
		notifier:         noopNotifier{},
		utxos:            utxos,
		registry:         registry,
		transport:        transport,
		sporks:           sporks,
		chain:            chain,
		wallet:           wallet,
		scheme:           scheme,
		keys:             keys,
	}

	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(slog.String("service", "directsend"))

	e.stopCh = make(chan struct{})
	e.wg.Add(1)
	go e.gcLoop()

	return e, nil
}

// Shutdown stops the background GC sweep. It does not block on
// shell-notify workers, which are fire-and-forget by design.
func (e *Engine) Shutdown() {
	close(e.stopCh)
	e.wg.Wait()
}

func (e *Engine) gcLoop() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.cfg.GCInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopCh:
			return
		case <-ticker.C:
			e.CheckAndRemove()
		}
	}
}

// UpdateChainTip updates cached_height. Used only for expiry checks; does
// not itself trigger work.
func (e *Engine) UpdateChainTip(height int32) {
	e.mu.Lock()
	e.cachedHeight = height
	e.mu.Unlock()
}

func (e *Engine) height() int32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cachedHeight
}

func txHash(tx *bt.Tx) (chainhash.Hash, error) {
	h, err := chainhash.NewHashFromStr(tx.TxID())
	if err != nil {
		return chainhash.Hash{}, err
	}
	return *h, nil
}

// ---------------------------------------------------------------------
// Lock request ingress
// ---------------------------------------------------------------------

// ProcessLockRequest implements process-lock-request(req) of spec §4.4.
func (e *Engine) ProcessLockRequest(req *bt.Tx) error {
	if err := validateStructural(req, e.cfg); err != nil {
		return err
	}

	hash, err := txHash(req)
	if err != nil {
		return fmt.Errorf("directsend: computing request hash: %w", err)
	}

	inputs, err := requestOutpoints(req)
	if err != nil {
		return err
	}

	// Step 1/2: log-only signals about conflicting/competing claims; never
	// reject here, conflict resolution happens at finalization time.
	for _, o := range inputs {
		e.mu.RLock()
		lockedBy, locked := e.lockedOutpoints[o]
		votedBy := e.votedOutpoints[o]
		e.mu.RUnlock()

		if locked && lockedBy != hash {
			e.logger.Debug("input already locked by a different transaction", slog.String("outpoint", o.String()), slog.String("lockedBy", lockedBy.String()))
		}
		for other := range votedBy {
			if other != hash {
				e.logger.Warn("input already has votes under a different transaction", slog.String("outpoint", o.String()), slog.String("other", other.String()))
			}
		}
	}

	// Step 3: ensure the candidate exists.
	e.mu.Lock()
	cand, exists := e.candidates[hash]
	if !exists {
		cand = NewLockCandidate(hash, e.now())
		e.candidates[hash] = cand
	}
	e.mu.Unlock()

	if _, hasReq := cand.Request(); !hasReq {
		if exists && cand.TimedOut(e.now(), e.cfg.LockTimeout) {
			return ErrCandidateTimedOut
		}
		cand.AttachRequest(req)
	}

	e.mu.Lock()
	e.acceptedRequests[hash] = req
	e.mu.Unlock()

	// Step 4: run the voter protocol if we are a quorum member.
	e.runVoterProtocol(cand)

	// Step 5: drain orphan votes.
	e.reconcileOrphans()

	// Step 6: attempt finalization.
	e.tryFinalize(cand)

	return nil
}

// ProcessLockRequestHex decodes a raw transaction from hex and submits
// it via ProcessLockRequest. Used by feeds (e.g. zmqfeed) that observe
// transactions as raw bytes rather than already-parsed *bt.Tx values.
func (e *Engine) ProcessLockRequestHex(rawTxHex string) error {
	req, err := bt.NewTxFromString(rawTxHex)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStructurallyInvalid, err)
	}
	return e.ProcessLockRequest(req)
}

func requestOutpoints(req *bt.Tx) ([]Outpoint, error) {
	out := make([]Outpoint, 0, len(req.Inputs))
	for _, in := range req.Inputs {
		h, err := chainhash.NewHashFromStr(in.PreviousTxIDStr())
		if err != nil {
			return nil, fmt.Errorf("directsend: parsing input outpoint: %w", err)
		}
		out = append(out, Outpoint{TxHash: *h, Index: in.PreviousTxOutIndex})
	}
	return out, nil
}

// validateStructural rejects a lock request with no inputs or no outputs,
// and, when the inputs carry satoshi values that cover the outputs, one
// whose fee is below MinFeePerInput times the input count; checklist
// style of the teacher's DefaultValidator. It does not check finality,
// script standardness, the max-value spork or input confirmation age,
// and the fee minimum is not adjusted by SporkLowFeeActivation.
func validateStructural(req *bt.Tx, cfg EngineConfig) error {
	if len(req.Inputs) == 0 {
		return fmt.Errorf("%w: no inputs", ErrStructurallyInvalid)
	}
	if len(req.Outputs) == 0 {
		return fmt.Errorf("%w: no outputs", ErrStructurallyInvalid)
	}
	if len(req.Inputs) > cfg.WarnManyInputs {
		// WARN_MANY_INPUTS is log-only; never rejects the request.
		slog.Default().Warn("lock request has many inputs", slog.Int("inputs", len(req.Inputs)))
	}

	var totalIn, totalOut uint64
	for _, in := range req.Inputs {
		totalIn += in.PreviousTxSatoshis
	}
	for _, out := range req.Outputs {
		totalOut += out.Satoshis
	}
	if cfg.MinFeePerInput > 0 && totalIn > 0 {
		minFee := uint64(len(req.Inputs)) * uint64(cfg.MinFeePerInput)
		if totalIn >= totalOut && totalIn-totalOut < minFee {
			return fmt.Errorf("%w: fee below minimum", ErrStructurallyInvalid)
		}
	}

	return nil
}
