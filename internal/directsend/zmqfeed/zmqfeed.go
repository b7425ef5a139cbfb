// Package zmqfeed subscribes to a bitcoind ZMQ publisher and drives the
// DirectSend engine's chain-tip and mempool awareness from it, grounded
// on the teacher's metamorph/zmq.go.
package zmqfeed

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ordishs/go-bitcoin"
)

// TxFetcher resolves a txid (as reported by the "hashtx" ZMQ topic)
// into its raw transaction bytes. The ZMQ feed itself carries only
// hashes; fetching the transaction body is left to the caller, the
// same division of labor the teacher keeps between its ZMQ listener
// (status signals only) and the HTTP submission path that already
// holds the raw bytes.
type TxFetcher func(txidHex string) ([]byte, error)

// Engine is the subset of directsend.Engine this feed drives.
type Engine interface {
	ProcessLockRequestHex(rawTxHex string) error
	UpdateChainTip(height int32)
}

// HeightSource reports the current chain height after a new block is
// observed on the wire. Typically the same Chain adapter's
// CurrentHeight method the engine itself was constructed with.
type HeightSource func() int32

// Feed subscribes to hashtx/hashblock/discardedfrommempool notifications
// and forwards newly-seen mempool transactions and chain tip changes
// into the engine; discarded transactions are only logged.
type Feed struct {
	host   string
	port   int
	logger *slog.Logger
	fetch  TxFetcher
	height HeightSource
	engine Engine
}

// New builds a Feed. Call Start to begin listening; it runs until the
// process exits, matching the teacher's fire-and-forget ZMQ.Start.
func New(host string, port int, engine Engine, fetch TxFetcher, height HeightSource, logger *slog.Logger) *Feed {
	return &Feed{host: host, port: port, engine: engine, fetch: fetch, height: height, logger: logger}
}

// Start connects to the ZMQ publisher and begins dispatching messages.
func (f *Feed) Start() error {
	f.logger.Info("listening to zmq", slog.String("host", f.host), slog.Int("port", f.port))

	zmq := bitcoin.NewZMQ(f.host, f.port, nil)
	ch := make(chan []string)

	go func() {
		for c := range ch {
			f.dispatch(c)
		}
	}()

	if err := zmq.Subscribe("hashtx", ch); err != nil {
		return fmt.Errorf("zmqfeed: subscribing to hashtx: %w", err)
	}
	if err := zmq.Subscribe("hashblock", ch); err != nil {
		return fmt.Errorf("zmqfeed: subscribing to hashblock: %w", err)
	}
	if err := zmq.Subscribe("discardedfrommempool", ch); err != nil {
		return fmt.Errorf("zmqfeed: subscribing to discardedfrommempool: %w", err)
	}

	return nil
}

func (f *Feed) dispatch(c []string) {
	if len(c) == 0 {
		return
	}

	switch c[0] {
	case "hashtx":
		f.handleHashTx(c[1])
	case "hashblock":
		f.handleHashBlock()
	case "discardedfrommempool":
		f.handleDiscarded(c)
	default:
		f.logger.Debug("unhandled zmq message", slog.String("topic", c[0]))
	}
}

func (f *Feed) handleHashTx(txid string) {
	raw, err := f.fetch(txid)
	if err != nil {
		f.logger.Debug("failed to fetch mempool transaction", slog.String("txid", txid), slog.String("err", err.Error()))
		return
	}
	if err := f.engine.ProcessLockRequestHex(hex.EncodeToString(raw)); err != nil {
		f.logger.Debug("mempool transaction rejected as lock request", slog.String("txid", txid), slog.String("err", err.Error()))
	}
}

func (f *Feed) handleHashBlock() {
	f.engine.UpdateChainTip(f.height())
}

func (f *Feed) handleDiscarded(c []string) {
	if len(c) < 2 {
		return
	}
	txInfoBytes, err := hex.DecodeString(c[1])
	if err != nil {
		return
	}
	var txInfo map[string]interface{}
	if err := json.Unmarshal(txInfoBytes, &txInfo); err != nil {
		return
	}
	f.logger.Debug("transaction discarded from mempool", slog.Any("info", txInfo))
}
