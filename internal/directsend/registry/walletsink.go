package registry

import (
	"log/slog"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// LoggingWalletSink implements directsend.WalletSink by logging lock
// notifications. A real wallet integration would instead update UTXO
// availability and UI state; out of scope for this subsystem.
type LoggingWalletSink struct {
	logger *slog.Logger
}

func NewLoggingWalletSink(logger *slog.Logger) *LoggingWalletSink {
	return &LoggingWalletSink{logger: logger}
}

func (s *LoggingWalletSink) TransactionUpdated(txHash chainhash.Hash) bool {
	s.logger.Debug("wallet transaction updated", slog.String("tx", txHash.String()))
	return true
}

func (s *LoggingWalletSink) LockNotification(req *bt.Tx) {
	s.logger.Info("transaction locked", slog.String("tx", req.TxID()))
}
