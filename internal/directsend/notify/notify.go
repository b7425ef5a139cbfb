// Package notify implements directsend.ShellNotifier by shelling out to
// an external command, substituting "%s" with the tx-hash, the same
// directsend-notify hook the original DirectSend implementation exposed.
package notify

import (
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// ShellHook fires cmdTemplate as a subprocess per Notify call, never
// blocking the caller. An empty template disables the hook entirely.
type ShellHook struct {
	cmdTemplate string
	logger      *slog.Logger
	timeout     time.Duration
}

// New builds a ShellHook. cmdTemplate's "%s" placeholder is replaced
// with the tx-hash before being passed to sh -c.
func New(cmdTemplate string, logger *slog.Logger) *ShellHook {
	return &ShellHook{cmdTemplate: cmdTemplate, logger: logger, timeout: 10 * time.Second}
}

// Notify implements directsend.ShellNotifier.
func (h *ShellHook) Notify(txHash chainhash.Hash) {
	if h.cmdTemplate == "" {
		return
	}

	cmdLine := strings.ReplaceAll(h.cmdTemplate, "%s", txHash.String())

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()

		cmd := exec.CommandContext(ctx, "sh", "-c", cmdLine)
		if out, err := cmd.CombinedOutput(); err != nil {
			h.logger.Warn("directsend-notify command failed",
				slog.String("tx", txHash.String()),
				slog.String("err", err.Error()),
				slog.String("output", string(out)))
		}
	}()
}
