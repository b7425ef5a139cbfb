// Package api exposes the DirectSend engine's read-only state as a
// small echo HTTP surface: already-have, is-locked, confirmations, and
// signatures, mirroring spec.md's §4.4 read queries one route each.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/labstack/echo/v4"

	"github.com/bitcoin-sv/directsend/internal/directsend"
)

var ErrInvalidHash = errors.New("invalid transaction hash")

// Engine is the subset of *directsend.Engine this handler calls.
type Engine interface {
	AlreadyHave(hash chainhash.Hash) bool
	IsLocked(txHash chainhash.Hash) bool
	Confirmations(txHash chainhash.Hash) int32
	Signatures(txHash chainhash.Hash) int32
}

// Handler wraps an Engine behind echo.HandlerFunc-shaped methods.
type Handler struct {
	engine Engine
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Handler)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) { h.logger = logger }
}

func WithNow(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

func New(engine Engine, opts ...Option) *Handler {
	h := &Handler{
		engine: engine,
		logger: slog.Default(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Register wires the handler's routes onto e under /v1/lock.
func (h *Handler) Register(e *echo.Echo) {
	g := e.Group("/v1/lock")
	g.GET("/:hash/already-have", h.GETAlreadyHave)
	g.GET("/:hash/is-locked", h.GETIsLocked)
	g.GET("/:hash/confirmations", h.GETConfirmations)
	g.GET("/:hash/signatures", h.GETSignatures)
}

type alreadyHaveResponse struct {
	Hash        string `json:"hash"`
	AlreadyHave bool   `json:"alreadyHave"`
}

func (h *Handler) GETAlreadyHave(ctx echo.Context) error {
	hash, err := parseHash(ctx.Param("hash"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errResponse(err))
	}

	return ctx.JSON(http.StatusOK, alreadyHaveResponse{
		Hash:        hash.String(),
		AlreadyHave: h.engine.AlreadyHave(hash),
	})
}

type isLockedResponse struct {
	Hash     string `json:"hash"`
	IsLocked bool   `json:"isLocked"`
}

func (h *Handler) GETIsLocked(ctx echo.Context) error {
	hash, err := parseHash(ctx.Param("hash"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errResponse(err))
	}

	return ctx.JSON(http.StatusOK, isLockedResponse{
		Hash:     hash.String(),
		IsLocked: h.engine.IsLocked(hash),
	})
}

type confirmationsResponse struct {
	Hash          string `json:"hash"`
	Confirmations int32  `json:"confirmations"`
}

func (h *Handler) GETConfirmations(ctx echo.Context) error {
	hash, err := parseHash(ctx.Param("hash"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errResponse(err))
	}

	return ctx.JSON(http.StatusOK, confirmationsResponse{
		Hash:          hash.String(),
		Confirmations: h.engine.Confirmations(hash),
	})
}

type signaturesResponse struct {
	Hash       string `json:"hash"`
	Signatures int32  `json:"signatures"`
}

func (h *Handler) GETSignatures(ctx echo.Context) error {
	hash, err := parseHash(ctx.Param("hash"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errResponse(err))
	}

	return ctx.JSON(http.StatusOK, signaturesResponse{
		Hash:       hash.String(),
		Signatures: h.engine.Signatures(hash),
	})
}

func parseHash(s string) (chainhash.Hash, error) {
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return chainhash.Hash{}, errors.Join(ErrInvalidHash, err)
	}

	return *h, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func errResponse(err error) errorResponse {
	return errorResponse{Error: err.Error()}
}

var _ Engine = (*directsend.Engine)(nil)
