// Package nats_mq is an alternate directsend.Transport implementation
// that fans lock-vote and lock-request gossip out over NATS instead of
// (or alongside) the p2p network, for multi-process deployments where
// several DirectSend engine instances share one masternode identity
// pool. Grounded on the teacher's metamorph/async/nats_mq client.
package nats_mq

import (
	"fmt"
	"log/slog"
	"time"

	bt "github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/nats-io/nats.go"

	"github.com/bitcoin-sv/directsend/internal/directsend"
)

const (
	votesInvSubject     = "directsend.votes.inv"
	votesGetSubject     = "directsend.votes.get"
	requestsInvSubject  = "directsend.requests.inv"
	requestsGetSubject  = "directsend.requests.get"
	connectionTries     = 5
	connectionRetryWait = 2 * time.Second
)

// Engine is the subset of directsend.Engine the gossip client drives.
type Engine interface {
	VoteByHash(hash chainhash.Hash) (*directsend.Vote, bool)
	RequestByHash(hash chainhash.Hash) (*bt.Tx, bool)
	ProcessVoteMessage(v *directsend.Vote, origin directsend.PeerRef) error
	ProcessLockRequest(req *bt.Tx) error
}

// Client implements directsend.Transport over a NATS connection, and
// drives an Engine from inbound gossip once Subscribe is called.
type Client struct {
	logger *slog.Logger
	nc     *nats.Conn
	engine Engine
}

type natsPeer struct{ url string }

func (p natsPeer) String() string { return p.url }

// Connect dials natsURL, retrying a handful of times the way the
// teacher's NewNatsMQClient does, and returns a ready Client. engine
// may be nil if the engine this client will drive does not exist yet;
// call SetEngine once it does, before calling Subscribe.
func Connect(natsURL string, engine Engine, logger *slog.Logger) (*Client, error) {
	nc, err := nats.Connect(natsURL)
	if err == nil {
		return &Client{nc: nc, engine: engine, logger: logger}, nil
	}

	i := 0
	for range time.NewTicker(connectionRetryWait).C {
		nc, err = nats.Connect(natsURL)
		if err == nil {
			break
		}
		if i >= connectionTries {
			return nil, fmt.Errorf("directsend/nats_mq: failed to connect to NATS server: %w", err)
		}
		logger.Info("waiting before connecting to NATS", slog.String("url", natsURL))
		i++
	}

	logger.Info("connected to NATS", slog.String("url", nc.ConnectedUrl()))
	return &Client{nc: nc, engine: engine, logger: logger}, nil
}

// RelayInventory implements directsend.Transport: it announces a
// lock-vote hash and answers subsequent get requests for it from the
// engine's own vote index.
func (c *Client) RelayInventory(kind directsend.InventoryKind, hash chainhash.Hash) {
	if kind != directsend.InvLockVote {
		return
	}
	if err := c.nc.Publish(votesInvSubject, hash[:]); err != nil {
		c.logger.Error("failed to publish vote inventory", slog.String("err", err.Error()))
	}
}

// RelayTransaction implements directsend.Transport: it announces a
// Lock Request's hash so peers can fetch the full transaction.
func (c *Client) RelayTransaction(req *bt.Tx) {
	h, err := chainhash.NewHashFromStr(req.TxID())
	if err != nil {
		return
	}
	if err := c.nc.Publish(requestsInvSubject, h[:]); err != nil {
		c.logger.Error("failed to publish request inventory", slog.String("err", err.Error()))
	}
}

// SetEngine attaches the Engine this client drives. Breaks the
// Connect/NewEngine construction cycle: Connect can run before the
// engine exists (the engine itself takes this Client as its
// Transport), and SetEngine is called once the engine is built.
func (c *Client) SetEngine(engine Engine) {
	c.engine = engine
}

// Subscribe wires the client into the engine as a receiver: it answers
// get requests for votes/transactions this node holds, and pulls in
// and ingests vote/request inventory advertised by peers. Requires
// SetEngine to have been called first.
func (c *Client) Subscribe() error {
	if c.engine == nil {
		return fmt.Errorf("directsend/nats_mq: Subscribe called before SetEngine")
	}
	if _, err := c.nc.Subscribe(votesGetSubject, c.onVoteGet); err != nil {
		return fmt.Errorf("directsend/nats_mq: subscribing to %s: %w", votesGetSubject, err)
	}
	if _, err := c.nc.Subscribe(requestsGetSubject, c.onRequestGet); err != nil {
		return fmt.Errorf("directsend/nats_mq: subscribing to %s: %w", requestsGetSubject, err)
	}
	if _, err := c.nc.Subscribe(votesInvSubject, c.onVoteInv); err != nil {
		return fmt.Errorf("directsend/nats_mq: subscribing to %s: %w", votesInvSubject, err)
	}
	if _, err := c.nc.Subscribe(requestsInvSubject, c.onRequestInv); err != nil {
		return fmt.Errorf("directsend/nats_mq: subscribing to %s: %w", requestsInvSubject, err)
	}
	return nil
}

func (c *Client) onVoteGet(msg *nats.Msg) {
	hash, err := chainhash.NewHash(msg.Data)
	if err != nil || msg.Reply == "" {
		return
	}
	v, ok := c.engine.VoteByHash(*hash)
	if !ok {
		return
	}
	payload, err := v.MarshalBinary()
	if err != nil {
		return
	}
	_ = c.nc.Publish(msg.Reply, payload)
}

func (c *Client) onRequestGet(msg *nats.Msg) {
	hash, err := chainhash.NewHash(msg.Data)
	if err != nil || msg.Reply == "" {
		return
	}
	req, ok := c.engine.RequestByHash(*hash)
	if !ok {
		return
	}
	_ = c.nc.Publish(msg.Reply, req.ExtendedBytes())
}

func (c *Client) onVoteInv(msg *nats.Msg) {
	hash, err := chainhash.NewHash(msg.Data)
	if err != nil {
		return
	}
	if _, ok := c.engine.VoteByHash(*hash); ok {
		return
	}

	reply, err := c.nc.Request(votesGetSubject, msg.Data, 2*time.Second)
	if err != nil {
		return
	}

	v := &directsend.Vote{}
	if err := v.UnmarshalBinary(reply.Data); err != nil {
		c.logger.Debug("failed to decode gossiped vote", slog.String("err", err.Error()))
		return
	}
	if err := c.engine.ProcessVoteMessage(v, natsPeer{url: c.nc.ConnectedUrl()}); err != nil {
		c.logger.Debug("gossiped vote rejected", slog.String("err", err.Error()))
	}
}

func (c *Client) onRequestInv(msg *nats.Msg) {
	hash, err := chainhash.NewHash(msg.Data)
	if err != nil {
		return
	}
	if _, ok := c.engine.RequestByHash(*hash); ok {
		return
	}

	reply, err := c.nc.Request(requestsGetSubject, msg.Data, 2*time.Second)
	if err != nil {
		return
	}

	req, err := bt.NewTxFromBytes(reply.Data)
	if err != nil {
		c.logger.Debug("failed to decode gossiped lock request", slog.String("err", err.Error()))
		return
	}
	if err := c.engine.ProcessLockRequest(req); err != nil {
		c.logger.Debug("gossiped lock request rejected", slog.String("err", err.Error()))
	}
}

// Shutdown drains and closes the NATS connection.
func (c *Client) Shutdown() error {
	if err := c.nc.Drain(); err != nil {
		return err
	}
	c.nc.Close()
	return nil
}
