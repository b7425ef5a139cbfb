// Package config loads the DirectSend process configuration: log
// level/format, listen addresses, peer endpoints, gossip transport, and
// the engine's runtime constants.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/bitcoin-sv/directsend/internal/directsend"
)

var (
	ErrPortP2PNotSet = errors.New("port_p2p not set for peer")
	ErrPortZMQNotSet = errors.New("port_zmq not set for peer")
)

// DirectSendConfig is the root configuration struct, unmarshalled by
// Load from defaults, config files, and DIRECTSEND_-prefixed env vars.
type DirectSendConfig struct {
	LogLevel       string        `json:"logLevel" mapstructure:"logLevel"`
	LogFormat      string        `json:"logFormat" mapstructure:"logFormat"`
	ProfilerAddr   string        `json:"profilerAddr" mapstructure:"profilerAddr"`
	PrometheusAddr string        `json:"prometheusAddr" mapstructure:"prometheusAddr"`
	ApiAddr        string        `json:"apiAddr" mapstructure:"apiAddr"`
	Peers          []*PeerConfig `json:"peers" mapstructure:"peers"`
	Node           *NodeConfig   `json:"node" mapstructure:"node"`
	Gossip         *GossipConfig `json:"gossip" mapstructure:"gossip"`
	Engine         *EngineConfig `json:"engine" mapstructure:"engine"`
	NotifyCommand  string        `json:"notifyCommand" mapstructure:"notifyCommand"`
}

// NodeConfig is the bitcoind JSON-RPC endpoint the engine's Chain and
// UTXOSource adapters (internal/directsend/nodeadapter) connect to.
type NodeConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     int    `json:"port" mapstructure:"port"`
	User     string `json:"user" mapstructure:"user"`
	Password string `json:"password" mapstructure:"password"`
	UseSSL   bool   `json:"useSSL" mapstructure:"useSSL"`
}

// PeerConfig is a bitcoind peer this node draws its ZMQ lock-request feed
// and P2P relay from.
type PeerConfig struct {
	Host string          `json:"host" mapstructure:"host"`
	Port *PeerPortConfig `json:"port" mapstructure:"port"`
}

type PeerPortConfig struct {
	P2P int `json:"p2p" mapstructure:"p2p"`
	ZMQ int `json:"zmq" mapstructure:"zmq"`
}

// GossipConfig configures the cross-process vote/request fan-out over
// NATS (internal/directsend/gossip/nats_mq).
type GossipConfig struct {
	NatsURL string `json:"natsURL" mapstructure:"natsURL"`
}

// EngineConfig mirrors directsend.EngineConfig's fields (other than
// NotifyCommand, which is the top-level NotifyCommand here) for
// config-file and env-var overrides; ToEngineConfig converts the loaded
// value to directsend.EngineConfig.
type EngineConfig struct {
	SignaturesTotal       int           `json:"signaturesTotal" mapstructure:"signaturesTotal"`
	SignaturesRequired    int           `json:"signaturesRequired" mapstructure:"signaturesRequired"`
	LockTimeout           time.Duration `json:"lockTimeout" mapstructure:"lockTimeout"`
	FailedTimeout         time.Duration `json:"failedTimeout" mapstructure:"failedTimeout"`
	KeepLockDepth         int32         `json:"keepLockDepth" mapstructure:"keepLockDepth"`
	ConfirmationsRequired int32         `json:"confirmationsRequired" mapstructure:"confirmationsRequired"`
	WarnManyInputs        int           `json:"warnManyInputs" mapstructure:"warnManyInputs"`
	MinFeePerInput        int64         `json:"minFeePerInput" mapstructure:"minFeePerInput"`
	ProtocolVersion       uint32        `json:"protocolVersion" mapstructure:"protocolVersion"`
	RankHeightOffset      int32         `json:"rankHeightOffset" mapstructure:"rankHeightOffset"`
	OrphanRateLimitWindow time.Duration `json:"orphanRateLimitWindow" mapstructure:"orphanRateLimitWindow"`
	GCInterval            time.Duration `json:"gcInterval" mapstructure:"gcInterval"`
}

// ToEngineConfig converts the config-file shape into the engine's own
// constants struct.
func (e *EngineConfig) ToEngineConfig() directsend.EngineConfig {
	return directsend.EngineConfig{
		SignaturesTotal:       e.SignaturesTotal,
		SignaturesRequired:    e.SignaturesRequired,
		LockTimeout:           e.LockTimeout,
		FailedTimeout:         e.FailedTimeout,
		KeepLockDepth:         e.KeepLockDepth,
		ConfirmationsRequired: e.ConfirmationsRequired,
		WarnManyInputs:        e.WarnManyInputs,
		MinFeePerInput:        e.MinFeePerInput,
		ProtocolVersion:       e.ProtocolVersion,
		RankHeightOffset:      e.RankHeightOffset,
		OrphanRateLimitWindow: e.OrphanRateLimitWindow,
		GCInterval:            e.GCInterval,
	}
}

func engineConfigFromDefaults(d directsend.EngineConfig) *EngineConfig {
	return &EngineConfig{
		SignaturesTotal:       d.SignaturesTotal,
		SignaturesRequired:    d.SignaturesRequired,
		LockTimeout:           d.LockTimeout,
		FailedTimeout:         d.FailedTimeout,
		KeepLockDepth:         d.KeepLockDepth,
		ConfirmationsRequired: d.ConfirmationsRequired,
		WarnManyInputs:        d.WarnManyInputs,
		MinFeePerInput:        d.MinFeePerInput,
		ProtocolVersion:       d.ProtocolVersion,
		RankHeightOffset:      d.RankHeightOffset,
		OrphanRateLimitWindow: d.OrphanRateLimitWindow,
		GCInterval:            d.GCInterval,
	}
}

func (p *PeerConfig) GetZMQUrl() (*url.URL, error) {
	if p.Port == nil || p.Port.ZMQ == 0 {
		return nil, errors.Join(ErrPortZMQNotSet, fmt.Errorf("peer %s", p.Host))
	}

	return url.Parse(fmt.Sprintf("zmq://%s:%d", p.Host, p.Port.ZMQ))
}

func (p *PeerConfig) GetP2PUrl() (string, error) {
	if p.Port == nil || p.Port.P2P == 0 {
		return "", errors.Join(ErrPortP2PNotSet, fmt.Errorf("peer %s", p.Host))
	}

	return fmt.Sprintf("%s:%d", p.Host, p.Port.P2P), nil
}
