package config

import "github.com/bitcoin-sv/directsend/internal/directsend"

func getDefaultDirectSendConfig() *DirectSendConfig {
	return &DirectSendConfig{
		LogLevel:       "INFO",
		LogFormat:      "tint",
		PrometheusAddr: ":2112",
		ApiAddr:        ":8080",
		Peers: []*PeerConfig{
			{
				Host: "localhost",
				Port: &PeerPortConfig{P2P: 8333, ZMQ: 28332},
			},
		},
		Node: &NodeConfig{
			Host:   "localhost",
			Port:   8332,
			UseSSL: false,
		},
		Gossip: &GossipConfig{
			NatsURL: "nats://localhost:4222",
		},
		Engine:        engineConfigFromDefaults(directsend.DefaultEngineConfig()),
		NotifyCommand: "",
	}
}
