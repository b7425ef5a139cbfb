package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetZMQUrlGetP2PUrl(t *testing.T) {
	testCases := []struct {
		name       string
		peerConfig *PeerConfig

		expectedZmqIsNil bool
		expectedP2PUrl   string
		expectedZMQUrl   string
		expectedP2PError error
		expectedZMQError error
	}{
		{
			name: "valid config",
			peerConfig: &PeerConfig{
				Host: "localhost",
				Port: &PeerPortConfig{P2P: 8333, ZMQ: 28332},
			},
			expectedP2PUrl: "localhost:8333",
			expectedZMQUrl: "zmq://localhost:28332",
		},
		{
			name: "zmq port missing",
			peerConfig: &PeerConfig{
				Host: "localhost",
				Port: &PeerPortConfig{P2P: 8333},
			},
			expectedZmqIsNil: true,
			expectedP2PUrl:   "localhost:8333",
			expectedZMQError: ErrPortZMQNotSet,
		},
		{
			name: "p2p port missing",
			peerConfig: &PeerConfig{
				Host: "localhost",
				Port: &PeerPortConfig{ZMQ: 28332},
			},
			expectedP2PError: ErrPortP2PNotSet,
			expectedZMQUrl:   "zmq://localhost:28332",
		},
		{
			name: "no port configuration",
			peerConfig: &PeerConfig{
				Host: "localhost",
			},
			expectedZmqIsNil:  true,
			expectedP2PError:  ErrPortP2PNotSet,
			expectedZMQError:  ErrPortZMQNotSet,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actualP2PURL, actualP2PErr := tc.peerConfig.GetP2PUrl()
			actualZmqURL, actualZmqErr := tc.peerConfig.GetZMQUrl()

			assert.ErrorIs(t, actualP2PErr, tc.expectedP2PError)
			assert.Equal(t, tc.expectedP2PUrl, actualP2PURL)

			if tc.expectedZmqIsNil {
				assert.Nil(t, actualZmqURL)
				assert.ErrorIs(t, actualZmqErr, tc.expectedZMQError)
				return
			}

			assert.NotNil(t, actualZmqURL)
			assert.NoError(t, actualZmqErr)
			assert.Equal(t, tc.expectedZMQUrl, actualZmqURL.String())
		})
	}
}

func TestEngineConfigRoundTrip(t *testing.T) {
	def := getDefaultDirectSendConfig()

	converted := def.Engine.ToEngineConfig()

	assert.Equal(t, def.Engine.SignaturesTotal, converted.SignaturesTotal)
	assert.Equal(t, def.Engine.SignaturesRequired, converted.SignaturesRequired)
	assert.Equal(t, def.Engine.GCInterval, converted.GCInterval)
}
