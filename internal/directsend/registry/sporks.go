package registry

import "github.com/bitcoin-sv/directsend/internal/directsend"

// StaticSporks implements directsend.FeatureFlagOracle from a fixed,
// config-supplied map. Live spork propagation over the P2P network is
// out of scope for this subsystem.
type StaticSporks struct {
	enabled map[directsend.SporkID]bool
	values  map[directsend.SporkID]int64
}

func NewStaticSporks(enabled map[directsend.SporkID]bool, values map[directsend.SporkID]int64) *StaticSporks {
	return &StaticSporks{enabled: enabled, values: values}
}

// DefaultSporks enables DirectSend and block filtering, leaving the
// max-value cap and low-fee activation sporks off.
func DefaultSporks() *StaticSporks {
	return NewStaticSporks(
		map[directsend.SporkID]bool{
			directsend.SporkDirectSendEnabled:       true,
			directsend.SporkDirectSendBlockFiltering: true,
		},
		map[directsend.SporkID]int64{},
	)
}

func (s *StaticSporks) Enabled(flag directsend.SporkID) bool {
	return s.enabled[flag]
}

func (s *StaticSporks) Value(flag directsend.SporkID) int64 {
	return s.values[flag]
}
