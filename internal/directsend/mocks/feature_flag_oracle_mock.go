// Code generated by moq; hand-authored here in the same shape since
// the example pack ships the go:generate directives but not the
// generated output. DO NOT EDIT structure without keeping it in sync
// with internal/directsend.FeatureFlagOracle.

package mocks

import "github.com/bitcoin-sv/directsend/internal/directsend"

// FeatureFlagOracleMock is a mock implementation of
// directsend.FeatureFlagOracle.
type FeatureFlagOracleMock struct {
	EnabledFunc func(flag directsend.SporkID) bool
	ValueFunc   func(flag directsend.SporkID) int64
}

func (m *FeatureFlagOracleMock) Enabled(flag directsend.SporkID) bool {
	if m.EnabledFunc == nil {
		return true
	}
	return m.EnabledFunc(flag)
}

func (m *FeatureFlagOracleMock) Value(flag directsend.SporkID) int64 {
	if m.ValueFunc == nil {
		return 0
	}
	return m.ValueFunc(flag)
}
