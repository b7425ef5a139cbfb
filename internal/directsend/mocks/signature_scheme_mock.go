// Code generated by moq; hand-authored here in the same shape since
// the example pack ships the go:generate directives but not the
// generated output. DO NOT EDIT structure without keeping it in sync
// with internal/directsend.SignatureScheme.

package mocks

// SignatureSchemeMock is a mock implementation of
// directsend.SignatureScheme.
type SignatureSchemeMock struct {
	SignFunc   func(privKey, message []byte) ([]byte, error)
	VerifyFunc func(pubKey, message, signature []byte) bool
}

func (m *SignatureSchemeMock) Sign(privKey, message []byte) ([]byte, error) {
	if m.SignFunc == nil {
		panic("SignatureSchemeMock.SignFunc is nil")
	}
	return m.SignFunc(privKey, message)
}

func (m *SignatureSchemeMock) Verify(pubKey, message, signature []byte) bool {
	if m.VerifyFunc == nil {
		panic("SignatureSchemeMock.VerifyFunc is nil")
	}
	return m.VerifyFunc(pubKey, message, signature)
}
