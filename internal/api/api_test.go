package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	alreadyHave   bool
	isLocked      bool
	confirmations int32
	signatures    int32
}

func (f *fakeEngine) AlreadyHave(chainhash.Hash) bool       { return f.alreadyHave }
func (f *fakeEngine) IsLocked(chainhash.Hash) bool          { return f.isLocked }
func (f *fakeEngine) Confirmations(chainhash.Hash) int32    { return f.confirmations }
func (f *fakeEngine) Signatures(chainhash.Hash) int32       { return f.signatures }

func newTestHandler(f *fakeEngine) *Handler {
	return New(f)
}

func TestGETAlreadyHave(t *testing.T) {
	hash, err := chainhash.NewHashFromStr("0000000000000000000000000000000000000000000000000000000000002a")
	require.NoError(t, err)

	e := echo.New()
	h := newTestHandler(&fakeEngine{alreadyHave: true})
	h.Register(e)

	req := httptest.NewRequest(http.MethodGet, "/v1/lock/"+hash.String()+"/already-have", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"alreadyHave":true`)
}

func TestGETIsLockedInvalidHash(t *testing.T) {
	e := echo.New()
	h := newTestHandler(&fakeEngine{})
	h.Register(e)

	req := httptest.NewRequest(http.MethodGet, "/v1/lock/not-a-hash/is-locked", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGETSignatures(t *testing.T) {
	hash, err := chainhash.NewHashFromStr("0000000000000000000000000000000000000000000000000000000000002a")
	require.NoError(t, err)

	e := echo.New()
	h := newTestHandler(&fakeEngine{signatures: 7})
	h.Register(e)

	req := httptest.NewRequest(http.MethodGet, "/v1/lock/"+hash.String()+"/signatures", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"signatures":7`)
}
