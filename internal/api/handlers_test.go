package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/lockuplabs/token-lockup-service/internal/auth"
	"github.com/lockuplabs/token-lockup-service/internal/config"
	"github.com/lockuplabs/token-lockup-service/internal/db"
	"github.com/lockuplabs/token-lockup-service/internal/db/model"
	"github.com/lockuplabs/token-lockup-service/internal/services"
	"github.com/lockuplabs/token-lockup-service/tests/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestServer(dbMock *mocks.DbInterface, ledgerMock *mocks.LedgerInterface) *Server {
	cfg := &config.Config{
		Poller: config.PollerConfig{
			LivenessPollingInterval: time.Minute,
			LivenessThreshold:       24 * time.Hour,
			LivenessBump:            7 * 24 * time.Hour,
		},
	}
	service := services.NewService(cfg, dbMock, ledgerMock, nil, auth.NewPrincipalGate())
	return New(&config.ApiConfig{
		Host:         "127.0.0.1",
		Port:         8080,
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
	}, service)
}

func (s *Server) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func sequenceDoc(unlocks []model.UnlockEntry) *model.LockupDocument {
	return &model.LockupDocument{
		ID:      "lockup-1",
		Variant: "SEQUENCE_CONSUMING",
		Admin:   "admin-principal",
		Owner:   "owner-principal",
		Unlocks: unlocks,
	}
}

func TestGetLockupEndpoint(t *testing.T) {
	t.Run("returns the lockup record", func(t *testing.T) {
		dbMock := &mocks.DbInterface{}
		dbMock.On("GetLockup", mock.Anything, "lockup-1").
			Return(sequenceDoc([]model.UnlockEntry{{Time: 100, Percent: 10000}}), nil)

		srv := newTestServer(dbMock, &mocks.LedgerInterface{})
		rec := srv.serve(httptest.NewRequest(http.MethodGet, "/v1/lockups/lockup-1", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp lockupResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "lockup-1", resp.LockupID)
		assert.Equal(t, "SEQUENCE_CONSUMING", resp.Variant)
		require.Len(t, resp.Unlocks, 1)
		assert.Equal(t, unlockPayload{Time: 100, Percent: 10000}, resp.Unlocks[0])
	})

	t.Run("maps missing lockups to 404", func(t *testing.T) {
		dbMock := &mocks.DbInterface{}
		dbMock.On("GetLockup", mock.Anything, "nope").
			Return(nil, &db.NotFoundError{Key: "nope", Message: "lockup not found"})

		srv := newTestServer(dbMock, &mocks.LedgerInterface{})
		rec := srv.serve(httptest.NewRequest(http.MethodGet, "/v1/lockups/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestInitializeEndpoint(t *testing.T) {
	body := func() *bytes.Buffer {
		b, _ := json.Marshal(initializeRequest{
			LockupID: "lockup-1",
			Variant:  "SEQUENCE_CONSUMING",
			Admin:    "admin-principal",
			Owner:    "owner-principal",
			Unlocks:  []unlockPayload{{Time: 100, Percent: 10000}},
		})
		return bytes.NewBuffer(b)
	}

	t.Run("creates and returns 201", func(t *testing.T) {
		dbMock := &mocks.DbInterface{}
		dbMock.On("CreateLockup", mock.Anything, mock.Anything).Return(nil)

		srv := newTestServer(dbMock, &mocks.LedgerInterface{})
		rec := srv.serve(httptest.NewRequest(http.MethodPost, "/v1/lockups", body()))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("maps duplicate ids to 409", func(t *testing.T) {
		dbMock := &mocks.DbInterface{}
		dbMock.On("CreateLockup", mock.Anything, mock.Anything).
			Return(&db.DuplicateKeyError{Key: "lockup-1", Message: "lockup already exists"})

		srv := newTestServer(dbMock, &mocks.LedgerInterface{})
		rec := srv.serve(httptest.NewRequest(http.MethodPost, "/v1/lockups", body()))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("rejects malformed bodies", func(t *testing.T) {
		srv := newTestServer(&mocks.DbInterface{}, &mocks.LedgerInterface{})
		rec := srv.serve(httptest.NewRequest(http.MethodPost, "/v1/lockups", bytes.NewBufferString("{")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestClaimEndpoint(t *testing.T) {
	t.Run("settles a sequence claim", func(t *testing.T) {
		dbMock := &mocks.DbInterface{}
		ledgerMock := &mocks.LedgerInterface{}
		dbMock.On("GetLockup", mock.Anything, "lockup-1").
			Return(sequenceDoc([]model.UnlockEntry{{Time: 100, Percent: 5000}, {Time: 200, Percent: 5000}}), nil)
		ledgerMock.On("CurrentSequence", mock.Anything).Return(uint64(150), nil)
		dbMock.On("UpdateLockupSchedule", mock.Anything, "lockup-1",
			[]model.UnlockEntry{{Time: 200, Percent: 5000}}).Return(nil)
		ledgerMock.On("Balance", mock.Anything, "lockup-1", "usdl").Return(math.NewInt(1_000_000), nil)
		ledgerMock.On("Transfer", mock.Anything, "lockup-1", "owner-principal", "usdl", math.NewInt(500_000)).Return(nil)

		srv := newTestServer(dbMock, ledgerMock)
		req := httptest.NewRequest(http.MethodPost, "/v1/lockups/lockup-1/claim",
			bytes.NewBufferString(`{"assets":["usdl"],"sequence":100}`))
		req.Header.Set(principalHeader, "owner-principal")

		rec := srv.serve(req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp claimResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Claims, 1)
		assert.Equal(t, claimedAssetPayload{Asset: "usdl", Amount: "500000"}, resp.Claims[0])
	})

	t.Run("maps a wrong principal to 401", func(t *testing.T) {
		dbMock := &mocks.DbInterface{}
		dbMock.On("GetLockup", mock.Anything, "lockup-1").
			Return(sequenceDoc([]model.UnlockEntry{{Time: 100, Percent: 10000}}), nil)

		srv := newTestServer(dbMock, &mocks.LedgerInterface{})
		req := httptest.NewRequest(http.MethodPost, "/v1/lockups/lockup-1/claim",
			bytes.NewBufferString(`{"assets":["usdl"],"sequence":100}`))
		req.Header.Set(principalHeader, "someone-else")

		rec := srv.serve(req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects empty asset lists", func(t *testing.T) {
		srv := newTestServer(&mocks.DbInterface{}, &mocks.LedgerInterface{})
		req := httptest.NewRequest(http.MethodPost, "/v1/lockups/lockup-1/claim",
			bytes.NewBufferString(`{"assets":[]}`))
		rec := srv.serve(req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUnlockEndpoints(t *testing.T) {
	t.Run("put then delete round trip", func(t *testing.T) {
		dbMock := &mocks.DbInterface{}
		dbMock.On("GetLockup", mock.Anything, "lockup-1").
			Return(sequenceDoc([]model.UnlockEntry{{Time: 100, Percent: 3000}}), nil)
		dbMock.On("UpdateLockupSchedule", mock.Anything, "lockup-1", mock.Anything).Return(nil)

		srv := newTestServer(dbMock, &mocks.LedgerInterface{})

		req := httptest.NewRequest(http.MethodPut, "/v1/lockups/lockup-1/unlocks/200",
			bytes.NewBufferString(`{"percent":5000}`))
		req.Header.Set(principalHeader, "admin-principal")
		assert.Equal(t, http.StatusOK, srv.serve(req).Code)

		req = httptest.NewRequest(http.MethodDelete, "/v1/lockups/lockup-1/unlocks/100", nil)
		req.Header.Set(principalHeader, "admin-principal")
		assert.Equal(t, http.StatusOK, srv.serve(req).Code)
	})

	t.Run("maps absent unlocks to 400 on delete", func(t *testing.T) {
		dbMock := &mocks.DbInterface{}
		dbMock.On("GetLockup", mock.Anything, "lockup-1").
			Return(sequenceDoc([]model.UnlockEntry{{Time: 100, Percent: 3000}}), nil)

		srv := newTestServer(dbMock, &mocks.LedgerInterface{})
		req := httptest.NewRequest(http.MethodDelete, "/v1/lockups/lockup-1/unlocks/999", nil)
		req.Header.Set(principalHeader, "admin-principal")
		assert.Equal(t, http.StatusBadRequest, srv.serve(req).Code)
	})

	t.Run("reads a stored unlock", func(t *testing.T) {
		dbMock := &mocks.DbInterface{}
		dbMock.On("GetLockup", mock.Anything, "lockup-1").
			Return(sequenceDoc([]model.UnlockEntry{{Time: 100, Percent: 3000}}), nil)

		srv := newTestServer(dbMock, &mocks.LedgerInterface{})
		rec := srv.serve(httptest.NewRequest(http.MethodGet, "/v1/lockups/lockup-1/unlocks/100", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp unlockResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, unlockResponse{Sequence: 100, Percent: 3000}, resp)
	})
}
