package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, map[string]string{"id": "a1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"a1"}`, rec.Body.String())
}

func TestBadGateway_HidesUpstreamDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	BadGateway(rec, errors.New("dial tcp 10.0.0.5:443: connection refused"))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "network_error", body.Code)
	assert.NotContains(t, body.Error, "10.0.0.5")
}

func TestDecode(t *testing.T) {
	var dst struct {
		Domain string `json:"domain"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"domain":"a.com"}`))
	rec := httptest.NewRecorder()
	require.True(t, Decode(rec, req, &dst))
	assert.Equal(t, "a.com", dst.Domain)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	rec = httptest.NewRecorder()
	assert.False(t, Decode(rec, req, &dst))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	rec = httptest.NewRecorder()
	assert.False(t, Decode(rec, req, &dst))
	assert.Contains(t, rec.Body.String(), "request body is required")
}

func TestAbandoned(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, Abandoned(req, errors.New("boom")))
	assert.True(t, Abandoned(req, context.Canceled))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.True(t, Abandoned(req.WithContext(ctx), errors.New("boom")))
}
