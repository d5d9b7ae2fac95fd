package httputil_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"

	"github.com/limbo/ironlog/pkg/httputil"
)

func TestWriteErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	httputil.WriteErrorResponse(rec, http.StatusBadRequest, "req-42", "invalid request body", errors.New("unexpected EOF"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp httputil.ErrorResponse
	assert.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "invalid request body", resp.Message)
	assert.Equal(t, "req-42", resp.RequestID)
	assert.Equal(t, "unexpected EOF", resp.Details)
}

func TestWriteJSONResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	httputil.WriteJSONResponse(rec, http.StatusOK, httputil.SecondsResponse{Seconds: 120})

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp httputil.SecondsResponse
	assert.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 120, resp.Seconds)
}
