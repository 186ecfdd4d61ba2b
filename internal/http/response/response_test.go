package response

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"veridia/internal/common"
)

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestError_MapsDomainCodesToStatus(t *testing.T) {
	cases := []struct {
		code   common.Code
		status int
	}{
		{common.CodeValidation, 400},
		{common.CodeUnauthorized, 401},
		{common.CodeInvalidCredentials, 401},
		{common.CodeInvalidToken, 401},
		{common.CodeForbidden, 403},
		{common.CodeNotFound, 404},
		{common.CodeConflict, 409},
		{common.CodeRateLimited, 429},
		{common.CodeInternal, 500},
	}
	for _, tc := range cases {
		recorder := httptest.NewRecorder()
		Error(recorder, common.NewError(tc.code, "boom", nil))
		require.Equal(t, tc.status, recorder.Code, "code %s", tc.code)

		body := decodeEnvelope(t, recorder)
		require.False(t, body.Success)
		require.NotNil(t, body.Error)
		require.Equal(t, tc.code, body.Error.Code)
	}
}

func TestError_HidesUnknownErrors(t *testing.T) {
	recorder := httptest.NewRecorder()
	Error(recorder, errors.New("pq: connection refused"))

	require.Equal(t, 500, recorder.Code)
	body := decodeEnvelope(t, recorder)
	require.Equal(t, common.CodeInternal, body.Error.Code)
	require.Equal(t, "internal error", body.Error.Message)
}

func TestError_IncludesValidationDetails(t *testing.T) {
	recorder := httptest.NewRecorder()
	Error(recorder, common.NewValidationError("invalid application", map[string]string{"resume": "resume is required"}))

	require.Equal(t, 400, recorder.Code)
	body := decodeEnvelope(t, recorder)
	require.Equal(t, "resume is required", body.Error.Details["resume"])
}

func TestJSON_WrapsDataInEnvelope(t *testing.T) {
	recorder := httptest.NewRecorder()
	JSON(recorder, 201, map[string]string{"id": "abc"})

	require.Equal(t, 201, recorder.Code)
	require.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	body := decodeEnvelope(t, recorder)
	require.True(t, body.Success)
	require.Nil(t, body.Error)
}

type countingCollector struct {
	codes []string
}

func (c *countingCollector) RecordError(code string) {
	c.codes = append(c.codes, code)
}

func TestError_ReportsToCollector(t *testing.T) {
	collector := &countingCollector{}
	SetErrorCollector(collector)
	defer SetErrorCollector(nil)

	Error(httptest.NewRecorder(), common.NewError(common.CodeNotFound, "application not found", nil))
	require.Equal(t, []string{"NOT_FOUND"}, collector.codes)
}
