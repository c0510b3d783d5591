package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"moviereview/httpserver"
	"moviereview/pkg/config"

	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{}
}

func decodeAPIResponse(t testing.TB, rec *httptest.ResponseRecorder) httpserver.APIResponse {
	t.Helper()
	var resp httpserver.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "body: %s", rec.Body.String())
	return resp
}

// decodeAPIResult unmarshals the result field of the envelope into out.
func decodeAPIResult(t testing.TB, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), "body: %s", rec.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Result, out))
}

// decodeAPIList unmarshals result.data of a list envelope into out.
func decodeAPIList(t testing.TB, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var result struct {
		Data json.RawMessage `json:"data"`
	}
	decodeAPIResult(t, rec, &result)
	require.NoError(t, json.Unmarshal(result.Data, out))
}

func makeJSONRequest(server *httpserver.Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	return rec
}

func makeRawRequest(server *httpserver.Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	return rec
}
