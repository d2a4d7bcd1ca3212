package gqlrun_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlrun"
	"github.com/shyptr/gqlrun/schemabuilder"
)

func buildTestHandler(t *testing.T) *gqlrun.Handler {
	s := schemabuilder.NewSchema()
	s.Query().FieldFunc("hello", func() string { return "world" })
	built, err := s.Build()
	require.NoError(t, err)
	return gqlrun.NewHandler(built)
}

func TestHandler_ParseMemoizesBySourceDigest(t *testing.T) {
	h := buildTestHandler(t)
	doc1, err1 := h.Parse(`{ hello }`)
	require.Nil(t, err1)
	doc2, err2 := h.Parse(`{ hello }`)
	require.Nil(t, err2)
	assert.Same(t, doc1, doc2, "an identical source string must be served from cache")
}

func TestHandler_ParseReturnsDistinctDocumentsForDifferentSources(t *testing.T) {
	h := buildTestHandler(t)
	doc1, _ := h.Parse(`{ hello }`)
	doc2, _ := h.Parse(`query { hello }`)
	assert.NotSame(t, doc1, doc2)
}

func postJSON(h *gqlrun.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_ServeHTTP_ExecutesValidQuery(t *testing.T) {
	h := buildTestHandler(t)
	rec := postJSON(h, `{"query":"{ hello }"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp gqlrun.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Errors)
	assert.Equal(t, map[string]interface{}{"hello": "world"}, resp.Data)
}

func TestHandler_ServeHTTP_ReturnsSyntaxErrorForMalformedQuery(t *testing.T) {
	h := buildTestHandler(t)
	rec := postJSON(h, `{"query":"{ hello "}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp gqlrun.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0].Message, "Syntax Error")
}

func TestHandler_ServeHTTP_RejectsNonPostMethod(t *testing.T) {
	h := buildTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_ServeHTTP_RejectsUnknownOperationName(t *testing.T) {
	h := buildTestHandler(t)
	rec := postJSON(h, `{"query":"query Named { hello }","operationName":"Other"}`)

	var resp gqlrun.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Errors)
}

func TestContext_ClientIPPrefersXForwardedForOverRemoteAddr(t *testing.T) {
	h := buildTestHandler(t)
	var seenIP string
	h.Use(func(ctx *gqlrun.Context) {
		seenIP = ctx.ClientIP()
		ctx.Next()
	})

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString(`{"query":"{ hello }"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	req.RemoteAddr = "10.0.0.1:54321"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "203.0.113.7", seenIP)
}

func TestContext_NextStopsTheChainWhenAHandlerOmitsIt(t *testing.T) {
	h := buildTestHandler(t)
	var ranSecond bool
	h.Use(func(ctx *gqlrun.Context) {
		// deliberately does not call ctx.Next()
	})
	h.Use(func(ctx *gqlrun.Context) {
		ranSecond = true
		ctx.Next()
	})

	rec := postJSON(h, `{"query":"{ hello }"}`)
	assert.False(t, ranSecond)
	assert.Zero(t, rec.Body.Len(), "short-circuited chain never reaches execute, so nothing is written")
}
