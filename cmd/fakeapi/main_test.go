package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_SeedsAndDisables(t *testing.T) {
	api := newServer(&ServeConfig{
		Seed:          true,
		AdminEmail:    "admin@usagi.cl",
		AdminPassword: "pw",
		Disable:       []string{"/cart"},
	}, zerolog.Nop())

	srv := httptest.NewServer(withCORS(api.Handler()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/product")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, api.Records("product"), 3)

	resp, err = http.Get(srv.URL + "/cart")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWithCORS_Preflight(t *testing.T) {
	api := newServer(&ServeConfig{}, zerolog.Nop())
	srv := httptest.NewServer(withCORS(api.Handler()))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/product", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "PATCH")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Empty(t, api.Records("product"))
	assert.Equal(t, 0, api.TotalHits())
}
