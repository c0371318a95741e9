package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/km-arc/go-servicemanager/framework/container"
	gohttp "github.com/km-arc/go-servicemanager/framework/http"
)

func inspectorRouter(c *container.Container, logger *zap.Logger) http.Handler {
	inspector := gohttp.NewServiceInspector(c, logger)
	r := chi.NewRouter()
	r.Get("/_services", inspector.Index)
	r.Get("/_services/{name}", inspector.Show)
	return r
}

func TestServiceInspector_Index(t *testing.T) {
	c := container.New(nil)
	c.Register("zeta", container.ExistingInstance(1))
	c.Register("alpha", container.ExistingInstance(2))

	rr := httptest.NewRecorder()
	inspectorRouter(c, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/_services", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []any{"alpha", "zeta"}, decodeJSON(t, rr)["data"])
}

func TestServiceInspector_Show_DoesNotInvokeProvider(t *testing.T) {
	invoked := false
	c := container.New(nil)
	c.Register("db", func() (any, error) {
		invoked = true
		return nil, nil
	})

	rr := httptest.NewRecorder()
	inspectorRouter(c, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/_services/db", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	data := decodeJSON(t, rr)["data"].(map[string]any)
	assert.Equal(t, "db", data["name"])
	assert.Equal(t, true, data["bound"])
	assert.False(t, invoked)
}

func TestServiceInspector_Show_Missing(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	c := container.New(nil)

	rr := httptest.NewRecorder()
	inspectorRouter(c, zap.New(core)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/_services/secret", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotContains(t, rr.Body.String(), "secret")

	body := decodeJSON(t, rr)
	assert.Equal(t, "dependency-not-found", body["error"])

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()["error"].(map[string]any)
	assert.Equal(t, "secret", fields["serviceName"])
}
