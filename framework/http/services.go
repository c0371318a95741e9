package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/km-arc/go-servicemanager/framework/container"
)

// ServiceInspector serves a read-only view of a container's bindings.
// It never invokes a provider.
type ServiceInspector struct {
	app    *container.Container
	logger *zap.Logger
}

// NewServiceInspector creates an inspector for app.
func NewServiceInspector(app *container.Container, logger *zap.Logger) *ServiceInspector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ServiceInspector{app: app, logger: logger}
}

// Index responds with {"data": ["name", ...]}, sorted.
func (s *ServiceInspector) Index(w http.ResponseWriter, r *http.Request) {
	NewResponse(w).Success(s.app.Names())
}

// Show responds with {"data": {"name": ..., "bound": true}} for a bound name
// and 404 with the dependency-not-found envelope otherwise. The missing name
// is logged, not echoed back.
func (s *ServiceInspector) Show(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	res := NewResponse(w)

	if err := s.app.MustProvide(name); err != nil {
		var nf *container.DependencyNotFoundError
		if !errors.As(err, &nf) {
			res.ServerError()
			return
		}
		s.logger.Warn("inspected service not found", zap.Object("error", nf))
		res.Problem(http.StatusNotFound, nf.ErrorName(), nf.Detail())
		return
	}

	res.Success(envelope{"name": name, "bound": true})
}
