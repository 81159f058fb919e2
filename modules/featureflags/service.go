package featureflags

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/akademate/handler"
	"github.com/dmitrymomot/akademate/pkg/binder"
	"github.com/dmitrymomot/akademate/pkg/feature"
)

// Service exposes flag evaluation, tenant overrides and the flag catalogue
// over HTTP.
type Service struct {
	registry Registry
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger used to report failed requests.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// NewService creates the HTTP module for registry.
func NewService(registry Registry, opts ...ServiceOption) *Service {
	s := &Service{
		registry: registry,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle returns the module routes, relative to the mount point.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	tenantErrors := handler.NewErrorHandler(s.logger, classifier(errInvalidTenantID))
	requestErrors := handler.NewErrorHandler(s.logger, classifier(errInvalidRequest))

	r.Get("/", handler.Wrap(s.evaluate,
		handler.WithBinders[handler.Context, evaluateRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, evaluateRequest](tenantErrors),
	))
	r.Patch("/", handler.Wrap(s.setOverride,
		handler.WithBinders[handler.Context, setOverrideRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, setOverrideRequest](requestErrors),
	))

	r.Route("/definitions", func(r chi.Router) {
		r.Get("/", handler.Wrap(s.listDefinitions,
			handler.WithErrorHandler[handler.Context, struct{}](requestErrors),
		))
		r.Post("/", handler.Wrap(s.createDefinition,
			handler.WithBinders[handler.Context, definitionRequest](binder.JSON()),
			handler.WithErrorHandler[handler.Context, definitionRequest](requestErrors),
		))
		r.Get("/{key}", handler.Wrap(s.getDefinition,
			handler.WithBinders[handler.Context, definitionKeyRequest](binder.Path(chi.URLParam)),
			handler.WithErrorHandler[handler.Context, definitionKeyRequest](requestErrors),
		))
		r.Put("/{key}", handler.Wrap(s.updateDefinition,
			handler.WithBinders[handler.Context, definitionRequest](binder.JSON(), binder.Path(chi.URLParam)),
			handler.WithErrorHandler[handler.Context, definitionRequest](requestErrors),
		))
		r.Delete("/{key}", handler.Wrap(s.deleteDefinition,
			handler.WithBinders[handler.Context, definitionKeyRequest](binder.Path(chi.URLParam)),
			handler.WithErrorHandler[handler.Context, definitionKeyRequest](requestErrors),
		))
	})

	r.Get("/{key}", handler.Wrap(s.evaluateFlag,
		handler.WithBinders[handler.Context, evaluateFlagRequest](binder.Path(chi.URLParam), binder.Query()),
		handler.WithErrorHandler[handler.Context, evaluateFlagRequest](tenantErrors),
	))
	r.Delete("/{key}/overrides/{tenantId}", handler.Wrap(s.removeOverride,
		handler.WithBinders[handler.Context, removeOverrideRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, removeOverrideRequest](requestErrors),
	))

	return r
}

func (s *Service) evaluate(ctx handler.Context, req evaluateRequest) handler.Response {
	results, err := s.registry.Evaluate(ctx, req.TenantID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(flagsResponse{Flags: results})
}

func (s *Service) evaluateFlag(ctx handler.Context, req evaluateFlagRequest) handler.Response {
	result, err := s.registry.EvaluateFlag(ctx, req.TenantID, req.Key)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(result)
}

func (s *Service) setOverride(ctx handler.Context, req setOverrideRequest) handler.Response {
	stored, err := s.registry.SetOverride(ctx, req.TenantID, req.Key, req.Value)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(overrideResponse{OverrideValue: stored})
}

func (s *Service) removeOverride(ctx handler.Context, req removeOverrideRequest) handler.Response {
	if err := s.registry.RemoveOverride(ctx, req.TenantID, req.Key); err != nil {
		return handler.Error(err)
	}
	return handler.Empty()
}

func (s *Service) listDefinitions(ctx handler.Context, _ struct{}) handler.Response {
	defs, err := s.registry.Definitions(ctx)
	if err != nil {
		return handler.Error(err)
	}
	if defs == nil {
		defs = []feature.Definition{}
	}
	return handler.JSON(definitionsResponse{Definitions: defs})
}

func (s *Service) getDefinition(ctx handler.Context, req definitionKeyRequest) handler.Response {
	def, err := s.registry.Definition(ctx, req.Key)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(def)
}

func (s *Service) createDefinition(ctx handler.Context, req definitionRequest) handler.Response {
	created, err := s.registry.CreateDefinition(ctx, req.definition())
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(created, handler.WithJSONStatus(http.StatusCreated))
}

func (s *Service) updateDefinition(ctx handler.Context, req definitionRequest) handler.Response {
	updated, err := s.registry.UpdateDefinition(ctx, req.definition())
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(updated)
}

func (s *Service) deleteDefinition(ctx handler.Context, req definitionKeyRequest) handler.Response {
	if err := s.registry.DeleteDefinition(ctx, req.Key); err != nil {
		return handler.Error(err)
	}
	return handler.Empty()
}
