// Package server assembles the echo instance: global middleware, CORS,
// payload validation and the route table.
package server

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/suteetoe/kazi/internal/handler"
	"github.com/suteetoe/kazi/internal/middleware"
	"github.com/suteetoe/kazi/internal/store"
	"github.com/suteetoe/kazi/internal/tenancy"
	"github.com/suteetoe/kazi/pkg/config"
	"github.com/suteetoe/kazi/pkg/jwtutil"
	"github.com/suteetoe/kazi/pkg/logger"
	"github.com/suteetoe/kazi/prometheus"
	"go.uber.org/zap"
)

// Deps are the long-lived collaborators built at startup.
type Deps struct {
	Config *config.Config
	Logger *zap.Logger
	Store  *store.Store
	Tokens *jwtutil.JWTUtil
}

type payloadValidator struct {
	validate *validator.Validate
}

func (v *payloadValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// New builds the HTTP server.
func New(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &payloadValidator{validate: validator.New(validator.WithRequiredStructEnabled())}

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     deps.Config.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(deps.Logger))
	e.Use(prometheus.MetricsMiddleware())

	h := handler.New(deps.Store, deps.Tokens)
	guard := tenancy.NewGuard(deps.Tokens, deps.Store)
	registerRoutes(e, h, guard)

	return e
}

func registerRoutes(e *echo.Echo, h *handler.Handler, guard *tenancy.Guard) {
	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)
	e.POST("/token", h.Token)

	// Everything else requires a bearer token; admin routes additionally require Owner or Admin.
	api := routes{e: e, m: []echo.MiddlewareFunc{middleware.RequireAuth(guard)}}
	admin := api.with(middleware.RequireAdmin())

	e.GET("/users/me", h.Me, api.m...)
	admin.collection("/users", h.CreateUser, h.ListUsers)
	admin.item("/users/:id", h.GetUser, h.UpdateUser, h.DeleteUser)

	api.collection("/organizations", nil, h.ListOrganizations)
	admin.collection("/organizations", h.CreateOrganization, nil)
	api.item("/organizations/:id", h.GetOrganization, nil, nil)
	admin.item("/organizations/:id", nil, h.UpdateOrganization, h.DeleteOrganization)

	api.collection("/companies", h.CreateCompany, h.ListCompanies)
	api.item("/companies/:id", h.GetCompany, h.UpdateCompany, h.DeleteCompany)

	api.collection("/contacts", h.CreateContact, h.ListContacts)
	api.item("/contacts/:id", h.GetContact, h.UpdateContact, h.DeleteContact)

	api.collection("/mandates", h.CreateMandate, h.ListMandates)
	api.item("/mandates/:id", h.GetMandate, h.UpdateMandate, h.DeleteMandate)

	api.collection("/deals", h.CreateDeal, h.ListDeals)
	api.item("/deals/:id", h.GetDeal, h.UpdateDeal, h.DeleteDeal)
	e.GET("/deals/:id/ic-memo", h.DealMemo, api.m...)

	api.collection("/deals/:id/tasks", h.CreateTask, h.ListTasks)
	api.item("/tasks/:id", h.GetTask, h.UpdateTask, h.DeleteTask)

	api.collection("/deals/:id/documents", h.CreateDocument, h.ListDocuments)
	api.item("/documents/:id", h.GetDocument, h.UpdateDocument, h.DeleteDocument)

	api.collection("/ic-workflows", h.CreateICWorkflow, h.ListICWorkflows)
	api.item("/ic-workflows/:id", h.GetICWorkflow, h.UpdateICWorkflow, h.DeleteICWorkflow)

	api.collection("/intelligence", h.CreateIntelligence, h.ListIntelligence)
	api.item("/intelligence/:id", h.GetIntelligence, h.UpdateIntelligence, h.DeleteIntelligence)
}

// routes registers handlers behind a fixed middleware chain.
type routes struct {
	e *echo.Echo
	m []echo.MiddlewareFunc
}

func (r routes) with(m ...echo.MiddlewareFunc) routes {
	chain := append(append([]echo.MiddlewareFunc{}, r.m...), m...)
	return routes{e: r.e, m: chain}
}

// collection registers create and list on path, with and without the trailing slash.
func (r routes) collection(path string, create, list echo.HandlerFunc) {
	for _, p := range []string{path, path + "/"} {
		if create != nil {
			r.e.POST(p, create, r.m...)
		}
		if list != nil {
			r.e.GET(p, list, r.m...)
		}
	}
}

// item registers get, update (PUT and PATCH, both partial) and delete on path.
func (r routes) item(path string, get, update, del echo.HandlerFunc) {
	if get != nil {
		r.e.GET(path, get, r.m...)
	}
	if update != nil {
		r.e.PUT(path, update, r.m...)
		r.e.PATCH(path, update, r.m...)
	}
	if del != nil {
		r.e.DELETE(path, del, r.m...)
	}
}
