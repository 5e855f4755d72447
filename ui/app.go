package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jibarix/map-viz/internal/config"
	"github.com/jibarix/map-viz/ports"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App represents the dashboard web application
type App struct {
	router    *chi.Mux
	cfg       config.Config
	sessions  *sessionStore
	catalog   ports.Catalog
	templates *template.Template
}

// NewApp creates the dashboard application. catalog may be nil, which
// disables upload history but nothing else.
func NewApp(cfg config.Config, catalog ports.Catalog) (*App, error) {
	funcMap := template.FuncMap{
		"money": func(v float64) string {
			return "$" + commaFloat(v, 0)
		},
		"number": func(v float64) string {
			return commaFloat(v, 0)
		},
		"float2": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
		"pct": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v*100)
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		cfg:       cfg,
		sessions:  newSessionStore(cfg.Analysis),
		catalog:   catalog,
		templates: templates,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", staticFS)
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/about", a.handleAbout)
	a.router.Post("/upload", a.handleUpload)
	a.router.Get("/uploads", a.handleUploadHistory)

	// Tab data endpoints. Each returns either its payload or an info
	// message when the loaded dataset cannot support the tab.
	a.router.Route("/api", func(r chi.Router) {
		r.Get("/summary", a.handleSummary)
		r.Get("/yearly", a.handleYearly)
		r.Get("/types", a.handlePropertyTypes)
		r.Get("/components", a.handleComponents)
		r.Get("/prices", a.handlePriceDistribution)
		r.Get("/area", a.handleArea)
		r.Get("/spatial", a.handleSpatial)
		r.Get("/distance", a.handleDistance)
		r.Get("/monthly", a.handleMonthly)
		r.Get("/network", a.handleNetwork)
		r.Get("/network/stats", a.handleNetworkStats)
		r.Get("/network/flow", a.handleFlow)
		r.Get("/map", a.handleMap)
		r.Get("/map/stats", a.handleMapStats)
	})
}

// Router returns the configured HTTP handler
func (a *App) Router() http.Handler {
	return a.router
}

// commaFloat formats v with thousands separators and the given number
// of decimal places.
func commaFloat(v float64, decimals int) string {
	s := fmt.Sprintf("%.*f", decimals, v)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	intPart := s
	frac := ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			intPart, frac = s[:i], s[i:]
			break
		}
	}
	var out []byte
	for i, c := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	result := string(out) + frac
	if neg {
		result = "-" + result
	}
	return result
}
