package ui

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/google/uuid"

	"github.com/jibarix/map-viz/adapters/tabular"
	"github.com/jibarix/map-viz/internal/ingest"
	"github.com/jibarix/map-viz/ports"
)

// tab describes one dashboard tab for the shell template.
type tab struct {
	ID    string
	Label string
	API   string
}

var tabs = []tab{
	{ID: "summary", Label: "Overview", API: "/api/summary"},
	{ID: "yearly", Label: "Yearly Trends", API: "/api/yearly"},
	{ID: "types", Label: "Property Types", API: "/api/types"},
	{ID: "components", Label: "Value Components", API: "/api/components"},
	{ID: "prices", Label: "Price Distribution", API: "/api/prices"},
	{ID: "area", Label: "Area Analysis", API: "/api/area"},
	{ID: "spatial", Label: "Spatial Grid", API: "/api/spatial"},
	{ID: "distance", Label: "Distance", API: "/api/distance"},
	{ID: "monthly", Label: "Price Trends", API: "/api/monthly"},
	{ID: "network", Label: "Ownership Network", API: "/api/network"},
	{ID: "map", Label: "Map", API: "/api/map"},
}

// handleIndex renders the dashboard shell
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := a.sessions.get(r)
	data := map[string]interface{}{
		"Tabs":       tabs,
		"Filename":   sess.filename,
		"RowCount":   sess.table.Len(),
		"ValidSales": len(sess.table.ValidSales()),
	}
	a.render(w, "index.html", data)
}

// handleAbout renders the embedded methodology notes as HTML
func (a *App) handleAbout(w http.ResponseWriter, r *http.Request) {
	src, err := embeddedFiles.ReadFile("templates/about.md")
	if err != nil {
		http.Error(w, "about page unavailable", http.StatusInternalServerError)
		return
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	body := markdown.ToHTML(src, p, renderer)

	a.render(w, "about.html", map[string]interface{}{
		"Tabs": tabs,
		"Body": template.HTML(body),
	})
}

// handleUpload accepts a CSV upload, cleans it, and binds the result
// to the caller's session.
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		a.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No file provided."})
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		a.writeJSON(w, http.StatusOK, map[string]string{"message": "Please upload a CSV file."})
		return
	}

	data, err := tabular.ReadCSV(file)
	if err != nil {
		a.writeJSON(w, http.StatusOK, map[string]string{
			"message": fmt.Sprintf("There was an error processing this file: %v", err),
		})
		return
	}

	table := ingest.Clean(data, a.cfg.Analysis.ValidSaleThreshold)
	a.sessions.put(w, r, table, header.Filename)
	a.recordUpload(r.Context(), header.Filename, table.Len(), len(table.ValidSales()),
		table.Caps.HasCoordinates, table.Caps.HasParties)

	a.writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Successfully loaded %s with %d rows", header.Filename, table.Len()),
	})
}

// recordUpload writes the upload to the catalog when one is
// configured. Catalog failures are logged, never surfaced.
func (a *App) recordUpload(ctx context.Context, filename string, rows, validSales int, hasCoords, hasTxs bool) {
	if a.catalog == nil {
		return
	}
	entry := ports.CatalogEntry{
		ID:              uuid.New().String(),
		Filename:        filename,
		RowCount:        rows,
		ValidSales:      validSales,
		HasCoordinates:  hasCoords,
		HasTransactions: hasTxs,
		UploadedAt:      time.Now().UTC(),
	}
	if err := a.catalog.Record(ctx, entry); err != nil {
		log.Printf("[UI] Failed to record upload in catalog: %v", err)
	}
}

// handleUploadHistory lists recent uploads from the catalog
func (a *App) handleUploadHistory(w http.ResponseWriter, r *http.Request) {
	if a.catalog == nil {
		a.writeJSON(w, http.StatusOK, map[string]string{"message": "Upload history is not configured."})
		return
	}
	entries, err := a.catalog.Recent(r.Context(), 20)
	if err != nil {
		log.Printf("[UI] Failed to list uploads: %v", err)
		a.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to load upload history."})
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{"uploads": entries})
}
