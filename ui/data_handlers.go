package ui

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"github.com/jibarix/map-viz/domain/core"
	"github.com/jibarix/map-viz/internal/analytics"
	"github.com/jibarix/map-viz/internal/mapdata"
	"github.com/jibarix/map-viz/internal/network"
)

// render executes a template into a buffer first so template errors
// surface as a clean 500 instead of a half-written page.
func (a *App) render(w http.ResponseWriter, name string, data interface{}) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("[UI] Template error for %s: %v", name, err)
		http.Error(w, "template rendering failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (a *App) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[UI] Failed to encode response: %v", err)
	}
}

// writeResult maps a derivation result onto the wire: data on success,
// an informational message when the dataset lacks what the tab needs,
// and a 500 only for genuine computation failures.
func (a *App) writeResult(w http.ResponseWriter, v interface{}, err error) {
	if err != nil {
		if core.IsNoData(err) {
			a.writeJSON(w, http.StatusOK, map[string]string{"message": err.Error()})
			return
		}
		log.Printf("[UI] Derivation failed: %v", err)
		a.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	a.writeJSON(w, http.StatusOK, v)
}

func (a *App) handleSummary(w http.ResponseWriter, r *http.Request) {
	sess := a.sessions.get(r)
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"filename": sess.filename,
		"summary":  analytics.Summarize(sess.table),
	})
}

func (a *App) handleYearly(w http.ResponseWriter, r *http.Request) {
	stats, err := analytics.YearlyStats(a.sessions.get(r).table)
	a.writeResult(w, map[string]interface{}{"years": stats}, err)
}

func (a *App) handlePropertyTypes(w http.ResponseWriter, r *http.Request) {
	stats, err := analytics.PropertyTypeStats(a.sessions.get(r).table)
	a.writeResult(w, map[string]interface{}{"types": stats}, err)
}

func (a *App) handleComponents(w http.ResponseWriter, r *http.Request) {
	comps, err := analytics.ComponentBreakdown(a.sessions.get(r).table)
	a.writeResult(w, map[string]interface{}{"components": comps}, err)
}

func (a *App) handlePriceDistribution(w http.ResponseWriter, r *http.Request) {
	prices, err := analytics.PriceDistribution(a.sessions.get(r).table, a.cfg.Analysis.PriceCap)
	a.writeResult(w, map[string]interface{}{"prices": prices}, err)
}

func (a *App) handleArea(w http.ResponseWriter, r *http.Request) {
	t := a.sessions.get(r).table
	rows, err := analytics.PrepareArea(t, a.cfg.Analysis.PriceCap, analytics.OutlierTrimPercentile)
	if err != nil {
		a.writeResult(w, nil, err)
		return
	}
	summary, err := analytics.SummarizeArea(rows)
	if err != nil {
		a.writeResult(w, nil, err)
		return
	}
	bins, err := analytics.AreaBinStats(rows, 5)
	if err != nil {
		a.writeResult(w, nil, err)
		return
	}
	a.writeResult(w, map[string]interface{}{"summary": summary, "bins": bins}, nil)
}

// spatialPoint is the wire shape of one plotted coordinate. Missing
// sale amounts become zero so the payload stays JSON-encodable.
type spatialPoint struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	SaleAmount   float64 `json:"sale_amount"`
	PriceBracket string  `json:"price_bracket,omitempty"`
}

func (a *App) handleSpatial(w http.ResponseWriter, r *http.Request) {
	t := a.sessions.get(r).table
	rows, err := analytics.PrepareSpatial(t)
	if err != nil {
		a.writeResult(w, nil, err)
		return
	}
	cells, err := analytics.SpatialGridStats(rows)
	if err != nil {
		a.writeResult(w, nil, err)
		return
	}
	points := make([]spatialPoint, 0, len(rows))
	for _, row := range rows {
		p := spatialPoint{X: row.Record.XCoord, Y: row.Record.YCoord, PriceBracket: row.PriceBracket}
		if row.Record.ValidSale {
			p.SaleAmount = row.Record.SaleAmount
		}
		points = append(points, p)
	}
	a.writeResult(w, map[string]interface{}{"points": points, "grid": cells}, nil)
}

func (a *App) handleDistance(w http.ResponseWriter, r *http.Request) {
	t := a.sessions.get(r).table
	recs, err := analytics.PrepareDistance(t)
	if err != nil {
		a.writeResult(w, nil, err)
		return
	}
	bins, err := analytics.DistanceBinStats(recs, 5)
	if err != nil {
		a.writeResult(w, nil, err)
		return
	}
	detail, err := analytics.DistanceDetailStats(recs)
	if err != nil {
		a.writeResult(w, nil, err)
		return
	}
	a.writeResult(w, map[string]interface{}{"bins": bins, "detail": detail}, nil)
}

func (a *App) handleMonthly(w http.ResponseWriter, r *http.Request) {
	months, err := analytics.MonthlyPricePerSqft(a.sessions.get(r).table)
	a.writeResult(w, map[string]interface{}{"months": months}, err)
}

func (a *App) handleNetwork(w http.ResponseWriter, r *http.Request) {
	t := a.sessions.get(r).table
	txs, err := network.TransactionsFrom(t, a.cfg.Analysis.LooseSaleThreshold)
	if err != nil {
		a.writeResult(w, nil, err)
		return
	}
	graph, err := network.Build(txs, a.cfg.Analysis.MaxNetworkNodes)
	a.writeResult(w, graph, err)
}

func (a *App) handleNetworkStats(w http.ResponseWriter, r *http.Request) {
	t := a.sessions.get(r).table
	txs, err := network.TransactionsFrom(t, a.cfg.Analysis.LooseSaleThreshold)
	if err != nil {
		a.writeResult(w, nil, err)
		return
	}
	stats, err := network.Summarize(txs)
	if err != nil {
		a.writeResult(w, nil, err)
		return
	}
	participants, err := network.TopParticipants(txs, 10)
	if err != nil {
		a.writeResult(w, nil, err)
		return
	}
	a.writeResult(w, map[string]interface{}{"stats": stats, "participants": participants}, nil)
}

func (a *App) handleFlow(w http.ResponseWriter, r *http.Request) {
	t := a.sessions.get(r).table
	txs, err := network.TransactionsFrom(t, a.cfg.Analysis.LooseSaleThreshold)
	if err != nil {
		a.writeResult(w, nil, err)
		return
	}
	flow, err := network.FlowAggregate(txs, a.cfg.Analysis.FlowTopN)
	a.writeResult(w, flow, err)
}

func (a *App) handleMap(w http.ResponseWriter, r *http.Request) {
	points, err := mapdata.Prepare(a.sessions.get(r).table, a.cfg.Map.SampleCap, a.cfg.Map.SampleSeed)
	a.writeResult(w, map[string]interface{}{"points": points}, err)
}

func (a *App) handleMapStats(w http.ResponseWriter, r *http.Request) {
	points, err := mapdata.Prepare(a.sessions.get(r).table, a.cfg.Map.SampleCap, a.cfg.Map.SampleSeed)
	if err != nil {
		a.writeResult(w, nil, err)
		return
	}
	a.writeResult(w, mapdata.Summarize(points, a.cfg.Analysis.LooseSaleThreshold), nil)
}
