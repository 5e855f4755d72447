// Command report runs the full analysis pipeline over a transaction
// export and writes a multi-sheet XLSX workbook, without the web UI.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/jibarix/map-viz/adapters/tabular"
	"github.com/jibarix/map-viz/domain/core"
	"github.com/jibarix/map-viz/domain/property"
	"github.com/jibarix/map-viz/internal/analytics"
	"github.com/jibarix/map-viz/internal/config"
	"github.com/jibarix/map-viz/internal/ingest"
	"github.com/jibarix/map-viz/internal/network"
)

func main() {
	input := flag.String("input", "", "input CSV or XLSX file")
	output := flag.String("output", "report.xlsx", "output workbook path")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: report -input data.csv [-output report.xlsx]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	data, err := tabular.NewDataReader(*input).ReadData()
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *input, err)
	}

	table := ingest.Clean(data, cfg.Analysis.ValidSaleThreshold)
	log.Printf("[Report] Loaded %d records from %s", table.Len(), *input)

	sections, err := computeSections(table, cfg)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	if err := writeWorkbook(*output, table, sections); err != nil {
		log.Fatalf("Failed to write %s: %v", *output, err)
	}
	log.Printf("[Report] Wrote %s", *output)
}

// sections holds every derivable report section. Nil slices mean the
// dataset could not support that section.
type sections struct {
	summary      analytics.Summary
	yearly       []analytics.YearlyStat
	types        []analytics.TypeStat
	components   []analytics.Component
	areaBins     []analytics.AreaBin
	grid         []analytics.GridCell
	distanceBins []analytics.DistanceBin
	monthly      []analytics.MonthlyStat
	netStats     *network.Stats
	participants *network.Participants
}

// computeSections runs the independent derivations concurrently.
// Missing-data results clear a section; only computation failures
// abort the report.
func computeSections(t *property.Table, cfg *config.Config) (*sections, error) {
	s := &sections{summary: analytics.Summarize(t)}

	var g errgroup.Group

	g.Go(func() error {
		var err error
		s.yearly, err = analytics.YearlyStats(t)
		return ignoreNoData(err)
	})
	g.Go(func() error {
		var err error
		s.types, err = analytics.PropertyTypeStats(t)
		return ignoreNoData(err)
	})
	g.Go(func() error {
		var err error
		s.components, err = analytics.ComponentBreakdown(t)
		return ignoreNoData(err)
	})
	g.Go(func() error {
		rows, err := analytics.PrepareArea(t, cfg.Analysis.PriceCap, analytics.OutlierTrimPercentile)
		if err != nil {
			return ignoreNoData(err)
		}
		s.areaBins, err = analytics.AreaBinStats(rows, 5)
		return ignoreNoData(err)
	})
	g.Go(func() error {
		rows, err := analytics.PrepareSpatial(t)
		if err != nil {
			return ignoreNoData(err)
		}
		s.grid, err = analytics.SpatialGridStats(rows)
		return ignoreNoData(err)
	})
	g.Go(func() error {
		recs, err := analytics.PrepareDistance(t)
		if err != nil {
			return ignoreNoData(err)
		}
		s.distanceBins, err = analytics.DistanceBinStats(recs, 5)
		return ignoreNoData(err)
	})
	g.Go(func() error {
		var err error
		s.monthly, err = analytics.MonthlyPricePerSqft(t)
		return ignoreNoData(err)
	})
	g.Go(func() error {
		txs, err := network.TransactionsFrom(t, cfg.Analysis.LooseSaleThreshold)
		if err != nil {
			return ignoreNoData(err)
		}
		if s.netStats, err = network.Summarize(txs); err != nil {
			return ignoreNoData(err)
		}
		s.participants, err = network.TopParticipants(txs, 10)
		return ignoreNoData(err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}

func ignoreNoData(err error) error {
	if err == nil || core.IsNoData(err) {
		return nil
	}
	return err
}

func writeWorkbook(path string, t *property.Table, s *sections) error {
	f := excelize.NewFile()
	defer f.Close()

	writeSummarySheet(f, t, s.summary)

	if s.yearly != nil {
		sheet := addSheet(f, "Yearly", []string{"Year", "Sales", "Avg Price", "Median Price", "Min Price", "Max Price"})
		for i, y := range s.yearly {
			setRow(f, sheet, i+2, y.Year, y.SalesCount, y.AvgPrice, y.MedianPrice, y.MinPrice, y.MaxPrice)
		}
	}
	if s.types != nil {
		sheet := addSheet(f, "Property Types", []string{"Type", "Sales", "Avg Price", "Median Price", "Avg Value"})
		for i, ts := range s.types {
			setRow(f, sheet, i+2, ts.PropertyType, ts.SalesCount, ts.AvgSalePrice, ts.MedianSalePrice, ts.AvgValue)
		}
	}
	if s.components != nil {
		sheet := addSheet(f, "Value Components", []string{"Component", "Avg Value"})
		for i, c := range s.components {
			setRow(f, sheet, i+2, c.Name, c.Value)
		}
	}
	if s.areaBins != nil {
		sheet := addSheet(f, "Area Analysis", []string{"Area Range", "Properties", "Avg Price", "Avg $/sqft", "Median $/sqft"})
		for i, b := range s.areaBins {
			setRow(f, sheet, i+2, b.AreaRange, b.PropertyCount, b.AvgPrice, b.AvgPricePerSqft, b.MedianPricePerSqft)
		}
	}
	if s.grid != nil {
		sheet := addSheet(f, "Spatial Grid", []string{"X Range", "Y Range", "Properties", "Avg Price", "Median Price"})
		for i, c := range s.grid {
			setRow(f, sheet, i+2, c.XRange, c.YRange, c.PropertyCount, c.AvgPrice, c.MedianPrice)
		}
	}
	if s.distanceBins != nil {
		sheet := addSheet(f, "Distance", []string{"Distance Range", "Sales", "Avg Price", "Median Price", "Avg Distance"})
		for i, b := range s.distanceBins {
			setRow(f, sheet, i+2, b.DistanceRange, b.PropertyCount, b.AvgPrice, b.MedianPrice, b.AvgDistance)
		}
	}
	if s.monthly != nil {
		sheet := addSheet(f, "Price Trends", []string{"Month", "Sales", "Avg Price", "Avg $/sqft", "Median $/sqft"})
		for i, m := range s.monthly {
			setRow(f, sheet, i+2, m.YearMonth, m.SaleCount, m.AvgPrice, m.AvgPricePerSqft, m.MedianPricePerSqft)
		}
	}
	if s.netStats != nil {
		sheet := addSheet(f, "Network", []string{"Metric", "Value"})
		rows := [][]interface{}{
			{"Transactions", s.netStats.Transactions},
			{"Total Value", s.netStats.TotalValue},
			{"Avg Transaction", s.netStats.AvgTransaction},
			{"Unique Sellers", s.netStats.UniqueSellers},
			{"Unique Buyers", s.netStats.UniqueBuyers},
			{"Total Participants", s.netStats.TotalParticipants},
			{"Dual Role", s.netStats.DualRole},
			{"Repeat Sellers", s.netStats.RepeatSellers},
			{"Repeat Buyers", s.netStats.RepeatBuyers},
		}
		for i, row := range rows {
			setRow(f, sheet, i+2, row...)
		}
	}
	if s.participants != nil {
		sheet := addSheet(f, "Top Participants", []string{"Role", "Name", "Transactions", "Total Value"})
		row := 2
		for _, p := range s.participants.SellersByCount {
			setRow(f, sheet, row, "Seller", p.Name, p.Count, p.TotalValue)
			row++
		}
		for _, p := range s.participants.BuyersByCount {
			setRow(f, sheet, row, "Buyer", p.Name, p.Count, p.TotalValue)
			row++
		}
	}

	return f.SaveAs(path)
}

func writeSummarySheet(f *excelize.File, t *property.Table, s analytics.Summary) {
	const sheet = "Sheet1"
	f.SetSheetName(sheet, "Summary")
	setRow(f, "Summary", 1, "Metric", "Value")
	rows := [][]interface{}{
		{"Total Properties", s.TotalProperties},
		{"Properties With Sales", s.PropertiesWithSales},
		{"Valid Sales", s.ValidSales},
		{"Avg Price", s.AvgPrice},
		{"Median Price", s.MedianPrice},
		{"Min Price", s.MinPrice},
		{"Max Price", s.MaxPrice},
		{"Avg Property Value", s.AvgPropertyValue},
		{"Avg Price/Sqft", s.AvgPricePerSqft},
		{"Median Price/Sqft", s.MedianPricePerSqft},
		{"Date Range", s.DateRange},
		{"Main Municipality", s.MainMunicipality},
		{"Records With Coordinates", t.Caps.CoordinateCount},
		{"Records With Distance", t.Caps.DistanceCount},
		{"Records With Area", t.Caps.AreaCount},
	}
	for i, row := range rows {
		setRow(f, "Summary", i+2, row...)
	}
}

func addSheet(f *excelize.File, name string, headers []string) string {
	f.NewSheet(name)
	hs := make([]interface{}, len(headers))
	for i, h := range headers {
		hs[i] = h
	}
	setRow(f, name, 1, hs...)
	return name
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	cell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		log.Printf("[Report] Failed to write row %d on %s: %v", row, sheet, err)
	}
}
