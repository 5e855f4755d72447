// Package tabular reads delimited-text and spreadsheet files into a
// raw header/row structure shared by the ingestion pipeline.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jibarix/map-viz/internal/errors"
)

// Row is one raw record keyed by header name. Values are untrimmed-of-
// type strings exactly as read; the cleaning stage does all coercion.
type Row map[string]string

// Data holds the raw parsed contents of a tabular file.
type Data struct {
	Headers []string
	Rows    []Row
}

// DataReader handles reading CSV and Excel files from disk.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader that handles both Excel and CSV files,
// dispatching on the file extension.
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadData reads the file into structured form.
func (r *DataReader) ReadData() (*Data, error) {
	log.Printf("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	switch r.fileType {
	case "csv":
		return ReadCSV(f)
	case "xlsx":
		return ReadExcel(f)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

// ReadCSV parses comma-separated data with a header row.
func ReadCSV(src io.Reader) (*Data, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ParseFailed("failed to read CSV data", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	return assemble(headers, records[1:]), nil
}

// ReadExcel parses the first sheet of an XLSX workbook.
func ReadExcel(src io.Reader) (*Data, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.ParseFailed("failed to open Excel file", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	log.Printf("[DataReader] Sheet %s read in %.2fms (%d rows)",
		sheets[0], float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("Excel file must have at least a header row and one data row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	return assemble(headers, rows[1:]), nil
}

// assemble converts positional records to header-keyed rows. Cells past
// the header width are dropped; short records leave the remaining
// headers unset.
func assemble(headers []string, records [][]string) *Data {
	rows := make([]Row, len(records))
	for i, record := range records {
		row := make(Row, len(headers))
		for j, value := range record {
			if j < len(headers) {
				row[headers[j]] = strings.TrimSpace(value)
			}
		}
		rows[i] = row
	}
	return &Data{Headers: headers, Rows: rows}
}

// HasColumn reports whether the named header is present.
func (d *Data) HasColumn(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}
