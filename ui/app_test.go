package ui

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jibarix/map-viz/internal/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Config{
		Analysis: config.AnalysisConfig{
			ValidSaleThreshold: 5000,
			LooseSaleThreshold: 1000,
			PriceCap:           2000000,
			MaxNetworkNodes:    50,
			FlowTopN:           5,
		},
		Map: config.MapConfig{SampleCap: 2000, SampleSeed: 42},
	}
	app, err := NewApp(cfg, nil)
	require.NoError(t, err)
	return app
}

func uploadRequest(t *testing.T, filename, contents string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(contents))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestIndexRendersTabs(t *testing.T) {
	app := newTestApp(t)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ownership Network")
	assert.Contains(t, rec.Body.String(), "demo dataset")
}

func TestAboutPage(t *testing.T) {
	app := newTestApp(t)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/about", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUploadRejectsNonCSV(t *testing.T) {
	app := newTestApp(t)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, uploadRequest(t, "data.xlsx", "not a csv"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Please upload a CSV file.", decodeBody(t, rec)["message"])
}

func TestUploadWithoutFile(t *testing.T) {
	app := newTestApp(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(""))
	app.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadBindsSession(t *testing.T) {
	app := newTestApp(t)
	csv := "CATASTRO,MUNICIPIO,SALESAMT,SALESDTTM_FORMATTED\n" +
		"001-01,SAN JUAN,150000,2021-03-15\n" +
		"002-02,PONCE,2000,2021-04-01\n" +
		"003-03,SAN JUAN,90000,2022-06-20\n"

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, uploadRequest(t, "sales.csv", csv))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Successfully loaded sales.csv with 3 rows", decodeBody(t, rec)["message"])

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	// The session cookie binds subsequent API calls to the upload.
	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "sales.csv", body["filename"])
	summary := body["summary"].(map[string]interface{})
	assert.Equal(t, float64(3), summary["total_properties"])
	assert.Equal(t, float64(2), summary["valid_sales"])
	assert.Equal(t, "SAN JUAN", summary["main_municipality"])
}

func TestMapEndpointWithoutCoordinates(t *testing.T) {
	app := newTestApp(t)
	csv := "CATASTRO,SALESAMT\n001-01,150000\n"

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, uploadRequest(t, "nocoords.csv", csv))
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/api/map", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body, "message")
	assert.NotContains(t, body, "points")
}

func TestSummaryUsesDemoDatasetByDefault(t *testing.T) {
	app := newTestApp(t)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/summary", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "demo dataset", body["filename"])
	summary := body["summary"].(map[string]interface{})
	assert.Equal(t, float64(500), summary["total_properties"])
}

func TestUploadHistoryWithoutCatalog(t *testing.T) {
	app := newTestApp(t)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Upload history is not configured.", decodeBody(t, rec)["message"])
}
