package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fuelpos/internal/config"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(dir, "data")
	cfg.Paths.SnapshotFile = filepath.Join(dir, "data", "dataset.json")
	cfg.Paths.EntriesFile = filepath.Join(dir, "data", "entries.json")
	cfg.Paths.ExportDir = filepath.Join(dir, "data", "exports")
	cfg.Paths.LogsDir = filepath.Join(dir, "logs")
	cfg.Security.RateLimit.Enabled = false
	require.NoError(t, cfg.EnsureDirectories())

	app := &Application{
		Config: cfg,
		Logger: slog.Default(),
	}
	require.NoError(t, app.initializeServices())
	app.setupRouter()
	app.createServer()
	return app
}

// reportWorkbook builds a small sales report xlsx in memory.
func reportWorkbook(t *testing.T) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"BÁO CÁO BÁN HÀNG"},
		{},
		{"STT", "Ngày", "Giờ", "Trạm", "Mặt hàng", "Số lượng", "Đơn giá", "Thành tiền (VND)"},
		{"1", "01/05/2024", "08:15", "Trạm A", "Xăng RON 95", 10.5, 24500, "257.250"},
		{"2", "02/05/2024", "09:05", "Trạm B", "Dầu DO", 15, 20000, "300.000"},
	}
	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", name, cell))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func uploadRequest(t *testing.T, workbook *bytes.Buffer) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "bao_cao.xlsx")
	require.NoError(t, err)
	_, err = fw.Write(workbook.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/dataset", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestApplication_HealthEndpoints(t *testing.T) {
	app := newTestApplication(t)

	for _, path := range []string{"/api/health", "/api/health/live", "/api/health/ready", "/api/version"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestApplication_DatasetLifecycle(t *testing.T) {
	app := newTestApplication(t)

	// No dataset yet
	req := httptest.NewRequest(http.MethodGet, "/api/dataset", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Upload a report
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, uploadRequest(t, reportWorkbook(t)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "bao_cao.xlsx", data["filename"])
	assert.Equal(t, float64(2), data["transactions"])

	// Query transactions
	req = httptest.NewRequest(http.MethodGet, "/api/dataset/transactions", nil)
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["count"])

	// Statistics grouped by day
	req = httptest.NewRequest(http.MethodGet, "/api/dataset/statistics?period=day", nil)
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Clear and verify gone
	req = httptest.NewRequest(http.MethodDelete, "/api/dataset", nil)
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/dataset", nil)
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApplication_EntryLifecycle(t *testing.T) {
	app := newTestApplication(t)

	payload := `{"time":"2024-05-01T08:00:00Z","quantity":20,"pump":"Bơm 1","unit_price":24500}`
	req := httptest.NewRequest(http.MethodPost, "/api/entries", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(490000), data["revenue"])

	req = httptest.NewRequest(http.MethodGet, "/api/entries", nil)
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["count"])

	req = httptest.NewRequest(http.MethodDelete, "/api/entries/1", nil)
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestApplication_MetricsRouteWithoutTelemetry(t *testing.T) {
	app := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestApplication_ServerConfiguration(t *testing.T) {
	app := newTestApplication(t)

	assert.Equal(t, ":8080", app.Server.Addr)
	assert.Equal(t, app.Config.Server.ReadTimeout, app.Server.ReadTimeout)
	assert.Equal(t, app.Config.Server.WriteTimeout, app.Server.WriteTimeout)
	assert.Equal(t, app.Config.Server.IdleTimeout, app.Server.IdleTimeout)
}

func TestApplication_SecurityHeaders(t *testing.T) {
	app := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
