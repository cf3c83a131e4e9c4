// Copyright 2025 Shiftcal Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shiftcal/rosterd"
	"github.com/shiftcal/rosterd/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestAPI(t *testing.T) (*API, *rosterd.Service) {
	t.Helper()
	db, err := database.New(&database.Config{
		DataDir: t.TempDir(),
	})
	require.NoError(t, err)
	svc, err := rosterd.NewService(
		rosterd.WithDatabase(db),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = svc.Close()
	})
	return New(APIConfig{}, svc, nil), svc
}

func testWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	header := []any{
		"duty date",
		"full professional",
		"CS complaint",
		"CS fault",
		"PS professional",
	}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func seedViaImport(t *testing.T, a *API) {
	t.Helper()
	wb := testWorkbook(t, [][]any{
		{"2026-09-01", "张三", "李四", "王五", "赵六"},
		{"2026-09-02", "孙七", "周八", "吴九", "郑十"},
	})
	body, err := json.Marshal(ImportRequest{
		FileContent: base64.StdEncoding.EncodeToString(wb),
	})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(
		http.MethodPost,
		"/api/v1/schedule/import",
		bytes.NewReader(body),
	)
	a.handleImport(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestStartStop(t *testing.T) {
	db, err := database.New(&database.Config{
		DataDir: t.TempDir(),
	})
	require.NoError(t, err)
	svc, err := rosterd.NewService(
		rosterd.WithDatabase(db),
	)
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	a := New(
		APIConfig{ListenAddress: "127.0.0.1:0"},
		svc,
		nil,
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, a.Start(ctx))

	// A second start on the same instance is refused
	err = a.Start(ctx)
	require.ErrorContains(t, err, "already started")

	require.NoError(t, a.Stop(context.Background()))
	// Stopping again is a no-op
	require.NoError(t, a.Stop(context.Background()))
}

func TestHandleRoot(t *testing.T) {
	a, _ := newTestAPI(t)
	rec := httptest.NewRecorder()
	a.handleRoot(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp RootResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "rosterd", resp.Service)
	assert.Equal(t, apiVersion, resp.Version)
}

func TestHandleHealth(t *testing.T) {
	a, _ := newTestAPI(t)
	rec := httptest.NewRecorder()
	a.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsHealthy)
}

func dutyRequest(date string) *http.Request {
	req := httptest.NewRequest(
		http.MethodGet,
		"/api/v1/duty/"+date,
		nil,
	)
	req.SetPathValue("date", date)
	return req
}

func TestHandleGetDuty(t *testing.T) {
	a, _ := newTestAPI(t)
	seedViaImport(t, a)

	rec := httptest.NewRecorder()
	a.handleGetDuty(rec, dutyRequest("2026-09-01"))
	require.Equal(t, http.StatusOK, rec.Code)
	var result rosterd.DutyResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Found)
	require.NotNil(t, result.Schedule)
	require.NotNil(t, result.Schedule.FullProfessional)
	assert.Equal(t, "张三", *result.Schedule.FullProfessional)
}

func TestHandleGetDutyNotFound(t *testing.T) {
	a, _ := newTestAPI(t)
	seedViaImport(t, a)

	rec := httptest.NewRecorder()
	a.handleGetDuty(rec, dutyRequest("2030-01-01"))
	require.Equal(t, http.StatusNotFound, rec.Code)
	var result rosterd.DutyResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Found)
}

func TestHandleGetDutyEmptyStore(t *testing.T) {
	a, _ := newTestAPI(t)

	rec := httptest.NewRecorder()
	a.handleGetDuty(rec, dutyRequest("2026-09-01"))
	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "empty_store", resp.Error)
}

func TestHandleGetDutyBadDate(t *testing.T) {
	a, _ := newTestAPI(t)
	seedViaImport(t, a)

	rec := httptest.NewRecorder()
	a.handleGetDuty(rec, dutyRequest("not-a-date"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation", resp.Error)
}

func TestHandleImportRejectsAmbiguousBody(t *testing.T) {
	a, _ := newTestAPI(t)

	// Neither field
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(
		http.MethodPost,
		"/api/v1/schedule/import",
		bytes.NewReader([]byte(`{}`)),
	)
	a.handleImport(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Both fields
	body, err := json.Marshal(ImportRequest{
		FilePath:    "/tmp/roster.xlsx",
		FileContent: base64.StdEncoding.EncodeToString([]byte("x")),
	})
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(
		http.MethodPost,
		"/api/v1/schedule/import",
		bytes.NewReader(body),
	)
	a.handleImport(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleImportBadBase64(t *testing.T) {
	a, _ := newTestAPI(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(
		http.MethodPost,
		"/api/v1/schedule/import",
		bytes.NewReader([]byte(`{"file_content":"not base64!"}`)),
	)
	a.handleImport(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "base64")
}

func TestHandleSwap(t *testing.T) {
	a, _ := newTestAPI(t)
	seedViaImport(t, a)

	body, err := json.Marshal(SwapRequest{
		SwapInfo1: rosterd.SwapIdentifier{
			DutyDate:     "2026-09-01",
			EmployeeName: "张三",
		},
		SwapInfo2: rosterd.SwapIdentifier{
			DutyDate:     "2026-09-02",
			EmployeeName: "周八",
		},
	})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(
		http.MethodPost,
		"/api/v1/schedule/swap",
		bytes.NewReader(body),
	)
	a.handleSwap(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result rosterd.SwapResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "张三", result.Swap1.OriginalEmployee)
	assert.Equal(t, "周八", result.Swap1.NewEmployee)
}

func TestHandleSwapAmbiguousRole(t *testing.T) {
	a, _ := newTestAPI(t)
	wb := testWorkbook(t, [][]any{
		{"2026-09-01", "张三", "张三", "王五", "赵六"},
		{"2026-09-02", "孙七", "周八", "吴九", "郑十"},
	})
	body, err := json.Marshal(ImportRequest{
		FileContent: base64.StdEncoding.EncodeToString(wb),
	})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(
		http.MethodPost,
		"/api/v1/schedule/import",
		bytes.NewReader(body),
	)
	a.handleImport(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body, err = json.Marshal(SwapRequest{
		SwapInfo1: rosterd.SwapIdentifier{
			DutyDate:     "2026-09-01",
			EmployeeName: "张三",
		},
		SwapInfo2: rosterd.SwapIdentifier{
			DutyDate:     "2026-09-02",
			EmployeeName: "周八",
		},
	})
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(
		http.MethodPost,
		"/api/v1/schedule/swap",
		bytes.NewReader(body),
	)
	a.handleSwap(rec, req)
	require.Equal(t, http.StatusConflict, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ambiguous_role", resp.Error)
}

func TestHandleSwapLogs(t *testing.T) {
	a, svc := newTestAPI(t)
	seedViaImport(t, a)
	_, err := svc.SwapByName(
		rosterd.SwapIdentifier{DutyDate: "2026-09-01", EmployeeName: "王五"},
		rosterd.SwapIdentifier{DutyDate: "2026-09-02", EmployeeName: "郑十"},
	)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/swaplogs", nil)
	a.handleSwapLogs(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var report rosterd.SwapLogReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Equal(t, 1, report.Count)
	assert.Contains(t, report.Logs[0], "王五")
}
