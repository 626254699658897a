package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jobledger/internal/application/analytics"
	"github.com/jhoicas/jobledger/internal/application/backup"
	"github.com/jhoicas/jobledger/internal/application/billing"
	"github.com/jhoicas/jobledger/internal/application/dto"
	"github.com/jhoicas/jobledger/internal/application/usecase"
	"github.com/jhoicas/jobledger/internal/domain/entity"
	"github.com/jhoicas/jobledger/internal/infrastructure/pdf"
	"github.com/jhoicas/jobledger/internal/infrastructure/preview"
	"github.com/jhoicas/jobledger/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/jobledger/internal/interfaces/http"
	"github.com/jhoicas/jobledger/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func buildTestApp(t *testing.T, localOnly bool) *fiber.App {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	runner := sqlite.NewTxRunner(db)
	log := logger.Nop()
	settingsUC := usecase.NewSettingsUseCase(runner, entity.Settings{
		Language:              "cs",
		CompanyName:           "RAVITO",
		Currency:              "Kč",
		DefaultHourRate:       decimal.NewFromInt(650),
		InvoiceDueDaysDefault: 14,
	})
	_, err = settingsUC.EnsureDefaults(ctx)
	require.NoError(t, err)

	renderer, err := preview.NewRenderer()
	require.NoError(t, err)
	invoiceUC := billing.NewInvoiceUseCase(runner, settingsUC, billing.NewScopeLocker(), log)

	return apphttp.NewApp(apphttp.RouterDeps{
		JobUC:      usecase.NewJobUseCase(runner, nil, log),
		SettingsUC: settingsUC,
		InvoiceUC:  invoiceUC,
		DocumentUC: billing.NewDocumentUseCase(runner, invoiceUC, pdf.NewMarotoPDFGenerator(), renderer),
		OverviewUC: analytics.NewOverviewUseCase(runner),
		BackupUC:   backup.NewUseCase(runner, log),
		Log:        log,
		LocalOnly:  localOnly,
	})
}

func do(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createJobWithWork(t *testing.T, app *fiber.App, title string) string {
	t.Helper()
	resp := do(t, app, http.MethodPost, "/api/jobs", dto.CreateJobRequest{Title: title})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	job := decode[dto.JobResponse](t, resp)

	resp = do(t, app, http.MethodPost, "/api/jobs/"+job.ID+"/entries", dto.EntryRequest{
		WorkDate: "2025-01-10", TimeFrom: "08:00", TimeTo: "12:00", Activity: "montáž",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return job.ID
}

func prepare(t *testing.T, app *fiber.App, jobID string) *http.Response {
	t.Helper()
	return do(t, app, http.MethodPost, "/api/jobs/"+jobID+"/invoice/prepare", dto.PrepareInvoiceRequest{IssueDate: "2025-01-20"})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildTestApp(t, false)
	resp := do(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLocalOnly_RejectsNonLoopback(t *testing.T) {
	app := buildTestApp(t, true)
	// app.Test usa una conexión falsa con dirección 0.0.0.0
	resp := do(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestInvoiceLifecycle(t *testing.T) {
	app := buildTestApp(t, false)
	a := createJobWithWork(t, app, "Alpha")
	b := createJobWithWork(t, app, "Beta")

	resp := prepare(t, app, a)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	invA := decode[dto.InvoiceResponse](t, resp)
	assert.Equal(t, "0001/01,2025", invA.NumberText)
	assert.Equal(t, "2600", invA.Total.String())
	require.NotNil(t, invA.DueDate)
	assert.Equal(t, "2025-02-03", *invA.DueDate)

	resp = prepare(t, app, b)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "0002/01,2025", decode[dto.InvoiceResponse](t, resp).NumberText)

	// Preparar dos veces no consume otro número.
	resp = prepare(t, app, b)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Cancelar A: B baja a 0001.
	resp = do(t, app, http.MethodPost, "/api/jobs/"+a+"/invoice/cancel", dto.CancelInvoiceRequest{Reason: "chyba"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "draft", decode[dto.InvoiceResponse](t, resp).State)

	resp = do(t, app, http.MethodGet, "/api/jobs/"+b+"/invoice", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "0001/01,2025", decode[dto.InvoiceResponse](t, resp).NumberText)

	resp = do(t, app, http.MethodPost, "/api/jobs/"+b+"/invoice/issue", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	issued := decode[dto.InvoiceResponse](t, resp)
	assert.Equal(t, "issued", issued.State)
	assert.True(t, issued.Locked)

	resp = do(t, app, http.MethodPost, "/api/jobs/"+b+"/invoice/cancel", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "NOT_PREPARED", decode[dto.ErrorResponse](t, resp).Code)

	resp = do(t, app, http.MethodGet, "/api/jobs/"+b, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "awaiting_payment", decode[dto.JobDetailResponse](t, resp).Job.Status)

	resp = do(t, app, http.MethodGet, "/api/overview", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	overview := decode[dto.OverviewResponse](t, resp)
	assert.Equal(t, "2600", overview.UnpaidTotal.String())
	assert.Equal(t, 1, overview.JobsByStatus["awaiting_payment"])

	resp = do(t, app, http.MethodPost, "/api/jobs/"+b+"/paid", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPrepare_EmptyInvoice(t *testing.T) {
	app := buildTestApp(t, false)
	resp := do(t, app, http.MethodPost, "/api/jobs", dto.CreateJobRequest{Title: "Empty"})
	job := decode[dto.JobResponse](t, resp)

	resp = prepare(t, app, job.ID)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "EMPTY_INVOICE", decode[dto.ErrorResponse](t, resp).Code)
}

func TestPrepare_BadDate(t *testing.T) {
	app := buildTestApp(t, false)
	id := createJobWithWork(t, app, "Alpha")
	resp := do(t, app, http.MethodPost, "/api/jobs/"+id+"/invoice/prepare", dto.PrepareInvoiceRequest{IssueDate: "20.01.2025"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestNotFound(t *testing.T) {
	app := buildTestApp(t, false)
	resp := do(t, app, http.MethodGet, "/api/jobs/missing", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp = do(t, app, http.MethodPost, "/api/jobs/missing/invoice/issue", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDocuments_LockInvoice(t *testing.T) {
	app := buildTestApp(t, false)
	id := createJobWithWork(t, app, "Alpha")
	require.Equal(t, fiber.StatusOK, prepare(t, app, id).StatusCode)

	resp := do(t, app, http.MethodGet, "/api/jobs/"+id+"/invoice/pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "faktura_0001-01-2025.pdf")

	resp = do(t, app, http.MethodGet, "/api/jobs/"+id+"/invoice/preview", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "0001/01,2025")

	// Exportada: ya no se puede cancelar.
	resp = do(t, app, http.MethodPost, "/api/jobs/"+id+"/invoice/cancel", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "LOCKED", decode[dto.ErrorResponse](t, resp).Code)
}

func TestEntries_UpdateAndDelete(t *testing.T) {
	app := buildTestApp(t, false)
	id := createJobWithWork(t, app, "Alpha")

	resp := do(t, app, http.MethodGet, "/api/jobs/"+id+"/entries", nil)
	entries := decode[[]dto.EntryResponse](t, resp)
	require.Len(t, entries, 1)

	to := "13:00"
	resp = do(t, app, http.MethodPut, "/api/entries/"+entries[0].ID, dto.UpdateEntryRequest{TimeTo: &to})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 300, decode[dto.EntryResponse](t, resp).MinutesTotal)

	bad := "25:00"
	resp = do(t, app, http.MethodPut, "/api/entries/"+entries[0].ID, dto.UpdateEntryRequest{TimeTo: &bad})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp = do(t, app, http.MethodDelete, "/api/entries/"+entries[0].ID, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/jobs/"+id+"/invoice", nil)
	assert.True(t, decode[dto.InvoiceResponse](t, resp).Total.IsZero())
}

func TestSettings_Update(t *testing.T) {
	app := buildTestApp(t, false)
	format := "rrrr-cccc"
	resp := do(t, app, http.MethodPut, "/api/settings", dto.UpdateSettingsRequest{InvoiceNumberFormat: &format})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, format, decode[dto.SettingsResponse](t, resp).InvoiceNumberFormat)

	noSeq := "rrrr-mm"
	resp = do(t, app, http.MethodPut, "/api/settings", dto.UpdateSettingsRequest{InvoiceNumberFormat: &noSeq})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestBackup_ExportRestore(t *testing.T) {
	app := buildTestApp(t, false)
	createJobWithWork(t, app, "Alpha")

	resp := do(t, app, http.MethodGet, "/api/backup", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	other := buildTestApp(t, false)
	req := httptest.NewRequest(http.MethodPost, "/api/backup/restore", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err = other.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[dto.RestoreResponse](t, resp).Jobs)

	resp = do(t, other, http.MethodGet, "/api/jobs?q=alpha", nil)
	assert.Len(t, decode[dto.JobListResponse](t, resp).Items, 1)

	req = httptest.NewRequest(http.MethodPost, "/api/backup/restore", strings.NewReader(`{"app":"ravito-denik","schemaVersion":1}`))
	resp, err = other.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
