package transport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saubh/planwise/internal/domain/project"
	"github.com/saubh/planwise/internal/interchange"
	"github.com/saubh/planwise/internal/sqlite"
	"github.com/saubh/planwise/internal/transport"
)

func newTestServer(t *testing.T) (http.Handler, *project.Service) {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())

	svc := project.NewService(sqlite.NewProjectRepository(db), nil)
	require.NoError(t, svc.Load(context.Background()))

	router := transport.NewServer(svc, project.NewValidator(), interchange.NewImporter(svc, nil), nil)
	return router, svc
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	handler, _ := newTestServer(t)
	rec := doJSON(t, handler, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateProject(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/projects", map[string]any{
		"client_name":     "Acme",
		"phone_number":    "9876543210",
		"total_payment":   1000,
		"advance_payment": 200,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var got struct {
		ID              int64   `json:"id"`
		ClientName      string  `json:"client_name"`
		PaymentProgress float64 `json:"payment_progress"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotZero(t, got.ID)
	require.Equal(t, "Acme", got.ClientName)
	require.Equal(t, 0.2, got.PaymentProgress)
}

func TestCreateProjectValidation(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/projects", map[string]any{
		"client_name":     "Acme",
		"total_payment":   100,
		"advance_payment": 500,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "advance cannot exceed total payment")
}

func TestListProjectsWithFilter(t *testing.T) {
	handler, svc := newTestServer(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, project.Project{ClientName: "Ongoing Co", TotalPayment: 100})
	require.NoError(t, err)
	done, err := svc.Add(ctx, project.Project{ClientName: "Done Co", TotalPayment: 100})
	require.NoError(t, err)
	done.IsCompleted = true
	_, err = svc.Update(ctx, done)
	require.NoError(t, err)

	rec := doJSON(t, handler, http.MethodGet, "/projects?filter=completed", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "Done Co", list[0]["client_name"])

	rec = doJSON(t, handler, http.MethodGet, "/projects?q=ongoing", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	rec = doJSON(t, handler, http.MethodGet, "/projects?filter=bogus", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProject(t *testing.T) {
	handler, svc := newTestServer(t)

	created, err := svc.Add(context.Background(), project.Project{ClientName: "Acme", TotalPayment: 100})
	require.NoError(t, err)

	rec := doJSON(t, handler, http.MethodGet, "/projects/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), created.ClientName)

	rec = doJSON(t, handler, http.MethodGet, "/projects/999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/projects/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProject(t *testing.T) {
	handler, svc := newTestServer(t)

	created, err := svc.Add(context.Background(), project.Project{
		ClientName: "Acme", TotalPayment: 1000, AdvancePayment: 200,
	})
	require.NoError(t, err)

	created.IsPaid = true
	created.AdvancePayment = created.TotalPayment
	rec := doJSON(t, handler, http.MethodPut, "/projects/1", created)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		PaymentProgress float64 `json:"payment_progress"`
		IsPaid          bool    `json:"is_paid"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.True(t, got.IsPaid)
	require.Equal(t, 1.0, got.PaymentProgress)

	rec = doJSON(t, handler, http.MethodPut, "/projects/999", created)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProject(t *testing.T) {
	handler, svc := newTestServer(t)

	_, err := svc.Add(context.Background(), project.Project{ClientName: "Acme", TotalPayment: 100})
	require.NoError(t, err)

	rec := doJSON(t, handler, http.MethodDelete, "/projects/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, svc.Projects())

	// Absent id deletes as a no-op.
	rec = doJSON(t, handler, http.MethodDelete, "/projects/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestStats(t *testing.T) {
	handler, svc := newTestServer(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, project.Project{ClientName: "A", TotalPayment: 1000, AdvancePayment: 200})
	require.NoError(t, err)
	_, err = svc.Add(ctx, project.Project{ClientName: "B", TotalPayment: 500, AdvancePayment: 500, IsPaid: true})
	require.NoError(t, err)

	rec := doJSON(t, handler, http.MethodGet, "/projects/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Totals project.Totals `json:"totals"`
		Counts map[string]int `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, 1500.0, got.Totals.TotalPayment)
	require.Equal(t, 700.0, got.Totals.AdvancePayment)
	require.Equal(t, 2, got.Counts["all"])
	require.Equal(t, 1, got.Counts["unpaid"])
}

func TestExportAndImport(t *testing.T) {
	handler, svc := newTestServer(t)

	_, err := svc.Add(context.Background(), project.Project{
		ClientName: "Acme", TotalPayment: 1000, AdvancePayment: 200,
	})
	require.NoError(t, err)

	rec := doJSON(t, handler, http.MethodGet, "/projects/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	require.True(t, strings.HasPrefix(rec.Body.String(), interchange.Header))

	// Import the export back in; the row is added with a fresh id.
	req := httptest.NewRequest(http.MethodPost, "/projects/import", strings.NewReader(rec.Body.String()))
	importRec := httptest.NewRecorder()
	handler.ServeHTTP(importRec, req)
	require.Equal(t, http.StatusOK, importRec.Code)

	var result interchange.ImportResult
	require.NoError(t, json.Unmarshal(importRec.Body.Bytes(), &result))
	require.Equal(t, 1, result.Imported)
	require.Len(t, svc.Projects(), 2)
}

func TestMetricsEndpoint(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "planwise_store_operations_total")
}
