package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safdamla/pressbook/internal/domain/models"
	"github.com/safdamla/pressbook/internal/service/book"
)

type memStore struct {
	snap models.Snapshot
}

func (m *memStore) Read(ctx context.Context) (models.Snapshot, error) { return m.snap, nil }
func (m *memStore) Write(ctx context.Context, snap models.Snapshot) error {
	m.snap = snap
	return nil
}

func newTestRouter() (*gin.Engine, *book.Service) {
	gin.SetMode(gin.TestMode)
	svc := book.NewService(&memStore{snap: models.EmptySnapshot()}, nil)
	h := NewLedgerHandler(svc, nil)
	rep := NewReportHandler(svc, nil)

	r := gin.New()
	r.GET("/api/customers", h.ListCustomers)
	r.POST("/api/customers", h.SaveCustomer)
	r.GET("/api/customers/:id", h.GetCustomer)
	r.POST("/api/customers/:id/payments", h.CollectPayment)
	r.DELETE("/api/customers/:id", h.DeleteCustomer)
	r.GET("/api/transactions", h.ListTransactions)
	r.POST("/api/transactions", h.SaveTransaction)
	r.GET("/api/transactions/:id/receipt", h.TransactionReceipt)
	r.POST("/api/tin-purchases", h.SaveTinPurchase)
	r.GET("/api/prices", h.GetPrices)
	r.GET("/api/reports/dashboard", rep.Dashboard)
	r.GET("/api/reports/factory", rep.Factory)
	r.GET("/api/backup", rep.BackupText)
	return r, svc
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCustomerLifecycle(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/customers", models.Customer{Name: "Ali Veli"})
	require.Equal(t, http.StatusOK, w.Code)

	var created models.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	w = doJSON(t, r, http.MethodGet, "/api/customers/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ali Veli")

	w = doJSON(t, r, http.MethodDelete, "/api/customers/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/customers/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveTransaction_RecomputesTotals(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/transactions", map[string]any{
		"customerName":    "Ayşe",
		"oliveKg":         200,
		"pricePerKg":      3,
		"tinCounts":       map[string]float64{"s16": 1},
		"tinPrices":       map[string]float64{"s16": 80},
		"paymentReceived": 400,
		"totalCost":       9999,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var tx models.Transaction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tx))
	assert.Equal(t, 680.0, tx.TotalCost)
	assert.Equal(t, 280.0, tx.RemainingBalance)
	require.NotEmpty(t, tx.CustomerID)

	w = doJSON(t, r, http.MethodGet, "/api/transactions/"+tx.ID+"/receipt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "İşlem Fişi / Makbuz")
	assert.Contains(t, w.Body.String(), "Genel Toplam: 680 ₺")
}

func TestSaveTransaction_MissingNameRejected(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/transactions", map[string]any{"oliveKg": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTransactions_DateRange(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/transactions", map[string]any{
		"customerName": "Ali", "date": "2025-01-10T00:00:00Z", "oliveKg": 100, "pricePerKg": 3,
	})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/transactions", map[string]any{
		"customerName": "Ali", "date": "2025-03-05T12:00:00Z", "oliveKg": 200, "pricePerKg": 3,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/transactions?from=2025-02-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.Transaction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, 200.0, listed[0].OliveKg)

	// The to bound is inclusive through the end of the named day.
	w = doJSON(t, r, http.MethodGet, "/api/transactions?to=2025-03-05", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed, 2)

	w = doJSON(t, r, http.MethodGet, "/api/transactions?from=2025-02-01&to=2025-02-28", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Empty(t, listed)

	w = doJSON(t, r, http.MethodGet, "/api/transactions?from=bozuk", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCollectPayment_Endpoint(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/customers", models.Customer{Name: "Fatma"})
	require.Equal(t, http.StatusOK, w.Code)
	var customer models.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customer))

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/customers/%s/payments", customer.ID), map[string]any{"amount": 500})
	require.Equal(t, http.StatusOK, w.Code)

	var tx models.Transaction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tx))
	assert.True(t, tx.IsInterimCollection())
	assert.Equal(t, -500.0, tx.RemainingBalance)

	// Zero or negative amounts never reach the service.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/customers/%s/payments", customer.ID), map[string]any{"amount": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown customer maps to 404.
	w = doJSON(t, r, http.MethodPost, "/api/customers/missing/payments", map[string]any{"amount": 10})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPrices_DefaultsServed(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/api/prices", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var prices models.DefaultPrices
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prices))
	assert.Equal(t, models.BuiltinDefaultPrices(), prices)
}

func TestReports_Endpoints(t *testing.T) {
	r, _ := newTestRouter()

	doJSON(t, r, http.MethodPost, "/api/transactions", map[string]any{
		"customerName": "Ali", "oliveKg": 1000, "pricePerKg": 3, "paymentReceived": 2000,
	})
	doJSON(t, r, http.MethodPost, "/api/tin-purchases", map[string]any{
		"s16": 10, "tinPrice": 80,
	})

	w := doJSON(t, r, http.MethodGet, "/api/reports/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dashboard struct {
		TotalIncome     float64 `json:"totalIncome"`
		PendingPayments float64 `json:"pendingPayments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dashboard))
	assert.Equal(t, 3000.0, dashboard.TotalIncome)
	assert.Equal(t, 1000.0, dashboard.PendingPayments)

	w = doJSON(t, r, http.MethodGet, "/api/reports/factory", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var factory struct {
		RemainingTinStockValue float64 `json:"remainingTinStockValue"`
		TotalExpense           float64 `json:"totalExpense"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &factory))
	assert.Equal(t, 800.0, factory.RemainingTinStockValue)
	assert.Equal(t, 800.0, factory.TotalExpense)

	w = doJSON(t, r, http.MethodGet, "/api/backup", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SAF DAMLA ZEYTİNYAĞI FABRİKASI - YEDEK DOSYASI")
	// Downloads are named by day: yedek_YYYY-MM-DD.txt.
	assert.Regexp(t, `filename="yedek_\d{4}-\d{2}-\d{2}\.txt"`, w.Header().Get("Content-Disposition"))
}
