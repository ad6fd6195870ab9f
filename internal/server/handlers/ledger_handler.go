package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/safdamla/pressbook/internal/domain/models"
	"github.com/safdamla/pressbook/internal/service/backup"
	"github.com/safdamla/pressbook/internal/service/book"
	"github.com/safdamla/pressbook/internal/service/ledger"
	"github.com/safdamla/pressbook/pkg/format"
)

// LedgerHandler exposes the bookkeeping write and read operations over HTTP.
type LedgerHandler struct {
	svc    *book.Service
	logger *zap.Logger
}

// NewLedgerHandler constructs the HTTP handler adapter.
func NewLedgerHandler(svc *book.Service, logger *zap.Logger) *LedgerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerHandler{svc: svc, logger: logger}
}

// respondError maps service errors onto HTTP statuses.
func (h *LedgerHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, book.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.Is(err, book.ErrMissingCustomerName):
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer name must be provided"})
	case errors.Is(err, book.ErrInterimImmutable):
		c.JSON(http.StatusConflict, gin.H{"error": "interim collection records cannot be edited"})
	default:
		h.logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// ListCustomers returns all customers, each with its aggregate balance.
// An optional q parameter filters by name, case-insensitively.
func (h *LedgerHandler) ListCustomers(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	q := c.Query("q")
	type customerWithTotals struct {
		models.Customer
		Totals ledger.CustomerTotals `json:"totals"`
	}

	out := make([]customerWithTotals, 0, len(snap.Customers))
	for _, cust := range snap.Customers {
		if q != "" && !ledger.MatchCustomerName(cust.Name, q, true) {
			continue
		}
		out = append(out, customerWithTotals{
			Customer: cust,
			Totals:   ledger.ForCustomer(snap.Transactions, cust.ID),
		})
	}
	c.JSON(http.StatusOK, out)
}

// SaveCustomer creates or updates a customer.
func (h *LedgerHandler) SaveCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	saved, err := h.svc.SaveCustomer(c.Request.Context(), customer)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// GetCustomer returns one customer with totals and transaction history.
func (h *LedgerHandler) GetCustomer(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	id := c.Param("id")
	for _, cust := range snap.Customers {
		if cust.ID != id {
			continue
		}
		var own []models.Transaction
		for _, t := range snap.Transactions {
			if t.CustomerID == id {
				own = append(own, t)
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"customer":     cust,
			"totals":       ledger.ForCustomer(snap.Transactions, id),
			"transactions": ledger.SortByDateDesc(own),
		})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
}

// CustomerStatement renders the customer's printable statement.
func (h *LedgerHandler) CustomerStatement(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	id := c.Param("id")
	for _, cust := range snap.Customers {
		if cust.ID == id {
			c.String(http.StatusOK, backup.CustomerStatement(cust, snap.Transactions))
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
}

// DeleteCustomer removes a customer and their transactions.
func (h *LedgerHandler) DeleteCustomer(c *gin.Context) {
	if err := h.svc.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTransactions returns transactions most recent first, optionally
// filtered by customerId and by a from/to day range (YYYY-MM-DD, inclusive).
func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	transactions := snap.Transactions
	if customerID := c.Query("customerId"); customerID != "" {
		transactions = filterTransactions(transactions, func(t models.Transaction) bool {
			return t.CustomerID == customerID
		})
	}
	if from := c.Query("from"); from != "" {
		day, err := format.ParseInputDate(from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be a YYYY-MM-DD date"})
			return
		}
		transactions = filterTransactions(transactions, func(t models.Transaction) bool {
			return !t.Date.Before(day)
		})
	}
	if to := c.Query("to"); to != "" {
		day, err := format.ParseInputDate(to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be a YYYY-MM-DD date"})
			return
		}
		end := day.AddDate(0, 0, 1)
		transactions = filterTransactions(transactions, func(t models.Transaction) bool {
			return t.Date.Before(end)
		})
	}
	c.JSON(http.StatusOK, ledger.SortByDateDesc(transactions))
}

func filterTransactions(in []models.Transaction, keep func(models.Transaction) bool) []models.Transaction {
	out := make([]models.Transaction, 0, len(in))
	for _, t := range in {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// SaveTransaction creates or updates a pressing transaction.
func (h *LedgerHandler) SaveTransaction(c *gin.Context) {
	var tx models.Transaction
	if err := c.ShouldBindJSON(&tx); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	saved, err := h.svc.SaveTransaction(c.Request.Context(), tx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeleteTransaction removes a transaction.
func (h *LedgerHandler) DeleteTransaction(c *gin.Context) {
	if err := h.svc.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// TransactionReceipt renders the counter receipt for one transaction.
func (h *LedgerHandler) TransactionReceipt(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	id := c.Param("id")
	for _, t := range snap.Transactions {
		if t.ID == id {
			c.String(http.StatusOK, backup.Receipt(t))
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
}

type collectPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// CollectPayment records an interim collection for the customer.
func (h *LedgerHandler) CollectPayment(c *gin.Context) {
	var req collectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive number"})
		return
	}

	tx, err := h.svc.CollectPayment(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// GetPrices returns the default price set used to pre-fill forms.
func (h *LedgerHandler) GetPrices(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap.DefaultPrices)
}

// UpdatePrices replaces the default price set.
func (h *LedgerHandler) UpdatePrices(c *gin.Context) {
	var prices models.DefaultPrices
	if err := c.ShouldBindJSON(&prices); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.UpdateDefaultPrices(c.Request.Context(), prices); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prices)
}
