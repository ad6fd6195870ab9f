package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/safdamla/pressbook/internal/service/backup"
	"github.com/safdamla/pressbook/internal/service/book"
	"github.com/safdamla/pressbook/internal/service/costing"
	"github.com/safdamla/pressbook/internal/service/summary"
	"github.com/safdamla/pressbook/pkg/format"
)

// ReportHandler serves the read-only financial views and text backups.
type ReportHandler struct {
	svc    *book.Service
	logger *zap.Logger
}

// NewReportHandler constructs the report handler.
func NewReportHandler(svc *book.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// Dashboard returns the narrow income/expense card.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load snapshot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, summary.Dashboard(snap))
}

// Factory returns the consolidated factory summary.
func (h *ReportHandler) Factory(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load snapshot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, summary.Consolidated(snap))
}

// Statistics returns the statistics view payload.
func (h *ReportHandler) Statistics(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load snapshot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, summary.Stats(snap))
}

// Stock returns the per-variant container stock reports.
func (h *ReportHandler) Stock(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load snapshot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tins": costing.TinStock(snap.TinPurchases, snap.Transactions),
		"jugs": costing.PlasticStock(snap.PlasticPurchases, snap.Transactions),
	})
}

// OilTrading returns the bulk oil buy/sell summary.
func (h *ReportHandler) OilTrading(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load snapshot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, summary.Oil(snap.OilPurchases, snap.OilSales))
}

// BackupText serves the full plain-text backup document, named by the day
// it was taken.
func (h *ReportHandler) BackupText(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load snapshot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	now := time.Now()
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="yedek_%s.txt"`, format.InputDate(now)))
	c.String(http.StatusOK, backup.LedgerText(snap, now))
}

// DebtFreeBackupText serves the debt-free customer companion document.
func (h *ReportHandler) DebtFreeBackupText(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load snapshot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	now := time.Now()
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="borcsuz_musteriler_%s.txt"`, format.InputDate(now)))
	c.String(http.StatusOK, backup.DebtFreeCustomersText(snap, now))
}
