package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/safdamla/pressbook/internal/syncer"
)

// SyncHandler exposes the sync status badge and a manual flush trigger.
type SyncHandler struct {
	sync   *syncer.Syncer
	logger *zap.Logger
}

// NewSyncHandler constructs the sync handler.
func NewSyncHandler(sync *syncer.Syncer, logger *zap.Logger) *SyncHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncHandler{sync: sync, logger: logger}
}

// Status returns the current sync state and pending write count.
func (h *SyncHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.sync.Status())
}

// Flush probes connectivity and replays the pending queue.
func (h *SyncHandler) Flush(c *gin.Context) {
	if err := h.sync.Probe(c.Request.Context()); err != nil {
		h.logger.Warn("manual sync failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":  "cloud store unreachable",
			"status": h.sync.Status(),
		})
		return
	}
	c.JSON(http.StatusOK, h.sync.Status())
}
