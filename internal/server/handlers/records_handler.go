package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safdamla/pressbook/internal/domain/models"
)

// The record endpoints all follow the same shape: list from the snapshot,
// save with derived totals recomputed server side, delete by id.

func (h *LedgerHandler) ListTinPurchases(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap.TinPurchases)
}

func (h *LedgerHandler) SaveTinPurchase(c *gin.Context) {
	var p models.TinPurchase
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	saved, err := h.svc.SaveTinPurchase(c.Request.Context(), p)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *LedgerHandler) DeleteTinPurchase(c *gin.Context) {
	if err := h.svc.DeleteTinPurchase(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LedgerHandler) ListPlasticPurchases(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap.PlasticPurchases)
}

func (h *LedgerHandler) SavePlasticPurchase(c *gin.Context) {
	var p models.PlasticPurchase
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	saved, err := h.svc.SavePlasticPurchase(c.Request.Context(), p)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *LedgerHandler) DeletePlasticPurchase(c *gin.Context) {
	if err := h.svc.DeletePlasticPurchase(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LedgerHandler) ListWorkerExpenses(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap.WorkerExpenses)
}

func (h *LedgerHandler) SaveWorkerExpense(c *gin.Context) {
	var e models.WorkerExpense
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	saved, err := h.svc.SaveWorkerExpense(c.Request.Context(), e)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *LedgerHandler) DeleteWorkerExpense(c *gin.Context) {
	if err := h.svc.DeleteWorkerExpense(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LedgerHandler) ListOverheadExpenses(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap.FactoryOverhead)
}

func (h *LedgerHandler) SaveOverheadExpense(c *gin.Context) {
	var e models.OverheadExpense
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	saved, err := h.svc.SaveOverheadExpense(c.Request.Context(), e)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *LedgerHandler) DeleteOverheadExpense(c *gin.Context) {
	if err := h.svc.DeleteOverheadExpense(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LedgerHandler) ListPomaceRevenues(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap.PomaceRevenues)
}

func (h *LedgerHandler) SavePomaceRevenue(c *gin.Context) {
	var r models.PomaceRevenue
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	saved, err := h.svc.SavePomaceRevenue(c.Request.Context(), r)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *LedgerHandler) DeletePomaceRevenue(c *gin.Context) {
	if err := h.svc.DeletePomaceRevenue(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LedgerHandler) ListOilPurchases(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap.OilPurchases)
}

func (h *LedgerHandler) SaveOilPurchase(c *gin.Context) {
	var p models.OilPurchase
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	saved, err := h.svc.SaveOilPurchase(c.Request.Context(), p)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *LedgerHandler) DeleteOilPurchase(c *gin.Context) {
	if err := h.svc.DeleteOilPurchase(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LedgerHandler) ListOilSales(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap.OilSales)
}

func (h *LedgerHandler) SaveOilSale(c *gin.Context) {
	var s models.OilSale
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	saved, err := h.svc.SaveOilSale(c.Request.Context(), s)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *LedgerHandler) DeleteOilSale(c *gin.Context) {
	if err := h.svc.DeleteOilSale(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
