package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/safdamla/pressbook/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(ledgerHandler *handlers.LedgerHandler, reportHandler *handlers.ReportHandler, syncHandler *handlers.SyncHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/customers", ledgerHandler.ListCustomers)
		api.POST("/customers", ledgerHandler.SaveCustomer)
		api.GET("/customers/:id", ledgerHandler.GetCustomer)
		api.GET("/customers/:id/statement", ledgerHandler.CustomerStatement)
		api.POST("/customers/:id/payments", ledgerHandler.CollectPayment)
		api.DELETE("/customers/:id", ledgerHandler.DeleteCustomer)

		api.GET("/transactions", ledgerHandler.ListTransactions)
		api.POST("/transactions", ledgerHandler.SaveTransaction)
		api.GET("/transactions/:id/receipt", ledgerHandler.TransactionReceipt)
		api.DELETE("/transactions/:id", ledgerHandler.DeleteTransaction)

		api.GET("/tin-purchases", ledgerHandler.ListTinPurchases)
		api.POST("/tin-purchases", ledgerHandler.SaveTinPurchase)
		api.DELETE("/tin-purchases/:id", ledgerHandler.DeleteTinPurchase)

		api.GET("/plastic-purchases", ledgerHandler.ListPlasticPurchases)
		api.POST("/plastic-purchases", ledgerHandler.SavePlasticPurchase)
		api.DELETE("/plastic-purchases/:id", ledgerHandler.DeletePlasticPurchase)

		api.GET("/worker-expenses", ledgerHandler.ListWorkerExpenses)
		api.POST("/worker-expenses", ledgerHandler.SaveWorkerExpense)
		api.DELETE("/worker-expenses/:id", ledgerHandler.DeleteWorkerExpense)

		api.GET("/overhead-expenses", ledgerHandler.ListOverheadExpenses)
		api.POST("/overhead-expenses", ledgerHandler.SaveOverheadExpense)
		api.DELETE("/overhead-expenses/:id", ledgerHandler.DeleteOverheadExpense)

		api.GET("/pomace-revenues", ledgerHandler.ListPomaceRevenues)
		api.POST("/pomace-revenues", ledgerHandler.SavePomaceRevenue)
		api.DELETE("/pomace-revenues/:id", ledgerHandler.DeletePomaceRevenue)

		api.GET("/oil-purchases", ledgerHandler.ListOilPurchases)
		api.POST("/oil-purchases", ledgerHandler.SaveOilPurchase)
		api.DELETE("/oil-purchases/:id", ledgerHandler.DeleteOilPurchase)

		api.GET("/oil-sales", ledgerHandler.ListOilSales)
		api.POST("/oil-sales", ledgerHandler.SaveOilSale)
		api.DELETE("/oil-sales/:id", ledgerHandler.DeleteOilSale)

		api.GET("/prices", ledgerHandler.GetPrices)
		api.PUT("/prices", ledgerHandler.UpdatePrices)

		api.GET("/reports/dashboard", reportHandler.Dashboard)
		api.GET("/reports/factory", reportHandler.Factory)
		api.GET("/reports/statistics", reportHandler.Statistics)
		api.GET("/reports/stock", reportHandler.Stock)
		api.GET("/reports/oil", reportHandler.OilTrading)

		api.GET("/backup", reportHandler.BackupText)
		api.GET("/backup/debt-free", reportHandler.DebtFreeBackupText)

		api.GET("/sync/status", syncHandler.Status)
		api.POST("/sync/flush", syncHandler.Flush)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
