// Package summary rolls every revenue and cost source up into the factory's
// income/expense/net-balance views. The application deliberately carries two
// different income formulas: the consolidated factory summary counts
// remaining container stock value as income (an asset valuation, not a cash
// inflow) and container purchases as expense, while the dashboard card does
// neither. Both are preserved as distinct functions; do not unify them.
package summary

import (
	"github.com/safdamla/pressbook/internal/domain/models"
	"github.com/safdamla/pressbook/internal/service/costing"
	"github.com/safdamla/pressbook/internal/service/ledger"
)

// Factory is the consolidated factory summary.
type Factory struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	NetBalance   float64 `json:"netBalance"`

	TotalBilled             float64 `json:"totalBilled"`
	TotalPomaceRevenue      float64 `json:"totalPomaceRevenue"`
	TotalPaymentLoss        float64 `json:"totalPaymentLoss"`
	TotalWorkerExpense      float64 `json:"totalWorkerExpense"`
	TotalOverheadExpense    float64 `json:"totalOverheadExpense"`
	TotalTinPurchaseCost    float64 `json:"totalTinPurchaseCost"`
	TotalPlasticPurchase    float64 `json:"totalPlasticPurchaseCost"`
	RemainingTinStockValue  float64 `json:"remainingTinStockValue"`
	RemainingJugStockValue  float64 `json:"remainingPlasticStockValue"`
}

// Consolidated computes the wide factory summary over a snapshot.
func Consolidated(snap models.Snapshot) Factory {
	totals := ledger.Sum(snap.Transactions)

	var s Factory
	s.TotalBilled = totals.Billed
	s.TotalPaymentLoss = totals.PaymentLoss
	for _, r := range snap.PomaceRevenues {
		s.TotalPomaceRevenue += r.TotalRevenue
	}
	for _, e := range snap.WorkerExpenses {
		s.TotalWorkerExpense += e.Amount
	}
	for _, e := range snap.FactoryOverhead {
		s.TotalOverheadExpense += e.Amount
	}
	for _, p := range snap.TinPurchases {
		s.TotalTinPurchaseCost += p.TotalCost
	}
	for _, p := range snap.PlasticPurchases {
		s.TotalPlasticPurchase += p.TotalCost
	}

	s.RemainingTinStockValue = costing.TinStock(snap.TinPurchases, snap.Transactions).TotalValueRemaining()
	s.RemainingJugStockValue = costing.PlasticStock(snap.PlasticPurchases, snap.Transactions).TotalValueRemaining()

	s.TotalIncome = s.TotalBilled + s.TotalPomaceRevenue - s.TotalPaymentLoss +
		s.RemainingTinStockValue + s.RemainingJugStockValue
	s.TotalExpense = s.TotalWorkerExpense + s.TotalOverheadExpense +
		s.TotalTinPurchaseCost + s.TotalPlasticPurchase
	s.NetBalance = s.TotalIncome - s.TotalExpense
	return s
}

// DashboardCard is the narrower income/expense card shown on the main
// dashboard. It omits stock-value income and container purchase expenses.
type DashboardCard struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	NetBalance   float64 `json:"netBalance"`

	TotalBilled        float64 `json:"totalBilled"`
	TotalReceived      float64 `json:"totalReceived"`
	TotalPaymentLoss   float64 `json:"totalPaymentLoss"`
	PendingPayments    float64 `json:"pendingPayments"`
	TotalPomaceRevenue float64 `json:"totalPomaceRevenue"`
	TotalWorkerExpense float64 `json:"totalWorkerExpense"`
	TotalOverhead      float64 `json:"totalOverheadExpense"`
}

// Dashboard computes the narrow dashboard card over a snapshot.
func Dashboard(snap models.Snapshot) DashboardCard {
	totals := ledger.Sum(snap.Transactions)

	var s DashboardCard
	s.TotalBilled = totals.Billed
	s.TotalReceived = totals.PaymentReceived
	s.TotalPaymentLoss = totals.PaymentLoss
	s.PendingPayments = totals.Pending
	for _, r := range snap.PomaceRevenues {
		s.TotalPomaceRevenue += r.TotalRevenue
	}
	for _, e := range snap.WorkerExpenses {
		s.TotalWorkerExpense += e.Amount
	}
	for _, e := range snap.FactoryOverhead {
		s.TotalOverhead += e.Amount
	}

	s.TotalIncome = s.TotalBilled + s.TotalPomaceRevenue - s.TotalPaymentLoss
	s.TotalExpense = s.TotalWorkerExpense + s.TotalOverhead
	s.NetBalance = s.TotalIncome - s.TotalExpense
	return s
}

// OilTrading summarizes the bulk oil buy/sell side business.
type OilTrading struct {
	PurchasedTins float64 `json:"purchasedTins"`
	SoldTins      float64 `json:"soldTins"`
	NetStock      float64 `json:"netStock"`
	PurchaseCost  float64 `json:"purchaseCost"`
	SaleRevenue   float64 `json:"saleRevenue"`
	TradingProfit float64 `json:"tradingProfit"`
}

// Oil folds the oil purchase and sale collections into the trading summary.
func Oil(purchases []models.OilPurchase, sales []models.OilSale) OilTrading {
	var s OilTrading
	for _, p := range purchases {
		s.PurchasedTins += p.TinCount
		s.PurchaseCost += p.TotalCost
	}
	for _, sale := range sales {
		s.SoldTins += sale.TinCount
		s.SaleRevenue += sale.TotalRevenue
	}
	s.NetStock = s.PurchasedTins - s.SoldTins
	s.TradingProfit = s.SaleRevenue - s.PurchaseCost
	return s
}

// Statistics is the statistics view payload: monthly production, the
// weighted-average profit reports per container family, and the simpler
// revenue-minus-purchases nets the statistics page also shows.
type Statistics struct {
	Monthly          []ledger.MonthStat   `json:"monthly"`
	OverallAvgRatio  float64              `json:"overallAvgRatio"`
	RatioDefined     bool                 `json:"ratioDefined"`
	TinProfit        costing.ProfitReport `json:"tinProfit"`
	PlasticProfit    costing.ProfitReport `json:"plasticProfit"`
	SimpleTinNet     float64              `json:"simpleTinNet"`
	SimplePlasticNet float64              `json:"simplePlasticNet"`
	TotalTinsSold    float64              `json:"totalTinsSold"`
	TotalJugsSold    float64              `json:"totalJugsSold"`
}

// Stats computes the statistics view over a snapshot.
func Stats(snap models.Snapshot) Statistics {
	totals := ledger.Sum(snap.Transactions)
	revenue := ledger.Revenue(snap.Transactions)

	var tinPurchaseCost, jugPurchaseCost float64
	for _, p := range snap.TinPurchases {
		tinPurchaseCost += p.TotalCost
	}
	for _, p := range snap.PlasticPurchases {
		jugPurchaseCost += p.TotalCost
	}

	st := Statistics{
		Monthly:          ledger.Monthly(snap.Transactions),
		TinProfit:        costing.TinProfitLoss(snap.TinPurchases, snap.Transactions),
		PlasticProfit:    costing.PlasticProfitLoss(snap.PlasticPurchases, snap.Transactions),
		SimpleTinNet:     revenue.Tin - tinPurchaseCost,
		SimplePlasticNet: revenue.Plastic - jugPurchaseCost,
		TotalTinsSold:    totals.TinCount,
		TotalJugsSold:    totals.PlasticCount,
	}
	st.OverallAvgRatio, st.RatioDefined = ledger.OilRatio(totals.OliveKg, totals.OilLitre)
	return st
}
