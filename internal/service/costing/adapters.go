package costing

import "github.com/safdamla/pressbook/internal/domain/models"

// TinPurchaseLines converts tin purchase records into neutral costing input.
func TinPurchaseLines(purchases []models.TinPurchase) []PurchaseLine {
	lines := make([]PurchaseLine, 0, len(purchases))
	for _, p := range purchases {
		lines = append(lines, PurchaseLine{
			Quantities: map[Variant]float64{S16: p.S16, S10: p.S10, S5: p.S5},
			UnitPrice:  p.TinPrice,
		})
	}
	return lines
}

// PlasticPurchaseLines converts plastic jug purchase records.
func PlasticPurchaseLines(purchases []models.PlasticPurchase) []PurchaseLine {
	lines := make([]PurchaseLine, 0, len(purchases))
	for _, p := range purchases {
		lines = append(lines, PurchaseLine{
			Quantities: map[Variant]float64{S10: p.S10, S5: p.S5, S2: p.S2},
			UnitPrice:  p.PlasticPrice,
		})
	}
	return lines
}

// TinSales extracts each transaction's embedded tin sale.
func TinSales(transactions []models.Transaction) []SaleLine {
	sales := make([]SaleLine, 0, len(transactions))
	for _, t := range transactions {
		sales = append(sales, SaleLine{
			Counts: map[Variant]float64{S16: t.TinCounts.S16, S10: t.TinCounts.S10, S5: t.TinCounts.S5},
			Prices: map[Variant]float64{S16: t.TinPrices.S16, S10: t.TinPrices.S10, S5: t.TinPrices.S5},
		})
	}
	return sales
}

// PlasticSales extracts each transaction's embedded plastic jug sale.
func PlasticSales(transactions []models.Transaction) []SaleLine {
	sales := make([]SaleLine, 0, len(transactions))
	for _, t := range transactions {
		sales = append(sales, SaleLine{
			Counts: map[Variant]float64{S10: t.PlasticCounts.S10, S5: t.PlasticCounts.S5, S2: t.PlasticCounts.S2},
			Prices: map[Variant]float64{S10: t.PlasticPrices.S10, S5: t.PlasticPrices.S5, S2: t.PlasticPrices.S2},
		})
	}
	return sales
}

func tinConsumption(transactions []models.Transaction) []map[Variant]float64 {
	counts := make([]map[Variant]float64, 0, len(transactions))
	for _, t := range transactions {
		counts = append(counts, map[Variant]float64{S16: t.TinCounts.S16, S10: t.TinCounts.S10, S5: t.TinCounts.S5})
	}
	return counts
}

func plasticConsumption(transactions []models.Transaction) []map[Variant]float64 {
	counts := make([]map[Variant]float64, 0, len(transactions))
	for _, t := range transactions {
		counts = append(counts, map[Variant]float64{S10: t.PlasticCounts.S10, S5: t.PlasticCounts.S5, S2: t.PlasticCounts.S2})
	}
	return counts
}

// TinStock computes the tin family stock report for a snapshot's records.
func TinStock(purchases []models.TinPurchase, transactions []models.Transaction) StockReport {
	return Stock(TinVariants, TinPurchaseLines(purchases), tinConsumption(transactions))
}

// PlasticStock computes the plastic jug family stock report.
func PlasticStock(purchases []models.PlasticPurchase, transactions []models.Transaction) StockReport {
	return Stock(JugVariants, PlasticPurchaseLines(purchases), plasticConsumption(transactions))
}

// TinProfitLoss computes the tin family's realized trading profit.
func TinProfitLoss(purchases []models.TinPurchase, transactions []models.Transaction) ProfitReport {
	return ProfitLoss(TinVariants, TinPurchaseLines(purchases), TinSales(transactions))
}

// PlasticProfitLoss computes the plastic jug family's realized trading profit.
func PlasticProfitLoss(purchases []models.PlasticPurchase, transactions []models.Transaction) ProfitReport {
	return ProfitLoss(JugVariants, PlasticPurchaseLines(purchases), PlasticSales(transactions))
}
