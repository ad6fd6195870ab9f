// Package costing implements weighted-average inventory costing for the two
// container families (tin cans and plastic jugs), each with three size
// variants. Unit cost is total purchase cost divided by total quantity
// purchased, applied uniformly regardless of purchase order; variants are
// never pooled. All computations are pure folds over caller-supplied
// collections.
package costing

import (
	"github.com/safdamla/pressbook/internal/domain/numeric"
)

// Variant identifies one container size within a family.
type Variant string

const (
	S16 Variant = "s16"
	S10 Variant = "s10"
	S5  Variant = "s5"
	S2  Variant = "s2"
)

// TinVariants and JugVariants list each family's sizes in display order.
var (
	TinVariants = []Variant{S16, S10, S5}
	JugVariants = []Variant{S10, S5, S2}
)

// PurchaseLine is one purchase record reduced to what costing needs: size
// quantities and the single unit price the record applies to all of them.
type PurchaseLine struct {
	Quantities map[Variant]float64
	UnitPrice  float64
}

// SaleLine is one transaction's embedded container sale: counts and the
// per-variant sale prices billed to the customer.
type SaleLine struct {
	Counts map[Variant]float64
	Prices map[Variant]float64
}

// VariantStock is the stock position of a single size variant. Remaining
// quantity and value are deliberately unclamped: overselling drives them
// negative and downstream summaries rely on the sign.
type VariantStock struct {
	Purchased      float64 `json:"purchased"`
	PurchaseCost   float64 `json:"purchaseCost"`
	AvgUnitCost    float64 `json:"avgUnitCost"`
	Consumed       float64 `json:"consumed"`
	Remaining      float64 `json:"remaining"`
	ValuePurchased float64 `json:"valuePurchased"`
	ValueConsumed  float64 `json:"valueConsumed"`
	ValueRemaining float64 `json:"valueRemaining"`
}

// StockReport maps each size variant of one family to its stock position.
type StockReport map[Variant]VariantStock

// TotalValueRemaining sums the remaining stock value across the family's
// variants. The factory summary books this as income (asset valuation).
func (r StockReport) TotalValueRemaining() float64 {
	var total float64
	for _, v := range r {
		total += v.ValueRemaining
	}
	return total
}

// Stock computes the weighted-average stock position per variant from the
// family's purchases and the transactions consuming them.
func Stock(variants []Variant, purchases []PurchaseLine, consumption []map[Variant]float64) StockReport {
	report := make(StockReport, len(variants))

	purchased := make(map[Variant]float64, len(variants))
	cost := make(map[Variant]float64, len(variants))
	for _, p := range purchases {
		for _, v := range variants {
			qty := p.Quantities[v]
			purchased[v] += qty
			cost[v] += qty * p.UnitPrice
		}
	}

	consumed := make(map[Variant]float64, len(variants))
	for _, c := range consumption {
		for _, v := range variants {
			consumed[v] += c[v]
		}
	}

	for _, v := range variants {
		avg := numeric.SafeDiv(cost[v], purchased[v])
		remaining := purchased[v] - consumed[v]
		report[v] = VariantStock{
			Purchased:      purchased[v],
			PurchaseCost:   cost[v],
			AvgUnitCost:    avg,
			Consumed:       consumed[v],
			Remaining:      remaining,
			ValuePurchased: purchased[v] * avg,
			ValueConsumed:  consumed[v] * avg,
			ValueRemaining: remaining * avg,
		}
	}

	return report
}

// VariantProfit is realized trading profit for one size variant: sale
// revenue minus cost of goods sold at the period-average unit cost.
type VariantProfit struct {
	Sold        float64 `json:"sold"`
	Revenue     float64 `json:"revenue"`
	COGS        float64 `json:"cogs"`
	NetProfit   float64 `json:"netProfit"`
	AvgUnitCost float64 `json:"avgUnitCost"`
}

// ProfitReport is the per-variant and summed trading result for one family.
type ProfitReport struct {
	Variants     map[Variant]VariantProfit `json:"variants"`
	TotalRevenue float64                   `json:"totalRevenue"`
	TotalCOGS    float64                   `json:"totalCogs"`
	TotalProfit  float64                   `json:"totalProfit"`
}

// ProfitLoss computes realized trading profit per variant. The average cost
// is taken over all historical purchases, not just those preceding a sale:
// this is period-average costing, not FIFO matching.
func ProfitLoss(variants []Variant, purchases []PurchaseLine, sales []SaleLine) ProfitReport {
	purchased := make(map[Variant]float64, len(variants))
	cost := make(map[Variant]float64, len(variants))
	for _, p := range purchases {
		for _, v := range variants {
			qty := p.Quantities[v]
			purchased[v] += qty
			cost[v] += qty * p.UnitPrice
		}
	}

	sold := make(map[Variant]float64, len(variants))
	revenue := make(map[Variant]float64, len(variants))
	for _, s := range sales {
		for _, v := range variants {
			sold[v] += s.Counts[v]
			revenue[v] += s.Counts[v] * s.Prices[v]
		}
	}

	report := ProfitReport{Variants: make(map[Variant]VariantProfit, len(variants))}
	for _, v := range variants {
		avg := numeric.SafeDiv(cost[v], purchased[v])
		cogs := sold[v] * avg
		profit := revenue[v] - cogs
		report.Variants[v] = VariantProfit{
			Sold:        sold[v],
			Revenue:     revenue[v],
			COGS:        cogs,
			NetProfit:   profit,
			AvgUnitCost: avg,
		}
		report.TotalRevenue += revenue[v]
		report.TotalCOGS += cogs
		report.TotalProfit += profit
	}

	return report
}
