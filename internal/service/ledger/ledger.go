// Package ledger derives per-transaction financial figures and their
// aggregates: totals across the ledger, per-customer balances, monthly
// production statistics, and the revenue decomposition. Everything here is
// a pure, synchronous fold over the snapshot handed in by the caller.
package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/safdamla/pressbook/internal/domain/models"
	"github.com/safdamla/pressbook/internal/domain/numeric"
)

// OliveCost is the olive pressing fee portion of a transaction.
func OliveCost(t models.Transaction) float64 {
	return t.OliveKg * t.PricePerKg
}

// TinCost is the billed amount for tin cans sold with the transaction.
func TinCost(t models.Transaction) float64 {
	return t.TinCounts.S16*t.TinPrices.S16 +
		t.TinCounts.S10*t.TinPrices.S10 +
		t.TinCounts.S5*t.TinPrices.S5
}

// PlasticCost is the billed amount for plastic jugs sold with the transaction.
func PlasticCost(t models.Transaction) float64 {
	return t.PlasticCounts.S10*t.PlasticPrices.S10 +
		t.PlasticCounts.S5*t.PlasticPrices.S5 +
		t.PlasticCounts.S2*t.PlasticPrices.S2
}

// TotalCost computes the transaction's total billed amount, rounded to two
// decimals at this storage boundary.
func TotalCost(t models.Transaction) float64 {
	return numeric.RoundToTwo(OliveCost(t) + TinCost(t) + PlasticCost(t))
}

// RemainingBalance computes what the customer still owes on the transaction.
func RemainingBalance(t models.Transaction) float64 {
	return numeric.RoundToTwo(TotalCost(t) - t.PaymentReceived - t.PaymentLoss)
}

// Derive fills the stored derived fields from the raw ones.
func Derive(t *models.Transaction) {
	t.TotalCost = TotalCost(*t)
	t.RemainingBalance = RemainingBalance(*t)
}

// OilRatio returns kilograms of olives per litre of oil. The ratio is only
// defined when both quantities are strictly positive.
func OilRatio(oliveKg, oilLitre float64) (float64, bool) {
	return numeric.Ratio(oliveKg, oilLitre)
}

// Totals aggregates the whole transaction collection. Pending is computed
// from the independently-summed components, not per row.
type Totals struct {
	OliveKg         float64 `json:"oliveKg"`
	OilLitre        float64 `json:"oilLitre"`
	Billed          float64 `json:"billed"`
	PaymentReceived float64 `json:"paymentReceived"`
	PaymentLoss     float64 `json:"paymentLoss"`
	Pending         float64 `json:"pending"`
	TinCount        float64 `json:"tinCount"`
	PlasticCount    float64 `json:"plasticCount"`
}

// Sum folds the transaction collection into overall totals.
func Sum(transactions []models.Transaction) Totals {
	var agg Totals
	for _, t := range transactions {
		agg.OliveKg += t.OliveKg
		agg.OilLitre += t.OilLitre
		agg.Billed += t.TotalCost
		agg.PaymentReceived += t.PaymentReceived
		agg.PaymentLoss += t.PaymentLoss
		agg.TinCount += t.TinCounts.S16 + t.TinCounts.S10 + t.TinCounts.S5
		agg.PlasticCount += t.PlasticCounts.S10 + t.PlasticCounts.S5 + t.PlasticCounts.S2
	}
	agg.Pending = agg.Billed - agg.PaymentReceived - agg.PaymentLoss
	return agg
}

// CustomerTotals is the aggregate position of a single customer.
type CustomerTotals struct {
	Billed           float64 `json:"billed"`
	Paid             float64 `json:"paid"`
	Loss             float64 `json:"loss"`
	OliveKg          float64 `json:"oliveKg"`
	RemainingBalance float64 `json:"remainingBalance"`
	TransactionCount int     `json:"transactionCount"`
}

// ForCustomer filters by customerId and sums the three balance components
// independently before subtracting.
func ForCustomer(transactions []models.Transaction, customerID string) CustomerTotals {
	var agg CustomerTotals
	for _, t := range transactions {
		if t.CustomerID != customerID {
			continue
		}
		agg.Billed += t.TotalCost
		agg.Paid += t.PaymentReceived
		agg.Loss += t.PaymentLoss
		agg.OliveKg += t.OliveKg
		agg.TransactionCount++
	}
	agg.RemainingBalance = agg.Billed - agg.Paid - agg.Loss
	return agg
}

// MonthStat is one month's production aggregate. Month is "YYYY-MM".
// TransactionCount only counts pressing visits (oliveKg > 0), so interim
// collections do not inflate it.
type MonthStat struct {
	Month            string  `json:"month"`
	OliveKg          float64 `json:"oliveKg"`
	OilLitre         float64 `json:"oilLitre"`
	TransactionCount int     `json:"transactionCount"`
	AvgRatio         float64 `json:"avgRatio"`
}

// Monthly groups transactions by calendar month and returns the stats in
// ascending month order.
func Monthly(transactions []models.Transaction) []MonthStat {
	byMonth := map[string]*MonthStat{}
	for _, t := range transactions {
		key := monthKey(t.Date)
		stat, ok := byMonth[key]
		if !ok {
			stat = &MonthStat{Month: key}
			byMonth[key] = stat
		}
		stat.OliveKg += t.OliveKg
		stat.OilLitre += t.OilLitre
		if t.OliveKg > 0 {
			stat.TransactionCount++
		}
	}

	stats := make([]MonthStat, 0, len(byMonth))
	for _, stat := range byMonth {
		if ratio, ok := numeric.Ratio(stat.OliveKg, stat.OilLitre); ok {
			stat.AvgRatio = ratio
		}
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Month < stats[j].Month })
	return stats
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// RevenueBreakdown decomposes billed revenue into its three sources. Total
// is the sum of the decomposed parts and equals the sum of stored totalCost
// values for records derived by the save path.
type RevenueBreakdown struct {
	Olive   float64 `json:"olive"`
	Tin     float64 `json:"tin"`
	Plastic float64 `json:"plastic"`
	Total   float64 `json:"total"`
}

// Revenue decomposes the transaction collection's billed amounts.
func Revenue(transactions []models.Transaction) RevenueBreakdown {
	var b RevenueBreakdown
	for _, t := range transactions {
		b.Olive += OliveCost(t)
		b.Tin += TinCost(t)
		b.Plastic += PlasticCost(t)
	}
	b.Total = b.Olive + b.Tin + b.Plastic
	return b
}

// NewInterimPayment builds an interim collection record: a payment-only
// transaction with all production fields zero and a negative remaining
// balance. The caller assigns the id.
func NewInterimPayment(customerID, customerName string, amount float64, at time.Time) models.Transaction {
	return models.Transaction{
		CustomerID:       customerID,
		CustomerName:     customerName,
		Date:             at,
		PaymentReceived:  amount,
		TotalCost:        0,
		RemainingBalance: numeric.RoundToTwo(-amount),
		Description:      models.InterimCollectionDescription,
	}
}

// MatchCustomerName reports whether a customer name matches the given name,
// ignoring case. Used both for exact matching at save time and, with
// contains=true, for search.
func MatchCustomerName(candidate, name string, contains bool) bool {
	c := strings.ToLower(candidate)
	n := strings.ToLower(name)
	if contains {
		return strings.Contains(c, n)
	}
	return c == n
}

// FindCustomerByName returns the first customer whose name equals the given
// name case-insensitively.
func FindCustomerByName(customers []models.Customer, name string) (models.Customer, bool) {
	for _, c := range customers {
		if MatchCustomerName(c.Name, name, false) {
			return c, true
		}
	}
	return models.Customer{}, false
}

// SortByDateDesc returns a copy of the transactions ordered most recent
// first. Display concern for "latest N" views; aggregation never depends on
// order.
func SortByDateDesc(transactions []models.Transaction) []models.Transaction {
	sorted := append([]models.Transaction(nil), transactions...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })
	return sorted
}
