package costing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safdamla/pressbook/internal/domain/models"
)

func TestTinStock_WeightedAverage(t *testing.T) {
	purchases := []models.TinPurchase{
		{S16: 10, TinPrice: 80},
	}
	transactions := []models.Transaction{
		{TinCounts: models.TinSizes{S16: 4}, TinPrices: models.TinSizes{S16: 100}},
	}

	report := TinStock(purchases, transactions)

	s16 := report[S16]
	assert.Equal(t, 10.0, s16.Purchased)
	assert.Equal(t, 800.0, s16.PurchaseCost)
	assert.Equal(t, 80.0, s16.AvgUnitCost)
	assert.Equal(t, 4.0, s16.Consumed)
	assert.Equal(t, 6.0, s16.Remaining)
	assert.Equal(t, 480.0, s16.ValueRemaining)
	assert.Equal(t, 320.0, s16.ValueConsumed)

	profit := TinProfitLoss(purchases, transactions)
	assert.Equal(t, 400.0, profit.Variants[S16].Revenue)
	assert.Equal(t, 320.0, profit.Variants[S16].COGS)
	assert.Equal(t, 80.0, profit.Variants[S16].NetProfit)
	assert.Equal(t, 80.0, profit.TotalProfit)
}

func TestStock_UnitPriceAppliesAcrossSizes(t *testing.T) {
	// One purchase record carries a single unit price for all its sizes.
	purchases := []models.TinPurchase{
		{S16: 5, S10: 3, S5: 2, TinPrice: 50},
		{S16: 5, TinPrice: 70},
	}

	report := TinStock(purchases, nil)

	assert.Equal(t, 10.0, report[S16].Purchased)
	assert.Equal(t, 600.0, report[S16].PurchaseCost) // 5*50 + 5*70
	assert.Equal(t, 60.0, report[S16].AvgUnitCost)
	assert.Equal(t, 150.0, report[S10].PurchaseCost)
	assert.Equal(t, 50.0, report[S10].AvgUnitCost)
	assert.Equal(t, 100.0, report[S5].PurchaseCost)
}

func TestStock_ZeroPurchasesNoNaN(t *testing.T) {
	transactions := []models.Transaction{
		{PlasticCounts: models.JugSizes{S10: 3, S2: 1}},
	}

	report := PlasticStock(nil, transactions)

	for _, v := range JugVariants {
		stock := report[v]
		assert.Equal(t, 0.0, stock.AvgUnitCost)
		assert.Equal(t, 0.0, stock.ValueRemaining)
		assert.False(t, math.IsNaN(stock.ValueRemaining))
		assert.False(t, math.IsInf(stock.ValueConsumed, 0))
	}
	// Quantity consumption is still tracked, remaining goes negative.
	assert.Equal(t, 3.0, report[S10].Consumed)
	assert.Equal(t, -3.0, report[S10].Remaining)
}

func TestStock_OversoldRemainsNegative(t *testing.T) {
	purchases := []models.TinPurchase{{S5: 2, TinPrice: 60}}
	transactions := []models.Transaction{
		{TinCounts: models.TinSizes{S5: 5}},
	}

	report := TinStock(purchases, transactions)

	assert.Equal(t, -3.0, report[S5].Remaining)
	assert.Equal(t, -180.0, report[S5].ValueRemaining)
}

func TestStock_OrderIndependent(t *testing.T) {
	purchases := []models.TinPurchase{
		{S16: 10, S10: 4, TinPrice: 80},
		{S16: 5, S5: 7, TinPrice: 95},
		{S16: 2, S10: 9, S5: 1, TinPrice: 60},
	}
	transactions := []models.Transaction{
		{TinCounts: models.TinSizes{S16: 3, S10: 2}, TinPrices: models.TinSizes{S16: 110, S10: 90}},
		{TinCounts: models.TinSizes{S16: 1, S5: 4}, TinPrices: models.TinSizes{S16: 120, S5: 70}},
	}

	baseline := TinStock(purchases, transactions)
	baseProfit := TinProfitLoss(purchases, transactions)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := append([]models.TinPurchase(nil), purchases...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		report := TinStock(shuffled, transactions)
		for _, v := range TinVariants {
			assert.Equal(t, baseline[v].AvgUnitCost, report[v].AvgUnitCost)
			assert.Equal(t, baseline[v].ValueRemaining, report[v].ValueRemaining)
		}

		profit := TinProfitLoss(shuffled, transactions)
		assert.Equal(t, baseProfit.TotalProfit, profit.TotalProfit)
	}
}

func TestStock_Idempotent(t *testing.T) {
	purchases := []models.PlasticPurchase{
		{S10: 12, S5: 8, PlasticPrice: 18.5},
		{S2: 30, PlasticPrice: 9.75},
	}
	transactions := []models.Transaction{
		{PlasticCounts: models.JugSizes{S10: 5, S2: 11}, PlasticPrices: models.JugSizes{S10: 22, S2: 12}},
	}

	first := PlasticStock(purchases, transactions)
	second := PlasticStock(purchases, transactions)
	require.Equal(t, first, second)

	p1 := PlasticProfitLoss(purchases, transactions)
	p2 := PlasticProfitLoss(purchases, transactions)
	require.Equal(t, p1, p2)
}

func TestTotalValueRemaining(t *testing.T) {
	purchases := []models.TinPurchase{{S16: 2, S10: 3, TinPrice: 10}}

	report := TinStock(purchases, nil)

	assert.Equal(t, 50.0, report.TotalValueRemaining())
}
