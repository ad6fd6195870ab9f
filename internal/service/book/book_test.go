package book

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safdamla/pressbook/internal/domain/models"
)

// memStore keeps the snapshot in memory and can be forced to fail.
type memStore struct {
	snap     models.Snapshot
	readErr  error
	writeErr error
	writes   int
}

func (m *memStore) Read(ctx context.Context) (models.Snapshot, error) {
	if m.readErr != nil {
		return models.Snapshot{}, m.readErr
	}
	return m.snap, nil
}

func (m *memStore) Write(ctx context.Context, snap models.Snapshot) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.snap = snap
	m.writes++
	return nil
}

func newTestService(store *memStore) *Service {
	svc := NewService(store, nil)
	base := time.Date(2025, time.November, 12, 10, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return svc
}

func TestSaveCustomer_CreateAndUpdate(t *testing.T) {
	store := &memStore{snap: models.EmptySnapshot()}
	svc := newTestService(store)
	ctx := context.Background()

	created, err := svc.SaveCustomer(ctx, models.Customer{Name: "Ali Veli"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	tx, err := svc.SaveTransaction(ctx, models.Transaction{
		CustomerID:   created.ID,
		CustomerName: created.Name,
		OliveKg:      100,
		PricePerKg:   3,
	})
	require.NoError(t, err)

	created.Name = "Ali Veli Oğlu"
	updated, err := svc.SaveCustomer(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	// Rename must flow through to the denormalized transaction name.
	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Transactions, 1)
	assert.Equal(t, tx.ID, snap.Transactions[0].ID)
	assert.Equal(t, "Ali Veli Oğlu", snap.Transactions[0].CustomerName)
}

func TestSaveCustomer_UnknownID(t *testing.T) {
	store := &memStore{snap: models.EmptySnapshot()}
	svc := newTestService(store)

	_, err := svc.SaveCustomer(context.Background(), models.Customer{ID: "nope", Name: "X"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCustomer_DropsTransactions(t *testing.T) {
	store := &memStore{snap: models.EmptySnapshot()}
	svc := newTestService(store)
	ctx := context.Background()

	keep, err := svc.SaveCustomer(ctx, models.Customer{Name: "Kalan"})
	require.NoError(t, err)
	gone, err := svc.SaveCustomer(ctx, models.Customer{Name: "Giden"})
	require.NoError(t, err)

	_, err = svc.SaveTransaction(ctx, models.Transaction{CustomerID: keep.ID, CustomerName: keep.Name, OliveKg: 50, PricePerKg: 3})
	require.NoError(t, err)
	_, err = svc.SaveTransaction(ctx, models.Transaction{CustomerID: gone.ID, CustomerName: gone.Name, OliveKg: 80, PricePerKg: 3})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCustomer(ctx, gone.ID))

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Customers, 1)
	assert.Equal(t, keep.ID, snap.Customers[0].ID)
	require.Len(t, snap.Transactions, 1)
	assert.Equal(t, keep.ID, snap.Transactions[0].CustomerID)

	assert.ErrorIs(t, svc.DeleteCustomer(ctx, gone.ID), ErrNotFound)
}

func TestSaveTransaction_DerivesTotals(t *testing.T) {
	store := &memStore{snap: models.EmptySnapshot()}
	svc := newTestService(store)

	tx, err := svc.SaveTransaction(context.Background(), models.Transaction{
		CustomerName:    "Ayşe",
		OliveKg:         200,
		PricePerKg:      3,
		TinCounts:       models.TinSizes{S16: 1},
		TinPrices:       models.TinSizes{S16: 80},
		PaymentReceived: 400,
		// Client-sent totals are ignored and recomputed.
		TotalCost:        9999,
		RemainingBalance: 9999,
	})
	require.NoError(t, err)
	assert.Equal(t, 680.0, tx.TotalCost)
	assert.Equal(t, 280.0, tx.RemainingBalance)
}

func TestSaveTransaction_MatchesCustomerCaseInsensitively(t *testing.T) {
	store := &memStore{snap: models.EmptySnapshot()}
	svc := newTestService(store)
	ctx := context.Background()

	customer, err := svc.SaveCustomer(ctx, models.Customer{Name: "Mehmet Kaya"})
	require.NoError(t, err)

	tx, err := svc.SaveTransaction(ctx, models.Transaction{CustomerName: "MEHMET KAYA", OliveKg: 10, PricePerKg: 3})
	require.NoError(t, err)
	assert.Equal(t, customer.ID, tx.CustomerID)

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Customers, 1)
}

func TestSaveTransaction_CreatesCustomerOnTheFly(t *testing.T) {
	store := &memStore{snap: models.EmptySnapshot()}
	svc := newTestService(store)
	ctx := context.Background()

	tx, err := svc.SaveTransaction(ctx, models.Transaction{CustomerName: "Yeni Müşteri", OliveKg: 10, PricePerKg: 3})
	require.NoError(t, err)
	require.NotEmpty(t, tx.CustomerID)

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Customers, 1)
	assert.Equal(t, "Yeni Müşteri", snap.Customers[0].Name)
	assert.Equal(t, snap.Customers[0].ID, tx.CustomerID)
}

func TestSaveTransaction_MissingName(t *testing.T) {
	store := &memStore{snap: models.EmptySnapshot()}
	svc := newTestService(store)

	_, err := svc.SaveTransaction(context.Background(), models.Transaction{OliveKg: 10})
	assert.ErrorIs(t, err, ErrMissingCustomerName)
}

func TestCollectPayment(t *testing.T) {
	store := &memStore{snap: models.EmptySnapshot()}
	svc := newTestService(store)
	ctx := context.Background()

	customer, err := svc.SaveCustomer(ctx, models.Customer{Name: "Fatma"})
	require.NoError(t, err)

	tx, err := svc.CollectPayment(ctx, customer.ID, 500)
	require.NoError(t, err)
	assert.True(t, tx.IsInterimCollection())
	assert.Equal(t, 500.0, tx.PaymentReceived)
	assert.Equal(t, -500.0, tx.RemainingBalance)
	assert.Equal(t, 0.0, tx.OliveKg)

	// Interim records are frozen: editing must be rejected.
	tx.PaymentReceived = 9000
	_, err = svc.SaveTransaction(ctx, tx)
	assert.ErrorIs(t, err, ErrInterimImmutable)

	// But deleting is allowed.
	require.NoError(t, svc.DeleteTransaction(ctx, tx.ID))

	_, err = svc.CollectPayment(ctx, "missing", 100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveTinPurchase_DerivesTotal(t *testing.T) {
	store := &memStore{snap: models.EmptySnapshot()}
	svc := newTestService(store)
	ctx := context.Background()

	p, err := svc.SaveTinPurchase(ctx, models.TinPurchase{S16: 5, S10: 3, S5: 2, TinPrice: 80, TotalCost: 1})
	require.NoError(t, err)
	assert.Equal(t, 800.0, p.TotalCost)
	require.NotEmpty(t, p.ID)

	p.S16 = 6
	p, err = svc.SaveTinPurchase(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 880.0, p.TotalCost)

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.TinPurchases, 1)

	require.NoError(t, svc.DeleteTinPurchase(ctx, p.ID))
	assert.ErrorIs(t, svc.DeleteTinPurchase(ctx, p.ID), ErrNotFound)
}

func TestSavePlasticPurchase_DerivesTotal(t *testing.T) {
	store := &memStore{snap: models.EmptySnapshot()}
	svc := newTestService(store)

	p, err := svc.SavePlasticPurchase(context.Background(), models.PlasticPurchase{S10: 10, S5: 5, S2: 5, PlasticPrice: 15})
	require.NoError(t, err)
	assert.Equal(t, 300.0, p.TotalCost)
}

func TestSavePomaceRevenue_DerivesTotal(t *testing.T) {
	store := &memStore{snap: models.EmptySnapshot()}
	svc := newTestService(store)

	r, err := svc.SavePomaceRevenue(context.Background(), models.PomaceRevenue{LoadKg: 1000, PricePerKg: 0.9})
	require.NoError(t, err)
	assert.Equal(t, 900.0, r.TotalRevenue)
}

func TestOilTrades_DeriveTotals(t *testing.T) {
	store := &memStore{snap: models.EmptySnapshot()}
	svc := newTestService(store)
	ctx := context.Background()

	p, err := svc.SaveOilPurchase(ctx, models.OilPurchase{TinCount: 10, TinPrice: 200})
	require.NoError(t, err)
	assert.Equal(t, 2000.0, p.TotalCost)

	s, err := svc.SaveOilSale(ctx, models.OilSale{TinCount: 4, TinPrice: 250})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, s.TotalRevenue)
}

func TestExpenses_SaveAndDelete(t *testing.T) {
	store := &memStore{snap: models.EmptySnapshot()}
	svc := newTestService(store)
	ctx := context.Background()

	w, err := svc.SaveWorkerExpense(ctx, models.WorkerExpense{Description: "Sıkım ekibi", Amount: 500})
	require.NoError(t, err)
	o, err := svc.SaveOverheadExpense(ctx, models.OverheadExpense{Description: "Elektrik", Amount: 300})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteWorkerExpense(ctx, w.ID))
	require.NoError(t, svc.DeleteOverheadExpense(ctx, o.ID))

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.WorkerExpenses)
	assert.Empty(t, snap.FactoryOverhead)
}

func TestUpdateDefaultPrices(t *testing.T) {
	store := &memStore{snap: models.EmptySnapshot()}
	svc := newTestService(store)
	ctx := context.Background()

	prices := models.BuiltinDefaultPrices()
	prices.PricePerKg = 3.5
	require.NoError(t, svc.UpdateDefaultPrices(ctx, prices))

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3.5, snap.DefaultPrices.PricePerKg)
}

func TestNextID_Monotonic(t *testing.T) {
	svc := NewService(&memStore{snap: models.EmptySnapshot()}, nil)
	fixed := time.Date(2025, time.November, 12, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	a := svc.nextID()
	b := svc.nextID()
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b)
}

func TestStoreErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")

	svc := newTestService(&memStore{readErr: boom})
	_, err := svc.Snapshot(context.Background())
	assert.ErrorIs(t, err, boom)

	store := &memStore{snap: models.EmptySnapshot(), writeErr: boom}
	svc = newTestService(store)
	_, err = svc.SaveCustomer(context.Background(), models.Customer{Name: "X"})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, store.writes)
}
