// Package book is the write side of the ledger: every mutation reads the
// full snapshot through the store, applies a replace-by-id (or append) to
// the affected collection, recomputes the record's stored derived fields,
// and writes the whole snapshot back. This mirrors how the data is
// persisted: one document per user, replaced wholesale on every save.
package book

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/safdamla/pressbook/internal/domain/models"
	"github.com/safdamla/pressbook/internal/service/ledger"
)

// ErrInterimImmutable is returned when a caller tries to edit an interim
// collection record; those are payment-only entries and frozen by policy.
var ErrInterimImmutable = errors.New("interim collection records cannot be edited")

// ErrNotFound is returned when a referenced record id does not exist.
var ErrNotFound = errors.New("record not found")

// ErrMissingCustomerName is returned when a transaction arrives without a
// customer name to match or create against.
var ErrMissingCustomerName = errors.New("customer name must be provided")

// Store supplies and accepts full ledger snapshots.
type Store interface {
	Read(ctx context.Context) (models.Snapshot, error)
	Write(ctx context.Context, snap models.Snapshot) error
}

// Service implements the bookkeeping operations on top of a snapshot store.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time

	mu     sync.Mutex
	lastID int64
}

// NewService wires a bookkeeping service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// Snapshot reads and normalizes the current ledger.
func (s *Service) Snapshot(ctx context.Context) (models.Snapshot, error) {
	snap, err := s.store.Read(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	snap.Normalize()
	return snap, nil
}

// nextID generates a millisecond-timestamp id, bumped process-locally so two
// saves inside the same millisecond still get distinct ids.
func (s *Service) nextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

// SaveCustomer creates or replaces a customer record.
func (s *Service) SaveCustomer(ctx context.Context, customer models.Customer) (models.Customer, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return models.Customer{}, err
	}

	if customer.ID == "" {
		customer.ID = s.nextID()
		customer.CreatedAt = s.now().UTC()
		snap.Customers = append(snap.Customers, customer)
	} else {
		replaced := false
		for i, c := range snap.Customers {
			if c.ID == customer.ID {
				if customer.CreatedAt.IsZero() {
					customer.CreatedAt = c.CreatedAt
				}
				snap.Customers[i] = customer
				replaced = true
				break
			}
		}
		if !replaced {
			return models.Customer{}, ErrNotFound
		}
		// Keep the denormalized name on the customer's transactions in sync.
		for i, t := range snap.Transactions {
			if t.CustomerID == customer.ID {
				snap.Transactions[i].CustomerName = customer.Name
			}
		}
	}

	if err := s.store.Write(ctx, snap); err != nil {
		return models.Customer{}, err
	}
	s.logger.Info("customer saved", zap.String("id", customer.ID))
	return customer, nil
}

// DeleteCustomer removes a customer and every transaction belonging to it.
func (s *Service) DeleteCustomer(ctx context.Context, id string) error {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	customers := snap.Customers[:0]
	found := false
	for _, c := range snap.Customers {
		if c.ID == id {
			found = true
			continue
		}
		customers = append(customers, c)
	}
	if !found {
		return ErrNotFound
	}
	snap.Customers = customers

	transactions := snap.Transactions[:0]
	for _, t := range snap.Transactions {
		if t.CustomerID == id {
			continue
		}
		transactions = append(transactions, t)
	}
	snap.Transactions = transactions

	if err := s.store.Write(ctx, snap); err != nil {
		return err
	}
	s.logger.Info("customer deleted", zap.String("id", id))
	return nil
}

// SaveTransaction creates or replaces a transaction. The stored totalCost
// and remainingBalance are always recomputed from the raw fields; when no
// customer id is supplied the customer is matched case-insensitively by
// name, or created on the fly as the original form flow does.
func (s *Service) SaveTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if tx.CustomerName == "" {
		return models.Transaction{}, ErrMissingCustomerName
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return models.Transaction{}, err
	}

	if tx.CustomerID == "" {
		if existing, ok := ledger.FindCustomerByName(snap.Customers, tx.CustomerName); ok {
			tx.CustomerID = existing.ID
		} else {
			customer := models.Customer{
				ID:        s.nextID(),
				Name:      tx.CustomerName,
				CreatedAt: s.now().UTC(),
			}
			snap.Customers = append(snap.Customers, customer)
			tx.CustomerID = customer.ID
		}
	}

	ledger.Derive(&tx)

	if tx.ID == "" {
		tx.ID = s.nextID()
		snap.Transactions = append(snap.Transactions, tx)
	} else {
		replaced := false
		for i, existing := range snap.Transactions {
			if existing.ID != tx.ID {
				continue
			}
			if existing.IsInterimCollection() {
				return models.Transaction{}, ErrInterimImmutable
			}
			snap.Transactions[i] = tx
			replaced = true
			break
		}
		if !replaced {
			return models.Transaction{}, ErrNotFound
		}
	}

	if err := s.store.Write(ctx, snap); err != nil {
		return models.Transaction{}, err
	}
	s.logger.Info("transaction saved",
		zap.String("id", tx.ID),
		zap.String("customerId", tx.CustomerID),
		zap.Float64("totalCost", tx.TotalCost))
	return tx, nil
}

// DeleteTransaction removes a transaction by id.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	transactions := snap.Transactions[:0]
	found := false
	for _, t := range snap.Transactions {
		if t.ID == id {
			found = true
			continue
		}
		transactions = append(transactions, t)
	}
	if !found {
		return ErrNotFound
	}
	snap.Transactions = transactions

	if err := s.store.Write(ctx, snap); err != nil {
		return err
	}
	s.logger.Info("transaction deleted", zap.String("id", id))
	return nil
}

// CollectPayment records an interim collection for a customer: a
// payment-only transaction whose remaining balance is the negative of the
// collected amount.
func (s *Service) CollectPayment(ctx context.Context, customerID string, amount float64) (models.Transaction, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return models.Transaction{}, err
	}

	var customer models.Customer
	found := false
	for _, c := range snap.Customers {
		if c.ID == customerID {
			customer = c
			found = true
			break
		}
	}
	if !found {
		return models.Transaction{}, ErrNotFound
	}

	tx := ledger.NewInterimPayment(customer.ID, customer.Name, amount, s.now().UTC())
	tx.ID = s.nextID()
	snap.Transactions = append(snap.Transactions, tx)

	if err := s.store.Write(ctx, snap); err != nil {
		return models.Transaction{}, err
	}
	s.logger.Info("interim payment collected",
		zap.String("customerId", customerID),
		zap.Float64("amount", amount))
	return tx, nil
}

// UpdateDefaultPrices replaces the default-prices singleton. Stored records
// are untouched; defaults only pre-fill future forms.
func (s *Service) UpdateDefaultPrices(ctx context.Context, prices models.DefaultPrices) error {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	snap.DefaultPrices = prices
	if err := s.store.Write(ctx, snap); err != nil {
		return err
	}
	s.logger.Info("default prices updated")
	return nil
}
