package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/safdamla/pressbook/internal/domain/models"
	"github.com/safdamla/pressbook/internal/domain/numeric"
)

// SaveTinPurchase creates or replaces a tin purchase. The stored total is
// derived from the size quantities and the record's single unit price.
func (s *Service) SaveTinPurchase(ctx context.Context, p models.TinPurchase) (models.TinPurchase, error) {
	p.TotalCost = numeric.RoundToTwo((p.S16 + p.S10 + p.S5) * p.TinPrice)

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return models.TinPurchase{}, err
	}
	if p.ID == "" {
		p.ID = s.nextID()
		p.CreatedAt = s.now().UTC()
		snap.TinPurchases = append(snap.TinPurchases, p)
	} else {
		replaced := false
		for i, existing := range snap.TinPurchases {
			if existing.ID == p.ID {
				if p.CreatedAt.IsZero() {
					p.CreatedAt = existing.CreatedAt
				}
				snap.TinPurchases[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			return models.TinPurchase{}, ErrNotFound
		}
	}
	if err := s.store.Write(ctx, snap); err != nil {
		return models.TinPurchase{}, err
	}
	s.logger.Info("tin purchase saved", zap.String("id", p.ID), zap.Float64("totalCost", p.TotalCost))
	return p, nil
}

// DeleteTinPurchase removes a tin purchase by id.
func (s *Service) DeleteTinPurchase(ctx context.Context, id string) error {
	return s.deleteRecord(ctx, id, func(snap *models.Snapshot) bool {
		kept := snap.TinPurchases[:0]
		found := false
		for _, p := range snap.TinPurchases {
			if p.ID == id {
				found = true
				continue
			}
			kept = append(kept, p)
		}
		snap.TinPurchases = kept
		return found
	})
}

// SavePlasticPurchase creates or replaces a plastic jug purchase.
func (s *Service) SavePlasticPurchase(ctx context.Context, p models.PlasticPurchase) (models.PlasticPurchase, error) {
	p.TotalCost = numeric.RoundToTwo((p.S10 + p.S5 + p.S2) * p.PlasticPrice)

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return models.PlasticPurchase{}, err
	}
	if p.ID == "" {
		p.ID = s.nextID()
		p.CreatedAt = s.now().UTC()
		snap.PlasticPurchases = append(snap.PlasticPurchases, p)
	} else {
		replaced := false
		for i, existing := range snap.PlasticPurchases {
			if existing.ID == p.ID {
				if p.CreatedAt.IsZero() {
					p.CreatedAt = existing.CreatedAt
				}
				snap.PlasticPurchases[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			return models.PlasticPurchase{}, ErrNotFound
		}
	}
	if err := s.store.Write(ctx, snap); err != nil {
		return models.PlasticPurchase{}, err
	}
	s.logger.Info("plastic purchase saved", zap.String("id", p.ID), zap.Float64("totalCost", p.TotalCost))
	return p, nil
}

// DeletePlasticPurchase removes a plastic purchase by id.
func (s *Service) DeletePlasticPurchase(ctx context.Context, id string) error {
	return s.deleteRecord(ctx, id, func(snap *models.Snapshot) bool {
		kept := snap.PlasticPurchases[:0]
		found := false
		for _, p := range snap.PlasticPurchases {
			if p.ID == id {
				found = true
				continue
			}
			kept = append(kept, p)
		}
		snap.PlasticPurchases = kept
		return found
	})
}

// SaveWorkerExpense creates or replaces a worker expense record.
func (s *Service) SaveWorkerExpense(ctx context.Context, e models.WorkerExpense) (models.WorkerExpense, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return models.WorkerExpense{}, err
	}
	if e.ID == "" {
		e.ID = s.nextID()
		snap.WorkerExpenses = append(snap.WorkerExpenses, e)
	} else {
		replaced := false
		for i, existing := range snap.WorkerExpenses {
			if existing.ID == e.ID {
				snap.WorkerExpenses[i] = e
				replaced = true
				break
			}
		}
		if !replaced {
			return models.WorkerExpense{}, ErrNotFound
		}
	}
	if err := s.store.Write(ctx, snap); err != nil {
		return models.WorkerExpense{}, err
	}
	s.logger.Info("worker expense saved", zap.String("id", e.ID), zap.Float64("amount", e.Amount))
	return e, nil
}

// DeleteWorkerExpense removes a worker expense by id.
func (s *Service) DeleteWorkerExpense(ctx context.Context, id string) error {
	return s.deleteRecord(ctx, id, func(snap *models.Snapshot) bool {
		kept := snap.WorkerExpenses[:0]
		found := false
		for _, e := range snap.WorkerExpenses {
			if e.ID == id {
				found = true
				continue
			}
			kept = append(kept, e)
		}
		snap.WorkerExpenses = kept
		return found
	})
}

// SaveOverheadExpense creates or replaces a factory overhead record.
func (s *Service) SaveOverheadExpense(ctx context.Context, e models.OverheadExpense) (models.OverheadExpense, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return models.OverheadExpense{}, err
	}
	if e.ID == "" {
		e.ID = s.nextID()
		snap.FactoryOverhead = append(snap.FactoryOverhead, e)
	} else {
		replaced := false
		for i, existing := range snap.FactoryOverhead {
			if existing.ID == e.ID {
				snap.FactoryOverhead[i] = e
				replaced = true
				break
			}
		}
		if !replaced {
			return models.OverheadExpense{}, ErrNotFound
		}
	}
	if err := s.store.Write(ctx, snap); err != nil {
		return models.OverheadExpense{}, err
	}
	s.logger.Info("overhead expense saved", zap.String("id", e.ID), zap.Float64("amount", e.Amount))
	return e, nil
}

// DeleteOverheadExpense removes an overhead record by id.
func (s *Service) DeleteOverheadExpense(ctx context.Context, id string) error {
	return s.deleteRecord(ctx, id, func(snap *models.Snapshot) bool {
		kept := snap.FactoryOverhead[:0]
		found := false
		for _, e := range snap.FactoryOverhead {
			if e.ID == id {
				found = true
				continue
			}
			kept = append(kept, e)
		}
		snap.FactoryOverhead = kept
		return found
	})
}

// SavePomaceRevenue creates or replaces a pomace revenue record; the stored
// total is loadKg times pricePerKg.
func (s *Service) SavePomaceRevenue(ctx context.Context, r models.PomaceRevenue) (models.PomaceRevenue, error) {
	r.TotalRevenue = numeric.RoundToTwo(r.LoadKg * r.PricePerKg)

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return models.PomaceRevenue{}, err
	}
	if r.ID == "" {
		r.ID = s.nextID()
		snap.PomaceRevenues = append(snap.PomaceRevenues, r)
	} else {
		replaced := false
		for i, existing := range snap.PomaceRevenues {
			if existing.ID == r.ID {
				snap.PomaceRevenues[i] = r
				replaced = true
				break
			}
		}
		if !replaced {
			return models.PomaceRevenue{}, ErrNotFound
		}
	}
	if err := s.store.Write(ctx, snap); err != nil {
		return models.PomaceRevenue{}, err
	}
	s.logger.Info("pomace revenue saved", zap.String("id", r.ID), zap.Float64("totalRevenue", r.TotalRevenue))
	return r, nil
}

// DeletePomaceRevenue removes a pomace revenue record by id.
func (s *Service) DeletePomaceRevenue(ctx context.Context, id string) error {
	return s.deleteRecord(ctx, id, func(snap *models.Snapshot) bool {
		kept := snap.PomaceRevenues[:0]
		found := false
		for _, r := range snap.PomaceRevenues {
			if r.ID == id {
				found = true
				continue
			}
			kept = append(kept, r)
		}
		snap.PomaceRevenues = kept
		return found
	})
}

// SaveOilPurchase creates or replaces a bulk oil purchase; the stored total
// is tinCount times tinPrice.
func (s *Service) SaveOilPurchase(ctx context.Context, p models.OilPurchase) (models.OilPurchase, error) {
	p.TotalCost = numeric.RoundToTwo(p.TinCount * p.TinPrice)

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return models.OilPurchase{}, err
	}
	if p.ID == "" {
		p.ID = s.nextID()
		p.CreatedAt = s.now().UTC()
		snap.OilPurchases = append(snap.OilPurchases, p)
	} else {
		replaced := false
		for i, existing := range snap.OilPurchases {
			if existing.ID == p.ID {
				if p.CreatedAt.IsZero() {
					p.CreatedAt = existing.CreatedAt
				}
				snap.OilPurchases[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			return models.OilPurchase{}, ErrNotFound
		}
	}
	if err := s.store.Write(ctx, snap); err != nil {
		return models.OilPurchase{}, err
	}
	s.logger.Info("oil purchase saved", zap.String("id", p.ID), zap.Float64("totalCost", p.TotalCost))
	return p, nil
}

// DeleteOilPurchase removes an oil purchase by id.
func (s *Service) DeleteOilPurchase(ctx context.Context, id string) error {
	return s.deleteRecord(ctx, id, func(snap *models.Snapshot) bool {
		kept := snap.OilPurchases[:0]
		found := false
		for _, p := range snap.OilPurchases {
			if p.ID == id {
				found = true
				continue
			}
			kept = append(kept, p)
		}
		snap.OilPurchases = kept
		return found
	})
}

// SaveOilSale creates or replaces a bulk oil sale; the stored total is
// tinCount times tinPrice.
func (s *Service) SaveOilSale(ctx context.Context, sale models.OilSale) (models.OilSale, error) {
	sale.TotalRevenue = numeric.RoundToTwo(sale.TinCount * sale.TinPrice)

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return models.OilSale{}, err
	}
	if sale.ID == "" {
		sale.ID = s.nextID()
		sale.CreatedAt = s.now().UTC()
		snap.OilSales = append(snap.OilSales, sale)
	} else {
		replaced := false
		for i, existing := range snap.OilSales {
			if existing.ID == sale.ID {
				if sale.CreatedAt.IsZero() {
					sale.CreatedAt = existing.CreatedAt
				}
				snap.OilSales[i] = sale
				replaced = true
				break
			}
		}
		if !replaced {
			return models.OilSale{}, ErrNotFound
		}
	}
	if err := s.store.Write(ctx, snap); err != nil {
		return models.OilSale{}, err
	}
	s.logger.Info("oil sale saved", zap.String("id", sale.ID), zap.Float64("totalRevenue", sale.TotalRevenue))
	return sale, nil
}

// DeleteOilSale removes an oil sale by id.
func (s *Service) DeleteOilSale(ctx context.Context, id string) error {
	return s.deleteRecord(ctx, id, func(snap *models.Snapshot) bool {
		kept := snap.OilSales[:0]
		found := false
		for _, sale := range snap.OilSales {
			if sale.ID == id {
				found = true
				continue
			}
			kept = append(kept, sale)
		}
		snap.OilSales = kept
		return found
	})
}

func (s *Service) deleteRecord(ctx context.Context, id string, remove func(*models.Snapshot) bool) error {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	if !remove(&snap) {
		return ErrNotFound
	}
	if err := s.store.Write(ctx, snap); err != nil {
		return err
	}
	s.logger.Info("record deleted", zap.String("id", id))
	return nil
}
