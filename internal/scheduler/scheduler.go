package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/safdamla/pressbook/internal/config"
	"github.com/safdamla/pressbook/internal/repository/sheets"
	"github.com/safdamla/pressbook/internal/service/book"
	"github.com/safdamla/pressbook/internal/service/summary"
	"github.com/safdamla/pressbook/internal/syncer"
)

// Scheduler manages the recurring jobs: the connectivity poll that replays
// queued offline writes, and the daily summary backup to the spreadsheet.
type Scheduler struct {
	cron       *cron.Cron
	sync       *syncer.Syncer
	bookSvc    *book.Service
	sheetsRepo sheets.Repository
	cfg        config.Config
	logger     *zap.Logger
}

// NewScheduler creates a new scheduler instance. A nil sheets repository
// disables the spreadsheet backup job.
func NewScheduler(cfg config.Config, sync *syncer.Syncer, bookSvc *book.Service, sheetsRepo sheets.Repository, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour,
	// dom, month, dow) plus the @every descriptors.
	c := cron.New()

	return &Scheduler{
		cron:       c,
		sync:       sync,
		bookSvc:    bookSvc,
		sheetsRepo: sheetsRepo,
		cfg:        cfg,
		logger:     logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	if _, err := s.cron.AddFunc(s.cfg.Sync.PollSchedule, s.pollConnectivity); err != nil {
		s.logger.Error("failed to schedule connectivity poll", zap.Error(err))
	}

	if s.sheetsRepo != nil {
		if _, err := s.cron.AddFunc(s.cfg.Backup.CronSchedule, s.backupSummary); err != nil {
			s.logger.Error("failed to schedule summary backup", zap.Error(err))
		}
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) pollConnectivity() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.sync.Probe(ctx); err != nil {
		s.logger.Warn("connectivity poll failed", zap.Error(err))
		return
	}
	s.logger.Debug("connectivity poll ok")
}

func (s *Scheduler) backupSummary() {
	s.logger.Info("writing summary backup row")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	snap, err := s.bookSvc.Snapshot(ctx)
	if err != nil {
		s.logger.Error("failed to load snapshot for backup", zap.Error(err))
		return
	}

	factory := summary.Consolidated(snap)
	dashboard := summary.Dashboard(snap)
	oil := summary.Oil(snap.OilPurchases, snap.OilSales)

	row := sheets.SummaryRow{
		Timestamp:              time.Now(),
		TotalIncome:            factory.TotalIncome,
		TotalExpense:           factory.TotalExpense,
		NetBalance:             factory.NetBalance,
		PendingPayments:        dashboard.PendingPayments,
		RemainingTinStockValue: factory.RemainingTinStockValue,
		RemainingJugStockValue: factory.RemainingJugStockValue,
		OilTradingProfit:       oil.TradingProfit,
		PendingSyncWrites:      s.sync.Status().PendingCount,
	}

	if err := s.sheetsRepo.AppendSummaryRow(ctx, row); err != nil {
		s.logger.Error("failed to append summary backup row", zap.Error(err))
		return
	}
	s.logger.Info("summary backup row written")
}
