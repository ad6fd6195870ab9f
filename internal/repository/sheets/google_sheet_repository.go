package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/safdamla/pressbook/internal/config"
)

// summaryRange is where daily summary rows are appended.
const summaryRange = "Ozet!A:I"

// SummaryRow is one spreadsheet line of the factory's daily position.
type SummaryRow struct {
	Timestamp              time.Time
	TotalIncome            float64
	TotalExpense           float64
	NetBalance             float64
	PendingPayments        float64
	RemainingTinStockValue float64
	RemainingJugStockValue float64
	OilTradingProfit       float64
	PendingSyncWrites      int
}

// Repository defines the spreadsheet backup operations.
type Repository interface {
	AppendSummaryRow(ctx context.Context, row SummaryRow) error
}

// GoogleSheetRepository implements the Repository interface using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendSummaryRow appends the summary values as a new spreadsheet row.
func (r *GoogleSheetRepository) AppendSummaryRow(ctx context.Context, row SummaryRow) error {
	values := []interface{}{
		row.Timestamp.Format("2006-01-02 15:04:05"),
		row.TotalIncome,
		row.TotalExpense,
		row.NetBalance,
		row.PendingPayments,
		row.RemainingTinStockValue,
		row.RemainingJugStockValue,
		row.OilTradingProfit,
		row.PendingSyncWrites,
	}
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, summaryRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append summary row into range %s: %w", summaryRange, err)
	}

	r.logger.Debug("summary row appended to sheet", zap.String("range", summaryRange))
	return nil
}
