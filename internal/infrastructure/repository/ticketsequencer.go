package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"civicgrid/internal/domain/issue"
	"civicgrid/internal/infrastructure/persistence/models"
	"civicgrid/internal/shared/biztime"
	"civicgrid/internal/shared/db"
	"civicgrid/internal/shared/logger"
)

// TicketSequencer mints yearly ticket numbers from a per-year counter row.
// Next must run inside the caller's transaction: the counter row is locked
// with SELECT FOR UPDATE so concurrent creations serialize on the increment,
// and a rolled-back creation releases its number with the transaction.
type TicketSequencer struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewTicketSequencer(database *gorm.DB, log logger.Interface) *TicketSequencer {
	return &TicketSequencer{
		db:     database,
		logger: log.Named("ticket_sequencer"),
	}
}

var _ issue.Sequencer = (*TicketSequencer)(nil)

func (s *TicketSequencer) Next(ctx context.Context, year int) (string, error) {
	tx := db.GetTxFromContext(ctx, s.db)
	now := biztime.NowUTC()

	// First creation of a year races with itself; the conflict clause makes
	// the seed insert idempotent.
	seed := models.TicketCounterModel{Year: year, Value: 0, UpdatedAt: now}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return "", fmt.Errorf("failed to seed ticket counter for %d: %w", year, err)
	}

	var counter models.TicketCounterModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("year = ?", year).
		First(&counter).Error; err != nil {
		return "", fmt.Errorf("failed to lock ticket counter for %d: %w", year, err)
	}

	next := counter.Value + 1
	result := tx.
		Model(&models.TicketCounterModel{}).
		Where("year = ?", year).
		Updates(map[string]interface{}{
			"value":      next,
			"updated_at": now,
		})
	if result.Error != nil {
		return "", fmt.Errorf("failed to increment ticket counter for %d: %w", year, result.Error)
	}

	number := issue.FormatTicketNumber(year, next)
	s.logger.Debugw("minted ticket number", "year", year, "sequence", next)
	return number, nil
}
