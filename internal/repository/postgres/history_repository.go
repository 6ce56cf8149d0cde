package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fairTune/business/listener"
	"fairTune/business/recommender"
	"fairTune/domain"
)

type HistoryRepository struct {
	DB *gorm.DB
}

var _ recommender.HistoryRepository = (*HistoryRepository)(nil)
var _ listener.HistoryRepository = (*HistoryRepository)(nil)

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{
		DB: db,
	}
}

// GetHistorySet loads every item id the listener has heard into a lookup
// set for the novelty stage.
func (r *HistoryRepository) GetHistorySet(ctx context.Context, listenerID uint) (domain.HistorySet, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var itemIDs []string
	if err := r.DB.WithContext(ctx).
		Model(&domain.ListenEntry{}).
		Where("listener_id = ?", listenerID).
		Pluck("item_id", &itemIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to query listen_entries: %w", err)
	}

	return domain.NewHistorySet(itemIDs...), nil
}

func (r *HistoryRepository) GetItems(ctx context.Context, listenerID uint) ([]string, error) {
	var itemIDs []string
	if err := r.DB.WithContext(ctx).
		Model(&domain.ListenEntry{}).
		Where("listener_id = ?", listenerID).
		Order("created_at ASC").
		Pluck("item_id", &itemIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to query listen_entries: %w", err)
	}

	return itemIDs, nil
}

// AddEntries inserts listened items, silently skipping ones the listener
// already has.
func (r *HistoryRepository) AddEntries(ctx context.Context, listenerID uint, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return nil
	}

	rows := make([]domain.ListenEntry, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		rows = append(rows, domain.ListenEntry{
			ListenerID: listenerID,
			ItemID:     itemID,
		})
	}

	if err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "listener_id"}, {Name: "item_id"}},
			DoNothing: true,
		}).
		CreateInBatches(rows, 200).Error; err != nil {
		return fmt.Errorf("failed to insert listen_entries: %w", err)
	}

	return nil
}
