package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/RichStephens/killzone/internal/game"
	"github.com/RichStephens/killzone/internal/keys"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultListLimit = 10

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) RecordCombat(rec *game.CombatRecord) error {
	if rec.OccurredAt.IsZero() {
		rec.OccurredAt = time.Now()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return err
		}
		if err := upsertStats(tx, rec.WinnerName, 1, 0, rec.OccurredAt); err != nil {
			return err
		}
		return upsertStats(tx, rec.LoserName, 0, 1, rec.OccurredAt)
	})
}

// upsertStats adds the given deltas to the fighter's row, creating it on
// first sight.
func upsertStats(tx *gorm.DB, name string, wins, losses int, at time.Time) error {
	key := keys.FighterKey(name)
	if key == "" {
		return nil
	}
	row := game.FighterStats{
		NameKey:     key,
		DisplayName: name,
		Wins:        wins,
		Losses:      losses,
		LastFightAt: at,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"display_name":  name,
			"wins":          gorm.Expr("wins + ?", wins),
			"losses":        gorm.Expr("losses + ?", losses),
			"last_fight_at": at,
			"updated_at":    time.Now(),
		}),
	}).Create(&row).Error
}

func (r *sqliteRepository) RecentCombats(limit int) ([]game.CombatRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var recs []game.CombatRecord
	if err := r.db.Order("occurred_at DESC").Order("id DESC").Limit(limit).Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// GetTopFighters returns top N fighters ordered by wins desc, then losses asc.
func (r *sqliteRepository) GetTopFighters(limit int) ([]game.FighterStats, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var stats []game.FighterStats
	if err := r.db.Model(&game.FighterStats{}).
		Order("wins DESC").
		Order("losses ASC").
		Order("display_name ASC").
		Limit(limit).
		Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *sqliteRepository) GetStatsByName(name string) (*game.FighterStats, error) {
	var s game.FighterStats
	if err := r.db.Where("name_key = ?", keys.FighterKey(name)).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: fighter %q", game.ErrNotFound, name)
		}
		return nil, err
	}
	return &s, nil
}
