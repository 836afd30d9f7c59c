package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tileman/internal/deser"
	"tileman/internal/tiles"
)

// Store keeps catalogue snapshots keyed by root path.
type Store struct {
	db  *gorm.DB
	tx  TxManager
	Now func() time.Time
}

func New(db *gorm.DB) Store {
	return Store{db: db, tx: NewTxManager(db), Now: time.Now}
}

// Export replaces the snapshot stored for ti.Root in one transaction.
// Errored lines are not persisted.
func (s Store) Export(ctx context.Context, ti *deser.TileInit) error {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	cats, tileRows := catalogueRows(ti, now)
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		db := getDBFromCtx(ctx, s.db)
		if err := db.Where("root = ?", ti.Root).Delete(&TileRow{}).Error; err != nil {
			return fmt.Errorf("clear tiles of %s: %w", ti.Root, err)
		}
		if err := db.Where("root = ?", ti.Root).Delete(&CategoryRow{}).Error; err != nil {
			return fmt.Errorf("clear categories of %s: %w", ti.Root, err)
		}
		if len(cats) == 0 {
			return nil
		}
		if err := db.Create(&cats).Error; err != nil {
			return fmt.Errorf("insert categories: %w", err)
		}
		var all []TileRow
		for i, rows := range tileRows {
			for j := range rows {
				rows[j].CategoryID = cats[i].ID
			}
			all = append(all, rows...)
		}
		if len(all) == 0 {
			return nil
		}
		if err := db.CreateInBatches(&all, 500).Error; err != nil {
			return fmt.Errorf("insert tiles: %w", err)
		}
		return nil
	})
}

// Load reads the snapshot of root back, categories by ordinal and tiles by
// position. A root that was never exported yields an empty catalogue.
func (s Store) Load(ctx context.Context, root string) (deser.TileInit, error) {
	db := getDBFromCtx(ctx, s.db)
	var cats []CategoryRow
	err := db.Where("root = ?", root).
		Clauses(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "ordinal"}}}}).
		Find(&cats).Error
	if err != nil {
		return deser.TileInit{}, fmt.Errorf("load categories of %s: %w", root, err)
	}
	var rows []TileRow
	err = db.Where("root = ?", root).
		Clauses(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: "category_id"}},
			{Column: clause.Column{Name: "position"}},
		}}).
		Find(&rows).Error
	if err != nil {
		return deser.TileInit{}, fmt.Errorf("load tiles of %s: %w", root, err)
	}
	return assemble(root, cats, rows)
}

func assemble(root string, cats []CategoryRow, rows []TileRow) (deser.TileInit, error) {
	out := deser.TileInit{
		Root:         root,
		Categories:   make([]tiles.TileCategory, 0, len(cats)),
		ErroredLines: []deser.ErroredLine{},
	}
	byID := make(map[uint]int, len(cats))
	for _, c := range cats {
		byID[c.ID] = len(out.Categories)
		out.Categories = append(out.Categories, categoryFromRow(c))
	}
	for _, r := range rows {
		i, ok := byID[r.CategoryID]
		if !ok {
			return deser.TileInit{}, fmt.Errorf("tile %q references unknown category %d", r.Name, r.CategoryID)
		}
		t, err := tileFromRow(r)
		if err != nil {
			return deser.TileInit{}, fmt.Errorf("tile %q: %w", r.Name, err)
		}
		out.Categories[i].Tiles = append(out.Categories[i].Tiles, t)
	}
	return out, nil
}
