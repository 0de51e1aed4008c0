package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/garderoba/internal/model"
)

// MaxListLimit caps a single page of the wardrobe listing.
const MaxListLimit = 1000

// CreateItem inserts a confirmed wardrobe item. Returns ErrDuplicateID if the
// identifier is already taken.
func CreateItem(ctx context.Context, db Querier, item *model.Item) (*model.Item, error) {
	season, err := encodeSeason(item.Season)
	if err != nil {
		return nil, err
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO wardrobe_items
		   (id, category, type, subtype,
		    color_name, color_r, color_g, color_b, color_group,
		    fit, formality, season, image_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Category, item.Type, item.Subtype,
		item.Color.Name, item.Color.RGB[0], item.Color.RGB[1], item.Color.RGB[2], item.Color.Group,
		item.Fit, item.Formality, season, item.ImagePath,
	)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("creating wardrobe item %s: %w", item.ID, ErrDuplicateID)
	}
	if err != nil {
		return nil, fmt.Errorf("creating wardrobe item: %w", err)
	}

	return GetItem(ctx, db, item.ID)
}

// GetItem returns a wardrobe item by identifier, or nil if it doesn't exist
// or has been deleted.
func GetItem(ctx context.Context, db Querier, id string) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT id, category, type, subtype,
		        color_name, color_r, color_g, color_b, color_group,
		        fit, formality, season, image_path, created_at, updated_at
		 FROM wardrobe_items WHERE id = ? AND deleted_at IS NULL`, id,
	)

	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting wardrobe item: %w", err)
	}
	return item, nil
}

// ListItems returns a page of wardrobe items in insertion order. The limit is
// clamped to MaxListLimit; zero or negative means a full page.
func ListItems(ctx context.Context, db Querier, offset, limit int) ([]model.Item, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, category, type, subtype,
		        color_name, color_r, color_g, color_b, color_group,
		        fit, formality, season, image_path, created_at, updated_at
		 FROM wardrobe_items WHERE deleted_at IS NULL
		 ORDER BY rowid LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("listing wardrobe items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning wardrobe item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateItem merges a partial update into a wardrobe item and returns the
// updated item, or nil if the identifier doesn't exist. Omitted fields are
// left untouched; the identifier itself is immutable.
func UpdateItem(ctx context.Context, db Querier, id string, patch model.ItemPatch) (*model.Item, error) {
	item, err := GetItem(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	patch.Apply(item)

	season, err := encodeSeason(item.Season)
	if err != nil {
		return nil, err
	}

	_, err = db.ExecContext(ctx,
		`UPDATE wardrobe_items
		 SET category = ?, type = ?, subtype = ?,
		     color_name = ?, color_r = ?, color_g = ?, color_b = ?, color_group = ?,
		     fit = ?, formality = ?, season = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		item.Category, item.Type, item.Subtype,
		item.Color.Name, item.Color.RGB[0], item.Color.RGB[1], item.Color.RGB[2], item.Color.Group,
		item.Fit, item.Formality, season, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating wardrobe item: %w", err)
	}

	return GetItem(ctx, db, id)
}

// DeleteItem soft-deletes a wardrobe item. Returns false if no item existed.
// The row is kept so the identifier stays in the allocator universe and is
// never handed out again; the caller is responsible for releasing the item's
// image afterwards.
func DeleteItem(ctx context.Context, db Querier, id string) (bool, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE wardrobe_items SET deleted_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`, id,
	)
	if err != nil {
		return false, fmt.Errorf("deleting wardrobe item: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting wardrobe item: %w", err)
	}
	return n > 0, nil
}

// AllIdentifiers returns the set of identifiers ever committed to the
// wardrobe, including deleted items. This is the universe the allocator scans.
func AllIdentifiers(ctx context.Context, db Querier) (map[string]struct{}, error) {
	rows, err := db.QueryContext(ctx, `SELECT id FROM wardrobe_items`)
	if err != nil {
		return nil, fmt.Errorf("listing wardrobe identifiers: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning wardrobe identifier: %w", err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

func scanItem(s scanner) (*model.Item, error) {
	item := &model.Item{}
	var season string
	err := s.Scan(
		&item.ID, &item.Category, &item.Type, &item.Subtype,
		&item.Color.Name, &item.Color.RGB[0], &item.Color.RGB[1], &item.Color.RGB[2], &item.Color.Group,
		&item.Fit, &item.Formality, &season, &item.ImagePath, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Season, err = decodeSeason(season)
	if err != nil {
		return nil, err
	}
	return item, nil
}
