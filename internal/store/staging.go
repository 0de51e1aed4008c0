package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erazemk/garderoba/internal/model"
)

// CreateStaging inserts a new pending staging record and returns it with
// store-assigned timestamps.
func CreateStaging(ctx context.Context, db Querier, rec *model.StagingRecord) (*model.StagingRecord, error) {
	season, err := encodeSeason(rec.Season)
	if err != nil {
		return nil, err
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO staging_items
		   (token, item_id, category, type, subtype,
		    color_name, color_r, color_g, color_b, color_group,
		    fit, formality, season, image_path, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Token, rec.ItemID, rec.Category, rec.Type, rec.Subtype,
		rec.Color.Name, rec.Color.RGB[0], rec.Color.RGB[1], rec.Color.RGB[2], rec.Color.Group,
		rec.Fit, rec.Formality, season, rec.ImagePath, model.StagingStatusPending,
	)
	if err != nil {
		return nil, fmt.Errorf("creating staging record: %w", err)
	}

	return GetStaging(ctx, db, rec.Token)
}

// GetStaging returns a staging record by token, or nil if it doesn't exist.
func GetStaging(ctx context.Context, db Querier, token string) (*model.StagingRecord, error) {
	row := db.QueryRowContext(ctx,
		`SELECT token, item_id, category, type, subtype,
		        color_name, color_r, color_g, color_b, color_group,
		        fit, formality, season, image_path, status, created_at
		 FROM staging_items WHERE token = ?`, token,
	)

	rec, err := scanStaging(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting staging record: %w", err)
	}
	return rec, nil
}

// UpdateStaging merges a partial update into a pending staging record and
// returns the updated record. Returns nil if the token doesn't exist and
// ErrNotPending if the record has already reached a terminal status. Omitted
// fields are left untouched.
func UpdateStaging(ctx context.Context, db Querier, token string, patch model.ItemPatch) (*model.StagingRecord, error) {
	rec, err := GetStaging(ctx, db, token)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	if rec.Status != model.StagingStatusPending {
		return nil, ErrNotPending
	}

	item := rec.Item(rec.ItemID, rec.ImagePath)
	patch.Apply(item)

	season, err := encodeSeason(item.Season)
	if err != nil {
		return nil, err
	}

	// The status guard in the WHERE clause keeps a concurrent terminal
	// transition from being overwritten between the read and this write.
	_, err = db.ExecContext(ctx,
		`UPDATE staging_items
		 SET category = ?, type = ?, subtype = ?,
		     color_name = ?, color_r = ?, color_g = ?, color_b = ?, color_group = ?,
		     fit = ?, formality = ?, season = ?
		 WHERE token = ? AND status = ?`,
		item.Category, item.Type, item.Subtype,
		item.Color.Name, item.Color.RGB[0], item.Color.RGB[1], item.Color.RGB[2], item.Color.Group,
		item.Fit, item.Formality, season,
		token, model.StagingStatusPending,
	)
	if err != nil {
		return nil, fmt.Errorf("updating staging record: %w", err)
	}

	return GetStaging(ctx, db, token)
}

// DeleteStaging removes a staging record. Returns false if no record existed.
func DeleteStaging(ctx context.Context, db Querier, token string) (bool, error) {
	result, err := db.ExecContext(ctx,
		`DELETE FROM staging_items WHERE token = ?`, token,
	)
	if err != nil {
		return false, fmt.Errorf("deleting staging record: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting staging record: %w", err)
	}
	return n > 0, nil
}

// ListStagingBefore returns pending staging records created before the
// cutoff, oldest first. The reaper uses this to discard abandoned records.
func ListStagingBefore(ctx context.Context, db Querier, cutoff time.Time) ([]model.StagingRecord, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT token, item_id, category, type, subtype,
		        color_name, color_r, color_g, color_b, color_group,
		        fit, formality, season, image_path, status, created_at
		 FROM staging_items
		 WHERE status = ? AND created_at < ?
		 ORDER BY created_at`,
		// created_at is written by CURRENT_TIMESTAMP, so the cutoff must be
		// rendered in the same UTC text format for the comparison to hold.
		model.StagingStatusPending, cutoff.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return nil, fmt.Errorf("listing stale staging records: %w", err)
	}
	defer rows.Close()

	var records []model.StagingRecord
	for rows.Next() {
		rec, err := scanStaging(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning staging record: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanStaging(s scanner) (*model.StagingRecord, error) {
	rec := &model.StagingRecord{}
	var season string
	err := s.Scan(
		&rec.Token, &rec.ItemID, &rec.Category, &rec.Type, &rec.Subtype,
		&rec.Color.Name, &rec.Color.RGB[0], &rec.Color.RGB[1], &rec.Color.RGB[2], &rec.Color.Group,
		&rec.Fit, &rec.Formality, &season, &rec.ImagePath, &rec.Status, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Season, err = decodeSeason(season)
	if err != nil {
		return nil, err
	}
	return rec, nil
}
