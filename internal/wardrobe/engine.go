// Package wardrobe implements the inventory lifecycle: an uploaded photo is
// segmented, classified and staged for review, then either promoted into the
// permanent wardrobe or discarded. Staging records move through
// pending → confirmed|discarded exactly once.
package wardrobe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erazemk/garderoba/internal/blob"
	"github.com/erazemk/garderoba/internal/identifier"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/palette"
	"github.com/erazemk/garderoba/internal/policy"
	"github.com/erazemk/garderoba/internal/store"
)

// confirmRetries bounds how often a confirmation re-allocates after losing an
// identifier race. Two stagings of the same category/type can reserve the
// same identifier; the loser re-derives the next free one here.
const confirmRetries = 3

// Segmenter removes the background from a garment photo, returning an RGBA
// PNG with an alpha-zero background.
type Segmenter interface {
	Segment(ctx context.Context, image []byte) ([]byte, error)
}

// Classifier scores a segmented image against the known garment labels and
// returns candidates ordered by descending confidence.
type Classifier interface {
	Classify(ctx context.Context, image []byte) ([]policy.Prediction, error)
}

// Analyzer extracts the dominant color of a segmented image. The default is
// the in-process palette analyzer.
type Analyzer interface {
	Dominant(image []byte) (model.Color, error)
}

type analyzerFunc func([]byte) (model.Color, error)

func (f analyzerFunc) Dominant(image []byte) (model.Color, error) { return f(image) }

// commitFunc runs one confirmation attempt for a staging record under a
// candidate identifier.
type commitFunc func(ctx context.Context, rec *model.StagingRecord, id string) (*model.Item, error)

// Engine orchestrates the staging lifecycle against the two stores and the
// external vision collaborators.
type Engine struct {
	db         *sql.DB
	blobs      *blob.Store
	segmenter  Segmenter
	classifier Classifier
	analyzer   Analyzer
	log        *zap.Logger

	// commit is tryCommit by default; tests swap it to force identifier
	// contention between attempts.
	commit commitFunc
}

// NewEngine wires an engine. The logger may be nil.
func NewEngine(db *sql.DB, blobs *blob.Store, segmenter Segmenter, classifier Classifier, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		db:         db,
		blobs:      blobs,
		segmenter:  segmenter,
		classifier: classifier,
		analyzer:   analyzerFunc(palette.Dominant),
		log:        log,
	}
	e.commit = e.tryCommit
	return e
}

// SetAnalyzer replaces the color analyzer.
func (e *Engine) SetAnalyzer(a Analyzer) { e.analyzer = a }

// Stage runs the full intake pipeline on a normalized upload: segmentation,
// classification, the multi-item policy, color extraction and identifier
// reservation, ending with a pending staging record the user can review.
//
// A policy rejection (ambiguous image, empty classifier output) fails the
// whole request; nothing is staged.
func (e *Engine) Stage(ctx context.Context, image []byte) (*model.StagingRecord, error) {
	segmented, err := e.segmenter.Segment(ctx, image)
	if err != nil {
		return nil, err
	}

	ranked, err := e.classifier.Classify(ctx, segmented)
	if err != nil {
		return nil, err
	}

	decision, err := policy.Decide(ranked)
	if err != nil {
		return nil, err
	}

	color, err := e.analyzer.Dominant(segmented)
	if err != nil {
		// The segmenter contract guarantees a decodable PNG, but a color is
		// cosmetic: fall back to neutral gray instead of failing the intake.
		e.log.Warn("dominant color extraction failed", zap.Error(err))
		color = model.Color{Name: "neutral", RGB: [3]uint8{128, 128, 128}, Group: model.ColorGroupNeutral}
	}

	ids, err := store.AllIdentifiers(ctx, e.db)
	if err != nil {
		return nil, err
	}
	reserved := identifier.Next(decision.Category, decision.Type, ids)

	token := "stg_" + uuid.NewString()
	imagePath, err := e.blobs.PutStaging(token, segmented)
	if err != nil {
		return nil, err
	}

	rec, err := store.CreateStaging(ctx, e.db, &model.StagingRecord{
		Token:     token,
		ItemID:    reserved,
		Category:  decision.Category,
		Type:      decision.Type,
		Subtype:   model.Unknown,
		Color:     color,
		Fit:       model.Unknown,
		Formality: model.Unknown,
		ImagePath: imagePath,
	})
	if err != nil {
		// Don't leave an orphaned image behind a failed insert.
		if cleanErr := e.blobs.DeleteStaging(token); cleanErr != nil {
			e.log.Warn("failed to clean up staged image", zap.String("token", token), zap.Error(cleanErr))
		}
		return nil, err
	}

	e.log.Info("item staged",
		zap.String("token", rec.Token),
		zap.String("item_id", rec.ItemID),
		zap.String("label", decision.Label),
		zap.Float64("confidence", decision.Confidence))
	return rec, nil
}

// GetStaged returns a pending staging record.
func (e *Engine) GetStaged(ctx context.Context, token string) (*model.StagingRecord, error) {
	rec, err := store.GetStaging(ctx, e.db, token)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

// UpdateStaged merges user edits into a pending staging record. Omitted
// fields are left untouched. The reserved identifier is not re-derived when
// the user overrides category or type; it stays as allocated at staging time.
func (e *Engine) UpdateStaged(ctx context.Context, token string, patch model.ItemPatch) (*model.StagingRecord, error) {
	rec, err := store.UpdateStaging(ctx, e.db, token, patch)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

// Confirm promotes a staging record into the permanent wardrobe. The item
// insert and the staging delete run in one transaction, so a failed
// confirmation leaves the record pending and untouched for a retry.
//
// If the reserved identifier was taken by a concurrent confirmation, the
// insert is retried with a freshly allocated identifier a bounded number of
// times before giving up with ErrConflict.
func (e *Engine) Confirm(ctx context.Context, token string) (*model.Item, error) {
	rec, err := store.GetStaging(ctx, e.db, token)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}

	id := rec.ItemID
	var item *model.Item
	for attempt := 0; ; attempt++ {
		item, err = e.commit(ctx, rec, id)
		if err == nil {
			break
		}
		if !errors.Is(err, store.ErrDuplicateID) {
			return nil, err
		}
		if attempt+1 >= confirmRetries {
			e.log.Warn("confirmation retry budget exhausted",
				zap.String("token", token), zap.String("item_id", id))
			return nil, fmt.Errorf("confirming %s: %w", token, ErrConflict)
		}

		// Lost the race for this identifier; re-derive the next free one.
		ids, err := store.AllIdentifiers(ctx, e.db)
		if err != nil {
			return nil, err
		}
		reallocated := identifier.Next(rec.Category, rec.Type, ids)
		e.log.Info("identifier collision on confirm, re-allocating",
			zap.String("token", token),
			zap.String("reserved", id),
			zap.String("reallocated", reallocated))
		id = reallocated
	}

	// The record is committed; the image move is best-effort cleanup. A
	// leftover staged copy is harmless and the read path follows image_path.
	if _, err := e.blobs.Promote(token, item.ID); err != nil {
		e.log.Warn("failed to promote staged image", zap.String("token", token), zap.Error(err))
	}

	e.log.Info("item confirmed", zap.String("token", token), zap.String("item_id", item.ID))
	return item, nil
}

// tryCommit runs one confirmation attempt in a transaction.
func (e *Engine) tryCommit(ctx context.Context, rec *model.StagingRecord, id string) (*model.Item, error) {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting confirmation transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := store.CreateItem(ctx, tx, rec.Item(id, blob.WardrobePath(id)))
	if err != nil {
		return nil, err
	}

	if _, err := store.DeleteStaging(ctx, tx, rec.Token); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing confirmation: %w", err)
	}
	return item, nil
}

// Discard deletes a staging record and its image. The reserved identifier is
// not reclaimed: sequence numbers only ever move forward, so a concurrent
// staging can never be handed a number freed by a discard.
func (e *Engine) Discard(ctx context.Context, token string) error {
	deleted, err := store.DeleteStaging(ctx, e.db, token)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}

	if err := e.blobs.DeleteStaging(token); err != nil {
		e.log.Warn("failed to delete staged image", zap.String("token", token), zap.Error(err))
	}

	e.log.Info("staged item discarded", zap.String("token", token))
	return nil
}

// ListItems returns a page of the permanent wardrobe in insertion order.
func (e *Engine) ListItems(ctx context.Context, offset, limit int) ([]model.Item, error) {
	return store.ListItems(ctx, e.db, offset, limit)
}

// GetItem returns a confirmed wardrobe item.
func (e *Engine) GetItem(ctx context.Context, id string) (*model.Item, error) {
	item, err := store.GetItem(ctx, e.db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

// UpdateItem merges user edits into a confirmed wardrobe item.
func (e *Engine) UpdateItem(ctx context.Context, id string, patch model.ItemPatch) (*model.Item, error) {
	item, err := store.UpdateItem(ctx, e.db, id, patch)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

// DeleteItem removes a confirmed wardrobe item and releases its image. The
// identifier stays retired forever.
func (e *Engine) DeleteItem(ctx context.Context, id string) error {
	deleted, err := store.DeleteItem(ctx, e.db, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}

	if err := e.blobs.DeleteWardrobe(id); err != nil {
		e.log.Warn("failed to delete item image", zap.String("item_id", id), zap.Error(err))
	}

	e.log.Info("wardrobe item deleted", zap.String("item_id", id))
	return nil
}

// ReadImage returns the image stored at a record's image path, or nil if the
// file is gone.
func (e *Engine) ReadImage(path string) ([]byte, error) {
	return e.blobs.Read(path)
}
