package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

// itemRepository is the SQL implementation of [ItemRepository]. Each item
// kind lives in its own table described by [models.KindSpec]; every field
// is one TEXT column holding the stored value verbatim.
type itemRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewItemRepository constructs an [ItemRepository] backed by the provided
// database connection and logger.
func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	logger.Debug().Msg("creating item repository")
	return &itemRepository{
		DB:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

// execQuerier is satisfied by both *sql.DB and *sql.Tx.
type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Create implements [ItemRepository].
func (p *itemRepository) Create(ctx context.Context, item models.SealedItem) (models.SealedItem, error) {
	return p.create(ctx, p.DB.DB, item)
}

// CreateBatch implements [ItemRepository]. The transaction is rolled back
// automatically (via defer) if any insert fails.
func (p *itemRepository) CreateBatch(ctx context.Context, items []models.SealedItem) ([]models.SealedItem, error) {
	log := logger.FromContext(ctx)

	if len(items) == 0 {
		return []models.SealedItem{}, nil
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.CreateBatch").
			Int("items_count", len(items)).
			Msg("failed to begin transaction")
		return nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	created := make([]models.SealedItem, 0, len(items))
	for idx, item := range items {
		saved, err := p.create(ctx, tx, item)
		if err != nil {
			log.Err(err).
				Str("func", "itemRepository.CreateBatch").
				Int("iteration", idx+1).
				Int("total", len(items)).
				Msg("failed to insert item in transaction")
			return nil, fmt.Errorf("failed to save item at index %d: %w", idx, err)
		}
		created = append(created, saved)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "itemRepository.CreateBatch").
			Int("items_count", len(items)).
			Msg("failed to commit transaction")
		return nil, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return created, nil
}

func (p *itemRepository) create(ctx context.Context, q execQuerier, item models.SealedItem) (models.SealedItem, error) {
	log := logger.FromContext(ctx)

	spec, err := specOf(item.Kind)
	if err != nil {
		return models.SealedItem{}, err
	}

	item.CreatedAt = p.now()
	item.UpdatedAt = nil

	query, args, err := buildInsertItemQuery(p.dialect, spec, item)
	if err != nil {
		return models.SealedItem{}, err
	}

	if p.dialect.returningID {
		if err := q.QueryRowContext(ctx, query, args...).Scan(&item.ID); err != nil {
			log.Err(err).
				Str("func", "itemRepository.create").
				Int64("user_id", item.UserID).
				Str("kind", string(item.Kind)).
				Msg("failed to insert item")
			return models.SealedItem{}, insertError(err)
		}
		return item, nil
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.create").
			Int64("user_id", item.UserID).
			Str("kind", string(item.Kind)).
			Msg("failed to insert item")
		return models.SealedItem{}, insertError(err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return models.SealedItem{}, ErrItemNotSaved
	}

	if item.ID, err = res.LastInsertId(); err != nil {
		return models.SealedItem{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return item, nil
}

// Get implements [ItemRepository].
func (p *itemRepository) Get(ctx context.Context, userID int64, kind models.ItemKind, id int64) (models.SealedItem, error) {
	items, err := p.query(ctx, kind, sq.Eq{"id": id, "user_id": userID}, 1)
	if err != nil {
		return models.SealedItem{}, err
	}
	if len(items) == 0 {
		return models.SealedItem{}, ErrItemNotFound
	}
	return items[0], nil
}

// List implements [ItemRepository]. Returns an empty slice when the user has
// no items of kind.
func (p *itemRepository) List(ctx context.Context, userID int64, kind models.ItemKind) ([]models.SealedItem, error) {
	return p.query(ctx, kind, sq.Eq{"user_id": userID}, 0)
}

// ListAll implements [ItemRepository]. Items are grouped by kind in
// [models.ItemKinds] order.
func (p *itemRepository) ListAll(ctx context.Context, userID int64) ([]models.SealedItem, error) {
	all := make([]models.SealedItem, 0, 50)
	for _, kind := range models.ItemKinds() {
		items, err := p.List(ctx, userID, kind)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
	}
	return all, nil
}

// ListByScheme implements [ItemRepository]. Tables are visited in
// [models.ItemKinds] order until limit items are collected; within a table
// only ids above the cursor position of the kind are returned.
func (p *itemRepository) ListByScheme(ctx context.Context, scheme models.KeyScheme, after models.UpgradeCursor, limit int) ([]models.SealedItem, error) {
	if limit <= 0 {
		return []models.SealedItem{}, nil
	}

	found := make([]models.SealedItem, 0, limit)
	for _, kind := range models.ItemKinds() {
		remaining := limit - len(found)
		if remaining == 0 {
			break
		}

		var where sq.Sqlizer = sq.Eq{"scheme": int(scheme)}
		if last := after.After(kind); last > 0 {
			where = sq.And{sq.Eq{"scheme": int(scheme)}, sq.Gt{"id": last}}
		}

		items, err := p.query(ctx, kind, where, uint64(remaining))
		if err != nil {
			return nil, err
		}
		found = append(found, items...)
	}
	return found, nil
}

func (p *itemRepository) query(ctx context.Context, kind models.ItemKind, where sq.Sqlizer, limit uint64) ([]models.SealedItem, error) {
	log := logger.FromContext(ctx)

	spec, err := specOf(kind)
	if err != nil {
		return nil, err
	}

	query, args, err := buildSelectItemsQuery(p.dialect, spec, where, limit)
	if err != nil {
		log.Err(err).Str("func", "itemRepository.query").Str("kind", string(kind)).Msg("failed to create query")
		return nil, err
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "itemRepository.query").Str("kind", string(kind)).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.SealedItem, 0, 16)
	for rows.Next() {
		item, scanErr := scanItem(rows, spec)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "itemRepository.query").Str("kind", string(kind)).Msg("failed to scan item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		results = append(results, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "itemRepository.query").Str("kind", string(kind)).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// Replace implements [ItemRepository].
func (p *itemRepository) Replace(ctx context.Context, item models.SealedItem) error {
	return p.update(ctx, item, nil)
}

// Upgrade implements [ItemRepository].
func (p *itemRepository) Upgrade(ctx context.Context, item models.SealedItem, from models.KeyScheme) error {
	return p.update(ctx, item, &from)
}

func (p *itemRepository) update(ctx context.Context, item models.SealedItem, from *models.KeyScheme) error {
	log := logger.FromContext(ctx)

	spec, err := specOf(item.Kind)
	if err != nil {
		return err
	}

	query, args, err := buildUpdateItemQuery(p.dialect, spec, item, from, p.now())
	if err != nil {
		return err
	}

	res, err := p.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.update").
			Int64("user_id", item.UserID).
			Int64("id", item.ID).
			Msg("failed to update item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(res)
}

// Delete implements [ItemRepository].
func (p *itemRepository) Delete(ctx context.Context, userID int64, kind models.ItemKind, id int64) error {
	log := logger.FromContext(ctx)

	spec, err := specOf(kind)
	if err != nil {
		return err
	}

	query, args, err := buildDeleteItemQuery(p.dialect, spec, userID, id)
	if err != nil {
		return err
	}

	res, err := p.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.Delete").
			Int64("user_id", userID).
			Int64("id", id).
			Msg("failed to delete item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(res)
}

// insertError maps constraint violations to [ErrItemNotSaved].
func insertError(err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %w", ErrItemNotSaved, err)
	}
	return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
}

func expectAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func specOf(kind models.ItemKind) (models.KindSpec, error) {
	spec := kind.Spec()
	if spec.Table == "" {
		return models.KindSpec{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return spec, nil
}

func scanItem(rows *sql.Rows, spec models.KindSpec) (models.SealedItem, error) {
	var (
		item      = models.SealedItem{Kind: spec.Kind, Fields: make(map[string]models.CipheredData, len(spec.Fields))}
		scheme    int
		values    = make([]string, len(spec.Fields))
		updatedAt sql.NullTime
	)

	dest := make([]any, 0, len(spec.Fields)+5)
	dest = append(dest, &item.ID, &item.UserID, &scheme)
	for i := range values {
		dest = append(dest, &values[i])
	}
	dest = append(dest, &item.CreatedAt, &updatedAt)

	if err := rows.Scan(dest...); err != nil {
		return models.SealedItem{}, err
	}

	item.Scheme = models.KeyScheme(scheme)
	for i, f := range spec.Fields {
		item.Fields[f] = models.CipheredData(values[i])
	}
	item.CreatedAt = item.CreatedAt.UTC()
	if updatedAt.Valid {
		t := updatedAt.Time.UTC()
		item.UpdatedAt = &t
	}

	return item, nil
}

