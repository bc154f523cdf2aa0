package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions. Key material
// and blobs are never logged.
type userRepository struct {
	logger *logger.Logger
	db     *DB
	now    func() time.Time
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// FindOrCreate implements [UserRepository].
//
// The INSERT is a no-op for an existing external id, so concurrent first
// requests of the same identity converge on one row and the stored identity
// timestamp stays the one of the first contact.
func (r *userRepository) FindOrCreate(ctx context.Context, identity models.Identity) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(r.db.dialect, models.NewIdentity(identity.ID, identity.CreatedAt), r.now())
	if err != nil {
		return models.User{}, err
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*userRepository.FindOrCreate").Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return r.findOne(ctx, sq.Eq{"external_id": identity.ID})
}

// FindByID implements [UserRepository].
func (r *userRepository) FindByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findOne(ctx, sq.Eq{"user_id": userID})
}

func (r *userRepository) findOne(ctx context.Context, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserQuery(r.db.dialect, where)
	if err != nil {
		return models.User{}, err
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findOne").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// SetVaultKey implements [UserRepository]. The UPDATE only matches while
// vault_key IS NULL.
func (r *userRepository) SetVaultKey(ctx context.Context, userID int64, vaultKey string) error {
	query, args, err := buildSetVaultKeyQuery(r.db.dialect, userID, vaultKey)
	if err != nil {
		return err
	}

	return r.execVaultUpdate(ctx, "SetVaultKey", userID, ErrVaultKeyAlreadyMinted, query, args)
}

// SaveVaultBlob implements [UserRepository].
func (r *userRepository) SaveVaultBlob(ctx context.Context, userID int64, vaultKey, blob string) error {
	query, args, err := buildSaveVaultBlobQuery(r.db.dialect, userID, vaultKey, blob, r.now())
	if err != nil {
		return err
	}

	return r.execVaultUpdate(ctx, "SaveVaultBlob", userID, ErrVaultKeyMismatch, query, args)
}

// RotateVault implements [UserRepository]. Key and blob change in one
// conditional UPDATE, so a reader never sees a key without its blob.
func (r *userRepository) RotateVault(ctx context.Context, userID int64, oldKey, newKey, blob string) error {
	query, args, err := buildRotateVaultQuery(r.db.dialect, userID, oldKey, newKey, blob, r.now())
	if err != nil {
		return err
	}

	return r.execVaultUpdate(ctx, "RotateVault", userID, ErrVaultKeyMismatch, query, args)
}

// execVaultUpdate runs a conditional UPDATE on one user row. When no row
// matched it tells a missing user apart from a failed condition.
func (r *userRepository) execVaultUpdate(ctx context.Context, op string, userID int64, conditionErr error, query string, args []any) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository."+op).Int64("user_id", userID).Msg("error executing update")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected > 0 {
		return nil
	}

	if _, err := r.FindByID(ctx, userID); err != nil {
		return err
	}

	log.Warn().Str("func", "*userRepository."+op).Int64("user_id", userID).Msg("vault update condition not met")
	return conditionErr
}

func scanUser(row *sql.Row) (models.User, error) {
	var (
		user           models.User
		vaultKey       sql.NullString
		vaultBlob      sql.NullString
		vaultUpdatedAt sql.NullTime
	)

	err := row.Scan(
		&user.UserID,
		&user.ExternalID,
		&user.IdentityCreatedAt,
		&vaultKey,
		&vaultBlob,
		&vaultUpdatedAt,
		&user.CreatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	user.IdentityCreatedAt = user.IdentityCreatedAt.UTC()
	user.VaultKey = vaultKey.String
	user.VaultBlob = vaultBlob.String
	if vaultUpdatedAt.Valid {
		t := vaultUpdatedAt.Time.UTC()
		user.VaultUpdatedAt = &t
	}

	return user, nil
}
