package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-pass-vault/models"
)

var userColumns = []string{
	"user_id",
	"external_id",
	"identity_created_at",
	"vault_key",
	"vault_blob",
	"vault_updated_at",
	"created_at",
}

// buildInsertUserQuery inserts a user unless one with the same external id
// exists, in which case the stored row is left untouched.
func buildInsertUserQuery(d dialect, identity models.Identity, now time.Time) (string, []any, error) {
	b := d.builder().
		Insert("users").
		Columns("external_id", "identity_created_at", "created_at").
		Values(identity.ID, identity.CreatedAt, now)

	return wrapBuild(d.insertIgnore(b, "external_id").ToSql())
}

func buildSelectUserQuery(d dialect, where sq.Eq) (string, []any, error) {
	return wrapBuild(d.builder().
		Select(userColumns...).
		From("users").
		Where(where).
		ToSql())
}

func buildSetVaultKeyQuery(d dialect, userID int64, vaultKey string) (string, []any, error) {
	return wrapBuild(d.builder().
		Update("users").
		Set("vault_key", vaultKey).
		Where(sq.Eq{"user_id": userID, "vault_key": nil}).
		ToSql())
}

func buildSaveVaultBlobQuery(d dialect, userID int64, vaultKey, blob string, now time.Time) (string, []any, error) {
	return wrapBuild(d.builder().
		Update("users").
		Set("vault_blob", blob).
		Set("vault_updated_at", now).
		Where(sq.Eq{"user_id": userID, "vault_key": vaultKey}).
		ToSql())
}

func buildRotateVaultQuery(d dialect, userID int64, oldKey, newKey, blob string, now time.Time) (string, []any, error) {
	return wrapBuild(d.builder().
		Update("users").
		Set("vault_key", newKey).
		Set("vault_blob", blob).
		Set("vault_updated_at", now).
		Where(sq.Eq{"user_id": userID, "vault_key": oldKey}).
		ToSql())
}

// itemColumns returns the selected columns of spec: id, user_id, scheme, the
// field columns in spec order, created_at and updated_at.
func itemColumns(spec models.KindSpec) []string {
	cols := make([]string, 0, len(spec.Fields)+5)
	cols = append(cols, "id", "user_id", "scheme")
	cols = append(cols, spec.Fields...)
	return append(cols, "created_at", "updated_at")
}

func buildInsertItemQuery(d dialect, spec models.KindSpec, item models.SealedItem) (string, []any, error) {
	cols := make([]string, 0, len(spec.Fields)+3)
	vals := make([]any, 0, len(spec.Fields)+3)

	cols = append(cols, "user_id", "scheme")
	vals = append(vals, item.UserID, int(item.Scheme))
	for _, f := range spec.Fields {
		cols = append(cols, f)
		vals = append(vals, string(item.Fields[f]))
	}
	cols = append(cols, "created_at")
	vals = append(vals, item.CreatedAt)

	b := d.builder().Insert(spec.Table).Columns(cols...).Values(vals...)
	if d.returningID {
		b = b.Suffix("RETURNING id")
	}

	return wrapBuild(b.ToSql())
}

func buildSelectItemsQuery(d dialect, spec models.KindSpec, where sq.Sqlizer, limit uint64) (string, []any, error) {
	b := d.builder().
		Select(itemColumns(spec)...).
		From(spec.Table).
		Where(where).
		OrderBy("id")
	if limit > 0 {
		b = b.Limit(limit)
	}

	return wrapBuild(b.ToSql())
}

// buildUpdateItemQuery replaces scheme and every field of the item. A non-nil
// from adds a condition on the currently stored scheme.
func buildUpdateItemQuery(d dialect, spec models.KindSpec, item models.SealedItem, from *models.KeyScheme, now time.Time) (string, []any, error) {
	b := d.builder().
		Update(spec.Table).
		Set("scheme", int(item.Scheme))
	for _, f := range spec.Fields {
		b = b.Set(f, string(item.Fields[f]))
	}
	b = b.Set("updated_at", now)

	where := sq.Eq{"id": item.ID, "user_id": item.UserID}
	if from != nil {
		where["scheme"] = int(*from)
	}

	return wrapBuild(b.Where(where).ToSql())
}

func buildDeleteItemQuery(d dialect, spec models.KindSpec, userID, id int64) (string, []any, error) {
	return wrapBuild(d.builder().
		Delete(spec.Table).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql())
}

func wrapBuild(query string, args []any, err error) (string, []any, error) {
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
