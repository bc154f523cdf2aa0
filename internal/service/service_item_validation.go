package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/validators"
	"github.com/MKhiriev/go-pass-vault/models"
)

// ItemValidationService validates input before passing it to the wrapped
// ItemService.
type ItemValidationService struct {
	inner     ItemService
	validator validators.Validator
}

func NewItemValidationService() ItemServiceWrapper {
	return &ItemValidationService{
		validator: validators.NewItemValidator(),
	}
}

func (v *ItemValidationService) Create(ctx context.Context, user models.User, item models.PlainItem) (models.PlainItem, error) {
	if err := v.validator.Validate(ctx, item); err != nil {
		return models.PlainItem{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Create(ctx, user, item)
}

func (v *ItemValidationService) Get(ctx context.Context, user models.User, kind models.ItemKind, id int64) (models.PlainItem, error) {
	if err := v.validateRef(ctx, kind, id); err != nil {
		return models.PlainItem{}, err
	}
	return v.inner.Get(ctx, user, kind, id)
}

func (v *ItemValidationService) List(ctx context.Context, user models.User, kind models.ItemKind) ([]models.PlainItem, error) {
	if err := v.validator.Validate(ctx, models.PlainItem{Kind: kind}, validators.FieldKind); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.List(ctx, user, kind)
}

func (v *ItemValidationService) Replace(ctx context.Context, user models.User, item models.PlainItem) (models.PlainItem, error) {
	if item.ID <= 0 {
		return models.PlainItem{}, fmt.Errorf("%w: invalid item id", ErrInvalidDataProvided)
	}
	if err := v.validator.Validate(ctx, item); err != nil {
		return models.PlainItem{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Replace(ctx, user, item)
}

func (v *ItemValidationService) Delete(ctx context.Context, user models.User, kind models.ItemKind, id int64) error {
	if err := v.validateRef(ctx, kind, id); err != nil {
		return err
	}
	return v.inner.Delete(ctx, user, kind, id)
}

func (v *ItemValidationService) Wrap(inner ItemService) ItemService {
	v.inner = inner
	return v
}

func (v *ItemValidationService) validateRef(ctx context.Context, kind models.ItemKind, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid item id", ErrInvalidDataProvided)
	}
	if err := v.validator.Validate(ctx, models.PlainItem{Kind: kind}, validators.FieldKind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return nil
}
