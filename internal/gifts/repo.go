package gifts

import (
	"context"

	"github.com/angelmondragon/wishlist-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository handles wishlist persistence. Every method is a single
// statement, so row-level atomicity of the database is all it relies on.
type Repository interface {
	List(ctx context.Context) ([]models.Gift, error)
	Create(ctx context.Context, gift *models.Gift) (int64, error)
	ToggleDone(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a gift repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// List returns every row in creation order.
func (r *repository) List(ctx context.Context) ([]models.Gift, error) {
	var rows []models.Gift
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts the row and returns the store-assigned id.
func (r *repository) Create(ctx context.Context, gift *models.Gift) (int64, error) {
	gift.ID = 0
	gift.Done = false
	if err := r.db.WithContext(ctx).Create(gift).Error; err != nil {
		return 0, err
	}
	return gift.ID, nil
}

// ToggleDone flips done in place. Unknown ids affect zero rows.
func (r *repository) ToggleDone(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Gift{}).
		Where("id = ?", id).
		Update("done", gorm.Expr("NOT done")).
		Error
}

// Delete removes the row if it exists.
func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Gift{}).
		Error
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Gift{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
