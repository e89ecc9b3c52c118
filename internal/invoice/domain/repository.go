package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository is the persistence gateway. Each method is a single
// parameterized statement; callers treat any returned error as an
// opaque store fault.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	// Update touches customer_id, amount, and status only. The
	// creation date is immutable. It reports rows affected so a
	// future product decision can surface missing rows; today the
	// service ignores it.
	Update(ctx context.Context, db *gorm.DB, invoice *Invoice) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB) ([]*Invoice, error)
}
