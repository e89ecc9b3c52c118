// Package domain contains the invoice entity, its form schema, and the
// mutation contract shared by create, update, and delete.
package domain

import (
	"time"

	customerdomain "github.com/billfold/billfold/internal/customer/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// InvoiceStatus is the closed lifecycle set. Anything else is a form
// validation failure, never a store-level constraint.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// ValidStatus reports membership in the closed set. Matching is exact;
// case variants are rejected.
func ValidStatus(raw string) bool {
	switch InvoiceStatus(raw) {
	case InvoiceStatusPending, InvoiceStatusPaid:
		return true
	default:
		return false
	}
}

// DateLayout is the calendar-date format persisted on an invoice.
const DateLayout = "2006-01-02"

// Invoice is the persisted row. Amount holds minor units; the decimal
// form never reaches the store. Date is set once at creation and is
// never touched by update.
type Invoice struct {
	ID         snowflake.ID             `gorm:"primaryKey" json:"id"`
	CustomerID snowflake.ID             `gorm:"not null;index" json:"customer_id"`
	Customer   *customerdomain.Customer `gorm:"foreignKey:CustomerID" json:"-"`
	Amount     int64                    `gorm:"not null" json:"amount"`
	Status     InvoiceStatus            `gorm:"type:text;not null" json:"status"`
	Date       string                   `gorm:"type:text;not null" json:"date"`
	Metadata   datatypes.JSONMap        `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt  time.Time                `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time                `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }
