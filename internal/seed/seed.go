// Package seed loads demo data for local environments.
package seed

import (
	"time"

	customerdomain "github.com/billfold/billfold/internal/customer/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// EnsureDemoCustomers inserts a few counterparties when the customers
// table is empty, so the invoice form has something to reference.
func EnsureDemoCustomers(conn *gorm.DB, genID *snowflake.Node) error {
	var count int64
	if err := conn.Model(&customerdomain.Customer{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	demo := []customerdomain.Customer{
		{Name: "Acme Corporation", Email: "billing@acme.example"},
		{Name: "Delba de Oliveira", Email: "delba@oliveira.example"},
		{Name: "Lee Robinson", Email: "lee@robinson.example"},
	}
	for i := range demo {
		demo[i].ID = genID.Generate()
		demo[i].CreatedAt = now
		demo[i].UpdatedAt = now
	}
	return conn.Create(&demo).Error
}
