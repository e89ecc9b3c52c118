// Package migration ensures the service is usable out of the box: the
// two tables it owns are created automatically on startup.
package migration

import (
	"github.com/billfold/billfold/internal/config"
	customerdomain "github.com/billfold/billfold/internal/customer/domain"
	invoicedomain "github.com/billfold/billfold/internal/invoice/domain"
	"github.com/billfold/billfold/internal/seed"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, genID *snowflake.Node) error {
		if err := conn.AutoMigrate(
			&customerdomain.Customer{},
			&invoicedomain.Invoice{},
		); err != nil {
			return err
		}

		if cfg.SeedDemoData {
			return seed.EnsureDemoCustomers(conn, genID)
		}
		return nil
	}),
)
