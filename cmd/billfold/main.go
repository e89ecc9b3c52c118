package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/billfold/billfold/internal/cache"
	"github.com/billfold/billfold/internal/clock"
	"github.com/billfold/billfold/internal/config"
	"github.com/billfold/billfold/internal/customer"
	"github.com/billfold/billfold/internal/invoice"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/migration"
	"github.com/billfold/billfold/internal/server"
	"github.com/billfold/billfold/pkg/db"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		cache.Module,

		// Domains
		customer.Module,
		invoice.Module,

		migration.Module,
		server.Module,
	)
	app.Run()
}

func registerSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
