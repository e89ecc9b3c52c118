package customer

import (
	"github.com/billfold/billfold/internal/customer/repository"
	"github.com/billfold/billfold/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
