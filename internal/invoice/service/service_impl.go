package service

import (
	"context"

	"github.com/billfold/billfold/internal/cache"
	"github.com/billfold/billfold/internal/clock"
	"github.com/billfold/billfold/internal/config"
	"github.com/billfold/billfold/internal/invoice/domain"
	"github.com/billfold/billfold/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Listing cache.ListingCache
	Rules   *config.FormRulesHolder `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	listing cache.ListingCache
	rules   *config.FormRulesHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("invoice.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		listing: p.Listing,
		rules:   p.Rules,
	}
}

// schema rebuilds the form schema from the current operator overrides,
// so config reloads apply without a restart.
func (s *Service) schema() domain.Schema {
	rules := s.rules.Current()
	return domain.NewSchema(domain.SchemaConfig{
		CustomerMessage:  rules.CustomerMessage,
		AmountMessage:    rules.AmountMessage,
		StatusMessage:    rules.StatusMessage,
		MaxAmountCents:   rules.MaxAmountCents,
		MaxAmountMessage: rules.MaxAmountMessage,
	})
}

func (s *Service) Create(ctx context.Context, draft domain.Draft) domain.MutationOutcome {
	validated, fieldErrs := s.schema().Validate(draft)
	if fieldErrs != nil {
		return domain.ValidationFailed(domain.OpCreate, fieldErrs)
	}

	customerID, ok := s.resolveCustomerRef(validated.CustomerID)
	if !ok {
		return domain.PersistenceFailed(domain.OpCreate)
	}

	now := s.clock.Now().UTC()
	invoice := domain.Invoice{
		ID:         s.genID.Generate(),
		CustomerID: customerID,
		Amount:     validated.Amount.Cents(),
		Status:     validated.Status,
		Date:       now.Format(domain.DateLayout),
		Metadata:   datatypes.JSONMap{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Insert(ctx, s.db, &invoice); err != nil {
		if db.IsForeignKeyErr(err) {
			s.log.Warn("unresolvable customer reference",
				zap.String("customer_id", validated.CustomerID),
				zap.Error(err),
			)
		} else {
			s.log.Error("invoice insert failed",
				zap.String("invoice_id", invoice.ID.String()),
				zap.Error(err),
			)
		}
		return domain.PersistenceFailed(domain.OpCreate)
	}

	s.listing.InvalidateListing(ctx)
	return domain.Succeeded()
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, draft domain.Draft) domain.MutationOutcome {
	validated, fieldErrs := s.schema().Validate(draft)
	if fieldErrs != nil {
		return domain.ValidationFailed(domain.OpUpdate, fieldErrs)
	}

	customerID, ok := s.resolveCustomerRef(validated.CustomerID)
	if !ok {
		return domain.PersistenceFailed(domain.OpUpdate)
	}

	invoice := domain.Invoice{
		ID:         id,
		CustomerID: customerID,
		Amount:     validated.Amount.Cents(),
		Status:     validated.Status,
		UpdatedAt:  s.clock.Now().UTC(),
	}

	// Zero rows affected means the row is gone; the contract does not
	// distinguish that from success, so only statement faults fail.
	if _, err := s.repo.Update(ctx, s.db, &invoice); err != nil {
		s.log.Error("invoice update failed",
			zap.String("invoice_id", id.String()),
			zap.Error(err),
		)
		return domain.PersistenceFailed(domain.OpUpdate)
	}

	s.listing.InvalidateListing(ctx)
	return domain.Succeeded()
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) domain.MutationOutcome {
	if _, err := s.repo.Delete(ctx, s.db, id); err != nil {
		s.log.Error("invoice delete failed",
			zap.String("invoice_id", id.String()),
			zap.Error(err),
		)
		return domain.PersistenceFailed(domain.OpDelete)
	}

	s.listing.InvalidateListing(ctx)
	return domain.Succeeded()
}

func (s *Service) List(ctx context.Context) ([]domain.Invoice, error) {
	if cached, ok := s.listing.Get(ctx); ok {
		return cached, nil
	}

	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	invoices := make([]domain.Invoice, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		invoices = append(invoices, *item)
	}

	s.listing.Set(ctx, invoices)
	return invoices, nil
}

// resolveCustomerRef parses the validated counterparty reference into
// the store's key type. The schema only guarantees non-emptiness;
// whether the reference resolves is the store's concern, so a
// malformed one fails the same way a foreign key violation would.
func (s *Service) resolveCustomerRef(raw string) (snowflake.ID, bool) {
	id, err := snowflake.ParseString(raw)
	if err != nil {
		s.log.Warn("unresolvable customer reference",
			zap.String("customer_id", raw),
			zap.Error(err),
		)
		return 0, false
	}
	return id, true
}
