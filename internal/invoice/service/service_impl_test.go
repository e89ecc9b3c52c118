package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/billfold/billfold/internal/cache"
	"github.com/billfold/billfold/internal/clock"
	customerdomain "github.com/billfold/billfold/internal/customer/domain"
	"github.com/billfold/billfold/internal/invoice/domain"
	"github.com/billfold/billfold/internal/invoice/repository"
)

// recordingCache counts invalidations on top of the in-memory cache.
type recordingCache struct {
	inner         cache.ListingCache
	invalidations int
	sets          int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{inner: cache.NewMemoryListingCache(time.Minute)}
}

func (c *recordingCache) Get(ctx context.Context) ([]domain.Invoice, bool) {
	return c.inner.Get(ctx)
}

func (c *recordingCache) Set(ctx context.Context, invoices []domain.Invoice) {
	c.sets++
	c.inner.Set(ctx, invoices)
}

func (c *recordingCache) InvalidateListing(ctx context.Context) {
	c.invalidations++
	c.inner.InvalidateListing(ctx)
}

type fixture struct {
	svc        domain.Service
	db         *gorm.DB
	clk        *clock.FakeClock
	listing    *recordingCache
	customerID snowflake.ID
}

func setup(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&customerdomain.Customer{},
		&domain.Invoice{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	now := time.Date(2024, 5, 14, 10, 30, 0, 0, time.UTC)
	clk := clock.NewFakeClock(now)

	customer := customerdomain.Customer{
		ID:        node.Generate(),
		Name:      "Acme Corporation",
		Email:     "billing@acme.example",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(&customer).Error)

	listing := newRecordingCache()
	svc := New(Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Clock:   clk,
		Repo:    repository.Provide(),
		Listing: listing,
	})

	return &fixture{
		svc:        svc,
		db:         db,
		clk:        clk,
		listing:    listing,
		customerID: customer.ID,
	}
}

func (f *fixture) draft() domain.Draft {
	return domain.Draft{
		"customerId": f.customerID.String(),
		"amount":     "25.5",
		"status":     "paid",
	}
}

func (f *fixture) onlyInvoice(t *testing.T) domain.Invoice {
	t.Helper()
	var rows []domain.Invoice
	require.NoError(t, f.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	return rows[0]
}

func TestCreate_PersistsNormalizedRow(t *testing.T) {
	f := setup(t)

	outcome := f.svc.Create(context.Background(), f.draft())
	require.True(t, outcome.Succeeded())
	assert.Empty(t, outcome.Message)
	assert.Nil(t, outcome.Errors)

	row := f.onlyInvoice(t)
	assert.Equal(t, f.customerID, row.CustomerID)
	assert.Equal(t, int64(2550), row.Amount)
	assert.Equal(t, domain.InvoiceStatusPaid, row.Status)
	assert.Equal(t, "2024-05-14", row.Date)
	assert.NotZero(t, row.ID)

	assert.Equal(t, 1, f.listing.invalidations)
}

func TestCreate_MissingCustomerReportsFieldError(t *testing.T) {
	f := setup(t)

	draft := f.draft()
	draft["customerId"] = ""

	outcome := f.svc.Create(context.Background(), draft)
	require.True(t, outcome.ValidationFailed())
	assert.Equal(t, "Missing Fields. Failed to Create Invoice.", outcome.Message)
	assert.Equal(t, []string{domain.MsgSelectCustomer}, outcome.Errors["customerId"])

	var count int64
	require.NoError(t, f.db.Model(&domain.Invoice{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Zero(t, f.listing.invalidations)
}

func TestCreate_ZeroAmountReportsFieldError(t *testing.T) {
	f := setup(t)

	draft := f.draft()
	draft["amount"] = "0"
	draft["status"] = "paid"

	outcome := f.svc.Create(context.Background(), draft)
	require.True(t, outcome.ValidationFailed())
	assert.Equal(t, "Missing Fields. Failed to Create Invoice.", outcome.Message)
	assert.Equal(t, []string{domain.MsgAmountPositive}, outcome.Errors["amount"])
}

func TestCreate_IgnoresCallerSuppliedIdentityAndDate(t *testing.T) {
	f := setup(t)

	draft := f.draft()
	draft["id"] = "12345"
	draft["date"] = "1999-01-01"

	outcome := f.svc.Create(context.Background(), draft)
	require.True(t, outcome.Succeeded())

	row := f.onlyInvoice(t)
	assert.Equal(t, "2024-05-14", row.Date)
	assert.NotEqual(t, snowflake.ID(12345), row.ID)
}

func TestCreate_UnresolvableCustomerReference(t *testing.T) {
	f := setup(t)

	draft := f.draft()
	draft["customerId"] = "not-a-reference"

	outcome := f.svc.Create(context.Background(), draft)
	require.True(t, outcome.PersistenceFailed())
	assert.Equal(t, "Database Error: Failed to Create Invoice.", outcome.Message)
	assert.Nil(t, outcome.Errors)
	assert.Zero(t, f.listing.invalidations)
}

func TestCreate_UnknownCustomerReference(t *testing.T) {
	f := setup(t)

	// Well-formed reference that resolves to nothing; the foreign key
	// rejects it at the statement, not in the validator.
	draft := f.draft()
	draft["customerId"] = "999999999999999999"

	outcome := f.svc.Create(context.Background(), draft)
	require.True(t, outcome.PersistenceFailed())
	assert.Equal(t, "Database Error: Failed to Create Invoice.", outcome.Message)
	assert.Nil(t, outcome.Errors)
}

func TestUpdate_RewritesRowButNotDate(t *testing.T) {
	f := setup(t)

	require.True(t, f.svc.Create(context.Background(), f.draft()).Succeeded())
	created := f.onlyInvoice(t)

	f.clk.Advance(48 * time.Hour)

	draft := f.draft()
	draft["amount"] = "99"
	draft["status"] = "pending"

	outcome := f.svc.Update(context.Background(), created.ID, draft)
	require.True(t, outcome.Succeeded())

	row := f.onlyInvoice(t)
	assert.Equal(t, created.ID, row.ID)
	assert.Equal(t, int64(9900), row.Amount)
	assert.Equal(t, domain.InvoiceStatusPending, row.Status)
	assert.Equal(t, "2024-05-14", row.Date, "submission date is immutable")

	assert.Equal(t, 2, f.listing.invalidations)
}

func TestUpdate_ValidationFailure(t *testing.T) {
	f := setup(t)

	require.True(t, f.svc.Create(context.Background(), f.draft()).Succeeded())
	created := f.onlyInvoice(t)

	draft := f.draft()
	draft["status"] = "Pending"

	outcome := f.svc.Update(context.Background(), created.ID, draft)
	require.True(t, outcome.ValidationFailed())
	assert.Equal(t, "Missing Fields. Failed to Update Invoice.", outcome.Message)
	assert.Equal(t, []string{domain.MsgSelectStatus}, outcome.Errors["status"])

	row := f.onlyInvoice(t)
	assert.Equal(t, domain.InvoiceStatusPaid, row.Status, "row untouched on validation failure")
}

func TestUpdate_StoreFault(t *testing.T) {
	f := setup(t)

	require.True(t, f.svc.Create(context.Background(), f.draft()).Succeeded())
	created := f.onlyInvoice(t)

	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	outcome := f.svc.Update(context.Background(), created.ID, f.draft())
	require.True(t, outcome.PersistenceFailed())
	assert.Equal(t, "Database Error: Failed to Update Invoice.", outcome.Message)
	assert.Nil(t, outcome.Errors, "store faults carry no field errors")
}

func TestUpdate_MissingRowIndistinguishableFromSuccess(t *testing.T) {
	f := setup(t)

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	outcome := f.svc.Update(context.Background(), node.Generate(), f.draft())
	assert.True(t, outcome.Succeeded(), "zero rows affected is not a fault")
	assert.Equal(t, 1, f.listing.invalidations)
}

func TestDelete_Twice(t *testing.T) {
	f := setup(t)

	require.True(t, f.svc.Create(context.Background(), f.draft()).Succeeded())
	created := f.onlyInvoice(t)

	outcome := f.svc.Delete(context.Background(), created.ID)
	require.True(t, outcome.Succeeded())

	var count int64
	require.NoError(t, f.db.Model(&domain.Invoice{}).Count(&count).Error)
	assert.Zero(t, count)

	// The store reports zero rows for the second pass; the contract
	// does not distinguish that from success.
	outcome = f.svc.Delete(context.Background(), created.ID)
	assert.True(t, outcome.Succeeded())
}

func TestDelete_StoreFault(t *testing.T) {
	f := setup(t)

	require.True(t, f.svc.Create(context.Background(), f.draft()).Succeeded())
	created := f.onlyInvoice(t)

	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	outcome := f.svc.Delete(context.Background(), created.ID)
	require.True(t, outcome.PersistenceFailed())
	assert.Equal(t, "Database Error: Failed to Delete Invoice.", outcome.Message)
}

func TestList_ReadsThroughListingCache(t *testing.T) {
	f := setup(t)

	require.True(t, f.svc.Create(context.Background(), f.draft()).Succeeded())

	first, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, f.listing.sets)

	// Bypass the service; the cached view must still serve the old
	// listing until a mutation invalidates it.
	require.NoError(t, f.db.Exec(`DELETE FROM invoices`).Error)

	second, err := f.svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, 1, f.listing.sets, "served from cache")

	f.listing.InvalidateListing(context.Background())

	third, err := f.svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, third)
}
