package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Service is the invoice mutation pipeline. Each call is an
// independent unit of work issuing exactly one store statement;
// concurrent calls are never coordinated and the last write wins.
// Update and Delete take the identity out of band, never from the
// draft, and do not distinguish a missing row from success.
type Service interface {
	Create(ctx context.Context, draft Draft) MutationOutcome
	Update(ctx context.Context, id snowflake.ID, draft Draft) MutationOutcome
	Delete(ctx context.Context, id snowflake.ID) MutationOutcome

	// List reads the invoice listing, newest first, through the
	// listing cache.
	List(ctx context.Context) ([]Invoice, error)
}
