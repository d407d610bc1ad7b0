package partner

import (
	"context"

	"github.com/billfold/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByID finds a client by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindByIDForAccount finds a client by ID within an account
	FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*Client, error)

	// FindAllForAccount finds all clients for an account
	FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]Client, error)

	// FindByStatus finds clients by status for an account
	FindByStatus(ctx context.Context, accountID uuid.UUID, status ClientStatus, filter shared.Filter) ([]Client, error)

	// Save creates or updates a client
	Save(ctx context.Context, client *Client) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, client *Client) error

	// DeleteForAccount deletes a client for an account
	DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error

	// CountForAccount counts clients for an account
	CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error)
}
