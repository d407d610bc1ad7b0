package partner

import (
	"context"

	"github.com/billfold/backend/internal/domain/partner"
	"github.com/billfold/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReferenceChecker reports whether any document or appointment still
// references a client. Implemented in the persistence layer over the
// billing and scheduling tables.
type ReferenceChecker interface {
	HasReferences(ctx context.Context, accountID, clientID uuid.UUID) (bool, error)
}

// ClientService handles client business operations
type ClientService struct {
	clientRepo     partner.ClientRepository
	references     ReferenceChecker
	eventPublisher shared.EventPublisher
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo partner.ClientRepository, references ReferenceChecker) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		references: references,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ClientService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new active client
func (s *ClientService) Create(ctx context.Context, accountID uuid.UUID, req CreateClientRequest) (*ClientResponse, error) {
	client, err := partner.NewClient(accountID, req.Name, req.Email, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, client)

	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, accountID, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDForAccount(ctx, accountID, clientID)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients with filtering and pagination
func (s *ClientService) List(ctx context.Context, accountID uuid.UUID, filter ClientListFilter) ([]ClientResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search

	var (
		clients []partner.Client
		err     error
	)
	if filter.Status != nil {
		clients, err = s.clientRepo.FindByStatus(ctx, accountID, *filter.Status, domainFilter)
	} else {
		clients, err = s.clientRepo.FindAllForAccount(ctx, accountID, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	if filter.Status != nil {
		domainFilter.Filters["status"] = filter.Status.String()
	}
	total, err := s.clientRepo.CountForAccount(ctx, accountID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToClientResponses(clients), total, nil
}

// Update updates a client's contact details
func (s *ClientService) Update(ctx context.Context, accountID, clientID uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDForAccount(ctx, accountID, clientID)
	if err != nil {
		return nil, err
	}

	name := client.Name
	if req.Name != nil {
		name = *req.Name
	}
	email := client.Email
	if req.Email != nil {
		email = *req.Email
	}
	phone := client.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	address := client.Address
	if req.Address != nil {
		address = *req.Address
	}
	notes := client.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}

	if err := client.Update(name, email, phone, address, notes); err != nil {
		return nil, err
	}

	if err := s.clientRepo.SaveWithLock(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// Activate marks a client active
func (s *ClientService) Activate(ctx context.Context, accountID, clientID uuid.UUID) (*ClientResponse, error) {
	return s.setStatus(ctx, accountID, clientID, func(c *partner.Client) { c.Activate() })
}

// Deactivate marks a client inactive. Existing documents are untouched.
func (s *ClientService) Deactivate(ctx context.Context, accountID, clientID uuid.UUID) (*ClientResponse, error) {
	return s.setStatus(ctx, accountID, clientID, func(c *partner.Client) { c.Deactivate() })
}

func (s *ClientService) setStatus(ctx context.Context, accountID, clientID uuid.UUID, change func(*partner.Client)) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDForAccount(ctx, accountID, clientID)
	if err != nil {
		return nil, err
	}

	change(client)

	if err := s.clientRepo.SaveWithLock(ctx, client); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, client)

	response := ToClientResponse(client)
	return &response, nil
}

// Delete deletes a client. A client still referenced by any estimate,
// invoice, receipt or appointment cannot be deleted; deactivate instead.
func (s *ClientService) Delete(ctx context.Context, accountID, clientID uuid.UUID) error {
	client, err := s.clientRepo.FindByIDForAccount(ctx, accountID, clientID)
	if err != nil {
		return err
	}

	if s.references != nil {
		referenced, err := s.references.HasReferences(ctx, accountID, client.ID)
		if err != nil {
			return err
		}
		if referenced {
			return shared.NewDomainError(shared.CodeInvalidState, "Client has documents or appointments; deactivate it instead of deleting")
		}
	}

	return s.clientRepo.DeleteForAccount(ctx, accountID, clientID)
}

func (s *ClientService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		_ = err
	}
	aggregate.ClearDomainEvents()
}
