package partner

import (
	"time"

	"github.com/billfold/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// CreateClientRequest is the input for creating a client
type CreateClientRequest struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// UpdateClientRequest is the input for editing a client's contact details
type UpdateClientRequest struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Notes   *string
}

// ClientListFilter narrows client listings
type ClientListFilter struct {
	Status   *partner.ClientStatus
	Search   string
	Page     int
	PageSize int
}

// ClientResponse is the read model returned for a client
type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ToClientResponse maps a client to its read model
func ToClientResponse(c *partner.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Notes:     c.Notes,
		Status:    c.Status.String(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Version:   c.Version,
	}
}

// ToClientResponses maps a slice of clients
func ToClientResponses(clients []partner.Client) []ClientResponse {
	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientResponse(&clients[i])
	}
	return responses
}
