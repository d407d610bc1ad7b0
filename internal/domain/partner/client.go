package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/billfold/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientStatus represents the status of a client
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
)

// IsValid checks if the status is a valid ClientStatus
func (s ClientStatus) IsValid() bool {
	switch s {
	case ClientStatusActive, ClientStatusInactive:
		return true
	}
	return false
}

// String returns the string representation of ClientStatus
func (s ClientStatus) String() string {
	return string(s)
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Client represents a client of the account.
// Clients are referenced (never owned) by estimates, invoices, receipts
// and appointments through their ID.
type Client struct {
	shared.AccountAggregateRoot
	Name    string       `gorm:"type:varchar(200);not null;index"`
	Email   string       `gorm:"type:varchar(200);index"`
	Phone   string       `gorm:"type:varchar(50)"`
	Address string       `gorm:"type:text"`
	Notes   string       `gorm:"type:text"`
	Status  ClientStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new active client
func NewClient(accountID uuid.UUID, name, email, phone, address string) (*Client, error) {
	if err := validateClientName(name); err != nil {
		return nil, err
	}
	if err := validateClientEmail(email); err != nil {
		return nil, err
	}

	client := &Client{
		AccountAggregateRoot: shared.NewAccountAggregateRoot(accountID),
		Name:                 strings.TrimSpace(name),
		Email:                email,
		Phone:                phone,
		Address:              address,
		Status:               ClientStatusActive,
	}

	client.AddDomainEvent(NewClientCreatedEvent(client))

	return client, nil
}

// Update updates the client's contact information
func (c *Client) Update(name, email, phone, address, notes string) error {
	if err := validateClientName(name); err != nil {
		return err
	}
	if err := validateClientEmail(email); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.Email = email
	c.Phone = phone
	c.Address = address
	c.Notes = notes
	c.UpdatedAt = time.Now()

	return nil
}

// Activate marks the client as active
func (c *Client) Activate() {
	c.Status = ClientStatusActive
	c.UpdatedAt = time.Now()
}

// Deactivate marks the client as inactive.
// Inactive clients keep their documents; new documents may not reference them.
func (c *Client) Deactivate() {
	c.Status = ClientStatusInactive
	c.UpdatedAt = time.Now()
}

// IsActive returns true if the client is active
func (c *Client) IsActive() bool {
	return c.Status == ClientStatusActive
}

func validateClientName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewValidationError("Client name cannot be empty")
	}
	if len(trimmed) > 200 {
		return shared.NewValidationError("Client name cannot exceed 200 characters")
	}
	return nil
}

func validateClientEmail(email string) error {
	if email == "" {
		return nil
	}
	if len(email) > 200 {
		return shared.NewValidationError("Client email cannot exceed 200 characters")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewValidationError("Client email is not a valid address")
	}
	return nil
}
