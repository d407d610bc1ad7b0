package handler

import (
	partnerapp "github.com/billfold/backend/internal/application/partner"
	"github.com/billfold/backend/internal/domain/partner"
	"github.com/gin-gonic/gin"
)

// ClientHandler handles client endpoints
type ClientHandler struct {
	BaseHandler
	clientService *partnerapp.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *partnerapp.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// CreateClientRequest is the request body for creating a client
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Email   string `json:"email" binding:"omitempty,email,max=200"`
	Phone   string `json:"phone" binding:"max=50"`
	Address string `json:"address" binding:"max=500"`
}

// UpdateClientRequest is the request body for updating a client
type UpdateClientRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Email   *string `json:"email" binding:"omitempty,email,max=200"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address" binding:"omitempty,max=500"`
	Notes   *string `json:"notes" binding:"omitempty,max=2000"`
}

// ListClientsRequest holds query parameters for listing clients
type ListClientsRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Search   string `form:"search" binding:"omitempty,max=200"`
}

// Create handles POST /clients
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if !h.bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), accountID(c), partnerapp.CreateClientRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, client)
}

// GetByID handles GET /clients/:id
func (h *ClientHandler) GetByID(c *gin.Context) {
	clientID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.GetByID(c.Request.Context(), accountID(c), clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// List handles GET /clients
func (h *ClientHandler) List(c *gin.Context) {
	var req ListClientsRequest
	if !h.bindQuery(c, &req) {
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	filter := partnerapp.ClientListFilter{
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.Status != "" {
		status := partner.ClientStatus(req.Status)
		filter.Status = &status
	}

	clients, total, err := h.clientService.List(c.Request.Context(), accountID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, clients, req.Page, req.PageSize, total)
}

// Update handles PUT /clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	clientID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateClientRequest
	if !h.bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), accountID(c), clientID, partnerapp.UpdateClientRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// Activate handles POST /clients/:id/activate
func (h *ClientHandler) Activate(c *gin.Context) {
	clientID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.Activate(c.Request.Context(), accountID(c), clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// Deactivate handles POST /clients/:id/deactivate
func (h *ClientHandler) Deactivate(c *gin.Context) {
	clientID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.Deactivate(c.Request.Context(), accountID(c), clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// Delete handles DELETE /clients/:id. Deletion is refused while any
// document still references the client.
func (h *ClientHandler) Delete(c *gin.Context) {
	clientID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), accountID(c), clientID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
