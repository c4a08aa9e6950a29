package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"villa_backend/internal/models"
	"villa_backend/internal/services"
	"villa_backend/pkg/utils"
)

// ClientHandler holds the client service.
type ClientHandler struct {
	clientService services.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(cs services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: cs}
}

func (h *ClientHandler) respondError(c *gin.Context, err error, op, fallback string) {
	utils.LogError(err, op)
	switch {
	case errors.Is(err, services.ErrClientNotFound):
		respondNotFound(c, "Client not found.", err)
	case errors.Is(err, services.ErrPhoneNumberExists):
		respondConflict(c, "Phone number already exists.", err)
	case errors.Is(err, services.ErrClientInUse):
		respondConflict(c, "Client cannot be deleted as they are referenced by reservations.", err)
	case errors.Is(err, services.ErrClientValidation):
		utils.RespondValidationFailed(c, err.Error())
	default:
		utils.RespondInternalError(c, fallback)
	}
}

// CreateClient handles the creation of a new client.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req services.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "CreateClient", err)
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "CreateClient: Error from clientService.CreateClient", "Failed to create client.")
		return
	}
	c.JSON(http.StatusCreated, client)
}

// GetClients handles fetching all clients with pagination and search.
func (h *ClientHandler) GetClients(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	page, pageSize = services.NormalizePage(page, pageSize)

	var searchTerm *string
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		searchTerm = &s
	}

	clients, totalCount, err := h.clientService.GetClients(c.Request.Context(), page, pageSize, searchTerm)
	if err != nil {
		h.respondError(c, err, "GetClients: Error from clientService.GetClients", "Failed to fetch clients.")
		return
	}
	if clients == nil {
		clients = []models.Client{}
	}

	c.JSON(http.StatusOK, ListResponse{Data: clients, Total: totalCount, Page: page, PageSize: pageSize})
}

// GetClientByID handles fetching a single client by ID.
func (h *ClientHandler) GetClientByID(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id", "client")
	if !ok {
		return
	}

	client, err := h.clientService.GetClientByID(c.Request.Context(), clientID)
	if err != nil {
		h.respondError(c, err, "GetClientByID: Error from clientService.GetClientByID for ID "+c.Param("id"), "Failed to fetch client.")
		return
	}
	c.JSON(http.StatusOK, client)
}

// UpdateClient handles updating a client.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id", "client")
	if !ok {
		return
	}

	var req services.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "UpdateClient", err)
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), clientID, req)
	if err != nil {
		h.respondError(c, err, "UpdateClient: Error from clientService.UpdateClient for ID "+c.Param("id"), "Failed to update client.")
		return
	}
	c.JSON(http.StatusOK, client)
}

// DeleteClient handles deleting a client.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id", "client")
	if !ok {
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), clientID); err != nil {
		h.respondError(c, err, "DeleteClient: Error from clientService.DeleteClient for ID "+c.Param("id"), "Failed to delete client.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
