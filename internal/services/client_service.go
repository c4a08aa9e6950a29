package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"villa_backend/internal/models"
	"villa_backend/internal/repositories"
	"villa_backend/pkg/utils"
)

// --- Custom Service Errors for Client ---
var (
	ErrClientNotFound    = errors.New("client not found")
	ErrPhoneNumberExists = errors.New("phone number already exists")
	ErrClientValidation  = errors.New("client data validation error")
	ErrClientInUse       = errors.New("client cannot be deleted as they are referenced by reservations")
)

// --- Client DTOs ---
type CreateClientRequest struct {
	FullName    string  `json:"fullName" binding:"required"`
	PhoneNumber *string `json:"phoneNumber"`
	Email       *string `json:"email"`
	Nationality *string `json:"nationality"`
	Notes       *string `json:"notes"`
}

type UpdateClientRequest struct {
	FullName    *string `json:"fullName"`
	PhoneNumber *string `json:"phoneNumber"`
	Email       *string `json:"email"`
	Nationality *string `json:"nationality"`
	Notes       *string `json:"notes"`
}

// --- ClientService Interface ---
type ClientService interface {
	CreateClient(ctx context.Context, req CreateClientRequest) (*models.Client, error)
	GetClientByID(ctx context.Context, clientID int64) (*models.Client, error)
	GetClients(ctx context.Context, page, pageSize int, searchTerm *string) ([]models.Client, int, error)
	UpdateClient(ctx context.Context, clientID int64, req UpdateClientRequest) (*models.Client, error)
	DeleteClient(ctx context.Context, clientID int64) error
}

type clientService struct {
	clientRepo repositories.ClientRepository
	db         repositories.SQLExecutor
}

// NewClientService creates a new instance of ClientService.
func NewClientService(repo repositories.ClientRepository, db repositories.SQLExecutor) ClientService {
	return &clientService{
		clientRepo: repo,
		db:         db,
	}
}

// validateClientData checks the merged client fields. clientID is 0 on create.
func (s *clientService) validateClientData(ctx context.Context, client *models.Client, clientID int64) error {
	if strings.TrimSpace(client.FullName) == "" {
		return fmt.Errorf("%w: full name cannot be empty", ErrClientValidation)
	}

	if client.PhoneNumber != nil {
		existing, err := s.clientRepo.GetClientByPhoneNumber(ctx, *client.PhoneNumber)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("failed to check phone number uniqueness: %w", err)
		}
		if existing != nil && existing.ID != clientID {
			return ErrPhoneNumberExists
		}
	}

	if client.Email != nil && !utils.IsValidEmail(*client.Email) {
		return fmt.Errorf("%w: email format is invalid", ErrClientValidation)
	}
	return nil
}

func (s *clientService) translateWriteError(err error, action string) error {
	if errors.Is(err, repositories.ErrDuplicateKey) && strings.Contains(err.Error(), "phone_number") {
		return ErrPhoneNumberExists
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrClientNotFound
	}
	return fmt.Errorf("failed to %s client in repository: %w", action, err)
}

func (s *clientService) CreateClient(ctx context.Context, req CreateClientRequest) (*models.Client, error) {
	client := &models.Client{
		FullName:    strings.TrimSpace(req.FullName),
		PhoneNumber: utils.NormalizeOptional(req.PhoneNumber),
		Email:       utils.NormalizeOptional(req.Email),
		Nationality: utils.NormalizeOptional(req.Nationality),
		Notes:       utils.NormalizeOptional(req.Notes),
	}
	if err := s.validateClientData(ctx, client, 0); err != nil {
		return nil, err
	}

	if _, err := s.clientRepo.CreateClient(ctx, s.db, client); err != nil {
		return nil, s.translateWriteError(err, "create")
	}
	return client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, clientID int64) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID: %w", err)
	}
	return client, nil
}

func (s *clientService) GetClients(ctx context.Context, page, pageSize int, searchTerm *string) ([]models.Client, int, error) {
	page, pageSize = NormalizePage(page, pageSize)

	clients, totalCount, err := s.clientRepo.GetClients(ctx, page, pageSize, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get clients: %w", err)
	}
	return clients, totalCount, nil
}

func (s *clientService) UpdateClient(ctx context.Context, clientID int64, req UpdateClientRequest) (*models.Client, error) {
	client, err := s.GetClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		client.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.PhoneNumber != nil {
		client.PhoneNumber = utils.NormalizeOptional(req.PhoneNumber)
	}
	if req.Email != nil {
		client.Email = utils.NormalizeOptional(req.Email)
	}
	if req.Nationality != nil {
		client.Nationality = utils.NormalizeOptional(req.Nationality)
	}
	if req.Notes != nil {
		client.Notes = utils.NormalizeOptional(req.Notes)
	}

	if err := s.validateClientData(ctx, client, clientID); err != nil {
		return nil, err
	}

	if err := s.clientRepo.UpdateClient(ctx, s.db, client); err != nil {
		return nil, s.translateWriteError(err, "update")
	}
	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, clientID int64) error {
	if _, err := s.GetClientByID(ctx, clientID); err != nil {
		return err
	}

	err := s.clientRepo.DeleteClient(ctx, s.db, clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrReferenced) {
			return ErrClientInUse
		}
		return s.translateWriteError(err, "delete")
	}
	return nil
}
