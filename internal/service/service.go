package service

import (
	"github.com/carson-networks/account-service/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Account *AccountService
}

// NewService creates a new Service with the given storage.
func NewService(store *storage.Storage) *Service {
	return &Service{
		Account: NewAccountService(store),
	}
}
