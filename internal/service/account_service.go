package service

import (
	"context"
	"errors"

	"github.com/carson-networks/account-service/internal/storage"
	"github.com/carson-networks/account-service/internal/storage/account"
)

// ErrAccountNotFound is returned when no account has the requested id.
var ErrAccountNotFound = errors.New("account not found")

// AccountService handles account business logic.
type AccountService struct {
	storage *storage.Storage
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *storage.Storage) *AccountService {
	return &AccountService{storage: store}
}

// CreateAccount stores a new account and returns it with its assigned id and
// join date.
func (s *AccountService) CreateAccount(ctx context.Context, fields AccountFields) (*Account, error) {
	row, err := s.storage.Accounts.Insert(ctx, &account.AccountCreate{
		Name:        fields.Name,
		Email:       fields.Email,
		Address:     fields.Address,
		PhoneNumber: fields.PhoneNumber,
	})
	if err != nil {
		return nil, err
	}
	return accountFromStorage(row), nil
}

// GetAccount retrieves an account by ID.
func (s *AccountService) GetAccount(ctx context.Context, id int64) (*Account, error) {
	row, err := s.storage.Accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrAccountNotFound
	}
	return accountFromStorage(row), nil
}

// ListAccounts returns every account.
func (s *AccountService) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := s.storage.Accounts.List(ctx)
	if err != nil {
		return nil, err
	}

	accounts := make([]Account, len(rows))
	for i, row := range rows {
		accounts[i] = *accountFromStorage(row)
	}
	return accounts, nil
}

// UpdateAccount overwrites the writable fields of an existing account.
func (s *AccountService) UpdateAccount(ctx context.Context, id int64, fields AccountFields) (*Account, error) {
	row, err := s.storage.Accounts.Update(ctx, id, &account.AccountUpdate{
		Name:        fields.Name,
		Email:       fields.Email,
		Address:     fields.Address,
		PhoneNumber: fields.PhoneNumber,
	})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrAccountNotFound
	}
	return accountFromStorage(row), nil
}

// DeleteAccount removes an account. Deleting an unknown id is not an error;
// the returned bool reports whether an account was removed.
func (s *AccountService) DeleteAccount(ctx context.Context, id int64) (bool, error) {
	return s.storage.Accounts.Delete(ctx, id)
}
