package service

import (
	"time"

	"github.com/carson-networks/account-service/internal/storage/account"
)

// Account represents an account in the service layer.
type Account struct {
	ID          int64
	Name        string
	Email       string
	Address     string
	PhoneNumber string
	DateJoined  time.Time
}

// AccountFields are the client-writable fields of an account.
type AccountFields struct {
	Name        string
	Email       string
	Address     string
	PhoneNumber string
}

func accountFromStorage(row *account.Account) *Account {
	return &Account{
		ID:          row.ID,
		Name:        row.Name,
		Email:       row.Email,
		Address:     row.Address,
		PhoneNumber: row.PhoneNumber,
		DateJoined:  row.DateJoined,
	}
}
