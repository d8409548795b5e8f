package account

import (
	"context"
	"time"
)

const TableName = "accounts"

var accountColumns = []any{"id", "name", "email", "address", "phone_number", "date_joined"}

// Account represents an account record.
type Account struct {
	ID          int64
	Name        string
	Email       string
	Address     string
	PhoneNumber string
	DateJoined  time.Time
}

// AccountCreate is the input for creating a new account. The id and
// date_joined columns are assigned by the database.
type AccountCreate struct {
	Name        string
	Email       string
	Address     string
	PhoneNumber string
}

// AccountUpdate holds the mutable columns of an account.
type AccountUpdate struct {
	Name        string
	Email       string
	Address     string
	PhoneNumber string
}

// IAccountTable defines the interface for account storage operations.
// Lookups of a missing id return a nil *Account and a nil error.
//
//go:generate mockery --name IAccountTable --inpackage --with-expecter --filename mock_IAccountTable.go
type IAccountTable interface {
	FindByID(ctx context.Context, id int64) (*Account, error)
	Insert(ctx context.Context, create *AccountCreate) (*Account, error)
	List(ctx context.Context) ([]*Account, error)
	Update(ctx context.Context, id int64, update *AccountUpdate) (*Account, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type accountRow struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Email       string    `db:"email"`
	Address     string    `db:"address"`
	PhoneNumber string    `db:"phone_number"`
	DateJoined  time.Time `db:"date_joined"`
}

func rowToAccount(row accountRow) *Account {
	return &Account{
		ID:          row.ID,
		Name:        row.Name,
		Email:       row.Email,
		Address:     row.Address,
		PhoneNumber: row.PhoneNumber,
		DateJoined:  row.DateJoined,
	}
}
