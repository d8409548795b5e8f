package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/account-service/internal/config"
	"github.com/carson-networks/account-service/internal/storage/account"
)

type Storage struct {
	DB       *sql.DB
	Accounts account.IAccountTable
}

// NewStorage opens the connection pool described by env. The pool connects
// lazily, so a reachable database is only required once a query runs.
func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.DatabaseURI)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(env.DBMaxOpenConns)
	db.SetMaxIdleConns(env.DBMaxIdleConns)
	db.SetConnMaxLifetime(env.DBConnMaxLifetime)

	return New(db), nil
}

func New(db *sql.DB) *Storage {
	return &Storage{
		DB:       db,
		Accounts: account.NewWriter(bob.NewDB(db)),
	}
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
