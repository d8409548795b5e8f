package migrations

import (
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var files embed.FS

// Source returns the embedded migration files as a migrate source driver.
func Source() (source.Driver, error) {
	return iofs.New(files, ".")
}

// Up applies every pending migration against databaseURI and reports the
// schema version before and after. A database with no applied migrations
// reports version 0.
func Up(databaseURI string) (pre uint, post uint, err error) {
	src, err := Source()
	if err != nil {
		return 0, 0, err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURI)
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err == nil {
			err = errors.Join(srcErr, dbErr)
		}
	}()

	pre, err = version(m)
	if err != nil {
		return 0, 0, err
	}

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return pre, 0, err
	}

	post, err = version(m)
	if err != nil {
		return pre, 0, err
	}
	return pre, post, nil
}

func version(m *migrate.Migrate) (uint, error) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if dirty {
		return v, migrate.ErrDirty{Version: int(v)}
	}
	return v, nil
}
