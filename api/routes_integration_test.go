//go:build integration

package api

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/carson-networks/account-service/internal/config"
	handler "github.com/carson-networks/account-service/internal/handlers/v1/account"
	"github.com/carson-networks/account-service/internal/logging"
	"github.com/carson-networks/account-service/internal/rest"
	"github.com/carson-networks/account-service/internal/service"
	"github.com/carson-networks/account-service/internal/storage"
	"github.com/carson-networks/account-service/internal/storage/migrations"
)

// PostgresSuite runs the HTTP surface against a real database.
type PostgresSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	store     *storage.Storage
	router    http.Handler
}

func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(
		ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("accounts"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	uri, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	pre, post, err := migrations.Up(uri)
	s.Require().NoError(err)
	s.Equal(uint(0), pre)
	s.Equal(uint(1), post)

	_, post, err = migrations.Up(uri)
	s.Require().NoError(err, "re-running migrations is a no-op")
	s.Equal(uint(1), post)

	s.store, err = storage.NewStorage(&config.Config{
		DatabaseURI:       uri,
		DBMaxOpenConns:    5,
		DBMaxIdleConns:    1,
		DBConnMaxLifetime: time.Minute,
	})
	s.Require().NoError(err)
	s.Require().NoError(s.store.Ping(ctx))

	r := &Rest{
		Logger:  logging.SetupLogging(),
		Service: service.NewService(s.store),
	}
	s.router = r.Router()
}

func (s *PostgresSuite) TearDownSuite() {
	if s.store != nil {
		_ = s.store.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *PostgresSuite) SetupTest() {
	_, err := s.store.DB.ExecContext(context.Background(), "DELETE FROM accounts")
	s.Require().NoError(err)
}

func (s *PostgresSuite) TestScenario() {
	t := s.T()

	w := send(t, s.router, http.MethodPost, "/accounts", rest.ContentTypeJSON, `{"name":"Ada","email":"ada@x.com"}`)
	s.Require().Equal(http.StatusCreated, w.Code)

	var created handler.Account
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	s.Equal("Ada", created.Name)
	s.Equal("", created.Address)
	s.Positive(created.ID)
	_, err := time.Parse(handler.DateLayout, created.DateJoined)
	s.NoError(err)

	path := "/accounts/" + strconv.FormatInt(created.ID, 10)
	s.Equal(path, w.Header().Get("Location"))

	got := send(t, s.router, http.MethodGet, path, "", "")
	s.Equal(http.StatusOK, got.Code)
	s.JSONEq(w.Body.String(), got.Body.String())

	s.Equal(http.StatusNoContent, send(t, s.router, http.MethodDelete, path, "", "").Code)
	s.Equal(http.StatusNotFound, send(t, s.router, http.MethodGet, path, "", "").Code)
	s.Equal(http.StatusNoContent, send(t, s.router, http.MethodDelete, path, "", "").Code)
}

func (s *PostgresSuite) TestUpdateKeepsServerFields() {
	t := s.T()
	created := createAccounts(t, s.router, 1)[0]
	path := "/accounts/" + strconv.FormatInt(created.ID, 10)

	w := send(t, s.router, http.MethodPut, path, rest.ContentTypeJSON,
		`{"id":999,"name":"Ada","email":"test@test.com","date_joined":"1999-01-01"}`)
	s.Require().Equal(http.StatusOK, w.Code)

	var updated handler.Account
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	s.Equal(created.ID, updated.ID)
	s.Equal(created.DateJoined, updated.DateJoined)
	s.Equal("test@test.com", updated.Email)
	s.Equal("", updated.Address, "omitted optional fields are cleared")

	missing := send(t, s.router, http.MethodPut, "/accounts/"+strconv.FormatInt(created.ID+1000, 10), rest.ContentTypeJSON, `{"name":"Ada","email":"ada@x.com"}`)
	s.Equal(http.StatusNotFound, missing.Code)
}

func (s *PostgresSuite) TestListAndDeleteCounts() {
	t := s.T()
	s.Empty(listAccounts(t, s.router))

	created := createAccounts(t, s.router, 10)
	listed := listAccounts(t, s.router)
	s.ElementsMatch(created, listed)

	path := "/accounts/" + strconv.FormatInt(created[4].ID, 10)
	s.Equal(http.StatusNoContent, send(t, s.router, http.MethodDelete, path, "", "").Code)
	s.Len(listAccounts(t, s.router), 9)

	s.Equal(http.StatusNoContent, send(t, s.router, http.MethodDelete, "/accounts/0", "", "").Code)
	s.Len(listAccounts(t, s.router), 9)
}

func (s *PostgresSuite) TestOverlongFieldRejected() {
	t := s.T()
	w := send(t, s.router, http.MethodPost, "/accounts", rest.ContentTypeJSON,
		`{"name":"Ada","email":"ada@x.com","phone_number":"012345678901234567890123456789012"}`)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Empty(listAccounts(t, s.router))
}
