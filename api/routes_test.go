package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handler "github.com/carson-networks/account-service/internal/handlers/v1/account"
	"github.com/carson-networks/account-service/internal/logging"
	"github.com/carson-networks/account-service/internal/rest"
	"github.com/carson-networks/account-service/internal/service"
	"github.com/carson-networks/account-service/internal/storage"
	"github.com/carson-networks/account-service/internal/storage/account"
)

// memoryAccounts is an in-memory account table.
type memoryAccounts struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]account.Account
}

var _ account.IAccountTable = (*memoryAccounts)(nil)

func newMemoryAccounts() *memoryAccounts {
	return &memoryAccounts{rows: map[int64]account.Account{}}
}

func (m *memoryAccounts) FindByID(ctx context.Context, id int64) (*account.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (m *memoryAccounts) Insert(ctx context.Context, create *account.AccountCreate) (*account.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	now := time.Now().UTC()
	row := account.Account{
		ID:          m.nextID,
		Name:        create.Name,
		Email:       create.Email,
		Address:     create.Address,
		PhoneNumber: create.PhoneNumber,
		DateJoined:  time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
	m.rows[row.ID] = row
	return &row, nil
}

func (m *memoryAccounts) List(ctx context.Context) ([]*account.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*account.Account, 0, len(m.rows))
	for _, row := range m.rows {
		row := row
		result = append(result, &row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *memoryAccounts) Update(ctx context.Context, id int64, update *account.AccountUpdate) (*account.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	row.Name = update.Name
	row.Email = update.Email
	row.Address = update.Address
	row.PhoneNumber = update.PhoneNumber
	m.rows[id] = row
	return &row, nil
}

func (m *memoryAccounts) Delete(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

func newTestServer(t *testing.T) (http.Handler, *memoryAccounts) {
	t.Helper()
	table := newMemoryAccounts()
	r := &Rest{
		Logger:  logging.SetupLogging(),
		Service: service.NewService(&storage.Storage{Accounts: table}),
	}
	return r.Router(), table
}

func send(t *testing.T, router http.Handler, method, path, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createAccounts(t *testing.T, router http.Handler, count int) []handler.Account {
	t.Helper()
	accounts := make([]handler.Account, count)
	for i := range accounts {
		body := `{"name":"User ` + strconv.Itoa(i) + `","email":"user` + strconv.Itoa(i) + `@x.com","address":"` + strconv.Itoa(i) + ` Main St","phone_number":"555-01` + strconv.Itoa(i) + `"}`
		w := send(t, router, http.MethodPost, "/accounts", rest.ContentTypeJSON, body)
		require.Equal(t, http.StatusCreated, w.Code, "could not create test account")
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &accounts[i]))
	}
	return accounts
}

func listAccounts(t *testing.T, router http.Handler) []handler.Account {
	t.Helper()
	w := send(t, router, http.MethodGet, "/accounts", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var accounts []handler.Account
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &accounts))
	return accounts
}

func TestIndex(t *testing.T) {
	router, _ := newTestServer(t)

	w := send(t, router, http.MethodGet, "/", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"Account REST API Service","version":"1.0"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(logging.RequestIDHeader))
}

func TestHealth(t *testing.T) {
	router, _ := newTestServer(t)

	w := send(t, router, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestServer(t)
	send(t, router, http.MethodGet, "/health", "", "")

	w := send(t, router, http.MethodGet, "/metrics", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "account_service_http_requests_total")
}

func TestUnknownRouteAndMethod(t *testing.T) {
	router, _ := newTestServer(t)

	w := send(t, router, http.MethodGet, "/nowhere", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	w = send(t, router, http.MethodPatch, "/accounts", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), `"status":405`)
}

func TestCreateAccount_ResolvableLocation(t *testing.T) {
	router, _ := newTestServer(t)

	w := send(t, router, http.MethodPost, "/accounts", rest.ContentTypeJSON,
		`{"id":77,"name":"Ada","email":"ada@x.com","date_joined":"1999-01-01"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created handler.Account
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEqual(t, int64(77), created.ID)
	assert.NotEqual(t, "1999-01-01", created.DateJoined)

	location := w.Header().Get("Location")
	assert.Equal(t, "/accounts/"+strconv.FormatInt(created.ID, 10), location)

	got := send(t, router, http.MethodGet, location, "", "")
	assert.Equal(t, http.StatusOK, got.Code)
	assert.JSONEq(t, w.Body.String(), got.Body.String())
}

func TestCreateAccount_RejectedCreatesNoRow(t *testing.T) {
	router, _ := newTestServer(t)

	for _, body := range []string{`{"name":"not enough data"}`, `{"email":"ada@x.com"}`, `{}`} {
		w := send(t, router, http.MethodPost, "/accounts", rest.ContentTypeJSON, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	w := send(t, router, http.MethodPost, "/accounts", "test/html", `{"name":"Ada","email":"ada@x.com"}`)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	assert.Empty(t, listAccounts(t, router))
}

func TestReadAccount(t *testing.T) {
	router, _ := newTestServer(t)

	w := send(t, router, http.MethodGet, "/accounts/0", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	created := createAccounts(t, router, 3)
	for _, want := range created {
		w := send(t, router, http.MethodGet, "/accounts/"+strconv.FormatInt(want.ID, 10), "", "")
		require.Equal(t, http.StatusOK, w.Code)

		var got handler.Account
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, want, got)
	}

	w = send(t, router, http.MethodGet, "/accounts/abc", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateAccount(t *testing.T) {
	router, _ := newTestServer(t)

	w := send(t, router, http.MethodPut, "/accounts/1", rest.ContentTypeJSON, `{"name":"Ada","email":"ada@x.com"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	created := createAccounts(t, router, 1)[0]
	path := "/accounts/" + strconv.FormatInt(created.ID, 10)

	update := created
	update.Email = "test@test.com"
	payload, err := json.Marshal(update)
	require.NoError(t, err)

	w = send(t, router, http.MethodPut, path, rest.ContentTypeJSON, string(payload))
	require.Equal(t, http.StatusOK, w.Code)

	var found handler.Account
	require.NoError(t, json.Unmarshal(send(t, router, http.MethodGet, path, "", "").Body.Bytes(), &found))
	assert.Equal(t, "test@test.com", found.Email)
	assert.Equal(t, created.DateJoined, found.DateJoined)
	assert.Equal(t, created.ID, found.ID)

	w = send(t, router, http.MethodPut, path, rest.ContentTypeJSON, `{"name":"Ada"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(t, router, http.MethodPut, path, "text/plain", string(payload))
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestDeleteAccount(t *testing.T) {
	router, _ := newTestServer(t)

	created := createAccounts(t, router, 3)
	deleting := created[1]
	path := "/accounts/" + strconv.FormatInt(deleting.ID, 10)

	w := send(t, router, http.MethodDelete, path, "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	after := listAccounts(t, router)
	assert.Len(t, after, 2)
	assert.NotContains(t, after, deleting)

	w = send(t, router, http.MethodDelete, path, "", "")
	assert.Equal(t, http.StatusNoContent, w.Code, "deleting a missing account is a no-op")
	assert.Len(t, listAccounts(t, router), 2)
}

func TestListAllAccounts(t *testing.T) {
	for _, n := range []int{0, 1, 10} {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			router, _ := newTestServer(t)

			created := createAccounts(t, router, n)
			listed := listAccounts(t, router)

			assert.NotNil(t, listed)
			assert.Len(t, listed, n)
			assert.ElementsMatch(t, created, listed)
		})
	}
}

func TestAccountScenario(t *testing.T) {
	router, _ := newTestServer(t)

	w := send(t, router, http.MethodPost, "/accounts", rest.ContentTypeJSON, `{"name":"Ada","email":"ada@x.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created handler.Account
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Ada", created.Name)
	assert.Equal(t, "ada@x.com", created.Email)
	assert.Positive(t, created.ID)
	_, err := time.Parse(handler.DateLayout, created.DateJoined)
	assert.NoError(t, err)

	path := "/accounts/" + strconv.FormatInt(created.ID, 10)
	got := send(t, router, http.MethodGet, path, "", "")
	assert.Equal(t, http.StatusOK, got.Code)
	assert.JSONEq(t, w.Body.String(), got.Body.String())

	assert.Equal(t, http.StatusNoContent, send(t, router, http.MethodDelete, path, "", "").Code)
	assert.Equal(t, http.StatusNotFound, send(t, router, http.MethodGet, path, "", "").Code)
}

func TestPanicAnswersJSONError(t *testing.T) {
	r := &Rest{
		Logger:  logging.SetupLogging(),
		Service: service.NewService(&storage.Storage{}),
	}

	w := send(t, r.Router(), http.MethodGet, "/accounts/1", "", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"status":500,"error":"Internal Server Error","message":"internal server error"}`, w.Body.String())
}
