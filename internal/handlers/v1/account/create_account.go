package account

import (
	"context"
	"net/http"

	"github.com/carson-networks/account-service/internal/logging"
	"github.com/carson-networks/account-service/internal/rest"
	"github.com/carson-networks/account-service/internal/service"
)

// accountCreator is the interface for creating accounts.
type accountCreator interface {
	CreateAccount(ctx context.Context, fields service.AccountFields) (*service.Account, error)
}

// CreateAccountHandler handles POST /accounts.
type CreateAccountHandler struct {
	AccountService accountCreator
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(svc accountCreator) *CreateAccountHandler {
	return &CreateAccountHandler{AccountService: svc}
}

func (h *CreateAccountHandler) Handle(req *rest.Request, logData *logging.LogData) (*rest.Response, error) {
	if err := req.RequireContentType(rest.ContentTypeJSON); err != nil {
		return nil, err
	}

	fields, err := Deserialize(req)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("createAccountMs")
	created, err := h.AccountService.CreateAccount(req.Context(), fields)
	stopTimer()
	if err != nil {
		return nil, rest.Internal("failed to create account", err)
	}

	logData.AddData("accountID", created.ID)

	return rest.JSON(http.StatusCreated, Serialize(created)).
		WithHeader("Location", location(created.ID)), nil
}
