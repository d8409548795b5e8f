package account

import (
	"context"
	"errors"
	"net/http"

	"github.com/carson-networks/account-service/internal/logging"
	"github.com/carson-networks/account-service/internal/rest"
	"github.com/carson-networks/account-service/internal/service"
)

type accountUpdater interface {
	UpdateAccount(ctx context.Context, id int64, fields service.AccountFields) (*service.Account, error)
}

// UpdateAccountHandler handles PUT /accounts/{id}. The body replaces every
// writable field; omitted optional fields are cleared.
type UpdateAccountHandler struct {
	AccountService accountUpdater
}

func NewUpdateAccountHandler(svc accountUpdater) *UpdateAccountHandler {
	return &UpdateAccountHandler{AccountService: svc}
}

func (h *UpdateAccountHandler) Handle(req *rest.Request, logData *logging.LogData) (*rest.Response, error) {
	id, err := accountID(req)
	if err != nil {
		return nil, err
	}
	logData.AddData("accountID", id)

	if err := req.RequireContentType(rest.ContentTypeJSON); err != nil {
		return nil, err
	}

	fields, err := Deserialize(req)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("updateAccountMs")
	updated, err := h.AccountService.UpdateAccount(req.Context(), id, fields)
	stopTimer()
	if errors.Is(err, service.ErrAccountNotFound) {
		return nil, notFound(req.PathParam("id"))
	}
	if err != nil {
		return nil, rest.Internal("failed to update account", err)
	}

	return rest.JSON(http.StatusOK, Serialize(updated)), nil
}
