package account

import (
	"context"

	"github.com/carson-networks/account-service/internal/logging"
	"github.com/carson-networks/account-service/internal/rest"
)

type accountDeleter interface {
	DeleteAccount(ctx context.Context, id int64) (bool, error)
}

// DeleteAccountHandler handles DELETE /accounts/{id}. Deleting an id that
// does not exist still answers 204.
type DeleteAccountHandler struct {
	AccountService accountDeleter
}

func NewDeleteAccountHandler(svc accountDeleter) *DeleteAccountHandler {
	return &DeleteAccountHandler{AccountService: svc}
}

func (h *DeleteAccountHandler) Handle(req *rest.Request, logData *logging.LogData) (*rest.Response, error) {
	id, err := accountID(req)
	if err != nil {
		return nil, err
	}
	logData.AddData("accountID", id)

	stopTimer := logData.AddTiming("deleteAccountMs")
	deleted, err := h.AccountService.DeleteAccount(req.Context(), id)
	stopTimer()
	if err != nil {
		return nil, rest.Internal("failed to delete account", err)
	}

	logData.AddData("deleted", deleted)

	return rest.NoContent(), nil
}
