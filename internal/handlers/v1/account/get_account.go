package account

import (
	"context"
	"errors"
	"net/http"

	"github.com/carson-networks/account-service/internal/logging"
	"github.com/carson-networks/account-service/internal/rest"
	"github.com/carson-networks/account-service/internal/service"
)

type accountGetter interface {
	GetAccount(ctx context.Context, id int64) (*service.Account, error)
}

// GetAccountHandler handles GET /accounts/{id}.
type GetAccountHandler struct {
	AccountService accountGetter
}

func NewGetAccountHandler(svc accountGetter) *GetAccountHandler {
	return &GetAccountHandler{AccountService: svc}
}

func (h *GetAccountHandler) Handle(req *rest.Request, logData *logging.LogData) (*rest.Response, error) {
	id, err := accountID(req)
	if err != nil {
		return nil, err
	}
	logData.AddData("accountID", id)

	stopTimer := logData.AddTiming("getAccountMs")
	found, err := h.AccountService.GetAccount(req.Context(), id)
	stopTimer()
	if errors.Is(err, service.ErrAccountNotFound) {
		return nil, notFound(req.PathParam("id"))
	}
	if err != nil {
		return nil, rest.Internal("failed to read account", err)
	}

	return rest.JSON(http.StatusOK, Serialize(found)), nil
}
