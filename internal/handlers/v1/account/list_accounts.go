package account

import (
	"context"
	"net/http"

	"github.com/carson-networks/account-service/internal/logging"
	"github.com/carson-networks/account-service/internal/rest"
	"github.com/carson-networks/account-service/internal/service"
)

// accountLister is the interface for listing accounts.
type accountLister interface {
	ListAccounts(ctx context.Context) ([]service.Account, error)
}

// ListAccountsHandler handles GET /accounts.
type ListAccountsHandler struct {
	AccountService accountLister
}

// NewListAccountsHandler creates a new ListAccountsHandler.
func NewListAccountsHandler(svc accountLister) *ListAccountsHandler {
	return &ListAccountsHandler{AccountService: svc}
}

func (h *ListAccountsHandler) Handle(req *rest.Request, logData *logging.LogData) (*rest.Response, error) {
	stopTimer := logData.AddTiming("listAccountsMs")
	accounts, err := h.AccountService.ListAccounts(req.Context())
	stopTimer()
	if err != nil {
		return nil, rest.Internal("failed to list accounts", err)
	}

	logData.AddData("accountCount", len(accounts))

	resp := make([]Account, len(accounts))
	for i := range accounts {
		resp[i] = Serialize(&accounts[i])
	}

	return rest.JSON(http.StatusOK, resp), nil
}
