package account

import (
	"fmt"
	"strconv"

	"github.com/carson-networks/account-service/internal/rest"
	"github.com/carson-networks/account-service/internal/service"
)

// DateLayout is the wire format of date_joined.
const DateLayout = "2006-01-02"

// Account is the wire representation of an account.
type Account struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	DateJoined  string `json:"date_joined"`
}

// AccountBody is the request body for creating or replacing an account. id
// and date_joined are server assigned and not declared, so client values of
// any type are dropped.
type AccountBody struct {
	Name        string `json:"name" validate:"required,max=64,dbtext"`
	Email       string `json:"email" validate:"required,max=64,dbtext"`
	Address     string `json:"address" validate:"max=256,dbtext"`
	PhoneNumber string `json:"phone_number" validate:"max=32,dbtext"`
}

// Serialize converts a service account into its wire form.
func Serialize(account *service.Account) Account {
	return Account{
		ID:          account.ID,
		Name:        account.Name,
		Email:       account.Email,
		Address:     account.Address,
		PhoneNumber: account.PhoneNumber,
		DateJoined:  account.DateJoined.Format(DateLayout),
	}
}

// Deserialize decodes and validates the request body into the fields a
// client may write.
func Deserialize(req *rest.Request) (service.AccountFields, error) {
	var body AccountBody
	if err := req.DecodeJSON(&body); err != nil {
		return service.AccountFields{}, err
	}

	return service.AccountFields{
		Name:        body.Name,
		Email:       body.Email,
		Address:     body.Address,
		PhoneNumber: body.PhoneNumber,
	}, nil
}

func notFound(id string) error {
	return rest.NotFound(fmt.Sprintf("Account with id [%s] could not be found.", id), service.ErrAccountNotFound)
}

// accountID reads the {id} path parameter. The route only matches digits, so
// the one failure left is an id too large for int64, which cannot exist.
func accountID(req *rest.Request) (int64, error) {
	raw := req.PathParam("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, notFound(raw)
	}
	return id, nil
}

func location(id int64) string {
	return "/accounts/" + strconv.FormatInt(id, 10)
}
