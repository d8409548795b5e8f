package status

import (
	"net/http"

	"github.com/carson-networks/account-service/internal/logging"
	"github.com/carson-networks/account-service/internal/rest"
)

const (
	ServiceName    = "Account REST API Service"
	ServiceVersion = "1.0"
)

type Info struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type Health struct {
	Status string `json:"status"`
}

type Handler struct{}

func NewHandler() Handler {
	return Handler{}
}

// Index answers GET / with the service name and version.
func (h *Handler) Index(req *rest.Request, logData *logging.LogData) (*rest.Response, error) {
	return rest.JSON(http.StatusOK, Info{Name: ServiceName, Version: ServiceVersion}), nil
}

// Health answers GET /health. It does not touch the database.
func (h *Handler) Health(req *rest.Request, logData *logging.LogData) (*rest.Response, error) {
	return rest.JSON(http.StatusOK, Health{Status: "OK"}), nil
}
