package rest

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/carson-networks/account-service/internal/logging"
)

const maxBodyBytes = 1 << 20

// Request is the parsed form of an inbound HTTP request handed to a Handler.
type Request struct {
	Method     string
	PathParams map[string]string
	Header     http.Header
	Body       []byte

	ctx context.Context
}

// Response is what a Handler returns. A nil Body writes no content.
type Response struct {
	Status int
	Header http.Header
	Body   interface{}
}

// Handler serves one route. Returned errors are written as JSON error
// bodies; use the constructors in errors.go to pick the status.
type Handler func(req *Request, logData *logging.LogData) (*Response, error)

func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

func (r *Request) PathParam(name string) string {
	return r.PathParams[name]
}

func JSON(status int, body interface{}) *Response {
	return &Response{Status: status, Header: http.Header{}, Body: body}
}

func NoContent() *Response {
	return &Response{Status: http.StatusNoContent, Header: http.Header{}}
}

func (r *Response) WithHeader(key, value string) *Response {
	if r.Header == nil {
		r.Header = http.Header{}
	}
	r.Header.Set(key, value)
	return r
}

// NewRequest reads the body and chi path parameters of req.
func NewRequest(w http.ResponseWriter, req *http.Request) (*Request, error) {
	params := map[string]string{}
	if rctx := chi.RouteContext(req.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			params[key] = rctx.URLParams.Values[i]
		}
	}

	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, NewError(http.StatusRequestEntityTooLarge, "request body too large", err)
			}
			return nil, BadRequest("could not read request body", err)
		}
	}

	return &Request{
		Method:     req.Method,
		PathParams: params,
		Header:     req.Header,
		Body:       body,
		ctx:        req.Context(),
	}, nil
}

// Adapt turns a Handler into the signature logging.LoggingWrapper expects.
func Adapt(handler Handler) func(http.ResponseWriter, *http.Request, *logging.LogData) error {
	return func(w http.ResponseWriter, httpReq *http.Request, logData *logging.LogData) error {
		req, err := NewRequest(w, httpReq)
		if err != nil {
			return WriteError(w, err)
		}

		resp, err := handler(req, logData)
		if err != nil {
			return WriteError(w, err)
		}

		return Write(w, resp)
	}
}

func Write(w http.ResponseWriter, resp *Response) error {
	for key, values := range resp.Header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}

	if resp.Body == nil || resp.Status == http.StatusNoContent {
		w.WriteHeader(resp.Status)
		return nil
	}

	payload, err := json.Marshal(resp.Body)
	if err != nil {
		return WriteError(w, Internal("could not encode response", err))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, err = w.Write(payload)
	return err
}

// WriteError writes the JSON error body for err and returns it as an *Error
// so callers can hand it on to the logging wrapper.
func WriteError(w http.ResponseWriter, err error) error {
	restErr := AsError(err)

	payload, marshalErr := json.Marshal(ErrorBody{
		Status:  restErr.Status,
		Error:   http.StatusText(restErr.Status),
		Message: restErr.Message,
	})
	if marshalErr != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return errors.Join(restErr, marshalErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(restErr.Status)
	_, _ = w.Write(payload)
	return restErr
}

// NotFoundHandler answers requests that match no route.
func NotFoundHandler(w http.ResponseWriter, req *http.Request) {
	_ = WriteError(w, NotFound("the requested URL was not found on the server", nil))
}

// MethodNotAllowedHandler answers known routes called with the wrong verb.
func MethodNotAllowedHandler(w http.ResponseWriter, req *http.Request) {
	_ = WriteError(w, NewError(http.StatusMethodNotAllowed, "the method is not allowed for the requested URL", nil))
}
