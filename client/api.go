package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// Envelope is the wire shape every server endpoint returns
type Envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// APIError is a server-side rejection: either a general message or a map of
// per-field validation messages, which callers merge into the same inline
// presentation as local validation errors.
type APIError struct {
	StatusCode  int
	Message     string
	FieldErrors map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// API is the remote boundary the query and mutation layers talk to
type API struct {
	http *resty.Client
}

// NewAPI creates an API client for the given server
func NewAPI(baseURL, token string) *API {
	c := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json")
	return &API{http: c}
}

// Get issues a read request and unmarshals the envelope's data into out
func (a *API) Get(ctx context.Context, path string, query map[string]string, out interface{}) error {
	req := a.http.R().SetContext(ctx)
	if query != nil {
		req.SetQueryParams(query)
	}
	resp, err := req.Get(path)
	return a.decode(resp, err, out)
}

// Post issues a write request and unmarshals the envelope's data into out
func (a *API) Post(ctx context.Context, path string, body interface{}, out interface{}) error {
	resp, err := a.http.R().SetContext(ctx).SetBody(body).Post(path)
	return a.decode(resp, err, out)
}

// Put issues an update request and unmarshals the envelope's data into out
func (a *API) Put(ctx context.Context, path string, body interface{}, out interface{}) error {
	resp, err := a.http.R().SetContext(ctx).SetBody(body).Put(path)
	return a.decode(resp, err, out)
}

// Delete issues a delete request
func (a *API) Delete(ctx context.Context, path string) error {
	resp, err := a.http.R().SetContext(ctx).Delete(path)
	return a.decode(resp, err, nil)
}

func (a *API) decode(resp *resty.Response, err error, out interface{}) error {
	if err != nil {
		return err
	}

	var env Envelope
	if jsonErr := json.Unmarshal(resp.Body(), &env); jsonErr != nil {
		return fmt.Errorf("invalid server response (%d): %w", resp.StatusCode(), jsonErr)
	}

	if !env.Status {
		apiErr := &APIError{StatusCode: resp.StatusCode(), Message: env.Message}
		// 422 responses carry a field→message map in data
		if resp.StatusCode() == 422 && len(env.Data) > 0 {
			var fields map[string]string
			if json.Unmarshal(env.Data, &fields) == nil {
				apiErr.FieldErrors = fields
			}
		}
		return apiErr
	}

	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}
