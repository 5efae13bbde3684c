// Package api is a typed client for the workshop backend's REST endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	v1 "github.com/byxorna/wrench/pkg/types/v1"
)

// maxErrorBody bounds how much of an error response is read for its message.
const maxErrorBody = 64 << 10

type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// New returns a client for the backend at baseURL. httpClient carries the
// interceptor chain; see pkg/net/http.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: u, http: httpClient}, nil
}

func (c *Client) BaseURL() string { return c.baseURL.String() }

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + path
}

// do sends a request and decodes a 2xx body into out, when out is not nil.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("unable to encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return fmt.Errorf("unable to build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(method, path, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, err := io.Copy(io.Discard, resp.Body)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	return nil
}

func newAPIError(method, path string, resp *http.Response) error {
	apiErr := &APIError{Method: method, Path: path, StatusCode: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
	}
	return apiErr
}

// list fetches a collection and validates every record in it.
func list[T v1.Record](ctx context.Context, c *Client, path string) ([]T, error) {
	var out []T
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	if err := v1.ValidateAll(out); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return out, nil
}

func (c *Client) ListClients(ctx context.Context) ([]v1.Client, error) {
	return list[v1.Client](ctx, c, "/api/clients")
}

func (c *Client) ListVehicles(ctx context.Context) ([]v1.Vehicle, error) {
	return list[v1.Vehicle](ctx, c, "/api/vehicles")
}

func (c *Client) ListOrders(ctx context.Context) ([]v1.WorkOrder, error) {
	return list[v1.WorkOrder](ctx, c, "/api/orders")
}

func (c *Client) ListParts(ctx context.Context) ([]v1.Part, error) {
	return list[v1.Part](ctx, c, "/api/parts")
}

func (c *Client) ListPayments(ctx context.Context) ([]v1.Payment, error) {
	return list[v1.Payment](ctx, c, "/api/payments")
}

func (c *Client) ListUsers(ctx context.Context) ([]v1.User, error) {
	return list[v1.User](ctx, c, "/api/auth/users")
}

func (c *Client) remove(ctx context.Context, collection string, id v1.ID) error {
	return c.do(ctx, http.MethodDelete, collection+"/"+id.String(), nil, nil)
}

func (c *Client) DeleteClient(ctx context.Context, id v1.ID) error {
	return c.remove(ctx, "/api/clients", id)
}

func (c *Client) DeleteVehicle(ctx context.Context, id v1.ID) error {
	return c.remove(ctx, "/api/vehicles", id)
}

func (c *Client) DeleteOrder(ctx context.Context, id v1.ID) error {
	return c.remove(ctx, "/api/orders", id)
}

func (c *Client) DeletePart(ctx context.Context, id v1.ID) error {
	return c.remove(ctx, "/api/parts", id)
}

func (c *Client) DeleteUser(ctx context.Context, id v1.ID) error {
	return c.remove(ctx, "/api/auth/users", id)
}

// UpdatePart replaces a part and returns the stored version.
func (c *Client) UpdatePart(ctx context.Context, p v1.Part) (*v1.Part, error) {
	path := "/api/parts/" + p.ID.String()
	var out v1.Part
	if err := c.do(ctx, http.MethodPut, path, p, &out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return &out, nil
}

type RoleUpdateResponse struct {
	Message string  `json:"message"`
	User    v1.User `json:"user"`
}

// UpdateUserRole assigns role to the user.
func (c *Client) UpdateUserRole(ctx context.Context, id v1.ID, role v1.Role) (*RoleUpdateResponse, error) {
	if !v1.ValidRole(role) {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	path := "/api/auth/users/" + id.String() + "/role"
	in := struct {
		Role v1.Role `json:"role"`
	}{role}
	var out RoleUpdateResponse
	if err := c.do(ctx, http.MethodPut, path, in, &out); err != nil {
		return nil, err
	}
	if err := out.User.Validate(); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return &out, nil
}

type LoginResponse struct {
	Token string  `json:"token" validate:"required"`
	User  v1.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	const path = "/api/auth/login"
	in := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, path, in, &out); err != nil {
		return nil, err
	}
	if err := v1.Validator().Struct(out); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return &out, nil
}

// Profile returns the user the current token belongs to.
func (c *Client) Profile(ctx context.Context) (*v1.User, error) {
	const path = "/api/auth/profile"
	var out v1.User
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return &out, nil
}
