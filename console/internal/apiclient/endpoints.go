package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"ponto/pkg/api"
)

func (c *Client) Login(ctx context.Context, username, password string) (*api.LoginResponse, error) {
	var out api.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", nil, api.LoginRequest{Username: username, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Today(ctx context.Context) (*api.TodayResponse, error) {
	var out api.TodayResponse
	if err := c.do(ctx, http.MethodGet, "/api/me/hoje", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyRecords(ctx context.Context, mes, ano int) ([]api.PunchRecord, error) {
	q := url.Values{}
	q.Set("mes", strconv.Itoa(mes))
	q.Set("ano", strconv.Itoa(ano))
	var out []api.PunchRecord
	if err := c.do(ctx, http.MethodGet, "/api/me/registros", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterPunch returns the server's confirmation message.
func (c *Client) RegisterPunch(ctx context.Context, tipo api.PunchType) (string, error) {
	return c.message(ctx, http.MethodPost, "/api/ponto/registrar", api.PunchRequest{Tipo: tipo})
}

func (c *Client) ListUsers(ctx context.Context) ([]api.User, error) {
	var out []api.User
	if err := c.do(ctx, http.MethodGet, "/api/admin/usuarios", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateUser(ctx context.Context, req api.CreateUserRequest) (string, error) {
	return c.message(ctx, http.MethodPost, "/api/admin/usuarios", req)
}

func (c *Client) UpdateUser(ctx context.Context, id uint, req api.UpdateUserRequest) (string, error) {
	return c.message(ctx, http.MethodPut, fmt.Sprintf("/api/admin/usuarios/%d", id), req)
}

func (c *Client) DeleteUser(ctx context.Context, id uint) (string, error) {
	return c.message(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/usuarios/%d", id), nil)
}

// ListRecords passes q through untouched so absent filters stay absent.
func (c *Client) ListRecords(ctx context.Context, q url.Values) ([]api.PunchRecord, error) {
	var out []api.PunchRecord
	if err := c.do(ctx, http.MethodGet, "/api/admin/registros", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateManualEntry(ctx context.Context, req api.ManualEntryRequest) (*api.ManualEntryResponse, error) {
	var out api.ManualEntryResponse
	if err := c.do(ctx, http.MethodPost, "/api/admin/registros", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateRecord(ctx context.Context, id uint, req api.UpdateRecordRequest) (string, error) {
	return c.message(ctx, http.MethodPut, fmt.Sprintf("/api/admin/registros/%d", id), req)
}

func (c *Client) DeleteRecord(ctx context.Context, id uint) (string, error) {
	return c.message(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/registros/%d", id), nil)
}

// DownloadReport returns the workbook bytes and the server-suggested filename.
func (c *Client) DownloadReport(ctx context.Context, q url.Values) ([]byte, string, error) {
	return c.download(ctx, "/api/admin/relatorio", q)
}

func (c *Client) message(ctx context.Context, method, path string, body interface{}) (string, error) {
	var out api.MessageResponse
	if err := c.do(ctx, method, path, nil, body, &out); err != nil {
		return "", err
	}
	return out.Msg, nil
}
