// Package source содержит HTTP-клиент источника заказов.
//
// Источник истины по заказам — внешний сервис (kds-orderd или
// совместимый). Клиент покрывает ровно две операции, нужные доске:
// список активных заказов и смена статуса. Таймауты задаёт вызывающая
// сторона через context.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/shaiso/KDS/internal/domain"
)

// Client — HTTP-клиент источника заказов.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент для источника заказов.
// Таймауты запросов управляются контекстом, а не клиентом.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// listResponse — конверт ответа списка (см. api.ListResponse).
type listResponse struct {
	Data  json.RawMessage `json:"data"`
	Total int             `json:"total"`
}

// errorResponse — конверт ошибки API.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ListOrders запрашивает полный набор активных заказов.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/orders", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer resp.Body.Close()

	if err := checkError(resp); err != nil {
		return nil, err
	}

	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	var orders []domain.Order
	if err := json.Unmarshal(lr.Data, &orders); err != nil {
		return nil, fmt.Errorf("unmarshal orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus запрашивает смену статуса заказа.
// Доске важен только исход; тело ответа игнорируется.
func (c *Client) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) error {
	body, err := json.Marshal(map[string]string{"status": string(status)})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/orders/%s/status", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	defer resp.Body.Close()

	return checkError(resp)
}

// checkError преобразует не-2xx ответ в ошибку.
func checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return fmt.Errorf("source error: HTTP %d", resp.StatusCode)
	}

	return fmt.Errorf("%s: %s", er.Error.Code, er.Error.Message)
}
