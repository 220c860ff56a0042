package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// --- Response types (дублируются из api/dto.go, CLI не импортирует internal/api) ---

// BoardResponse — представление доски из API.
type BoardResponse struct {
	New     []TicketResponse `json:"new"`
	Cooking []TicketResponse `json:"cooking"`
	Ready   []TicketResponse `json:"ready"`

	Station string `json:"station"`
	Query   string `json:"query,omitempty"`

	Loading       bool   `json:"loading"`
	Stale         bool   `json:"stale"`
	LastPollAt    string `json:"last_poll_at,omitempty"`
	AlertsEnabled bool   `json:"alerts_enabled"`
	PendingAlerts int    `json:"pending_alerts"`
}

// TicketResponse — заказ на доске.
type TicketResponse struct {
	ID           string             `json:"id"`
	Number       string             `json:"number"`
	Type         string             `json:"type"`
	Station      string             `json:"station"`
	Status       string             `json:"status"`
	Items        []LineItemResponse `json:"items"`
	Note         string             `json:"note,omitempty"`
	TableNumber  string             `json:"table_number,omitempty"`
	CustomerName string             `json:"customer_name,omitempty"`
	CreatedAt    string             `json:"created_at"`
	ElapsedSec   int64              `json:"elapsed_sec"`
	Urgency      string             `json:"urgency"`
}

// LineItemResponse — позиция заказа.
type LineItemResponse struct {
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	Modifiers []string `json:"modifiers,omitempty"`
	Station   string   `json:"station,omitempty"`
}

// StatusChangeResponse — подтверждение смены статуса.
type StatusChangeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// AlertResponse — оповещение о новом заказе.
type AlertResponse struct {
	OrderID string `json:"order_id"`
	Number  string `json:"number"`
	At      string `json:"at"`
}

// AlertsEnabledResponse — состояние звукового сигнала.
type AlertsEnabledResponse struct {
	Enabled bool `json:"enabled"`
}

// OrderResponse — заказ из API источника (orderd).
type OrderResponse struct {
	ID           string             `json:"id"`
	Number       string             `json:"number"`
	Type         string             `json:"type"`
	Station      string             `json:"station"`
	Status       string             `json:"status"`
	Items        []LineItemResponse `json:"items"`
	Note         string             `json:"note,omitempty"`
	TableNumber  string             `json:"table_number,omitempty"`
	CustomerName string             `json:"customer_name,omitempty"`
	CreatedAt    string             `json:"created_at"`
}

// --- Request types ---

// CreateOrderRequest — приём нового заказа через orderd.
type CreateOrderRequest struct {
	Type         string                  `json:"type"`
	Station      string                  `json:"station"`
	Items        []CreateLineItemRequest `json:"items"`
	Note         string                  `json:"note,omitempty"`
	TableNumber  string                  `json:"table_number,omitempty"`
	CustomerName string                  `json:"customer_name,omitempty"`
}

// CreateLineItemRequest — позиция нового заказа.
type CreateLineItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// --- API response wrappers ---

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

type listResponse struct {
	Data  json.RawMessage `json:"data"`
	Total int             `json:"total"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// --- Client ---

// Client — HTTP-клиент для API доски и источника заказов.
type Client struct {
	boardURL   string
	orderdURL  string
	httpClient *http.Client
}

// NewClient создаёт клиент. orderdURL нужен только для order create.
func NewClient(boardURL, orderdURL string) *Client {
	return &Client{
		boardURL:  boardURL,
		orderdURL: orderdURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Board ---

// Board возвращает представление доски с опциональным фильтром.
func (c *Client) Board(station, search string) (*BoardResponse, error) {
	params := url.Values{}
	if station != "" {
		params.Set("station", station)
	}
	if search != "" {
		params.Set("q", search)
	}

	path := "/api/v1/board"
	if len(params) > 0 {
		path = path + "?" + params.Encode()
	}

	var board BoardResponse
	err := c.get(c.boardURL+path, &board)
	return &board, err
}

// --- Orders ---

// AdvanceOrder двигает заказ на шаг вперёд.
func (c *Client) AdvanceOrder(id string) (*StatusChangeResponse, error) {
	var change StatusChangeResponse
	err := c.post(c.boardURL+"/api/v1/orders/"+id+"/advance", nil, &change)
	return &change, err
}

// RecallOrder возвращает заказ на шаг назад.
func (c *Client) RecallOrder(id string) (*StatusChangeResponse, error) {
	var change StatusChangeResponse
	err := c.post(c.boardURL+"/api/v1/orders/"+id+"/recall", nil, &change)
	return &change, err
}

// DoneOrder завершает заказ.
func (c *Client) DoneOrder(id string) (*StatusChangeResponse, error) {
	var change StatusChangeResponse
	err := c.post(c.boardURL+"/api/v1/orders/"+id+"/done", nil, &change)
	return &change, err
}

// SetOrderStatus запрашивает произвольный статус для заказа.
func (c *Client) SetOrderStatus(id, status string) (*StatusChangeResponse, error) {
	body := map[string]string{"status": status}
	var change StatusChangeResponse
	err := c.put(c.boardURL+"/api/v1/orders/"+id+"/status", body, &change)
	return &change, err
}

// CreateOrder принимает новый заказ через orderd.
func (c *Client) CreateOrder(req CreateOrderRequest) (*OrderResponse, error) {
	var order OrderResponse
	err := c.post(c.orderdURL+"/api/v1/orders", req, &order)
	return &order, err
}

// --- Alerts ---

// DrainAlerts забирает накопленные оповещения и очищает очередь.
func (c *Client) DrainAlerts() ([]AlertResponse, error) {
	var alerts []AlertResponse
	err := c.list(c.boardURL+"/api/v1/alerts", &alerts)
	return alerts, err
}

// SetAlertsEnabled включает или выключает звуковой сигнал.
func (c *Client) SetAlertsEnabled(enabled bool) (*AlertsEnabledResponse, error) {
	body := map[string]bool{"enabled": enabled}
	var state AlertsEnabledResponse
	err := c.put(c.boardURL+"/api/v1/alerts/enabled", body, &state)
	return &state, err
}

// --- HTTP helpers ---

func (c *Client) get(url string, result any) error {
	return c.doData(http.MethodGet, url, nil, result)
}

func (c *Client) post(url string, body any, result any) error {
	return c.doData(http.MethodPost, url, body, result)
}

func (c *Client) put(url string, body any, result any) error {
	return c.doData(http.MethodPut, url, body, result)
}

func (c *Client) list(url string, result any) error {
	resp, err := c.do(http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if lr.Data == nil {
		return nil
	}
	return json.Unmarshal(lr.Data, result)
}

func (c *Client) doData(method, url string, body any, result any) error {
	resp, err := c.do(method, url, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var dr dataResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if result != nil {
		return json.Unmarshal(dr.Data, result)
	}
	return nil
}

func (c *Client) do(method, url string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func (c *Client) checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return fmt.Errorf("API error: HTTP %d", resp.StatusCode)
	}

	return fmt.Errorf("%s: %s", er.Error.Code, er.Error.Message)
}
