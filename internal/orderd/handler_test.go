package orderd

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/KDS/internal/domain"
	"github.com/shaiso/KDS/internal/repo"
)

func newTestServer(t *testing.T) (*httptest.Server, *repo.MemStore) {
	t.Helper()

	store := repo.NewMemStore()
	handler := NewHandler(Config{
		Store:  store,
		Logger: slog.New(slog.NewTextHandler(&strings.Builder{}, nil)),
	})

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv, store
}

func doJSON(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeOrder(t *testing.T, resp *http.Response) domain.Order {
	t.Helper()
	var envelope struct {
		Data domain.Order `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

const createBody = `{
	"type": "dine_in",
	"station": "grill",
	"items": [{"name": "burger", "quantity": 2, "modifiers": ["no onion"]}],
	"table_number": "T7"
}`

func TestCreateOrder(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/orders", createBody)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	order := decodeOrder(t, resp)
	if order.Number != "ORD-0001" {
		t.Errorf("first order should get ORD-0001, got %s", order.Number)
	}
	if order.Status != domain.StatusNew {
		t.Errorf("new order should start in new, got %s", order.Status)
	}
	if order.ID == uuid.Nil {
		t.Error("order should get an ID")
	}
}

func TestCreateOrder_Validation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"unknown type", `{"type":"drive_thru","station":"grill","items":[{"name":"burger","quantity":1}]}`},
		{"unknown station", `{"type":"dine_in","station":"bakery","items":[{"name":"burger","quantity":1}]}`},
		{"wildcard station", `{"type":"dine_in","station":"all","items":[{"name":"burger","quantity":1}]}`},
		{"no items", `{"type":"dine_in","station":"grill","items":[]}`},
		{"empty item name", `{"type":"dine_in","station":"grill","items":[{"name":"","quantity":1}]}`},
		{"zero quantity", `{"type":"dine_in","station":"grill","items":[{"name":"burger","quantity":0}]}`},
		{"bad json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/orders", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("unexpected status: %d", resp.StatusCode)
			}
		})
	}
}

func TestListOrders(t *testing.T) {
	srv, store := newTestServer(t)

	doJSON(t, http.MethodPost, srv.URL+"/api/v1/orders", createBody)
	doJSON(t, http.MethodPost, srv.URL+"/api/v1/orders", createBody)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/orders", "")
	var envelope struct {
		Data  []domain.Order `json:"data"`
		Total int            `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatal(err)
	}
	if envelope.Total != 2 || len(envelope.Data) != 2 {
		t.Fatalf("expected two orders, got %d", len(envelope.Data))
	}

	// Завершённый заказ из списка исчезает
	done := envelope.Data[0]
	if _, err := store.UpdateStatus(context.Background(), done.ID, domain.StatusDone, time.Now()); err != nil {
		t.Fatal(err)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/orders", "")
	var after struct {
		Data []domain.Order `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&after); err != nil {
		t.Fatal(err)
	}
	if len(after.Data) != 1 || after.Data[0].ID == done.ID {
		t.Errorf("done order should not be listed: %+v", after.Data)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/orders", createBody)
	order := decodeOrder(t, resp)

	resp = doJSON(t, http.MethodPut, srv.URL+"/api/v1/orders/"+order.ID.String()+"/status", `{"status":"ready"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	updated := decodeOrder(t, resp)
	if updated.Status != domain.StatusReady {
		t.Errorf("unexpected order status: %s", updated.Status)
	}
	if updated.StatusChangedAt == nil {
		t.Error("status change should be timestamped")
	}
}

func TestUpdateOrderStatus_Errors(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/orders/"+uuid.New().String()+"/status", `{"status":"ready"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown order: unexpected status %d", resp.StatusCode)
	}

	created := doJSON(t, http.MethodPost, srv.URL+"/api/v1/orders", createBody)
	order := decodeOrder(t, created)

	resp = doJSON(t, http.MethodPut, srv.URL+"/api/v1/orders/"+order.ID.String()+"/status", `{"status":"burnt"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown status: unexpected status %d", resp.StatusCode)
	}
}

func TestGetOrder(t *testing.T) {
	srv, _ := newTestServer(t)

	created := doJSON(t, http.MethodPost, srv.URL+"/api/v1/orders", createBody)
	order := decodeOrder(t, created)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/orders/"+order.ID.String(), "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	got := decodeOrder(t, resp)
	if got.Number != order.Number {
		t.Errorf("unexpected order: %s", got.Number)
	}
}
