package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/KDS/internal/board"
	"github.com/shaiso/KDS/internal/domain"
)

// fakeRequester записывает запрошенные смены статусов.
type fakeRequester struct {
	mu       sync.Mutex
	requests []statusRequest
}

type statusRequest struct {
	orderID uuid.UUID
	status  domain.Status
}

func (f *fakeRequester) RequestStatusChange(orderID uuid.UUID, status domain.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, statusRequest{orderID: orderID, status: status})
}

func (f *fakeRequester) last() (statusRequest, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return statusRequest{}, false
	}
	return f.requests[len(f.requests)-1], true
}

func newTestServer(t *testing.T) (*httptest.Server, *board.Board, *fakeRequester) {
	t.Helper()

	b := board.New(board.Config{})
	b.Start(context.Background())
	t.Cleanup(b.Stop)

	requester := &fakeRequester{}
	handler := NewHandler(Config{
		Board:     b,
		Requester: requester,
		Logger:    slog.New(slog.NewTextHandler(&strings.Builder{}, nil)),
	})

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv, b, requester
}

func makeOrder(number string, station domain.Station, status domain.Status, createdAt time.Time) domain.Order {
	return domain.Order{
		ID:        uuid.New(),
		Number:    number,
		Type:      domain.FulfillmentDineIn,
		Station:   station,
		Status:    status,
		Items:     []domain.LineItem{{Name: "burger", Quantity: 1}},
		CreatedAt: createdAt,
	}
}

func decodeData[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var envelope struct {
		Data T `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
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

func TestGetBoard(t *testing.T) {
	srv, b, _ := newTestServer(t)
	now := time.Now()

	grill := makeOrder("ORD-0001", domain.StationGrill, domain.StatusNew, now.Add(-15*time.Minute))
	fry := makeOrder("ORD-0002", domain.StationFry, domain.StatusCooking, now.Add(-time.Minute))
	b.Dispatch(board.PollSucceeded{Orders: []domain.Order{grill, fry}, At: now})

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/board", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	boardResp := decodeData[BoardResponse](t, resp)
	if len(boardResp.New) != 1 || len(boardResp.Cooking) != 1 {
		t.Fatalf("unexpected lanes: new=%d cooking=%d", len(boardResp.New), len(boardResp.Cooking))
	}
	if boardResp.New[0].Urgency != "critical" {
		t.Errorf("15-minute-old order should be critical, got %s", boardResp.New[0].Urgency)
	}
	if boardResp.Loading {
		t.Error("board should not be loading after a poll")
	}
}

func TestGetBoard_StationParam(t *testing.T) {
	srv, b, _ := newTestServer(t)
	now := time.Now()

	grill := makeOrder("ORD-0001", domain.StationGrill, domain.StatusNew, now)
	fry := makeOrder("ORD-0002", domain.StationFry, domain.StatusNew, now)
	b.Dispatch(board.PollSucceeded{Orders: []domain.Order{grill, fry}, At: now})

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/board?station=fry", "")
	boardResp := decodeData[BoardResponse](t, resp)
	if len(boardResp.New) != 1 || boardResp.New[0].Number != "ORD-0002" {
		t.Error("station param should narrow the board to fry orders")
	}

	// Параметр запроса не меняет фильтр состояния
	if st := b.Snapshot(); st.Filter.Station != domain.StationAll {
		t.Error("query param must not change the state filter")
	}
}

func TestGetBoard_UnknownStation(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/board?station=bakery", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestSetFilters(t *testing.T) {
	srv, b, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/filters", `{"station":"grill","query":"steak"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	st := b.Snapshot()
	if st.Filter.Station != domain.StationGrill || st.Filter.Query != "steak" {
		t.Errorf("filter not applied: %+v", st.Filter)
	}
}

func TestAdvanceOrder(t *testing.T) {
	srv, b, requester := newTestServer(t)
	now := time.Now()

	order := makeOrder("ORD-0001", domain.StationGrill, domain.StatusNew, now)
	b.Dispatch(board.PollSucceeded{Orders: []domain.Order{order}, At: now})

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/orders/"+order.ID.String()+"/advance", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	change := decodeData[StatusChangeResponse](t, resp)
	if change.Status != "cooking" {
		t.Errorf("advance from new should give cooking, got %s", change.Status)
	}

	req, ok := requester.last()
	if !ok {
		t.Fatal("status change was not requested")
	}
	if req.orderID != order.ID || req.status != domain.StatusCooking {
		t.Errorf("unexpected request: %+v", req)
	}
}

func TestRecallOrder_FromNew(t *testing.T) {
	srv, b, requester := newTestServer(t)
	now := time.Now()

	order := makeOrder("ORD-0001", domain.StationGrill, domain.StatusNew, now)
	b.Dispatch(board.PollSucceeded{Orders: []domain.Order{order}, At: now})

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/orders/"+order.ID.String()+"/recall", "")
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("recall from new should be rejected, got %d", resp.StatusCode)
	}
	if _, ok := requester.last(); ok {
		t.Error("rejected recall must not reach the requester")
	}
}

func TestDoneOrder(t *testing.T) {
	srv, b, requester := newTestServer(t)
	now := time.Now()

	order := makeOrder("ORD-0001", domain.StationGrill, domain.StatusCooking, now)
	b.Dispatch(board.PollSucceeded{Orders: []domain.Order{order}, At: now})

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/orders/"+order.ID.String()+"/done", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	req, ok := requester.last()
	if !ok || req.status != domain.StatusDone {
		t.Errorf("done should request the done status, got %+v", req)
	}
}

func TestOrderHandlers_NotFound(t *testing.T) {
	srv, _, _ := newTestServer(t)
	id := uuid.New().String()

	for _, path := range []string{"/advance", "/recall", "/done"} {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/orders/"+id+path, "")
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s: unexpected status %d", path, resp.StatusCode)
		}
	}

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/orders/"+id+"/status", `{"status":"ready"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status: unexpected status %d", resp.StatusCode)
	}
}

func TestSetOrderStatus(t *testing.T) {
	srv, b, requester := newTestServer(t)
	now := time.Now()

	order := makeOrder("ORD-0001", domain.StationGrill, domain.StatusNew, now)
	b.Dispatch(board.PollSucceeded{Orders: []domain.Order{order}, At: now})

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/orders/"+order.ID.String()+"/status", `{"status":"ready"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	req, ok := requester.last()
	if !ok || req.status != domain.StatusReady {
		t.Errorf("unexpected request: %+v", req)
	}
}

func TestSetOrderStatus_UnknownStatus(t *testing.T) {
	srv, b, _ := newTestServer(t)
	now := time.Now()

	order := makeOrder("ORD-0001", domain.StationGrill, domain.StatusNew, now)
	b.Dispatch(board.PollSucceeded{Orders: []domain.Order{order}, At: now})

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/orders/"+order.ID.String()+"/status", `{"status":"burnt"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestDrainAlerts(t *testing.T) {
	srv, b, _ := newTestServer(t)
	now := time.Now()

	b.Dispatch(board.PollSucceeded{Orders: nil, At: now})
	order := makeOrder("ORD-0001", domain.StationGrill, domain.StatusNew, now)
	b.Dispatch(board.PollSucceeded{Orders: []domain.Order{order}, At: now})

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/alerts", "")
	var envelope struct {
		Data  []board.Alert `json:"data"`
		Total int           `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatal(err)
	}
	if envelope.Total != 1 || len(envelope.Data) != 1 {
		t.Fatalf("expected one alert, got %d", len(envelope.Data))
	}
	if envelope.Data[0].Number != "ORD-0001" {
		t.Errorf("unexpected alert: %+v", envelope.Data[0])
	}

	// Повторный запрос — очередь уже пуста
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/alerts", "")
	var second struct {
		Data []board.Alert `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&second); err != nil {
		t.Fatal(err)
	}
	if len(second.Data) != 0 {
		t.Error("second drain should return no alerts")
	}
}

func TestSetAlertsEnabled(t *testing.T) {
	srv, b, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/alerts/enabled", `{"enabled":false}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	if st := b.Snapshot(); st.AlertsEnabled {
		t.Error("alerts should be disabled")
	}
}
