package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gorm.io/gorm"

	"tradingjournal/src/model"
)

type mockMarketCreator struct {
	err         error
	created     []*model.Market
	calledCount int
}

func (m *mockMarketCreator) CreateAll(ctx context.Context, markets []*model.Market) error {
	m.calledCount++
	m.created = markets
	if m.err == nil {
		for i, market := range markets {
			market.ID = uint(i + 1)
		}
	}
	return m.err
}

type mockMarketLister struct {
	markets []model.Market
	err     error
}

func (m *mockMarketLister) FindAll(ctx context.Context) ([]model.Market, error) {
	return m.markets, m.err
}

type mockMarketDeleter struct {
	err       error
	deletedID uint
}

func (m *mockMarketDeleter) DeleteByID(ctx context.Context, id uint) error {
	m.deletedID = id
	return m.err
}

func TestAddMarketsHandler_Single(t *testing.T) {
	mockRepo := &mockMarketCreator{}
	handler := AddMarketsHandler(mockRepo)

	req := httptest.NewRequest(http.MethodPost, "/add_market", strings.NewReader(`{"name": "Forex"}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if len(mockRepo.created) != 1 || mockRepo.created[0].Name != "Forex" {
		t.Fatalf("unexpected created markets: %+v", mockRepo.created)
	}
	if !strings.Contains(rr.Body.String(), `"market_id":1`) {
		t.Fatalf("expected market_id in response, got %s", rr.Body.String())
	}
}

func TestAddMarketsHandler_Batch(t *testing.T) {
	mockRepo := &mockMarketCreator{}
	handler := AddMarketsHandler(mockRepo)

	req := httptest.NewRequest(http.MethodPost, "/add_market", strings.NewReader(`[{"name": "Forex"}, {"name": "Stocks"}]`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"market_ids":[1,2]`) {
		t.Fatalf("expected market_ids in response, got %s", rr.Body.String())
	}
}

func TestAddMarketsHandler_MissingName(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "single without name",
			body:    `{}`,
			message: "Market 'name' is required",
		},
		{
			name:    "batch item without name",
			body:    `[{"name": "Forex"}, {}]`,
			message: "Each market object must include a 'name' field",
		},
		{
			name:    "empty name",
			body:    `{"name": ""}`,
			message: "Market 'name' is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mockMarketCreator{}
			handler := AddMarketsHandler(mockRepo)

			req := httptest.NewRequest(http.MethodPost, "/add_market", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rr.Code)
			}
			if !strings.Contains(rr.Body.String(), tt.message) {
				t.Fatalf("expected %q, got %s", tt.message, rr.Body.String())
			}
			if mockRepo.calledCount != 0 {
				t.Fatalf("creator must not be called on validation failure")
			}
		})
	}
}

func TestAddMarketsHandler_Duplicate(t *testing.T) {
	mockRepo := &mockMarketCreator{err: gorm.ErrDuplicatedKey}
	handler := AddMarketsHandler(mockRepo)

	req := httptest.NewRequest(http.MethodPost, "/add_market", strings.NewReader(`{"name": "Forex"}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rr.Code)
	}
}

func TestGetMarketsHandler(t *testing.T) {
	markets := []model.Market{
		{ID: 1, Name: "Forex"},
		{ID: 2, Name: "Stocks"},
	}
	handler := GetMarketsHandler(&mockMarketLister{markets: markets})

	req := httptest.NewRequest(http.MethodGet, "/get_markets", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"name":"Forex"`) {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}

func TestDeleteMarketHandler(t *testing.T) {
	t.Run("existing market", func(t *testing.T) {
		mockRepo := &mockMarketDeleter{}
		handler := DeleteMarketHandler(mockRepo)

		req := httptest.NewRequest(http.MethodDelete, "/delete_market?id=3", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}
		if mockRepo.deletedID != 3 {
			t.Fatalf("expected delete of market 3, got %d", mockRepo.deletedID)
		}
	})

	t.Run("missing market", func(t *testing.T) {
		mockRepo := &mockMarketDeleter{err: gorm.ErrRecordNotFound}
		handler := DeleteMarketHandler(mockRepo)

		req := httptest.NewRequest(http.MethodDelete, "/delete_market?id=99", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rr.Code)
		}
	})

	t.Run("missing id parameter", func(t *testing.T) {
		handler := DeleteMarketHandler(&mockMarketDeleter{})

		req := httptest.NewRequest(http.MethodDelete, "/delete_market", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rr.Code)
		}
	})
}
