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

type mockSetupCreator struct {
	err         error
	created     []*model.TradeSetup
	calledCount int
}

func (m *mockSetupCreator) CreateAll(ctx context.Context, setups []*model.TradeSetup) error {
	m.calledCount++
	m.created = setups
	if m.err == nil {
		for i, setup := range setups {
			setup.ID = uint(i + 1)
		}
	}
	return m.err
}

type mockSetupDeleter struct {
	err       error
	deletedID uint
}

func (m *mockSetupDeleter) DeleteByID(ctx context.Context, id uint) error {
	m.deletedID = id
	return m.err
}

func TestAddSetupsHandler_Single(t *testing.T) {
	mockRepo := &mockSetupCreator{}
	handler := AddSetupsHandler(mockRepo)

	body := `{"name": "Range Breakout", "description": "Entry on breakout of a consolidation range"}`
	req := httptest.NewRequest(http.MethodPost, "/add_setup", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if len(mockRepo.created) != 1 || mockRepo.created[0].Name != "Range Breakout" {
		t.Fatalf("unexpected created setups: %+v", mockRepo.created)
	}
	if !strings.Contains(rr.Body.String(), `"setup_id":1`) {
		t.Fatalf("expected setup_id in response, got %s", rr.Body.String())
	}
}

func TestAddSetupsHandler_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "missing description",
			body:    `{"name": "Range Breakout"}`,
			message: "Both 'name' and 'description' are required",
		},
		{
			name:    "missing name",
			body:    `{"description": "some description"}`,
			message: "Both 'name' and 'description' are required",
		},
		{
			name:    "batch item incomplete",
			body:    `[{"name": "A", "description": "a"}, {"name": "B"}]`,
			message: "Each setup object must include 'name' and 'description' fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mockSetupCreator{}
			handler := AddSetupsHandler(mockRepo)

			req := httptest.NewRequest(http.MethodPost, "/add_setup", strings.NewReader(tt.body))
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

func TestAddSetupsHandler_Duplicate(t *testing.T) {
	mockRepo := &mockSetupCreator{err: gorm.ErrDuplicatedKey}
	handler := AddSetupsHandler(mockRepo)

	body := `{"name": "Range Breakout", "description": "dup"}`
	req := httptest.NewRequest(http.MethodPost, "/add_setup", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rr.Code)
	}
}

func TestDeleteSetupHandler_NotFound(t *testing.T) {
	handler := DeleteSetupHandler(&mockSetupDeleter{err: gorm.ErrRecordNotFound})

	req := httptest.NewRequest(http.MethodDelete, "/delete_setup?id=42", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}
