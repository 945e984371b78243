package send_ai_message

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/chat"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/chat/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/authtoken"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) SendAI(ctx context.Context, req *models.SendMessageRequest) (*models.AIMessageResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*models.AIMessageResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(svc ChatService, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/chat/ai", strings.NewReader(body))
	req = req.WithContext(middleware.WithIdentity(req.Context(), &authtoken.Identity{ClientID: "client-1"}))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	svc := &mockService{}
	svc.On("SendAI", mock.Anything, &models.SendMessageRequest{ClientID: "client-1", Message: "Когда свободно?"}).
		Return(&models.AIMessageResponse{ID: "m-1", Message: "Когда свободно?", AIResponse: "В понедельник", CreatedAt: "2025-03-01T09:00:00Z"}, nil)

	rec := serve(svc, `{"message":"Когда свободно?"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"m-1","message":"Когда свободно?","aiResponse":"В понедельник","createdAt":"2025-03-01T09:00:00Z"}`,
		rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	svc := &mockService{}
	assert.Equal(t, http.StatusBadRequest, serve(svc, `{}`).Code)

	svc.On("SendAI", mock.Anything, mock.Anything).Return(nil, chat.ErrInternal)
	assert.Equal(t, http.StatusInternalServerError, serve(svc, `{"message":"x"}`).Code)
}
