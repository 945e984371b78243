package release_expired

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/authtoken"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ReleaseExpired(ctx context.Context) (*models.ReleaseExpiredResponse, error) {
	args := m.Called(ctx)
	if resp, ok := args.Get(0).(*models.ReleaseExpiredResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(svc BookingService) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/automation/release-expired", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), &authtoken.Identity{ClientID: "client-1"}))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &mockService{}
	svc.On("ReleaseExpired", mock.Anything).Return(&models.ReleaseExpiredResponse{Message: "ok", Released: 3}, nil).Once()

	rec := serve(svc)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"ok","released":3}`, rec.Body.String())

	svc.On("ReleaseExpired", mock.Anything).Return(nil, errors.New("db down")).Once()
	assert.Equal(t, http.StatusInternalServerError, serve(svc).Code)
}
