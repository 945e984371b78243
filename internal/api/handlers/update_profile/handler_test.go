package update_profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/profile"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/profile/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/authtoken"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Update(ctx context.Context, req *models.UpdateProfileRequest) (*models.ProfileResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*models.ProfileResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(svc ProfileService, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/profile/me", strings.NewReader(body))
	req = req.WithContext(middleware.WithIdentity(req.Context(), &authtoken.Identity{ClientID: "client-1"}))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle_PassesRawAvailability(t *testing.T) {
	svc := &mockService{}
	svc.On("Update", mock.Anything, mock.MatchedBy(func(req *models.UpdateProfileRequest) bool {
		return req.ClientID == "client-1" && string(req.Availability) == `{"monday":["09:00"]}`
	})).Return(&models.ProfileResponse{ID: "client-1"}, nil)

	rec := serve(svc, `{"availability":{"monday":["09:00"]}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "nothing", err: profile.ErrNothingToUpdate, wantStatus: http.StatusBadRequest},
		{name: "availability", err: profile.ErrInvalidAvailability, wantStatus: http.StatusBadRequest},
		{name: "not found", err: profile.ErrProfileNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", err: profile.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Update", mock.Anything, mock.Anything).Return(nil, tt.err)

			assert.Equal(t, tt.wantStatus, serve(svc, `{}`).Code)
		})
	}
}

func TestModels_AbsentAvailabilityIsNil(t *testing.T) {
	var req UpdateProfileRequest
	assert.NoError(t, json.Unmarshal([]byte(`{"name":"Анна"}`), &req))
	assert.Nil(t, req.ToServiceRequest("client-1").Availability)
}
