package register

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/auth"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/auth/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*models.AuthResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(svc AuthService, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewHandler(svc, 6, logger.Nop()).Handle(rec, req)
	return rec
}

const validBody = `{"email":"anna@example.com","password":"s3cret!","name":"Анна"}`

func TestHandle_Created(t *testing.T) {
	svc := &mockService{}
	svc.On("Register", mock.Anything, &models.RegisterRequest{Email: "anna@example.com", Password: "s3cret!", Name: "Анна"}).
		Return(&models.AuthResponse{Token: "jwt", Client: &models.ClientResponse{ID: "c-1", Email: "anna@example.com"}}, nil)

	rec := serve(svc, validBody)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "jwt", resp.Token)
	assert.Equal(t, "c-1", resp.Client.ID)
}

func TestHandle_EmailTaken(t *testing.T) {
	svc := &mockService{}
	svc.On("Register", mock.Anything, mock.Anything).Return(nil, auth.ErrEmailTaken)

	assert.Equal(t, http.StatusConflict, serve(svc, validBody).Code)
}

func TestHandle_Internal(t *testing.T) {
	svc := &mockService{}
	svc.On("Register", mock.Anything, mock.Anything).Return(nil, auth.ErrInternal)

	assert.Equal(t, http.StatusInternalServerError, serve(svc, validBody).Code)
}

func TestHandle_Validation(t *testing.T) {
	svc := &mockService{}

	rec := serve(svc, `{"email":"nope","password":"123","name":""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 3)
	assert.Equal(t, "email", resp.Errors[0].Field)
	assert.Equal(t, "password", resp.Errors[1].Field)
	assert.Equal(t, "name", resp.Errors[2].Field)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestHandle_PasswordTooLong(t *testing.T) {
	svc := &mockService{}

	body := `{"email":"anna@example.com","password":"` + strings.Repeat("a", 73) + `","name":"Анна"}`
	rec := serve(svc, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "password", resp.Errors[0].Field)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestHandle_PasswordAt72Bytes(t *testing.T) {
	svc := &mockService{}
	svc.On("Register", mock.Anything, mock.Anything).
		Return(&models.AuthResponse{Token: "jwt", Client: &models.ClientResponse{ID: "c-1"}}, nil)

	body := `{"email":"anna@example.com","password":"` + strings.Repeat("a", 72) + `","name":"Анна"}`

	assert.Equal(t, http.StatusCreated, serve(svc, body).Code)
}
