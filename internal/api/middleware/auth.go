package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/pkg/authtoken"
)

const (
	msgMissingToken = "токен не передан"
	msgInvalidToken = "недействительный токен"
)

type identityKey struct{}

// WithIdentity кладет личность клиента в контекст
func WithIdentity(ctx context.Context, identity *authtoken.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity достает личность клиента, положенную Auth
func GetIdentity(ctx context.Context) (*authtoken.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*authtoken.Identity)
	return identity, ok && identity != nil
}

// GetClientID ID аутентифицированного клиента или пустая строка
func GetClientID(ctx context.Context) string {
	identity, ok := GetIdentity(ctx)
	if !ok {
		return ""
	}
	return identity.ClientID
}

// Auth пропускает запрос дальше только с валидным токеном в заголовке "Authorization: <scheme> <token>"
// Отсутствие заголовка, второго сегмента или неуспешная проверка -> 401 до вызова обработчика
func Auth(verifier TokenVerifier, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				logger.Warn("%s %s - missing authorization header", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			parts := strings.Split(header, " ")
			if len(parts) < 2 || parts[1] == "" {
				logger.Warn("%s %s - malformed authorization header", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			identity, err := verifier.Verify(parts[1])
			if err != nil {
				logger.Warn("%s %s - token rejected: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}
