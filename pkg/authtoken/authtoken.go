package authtoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken возвращается для любого токена, не прошедшего проверку
	// (подпись, срок действия, формат, алгоритм)
	ErrInvalidToken = errors.New("authtoken: invalid token")

	// ErrSign возвращается при ошибке подписи токена
	ErrSign = errors.New("authtoken: failed to sign token")
)

// Claims полезная нагрузка токена: sub = ID клиента
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Identity проверенная личность вызывающего
type Identity struct {
	ClientID string
	Email    string
}

// Issuer выпускает и проверяет HS256 токены с фиксированным сроком жизни
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer создает Issuer с секретом процесса и сроком жизни токена
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue подписывает токен для клиента
func (i *Issuer) Issue(clientID, email string) (string, error) {
	now := i.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSign, err)
	}
	return signed, nil
}

// Verify проверяет подпись и срок действия токена
func (i *Issuer) Verify(raw string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		// защита от подмены алгоритма
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{ClientID: claims.Subject, Email: claims.Email}, nil
}
