package passwords

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrHash возвращается при ошибке хеширования пароля
var ErrHash = errors.New("passwords: failed to hash password")

// ErrTooLong пароль длиннее 72 байт, которые учитывает bcrypt
var ErrTooLong = errors.New("passwords: password exceeds 72 bytes")

// Hasher хеширует и сверяет пароли через bcrypt
type Hasher struct {
	cost int
}

// NewHasher создает Hasher; cost вне допустимого диапазона bcrypt заменяется на bcrypt.DefaultCost
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrTooLong
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHash, err)
	}
	return string(b), nil
}

// Check сверяет пароль с хешем
func (h *Hasher) Check(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
