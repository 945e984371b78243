package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// SQLSTATE коды PostgreSQL, которые репозитории переводят в доменные ошибки
const (
	UniqueViolation      = "23505"
	ExclusionViolation   = "23P01"
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
)

// Code возвращает SQLSTATE из цепочки ошибок или пустую строку
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return Code(err) == UniqueViolation
}

// IsConflict конфликт параллельной записи: нарушение exclusion-ограничения,
// ошибка сериализации или взаимоблокировка
func IsConflict(err error) bool {
	switch Code(err) {
	case ExclusionViolation, SerializationFailure, DeadlockDetected:
		return true
	}
	return false
}
