package repo

import "errors"

// Общие ошибки хранилищ.
var (
	// ErrNotFound — заказ не найден.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists — заказ уже существует (конфликт ID).
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidState — операция невозможна: статус вне закрытого набора.
	ErrInvalidState = errors.New("invalid state")
)
