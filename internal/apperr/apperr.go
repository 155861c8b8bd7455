// Package apperr определяет доменные ошибки-маркеры, по которым
// HTTP-слой выбирает статус ответа. Сервисы оборачивают их через
// fmt.Errorf("...: %w", ...), обработчики сравнивают errors.Is.
package apperr

import "errors"

var (
	// ErrNotFound — запрошенная сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrConflict — нарушение уникальности (дубликат email или username).
	ErrConflict = errors.New("already exists")
	// ErrValidation — некорректные или неполные входные данные.
	ErrValidation = errors.New("invalid input")
	// ErrDependency — сбой внешнего сервиса (почта, платёжный провайдер).
	ErrDependency = errors.New("dependency failure")
)
