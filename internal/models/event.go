// Package models содержит доменные структуры календарного события
// и связи "событие — участник", а также вспомогательные типы
// для приёма данных из JSON-запросов.
package models

import "time"

// Event представляет собой календарное событие.
// Даты хранятся в time.Time, участники — отдельной связью many-to-many.
type Event struct {
	ID            int       // Уникальный идентификатор события
	Title         string    // Название события
	StartDatetime time.Time // Начало события
	EndDatetime   time.Time // Окончание события
}

// Attendee — участник события: идентификатор и отображаемое имя.
type Attendee struct {
	ID   int    `json:"id"`   // Идентификатор пользователя
	Name string `json:"name"` // Имя пользователя
}

// EventWithAttendees — событие вместе с разрешённым списком участников.
// У события без участников Attendees — пустой срез, не nil-ошибка.
type EventWithAttendees struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Start     time.Time  `json:"start"`
	End       time.Time  `json:"end"`
	Attendees []Attendee `json:"attendees"`
}

// DummyEvent используется для приёма данных события из JSON-запроса,
// прежде чем конвертировать их в Event. Даты приходят строками в RFC3339,
// чтобы их можно было валидировать и парсить вручную.
type DummyEvent struct {
	Title     string `json:"title" validate:"required"`
	Start     string `json:"start" validate:"required"` // Начало в формате RFC3339
	End       string `json:"end" validate:"required"`   // Окончание в формате RFC3339
	Attendees []int  `json:"attendees" validate:"required,min=1,dive,gt=0"`
}

// DummyEditEvent используется для приёма данных редактирования события.
// В отличие от создания, список участников может быть пустым:
// редактирование полностью заменяет состав участников.
type DummyEditEvent struct {
	Title     string `json:"title" validate:"required"`
	Start     string `json:"start" validate:"required"` // Начало в формате RFC3339
	End       string `json:"end" validate:"required"`   // Окончание в формате RFC3339
	Attendees []int  `json:"attendees" validate:"omitempty,dive,gt=0"`
}
