package models

import "time"

// TrialNotification — сообщение в очереди уведомлений о том,
// что пробный период пользователя заканчивается сегодня.
type TrialNotification struct {
	UserID       int       `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	TrialEndDate time.Time `json:"trial_end_date"`
}
