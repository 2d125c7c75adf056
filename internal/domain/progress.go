package domain

import "time"

// ImportStatus - состояние конечного автомата импорта страны
type ImportStatus string

const (
	ImportStatusPending    ImportStatus = "pending"
	ImportStatusInProgress ImportStatus = "in_progress"
	ImportStatusCompleted  ImportStatus = "completed"
	ImportStatusFailed     ImportStatus = "failed"
)

// ImportProgress - прогресс импорта по стране, одна строка на country_code.
// Инварианты: status=completed => CompletedAt задан; status=failed => LastError задан.
type ImportProgress struct {
	CountryCode       string       `json:"country_code" db:"country_code"`
	CurrentAdminLevel int          `json:"current_admin_level" db:"current_admin_level"`
	Status            ImportStatus `json:"status" db:"status"`
	RelationsFetched  int          `json:"relations_fetched" db:"relations_fetched"`
	Errors            int          `json:"errors" db:"errors"`
	StartedAt         time.Time    `json:"started_at" db:"started_at"`
	CompletedAt       *time.Time   `json:"completed_at,omitempty" db:"completed_at"`
	LastError         *string      `json:"last_error,omitempty" db:"last_error"`
}
