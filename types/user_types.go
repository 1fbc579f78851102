package types

import "time"

type User struct {
	UserID       int64
	IsPro        bool
	RequestsUsed int
	RequestLimit int
	Tariff       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type HistoryEntry struct {
	ID        int64
	UserID    int64
	Content   string
	CreatedAt time.Time
}

type LedgerStore interface {
	EnsureUser(userID int64) (*User, error)
	GetUsage(userID int64) (used, limit int, err error)

	TryConsume(userID int64) (bool, error)
	RefundRequest(userID int64) error

	ApplyTariff(userID int64, tariff Tariff) error

	SaveGeneration(userID int64, content string) error
	RecentHistory(userID int64, limit int) ([]HistoryEntry, error)

	CountUsers() (int64, error)
	CountGenerations() (int64, error)
	SumPayments() (int64, error)
}
