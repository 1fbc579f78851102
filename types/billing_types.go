package types

import "time"

type Tariff struct {
	Key   string `yaml:"key"`
	Title string `yaml:"title"`
	Price int64  `yaml:"price"`
	Limit int    `yaml:"limit"`
}

type Payment struct {
	ID        int64
	UserID    int64
	Tariff    string
	Amount    int64
	CreatedAt time.Time
}
