package provider

import (
	"time"

	"github.com/shopspring/decimal"
)

var bytesPerGigabyte = decimal.NewFromInt(1_000_000_000)

// Model offered by a backend.
type Model struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}

// SizeGB formats the size in gigabytes with two decimals.
func (m Model) SizeGB() string {
	return decimal.NewFromInt(m.Size).Div(bytesPerGigabyte).StringFixed(2)
}

func fixedModels(names ...string) []Model {
	models := make([]Model, 0, len(names))
	for _, name := range names {
		models = append(models, Model{Name: name})
	}
	return models
}
