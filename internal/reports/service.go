package reports

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/denizaltun/quickpos-backend/internal/sales"
	pkgerrors "github.com/denizaltun/quickpos-backend/pkg/errors"
)

// DailyTotal is the summed sale total for one calendar day.
type DailyTotal struct {
	Day   string          `json:"day"`
	Total decimal.Decimal `json:"total"`
}

// HourlyTotal is the summed sale total for one hour of day across the
// whole range.
type HourlyTotal struct {
	Hour  int             `json:"hour"`
	Total decimal.Decimal `json:"total"`
}

// Summary aggregates a slice of the ledger. Everything here is derived
// on demand; nothing is stored.
type Summary struct {
	Count   int             `json:"count"`
	Sum     decimal.Decimal `json:"sum"`
	Mean    decimal.Decimal `json:"mean"`
	PerDay  []DailyTotal    `json:"per_day"`
	PerHour []HourlyTotal   `json:"per_hour"`
}

// Service computes derived views over the sales ledger.
type Service interface {
	SalesSummary(ctx context.Context, filter sales.ListFilter) ([]sales.SaleRecord, Summary)
}

type service struct {
	ledger sales.Repository
}

// NewService wires a reports service over the ledger.
func NewService(ledger sales.Repository) (Service, error) {
	if ledger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "ledger repository required")
	}
	return &service{ledger: ledger}, nil
}

func (s *service) SalesSummary(ctx context.Context, filter sales.ListFilter) ([]sales.SaleRecord, Summary) {
	records := s.ledger.List(ctx, filter)
	return records, Summarize(records)
}

// Summarize folds ledger records into count, sum, mean, and day/hour
// buckets.
func Summarize(records []sales.SaleRecord) Summary {
	summary := Summary{
		Count:   len(records),
		Sum:     decimal.Zero,
		Mean:    decimal.Zero,
		PerDay:  []DailyTotal{},
		PerHour: []HourlyTotal{},
	}

	days := map[string]decimal.Decimal{}
	hours := map[int]decimal.Decimal{}
	for _, record := range records {
		summary.Sum = summary.Sum.Add(record.Total)

		day := record.Date.Format("2006-01-02")
		days[day] = days[day].Add(record.Total)

		hour := record.Date.Hour()
		hours[hour] = hours[hour].Add(record.Total)
	}

	if summary.Count > 0 {
		summary.Mean = summary.Sum.DivRound(decimal.NewFromInt(int64(summary.Count)), 2)
	}

	for day, total := range days {
		summary.PerDay = append(summary.PerDay, DailyTotal{Day: day, Total: total})
	}
	sort.Slice(summary.PerDay, func(i, j int) bool {
		return summary.PerDay[i].Day < summary.PerDay[j].Day
	})

	for hour, total := range hours {
		summary.PerHour = append(summary.PerHour, HourlyTotal{Hour: hour, Total: total})
	}
	sort.Slice(summary.PerHour, func(i, j int) bool {
		return summary.PerHour[i].Hour < summary.PerHour[j].Hour
	})

	return summary
}
