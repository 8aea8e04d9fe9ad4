package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/denizaltun/quickpos-backend/internal/sales"
)

type fixedLedger struct {
	records []sales.SaleRecord
}

func (f *fixedLedger) Append(ctx context.Context, record sales.SaleRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fixedLedger) List(ctx context.Context, filter sales.ListFilter) []sales.SaleRecord {
	return f.records
}

func saleAt(t *testing.T, stamp, total string) sales.SaleRecord {
	t.Helper()
	at, err := time.Parse(sales.DateLayout, stamp)
	require.NoError(t, err)
	return sales.SaleRecord{Date: at, Products: []string{"x(1)"}, Total: decimal.RequireFromString(total)}
}

func TestSummarize(t *testing.T) {
	records := []sales.SaleRecord{
		saleAt(t, "2026-08-29 09:15:00", "10.00"),
		saleAt(t, "2026-08-29 09:45:00", "20.00"),
		saleAt(t, "2026-08-30 14:00:00", "15.00"),
	}

	summary := Summarize(records)

	require.Equal(t, 3, summary.Count)
	require.True(t, summary.Sum.Equal(decimal.RequireFromString("45.00")), "sum=%s", summary.Sum)
	require.True(t, summary.Mean.Equal(decimal.RequireFromString("15.00")), "mean=%s", summary.Mean)

	require.Len(t, summary.PerDay, 2)
	require.Equal(t, "2026-08-29", summary.PerDay[0].Day)
	require.True(t, summary.PerDay[0].Total.Equal(decimal.RequireFromString("30.00")))
	require.Equal(t, "2026-08-30", summary.PerDay[1].Day)
	require.True(t, summary.PerDay[1].Total.Equal(decimal.RequireFromString("15.00")))

	require.Len(t, summary.PerHour, 2)
	require.Equal(t, 9, summary.PerHour[0].Hour)
	require.True(t, summary.PerHour[0].Total.Equal(decimal.RequireFromString("30.00")))
	require.Equal(t, 14, summary.PerHour[1].Hour)
}

func TestSummarizeEmptyLedger(t *testing.T) {
	summary := Summarize(nil)

	require.Equal(t, 0, summary.Count)
	require.True(t, summary.Sum.IsZero())
	require.True(t, summary.Mean.IsZero())
	require.Empty(t, summary.PerDay)
	require.Empty(t, summary.PerHour)
}

func TestSummarizeMeanRounding(t *testing.T) {
	records := []sales.SaleRecord{
		saleAt(t, "2026-08-29 09:00:00", "10.00"),
		saleAt(t, "2026-08-29 10:00:00", "10.00"),
		saleAt(t, "2026-08-29 11:00:00", "10.01"),
	}

	summary := Summarize(records)
	require.True(t, summary.Mean.Equal(decimal.RequireFromString("10.00")), "mean=%s", summary.Mean)
}

func TestSalesSummaryService(t *testing.T) {
	ledger := &fixedLedger{records: []sales.SaleRecord{
		saleAt(t, "2026-08-29 09:15:00", "10.00"),
	}}
	svc, err := NewService(ledger)
	require.NoError(t, err)

	records, summary := svc.SalesSummary(context.Background(), sales.ListFilter{})
	require.Len(t, records, 1)
	require.Equal(t, 1, summary.Count)
}
