package service

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/safarhub/backoffice/internal/models"
)

func sampleEntries() []models.LedgerEntry {
	return []models.LedgerEntry{
		{VoucherID: "V1", Date: "2024-01-05", Description: "Payment A", Debit: decimal.NewFromInt(500)},
		{VoucherID: "V2", Date: "2024-01-10", Description: "Refund", Credit: decimal.NewFromInt(200)},
	}
}

func TestTotals(t *testing.T) {
	totals := Totals(sampleEntries())

	assert.True(t, totals.TotalDebit.Equal(decimal.NewFromInt(500)))
	assert.True(t, totals.TotalCredit.Equal(decimal.NewFromInt(200)))
	assert.True(t, totals.ClosingBalance.Equal(decimal.NewFromInt(300)))
}

func TestTotalsIndependentOfOrder(t *testing.T) {
	entries := []models.LedgerEntry{
		{VoucherID: "V1", Debit: decimal.RequireFromString("100.10")},
		{VoucherID: "V2", Credit: decimal.RequireFromString("50.05")},
		{VoucherID: "V3", Debit: decimal.RequireFromString("0.01"), Credit: decimal.RequireFromString("0.02")},
		{VoucherID: "V4", Debit: decimal.RequireFromString("999.99")},
	}
	reversed := []models.LedgerEntry{entries[3], entries[2], entries[1], entries[0]}

	a := Totals(entries)
	b := Totals(reversed)

	assert.True(t, a.TotalDebit.Equal(b.TotalDebit))
	assert.True(t, a.TotalCredit.Equal(b.TotalCredit))
	assert.True(t, a.ClosingBalance.Equal(b.ClosingBalance))
}

func TestTotalsTreatMissingAmountsAsZero(t *testing.T) {
	// Entries decoded from a response where debit/credit are absent
	raw := `[{"voucherId":"V1","date":"2024-01-05","description":"No amounts"},
	         {"voucherId":"V2","debit":250}]`

	var entries []models.LedgerEntry
	assert.NoError(t, json.Unmarshal([]byte(raw), &entries))

	totals := Totals(entries)
	assert.True(t, totals.TotalDebit.Equal(decimal.NewFromInt(250)))
	assert.True(t, totals.TotalCredit.Equal(decimal.Zero))
	assert.True(t, totals.ClosingBalance.Equal(decimal.NewFromInt(250)))
}

func TestTotalsEmptySequence(t *testing.T) {
	totals := Totals(nil)
	assert.True(t, totals.TotalDebit.Equal(decimal.Zero))
	assert.True(t, totals.ClosingBalance.Equal(decimal.Zero))
}

func TestCopyExport(t *testing.T) {
	out := CopyExport(sampleEntries())

	lines := strings.Split(out, "\n")
	assert.Equal(t, "Voucher Id\tDate\tDescription\tDebit\tCredit", lines[0])
	assert.Equal(t, "V1\t2024-01-05\tPayment A\t500.00\t0.00", lines[1])
	assert.Equal(t, "V2\t2024-01-10\tRefund\t0.00\t200.00", lines[2])
	assert.Equal(t, "Total\t\t\t500.00\t200.00", lines[3])
}

func TestDefaultRange(t *testing.T) {
	now := time.Date(2024, time.March, 17, 13, 45, 0, 0, time.UTC)
	from, to := DefaultRange(now)

	assert.Equal(t, "2024-03-01", from)
	assert.Equal(t, "2024-03-17", to)
}
