package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/safarhub/backoffice/internal/models"
	"github.com/safarhub/backoffice/internal/platform"
	"github.com/safarhub/backoffice/internal/utils"
)

// LedgerService serves the agency ledger screen: a date-ranged list of
// debit/credit entries for one account, with totals derived from the
// entry sequence on every request.
type LedgerService struct {
	client   *platform.Client
	notifier utils.Notifier
}

// NewLedgerService creates a ledger service
func NewLedgerService(client *platform.Client, notifier utils.Notifier) *LedgerService {
	return &LedgerService{client: client, notifier: notifier}
}

// DefaultRange returns the default ledger window: first day of the
// current month through today, both inclusive.
func DefaultRange(now time.Time) (string, string) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first.Format("2006-01-02"), now.Format("2006-01-02")
}

// Entries fetches the entry sequence for one account and date range.
// On failure the ledger renders a valid empty table rather than an
// error state, so this returns an empty sequence and notifies.
func (s *LedgerService) Entries(ctx context.Context, accountID, dateFrom, dateTo string) []models.LedgerEntry {
	params := map[string]string{
		"dateFrom": dateFrom,
		"dateTo":   dateTo,
	}
	entries, err := platform.GetList[models.LedgerEntry](ctx, s.client, "/payment/ledger/"+accountID, params, "entries")
	if err != nil {
		s.notifier.Error(failureMessage(err, "Failed to load ledger"))
		return []models.LedgerEntry{}
	}
	return entries
}

// Totals recomputes debit/credit sums and the closing balance from
// scratch over the full entry sequence. Entries are summed without
// filtering by sign; zero-valued (absent) amounts contribute nothing.
func Totals(entries []models.LedgerEntry) models.LedgerTotals {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, e := range entries {
		totalDebit = totalDebit.Add(e.Debit)
		totalCredit = totalCredit.Add(e.Credit)
	}
	return models.LedgerTotals{
		TotalDebit:     totalDebit,
		TotalCredit:    totalCredit,
		ClosingBalance: totalDebit.Sub(totalCredit),
	}
}

// CopyExport serializes the visible rows plus header and totals as
// tab-separated text, entirely locally. Amounts are formatted with two
// decimal places.
func CopyExport(entries []models.LedgerEntry) string {
	var b strings.Builder
	b.WriteString("Voucher Id\tDate\tDescription\tDebit\tCredit\n")
	for _, e := range entries {
		b.WriteString(e.VoucherID)
		b.WriteByte('\t')
		b.WriteString(e.Date)
		b.WriteByte('\t')
		b.WriteString(e.Description)
		b.WriteByte('\t')
		b.WriteString(e.Debit.StringFixed(2))
		b.WriteByte('\t')
		b.WriteString(e.Credit.StringFixed(2))
		b.WriteByte('\n')
	}
	totals := Totals(entries)
	b.WriteString("Total\t\t\t")
	b.WriteString(totals.TotalDebit.StringFixed(2))
	b.WriteByte('\t')
	b.WriteString(totals.TotalCredit.StringFixed(2))
	return b.String()
}
