package models

import (
	"github.com/shopspring/decimal"
)

// LedgerEntry is a single dated debit-or-credit line in an agency's
// transaction history. A missing debit or credit unmarshals to the
// decimal zero value, so it contributes nothing to the totals.
type LedgerEntry struct {
	VoucherID   string          `json:"voucherId"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// LedgerTotals is derived from an entry sequence, never stored.
// ClosingBalance is total debits minus total credits.
type LedgerTotals struct {
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}
