package tests

import (
	"encoding/json"
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/safarhub/backoffice/internal/api/testutils"
	"github.com/safarhub/backoffice/internal/models"
)

const ledgerFixture = `{"entries":[
	{"voucherId":"V1","date":"2024-01-05","description":"Payment A","debit":500},
	{"voucherId":"V2","date":"2024-01-10","description":"Refund","credit":200}
]}`

func TestGetLedgerTotals(t *testing.T) {
	tc := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(tc)

	tc.Upstream.SetHandler(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment/ledger/AG-7", r.URL.Path)
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("dateFrom"))
		assert.Equal(t, "2024-01-31", r.URL.Query().Get("dateTo"))
		w.Write([]byte(ledgerFixture))
	})

	w := testutils.PerformRequest(tc.Router, "GET",
		"/api/payment/ledger/AG-7?dateFrom=2024-01-01&dateTo=2024-01-31", nil,
		testutils.AuthHeaders(tc.TestUserJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.LedgerResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "AG-7", resp.AccountID)
	assert.Len(t, resp.Entries, 2)
	assert.Equal(t, "500.00", resp.TotalDebit)
	assert.Equal(t, "200.00", resp.TotalCredit)
	assert.Equal(t, "300.00", resp.ClosingBalance)
}

func TestGetLedgerDefaultsDateRange(t *testing.T) {
	tc := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(tc)

	var from, to string
	tc.Upstream.SetHandler(func(w http.ResponseWriter, r *http.Request) {
		from = r.URL.Query().Get("dateFrom")
		to = r.URL.Query().Get("dateTo")
		w.Write([]byte(`{"entries":[]}`))
	})

	w := testutils.PerformRequest(tc.Router, "GET", "/api/payment/ledger/AG-7", nil,
		testutils.AuthHeaders(tc.TestUserJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	// First of the current month through today
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-01$`), from)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), to)
}

func TestGetLedgerUpstreamFailureShowsEmptyLedger(t *testing.T) {
	tc := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(tc)

	tc.Upstream.SetHandler(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	w := testutils.PerformRequest(tc.Router, "GET", "/api/payment/ledger/AG-7", nil,
		testutils.AuthHeaders(tc.TestUserJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.LedgerResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Entries)
	assert.Equal(t, "0.00", resp.TotalDebit)
	assert.Equal(t, "0.00", resp.ClosingBalance)
}

func TestLedgerCopyExport(t *testing.T) {
	tc := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(tc)

	tc.Upstream.SetHandler(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ledgerFixture))
	})

	w := testutils.PerformRequest(tc.Router, "GET",
		"/api/payment/ledger/AG-7/export/copy?dateFrom=2024-01-01&dateTo=2024-01-31", nil,
		testutils.AuthHeaders(tc.TestUserJWT))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/tab-separated-values")

	body := w.Body.String()
	assert.Contains(t, body, "Voucher Id\tDate\tDescription\tDebit\tCredit")
	assert.Contains(t, body, "V1\t2024-01-05\tPayment A\t500.00\t0.00")
	assert.Contains(t, body, "Total\t\t\t500.00\t200.00")
}

func TestLedgerFileExport(t *testing.T) {
	tc := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(tc)

	tc.Upstream.SetHandler(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment/ledger/AG-7/export/csv", r.URL.Path)
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("Voucher Id,Date\nV1,2024-01-05\n"))
	})

	w := testutils.PerformRequest(tc.Router, "GET",
		"/api/payment/ledger/AG-7/export/csv?name=Al+Noor+Travels", nil,
		testutils.AuthHeaders(tc.TestUserJWT))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="csv-al-noor-travels-`)
	assert.Contains(t, w.Body.String(), "V1")
}

func TestLedgerExportBlobCarriesErrorBody(t *testing.T) {
	tc := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(tc)

	tc.Upstream.SetHandler(func(w http.ResponseWriter, r *http.Request) {
		// Error JSON disguised as a successful blob download
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"message":"Ledger is empty for this range"}`))
	})

	w := testutils.PerformRequest(tc.Router, "GET", "/api/payment/ledger/AG-7/export/pdf", nil,
		testutils.AuthHeaders(tc.TestUserJWT))
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "UPSTREAM_ERROR", resp.Code)
	assert.Equal(t, "Ledger is empty for this range", resp.Message)
}

func TestLedgerExportUnsupportedKind(t *testing.T) {
	tc := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(tc)

	w := testutils.PerformRequest(tc.Router, "GET", "/api/payment/ledger/AG-7/export/docx", nil,
		testutils.AuthHeaders(tc.TestUserJWT))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, tc.Upstream.RequestCount())
}

func TestUsersExportEndpoint(t *testing.T) {
	tc := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(tc)

	tc.Upstream.SetHandler(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/export/users/excel", r.URL.Path)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Write([]byte("PK"))
	})

	w := testutils.PerformRequest(tc.Router, "GET", "/api/export/users/excel", nil,
		testutils.AuthHeaders(tc.TestUserJWT))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="excel-users-`)
}
