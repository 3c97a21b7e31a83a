package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/safarhub/backoffice/internal/models"
	"github.com/safarhub/backoffice/internal/service"
)

func (h *Handler) getLedger(c *gin.Context) {
	accountID := c.Param("id")
	dateFrom, dateTo := ledgerRange(c)

	entries := h.ledger.Entries(c.Request.Context(), accountID, dateFrom, dateTo)
	totals := service.Totals(entries)

	c.JSON(http.StatusOK, models.LedgerResponse{
		Status:         "success",
		AccountID:      accountID,
		DateFrom:       dateFrom,
		DateTo:         dateTo,
		Entries:        entries,
		TotalDebit:     totals.TotalDebit.StringFixed(2),
		TotalCredit:    totals.TotalCredit.StringFixed(2),
		ClosingBalance: totals.ClosingBalance.StringFixed(2),
	})
}

func (h *Handler) exportLedger(c *gin.Context) {
	accountID := c.Param("id")
	kind := c.Param("kind")
	dateFrom, dateTo := ledgerRange(c)
	displayName := c.Query("name")

	// The copy export is assembled locally from the visible rows; no
	// upstream render is involved.
	if kind == "copy" {
		entries := h.ledger.Entries(c.Request.Context(), accountID, dateFrom, dateTo)
		c.Data(http.StatusOK, "text/tab-separated-values; charset=utf-8", []byte(service.CopyExport(entries)))
		return
	}

	if !service.ValidExportKind(kind) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "INVALID_REQUEST",
			Message: "Unsupported export kind",
		})
		return
	}

	file, err := h.exports.LedgerExport(c.Request.Context(), accountID, kind, displayName, dateFrom, dateTo)
	if err != nil {
		respondError(c, err, "Failed to export ledger")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func (h *Handler) emailLedger(c *gin.Context) {
	accountID := c.Param("id")

	var req models.EmailExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		})
		return
	}

	dateFrom, dateTo := req.DateFrom, req.DateTo
	if dateFrom == "" || dateTo == "" {
		dateFrom, dateTo = service.DefaultRange(time.Now())
	}

	file, err := h.exports.LedgerExport(c.Request.Context(), accountID, req.Kind, req.Name, dateFrom, dateTo)
	if err != nil {
		respondError(c, err, "Failed to export ledger")
		return
	}

	subject := "Ledger statement " + dateFrom + " to " + dateTo
	body := "Attached is the ledger statement for " + dateFrom + " to " + dateTo + "."
	if err := h.mailer.SendExport(req.To, subject, body, file); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:  "error",
			Code:    "MAIL_ERROR",
			Message: "Failed to send export email",
		})
		return
	}

	h.audit.Record(c.Request.Context(), actor(c), "email-export", "ledger", accountID, req)
	c.JSON(http.StatusOK, models.MessageResponse{Status: "success", Message: "Export sent to " + req.To})
}

func (h *Handler) exportUsers(c *gin.Context) {
	kind := c.Param("kind")
	file, err := h.exports.UsersExport(c.Request.Context(), kind)
	if err != nil {
		respondError(c, err, "Failed to export users")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// ledgerRange reads the date window from the query, defaulting to the
// first day of the current month through today
func ledgerRange(c *gin.Context) (string, string) {
	dateFrom := c.Query("dateFrom")
	dateTo := c.Query("dateTo")
	if dateFrom == "" || dateTo == "" {
		defFrom, defTo := service.DefaultRange(time.Now())
		if dateFrom == "" {
			dateFrom = defFrom
		}
		if dateTo == "" {
			dateTo = defTo
		}
	}
	return dateFrom, dateTo
}
