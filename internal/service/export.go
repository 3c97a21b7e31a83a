package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/safarhub/backoffice/internal/platform"
)

// ExportService downloads backend-rendered export files. The platform
// is known to sometimes answer an export request with an error body
// under a blob-compatible status code, so every download is sniffed
// before it is handed to the caller.
type ExportService struct {
	client *platform.Client
	now    func() time.Time
}

// NewExportService creates an export service
func NewExportService(client *platform.Client) *ExportService {
	return &ExportService{client: client, now: time.Now}
}

// ExportFile is a downloadable export: bytes plus the filename and
// content type to serve them under.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

var exportExtensions = map[string]string{
	"csv":   "csv",
	"excel": "xlsx",
	"pdf":   "pdf",
}

// ValidExportKind reports whether kind names a backend-rendered export
func ValidExportKind(kind string) bool {
	_, ok := exportExtensions[kind]
	return ok
}

// LedgerExport fetches one rendered ledger export scoped by the same
// account/date-range/display-name parameters as the ledger screen.
func (s *ExportService) LedgerExport(ctx context.Context, accountID, kind, displayName, dateFrom, dateTo string) (*ExportFile, error) {
	ext, ok := exportExtensions[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported export kind %q", kind)
	}

	params := map[string]string{
		"dateFrom": dateFrom,
		"dateTo":   dateTo,
		"name":     displayName,
	}
	data, contentType, err := s.client.Download(ctx, "/payment/ledger/"+accountID+"/export/"+kind, params)
	if err != nil {
		return nil, err
	}
	if err := sniffErrorBody(data, contentType); err != nil {
		return nil, err
	}

	subject := displayName
	if subject == "" {
		subject = accountID
	}
	return &ExportFile{
		Filename:    exportFilename(kind, subject, ext, s.now()),
		ContentType: blobContentType(contentType, ext),
		Data:        data,
	}, nil
}

// UsersExport fetches the rendered agency user list (pdf or excel)
func (s *ExportService) UsersExport(ctx context.Context, kind string) (*ExportFile, error) {
	ext, ok := exportExtensions[kind]
	if !ok || kind == "csv" {
		return nil, fmt.Errorf("unsupported export kind %q", kind)
	}

	data, contentType, err := s.client.Download(ctx, "/export/users/"+kind, nil)
	if err != nil {
		return nil, err
	}
	if err := sniffErrorBody(data, contentType); err != nil {
		return nil, err
	}

	return &ExportFile{
		Filename:    exportFilename(kind, "users", ext, s.now()),
		ContentType: blobContentType(contentType, ext),
		Data:        data,
	}, nil
}

// sniffErrorBody detects error payloads disguised as file downloads:
// a JSON envelope or an HTML error page returned with a 2xx status.
// The embedded message is surfaced instead of a corrupt file.
func sniffErrorBody(data []byte, contentType string) error {
	trimmed := bytes.TrimSpace(data)

	if strings.Contains(contentType, "application/json") || (len(trimmed) > 0 && trimmed[0] == '{') {
		var envelope struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err == nil {
			msg := envelope.Message
			if msg == "" {
				msg = envelope.Error
			}
			if msg == "" {
				msg = "Export failed"
			}
			return &platform.APIError{StatusCode: 200, Message: msg}
		}
		// A body labeled JSON is never a valid export file, parseable
		// or not
		if strings.Contains(contentType, "application/json") {
			return &platform.APIError{StatusCode: 200, Message: "Export failed"}
		}
	}

	if strings.Contains(contentType, "text/html") || bytes.HasPrefix(trimmed, []byte("<")) {
		msg := "Export failed"
		if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(trimmed)); err == nil {
			if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
				msg = title
			} else if body := strings.TrimSpace(doc.Find("body").First().Text()); body != "" {
				msg = body
			}
		}
		return &platform.APIError{StatusCode: 200, Message: msg}
	}

	return nil
}

// exportFilename builds "<kind>-<subject>-<timestamp>.<ext>" with the
// subject lowercased and spaces collapsed to dashes
func exportFilename(kind, subject, ext string, now time.Time) string {
	slug := strings.ToLower(strings.TrimSpace(subject))
	slug = strings.Join(strings.Fields(slug), "-")
	return fmt.Sprintf("%s-%s-%s.%s", kind, slug, now.Format("20060102-150405"), ext)
}

func blobContentType(contentType, ext string) string {
	if contentType != "" {
		return contentType
	}
	switch ext {
	case "csv":
		return "text/csv"
	case "xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		return "application/pdf"
	}
	return "application/octet-stream"
}
