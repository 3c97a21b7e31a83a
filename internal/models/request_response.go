package models

// Request models
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type EmailExportRequest struct {
	To       string `json:"to" binding:"required,email"`
	Kind     string `json:"kind" binding:"required,oneof=csv excel pdf"`
	Name     string `json:"name"`
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
}

// Response models
type AuthResponse struct {
	Status    string `json:"status"`
	UserID    string `json:"userId,omitempty"`
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	Token     string `json:"token,omitempty"`
	ExpiresIn int    `json:"expiresIn,omitempty"`
}

type LedgerResponse struct {
	Status         string        `json:"status"`
	AccountID      string        `json:"accountId"`
	DateFrom       string        `json:"dateFrom"`
	DateTo         string        `json:"dateTo"`
	Entries        []LedgerEntry `json:"entries"`
	TotalDebit     string        `json:"totalDebit"`
	TotalCredit    string        `json:"totalCredit"`
	ClosingBalance string        `json:"closingBalance"`
}

type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type AuditResponse struct {
	Status string       `json:"status"`
	Events []AuditEvent `json:"events"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
