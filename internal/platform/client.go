package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// Client is the single shared HTTP client for the booking platform
// API. It is configured once at startup and never mutated afterwards;
// every screen service talks to the platform through it.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a platform client for the given base URL. The
// token, when non-empty, is sent as a bearer credential on every call.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// MutationResult mirrors the platform's {success, message, data}
// envelope returned by every non-GET mutation.
type MutationResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// File is a binary attachment for multipart submissions
type File struct {
	Field string
	Name  string
	Data  []byte
}

func (c *Client) buildURL(path string, params map[string]string) string {
	u := c.baseURL + path
	if len(params) == 0 {
		return u
	}
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	return u + "?" + q.Encode()
}

func (c *Client) do(ctx context.Context, method, rawURL string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	return resp, nil
}

// apiError reads a non-2xx response body and extracts the structured
// message when the platform supplied one.
func apiError(resp *http.Response) error {
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &envelope); err == nil {
		msg = envelope.Message
		if msg == "" {
			msg = envelope.Error
		}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

func decodeMutation(resp *http.Response) (*MutationResult, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return &MutationResult{Success: true}, nil
	}

	var result MutationResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &result, nil
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body interface{}) (*MutationResult, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	resp, err := c.do(ctx, method, c.buildURL(path, nil), reqBody, "application/json")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp)
	}
	return decodeMutation(resp)
}

// Post creates a resource with a full draft as the body
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*MutationResult, error) {
	return c.sendJSON(ctx, http.MethodPost, path, body)
}

// Put replaces a resource with a full draft as the body
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*MutationResult, error) {
	return c.sendJSON(ctx, http.MethodPut, path, body)
}

// Patch applies a partial update
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*MutationResult, error) {
	return c.sendJSON(ctx, http.MethodPatch, path, body)
}

// Delete removes a resource by identifier
func (c *Client) Delete(ctx context.Context, path string) (*MutationResult, error) {
	return c.sendJSON(ctx, http.MethodDelete, path, nil)
}

// PostMultipart submits form fields plus binary attachments, used by
// resources that carry receipts or images alongside the payload.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, files []File) (*MutationResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("failed to write form field: %w", err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, fmt.Errorf("failed to write form file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, c.buildURL(path, nil), &buf, w.FormDataContentType())
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp)
	}
	return decodeMutation(resp)
}

// Download fetches a backend-rendered file as a raw blob and returns
// the bytes together with the response content type. Callers must
// check the content type: the platform sometimes returns an error
// body with a blob-compatible status code.
func (c *Client) Download(ctx context.Context, path string, params map[string]string) ([]byte, string, error) {
	resp, err := c.do(ctx, http.MethodGet, c.buildURL(path, params), nil, "")
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", apiError(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (c *Client) getBody(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, c.buildURL(path, params), nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// GetList fetches a collection endpoint. Listing responses carry the
// collection under a named field ("flights", "hotels", ...) with
// "data" as the platform's generic fallback; an absent field yields an
// empty slice, never an error. A bare JSON array is accepted as well.
func GetList[T any](ctx context.Context, c *Client, path string, params map[string]string, key string) ([]T, error) {
	body, err := c.getBody(ctx, path, params)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal collection: %w", err)
		}
		return items, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	raw, ok := envelope[key]
	if !ok {
		raw, ok = envelope["data"]
	}
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal collection: %w", err)
	}
	return items, nil
}

// GetOne fetches a single document by path, unwrapping the optional
// "data" envelope used by detail endpoints.
func GetOne[T any](ctx context.Context, c *Client, path string) (T, error) {
	var doc T
	body, err := c.getBody(ctx, path, nil)
	if err != nil {
		return doc, err
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 {
		trimmed := bytes.TrimSpace(envelope.Data)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			if err := json.Unmarshal(trimmed, &doc); err != nil {
				return doc, fmt.Errorf("failed to unmarshal document: %w", err)
			}
			return doc, nil
		}
	}

	if err := json.Unmarshal(body, &doc); err != nil {
		return doc, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return doc, nil
}

// GetRaw fetches a single document as a generic mapping, used by the
// merge-then-replace partial update path.
func (c *Client) GetRaw(ctx context.Context, path string) (map[string]interface{}, error) {
	return GetOne[map[string]interface{}](ctx, c, path)
}
