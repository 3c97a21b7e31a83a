package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/safarhub/backoffice/internal/platform"
	"github.com/safarhub/backoffice/internal/utils"
)

// ErrValidation marks drafts rejected before any network call was made
var ErrValidation = errors.New("validation failed")

// ResourceScreen is the generic list/form screen over one platform
// resource. It owns the loaded collection for its lifetime, the way a
// mounted list view owns its rows: fetches replace the collection
// wholesale, deletes trigger a refetch rather than a local splice, and
// searching is a pure filter over what is already loaded.
type ResourceScreen[T any] struct {
	client   *platform.Client
	notifier utils.Notifier

	label        string // display name, e.g. "Flight"
	path         string // platform path, e.g. "/flights"
	listKey      string // collection field in listing responses
	searchFields func(T) []string
	validate     func(T) error
	normalize    func(T) T // optional pre-submit normalization

	mu         sync.Mutex
	collection []T
	loading    bool
	fetchSeq   int64
	appliedSeq int64
}

// NewResourceScreen wires a screen for one resource type
func NewResourceScreen[T any](
	client *platform.Client,
	notifier utils.Notifier,
	label, path, listKey string,
	searchFields func(T) []string,
	validate func(T) error,
	normalize func(T) T,
) *ResourceScreen[T] {
	return &ResourceScreen[T]{
		client:       client,
		notifier:     notifier,
		label:        label,
		path:         path,
		listKey:      listKey,
		searchFields: searchFields,
		validate:     validate,
		normalize:    normalize,
	}
}

// FilterByTerm returns the subsequence of items where at least one
// designated display field contains term, case-insensitively. The
// empty term returns the input unchanged; original order is preserved
// and the input is never mutated.
func FilterByTerm[T any](items []T, term string, fields func(T) []string) []T {
	if term == "" || fields == nil {
		return items
	}
	needle := strings.ToLower(term)
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), needle) {
				filtered = append(filtered, item)
				break
			}
		}
	}
	return filtered
}

// Collection returns a snapshot of the currently loaded collection
func (s *ResourceScreen[T]) Collection() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.collection))
	copy(out, s.collection)
	return out
}

// Loading reports whether a fetch is in flight
func (s *ResourceScreen[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// List fetches the collection scoped by filters, replaces the loaded
// collection, and returns it narrowed by the search term. Responses of
// fetches that were superseded by a newer one are discarded, so the
// latest issued request always wins. A failed fetch preserves the
// previously loaded collection and surfaces a notification.
func (s *ResourceScreen[T]) List(ctx context.Context, filters map[string]string, term string) ([]T, error) {
	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	s.loading = true
	s.mu.Unlock()

	fetched, err := platform.GetList[T](ctx, s.client, s.path, filters, s.listKey)

	s.mu.Lock()
	if seq == s.fetchSeq {
		s.loading = false
	}
	if err != nil {
		prior := make([]T, len(s.collection))
		copy(prior, s.collection)
		s.mu.Unlock()
		s.notifier.Error(failureMessage(err, "Failed to load "+strings.ToLower(s.label)+" list"))
		return prior, err
	}
	if seq > s.appliedSeq {
		s.collection = fetched
		s.appliedSeq = seq
	}
	applied := make([]T, len(s.collection))
	copy(applied, s.collection)
	s.mu.Unlock()

	return FilterByTerm(applied, term, s.searchFields), nil
}

// Get fetches one document fresh by identifier, used to seed the edit
// form with the latest data rather than the possibly stale row.
func (s *ResourceScreen[T]) Get(ctx context.Context, id string) (T, error) {
	doc, err := platform.GetOne[T](ctx, s.client, s.path+"/"+id)
	if err != nil {
		s.notifier.Error(failureMessage(err, "Failed to load "+strings.ToLower(s.label)))
		return doc, err
	}
	return doc, nil
}

// Create validates the draft and POSTs it in full. A validation
// failure aborts before any network call is made.
func (s *ResourceScreen[T]) Create(ctx context.Context, draft T) error {
	return s.submit(ctx, draft, func(d T) (*platform.MutationResult, error) {
		return s.client.Post(ctx, s.path, d)
	}, s.label+" created successfully", "Failed to save "+strings.ToLower(s.label))
}

// Update validates the draft and PUTs it in full against the id
func (s *ResourceScreen[T]) Update(ctx context.Context, id string, draft T) error {
	return s.submit(ctx, draft, func(d T) (*platform.MutationResult, error) {
		return s.client.Put(ctx, s.path+"/"+id, d)
	}, s.label+" updated successfully", "Failed to save "+strings.ToLower(s.label))
}

func (s *ResourceScreen[T]) submit(
	ctx context.Context,
	draft T,
	send func(T) (*platform.MutationResult, error),
	successMsg, failureMsg string,
) error {
	if s.normalize != nil {
		draft = s.normalize(draft)
	}
	if s.validate != nil {
		if err := s.validate(draft); err != nil {
			s.notifier.Error(err.Error())
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	res, err := send(draft)
	if err != nil {
		s.notifier.Error(failureMessage(err, failureMsg))
		return err
	}
	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = failureMsg
		}
		s.notifier.Error(msg)
		return errors.New(msg)
	}

	s.notifier.Success(successMsg)
	return nil
}

// CreateMultipart submits form fields plus binary attachments for
// resources whose create flow carries a receipt or image. The backend
// owns validation of multipart drafts.
func (s *ResourceScreen[T]) CreateMultipart(ctx context.Context, fields map[string]string, files []platform.File) error {
	res, err := s.client.PostMultipart(ctx, s.path, fields, files)
	if err != nil {
		s.notifier.Error(failureMessage(err, "Failed to save "+strings.ToLower(s.label)))
		return err
	}
	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = "Failed to save " + strings.ToLower(s.label)
		}
		s.notifier.Error(msg)
		return errors.New(msg)
	}

	s.notifier.Success(s.label + " created successfully")
	return nil
}

// Invoke triggers a named operation on one resource, e.g. publishing
// a content page
func (s *ResourceScreen[T]) Invoke(ctx context.Context, id, op, successMsg string) error {
	res, err := s.client.Put(ctx, s.path+"/"+id+"/"+op, nil)
	if err != nil {
		s.notifier.Error(failureMessage(err, "Failed to "+op+" "+strings.ToLower(s.label)))
		return err
	}
	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = "Failed to " + op + " " + strings.ToLower(s.label)
		}
		s.notifier.Error(msg)
		return errors.New(msg)
	}

	s.notifier.Success(successMsg)
	return nil
}

// PatchFields fetches the current document, merges the given field
// overrides into it, and submits the merged document in full. Fields
// not mentioned keep their remote values.
func (s *ResourceScreen[T]) PatchFields(ctx context.Context, id string, fields map[string]interface{}) error {
	doc, err := s.client.GetRaw(ctx, s.path+"/"+id)
	if err != nil {
		s.notifier.Error(failureMessage(err, "Failed to load "+strings.ToLower(s.label)))
		return err
	}
	merged := MergeAll(doc, fields)

	res, err := s.client.Put(ctx, s.path+"/"+id, merged)
	if err != nil {
		s.notifier.Error(failureMessage(err, "Failed to save "+strings.ToLower(s.label)))
		return err
	}
	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = "Failed to save " + strings.ToLower(s.label)
		}
		s.notifier.Error(msg)
		return errors.New(msg)
	}

	s.notifier.Success(s.label + " updated successfully")
	return nil
}

// Delete removes the resource by identifier and refetches the full
// collection. The refetched collection is trusted as-is: there is no
// optimistic local removal.
func (s *ResourceScreen[T]) Delete(ctx context.Context, id string, filters map[string]string) ([]T, error) {
	res, err := s.client.Delete(ctx, s.path+"/"+id)
	if err != nil {
		s.notifier.Error(failureMessage(err, "Failed to delete "+strings.ToLower(s.label)))
		return s.Collection(), err
	}
	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = "Failed to delete " + strings.ToLower(s.label)
		}
		s.notifier.Error(msg)
		return s.Collection(), errors.New(msg)
	}

	s.notifier.Success(s.label + " deleted successfully")
	return s.List(ctx, filters, "")
}

// failureMessage prefers the backend's structured message and falls
// back to a generic per-action message, with transport failures mapped
// to a "no response" notification.
func failureMessage(err error, fallback string) string {
	var apiErr *platform.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, platform.ErrNoResponse) {
		return "No response from server"
	}
	return fallback
}
