package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/safarhub/backoffice/internal/models"
	"github.com/safarhub/backoffice/internal/platform"
)

type stubNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *stubNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
}

func (n *stubNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, message)
}

func (n *stubNotifier) lastError() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.errors) == 0 {
		return ""
	}
	return n.errors[len(n.errors)-1]
}

func flightScreenFor(handler http.HandlerFunc) (*ResourceScreen[models.Flight], *stubNotifier, *httptest.Server) {
	srv := httptest.NewServer(handler)
	notifier := &stubNotifier{}
	screens := NewScreens(platform.NewClient(srv.URL, ""), notifier)
	return screens.Flights, notifier, srv
}

func flightsJSON(flights []models.Flight) []byte {
	body, _ := json.Marshal(map[string]interface{}{"flights": flights})
	return body
}

func TestListParsesNamedCollectionField(t *testing.T) {
	screen, _, srv := flightScreenFor(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/flights", r.URL.Path)
		assert.Equal(t, "scheduled", r.URL.Query().Get("status"))
		w.Write(flightsJSON([]models.Flight{{ID: "F1", FlightNumber: "SV801"}}))
	})
	defer srv.Close()

	items, err := screen.List(context.Background(), map[string]string{"status": "scheduled"}, "")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "SV801", items[0].FlightNumber)
}

func TestListDefaultsToEmptyWhenFieldAbsent(t *testing.T) {
	screen, _, srv := flightScreenFor(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	})
	defer srv.Close()

	items, err := screen.List(context.Background(), nil, "")
	assert.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestListIdempotentRefetch(t *testing.T) {
	screen, _, srv := flightScreenFor(func(w http.ResponseWriter, r *http.Request) {
		w.Write(flightsJSON([]models.Flight{{ID: "F1"}, {ID: "F2"}}))
	})
	defer srv.Close()

	first, err := screen.List(context.Background(), nil, "")
	assert.NoError(t, err)
	second, err := screen.List(context.Background(), nil, "")
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestListAppliesSearchTerm(t *testing.T) {
	screen, _, srv := flightScreenFor(func(w http.ResponseWriter, r *http.Request) {
		w.Write(flightsJSON([]models.Flight{
			{ID: "F1", FlightNumber: "SV801", Airline: "saudia"},
			{ID: "F2", FlightNumber: "PK741", Airline: "pia"},
			{ID: "F3", FlightNumber: "SV9125", Airline: "saudia"},
		}))
	})
	defer srv.Close()

	items, err := screen.List(context.Background(), nil, "sv")
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "F1", items[0].ID)
	assert.Equal(t, "F3", items[1].ID)

	// The loaded collection is not narrowed by the search
	assert.Len(t, screen.Collection(), 3)
}

func TestListFetchErrorPreservesPriorCollection(t *testing.T) {
	fail := false
	screen, notifier, srv := flightScreenFor(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"platform down"}`))
			return
		}
		w.Write(flightsJSON([]models.Flight{{ID: "F1"}}))
	})
	defer srv.Close()

	_, err := screen.List(context.Background(), nil, "")
	assert.NoError(t, err)

	fail = true
	prior, err := screen.List(context.Background(), nil, "")
	assert.Error(t, err)
	assert.Len(t, prior, 1)
	assert.Equal(t, "F1", prior[0].ID)
	assert.Len(t, screen.Collection(), 1)
	assert.Equal(t, "platform down", notifier.lastError())
}

func TestValidationBlocksSubmission(t *testing.T) {
	screen, notifier, srv := flightScreenFor(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call may be issued for an invalid draft")
	})
	defer srv.Close()

	err := screen.Create(context.Background(), models.Flight{FlightNumber: "SV801"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "airline is required", notifier.lastError())
}

func TestCreatePostsFullDraft(t *testing.T) {
	var received models.Flight
	screen, notifier, srv := flightScreenFor(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{"success":true,"message":"created"}`))
	})
	defer srv.Close()

	draft := models.Flight{
		FlightNumber:  "SV801",
		Airline:       "AL-1",
		Sector:        "SC-2",
		DepartureDate: "2024-06-01",
		SeatsTotal:    180,
		Legs:          []models.FlightLeg{{Origin: "KHI", Destination: "JED"}},
	}
	assert.NoError(t, screen.Create(context.Background(), draft))
	assert.Equal(t, draft, received)
	assert.Contains(t, notifier.successes, "Flight created successfully")
}

func TestUpdateSurfacesBackendMessage(t *testing.T) {
	screen, notifier, srv := flightScreenFor(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/flights/F1", r.URL.Path)
		w.Write([]byte(`{"success":false,"message":"seat count below booked seats"}`))
	})
	defer srv.Close()

	draft := models.Flight{
		FlightNumber: "SV801", Airline: "AL-1", Sector: "SC-2",
		DepartureDate: "2024-06-01", SeatsTotal: 10,
	}
	err := screen.Update(context.Background(), "F1", draft)
	assert.EqualError(t, err, "seat count below booked seats")
	assert.Equal(t, "seat count below booked seats", notifier.lastError())
}

func TestDeleteTriggersRefetchNotLocalSplice(t *testing.T) {
	// The refetch after delete still contains F2: the screen must
	// trust the backend and keep showing it.
	screen, _, srv := flightScreenFor(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			assert.Equal(t, "/flights/F2", r.URL.Path)
			w.Write([]byte(`{"success":true}`))
			return
		}
		w.Write(flightsJSON([]models.Flight{{ID: "F1"}, {ID: "F2"}}))
	})
	defer srv.Close()

	_, err := screen.List(context.Background(), nil, "")
	assert.NoError(t, err)

	after, err := screen.Delete(context.Background(), "F2", nil)
	assert.NoError(t, err)
	assert.Len(t, after, 2)
	assert.Equal(t, "F2", after[1].ID)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var calls int
	var mu sync.Mutex

	screen, _, srv := flightScreenFor(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()

		if first {
			close(started)
			<-release // hold the first response until the second lands
			w.Write(flightsJSON([]models.Flight{{ID: "stale"}}))
			return
		}
		w.Write(flightsJSON([]models.Flight{{ID: "fresh"}}))
	})
	defer srv.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		screen.List(context.Background(), nil, "")
	}()

	<-started
	fresh, err := screen.List(context.Background(), nil, "")
	assert.NoError(t, err)
	assert.Equal(t, "fresh", fresh[0].ID)

	close(release)
	wg.Wait()

	// The older fetch resolved last but must not overwrite the newer one
	collection := screen.Collection()
	assert.Len(t, collection, 1)
	assert.Equal(t, "fresh", collection[0].ID)
}

func TestLedgerEntriesEmptyOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	notifier := &stubNotifier{}
	ledger := NewLedgerService(platform.NewClient(srv.URL, ""), notifier)

	entries := ledger.Entries(context.Background(), "AG-7", "2024-01-01", "2024-01-31")
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
	assert.NotEmpty(t, notifier.lastError())
}

func TestPackageItineraryRenumberedBeforeSubmit(t *testing.T) {
	var received models.Package
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	screens := NewScreens(platform.NewClient(srv.URL, ""), &stubNotifier{})
	draft := models.Package{
		Name:         "Ramadan Premium",
		DurationDays: 14,
		PriceTiers:   []models.PriceTier{{Label: "Quad", Occupancy: 4, Price: 1500}},
		Itinerary: []models.ItineraryDay{
			{Day: 1, Title: "Arrival"},
			{Day: 3, Title: "Ziyarat"}, // gap after a removed day
		},
	}

	assert.NoError(t, screens.Packages.Create(context.Background(), draft))
	assert.Equal(t, 1, received.Itinerary[0].Day)
	assert.Equal(t, 2, received.Itinerary[1].Day)
}
