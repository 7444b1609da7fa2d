package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"fyyur/internal/app"
	"fyyur/internal/app/artists"
	"fyyur/internal/app/shows"
	"fyyur/internal/app/venues"
	"fyyur/internal/flash"
	"fyyur/internal/models"
	"fyyur/internal/store"
)

type stubVenueService struct {
	groups    []models.VenueGroup
	listErr   error
	search    []models.VenueSummary
	lastTerm  string
	recent    []models.VenueSummary
	detail    models.VenueDetail
	detailErr error
	createErr error
	created   venues.CreateRequest
	edit      venues.EditRequest
	editErr   error
	updateErr error
	updated   venues.EditRequest
	deleteErr error
	deletedID int64
}

func (s *stubVenueService) List(context.Context) ([]models.VenueGroup, error) {
	return s.groups, s.listErr
}

func (s *stubVenueService) Search(_ context.Context, term string) (models.SearchResult[models.VenueSummary], error) {
	s.lastTerm = term
	return models.SearchResult[models.VenueSummary]{SearchTerm: term, Count: len(s.search), Data: s.search}, nil
}

func (s *stubVenueService) Recent(context.Context, int) ([]models.VenueSummary, error) {
	return s.recent, nil
}

func (s *stubVenueService) Detail(context.Context, int64) (models.VenueDetail, error) {
	return s.detail, s.detailErr
}

func (s *stubVenueService) Create(_ context.Context, req venues.CreateRequest) (int64, error) {
	s.created = req
	if s.createErr != nil {
		return 0, s.createErr
	}
	return 1, nil
}

func (s *stubVenueService) EditForm(context.Context, int64) (venues.EditRequest, error) {
	return s.edit, s.editErr
}

func (s *stubVenueService) Update(_ context.Context, req venues.EditRequest) error {
	s.updated = req
	return s.updateErr
}

func (s *stubVenueService) Delete(_ context.Context, id int64) error {
	s.deletedID = id
	return s.deleteErr
}

type stubArtistService struct {
	list      []models.ArtistSummary
	detail    models.ArtistDetail
	detailErr error
	createErr error
	deleteErr error
}

func (s *stubArtistService) List(context.Context) ([]models.ArtistSummary, error) {
	return s.list, nil
}

func (s *stubArtistService) Search(_ context.Context, term string) (models.SearchResult[models.ArtistSummary], error) {
	return models.SearchResult[models.ArtistSummary]{SearchTerm: term, Count: len(s.list), Data: s.list}, nil
}

func (s *stubArtistService) Recent(context.Context, int) ([]models.ArtistSummary, error) {
	return s.list, nil
}

func (s *stubArtistService) Detail(context.Context, int64) (models.ArtistDetail, error) {
	return s.detail, s.detailErr
}

func (s *stubArtistService) Create(context.Context, artists.CreateRequest) (int64, error) {
	return 1, s.createErr
}

func (s *stubArtistService) EditForm(context.Context, int64) (artists.EditRequest, error) {
	return artists.EditRequest{}, store.ErrArtistNotFound
}

func (s *stubArtistService) Update(context.Context, artists.EditRequest) error {
	return nil
}

func (s *stubArtistService) Delete(context.Context, int64) error {
	return s.deleteErr
}

type stubShowService struct {
	listings  []models.ShowListing
	createErr error
	created   *shows.CreateRequest
}

func (s *stubShowService) Create(_ context.Context, req shows.CreateRequest) (int64, error) {
	s.created = &req
	return 1, s.createErr
}

func (s *stubShowService) ListUpcoming(context.Context) ([]models.ShowListing, error) {
	return s.listings, nil
}

func (s *stubShowService) Search(_ context.Context, term string) (models.SearchResult[models.ShowListing], error) {
	return models.SearchResult[models.ShowListing]{SearchTerm: term, Count: len(s.listings), Data: s.listings}, nil
}

type recordingNotices struct {
	added   []flash.Message
	pending []flash.Message
}

func (n *recordingNotices) Add(_ http.ResponseWriter, _ *http.Request, messages ...flash.Message) error {
	n.added = append(n.added, messages...)
	return nil
}

func (n *recordingNotices) Pop(http.ResponseWriter, *http.Request) []flash.Message {
	pending := n.pending
	n.pending = nil
	return pending
}

type fixture struct {
	venues  *stubVenueService
	artists *stubArtistService
	shows   *stubShowService
	notices *recordingNotices
	handler http.Handler
}

func newFixture(opts ...Option) *fixture {
	f := &fixture{
		venues:  &stubVenueService{},
		artists: &stubArtistService{},
		shows:   &stubShowService{},
		notices: &recordingNotices{},
	}
	f.handler = New(f.venues, f.artists, f.shows, f.notices, opts...).Routes()
	return f
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func jsonRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Accept", "application/json")
	return req
}

func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func noticeTexts(messages []flash.Message) []string {
	texts := make([]string, 0, len(messages))
	for _, m := range messages {
		texts = append(texts, m.Text)
	}
	return texts
}

func TestListVenuesGroupsByCity(t *testing.T) {
	f := newFixture()
	f.venues.groups = models.GroupVenues([]models.VenueSummary{
		{ID: 1, Name: "The Fillmore", City: "SF", State: "CA"},
	})

	rr := f.do(jsonRequest(http.MethodGet, "/venues"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var groups []struct {
		City   string `json:"city"`
		State  string `json:"state"`
		Venues []struct {
			ID               int64  `json:"id"`
			Name             string `json:"name"`
			NumUpcomingShows *int   `json:"num_upcoming_shows"`
		} `json:"venues"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &groups); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(groups) != 1 || groups[0].City != "SF" || groups[0].State != "CA" {
		t.Fatalf("unexpected groups %+v", groups)
	}
	v := groups[0].Venues
	if len(v) != 1 || v[0].Name != "The Fillmore" || v[0].NumUpcomingShows == nil || *v[0].NumUpcomingShows != 0 {
		t.Fatalf("unexpected venues %+v", v)
	}

	rr = f.do(httptest.NewRequest(http.MethodGet, "/venues", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "The Fillmore") {
		t.Fatalf("expected html listing, got %d %q", rr.Code, rr.Body.String())
	}
}

func TestShowVenueListsUpcomingShow(t *testing.T) {
	f := newFixture()
	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	f.venues.detail = models.VenueDetail{
		Venue: models.Venue{ID: 1, Name: "The Musical Hop", City: "San Francisco", State: "CA", Genres: []string{"Jazz"}},
		UpcomingShows: []models.VenueShow{
			{ArtistID: 1, ArtistName: "Guns N Petals", ShowTime: models.NewShowTime(start)},
		},
		PastShows:          []models.VenueShow{},
		UpcomingShowsCount: 1,
	}

	rr := f.do(jsonRequest(http.MethodGet, "/venues/1"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var detail struct {
		UpcomingShows      []map[string]any `json:"upcoming_shows"`
		PastShows          []map[string]any `json:"past_shows"`
		UpcomingShowsCount int              `json:"upcoming_shows_count"`
		PastShowsCount     int              `json:"past_shows_count"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if detail.UpcomingShowsCount != 1 || detail.PastShowsCount != 0 || len(detail.UpcomingShows) != 1 {
		t.Fatalf("unexpected detail %+v", detail)
	}
	if got := detail.UpcomingShows[0]["start_time"]; got != start.Format(models.StartTimeLayout) {
		t.Fatalf("unexpected start_time %v", got)
	}

	rr = f.do(httptest.NewRequest(http.MethodGet, "/venues/1", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Guns N Petals") {
		t.Fatalf("expected html detail, got %d", rr.Code)
	}
}

func TestShowVenueFailures(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		status   int
		location string
	}{
		{name: "not found", err: fmt.Errorf("load venue 7: %w", store.ErrVenueNotFound), status: http.StatusSeeOther, location: "/venues"},
		{name: "storage", err: errors.New("connection reset"), status: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.venues.detailErr = tc.err

			rr := f.do(httptest.NewRequest(http.MethodGet, "/venues/7", nil))
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rr.Code)
			}
			if tc.location != "" {
				if rr.Header().Get("Location") != tc.location {
					t.Fatalf("unexpected location %q", rr.Header().Get("Location"))
				}
				texts := noticeTexts(f.notices.added)
				if len(texts) != 1 || texts[0] != "An error occurred. Venue cannot be found." {
					t.Fatalf("unexpected notices %v", texts)
				}
				return
			}
			if !strings.Contains(rr.Body.String(), "something went wrong") {
				t.Fatalf("expected error page, got %q", rr.Body.String())
			}
		})
	}
}

func TestDeleteVenue(t *testing.T) {
	deleteForm := func() *http.Request {
		return formRequest("/venues/3", url.Values{"_method": {"DELETE"}})
	}
	deleteCall := func() *http.Request {
		return httptest.NewRequest(http.MethodDelete, "/venues/3", nil)
	}

	cases := []struct {
		name     string
		req      func() *http.Request
		err      error
		status   int
		success  bool
		location string
	}{
		{name: "delete", req: deleteCall, status: http.StatusOK, success: true},
		{
			name:   "missing venue",
			req:    deleteCall,
			err:    fmt.Errorf("delete venue 3: %w", store.ErrVenueNotFound),
			status: http.StatusInternalServerError,
		},
		{name: "form post", req: deleteForm, status: http.StatusSeeOther, location: "/"},
		{
			name:   "form post failure",
			req:    deleteForm,
			err:    errors.New("connection reset"),
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.venues.deleteErr = tc.err

			rr := f.do(tc.req())
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rr.Code)
			}
			if f.venues.deletedID != 3 {
				t.Fatalf("expected venue 3 to be deleted, got %d", f.venues.deletedID)
			}

			if tc.location != "" {
				if rr.Header().Get("Location") != tc.location {
					t.Fatalf("unexpected location %q", rr.Header().Get("Location"))
				}
				texts := noticeTexts(f.notices.added)
				if len(texts) != 1 || texts[0] != "Venue has been deleted successfully!!" {
					t.Fatalf("unexpected notices %v", texts)
				}
				return
			}
			if tc.req().Header.Get("Content-Type") != "" {
				if !strings.Contains(rr.Body.String(), "something went wrong") {
					t.Fatalf("expected error page, got %q", rr.Body.String())
				}
				return
			}

			var body map[string]any
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body["Success"] != tc.success {
				t.Fatalf("unexpected body %v", body)
			}
			if tc.success && len(f.notices.added) != 1 {
				t.Fatalf("expected a deletion notice, got %v", f.notices.added)
			}
		})
	}
}

func TestDeleteArtistFromJSONClient(t *testing.T) {
	f := newFixture()

	rr := f.do(jsonRequest(http.MethodDelete, "/artists/4"))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"Success":true`) {
		t.Fatalf("unexpected response %d %q", rr.Code, rr.Body.String())
	}

	f.artists.deleteErr = store.ErrArtistNotFound
	rr = f.do(jsonRequest(http.MethodDelete, "/artists/4"))
	if rr.Code != http.StatusInternalServerError || !strings.Contains(rr.Body.String(), `"Success":false`) {
		t.Fatalf("unexpected response %d %q", rr.Code, rr.Body.String())
	}
}

func TestCreateVenue(t *testing.T) {
	form := url.Values{
		"name":    {"The Fillmore"},
		"city":    {"SF"},
		"state":   {"CA"},
		"address": {"1805 Geary Blvd"},
		"phone":   {"415-555-0000"},
		"genres":  {"Rock n Roll"},
	}

	cases := []struct {
		name     string
		err      error
		status   int
		location string
		notice   string
	}{
		{name: "success", status: http.StatusSeeOther, location: "/", notice: "Venue The Fillmore was successfully listed!"},
		{name: "validation", err: &app.ValidationError{Fields: map[string]string{"phone": "invalid phone"}}, status: http.StatusUnprocessableEntity},
		{name: "duplicate", err: fmt.Errorf("create venue: %w", store.ErrDuplicate), status: http.StatusConflict},
		{name: "storage", err: errors.New("connection refused"), status: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.venues.createErr = tc.err

			rr := f.do(formRequest("/venues/create", form))
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rr.Code)
			}
			if !f.venues.created.SeekingTalent {
				t.Fatalf("expected absent seeking_talent to default to true")
			}

			if tc.location != "" {
				if rr.Header().Get("Location") != tc.location {
					t.Fatalf("unexpected location %q", rr.Header().Get("Location"))
				}
				texts := noticeTexts(f.notices.added)
				if len(texts) != 1 || texts[0] != tc.notice {
					t.Fatalf("unexpected notices %v", texts)
				}
				return
			}

			body := rr.Body.String()
			if !strings.Contains(body, "1805 Geary Blvd") {
				t.Fatalf("expected submitted data to be preserved")
			}
			if tc.status == http.StatusUnprocessableEntity {
				if !strings.Contains(body, "invalid phone") {
					t.Fatalf("expected field error in form")
				}
				return
			}
			if !strings.Contains(body, "An error occurred. Venue The Fillmore could not be listed.") {
				t.Fatalf("expected failure notice in form")
			}
		})
	}
}

func TestUpdateVenueRedirectsToDetail(t *testing.T) {
	f := newFixture()
	form := url.Values{"name": {"The Dueling Pianos Bar"}, "seeking_talent": {"n"}}

	rr := f.do(formRequest("/venues/2/edit", form))
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/venues/2" {
		t.Fatalf("unexpected response %d %q", rr.Code, rr.Header().Get("Location"))
	}
	if f.venues.updated.ID != 2 || f.venues.updated.SeekingTalent {
		t.Fatalf("unexpected update %+v", f.venues.updated)
	}

	f.venues.updateErr = store.ErrVenueNotFound
	rr = f.do(formRequest("/venues/2/edit", form))
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/venues" {
		t.Fatalf("expected redirect to listing, got %d %q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestUpdateMissingVenueWithInvalidForm(t *testing.T) {
	f := newFixture()
	f.venues.updateErr = fmt.Errorf("load venue 999: %w", store.ErrVenueNotFound)

	rr := f.do(formRequest("/venues/999/edit", url.Values{"name": {""}}))
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/venues" {
		t.Fatalf("expected redirect to listing, got %d %q", rr.Code, rr.Header().Get("Location"))
	}
	texts := noticeTexts(f.notices.added)
	if len(texts) != 1 || texts[0] != "An error occurred. Venue cannot be found." {
		t.Fatalf("unexpected notices %v", texts)
	}
}

func TestEditArtistFormMissing(t *testing.T) {
	f := newFixture()

	rr := f.do(httptest.NewRequest(http.MethodGet, "/artists/9/edit", nil))
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/artists" {
		t.Fatalf("unexpected response %d %q", rr.Code, rr.Header().Get("Location"))
	}
	texts := noticeTexts(f.notices.added)
	if len(texts) != 1 || texts[0] != "An error occurred. Artist cannot be found." {
		t.Fatalf("unexpected notices %v", texts)
	}
}

func TestSearchEmptyTermReturnsAll(t *testing.T) {
	f := newFixture()
	f.venues.search = []models.VenueSummary{
		{ID: 1, Name: "The Musical Hop"},
		{ID: 2, Name: "The Dueling Pianos Bar"},
	}

	req := formRequest("/venues/search", url.Values{"search_term": {""}})
	req.Header.Set("Accept", "application/json")
	rr := f.do(req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var result struct {
		Count int              `json:"count"`
		Data  []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Count != 2 || len(result.Data) != 2 || f.venues.lastTerm != "" {
		t.Fatalf("unexpected result %+v (term %q)", result, f.venues.lastTerm)
	}

	rr = f.do(formRequest("/venues/search", url.Values{"search_term": {""}}))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "The Dueling Pianos Bar") {
		t.Fatalf("expected html results, got %d", rr.Code)
	}
}

func TestCreateShow(t *testing.T) {
	valid := url.Values{"artist_id": {"1"}, "venue_id": {"1"}, "start_time": {"2035-04-01 20:00:00"}}

	cases := []struct {
		name     string
		form     url.Values
		err      error
		status   int
		reaches  bool
		location string
	}{
		{name: "success", form: valid, status: http.StatusSeeOther, reaches: true, location: "/"},
		{name: "missing reference", form: valid, err: fmt.Errorf("create show: %w", store.ErrInvalidReference), status: http.StatusBadRequest, reaches: true},
		{name: "bad start time", form: url.Values{"artist_id": {"1"}, "venue_id": {"1"}, "start_time": {"soon"}}, status: http.StatusUnprocessableEntity},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.shows.createErr = tc.err

			rr := f.do(formRequest("/shows/create", tc.form))
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rr.Code)
			}
			if (f.shows.created != nil) != tc.reaches {
				t.Fatalf("unexpected service call: %+v", f.shows.created)
			}
			if tc.location != "" {
				if rr.Header().Get("Location") != tc.location {
					t.Fatalf("unexpected location %q", rr.Header().Get("Location"))
				}
				texts := noticeTexts(f.notices.added)
				if len(texts) != 1 || texts[0] != "Show was successfully listed!" {
					t.Fatalf("unexpected notices %v", texts)
				}
				return
			}
			if !strings.Contains(rr.Body.String(), "An error occurred. Show could not be listed.") {
				t.Fatalf("expected failure notice")
			}
		})
	}
}

func TestListShows(t *testing.T) {
	f := newFixture()
	f.shows.listings = []models.ShowListing{
		{ID: 1, VenueID: 1, VenueName: "The Musical Hop", ArtistID: 4, ArtistName: "Guns N Petals", NumShows: 2,
			ShowTime: models.NewShowTime(time.Date(2035, 5, 21, 21, 30, 0, 0, time.UTC))},
	}

	rr := f.do(jsonRequest(http.MethodGet, "/shows"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var listings []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &listings); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(listings) != 1 || listings[0]["start_time"] != "2035-05-21 21:30:00" || listings[0]["num_shows"] != float64(2) {
		t.Fatalf("unexpected listings %v", listings)
	}

	rr = f.do(httptest.NewRequest(http.MethodGet, "/shows", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Guns N Petals") {
		t.Fatalf("expected html listing, got %d", rr.Code)
	}
}

func TestNotFoundPage(t *testing.T) {
	f := newFixture()

	for _, target := range []string{"/nowhere", "/venues/abc"} {
		rr := f.do(httptest.NewRequest(http.MethodGet, target, nil))
		if rr.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", target, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "Not found") {
			t.Fatalf("%s: expected not found page", target)
		}
	}

	rr := f.do(jsonRequest(http.MethodGet, "/nowhere"))
	if rr.Code != http.StatusNotFound || !strings.Contains(rr.Header().Get("Content-Type"), "application/json") {
		t.Fatalf("expected json 404, got %d %q", rr.Code, rr.Header().Get("Content-Type"))
	}
}

func TestPanicRendersErrorPage(t *testing.T) {
	f := newFixture(WithMiddleware(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/artists" {
				panic("boom")
			}
			next.ServeHTTP(w, r)
		})
	}))

	rr := f.do(httptest.NewRequest(http.MethodGet, "/artists", nil))
	if rr.Code != http.StatusInternalServerError || !strings.Contains(rr.Body.String(), "something went wrong") {
		t.Fatalf("unexpected response %d", rr.Code)
	}
}

func TestMetricsRoute(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("fyyur_http_requests_total 1"))
	})
	f := newFixture(WithMetricsHandler(metrics))

	rr := f.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "fyyur_http_requests_total") {
		t.Fatalf("unexpected response %d %q", rr.Code, rr.Body.String())
	}
}

func TestNoticesSurviveRedirect(t *testing.T) {
	notices, err := flash.NewStore("a-test-secret-of-some-length", false)
	if err != nil {
		t.Fatalf("new flash store: %v", err)
	}
	venuesSvc := &stubVenueService{}
	handler := New(venuesSvc, &stubArtistService{}, &stubShowService{}, notices).Routes()

	form := url.Values{"name": {"The Fillmore"}, "city": {"SF"}, "state": {"CA"}, "address": {"1805 Geary Blvd"}, "genres": {"Jazz"}}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, formRequest("/venues/create", form))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}

	home := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rr.Result().Cookies() {
		home.AddCookie(c)
	}
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, home)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Venue The Fillmore was successfully listed!") {
		t.Fatalf("expected notice on home page, got %d", rr.Code)
	}
}

func TestForwardedForOnlyTrustedWhenEnabled(t *testing.T) {
	cases := []struct {
		name string
		opts []Option
		want string
	}{
		{name: "default", want: "192.0.2.1:1234"},
		{name: "behind proxy", opts: []Option{WithProxyHeaders()}, want: "203.0.113.7"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var seen string
			capture := func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					seen = r.RemoteAddr
					next.ServeHTTP(w, r)
				})
			}
			f := newFixture(append(tc.opts, WithMiddleware(capture))...)

			req := httptest.NewRequest(http.MethodGet, "/artists", nil)
			req.Header.Set("X-Forwarded-For", "203.0.113.7")
			f.do(req)

			if seen != tc.want {
				t.Fatalf("expected remote addr %q, got %q", tc.want, seen)
			}
		})
	}
}
