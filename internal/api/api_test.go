package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jon4hz/cinemate/internal/api/models"
	"github.com/jon4hz/cinemate/internal/collection"
	"github.com/jon4hz/cinemate/internal/config"
	dbmock "github.com/jon4hz/cinemate/internal/database/mock"
	"github.com/jon4hz/cinemate/internal/omdb"
	"github.com/stretchr/testify/suite"
)

type fakeMetadata struct {
	search  json.RawMessage
	details json.RawMessage
	err     error

	lastQuery string
	lastType  string
	lastID    string
}

func (f *fakeMetadata) Search(_ context.Context, query, mediaType string) (json.RawMessage, error) {
	f.lastQuery, f.lastType = query, mediaType
	return f.search, f.err
}

func (f *fakeMetadata) Details(_ context.Context, imdbID string) (json.RawMessage, error) {
	f.lastID = imdbID
	return f.details, f.err
}

type ServerTestSuite struct {
	suite.Suite
	db       *dbmock.MockDB
	metadata *fakeMetadata
	handler  http.Handler
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func testConfig() *config.Config {
	return &config.Config{
		Listen:   "127.0.0.1:0",
		Database: &config.DatabaseConfig{URL: "unused"},
		OMDb:     &config.OMDbConfig{URL: config.DefaultOMDbURL},
		Server:   &config.ServerConfig{Gzip: true, CORSOrigin: "*"},
	}
}

func (s *ServerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.db = dbmock.NewMockDB()
	s.metadata = &fakeMetadata{}

	srv, err := New(testConfig(), s.db, collection.New(s.db, nil), s.metadata, true)
	s.Require().NoError(err)
	s.handler = srv.Handler()
}

func (s *ServerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](s *ServerTestSuite, w *httptest.ResponseRecorder) T {
	var v T
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (s *ServerTestSuite) errorMessage(w *httptest.ResponseRecorder) string {
	return decodeBody[map[string]string](s, w)["error"]
}

func (s *ServerTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "")
	s.Equal(http.StatusOK, w.Code)
	s.NotEmpty(w.Header().Get(requestIDHeader))

	s.db.PingError = errors.New("database is locked")
	w = s.do(http.MethodGet, "/health", "")
	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *ServerTestSuite) TestMovieLifecycle() {
	w := s.do(http.MethodPost, "/api/movies/", `{"title":"Heat","year":1995,"imdb_id":"tt0113277"}`)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody[models.Movie](s, w)
	s.NotZero(created.ID)
	s.Equal("tt0113277", created.ImdbID)
	s.False(created.Watched)

	w = s.do(http.MethodPost, "/api/movies", `{"title":"Heat","imdb_id":"tt0113277"}`)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Movie already exists in your collection", s.errorMessage(w))

	w = s.do(http.MethodPut, fmt.Sprintf("/api/movies/%d", created.ID), `{"rating":8.5}`)
	s.Require().Equal(http.StatusOK, w.Code)
	updated := decodeBody[models.Movie](s, w)
	s.Equal(8.5, *updated.Rating)
	s.Equal("Heat", updated.Title)
	s.Equal(1995, *updated.Year)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/movies/%d", created.ID), "")
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/movies/%d", created.ID), "")
	s.Equal(http.StatusOK, w.Code)
	s.Equal("Movie deleted successfully", decodeBody[map[string]string](s, w)["message"])

	w = s.do(http.MethodGet, fmt.Sprintf("/api/movies/%d", created.ID), "")
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Movie not found", s.errorMessage(w))
}

func (s *ServerTestSuite) TestMovieEmptyImdbIDRendersEmptyString() {
	w := s.do(http.MethodPost, "/api/movies/", `{"title":"No id"}`)
	s.Require().Equal(http.StatusCreated, w.Code)
	raw := decodeBody[map[string]any](s, w)
	s.Equal("", raw["imdb_id"])
	s.Nil(raw["year"])
	s.Nil(raw["rating"])
}

func (s *ServerTestSuite) TestListMoviesFilters() {
	for _, body := range []string{
		`{"title":"Alien","watched":true,"genre":"Horror, Sci-Fi","year":1979}`,
		`{"title":"Aliens","watched":true,"watch_later":true,"genre":"Action, Sci-Fi","year":1986}`,
		`{"title":"Arrival","genre":"Drama, Sci-Fi","year":2016}`,
	} {
		s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/movies/", body).Code)
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Alien", "Aliens", "Arrival"}},
		{"?watched=true&watch_later=false", []string{"Alien"}},
		{"?watched=TRUE&search=alien", []string{"Alien", "Aliens"}},
		{"?watched=yes", []string{"Arrival"}},
		{"?genre=sci-fi&year=2016", []string{"Arrival"}},
		{"?search=xyz", []string{}},
	}
	for _, tt := range tests {
		s.Run(tt.query, func() {
			w := s.do(http.MethodGet, "/api/movies/"+tt.query, "")
			s.Require().Equal(http.StatusOK, w.Code)
			movies := decodeBody[[]models.Movie](s, w)
			titles := make([]string, 0, len(movies))
			for _, m := range movies {
				titles = append(titles, m.Title)
			}
			s.Equal(tt.want, titles)
		})
	}

	w := s.do(http.MethodGet, "/api/movies?year=nineteen", "")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ServerTestSuite) TestCreateMovieWithoutTitle() {
	w := s.do(http.MethodPost, "/api/movies/", `{"genre":"Drama"}`)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	movie := decodeBody[models.Movie](s, w)
	s.NotZero(movie.ID)
	s.Empty(movie.Title)
	s.Equal("Drama", movie.Genre)
}

func (s *ServerTestSuite) TestInvalidRequests() {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"malformed json", http.MethodPost, "/api/movies/", `{"title":`, http.StatusBadRequest},
		{"wrong type", http.MethodPost, "/api/tv/", `{"title":"x","total_episodes":"three"}`, http.StatusBadRequest},
		{"negative episodes", http.MethodPost, "/api/tv/", `{"title":"x","total_episodes":-2}`, http.StatusBadRequest},
		{"too many episodes", http.MethodPost, "/api/tv/", `{"title":"x","total_episodes":2000000000}`, http.StatusBadRequest},
		{"too many episodes on update", http.MethodPut, "/api/tv/42", `{"total_episodes":10001}`, http.StatusBadRequest},
		{"non numeric movie id", http.MethodGet, "/api/movies/abc", "", http.StatusNotFound},
		{"negative show id", http.MethodGet, "/api/tv/-1", "", http.StatusNotFound},
		{"unknown movie", http.MethodPut, "/api/movies/42", `{"watched":true}`, http.StatusNotFound},
		{"unknown show", http.MethodDelete, "/api/tv/42", "", http.StatusNotFound},
		{"unknown show episodes", http.MethodGet, "/api/tv/42/episodes", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(tt.method, tt.path, tt.body)
			s.Equal(tt.status, w.Code, w.Body.String())
			s.NotEmpty(s.errorMessage(w))
		})
	}
}

func (s *ServerTestSuite) TestShowProgressExample() {
	w := s.do(http.MethodPost, "/api/tv/", `{"title":"Show A","total_episodes":3}`)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	show := decodeBody[models.TVShow](s, w)
	s.Require().Len(show.Episodes, 3)
	for i, e := range show.Episodes {
		s.Equal(fmt.Sprintf("Episode %d", i+1), e.Title)
		s.False(e.Watched)
	}
	s.Equal(0, show.Progress)

	ep2 := show.Episodes[1]
	w = s.do(http.MethodPut, fmt.Sprintf("/api/tv/%d/episodes/%d", show.ID, ep2.ID), `{"watched":true}`)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.True(decodeBody[models.Episode](s, w).Watched)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/tv/%d", show.ID), "")
	s.Require().Equal(http.StatusOK, w.Code)
	show = decodeBody[models.TVShow](s, w)
	s.Equal(1, show.WatchedEpisodes)
	s.Equal(33, show.Progress)
}

func (s *ServerTestSuite) TestShowEpisodeSyncAndDelete() {
	w := s.do(http.MethodPost, "/api/tv", `{"title":"Show B","total_episodes":2}`)
	s.Require().Equal(http.StatusCreated, w.Code)
	show := decodeBody[models.TVShow](s, w)

	w = s.do(http.MethodPut, fmt.Sprintf("/api/tv/%d", show.ID), `{"total_episodes":5}`)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(decodeBody[models.TVShow](s, w).Episodes, 5)

	w = s.do(http.MethodPut, fmt.Sprintf("/api/tv/%d", show.ID), `{"total_episodes":1}`)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(decodeBody[models.TVShow](s, w).Episodes, 1)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/tv/%d/episodes", show.ID), "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(decodeBody[[]models.Episode](s, w), 1)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/tv/%d", show.ID), "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("TV show deleted successfully", decodeBody[map[string]string](s, w)["message"])

	w = s.do(http.MethodGet, fmt.Sprintf("/api/tv/%d/episodes", show.ID), "")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *ServerTestSuite) TestEpisodeOfOtherShow() {
	a := decodeBody[models.TVShow](s, s.do(http.MethodPost, "/api/tv/", `{"title":"A","total_episodes":1}`))
	b := decodeBody[models.TVShow](s, s.do(http.MethodPost, "/api/tv/", `{"title":"B","total_episodes":1}`))

	w := s.do(http.MethodPut, fmt.Sprintf("/api/tv/%d/episodes/%d", b.ID, a.Episodes[0].ID), `{"watched":true}`)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Episode not found", s.errorMessage(w))
}

func (s *ServerTestSuite) TestListShows() {
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/tv/", `{"title":"Dark","genre":"Sci-Fi","watch_later":true}`).Code)
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/tv/", `{"title":"Fargo","genre":"Crime"}`).Code)

	w := s.do(http.MethodGet, "/api/tv/?watch_later=true", "")
	s.Require().Equal(http.StatusOK, w.Code)
	shows := decodeBody[[]models.TVShow](s, w)
	s.Require().Len(shows, 1)
	s.Equal("Dark", shows[0].Title)
	s.NotNil(shows[0].Episodes)

	s.db.GetTVShowsError = errors.New("boom")
	w = s.do(http.MethodGet, "/api/tv", "")
	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("Internal server error", s.errorMessage(w))
}

func (s *ServerTestSuite) TestSearch() {
	s.metadata.search = json.RawMessage(`{"Search":[],"totalResults":"0","Response":"True"}`)

	w := s.do(http.MethodGet, "/api/search?query=matrix&type=movie", "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"Search":[],"totalResults":"0","Response":"True"}`, w.Body.String())
	s.Equal("matrix", s.metadata.lastQuery)
	s.Equal("movie", s.metadata.lastType)

	w = s.do(http.MethodGet, "/api/search", "")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Query parameter is required", s.errorMessage(w))

	s.metadata.err = &omdb.ResponseError{Message: "Movie not found!"}
	w = s.do(http.MethodGet, "/api/search?query=zzz", "")
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Movie not found!", s.errorMessage(w))

	s.metadata.err = errors.New("dial tcp: connection refused")
	w = s.do(http.MethodGet, "/api/search?query=zzz", "")
	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("dial tcp: connection refused", s.errorMessage(w))
}

func (s *ServerTestSuite) TestDetails() {
	s.metadata.details = json.RawMessage(`{"Title":"Heat","Response":"True"}`)

	w := s.do(http.MethodGet, "/api/details/tt0113277", "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"Title":"Heat","Response":"True"}`, w.Body.String())
	s.Equal("tt0113277", s.metadata.lastID)

	w = s.do(http.MethodGet, "/api/details/", "")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("IMDb ID is required", s.errorMessage(w))

	s.metadata.err = &omdb.ResponseError{Message: "Incorrect IMDb ID."}
	w = s.do(http.MethodGet, "/api/details/tt0", "")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *ServerTestSuite) TestCORSPreflight() {
	w := s.do(http.MethodOptions, "/api/movies/", "")
	s.Equal(http.StatusNoContent, w.Code)
	s.Equal("*", w.Header().Get("Access-Control-Allow-Origin"))
}

func (s *ServerTestSuite) TestGzip() {
	req := httptest.NewRequest(http.MethodGet, "/api/movies/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("gzip", w.Header().Get("Content-Encoding"))
}

func (s *ServerTestSuite) TestRequestIDIsEchoed() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	s.Equal("abc-123", w.Header().Get(requestIDHeader))
}

func TestNewRequiresConfig(t *testing.T) {
	if _, err := New(nil, nil, nil, nil, false); err == nil {
		t.Fatal("expected an error without config")
	}
}
