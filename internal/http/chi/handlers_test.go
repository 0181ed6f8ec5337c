package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/local-library/catalog"
	"github.com/marcelsud/local-library/catalog/memory"
	"github.com/marcelsud/local-library/dashboard"
	"github.com/marcelsud/local-library/internal/user"
	"github.com/marcelsud/local-library/renewal"
	"github.com/marcelsud/local-library/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

var today = time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)

type testServer struct {
	repo    *memory.Repository
	catalog *catalog.Service
	handler http.Handler
	book    catalog.Book
}

// staleStore simulates another librarian renewing the same instance first
type staleStore struct {
	*memory.Repository
}

func (staleStore) UpdateDueBack(ctx context.Context, id uuid.UUID, dueBack time.Time, version int64) error {
	return catalog.ErrConflict
}

func newTestServer(t *testing.T, renewStore func(*memory.Repository) renewal.Store) *testServer {
	t.Helper()
	ctx := context.Background()
	repo := memory.NewRepository()
	svc := catalog.NewService(repo)

	var store renewal.Store = repo
	if renewStore != nil {
		store = renewStore(repo)
	}

	a, err := svc.CreateAuthor(ctx, catalog.Author{FirstName: "Frank", LastName: "Herbert"})
	require.NoError(t, err)
	b, err := svc.CreateBook(ctx, catalog.Book{Title: "Dune", AuthorID: a.ID, Summary: "Spice", ISBN: "9780441013593"})
	require.NoError(t, err)

	h := Handlers(ctx, Services{
		Catalog:   svc,
		Renewal:   renewal.NewService(store, func() time.Time { return today }),
		Dashboard: dashboard.NewService(repo, session.NewMemoryStore()),
	}, Options{
		JWTSecret:  testSecret,
		SessionTTL: time.Hour,
		LogLevel:   "error",
	})

	return &testServer{repo: repo, catalog: svc, handler: h, book: b}
}

func (s *testServer) loan(t *testing.T, borrower string, dueBack time.Time) catalog.Instance {
	t.Helper()
	i, err := s.catalog.CreateInstance(context.Background(), catalog.Instance{
		BookID:   s.book.ID,
		Imprint:  "Ace",
		Status:   catalog.OnLoan,
		Borrower: borrower,
		DueBack:  &dueBack,
	})
	require.NoError(t, err)
	return i
}

func token(t *testing.T, id string, caps ...user.Capability) string {
	t.Helper()
	tok, err := user.GenerateToken(testSecret, user.User{ID: id, Capabilities: caps}, time.Hour)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, body, tok string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestDashboard(t *testing.T) {
	s := newTestServer(t, nil)
	reader := token(t, "reader")

	w := s.do(t, http.MethodGet, "/v1/", "", reader)
	require.Equal(t, http.StatusOK, w.Code)
	first := decodeBody[dashboard.Summary](t, w)
	assert.Equal(t, int64(1), first.NumBooks)
	assert.Equal(t, int64(1), first.NumAuthors)
	assert.Equal(t, int64(0), first.NumVisits)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/v1/", nil)
	req.AddCookie(cookies[0])
	req.Header.Set("Authorization", "Bearer "+reader)
	w = httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	second := decodeBody[dashboard.Summary](t, w)
	assert.Equal(t, int64(1), second.NumVisits)
}

func TestAccessPolicy(t *testing.T) {
	s := newTestServer(t, nil)
	reader := token(t, "reader")

	tests := []struct {
		name   string
		method string
		path   string
		tok    string
		want   int
	}{
		{"anonymous dashboard", http.MethodGet, "/v1/", "", http.StatusUnauthorized},
		{"anonymous books", http.MethodGet, "/v1/books", "", http.StatusUnauthorized},
		{"bad token", http.MethodGet, "/v1/books", "nope", http.StatusUnauthorized},
		{"reader books", http.MethodGet, "/v1/books", reader, http.StatusOK},
		{"reader borrowed", http.MethodGet, "/v1/borrowed", reader, http.StatusForbidden},
		{"reader creates genre", http.MethodPost, "/v1/genres", reader, http.StatusForbidden},
		{"librarian borrowed", http.MethodGet, "/v1/borrowed", token(t, "lib", user.CanManageCirculation), http.StatusOK},
		{"librarian creates genre", http.MethodPost, "/v1/genres", token(t, "lib", user.CanManageCirculation), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, `{"name":"Fantasy"}`, tt.tok)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestBooks(t *testing.T) {
	s := newTestServer(t, nil)
	admin := token(t, "admin", user.CanManageCatalog)

	t.Run("create", func(t *testing.T) {
		body := `{"title":"Children of Dune","author_id":` + itoa(s.book.AuthorID) + `,"summary":"More spice","isbn":"978-0-593-09823-3"}`
		w := s.do(t, http.MethodPost, "/v1/books", body, admin)
		require.Equal(t, http.StatusCreated, w.Code)
		got := decodeBody[bookResponse](t, w)
		assert.Equal(t, "Children of Dune", got.Title)
		assert.Empty(t, got.GenreIDs)
	})

	t.Run("invalid isbn", func(t *testing.T) {
		body := `{"title":"X","author_id":` + itoa(s.book.AuthorID) + `,"summary":"s","isbn":"123"}`
		w := s.do(t, http.MethodPost, "/v1/books", body, admin)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		got := decodeBody[errorResponse](t, w)
		require.Len(t, got.Errors, 1)
		assert.Equal(t, "isbn", got.Errors[0].Field)
	})

	t.Run("repeated genre", func(t *testing.T) {
		g, err := s.catalog.CreateGenre(context.Background(), "Science Fiction")
		require.NoError(t, err)
		body := `{"title":"X","author_id":` + itoa(s.book.AuthorID) + `,"summary":"s","isbn":"0441013597","genre_ids":[` + itoa(g.ID) + `,` + itoa(g.ID) + `]}`
		w := s.do(t, http.MethodPost, "/v1/books", body, admin)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		got := decodeBody[errorResponse](t, w)
		require.Len(t, got.Errors, 1)
		assert.Equal(t, "genre_ids", got.Errors[0].Field)
		assert.Equal(t, "unique", got.Errors[0].Kind)
	})

	t.Run("unknown author", func(t *testing.T) {
		body := `{"title":"X","author_id":999,"summary":"s","isbn":"0441013597"}`
		w := s.do(t, http.MethodPost, "/v1/books", body, admin)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/v1/books", `{"title":`, admin)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("detail with instances", func(t *testing.T) {
		s.loan(t, "u1", today)
		w := s.do(t, http.MethodGet, "/v1/books/"+itoa(s.book.ID), "", admin)
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeBody[bookDetailResponse](t, w)
		assert.Equal(t, "Dune", got.Title)
		require.Len(t, got.Instances, 1)
		assert.Equal(t, "o", got.Instances[0].StatusCode)
	})

	t.Run("missing book", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/v1/books/999", "", admin)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete author with books", func(t *testing.T) {
		w := s.do(t, http.MethodDelete, "/v1/authors/"+itoa(s.book.AuthorID), "", admin)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAuthors(t *testing.T) {
	s := newTestServer(t, nil)
	admin := token(t, "admin", user.CanManageCatalog)

	t.Run("death before birth", func(t *testing.T) {
		body := `{"first_name":"A","last_name":"B","date_of_birth":"1950-01-01","date_of_death":"1940-01-01"}`
		w := s.do(t, http.MethodPost, "/v1/authors", body, admin)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		got := decodeBody[errorResponse](t, w)
		assert.Equal(t, "date_of_death", got.Errors[0].Field)
	})

	t.Run("create and show", func(t *testing.T) {
		body := `{"first_name":"Isaac","last_name":"Asimov","date_of_birth":"1920-01-02","date_of_death":"1992-04-06"}`
		w := s.do(t, http.MethodPost, "/v1/authors", body, admin)
		require.Equal(t, http.StatusCreated, w.Code)
		created := decodeBody[authorResponse](t, w)
		assert.Equal(t, "Asimov, Isaac", created.Name)

		w = s.do(t, http.MethodGet, "/v1/authors/"+itoa(created.ID), "", admin)
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeBody[authorDetailResponse](t, w)
		require.NotNil(t, got.DateOfBirth)
		assert.Equal(t, "1920-01-02", *got.DateOfBirth)
		assert.Empty(t, got.Books)
	})
}

func TestPagination(t *testing.T) {
	s := newTestServer(t, nil)
	reader := token(t, "reader")
	for i := 0; i < 11; i++ {
		_, err := s.catalog.CreateBook(context.Background(), catalog.Book{Title: "Book", AuthorID: s.book.AuthorID, ISBN: "0441013597"})
		require.NoError(t, err)
	}

	w := s.do(t, http.MethodGet, "/v1/books?page=2", "", reader)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody[pageResponse[bookResponse]](t, w)
	assert.Len(t, got.Items, 2)
	assert.Equal(t, 12, got.Total)
	assert.Equal(t, 2, got.Pages)

	w = s.do(t, http.MethodGet, "/v1/books?page=3", "", reader)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/v1/books?page=x", "", reader)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPartitions(t *testing.T) {
	s := newTestServer(t, nil)
	later := s.loan(t, "alice", today.AddDate(0, 0, 7))
	sooner := s.loan(t, "alice", today.AddDate(0, 0, 1))
	s.loan(t, "bob", today)
	_, err := s.catalog.CreateInstance(context.Background(), catalog.Instance{BookID: s.book.ID, Imprint: "Ace", Status: catalog.Available})
	require.NoError(t, err)

	t.Run("my books", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/v1/mybooks", "", token(t, "alice"))
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeBody[pageResponse[instanceResponse]](t, w)
		require.Len(t, got.Items, 2)
		assert.Equal(t, sooner.ID.String(), got.Items[0].ID)
		assert.Equal(t, later.ID.String(), got.Items[1].ID)
	})

	t.Run("borrowed", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/v1/borrowed", "", token(t, "lib", user.CanManageCirculation))
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeBody[pageResponse[instanceResponse]](t, w)
		assert.Equal(t, 3, got.Total)
		assert.Equal(t, "bob", got.Items[0].Borrower)
	})

	t.Run("by status", func(t *testing.T) {
		lib := token(t, "lib", user.CanManageCirculation)
		w := s.do(t, http.MethodGet, "/v1/instances?status=a", "", lib)
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeBody[pageResponse[instanceResponse]](t, w)
		assert.Equal(t, 1, got.Total)

		w = s.do(t, http.MethodGet, "/v1/instances?status=z", "", lib)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRenew(t *testing.T) {
	lib := token(t, "lib", user.CanManageCirculation)

	t.Run("proposal", func(t *testing.T) {
		s := newTestServer(t, nil)
		i := s.loan(t, "alice", today)
		w := s.do(t, http.MethodGet, "/v1/instances/"+i.ID.String()+"/renew", "", lib)
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeBody[renewProposalResponse](t, w)
		assert.Equal(t, "2024-01-31", got.ProposedDueBack)
		assert.Equal(t, i.ID.String(), got.Instance.ID)
	})

	t.Run("accepted", func(t *testing.T) {
		s := newTestServer(t, nil)
		i := s.loan(t, "alice", today)
		w := s.do(t, http.MethodPost, "/v1/instances/"+i.ID.String()+"/renew", `{"due_back":"2024-02-07"}`, lib)
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/v1/borrowed", w.Header().Get("Location"))

		stored, err := s.repo.SelectInstance(context.Background(), i.ID)
		require.NoError(t, err)
		assert.Equal(t, "2024-02-07", stored.DueBack.Format(catalog.DateLayout))
	})

	rejections := []struct {
		name string
		date string
		kind string
	}{
		{"past", "2024-01-09", "past_date"},
		{"too far", "2024-02-08", "too_far_ahead"},
	}
	for _, tt := range rejections {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil)
			i := s.loan(t, "alice", today)
			w := s.do(t, http.MethodPost, "/v1/instances/"+i.ID.String()+"/renew", `{"due_back":"`+tt.date+`"}`, lib)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)
			got := decodeBody[errorResponse](t, w)
			require.Len(t, got.Errors, 1)
			assert.Equal(t, "due_back", got.Errors[0].Field)
			assert.Equal(t, tt.kind, got.Errors[0].Kind)

			stored, err := s.repo.SelectInstance(context.Background(), i.ID)
			require.NoError(t, err)
			assert.Equal(t, i.Version, stored.Version)
		})
	}

	t.Run("malformed date", func(t *testing.T) {
		s := newTestServer(t, nil)
		i := s.loan(t, "alice", today)
		w := s.do(t, http.MethodPost, "/v1/instances/"+i.ID.String()+"/renew", `{"due_back":"31/01/2024"}`, lib)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown instance", func(t *testing.T) {
		s := newTestServer(t, nil)
		w := s.do(t, http.MethodPost, "/v1/instances/"+uuid.NewString()+"/renew", `{"due_back":"2024-01-20"}`, lib)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("available instance", func(t *testing.T) {
		s := newTestServer(t, nil)
		i, err := s.catalog.CreateInstance(context.Background(), catalog.Instance{BookID: s.book.ID, Imprint: "Ace", Status: catalog.Available})
		require.NoError(t, err)

		w := s.do(t, http.MethodPost, "/v1/instances/"+i.ID.String()+"/renew", `{"due_back":"2024-01-17"}`, lib)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		got := decodeBody[errorResponse](t, w)
		require.Len(t, got.Errors, 1)
		assert.Equal(t, "due_back", got.Errors[0].Field)

		stored, err := s.repo.SelectInstance(context.Background(), i.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.DueBack)
		assert.NoError(t, stored.Validate())
	})

	t.Run("concurrent change", func(t *testing.T) {
		s := newTestServer(t, func(repo *memory.Repository) renewal.Store { return staleStore{repo} })
		i := s.loan(t, "alice", today)
		w := s.do(t, http.MethodPost, "/v1/instances/"+i.ID.String()+"/renew", `{"due_back":"2024-01-20"}`, lib)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestInstances(t *testing.T) {
	s := newTestServer(t, nil)
	admin := token(t, "admin", user.CanManageCatalog)

	body := `{"book_id":` + itoa(s.book.ID) + `,"imprint":"Ace","status":"m"}`
	w := s.do(t, http.MethodPost, "/v1/instances", body, admin)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody[instanceResponse](t, w)
	assert.Equal(t, "Maintenance", created.Status.String())

	t.Run("due date not allowed", func(t *testing.T) {
		body := `{"book_id":` + itoa(s.book.ID) + `,"imprint":"Ace","status":"a","due_back":"2024-01-20"}`
		w := s.do(t, http.MethodPost, "/v1/instances", body, admin)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("update", func(t *testing.T) {
		body := `{"book_id":` + itoa(s.book.ID) + `,"imprint":"Ace","status":"o","borrower":"alice","due_back":"2024-01-20","version":1}`
		w := s.do(t, http.MethodPut, "/v1/instances/"+created.ID, body, admin)
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeBody[instanceResponse](t, w)
		assert.Equal(t, "alice", got.Borrower)
		assert.Equal(t, int64(2), got.Version)
	})

	t.Run("stale version", func(t *testing.T) {
		body := `{"book_id":` + itoa(s.book.ID) + `,"imprint":"Ace","status":"a","version":1}`
		w := s.do(t, http.MethodPut, "/v1/instances/"+created.ID, body, admin)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("update to unknown book", func(t *testing.T) {
		body := `{"book_id":999,"imprint":"Ace","status":"a","version":2}`
		w := s.do(t, http.MethodPut, "/v1/instances/"+created.ID, body, admin)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("update unknown instance", func(t *testing.T) {
		body := `{"book_id":` + itoa(s.book.ID) + `,"imprint":"Ace","status":"a","version":1}`
		w := s.do(t, http.MethodPut, "/v1/instances/"+uuid.NewString(), body, admin)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
