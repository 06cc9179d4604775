package importer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
	"github.com/gokatarajesh/trivia-api/internal/db/memory"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

const sampleBatch = `{
  "response_code": 0,
  "results": [
    {"category":"Science &amp; Nature","type":"multiple","difficulty":"hard",
     "question":"What is the symbol for &quot;gold&quot;?","correct_answer":"Au",
     "incorrect_answers":["Ag","Gd","Go"]},
    {"category":"Entertainment: Film","type":"boolean","difficulty":"easy",
     "question":"Jaws was directed by Spielberg.","correct_answer":"True",
     "incorrect_answers":["False"]},
    {"category":"Celebrities","type":"boolean","difficulty":"medium",
     "question":"Skipped?","correct_answer":"True","incorrect_answers":["False"]}
  ]
}`

// openTDBStub serves body with status and returns the query of the last request.
func openTDBStub(t *testing.T, status int, body string) (*OpenTDBClient, func() url.Values) {
	t.Helper()
	var (
		mu   sync.Mutex
		last url.Values
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api.php", r.URL.Path)
		mu.Lock()
		last = r.URL.Query()
		mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client, err := NewOpenTDBClient(srv.URL, srv.Client())
	require.NoError(t, err)
	return client, func() url.Values {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func newCatalog() (*memory.Store, *catalog.Service) {
	store := memory.NewSeeded()
	return store, catalog.NewService(store, store, nil, catalog.ServiceOptions{})
}

func TestImportMapsCategoriesAndUnescapes(t *testing.T) {
	store, svc := newCatalog()
	client, last := openTDBStub(t, http.StatusOK, sampleBatch)
	imp := New(client, svc, store, zerolog.Nop(), Options{})

	res, err := imp.Import(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, Result{Imported: 2, Skipped: 1}, res)
	assert.Equal(t, "3", last().Get("amount"))
	assert.False(t, last().Has("difficulty"))

	all, err := store.ListQuestions(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.Equal(t, `What is the symbol for "gold"?`, *all[0].Question)
	assert.Equal(t, "Au", *all[0].Answer)
	assert.Equal(t, int64(1), *all[0].Category)
	assert.Equal(t, int32(3), *all[0].Difficulty)

	assert.Equal(t, int64(5), *all[1].Category)
	assert.Equal(t, int32(1), *all[1].Difficulty)
}

func TestImportRequestsConfiguredDifficulty(t *testing.T) {
	store, svc := newCatalog()
	client, last := openTDBStub(t, http.StatusOK, `{"response_code":0,"results":[]}`)
	imp := New(client, svc, store, zerolog.Nop(), Options{Difficulty: "hard"})

	res, err := imp.Import(context.Background(), 5)
	require.NoError(t, err)
	assert.Zero(t, res.Imported)
	assert.Equal(t, "hard", last().Get("difficulty"))
	assert.Equal(t, "5", last().Get("amount"))
}

func TestImportProviderErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "server error", status: http.StatusServiceUnavailable},
		{name: "http rate limit", status: http.StatusTooManyRequests, want: ErrRateLimited},
		{name: "no results", status: http.StatusOK, body: `{"response_code":1,"results":[]}`, want: ErrNoResults},
		{name: "invalid parameter", status: http.StatusOK, body: `{"response_code":2,"results":[]}`, want: ErrInvalidParameter},
		{name: "rate limit code", status: http.StatusOK, body: `{"response_code":5,"results":[]}`, want: ErrRateLimited},
		{name: "garbage", status: http.StatusOK, body: `not json`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, svc := newCatalog()
			client, _ := openTDBStub(t, tc.status, tc.body)
			imp := New(client, svc, store, zerolog.Nop(), Options{})

			_, err := imp.Import(context.Background(), 3)
			require.Error(t, err)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
			}

			count, err := store.CountQuestions(context.Background())
			require.NoError(t, err)
			assert.Zero(t, count)
		})
	}
}

func TestNewOpenTDBClientRejectsBadURL(t *testing.T) {
	_, err := NewOpenTDBClient("://nope", nil)
	assert.Error(t, err)
}

type failingSink struct{}

func (failingSink) CreateQuestion(context.Context, trivia.NewQuestion) (int64, error) {
	return 0, errors.New("db down")
}

func TestImportStopsOnSinkError(t *testing.T) {
	store := memory.NewSeeded()
	client, _ := openTDBStub(t, http.StatusOK, sampleBatch)
	imp := New(client, failingSink{}, store, zerolog.Nop(), Options{})

	res, err := imp.Import(context.Background(), 3)
	require.Error(t, err)
	assert.Zero(t, res.Imported)
}

func TestCategoryRoot(t *testing.T) {
	assert.Equal(t, "Science", categoryRoot("Science: Computers"))
	assert.Equal(t, "Science", categoryRoot("Science & Nature"))
	assert.Equal(t, "Art", categoryRoot("Art"))
	assert.Equal(t, "", categoryRoot(""))
}

func TestWorkerImportsUntilStopped(t *testing.T) {
	store, svc := newCatalog()
	client, _ := openTDBStub(t, http.StatusOK, sampleBatch)
	imp := New(client, svc, store, zerolog.Nop(), Options{})

	w := NewWorker(imp, 3, time.Hour, time.Second, zerolog.Nop())
	go w.Run()

	require.Eventually(t, func() bool {
		n, _ := store.CountQuestions(context.Background())
		return n == 2
	}, time.Second, 10*time.Millisecond)

	w.Stop()
}
