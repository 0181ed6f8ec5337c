package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/marcelsud/local-library/catalog"
	"github.com/marcelsud/local-library/catalog/memory"
	"github.com/marcelsud/local-library/dashboard"
	"github.com/marcelsud/local-library/dashboard/mocks"
	"github.com/marcelsud/local-library/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, repo *memory.Repository) {
	t.Helper()
	ctx := context.Background()
	svc := catalog.NewService(repo)

	author, err := svc.CreateAuthor(ctx, catalog.Author{FirstName: "Ursula", LastName: "Le Guin"})
	require.NoError(t, err)
	book, err := svc.CreateBook(ctx, catalog.Book{Title: "The Dispossessed", AuthorID: author.ID, Summary: "s", ISBN: "9780060512750"})
	require.NoError(t, err)
	_, err = svc.CreateBook(ctx, catalog.Book{Title: "The Lathe of Heaven", AuthorID: author.ID, Summary: "s", ISBN: "9781416556961"})
	require.NoError(t, err)

	for _, st := range []catalog.Status{catalog.Available, catalog.Available, catalog.Maintenance} {
		_, err := svc.CreateInstance(ctx, catalog.Instance{BookID: book.ID, Imprint: "Harper", Status: st})
		require.NoError(t, err)
	}
}

func TestService_Summarize(t *testing.T) {
	ctx := context.Background()

	t.Run("counts the catalog", func(t *testing.T) {
		repo := memory.NewRepository()
		seed(t, repo)
		svc := dashboard.NewService(repo, session.NewMemoryStore())

		sum, err := svc.Summarize(ctx, "s1")
		require.NoError(t, err)

		assert.Equal(t, int64(2), sum.NumBooks)
		assert.Equal(t, int64(3), sum.NumInstances)
		assert.Equal(t, int64(2), sum.NumInstancesAvailable)
		assert.Equal(t, int64(1), sum.NumAuthors)
		assert.LessOrEqual(t, sum.NumInstancesAvailable, sum.NumInstances)
	})

	t.Run("visits lag by one", func(t *testing.T) {
		svc := dashboard.NewService(memory.NewRepository(), session.NewMemoryStore())

		for want := int64(0); want < 3; want++ {
			sum, err := svc.Summarize(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, want, sum.NumVisits)
		}

		other, err := svc.Summarize(ctx, "s2")
		require.NoError(t, err)
		assert.Equal(t, int64(0), other.NumVisits)
	})

	t.Run("no session skips the counter", func(t *testing.T) {
		visits := mocks.NewVisitStore(t)
		svc := dashboard.NewService(memory.NewRepository(), visits)

		sum, err := svc.Summarize(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, int64(0), sum.NumVisits)
		visits.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stores incremented count", func(t *testing.T) {
		visits := mocks.NewVisitStore(t)
		visits.On("Get", mock.Anything, "s1", dashboard.VisitsKey).Return(int64(6), nil)
		visits.On("Set", mock.Anything, "s1", dashboard.VisitsKey, int64(7)).Return(nil)
		svc := dashboard.NewService(memory.NewRepository(), visits)

		sum, err := svc.Summarize(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, int64(6), sum.NumVisits)
	})

	t.Run("store failure", func(t *testing.T) {
		visits := mocks.NewVisitStore(t)
		visits.On("Get", mock.Anything, "s1", dashboard.VisitsKey).Return(int64(0), errors.New("connection refused"))
		svc := dashboard.NewService(memory.NewRepository(), visits)

		_, err := svc.Summarize(ctx, "s1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading visits")
	})
}
