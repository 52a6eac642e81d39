package docstore

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func sameID(a, b item) bool { return a.ID == b.ID }

func TestListCollection_AbsentIsEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	got, err := ListCollection[item](context.Background(), s, "savedJobs")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListCollection_NullIsEmpty(t *testing.T) {
	s, backend := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, backend.Write(ctx, "savedJobs", []byte("null")))

	got, err := ListCollection[item](ctx, s, "savedJobs")
	require.NoError(t, err)
	assert.Equal(t, []item{}, got)
}

func TestAppendToCollection_PreservesOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	r1 := item{ID: "1", Title: "first"}
	r2 := item{ID: "2", Title: "second"}
	r3 := item{ID: "3", Title: "third"}
	for _, r := range []item{r1, r2, r3} {
		require.NoError(t, AppendToCollection(ctx, s, "savedJobs", r))
	}

	got, err := ListCollection[item](ctx, s, "savedJobs")
	require.NoError(t, err)
	assert.Equal(t, []item{r1, r2, r3}, got)
}

func TestAppendToCollection_KeepsDuplicates(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	r := item{ID: "42", Title: "Engineer"}
	require.NoError(t, AppendToCollection(ctx, s, "savedJobs", r))
	require.NoError(t, AppendToCollection(ctx, s, "savedJobs", r))

	got, err := ListCollection[item](ctx, s, "savedJobs")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestAppendToCollection_CorruptedCollection(t *testing.T) {
	s, backend := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, backend.Write(ctx, "savedJobs", []byte("garbage")))

	err := AppendToCollection(ctx, s, "savedJobs", item{ID: "1"})
	assert.True(t, IsReadError(err))

	raw, err := backend.Read(ctx, "savedJobs")
	require.NoError(t, err)
	assert.Equal(t, "garbage", string(raw), "corrupted value must not be overwritten")
}

func TestAppendToCollection_WriteFailure(t *testing.T) {
	s := New(failingBackend{err: errDiskFull})

	err := AppendToCollection(context.Background(), s, "savedJobs", item{ID: "1"})
	// The read fails first with the same backend error.
	assert.ErrorIs(t, err, errDiskFull)
}

func TestAppendToCollection_ConcurrentAppendsAreNotLost(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, AppendToCollection(ctx, s, "savedJobs", item{ID: fmt.Sprint(i)}))
		}(i)
	}
	wg.Wait()

	got, err := ListCollection[item](ctx, s, "savedJobs")
	require.NoError(t, err)
	assert.Len(t, got, n)
}

func TestClearCollection(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, AppendToCollection(ctx, s, "savedJobs", item{ID: "1"}))
	require.NoError(t, ClearCollection(ctx, s, "savedJobs"))

	got, err := ListCollection[item](ctx, s, "savedJobs")
	require.NoError(t, err)
	assert.Equal(t, []item{}, got)

	require.NoError(t, ClearCollection(ctx, s, "savedJobs"))
}

func TestCollections_AreIndependentPerKey(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, AppendToCollection(ctx, s, "a", item{ID: "1"}))
	require.NoError(t, AppendToCollection(ctx, s, "b", item{ID: "2"}))
	require.NoError(t, ClearCollection(ctx, s, "a"))

	got, err := ListCollection[item](ctx, s, "b")
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "2"}}, got)
}

func TestUpsertCollection(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	replaced, err := UpsertCollection(ctx, s, "savedJobs", item{ID: "1", Title: "old"}, sameID)
	require.NoError(t, err)
	assert.False(t, replaced)

	require.NoError(t, AppendToCollection(ctx, s, "savedJobs", item{ID: "2", Title: "other"}))

	replaced, err = UpsertCollection(ctx, s, "savedJobs", item{ID: "1", Title: "new"}, sameID)
	require.NoError(t, err)
	assert.True(t, replaced)

	got, err := ListCollection[item](ctx, s, "savedJobs")
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "1", Title: "new"}, {ID: "2", Title: "other"}}, got)
}

func TestUpsertCollection_ReplacesFirstMatchOnly(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, AppendToCollection(ctx, s, "savedJobs", item{ID: "1", Title: "a"}))
	require.NoError(t, AppendToCollection(ctx, s, "savedJobs", item{ID: "1", Title: "b"}))

	replaced, err := UpsertCollection(ctx, s, "savedJobs", item{ID: "1", Title: "c"}, sameID)
	require.NoError(t, err)
	assert.True(t, replaced)

	got, err := ListCollection[item](ctx, s, "savedJobs")
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "1", Title: "c"}, {ID: "1", Title: "b"}}, got)
}

func TestCollection_EndToEnd(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, AppendToCollection(ctx, s, "savedJobs", item{ID: "42", Title: "Engineer"}))
	require.NoError(t, AppendToCollection(ctx, s, "savedJobs", item{ID: "43", Title: "Designer"}))

	got, err := ListCollection[item](ctx, s, "savedJobs")
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "42", Title: "Engineer"}, {ID: "43", Title: "Designer"}}, got)

	require.NoError(t, ClearCollection(ctx, s, "savedJobs"))
	got, err = ListCollection[item](ctx, s, "savedJobs")
	require.NoError(t, err)
	assert.Empty(t, got)
}
