package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cortexhq/cortex/internal/cortex/domain"
	"github.com/cortexhq/cortex/internal/cortex/store"
)

func TestCreateContent(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to draft with no publish time", func(t *testing.T) {
		svc := &ContentService{Store: newTestStore(t)}

		c, err := svc.CreateContent(ctx, CreateContentInput{
			Title: "First Post",
			Type:  "article",
			Body:  "hello",
		})
		require.NoError(t, err)
		require.Equal(t, domain.StateDraft, c.State)
		require.Nil(t, c.PublishTime)
		require.False(t, c.CreatedAt.IsZero())
	})

	t.Run("stamps publish time when created published", func(t *testing.T) {
		svc := &ContentService{Store: newTestStore(t)}

		before := time.Now().Add(-time.Second)
		c, err := svc.CreateContent(ctx, CreateContentInput{
			Title: "Launch",
			State: domain.StatePublished,
		})
		require.NoError(t, err)
		require.NotNil(t, c.PublishTime)
		require.True(t, c.PublishTime.After(before))
	})

	t.Run("rejects missing title and unknown state", func(t *testing.T) {
		svc := &ContentService{Store: newTestStore(t)}

		_, err := svc.CreateContent(ctx, CreateContentInput{Body: "no title"})
		_, ok := AsValidationError(err)
		require.True(t, ok)

		_, err = svc.CreateContent(ctx, CreateContentInput{Title: "T", State: "archived"})
		_, ok = AsValidationError(err)
		require.True(t, ok)
	})
}

func TestUpdateContent(t *testing.T) {
	ctx := context.Background()

	t.Run("publishing stamps the time once and unpublishing clears it", func(t *testing.T) {
		svc := &ContentService{Store: newTestStore(t)}
		c, err := svc.CreateContent(ctx, CreateContentInput{Title: "Post"})
		require.NoError(t, err)

		published, err := svc.UpdateContent(ctx, c.ID, UpdateContentInput{State: domain.StatePublished})
		require.NoError(t, err)
		require.NotNil(t, published.PublishTime)
		firstPublish := *published.PublishTime

		// A second update while still published keeps the original stamp.
		again, err := svc.UpdateContent(ctx, c.ID, UpdateContentInput{Body: "edited"})
		require.NoError(t, err)
		require.NotNil(t, again.PublishTime)
		require.True(t, again.PublishTime.Equal(firstPublish))

		unpublished, err := svc.UpdateContent(ctx, c.ID, UpdateContentInput{State: domain.StateDraft})
		require.NoError(t, err)
		require.Nil(t, unpublished.PublishTime)
	})

	t.Run("partial updates keep untouched fields", func(t *testing.T) {
		svc := &ContentService{Store: newTestStore(t)}
		c, err := svc.CreateContent(ctx, CreateContentInput{
			Title: "Post", Type: "article", Body: "original",
		})
		require.NoError(t, err)

		updated, err := svc.UpdateContent(ctx, c.ID, UpdateContentInput{Title: "Renamed"})
		require.NoError(t, err)
		require.Equal(t, "Renamed", updated.Title)
		require.Equal(t, "article", updated.Type)
		require.Equal(t, "original", updated.Body)
	})

	t.Run("unknown id maps to not found", func(t *testing.T) {
		svc := &ContentService{Store: newTestStore(t)}
		_, err := svc.UpdateContent(ctx, "missing", UpdateContentInput{Title: "X"})
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestListContents(t *testing.T) {
	ctx := context.Background()
	svc := &ContentService{Store: newTestStore(t)}

	mustCreate := func(title, typ, state string) {
		_, err := svc.CreateContent(ctx, CreateContentInput{Title: title, Type: typ, State: state})
		require.NoError(t, err)
	}
	mustCreate("A", "article", domain.StateDraft)
	mustCreate("B", "article", domain.StatePublished)
	mustCreate("C", "page", domain.StatePublished)

	t.Run("filters by type and state", func(t *testing.T) {
		byType, err := svc.ListContents(ctx, store.ContentFilter{Type: "article"})
		require.NoError(t, err)
		require.Len(t, byType, 2)

		byState, err := svc.ListContents(ctx, store.ContentFilter{State: domain.StatePublished})
		require.NoError(t, err)
		require.Len(t, byState, 2)

		both, err := svc.ListContents(ctx, store.ContentFilter{
			Type: "article", State: domain.StatePublished,
		})
		require.NoError(t, err)
		require.Len(t, both, 1)
		require.Equal(t, "B", both[0].Title)
	})

	t.Run("rejects unknown state filters", func(t *testing.T) {
		_, err := svc.ListContents(ctx, store.ContentFilter{State: "archived"})
		_, ok := AsValidationError(err)
		require.True(t, ok)
	})
}

func TestDeleteContent(t *testing.T) {
	ctx := context.Background()
	svc := &ContentService{Store: newTestStore(t)}

	c, err := svc.CreateContent(ctx, CreateContentInput{Title: "Doomed"})
	require.NoError(t, err)

	deleted, err := svc.DeleteContent(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, c.ID, deleted.ID)

	_, err = svc.GetContent(ctx, c.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
