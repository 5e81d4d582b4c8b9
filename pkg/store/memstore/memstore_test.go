/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package memstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fedikit/fedikit/pkg/internal/testutil"
	"github.com/fedikit/fedikit/pkg/store/spi"
	"github.com/fedikit/fedikit/pkg/store/storeutil"
	"github.com/fedikit/fedikit/pkg/vocab"
)

var serviceEndpoint = testutil.MustParseURL("https://example.com")

func TestStore_Documents(t *testing.T) {
	s := New("service1", serviceEndpoint)
	require.NotNil(t, s)

	ctx := context.Background()

	objIRI := testutil.MustParseURL("https://example.com/objects/obj1")

	doc := vocab.MustMarshalToDoc(vocab.NewObject(
		vocab.WithID(objIRI),
		vocab.WithType(vocab.TypeNote),
	))

	t.Run("Create and Get", func(t *testing.T) {
		require.NoError(t, s.Create(ctx, doc))

		retrieved, err := s.Get(ctx, objIRI)
		require.NoError(t, err)
		require.Equal(t, objIRI.String(), retrieved["id"])

		exists, err := s.Exists(ctx, objIRI)
		require.NoError(t, err)
		require.True(t, exists)
	})

	t.Run("Get -> not found", func(t *testing.T) {
		_, err := s.Get(ctx, testutil.MustParseURL("https://example.com/objects/unknown"))
		require.ErrorIs(t, err, spi.ErrNotFound)

		exists, err := s.Exists(ctx, testutil.MustParseURL("https://example.com/objects/unknown"))
		require.NoError(t, err)
		require.False(t, exists)
	})

	t.Run("Update", func(t *testing.T) {
		updated := vocab.MustMarshalToDoc(vocab.NewObject(
			vocab.WithID(objIRI),
			vocab.WithType(vocab.TypeNote),
		))
		updated["summary"] = "A note"

		require.NoError(t, s.Update(ctx, updated))

		retrieved, err := s.Get(ctx, objIRI)
		require.NoError(t, err)
		require.Equal(t, "A note", retrieved["summary"])
	})

	t.Run("Update -> not found", func(t *testing.T) {
		unknown := vocab.MustMarshalToDoc(vocab.NewObject(
			vocab.WithID(testutil.MustParseURL("https://example.com/objects/unknown")),
		))

		require.ErrorIs(t, s.Update(ctx, unknown), spi.ErrNotFound)
	})

	t.Run("Create -> missing ID", func(t *testing.T) {
		require.Error(t, s.Create(ctx, vocab.MustMarshalToDoc(vocab.NewObject())))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, objIRI))

		_, err := s.Get(ctx, objIRI)
		require.ErrorIs(t, err, spi.ErrNotFound)

		require.ErrorIs(t, s.Delete(ctx, objIRI), spi.ErrNotFound)
	})
}

func TestStore_Activities(t *testing.T) {
	s := New("service1", serviceEndpoint)

	ctx := context.Background()

	activityIRI := testutil.MustParseURL("https://example.com/activities/activity1")

	activity := vocab.NewCreateActivity(
		vocab.NewObjectProperty(vocab.WithIRI(testutil.MustParseURL("https://example.com/objects/obj1"))),
		vocab.WithID(activityIRI),
		vocab.WithActor(testutil.MustParseURL("https://example.com/services/service1")),
	)

	require.NoError(t, s.Create(ctx, vocab.MustMarshalToDoc(activity)))

	retrieved, err := s.GetActivity(ctx, activityIRI)
	require.NoError(t, err)
	require.Equal(t, activityIRI.String(), retrieved.ID().String())
	require.NotNil(t, retrieved.Actor())
	require.NotNil(t, retrieved.Object())

	_, err = s.GetActivity(ctx, testutil.MustParseURL("https://example.com/activities/unknown"))
	require.ErrorIs(t, err, spi.ErrNotFound)
}

func TestStore_Owns(t *testing.T) {
	s := New("service1", serviceEndpoint)

	ctx := context.Background()

	owns, err := s.Owns(ctx, testutil.MustParseURL("https://example.com/objects/obj1"))
	require.NoError(t, err)
	require.True(t, owns)

	owns, err = s.Owns(ctx, testutil.MustParseURL("https://other.com/objects/obj1"))
	require.NoError(t, err)
	require.False(t, owns)

	owns, err = s.Owns(ctx, nil)
	require.NoError(t, err)
	require.False(t, owns)
}

func TestStore_NewID(t *testing.T) {
	s := New("service1", serviceEndpoint)

	ctx := context.Background()

	t.Run("Activity", func(t *testing.T) {
		doc := vocab.MustMarshalToDoc(vocab.NewCreateActivity(nil))

		id, err := s.NewID(ctx, doc)
		require.NoError(t, err)
		require.Contains(t, id.String(), "https://example.com/activities/")
	})

	t.Run("Object", func(t *testing.T) {
		doc := vocab.MustMarshalToDoc(vocab.NewObject(vocab.WithType(vocab.TypeNote)))

		id, err := s.NewID(ctx, doc)
		require.NoError(t, err)
		require.Contains(t, id.String(), "https://example.com/objects/")
	})

	t.Run("Unique", func(t *testing.T) {
		doc := vocab.MustMarshalToDoc(vocab.NewObject(vocab.WithType(vocab.TypeNote)))

		id1, err := s.NewID(ctx, doc)
		require.NoError(t, err)

		id2, err := s.NewID(ctx, doc)
		require.NoError(t, err)

		require.NotEqual(t, id1.String(), id2.String())
	})
}

func TestStore_Actors(t *testing.T) {
	s := New("service1", serviceEndpoint)

	ctx := context.Background()

	actorIRI := testutil.MustParseURL("https://example.com/services/service1")
	inboxIRI := testutil.NewMockID(actorIRI, "/inbox")
	outboxIRI := testutil.NewMockID(actorIRI, "/outbox")
	followersIRI := testutil.NewMockID(actorIRI, "/followers")
	sharedInboxIRI := testutil.MustParseURL("https://example.com/inbox")

	actor := vocab.NewService(actorIRI,
		vocab.WithInbox(inboxIRI),
		vocab.WithOutbox(outboxIRI),
		vocab.WithFollowers(followersIRI),
		vocab.WithSharedInbox(sharedInboxIRI),
	)

	t.Run("GetActor -> not found", func(t *testing.T) {
		_, err := s.GetActor(ctx, actorIRI)
		require.ErrorIs(t, err, spi.ErrNotFound)
	})

	t.Run("PutActor and GetActor", func(t *testing.T) {
		require.NoError(t, s.PutActor(ctx, actor))

		retrieved, err := s.GetActor(ctx, actorIRI)
		require.NoError(t, err)
		require.Equal(t, actorIRI.String(), retrieved.ID().String())
	})

	t.Run("Box mappings", func(t *testing.T) {
		a, err := s.ActorForInbox(ctx, inboxIRI)
		require.NoError(t, err)
		require.Equal(t, actorIRI.String(), a.String())

		a, err = s.ActorForOutbox(ctx, outboxIRI)
		require.NoError(t, err)
		require.Equal(t, actorIRI.String(), a.String())

		a, err = s.ActorForCollection(ctx, followersIRI)
		require.NoError(t, err)
		require.Equal(t, actorIRI.String(), a.String())

		outbox, err := s.OutboxForInbox(ctx, inboxIRI)
		require.NoError(t, err)
		require.Equal(t, outboxIRI.String(), outbox.String())

		inbox, sharedInbox, err := s.InboxForActor(ctx, actorIRI)
		require.NoError(t, err)
		require.Equal(t, inboxIRI.String(), inbox.String())
		require.Equal(t, sharedInboxIRI.String(), sharedInbox.String())
	})

	t.Run("Box mappings -> not found", func(t *testing.T) {
		unknown := testutil.MustParseURL("https://example.com/services/unknown/inbox")

		_, err := s.ActorForInbox(ctx, unknown)
		require.ErrorIs(t, err, spi.ErrNotFound)

		_, err = s.ActorForOutbox(ctx, unknown)
		require.ErrorIs(t, err, spi.ErrNotFound)

		_, err = s.ActorForCollection(ctx, unknown)
		require.ErrorIs(t, err, spi.ErrNotFound)

		_, err = s.OutboxForInbox(ctx, unknown)
		require.ErrorIs(t, err, spi.ErrNotFound)

		_, _, err = s.InboxForActor(ctx, testutil.MustParseURL("https://example.com/services/unknown"))
		require.ErrorIs(t, err, spi.ErrNotFound)
	})
}

func TestStore_Collections(t *testing.T) {
	s := New("service1", serviceEndpoint)

	ctx := context.Background()

	collIRI := testutil.MustParseURL("https://example.com/services/service1/followers")

	refs := testutil.NewMockURLs(5, func(i int) string {
		return fmt.Sprintf("https://example%d.com/services/service%d", i, i)
	})

	t.Run("Query empty collection", func(t *testing.T) {
		it, err := s.QueryCollection(ctx, collIRI)
		require.NoError(t, err)

		totalItems, err := it.TotalItems()
		require.NoError(t, err)
		require.Zero(t, totalItems)

		_, err = it.Next()
		require.ErrorIs(t, err, spi.ErrNotFound)
		require.NoError(t, it.Close())
	})

	t.Run("Add references", func(t *testing.T) {
		require.NoError(t, s.UpdateCollection(ctx, collIRI, refs, nil))

		// Adding the same reference again should be a no-op.
		require.NoError(t, s.UpdateCollection(ctx, collIRI, refs[0:1], nil))

		it, err := s.QueryCollection(ctx, collIRI)
		require.NoError(t, err)

		retrieved, err := storeutil.ReadReferences(it, -1)
		require.NoError(t, err)
		require.Len(t, retrieved, 5)

		for i, ref := range retrieved {
			require.Equal(t, refs[i].String(), ref.String())
		}
	})

	t.Run("Contains", func(t *testing.T) {
		contains, err := s.CollectionContains(ctx, collIRI, refs[2])
		require.NoError(t, err)
		require.True(t, contains)

		contains, err = s.CollectionContains(ctx, collIRI,
			testutil.MustParseURL("https://other.com/services/unknown"))
		require.NoError(t, err)
		require.False(t, contains)

		contains, err = s.CollectionContains(ctx,
			testutil.MustParseURL("https://example.com/unknown-collection"), refs[0])
		require.NoError(t, err)
		require.False(t, contains)
	})

	t.Run("Remove references", func(t *testing.T) {
		require.NoError(t, s.UpdateCollection(ctx, collIRI, nil, refs[1:2]))

		contains, err := s.CollectionContains(ctx, collIRI, refs[1])
		require.NoError(t, err)
		require.False(t, contains)

		it, err := s.QueryCollection(ctx, collIRI)
		require.NoError(t, err)

		retrieved, err := storeutil.ReadReferences(it, -1)
		require.NoError(t, err)
		require.Len(t, retrieved, 4)

		// Removing a reference that's not in the collection should be a no-op.
		require.NoError(t, s.UpdateCollection(ctx, collIRI, nil, refs[1:2]))

		// Add it back for the paging tests below.
		require.NoError(t, s.UpdateCollection(ctx, collIRI, refs[1:2], nil))
	})

	t.Run("Query descending order", func(t *testing.T) {
		it, err := s.QueryCollection(ctx, collIRI, spi.WithSortOrder(spi.SortDescending))
		require.NoError(t, err)

		first, err := it.Next()
		require.NoError(t, err)

		// refs[1] was re-added above, so it's now the newest reference.
		require.Equal(t, refs[1].String(), first.String())
	})

	t.Run("Query pages", func(t *testing.T) {
		it, err := s.QueryCollection(ctx, collIRI, spi.WithPageSize(2), spi.WithPageNum(1))
		require.NoError(t, err)

		totalItems, err := it.TotalItems()
		require.NoError(t, err)
		require.Equal(t, 5, totalItems)

		page, err := storeutil.ReadReferences(it, 2)
		require.NoError(t, err)
		require.Len(t, page, 2)
		require.Equal(t, refs[3].String(), page[0].String())

		it, err = s.QueryCollection(ctx, collIRI, spi.WithPageSize(2), spi.WithPageNum(10))
		require.NoError(t, err)

		page, err = storeutil.ReadReferences(it, 2)
		require.NoError(t, err)
		require.Empty(t, page)
	})
}
