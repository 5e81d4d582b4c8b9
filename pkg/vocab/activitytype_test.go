/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vocab

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fedikit/fedikit/pkg/internal/testutil"
)

const (
	createActivityID = "https://sally.example.com/services/activity/activities/97bcd005-abb6-423d-a889-18bc1ce84988"
	followActivityID = "https://joe.example.com/services/activity/activities/97b3d005-abb6-422d-a889-18bc1ee84988"
	inviteActivityID = "https://sally.example.com/services/activity/activities/75b3d005-abb6-473d-a879-18bc1ee84979"
)

func TestCreateActivityMarshal(t *testing.T) {
	actor := MustParseURL("https://sally.example.com/services/activity")
	followers := MustParseURL("https://sally.example.com/services/activity/followers")
	public := MustParseURL(PublicIRI)
	noteIRI := MustParseURL("https://sally.example.com/notes/77bcd005")

	published := time.Date(2021, time.October, 21, 17, 26, 24, 0, time.UTC)

	t.Run("Marshal", func(t *testing.T) {
		note, err := NewObjectWithDocument(Document{"content": "Hello world!"},
			WithID(noteIRI),
			WithType(TypeNote),
		)
		require.NoError(t, err)

		create := NewCreateActivity(
			NewObjectProperty(WithObject(note)),
			WithID(MustParseURL(createActivityID)),
			WithActor(actor),
			WithTo(followers, public),
			WithPublishedTime(&published),
		)

		bytes, err := Marshal(create)
		require.NoError(t, err)

		require.Equal(t, testutil.GetCanonical(t, jsonCreate), testutil.GetCanonical(t, string(bytes)))
	})

	t.Run("Unmarshal", func(t *testing.T) {
		a := &ActivityType{}
		require.NoError(t, json.Unmarshal([]byte(jsonCreate), a))

		require.True(t, a.Type().Is(TypeCreate))
		require.Equal(t, createActivityID, a.ID().String())
		require.True(t, a.Context().Contains(ContextActivityStreams))
		require.Equal(t, actor.String(), a.Actor().String())

		to := a.To()
		require.Len(t, to, 2)
		require.Equal(t, followers.String(), to[0].String())
		require.Equal(t, public.String(), to[1].String())

		require.NotNil(t, a.Published())
		require.True(t, published.Equal(*a.Published()))

		obj := a.Object().Object()
		require.NotNil(t, obj)
		require.True(t, obj.Type().Is(TypeNote))
		require.Equal(t, noteIRI.String(), obj.ID().String())

		content, ok := obj.Value("content")
		require.True(t, ok)
		require.Equal(t, "Hello world!", content)
	})
}

func TestFollowActivityMarshal(t *testing.T) {
	actor := MustParseURL("https://joe.example.com/services/activity")
	target := MustParseURL("https://sally.example.com/services/activity")

	t.Run("Marshal", func(t *testing.T) {
		follow := NewFollowActivity(
			NewObjectProperty(WithIRI(target)),
			WithID(MustParseURL(followActivityID)),
			WithActor(actor),
			WithTo(target),
		)

		bytes, err := Marshal(follow)
		require.NoError(t, err)

		require.Equal(t, testutil.GetCanonical(t, jsonFollow), testutil.GetCanonical(t, string(bytes)))
	})

	t.Run("Unmarshal", func(t *testing.T) {
		a := &ActivityType{}
		require.NoError(t, json.Unmarshal([]byte(jsonFollow), a))

		require.True(t, a.Type().Is(TypeFollow))
		require.Equal(t, followActivityID, a.ID().String())
		require.Equal(t, actor.String(), a.Actor().String())
		require.Equal(t, target.String(), a.Object().IRI().String())
	})
}

func TestNewActivity(t *testing.T) {
	actor := MustParseURL("https://sally.example.com/services/activity")
	objIRI := MustParseURL("https://joe.example.com/services/activity")

	activity := NewActivity(TypeInvite,
		WithID(MustParseURL(inviteActivityID)),
		WithActor(actor),
		WithIRIs(objIRI),
		WithTo(objIRI),
	)

	require.True(t, activity.Type().Is(TypeInvite))
	require.Equal(t, inviteActivityID, activity.ID().String())
	require.Equal(t, actor.String(), activity.Actor().String())
	require.Equal(t, objIRI.String(), activity.Object().IRI().String())

	bytes, err := Marshal(activity)
	require.NoError(t, err)

	roundTrip := &ActivityType{}
	require.NoError(t, json.Unmarshal(bytes, roundTrip))

	require.True(t, roundTrip.Type().Is(TypeInvite))
	require.Equal(t, objIRI.String(), roundTrip.Object().IRI().String())
}

func TestActivityActors(t *testing.T) {
	actor1 := MustParseURL("https://sally.example.com/services/activity")
	actor2 := MustParseURL("https://joe.example.com/services/activity")

	activity := NewFollowActivity(
		NewObjectProperty(WithIRI(actor2)),
		WithActor(actor1, actor2),
	)

	require.Equal(t, actor1.String(), activity.Actor().String())

	actors := activity.Actors()
	require.Len(t, actors, 2)
	require.Equal(t, actor1.String(), actors[0].String())
	require.Equal(t, actor2.String(), actors[1].String())
}

const (
	jsonCreate = `{
  "@context": "https://www.w3.org/ns/activitystreams",
  "id": "https://sally.example.com/services/activity/activities/97bcd005-abb6-423d-a889-18bc1ce84988",
  "type": "Create",
  "actor": "https://sally.example.com/services/activity",
  "to": [
    "https://sally.example.com/services/activity/followers",
    "https://www.w3.org/ns/activitystreams#Public"
  ],
  "published": "2021-10-21T17:26:24Z",
  "object": {
    "id": "https://sally.example.com/notes/77bcd005",
    "type": "Note",
    "content": "Hello world!"
  }
}`

	jsonFollow = `{
  "@context": "https://www.w3.org/ns/activitystreams",
  "id": "https://joe.example.com/services/activity/activities/97b3d005-abb6-422d-a889-18bc1ee84988",
  "type": "Follow",
  "actor": "https://joe.example.com/services/activity",
  "to": "https://sally.example.com/services/activity",
  "object": "https://sally.example.com/services/activity"
}`
)
