/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vocab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocumentMergeWith(t *testing.T) {
	t.Run("Missing keys are added", func(t *testing.T) {
		doc := Document{"id": "https://sally.example.com/notes/77bcd005"}

		doc.MergeWith(Document{
			"type":    "Note",
			"content": "Hello world!",
		})

		require.Len(t, doc, 3)
		require.Equal(t, "Note", doc["type"])
		require.Equal(t, "Hello world!", doc["content"])
	})

	t.Run("Existing keys are not overwritten", func(t *testing.T) {
		doc := Document{
			"id":   "https://sally.example.com/notes/77bcd005",
			"type": "Note",
		}

		doc.MergeWith(Document{
			"id":      "https://joe.example.com/notes/18bc1ee8",
			"content": "Hello world!",
		})

		require.Equal(t, "https://sally.example.com/notes/77bcd005", doc["id"])
		require.Equal(t, "Note", doc["type"])
		require.Equal(t, "Hello world!", doc["content"])
	})

	t.Run("Empty other document", func(t *testing.T) {
		doc := Document{"id": "https://sally.example.com/notes/77bcd005"}

		doc.MergeWith(Document{})

		require.Len(t, doc, 1)
	})
}

func TestIsOrExtends(t *testing.T) {
	tests := []struct {
		t      Type
		base   Type
		expect bool
	}{
		{t: TypeCreate, base: TypeCreate, expect: true},
		{t: TypeCreate, base: TypeActivity, expect: true},
		{t: TypeCreate, base: TypeObject, expect: true},
		{t: TypeBlock, base: TypeIgnore, expect: true},
		{t: TypeBlock, base: TypeActivity, expect: true},
		{t: TypeInvite, base: TypeOffer, expect: true},
		{t: TypeTentativeAccept, base: TypeAccept, expect: true},
		{t: TypeOrderedCollectionPage, base: TypeCollection, expect: true},
		{t: TypeImage, base: TypeDocument, expect: true},
		{t: TypeMention, base: TypeLink, expect: true},
		{t: TypeNote, base: TypeActivity, expect: false},
		{t: TypeActivity, base: TypeCreate, expect: false},
		{t: TypeLink, base: TypeObject, expect: false},
	}

	for _, test := range tests {
		require.Equal(t, test.expect, IsOrExtends(test.t, test.base),
			"IsOrExtends(%s, %s)", test.t, test.base)
	}
}

func TestTypePropertyIsOrExtends(t *testing.T) {
	t.Run("Activity", func(t *testing.T) {
		p := NewTypeProperty(TypeAnnounce)

		require.True(t, p.IsActivity())
		require.False(t, p.IsActor())
		require.True(t, p.IsOrExtends(TypeActivity))
		require.False(t, p.IsOrExtends(TypeCollection))
	})

	t.Run("Actor", func(t *testing.T) {
		p := NewTypeProperty(TypeService)

		require.True(t, p.IsActor())
		require.False(t, p.IsActivity())
	})

	t.Run("Multiple types", func(t *testing.T) {
		p := NewTypeProperty(TypeNote, TypeOrderedCollection)

		require.True(t, p.IsOrExtends(TypeCollection))
		require.False(t, p.IsActivity())
	})

	t.Run("Nil property", func(t *testing.T) {
		var p *TypeProperty

		require.False(t, p.IsActivity())
		require.False(t, p.IsActor())
		require.False(t, p.IsOrExtends(TypeObject))
	})
}
