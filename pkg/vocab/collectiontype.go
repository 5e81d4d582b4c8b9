/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vocab

import (
	"net/url"
)

// CollectionType defines a 'Collection' type.
type CollectionType struct {
	*ObjectType

	coll *collectionType
}

type collectionType struct {
	Current    *URLProperty      `json:"current,omitempty"`
	First      *URLProperty      `json:"first,omitempty"`
	Last       *URLProperty      `json:"last,omitempty"`
	PartOf     *URLProperty      `json:"partOf,omitempty"`
	Next       *URLProperty      `json:"next,omitempty"`
	Prev       *URLProperty      `json:"prev,omitempty"`
	TotalItems int               `json:"totalItems,omitempty"`
	Items      []*ObjectProperty `json:"items,omitempty"`
}

// NewCollection returns a new 'Collection'.
func NewCollection(items []*ObjectProperty, opts ...Opt) *CollectionType {
	options := NewOptions(opts...)

	totalItems := options.TotalItems
	if totalItems == 0 {
		totalItems = len(items)
	}

	return &CollectionType{
		ObjectType: NewObject(
			WithContext(options.Context...),
			WithID(options.ID),
			WithType(TypeCollection),
		),
		coll: &collectionType{
			Current:    NewURLProperty(options.Current),
			First:      NewURLProperty(options.First),
			Last:       NewURLProperty(options.Last),
			PartOf:     NewURLProperty(options.PartOf),
			Next:       NewURLProperty(options.Next),
			Prev:       NewURLProperty(options.Prev),
			TotalItems: totalItems,
			Items:      items,
		},
	}
}

// TotalItems returns the total number of items in the collection.
func (t *CollectionType) TotalItems() int {
	return t.coll.TotalItems
}

// Items returns the items in the collection.
func (t *CollectionType) Items() []*ObjectProperty {
	return t.coll.Items
}

// SetItems sets the items in the collection.
func (t *CollectionType) SetItems(items []*ObjectProperty) {
	t.coll.Items = items
	t.coll.TotalItems = len(items)
}

// Current returns the IRI of the current page.
func (t *CollectionType) Current() *url.URL {
	return t.coll.Current.URL()
}

// First returns the IRI of the first page.
func (t *CollectionType) First() *url.URL {
	return t.coll.First.URL()
}

// Last returns the IRI of the last page.
func (t *CollectionType) Last() *url.URL {
	return t.coll.Last.URL()
}

// PartOf returns the IRI of the collection that this page belongs to.
func (t *CollectionType) PartOf() *url.URL {
	return t.coll.PartOf.URL()
}

// Next returns the IRI of the next page.
func (t *CollectionType) Next() *url.URL {
	return t.coll.Next.URL()
}

// Prev returns the IRI of the previous page.
func (t *CollectionType) Prev() *url.URL {
	return t.coll.Prev.URL()
}

// MarshalJSON marshals the collection.
func (t *CollectionType) MarshalJSON() ([]byte, error) {
	return MarshalJSON(t.ObjectType, t.coll)
}

// UnmarshalJSON unmarshals the collection.
func (t *CollectionType) UnmarshalJSON(bytes []byte) error {
	t.ObjectType = NewObject()
	t.coll = &collectionType{}

	return UnmarshalJSON(bytes, t.ObjectType, t.coll)
}

// NewCollectionPage returns a new 'CollectionPage'.
func NewCollectionPage(items []*ObjectProperty, opts ...Opt) *CollectionType {
	t := NewCollection(items, opts...)

	t.object.Type = NewTypeProperty(TypeCollectionPage)

	return t
}

// OrderedCollectionType defines an 'OrderedCollection' type.
type OrderedCollectionType struct {
	*CollectionType

	orderedColl *orderedCollectionType
}

type orderedCollectionType struct {
	OrderedItems []*ObjectProperty `json:"orderedItems,omitempty"`
}

// NewOrderedCollection returns a new 'OrderedCollection'.
func NewOrderedCollection(items []*ObjectProperty, opts ...Opt) *OrderedCollectionType {
	t := &OrderedCollectionType{
		CollectionType: NewCollection(nil, opts...),
		orderedColl:    &orderedCollectionType{OrderedItems: items},
	}

	t.object.Type = NewTypeProperty(TypeOrderedCollection)

	options := NewOptions(opts...)

	totalItems := options.TotalItems
	if totalItems == 0 {
		totalItems = len(items)
	}

	t.coll.TotalItems = totalItems

	return t
}

// NewOrderedCollectionPage returns a new 'OrderedCollectionPage'.
func NewOrderedCollectionPage(items []*ObjectProperty, opts ...Opt) *OrderedCollectionType {
	t := NewOrderedCollection(items, opts...)

	t.object.Type = NewTypeProperty(TypeOrderedCollectionPage)

	return t
}

// Items returns the items in the ordered collection.
func (t *OrderedCollectionType) Items() []*ObjectProperty {
	return t.orderedColl.OrderedItems
}

// SetItems sets the items in the ordered collection.
func (t *OrderedCollectionType) SetItems(items []*ObjectProperty) {
	t.orderedColl.OrderedItems = items
	t.coll.TotalItems = len(items)
}

// MarshalJSON marshals the ordered collection.
func (t *OrderedCollectionType) MarshalJSON() ([]byte, error) {
	return MarshalJSON(t.CollectionType, t.orderedColl)
}

// UnmarshalJSON unmarshals the ordered collection.
func (t *OrderedCollectionType) UnmarshalJSON(bytes []byte) error {
	t.CollectionType = &CollectionType{}
	t.orderedColl = &orderedCollectionType{}

	return UnmarshalJSON(bytes, t.CollectionType, t.orderedColl)
}
