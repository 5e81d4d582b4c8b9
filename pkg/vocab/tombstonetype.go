/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vocab

import (
	"time"
)

// TombstoneType defines a 'Tombstone' object, which replaces a deleted
// object while preserving its ID.
type TombstoneType struct {
	*ObjectType

	tombstone *tombstoneType
}

type tombstoneType struct {
	FormerType *TypeProperty `json:"formerType,omitempty"`
	Deleted    *time.Time    `json:"deleted,omitempty"`
}

// NewTombstone returns a new 'Tombstone' object.
func NewTombstone(opts ...Opt) *TombstoneType {
	options := NewOptions(opts...)

	return &TombstoneType{
		ObjectType: NewObject(
			WithContext(options.Context...),
			WithID(options.ID),
			WithType(TypeTombstone),
			WithPublishedTime(options.Published),
			WithUpdatedTime(options.Updated),
		),
		tombstone: &tombstoneType{
			FormerType: NewTypeProperty(options.FormerTypes...),
			Deleted:    options.Deleted,
		},
	}
}

// FormerType returns the type(s) that the replaced object used to have.
func (t *TombstoneType) FormerType() *TypeProperty {
	return t.tombstone.FormerType
}

// Deleted returns the time at which the object was deleted.
func (t *TombstoneType) Deleted() *time.Time {
	return t.tombstone.Deleted
}

// MarshalJSON marshals the tombstone.
func (t *TombstoneType) MarshalJSON() ([]byte, error) {
	return MarshalJSON(t.ObjectType, t.tombstone)
}

// UnmarshalJSON unmarshals the tombstone.
func (t *TombstoneType) UnmarshalJSON(bytes []byte) error {
	t.ObjectType = NewObject()
	t.tombstone = &tombstoneType{}

	return UnmarshalJSON(bytes, t.ObjectType, t.tombstone)
}
