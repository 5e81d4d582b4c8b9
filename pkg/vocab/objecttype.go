/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vocab

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// ObjectType defines an 'object'.
type ObjectType struct {
	object     *objectType
	additional Document
}

// NewObject returns a new 'object'.
func NewObject(opts ...Opt) *ObjectType {
	options := NewOptions(opts...)

	return &ObjectType{
		object: &objectType{
			Context:      NewContextProperty(options.Context...),
			ID:           NewURLProperty(options.ID),
			Type:         NewTypeProperty(options.Types...),
			To:           NewURLCollectionProperty(options.To...),
			Bto:          NewURLCollectionProperty(options.Bto...),
			CC:           NewURLCollectionProperty(options.CC...),
			BCC:          NewURLCollectionProperty(options.BCC...),
			Audience:     NewURLCollectionProperty(options.Audience...),
			AttributedTo: NewURLCollectionProperty(options.AttributedTo...),
			InReplyTo:    options.InReplyTo,
			Tag:          options.Tag,
			Published:    options.Published,
			Updated:      options.Updated,
		},
	}
}

// NewObjectWithDocument returns a new object initialized with the given document.
func NewObjectWithDocument(doc Document, opts ...Opt) (*ObjectType, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil document")
	}

	bytes, err := MarshalJSON(NewObject(opts...), doc)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	obj := &ObjectType{}

	err = json.Unmarshal(bytes, obj)
	if err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	return obj, nil
}

type objectType struct {
	Context      *ContextProperty       `json:"@context,omitempty"`
	ID           *URLProperty           `json:"id,omitempty"`
	Type         *TypeProperty          `json:"type,omitempty"`
	To           *URLCollectionProperty `json:"to,omitempty"`
	Bto          *URLCollectionProperty `json:"bto,omitempty"`
	CC           *URLCollectionProperty `json:"cc,omitempty"`
	BCC          *URLCollectionProperty `json:"bcc,omitempty"`
	Audience     *URLCollectionProperty `json:"audience,omitempty"`
	AttributedTo *URLCollectionProperty `json:"attributedTo,omitempty"`
	InReplyTo    *ObjectProperty        `json:"inReplyTo,omitempty"`
	Tag          *ObjectProperty        `json:"tag,omitempty"`
	Likes        *URLProperty           `json:"likes,omitempty"`
	Shares       *URLProperty           `json:"shares,omitempty"`
	Published    *time.Time             `json:"published,omitempty"`
	Updated      *time.Time             `json:"updated,omitempty"`
}

// Context returns the context property.
func (t *ObjectType) Context() *ContextProperty {
	return t.object.Context
}

// SetContext sets the object's context.
func (t *ObjectType) SetContext(context ...Context) {
	t.object.Context = NewContextProperty(context...)
}

// ID returns the object's ID.
func (t *ObjectType) ID() *URLProperty {
	if t == nil {
		return nil
	}

	return t.object.ID
}

// SetID sets the object's ID.
func (t *ObjectType) SetID(id *url.URL) {
	t.object.ID = NewURLProperty(id)
}

// Type returns the type of the object.
func (t *ObjectType) Type() *TypeProperty {
	if t == nil {
		return nil
	}

	return t.object.Type
}

// SetType sets the type of the object.
func (t *ObjectType) SetType(types ...Type) {
	t.object.Type = NewTypeProperty(types...)
}

// To returns a set of URLs to which the object should be sent.
func (t *ObjectType) To() []*url.URL {
	return t.object.To.URLs()
}

// SetTo sets the 'to' property. An empty list removes the property.
func (t *ObjectType) SetTo(to ...*url.URL) {
	t.object.To = NewURLCollectionProperty(to...)
}

// Bto returns the hidden 'bto' recipients.
func (t *ObjectType) Bto() []*url.URL {
	return t.object.Bto.URLs()
}

// SetBto sets the 'bto' property. An empty list removes the property.
func (t *ObjectType) SetBto(bto ...*url.URL) {
	t.object.Bto = NewURLCollectionProperty(bto...)
}

// CC returns the 'cc' recipients.
func (t *ObjectType) CC() []*url.URL {
	return t.object.CC.URLs()
}

// SetCC sets the 'cc' property. An empty list removes the property.
func (t *ObjectType) SetCC(cc ...*url.URL) {
	t.object.CC = NewURLCollectionProperty(cc...)
}

// BCC returns the hidden 'bcc' recipients.
func (t *ObjectType) BCC() []*url.URL {
	return t.object.BCC.URLs()
}

// SetBCC sets the 'bcc' property. An empty list removes the property.
func (t *ObjectType) SetBCC(bcc ...*url.URL) {
	t.object.BCC = NewURLCollectionProperty(bcc...)
}

// Audience returns the 'audience' recipients.
func (t *ObjectType) Audience() []*url.URL {
	return t.object.Audience.URLs()
}

// SetAudience sets the 'audience' property. An empty list removes the property.
func (t *ObjectType) SetAudience(audience ...*url.URL) {
	t.object.Audience = NewURLCollectionProperty(audience...)
}

// AttributedTo returns the set of URLs of the entities to which the
// object is attributed.
func (t *ObjectType) AttributedTo() []*url.URL {
	return t.object.AttributedTo.URLs()
}

// SetAttributedTo sets the 'attributedTo' property.
func (t *ObjectType) SetAttributedTo(iris ...*url.URL) {
	t.object.AttributedTo = NewURLCollectionProperty(iris...)
}

// InReplyTo returns the object(s) that this object is a reply to.
func (t *ObjectType) InReplyTo() *ObjectProperty {
	return t.object.InReplyTo
}

// Tag returns the object's tags.
func (t *ObjectType) Tag() *ObjectProperty {
	return t.object.Tag
}

// Likes returns the IRI of the object's 'likes' collection.
func (t *ObjectType) Likes() *url.URL {
	return t.object.Likes.URL()
}

// SetLikes sets the IRI of the object's 'likes' collection.
func (t *ObjectType) SetLikes(iri *url.URL) {
	t.object.Likes = NewURLProperty(iri)
}

// Shares returns the IRI of the object's 'shares' collection.
func (t *ObjectType) Shares() *url.URL {
	return t.object.Shares.URL()
}

// SetShares sets the IRI of the object's 'shares' collection.
func (t *ObjectType) SetShares(iri *url.URL) {
	t.object.Shares = NewURLProperty(iri)
}

// Published returns the time when the object was published.
func (t *ObjectType) Published() *time.Time {
	return t.object.Published
}

// SetPublished sets the time when the object was published.
func (t *ObjectType) SetPublished(published *time.Time) {
	t.object.Published = published
}

// Updated returns the time when the object was last updated.
func (t *ObjectType) Updated() *time.Time {
	return t.object.Updated
}

// SetUpdated sets the time when the object was last updated.
func (t *ObjectType) SetUpdated(updated *time.Time) {
	t.object.Updated = updated
}

// Value returns the value of a property that is not handled by a typed field.
func (t *ObjectType) Value(key string) (interface{}, bool) {
	v, ok := t.additional[key]

	return v, ok
}

// MarshalJSON marshals the object.
func (t *ObjectType) MarshalJSON() ([]byte, error) {
	return MarshalJSON(t.object, t.additional)
}

// UnmarshalJSON unmarshals the object.
func (t *ObjectType) UnmarshalJSON(bytes []byte) error {
	header := &objectType{}

	err := json.Unmarshal(bytes, header)
	if err != nil {
		return err
	}

	doc := make(Document)

	err = json.Unmarshal(bytes, &doc)
	if err != nil {
		return err
	}

	// Delete all of the reserved ActivityStreams fields.
	for _, prop := range reservedProperties() {
		delete(doc, prop)
	}

	t.object = header
	t.additional = doc

	return nil
}
