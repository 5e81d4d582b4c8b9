/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vocab

import (
	"encoding/json"
	"net/url"
)

// ObjectProperty defines a property that holds one or more values, where each
// value may be a simple IRI or an embedded object such as a 'Note', an
// 'Activity', etc.
type ObjectProperty struct {
	values []*ObjectPropertyValue
}

// NewObjectProperty returns a new 'object' property with the given options.
func NewObjectProperty(opts ...Opt) *ObjectProperty {
	options := NewOptions(opts...)

	p := &ObjectProperty{}

	for _, iri := range options.Iris {
		p.values = append(p.values, &ObjectPropertyValue{iri: NewURLProperty(iri)})
	}

	for _, obj := range options.Objects {
		p.values = append(p.values, &ObjectPropertyValue{obj: obj})
	}

	for _, activity := range options.Activities {
		p.values = append(p.values, &ObjectPropertyValue{activity: activity})
	}

	if len(p.values) == 0 {
		return nil
	}

	return p
}

// Values returns all of the values in the property.
func (p *ObjectProperty) Values() []*ObjectPropertyValue {
	if p == nil {
		return nil
	}

	return p.values
}

// IRI returns the IRI of the first value or nil if the first value
// is not a simple IRI.
func (p *ObjectProperty) IRI() *url.URL {
	v := p.firstValue()
	if v == nil {
		return nil
	}

	return v.IRI()
}

// Object returns the embedded object of the first value or nil if the
// first value is not an embedded object.
func (p *ObjectProperty) Object() *ObjectType {
	v := p.firstValue()
	if v == nil {
		return nil
	}

	return v.Object()
}

// Activity returns the embedded activity of the first value or nil if the
// first value is not an embedded activity.
func (p *ObjectProperty) Activity() *ActivityType {
	v := p.firstValue()
	if v == nil {
		return nil
	}

	return v.Activity()
}

// Type returns the type of the first value. If the value is an IRI then
// nil is returned.
func (p *ObjectProperty) Type() *TypeProperty {
	v := p.firstValue()
	if v == nil {
		return nil
	}

	return v.Type()
}

// IDs returns the IDs of all values. A simple IRI contributes itself; an
// embedded object contributes its 'id'. Values without an ID are skipped.
func (p *ObjectProperty) IDs() []*url.URL {
	if p == nil {
		return nil
	}

	var ids []*url.URL

	for _, v := range p.values {
		if id := v.ID(); id != nil {
			ids = append(ids, id)
		}
	}

	return ids
}

func (p *ObjectProperty) firstValue() *ObjectPropertyValue {
	if p == nil || len(p.values) == 0 {
		return nil
	}

	return p.values[0]
}

// MarshalJSON marshals the 'object' property.
func (p *ObjectProperty) MarshalJSON() ([]byte, error) {
	if len(p.values) == 1 {
		return json.Marshal(p.values[0])
	}

	return json.Marshal(p.values)
}

// UnmarshalJSON unmarshals the 'object' property.
func (p *ObjectProperty) UnmarshalJSON(bytes []byte) error {
	if len(bytes) == 0 || string(bytes) == "null" {
		return nil
	}

	var raws []json.RawMessage

	if err := json.Unmarshal(bytes, &raws); err != nil {
		raws = []json.RawMessage{bytes}
	}

	values := make([]*ObjectPropertyValue, len(raws))

	for i, raw := range raws {
		v := &ObjectPropertyValue{}

		if err := json.Unmarshal(raw, v); err != nil {
			return err
		}

		values[i] = v
	}

	p.values = values

	return nil
}

// ObjectPropertyValue holds a single value of an 'object' property.
type ObjectPropertyValue struct {
	iri      *URLProperty
	obj      *ObjectType
	activity *ActivityType
}

// NewObjectValue returns a value holding an embedded object.
func NewObjectValue(obj *ObjectType) *ObjectPropertyValue {
	return &ObjectPropertyValue{obj: obj}
}

// NewIRIValue returns a value holding a simple IRI.
func NewIRIValue(iri *url.URL) *ObjectPropertyValue {
	return &ObjectPropertyValue{iri: NewURLProperty(iri)}
}

// NewActivityValue returns a value holding an embedded activity.
func NewActivityValue(activity *ActivityType) *ObjectPropertyValue {
	return &ObjectPropertyValue{activity: activity}
}

// IRI returns the IRI or nil if the value is an embedded object.
func (v *ObjectPropertyValue) IRI() *url.URL {
	if v == nil {
		return nil
	}

	return v.iri.URL()
}

// Object returns the embedded object or nil.
func (v *ObjectPropertyValue) Object() *ObjectType {
	if v == nil {
		return nil
	}

	return v.obj
}

// Activity returns the embedded activity or nil.
func (v *ObjectPropertyValue) Activity() *ActivityType {
	if v == nil {
		return nil
	}

	return v.activity
}

// Type returns the type of the embedded value or nil if the value is an IRI.
func (v *ObjectPropertyValue) Type() *TypeProperty {
	switch {
	case v == nil:
		return nil
	case v.activity != nil:
		return v.activity.Type()
	case v.obj != nil:
		return v.obj.Type()
	default:
		return nil
	}
}

// ID returns the IRI of the value: a simple IRI contributes itself and an
// embedded object contributes its 'id' property.
func (v *ObjectPropertyValue) ID() *url.URL {
	switch {
	case v == nil:
		return nil
	case v.iri != nil:
		return v.iri.URL()
	case v.activity != nil:
		return v.activity.ID().URL()
	case v.obj != nil:
		return v.obj.ID().URL()
	default:
		return nil
	}
}

// MarshalJSON marshals the value.
func (v *ObjectPropertyValue) MarshalJSON() ([]byte, error) {
	switch {
	case v.iri != nil:
		return json.Marshal(v.iri)
	case v.activity != nil:
		return json.Marshal(v.activity)
	case v.obj != nil:
		return json.Marshal(v.obj)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON unmarshals the value.
func (v *ObjectPropertyValue) UnmarshalJSON(bytes []byte) error {
	iri := &URLProperty{}

	err := json.Unmarshal(bytes, iri)
	if err == nil {
		v.iri = iri

		return nil
	}

	obj := &ObjectType{}

	err = json.Unmarshal(bytes, obj)
	if err != nil {
		return err
	}

	if obj.Type().IsActivity() {
		activity := &ActivityType{}

		err = json.Unmarshal(bytes, activity)
		if err != nil {
			return err
		}

		v.activity = activity

		return nil
	}

	v.obj = obj

	return nil
}
