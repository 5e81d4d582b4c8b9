/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vocab

import (
	"encoding/json"
)

// ContextProperty holds one or more contexts.
type ContextProperty struct {
	contexts []Context
}

// NewContextProperty returns a new '@context' property. Nil is returned if no context was provided.
func NewContextProperty(context ...Context) *ContextProperty {
	if len(context) == 0 {
		return nil
	}

	return &ContextProperty{contexts: context}
}

// Contexts returns all of the contexts defined in the property.
func (p *ContextProperty) Contexts() []Context {
	if p == nil {
		return nil
	}

	return p.contexts
}

// Contains returns true if the property contains all of the given contexts.
func (p *ContextProperty) Contains(contexts ...Context) bool {
	if p == nil || len(contexts) == 0 {
		return false
	}

	for _, c := range contexts {
		if !p.contains(c) {
			return false
		}
	}

	return true
}

// ContainsAny returns true if the property contains any of the given contexts.
func (p *ContextProperty) ContainsAny(contexts ...Context) bool {
	if p == nil {
		return false
	}

	for _, c := range contexts {
		if p.contains(c) {
			return true
		}
	}

	return false
}

// String returns the string representation of the context property.
func (p *ContextProperty) String() string {
	if p == nil || len(p.contexts) == 0 {
		return ""
	}

	return string(p.contexts[0])
}

// MarshalJSON marshals the context property.
func (p *ContextProperty) MarshalJSON() ([]byte, error) {
	if len(p.contexts) == 1 {
		return json.Marshal(p.contexts[0])
	}

	return json.Marshal(p.contexts)
}

// UnmarshalJSON unmarshals the context property.
func (p *ContextProperty) UnmarshalJSON(bytes []byte) error {
	var ctx Context

	err := json.Unmarshal(bytes, &ctx)
	if err == nil {
		p.contexts = []Context{ctx}

		return nil
	}

	var contexts []Context

	err = json.Unmarshal(bytes, &contexts)
	if err != nil {
		// The context may contain embedded documents. Only the
		// string entries are retained.
		var raw []interface{}

		if e := json.Unmarshal(bytes, &raw); e != nil {
			return err
		}

		for _, entry := range raw {
			if s, ok := entry.(string); ok {
				contexts = append(contexts, Context(s))
			}
		}
	}

	p.contexts = contexts

	return nil
}

func (p *ContextProperty) contains(c Context) bool {
	for _, pc := range p.contexts {
		if pc == c {
			return true
		}
	}

	return false
}
