/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vocab

// typeHierarchy maps a type to the type it extends, following the
// ActivityStreams vocabulary. Types not present extend nothing.
var typeHierarchy = map[Type]Type{
	TypeAccept:                TypeActivity,
	TypeAdd:                   TypeActivity,
	TypeAnnounce:              TypeActivity,
	TypeBlock:                 TypeIgnore,
	TypeCreate:                TypeActivity,
	TypeDelete:                TypeActivity,
	TypeFollow:                TypeActivity,
	TypeIgnore:                TypeActivity,
	TypeInvite:                TypeOffer,
	TypeJoin:                  TypeActivity,
	TypeLeave:                 TypeActivity,
	TypeLike:                  TypeActivity,
	TypeOffer:                 TypeActivity,
	TypeReject:                TypeActivity,
	TypeRemove:                TypeActivity,
	TypeTentativeAccept:       TypeAccept,
	TypeTentativeReject:       TypeReject,
	TypeUndo:                  TypeActivity,
	TypeUpdate:                TypeActivity,
	TypeIntransitiveActivity:  TypeActivity,
	TypeActivity:              TypeObject,
	TypeCollection:            TypeObject,
	TypeOrderedCollection:     TypeCollection,
	TypeCollectionPage:        TypeCollection,
	TypeOrderedCollectionPage: TypeCollectionPage,
	TypeApplication:           TypeObject,
	TypeGroup:                 TypeObject,
	TypeOrganization:          TypeObject,
	TypePerson:                TypeObject,
	TypeService:               TypeObject,
	TypeArticle:               TypeObject,
	TypeDocument:              TypeObject,
	TypeEvent:                 TypeObject,
	TypeImage:                 TypeDocument,
	TypeNote:                  TypeObject,
	TypePage:                  TypeDocument,
	TypeTombstone:             TypeObject,
	TypeVideo:                 TypeDocument,
	TypeMention:               TypeLink,
}

var actorTypes = map[Type]bool{
	TypeApplication:  true,
	TypeGroup:        true,
	TypeOrganization: true,
	TypePerson:       true,
	TypeService:      true,
}

// IsOrExtends returns true if the given type is the base type or extends
// from it, directly or transitively.
func IsOrExtends(t, base Type) bool {
	for {
		if t == base {
			return true
		}

		parent, ok := typeHierarchy[t]
		if !ok {
			return false
		}

		t = parent
	}
}

// IsActivityType returns true if the given type is or extends 'Activity'.
func IsActivityType(t Type) bool {
	return IsOrExtends(t, TypeActivity)
}

// IsActorType returns true if the given type is one of the actor types.
func IsActorType(t Type) bool {
	return actorTypes[t]
}

// IsCollectionType returns true if the given type is or extends 'Collection'.
func IsCollectionType(t Type) bool {
	return IsOrExtends(t, TypeCollection)
}

// IsActivity returns true if any of the types in the property is or
// extends 'Activity'.
func (p *TypeProperty) IsActivity() bool {
	if p == nil {
		return false
	}

	for _, t := range p.types {
		if IsActivityType(t) {
			return true
		}
	}

	return false
}

// IsActor returns true if any of the types in the property is an actor type.
func (p *TypeProperty) IsActor() bool {
	if p == nil {
		return false
	}

	for _, t := range p.types {
		if IsActorType(t) {
			return true
		}
	}

	return false
}

// IsOrExtends returns true if any of the types in the property is the given
// type or extends from it.
func (p *TypeProperty) IsOrExtends(base Type) bool {
	if p == nil {
		return false
	}

	for _, t := range p.types {
		if IsOrExtends(t, base) {
			return true
		}
	}

	return false
}
