/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vocab

// Context defines the object context.
type Context string

const (
	// ContextActivityStreams is the ActivityStreams context.
	ContextActivityStreams Context = "https://www.w3.org/ns/activitystreams"
	// ContextSecurity is the security context.
	ContextSecurity Context = "https://w3id.org/security/v1"
)

const (
	// PublicIRI indicates that the object is public, i.e. it may be viewed by anyone.
	PublicIRI = "https://www.w3.org/ns/activitystreams#Public"
)

// Type indicates the type of the object.
type Type string

const (
	// TypeObject specifies the base 'Object' type.
	TypeObject Type = "Object"
	// TypeActivity specifies the base 'Activity' type.
	TypeActivity Type = "Activity"
	// TypeIntransitiveActivity specifies the 'IntransitiveActivity' type.
	TypeIntransitiveActivity Type = "IntransitiveActivity"

	// TypeCollection specifies the 'Collection' object type.
	TypeCollection Type = "Collection"
	// TypeOrderedCollection specifies the 'OrderedCollection' object type.
	TypeOrderedCollection Type = "OrderedCollection"
	// TypeCollectionPage specifies the 'CollectionPage' object type.
	TypeCollectionPage Type = "CollectionPage"
	// TypeOrderedCollectionPage specifies the 'OrderedCollectionPage' object type.
	TypeOrderedCollectionPage Type = "OrderedCollectionPage"

	// TypeApplication specifies the 'Application' actor type.
	TypeApplication Type = "Application"
	// TypeGroup specifies the 'Group' actor type.
	TypeGroup Type = "Group"
	// TypeOrganization specifies the 'Organization' actor type.
	TypeOrganization Type = "Organization"
	// TypePerson specifies the 'Person' actor type.
	TypePerson Type = "Person"
	// TypeService specifies the 'Service' actor type.
	TypeService Type = "Service"

	// TypeAccept specifies the 'Accept' activity type.
	TypeAccept Type = "Accept"
	// TypeAdd specifies the 'Add' activity type.
	TypeAdd Type = "Add"
	// TypeAnnounce specifies the 'Announce' activity type.
	TypeAnnounce Type = "Announce"
	// TypeBlock specifies the 'Block' activity type.
	TypeBlock Type = "Block"
	// TypeCreate specifies the 'Create' activity type.
	TypeCreate Type = "Create"
	// TypeDelete specifies the 'Delete' activity type.
	TypeDelete Type = "Delete"
	// TypeFollow specifies the 'Follow' activity type.
	TypeFollow Type = "Follow"
	// TypeIgnore specifies the 'Ignore' activity type.
	TypeIgnore Type = "Ignore"
	// TypeInvite specifies the 'Invite' activity type.
	TypeInvite Type = "Invite"
	// TypeJoin specifies the 'Join' activity type.
	TypeJoin Type = "Join"
	// TypeLeave specifies the 'Leave' activity type.
	TypeLeave Type = "Leave"
	// TypeLike specifies the 'Like' activity type.
	TypeLike Type = "Like"
	// TypeOffer specifies the 'Offer' activity type.
	TypeOffer Type = "Offer"
	// TypeReject specifies the 'Reject' activity type.
	TypeReject Type = "Reject"
	// TypeRemove specifies the 'Remove' activity type.
	TypeRemove Type = "Remove"
	// TypeTentativeAccept specifies the 'TentativeAccept' activity type.
	TypeTentativeAccept Type = "TentativeAccept"
	// TypeTentativeReject specifies the 'TentativeReject' activity type.
	TypeTentativeReject Type = "TentativeReject"
	// TypeUndo specifies the 'Undo' activity type.
	TypeUndo Type = "Undo"
	// TypeUpdate specifies the 'Update' activity type.
	TypeUpdate Type = "Update"

	// TypeArticle specifies the 'Article' object type.
	TypeArticle Type = "Article"
	// TypeDocument specifies the 'Document' object type.
	TypeDocument Type = "Document"
	// TypeEvent specifies the 'Event' object type.
	TypeEvent Type = "Event"
	// TypeImage specifies the 'Image' object type.
	TypeImage Type = "Image"
	// TypeNote specifies the 'Note' object type.
	TypeNote Type = "Note"
	// TypePage specifies the 'Page' object type.
	TypePage Type = "Page"
	// TypeTombstone specifies the 'Tombstone' object type.
	TypeTombstone Type = "Tombstone"
	// TypeVideo specifies the 'Video' object type.
	TypeVideo Type = "Video"

	// TypeLink specifies the 'Link' type.
	TypeLink Type = "Link"
	// TypeMention specifies the 'Mention' link type.
	TypeMention Type = "Mention"
)

const (
	propertyContext      = "@context"
	propertyID           = "id"
	propertyType         = "type"
	propertyTo           = "to"
	propertyBto          = "bto"
	propertyCC           = "cc"
	propertyBCC          = "bcc"
	propertyAudience     = "audience"
	propertyAttributedTo = "attributedTo"
	propertyInReplyTo    = "inReplyTo"
	propertyTag          = "tag"
	propertyLikes        = "likes"
	propertyShares       = "shares"
	propertyPublished    = "published"
	propertyUpdated      = "updated"
	propertyActor        = "actor"
	propertyObject       = "object"
	propertyTarget       = "target"
	propertyResult       = "result"
	propertyCurrent      = "current"
	propertyFirst        = "first"
	propertyLast         = "last"
	propertyNext         = "next"
	propertyPrev         = "prev"
	propertyPartOf       = "partOf"
	propertyItems        = "items"
	propertyOrderedItems = "orderedItems"
	propertyTotalItems   = "totalItems"
	propertyInbox        = "inbox"
	propertyOutbox       = "outbox"
	propertyFollowers    = "followers"
	propertyFollowing    = "following"
	propertyLiked        = "liked"
	propertyPublicKey    = "publicKey"
	propertyEndpoints    = "endpoints"
	propertyPrefUsername = "preferredUsername"
	propertyFormerType   = "formerType"
	propertyDeleted      = "deleted"
)

func reservedProperties() []string {
	return []string{
		propertyContext,
		propertyID,
		propertyType,
		propertyTo,
		propertyBto,
		propertyCC,
		propertyBCC,
		propertyAudience,
		propertyAttributedTo,
		propertyInReplyTo,
		propertyTag,
		propertyLikes,
		propertyShares,
		propertyPublished,
		propertyUpdated,
		propertyActor,
		propertyObject,
		propertyTarget,
		propertyResult,
		propertyCurrent,
		propertyFirst,
		propertyLast,
		propertyNext,
		propertyPrev,
		propertyPartOf,
		propertyItems,
		propertyOrderedItems,
		propertyTotalItems,
		propertyInbox,
		propertyOutbox,
		propertyFollowers,
		propertyFollowing,
		propertyLiked,
		propertyPublicKey,
		propertyEndpoints,
		propertyPrefUsername,
		propertyFormerType,
		propertyDeleted,
	}
}

// Document defines a JSON document as a map.
type Document map[string]interface{}

// MergeWith merges the document with the given document. Any duplicate fields
// in the given document are ignored.
func (doc Document) MergeWith(other Document) {
	for k, v := range other {
		if _, ok := doc[k]; !ok {
			doc[k] = v
		}
	}
}
