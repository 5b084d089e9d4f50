package testmodels

import (
	"github.com/go-openapi/strfmt"
	"github.com/suparena/entityquery/registry"
)

// RatingEvent is one rating change recorded for a player. Identified by a numeric id.
type RatingEvent struct {

	// Unique, monotonically assigned identifier of the event.
	// Required: true
	ID int64 `json:"id" cql:"id" dynamodbav:"id"`

	// Identifier of the rating system the event belongs to.
	// Required: true
	RatingSystemID string `json:"ratingSystemId" cql:"rating_system_id" dynamodbav:"ratingSystemId"`

	// Player whose rating changed.
	// Required: true
	PlayerID string `json:"playerId" cql:"player_id" dynamodbav:"playerId"`

	// Rating after the event.
	Rating float64 `json:"rating" cql:"rating" dynamodbav:"rating"`

	// Timestamp when the event was recorded.
	// Format: date-time
	CreatedAt strfmt.DateTime `json:"createdAt" cql:"created_at" dynamodbav:"createdAt"`
}

// Player is keyed by a string id, so its ordering token differs from its natural order.
type Player struct {

	// Unique identifier of the player.
	// Required: true
	ID string `json:"id" cql:"id" dynamodbav:"id"`

	// Display name.
	Name string `json:"name" cql:"name" dynamodbav:"name"`

	// site Url
	SiteURL string `json:"siteUrl,omitempty" cql:"site_url" dynamodbav:"siteUrl,omitempty"`
}

// PlayerSummary is a projection of Player.
type PlayerSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AuditEntry has no identifier column and cannot be paginated past its first page.
type AuditEntry struct {
	Message string `json:"message" cql:"message" dynamodbav:"message"`
}

func init() {
	registry.RegisterEntity(registry.Entity[RatingEvent]{
		Name:  "RatingEvent",
		Table: "rating_events",
		ID:    registry.SingleColumn("id", func(e RatingEvent) int64 { return e.ID }),
	})
	registry.RegisterEntity(registry.Entity[Player]{
		Name:  "Player",
		Table: "players",
		ID:    registry.SingleColumn("id", func(p Player) string { return p.ID }),
	})
	registry.RegisterEntity(registry.Entity[AuditEntry]{
		Name:  "AuditEntry",
		Table: "audit",
	})
}
