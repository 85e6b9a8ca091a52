package model

import "strings"

// EntityType is a logical partition of transform activity.
type EntityType string

const (
	EntityTypeHost    EntityType = "host"
	EntityTypeUser    EntityType = "user"
	EntityTypeService EntityType = "service"
	EntityTypeGeneric EntityType = "generic"
)

// AllEntityTypes returns the entity kinds in stable presentation order.
func AllEntityTypes() []EntityType {
	return []EntityType{EntityTypeHost, EntityTypeUser, EntityTypeService, EntityTypeGeneric}
}

// InferEntityType classifies a transform id by substring match. Transform ids
// are free text that embeds the entity kind somewhere in the name, so this is
// deliberately a loose contains-check rather than an exact or pattern match.
// Ids matching none of the known kinds fall through to generic.
func InferEntityType(transformID string) EntityType {
	switch {
	case strings.Contains(transformID, "host"):
		return EntityTypeHost
	case strings.Contains(transformID, "user"):
		return EntityTypeUser
	case strings.Contains(transformID, "service"):
		return EntityTypeService
	default:
		return EntityTypeGeneric
	}
}
