/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keys

// Attribute names every row carries in addition to its domain fields.
const (
	AttrPK         = "PK"
	AttrSK         = "SK"
	AttrEntityType = "EntityType"
)

// IsReservedAttribute reports whether name is one of the key or type attributes.
func IsReservedAttribute(name string) bool {
	return name == AttrPK || name == AttrSK || name == AttrEntityType
}
