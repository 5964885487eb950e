package types

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID generates a UUIDv7 identifier string.
// Time-ordered IDs keep sequential inserts clustered in B-tree pages.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewCategoryID generates a category identifier.
func NewCategoryID() CategoryID { return CategoryID(NewID()) }

// NewAttributeID generates an attribute identifier.
func NewAttributeID() AttributeID { return AttributeID(NewID()) }

// NewAttributeGroupID generates an attribute group identifier.
func NewAttributeGroupID() AttributeGroupID { return AttributeGroupID(NewID()) }

// NewUnitID generates a unit identifier.
func NewUnitID() UnitID { return UnitID(NewID()) }

// NewCollectionID generates a collection identifier.
func NewCollectionID() CollectionID { return CollectionID(NewID()) }

// NewProductID generates a product identifier.
func NewProductID() ProductID { return ProductID(NewID()) }

// IsValidID reports whether s is an admissible identifier.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// ParseCategoryID validates and converts a string to CategoryID.
// Rejects malformed UUIDs to prevent invalid IDs from entering the system.
func ParseCategoryID(s string) (CategoryID, error) {
	if !IsValidID(s) {
		return "", fmt.Errorf("%w: category %q", ErrInvalidID, s)
	}
	return CategoryID(s), nil
}

// ParseAttributeID validates and converts a string to AttributeID.
func ParseAttributeID(s string) (AttributeID, error) {
	if !IsValidID(s) {
		return "", fmt.Errorf("%w: attribute %q", ErrInvalidID, s)
	}
	return AttributeID(s), nil
}

// ParseCollectionID validates and converts a string to CollectionID.
func ParseCollectionID(s string) (CollectionID, error) {
	if !IsValidID(s) {
		return "", fmt.Errorf("%w: collection %q", ErrInvalidID, s)
	}
	return CollectionID(s), nil
}
