package types

import "errors"

// Sentinel errors for catalog operations.
var (
	// ErrCategoryNotFound indicates a category id does not resolve.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCollectionNotFound indicates a collection id does not resolve.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrAttributeGroupNotFound indicates an attribute group id does not resolve.
	ErrAttributeGroupNotFound = errors.New("attribute group not found")

	// ErrAttributeNotFound indicates an attribute id does not resolve.
	ErrAttributeNotFound = errors.New("attribute not found")

	// ErrUnitNotFound indicates a unit id does not resolve.
	ErrUnitNotFound = errors.New("unit not found")

	// ErrCategoryCycle indicates a parent assignment would make a category its own ancestor.
	ErrCategoryCycle = errors.New("category parent would create a cycle")

	// ErrAttributeInUse indicates an attribute is still referenced and cannot be deleted.
	ErrAttributeInUse = errors.New("attribute is still referenced")

	// ErrDuplicateCode indicates a unique code is already taken.
	ErrDuplicateCode = errors.New("code already exists")

	// ErrDuplicateName indicates a unique name is already taken.
	ErrDuplicateName = errors.New("name already exists")

	// ErrInvalidID indicates a malformed identifier.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrTooManyRules indicates a collection exceeds MaxRulesPerCollection.
	ErrTooManyRules = errors.New("too many rules")

	// ErrInvalidInput indicates a write request failed validation.
	ErrInvalidInput = errors.New("invalid input")
)

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrCollectionNotFound) ||
		errors.Is(err, ErrAttributeGroupNotFound) ||
		errors.Is(err, ErrAttributeNotFound) ||
		errors.Is(err, ErrUnitNotFound)
}
