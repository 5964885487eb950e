package catalog

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/rules"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

// catalogValidate checks write inputs. Initialized in init() with the custom
// attribute code rule.
var catalogValidate *validator.Validate

func init() {
	catalogValidate = validator.New()
	_ = catalogValidate.RegisterValidation("attrcode", validateAttributeCode)
}

var attributeCodePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// validateAttributeCode accepts lowercase snake_case codes that rules can
// address as a bare reference. A code equal to a product field name would be
// shadowed by that field, so those are rejected.
func validateAttributeCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if !attributeCodePattern.MatchString(code) {
		return false
	}
	return rules.FieldFor(code) == rules.AttributesField+"."+code
}

// validateInput runs struct validation and wraps failures in types.ErrInvalidInput.
func validateInput(v any) error {
	if err := catalogValidate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalidInput, err)
	}
	return nil
}

// CreateCategoryInput is the request to create a category.
type CreateCategoryInput struct {
	Name       string              `json:"name" validate:"required,max=200"`
	ParentID   *types.CategoryID   `json:"parent_id,omitempty" validate:"omitempty,uuid"`
	Attributes []types.AttributeID `json:"attributes" validate:"max=500,dive,uuid"`
}

// CreateUnitInput is the request to create a measurement unit.
type CreateUnitInput struct {
	Name   string `json:"name" validate:"required,max=100"`
	Symbol string `json:"symbol" validate:"required,max=20"`
}

// CreateAttributeInput is the request to create an attribute.
type CreateAttributeInput struct {
	Code     string              `json:"code" validate:"required,max=64,attrcode"`
	Name     string              `json:"name" validate:"required,max=200"`
	Type     types.AttributeType `json:"type" validate:"required,oneof=text number select multiselect boolean date"`
	Options  []string            `json:"options,omitempty" validate:"max=500,dive,required,max=200"`
	Required bool                `json:"required"`
	UnitID   *types.UnitID       `json:"unit_id,omitempty" validate:"omitempty,uuid"`
}

// CreateAttributeGroupInput is the request to create an attribute group.
type CreateAttributeGroupInput struct {
	Code       string                  `json:"code" validate:"required,max=64"`
	Name       string                  `json:"name" validate:"required,max=200"`
	ParentID   *types.AttributeGroupID `json:"parent_id,omitempty" validate:"omitempty,uuid"`
	GroupOrder int                     `json:"group_order"`
	Attributes []types.AttributeID     `json:"attributes" validate:"max=500,dive,uuid"`
}

// replaceAttributesInput validates attribute id lists for full-replace writes.
type replaceAttributesInput struct {
	Attributes []types.AttributeID `validate:"max=500,dive,uuid"`
}

// dedupe drops repeated ids, keeping first occurrences in order.
func dedupe(ids []types.AttributeID) []types.AttributeID {
	seen := make(map[types.AttributeID]struct{}, len(ids))
	out := make([]types.AttributeID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
