package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/core/db"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

type unitRow struct {
	ID     string `db:"unit_id"`
	Name   string `db:"name"`
	Symbol string `db:"symbol"`
}

type attributeRow struct {
	ID       string         `db:"attribute_id"`
	Code     string         `db:"code"`
	Name     string         `db:"name"`
	Type     string         `db:"attribute_type"`
	Options  string         `db:"options"`
	Required bool           `db:"required"`
	UnitID   sql.NullString `db:"unit_id"`
}

func (r attributeRow) toAttribute() (types.Attribute, error) {
	a := types.Attribute{
		ID:       types.AttributeID(r.ID),
		Code:     r.Code,
		Name:     r.Name,
		Type:     types.AttributeType(r.Type),
		Required: r.Required,
		UnitID:   optional[types.UnitID](r.UnitID),
	}
	if r.Options != "" {
		if err := json.Unmarshal([]byte(r.Options), &a.Options); err != nil {
			return types.Attribute{}, fmt.Errorf("decode options of attribute %s: %w", r.ID, err)
		}
	}
	if len(a.Options) == 0 {
		a.Options = nil
	}
	return a, nil
}

func toAttributes(rows []attributeRow) ([]types.Attribute, error) {
	out := make([]types.Attribute, 0, len(rows))
	for _, r := range rows {
		a, err := r.toAttribute()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

type groupRow struct {
	ID         string         `db:"group_id"`
	ParentID   sql.NullString `db:"parent_id"`
	Code       string         `db:"code"`
	Name       string         `db:"name"`
	GroupOrder int            `db:"group_order"`
}

func (r groupRow) toGroup(attrs []types.AttributeID) types.AttributeGroup {
	if attrs == nil {
		attrs = []types.AttributeID{}
	}
	return types.AttributeGroup{
		ID:         types.AttributeGroupID(r.ID),
		ParentID:   optional[types.AttributeGroupID](r.ParentID),
		Code:       r.Code,
		Name:       r.Name,
		GroupOrder: r.GroupOrder,
		Attributes: attrs,
	}
}

type groupAttributeRow struct {
	GroupID     string `db:"group_id"`
	AttributeID string `db:"attribute_id"`
}

// CreateUnit inserts a measurement unit.
func (s *Store) CreateUnit(ctx context.Context, u *types.Unit) error {
	_, err := s.q.Exec(ctx, "create-unit", string(u.ID), u.Name, u.Symbol)
	return err
}

// GetUnits returns the units that exist among ids.
func (s *Store) GetUnits(ctx context.Context, ids []types.UnitID) ([]types.Unit, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []unitRow
	if err := s.q.SelectIn(ctx, "select-units-by-ids", &rows, strs(ids)); err != nil {
		return nil, err
	}
	out := make([]types.Unit, 0, len(rows))
	for _, r := range rows {
		out = append(out, types.Unit{ID: types.UnitID(r.ID), Name: r.Name, Symbol: r.Symbol})
	}
	return out, nil
}

// CreateAttribute inserts an attribute definition.
func (s *Store) CreateAttribute(ctx context.Context, a *types.Attribute) error {
	options := a.Options
	if options == nil {
		options = []string{}
	}
	encoded, err := json.Marshal(options)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	_, err = s.q.Exec(ctx, "create-attribute",
		string(a.ID), a.Code, a.Name, string(a.Type), string(encoded), a.Required, nullable(a.UnitID),
	)
	return err
}

// GetAttribute loads one attribute by id.
func (s *Store) GetAttribute(ctx context.Context, id types.AttributeID) (*types.Attribute, error) {
	var row attributeRow
	if err := s.q.Get(ctx, "get-attribute", &row, string(id)); err != nil {
		return nil, notFound(err, types.ErrAttributeNotFound)
	}
	a, err := row.toAttribute()
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAttributeByCode loads one attribute by its unique code.
func (s *Store) GetAttributeByCode(ctx context.Context, code string) (*types.Attribute, error) {
	var row attributeRow
	if err := s.q.Get(ctx, "get-attribute-by-code", &row, code); err != nil {
		return nil, notFound(err, types.ErrAttributeNotFound)
	}
	a, err := row.toAttribute()
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAttributes returns the attributes that exist among ids.
func (s *Store) GetAttributes(ctx context.Context, ids []types.AttributeID) ([]types.Attribute, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []attributeRow
	if err := s.q.SelectIn(ctx, "select-attributes-by-ids", &rows, strs(ids)); err != nil {
		return nil, err
	}
	return toAttributes(rows)
}

// ListAttributes loads every attribute ordered by code.
func (s *Store) ListAttributes(ctx context.Context) ([]types.Attribute, error) {
	var rows []attributeRow
	if err := s.q.Select(ctx, "list-attributes", &rows); err != nil {
		return nil, err
	}
	return toAttributes(rows)
}

// DeleteAttribute removes an attribute definition.
func (s *Store) DeleteAttribute(ctx context.Context, id types.AttributeID) error {
	res, err := s.q.Exec(ctx, "delete-attribute", string(id))
	if err != nil {
		return err
	}
	return requireAffected(res, types.ErrAttributeNotFound)
}

// AttributeReferenced counts category, group and rule references in one query.
// Rules may address an attribute by bare code or by its document path.
func (s *Store) AttributeReferenced(ctx context.Context, id types.AttributeID, code string) (bool, error) {
	var n int
	if err := s.q.Get(ctx, "count-attribute-references", &n,
		string(id), string(id), code, "attributes."+code,
	); err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListAttributeGroups loads every group with its attribute ids.
func (s *Store) ListAttributeGroups(ctx context.Context) ([]types.AttributeGroup, error) {
	var rows []groupRow
	if err := s.q.Select(ctx, "list-attribute-groups", &rows); err != nil {
		return nil, err
	}

	var links []groupAttributeRow
	if err := s.q.Select(ctx, "list-all-group-attributes", &links); err != nil {
		return nil, fmt.Errorf("list group attributes: %w", err)
	}
	byGroup := make(map[string][]types.AttributeID)
	for _, l := range links {
		byGroup[l.GroupID] = append(byGroup[l.GroupID], types.AttributeID(l.AttributeID))
	}

	out := make([]types.AttributeGroup, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toGroup(byGroup[r.ID]))
	}
	return out, nil
}

// GetAttributeGroup loads one group with its attribute ids.
func (s *Store) GetAttributeGroup(ctx context.Context, id types.AttributeGroupID) (*types.AttributeGroup, error) {
	var row groupRow
	if err := s.q.Get(ctx, "get-attribute-group", &row, string(id)); err != nil {
		return nil, notFound(err, types.ErrAttributeGroupNotFound)
	}
	var attrs []types.AttributeID
	if err := s.q.Select(ctx, "list-group-attributes", &attrs, string(id)); err != nil {
		return nil, fmt.Errorf("list group attributes: %w", err)
	}
	g := row.toGroup(attrs)
	return &g, nil
}

// CreateAttributeGroup inserts a group and its attribute list.
func (s *Store) CreateAttributeGroup(ctx context.Context, g *types.AttributeGroup) error {
	return s.q.InTx(ctx, func(tx *db.Tx) error {
		if _, err := tx.Exec(ctx, "create-attribute-group",
			string(g.ID), nullable(g.ParentID), g.Code, g.Name, g.GroupOrder, time.Now().UTC(),
		); err != nil {
			return err
		}
		return insertGroupAttributes(ctx, tx, g.ID, g.Attributes)
	})
}

// ReplaceGroupAttributes deletes and reinserts the group's attribute list.
func (s *Store) ReplaceGroupAttributes(ctx context.Context, id types.AttributeGroupID, attrs []types.AttributeID) error {
	// Existence is checked before the transaction opens: the pool may hold a
	// single connection.
	if _, err := s.GetAttributeGroup(ctx, id); err != nil {
		return err
	}
	return s.q.InTx(ctx, func(tx *db.Tx) error {
		if _, err := tx.Exec(ctx, "delete-group-attributes", string(id)); err != nil {
			return err
		}
		return insertGroupAttributes(ctx, tx, id, attrs)
	})
}

func insertGroupAttributes(ctx context.Context, tx *db.Tx, id types.AttributeGroupID, attrs []types.AttributeID) error {
	for i, a := range attrs {
		if _, err := tx.Exec(ctx, "insert-group-attribute", string(id), string(a), i); err != nil {
			return fmt.Errorf("insert group attribute %s: %w", a, err)
		}
	}
	return nil
}
