package schema

import (
	"context"

	"github.com/leapdb/leap/dialect/sql"
)

// MsSQL inspects Microsoft SQL Server through INFORMATION_SCHEMA and the
// sys catalog views.
type MsSQL struct{ *conn }

// Tables implements Inspector.
func (m *MsSQL) Tables(ctx context.Context) ([]*Table, error) {
	records, err := m.query(ctx, m.builder().
		Select("TABLE_NAME", "TABLE_SCHEMA").
		From("INFORMATION_SCHEMA.TABLES").
		Where("TABLE_SCHEMA", "=", m.schemaValue("SCHEMA_NAME()")).
		Where("TABLE_TYPE", "=", "BASE TABLE").
		OrderBy("TABLE_NAME", "ASC"))
	if err != nil {
		return nil, err
	}
	tables := make([]*Table, len(records))
	for i, r := range records {
		tables[i] = &Table{Name: r.text(0), Schema: r.text(1)}
	}
	return tables, nil
}

// Views implements Inspector.
func (m *MsSQL) Views(ctx context.Context) ([]*View, error) {
	records, err := m.query(ctx, m.builder().
		Select("TABLE_NAME", "VIEW_DEFINITION").
		From("INFORMATION_SCHEMA.VIEWS").
		Where("TABLE_SCHEMA", "=", m.schemaValue("SCHEMA_NAME()")).
		OrderBy("TABLE_NAME", "ASC"))
	if err != nil {
		return nil, err
	}
	return views(records), nil
}

// Fields implements Inspector.
func (m *MsSQL) Fields(ctx context.Context, table string) ([]*Column, error) {
	records, err := m.query(ctx, m.builder().
		Select("COLUMN_NAME", "DATA_TYPE", "IS_NULLABLE", "COLUMN_DEFAULT", "CHARACTER_MAXIMUM_LENGTH").
		From("INFORMATION_SCHEMA.COLUMNS").
		Where("TABLE_SCHEMA", "=", m.schemaValue("SCHEMA_NAME()")).
		Where("TABLE_NAME", "=", table).
		OrderBy("ORDINAL_POSITION", "ASC"))
	if err != nil {
		return nil, err
	}
	columns := make([]*Column, len(records))
	for i, r := range records {
		columns[i] = &Column{
			Name:     r.text(0),
			Type:     r.text(1),
			Nullable: r.flag(2),
			Default:  r.nullable(3),
			// -1 stands for MAX.
			Size: max(r.number(4), 0),
		}
	}
	return columns, nil
}

// object returns the OBJECT_ID expression of a table.
func (m *MsSQL) object(table string) *sql.Expression {
	name := table
	if m.schema != "" {
		name = m.schema + "." + table
	}
	return sql.Expr("OBJECT_ID(:name)", map[string]any{"name": name})
}

// Indexes implements Inspector.
func (m *MsSQL) Indexes(ctx context.Context, table string) ([]*Index, error) {
	records, err := m.query(ctx, m.builder().
		Select("i.name", "c.name", "i.is_unique", "i.is_primary_key").
		From("sys.indexes", "i").
		Join("INNER", "sys.index_columns", "ic").
		On("ic.object_id", "=", "i.object_id").
		On("ic.index_id", "=", "i.index_id").
		Join("INNER", "sys.columns", "c").
		On("c.object_id", "=", "ic.object_id").
		On("c.column_id", "=", "ic.column_id").
		Where("i.object_id", "=", m.object(table)).
		Where("i.name", "IS NOT", nil).
		OrderBy("i.name", "ASC").
		OrderBy("ic.key_ordinal", "ASC"))
	if err != nil {
		return nil, err
	}
	return groupIndexes(table, records), nil
}

// Triggers implements Inspector.
func (m *MsSQL) Triggers(ctx context.Context, table string) ([]*Trigger, error) {
	records, err := m.query(ctx, m.builder().
		Select("t.name", "e.type_desc").
		Column(sql.Raw("CASE WHEN t.is_instead_of_trigger = 1 THEN 'INSTEAD OF' ELSE 'AFTER' END"), "timing").
		From("sys.triggers", "t").
		Join("INNER", "sys.trigger_events", "e").On("e.object_id", "=", "t.object_id").
		Where("t.parent_id", "=", m.object(table)).
		OrderBy("t.name", "ASC"))
	if err != nil {
		return nil, err
	}
	return groupTriggers(table, records), nil
}

var _ Inspector = (*MsSQL)(nil)
