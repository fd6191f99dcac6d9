package schema

import (
	"context"

	"github.com/leapdb/leap/dialect/sql"
)

// MySQL inspects MySQL, MariaDB and Drizzle through information_schema.
type MySQL struct{ *conn }

// Tables implements Inspector.
func (m *MySQL) Tables(ctx context.Context) ([]*Table, error) {
	records, err := m.query(ctx, m.builder().
		Select("table_name", "table_schema").
		From("information_schema.tables").
		Where("table_schema", "=", m.schemaValue("DATABASE()")).
		Where("table_type", "=", "BASE TABLE").
		OrderBy("table_name", "ASC"))
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
func (m *MySQL) Views(ctx context.Context) ([]*View, error) {
	records, err := m.query(ctx, m.builder().
		Select("table_name", "view_definition").
		From("information_schema.views").
		Where("table_schema", "=", m.schemaValue("DATABASE()")).
		OrderBy("table_name", "ASC"))
	if err != nil {
		return nil, err
	}
	return views(records), nil
}

// Fields implements Inspector.
func (m *MySQL) Fields(ctx context.Context, table string) ([]*Column, error) {
	records, err := m.query(ctx, m.builder().
		Select("column_name", "column_type", "is_nullable", "column_default", "character_maximum_length", "column_key").
		From("information_schema.columns").
		Where("table_schema", "=", m.schemaValue("DATABASE()")).
		Where("table_name", "=", table).
		OrderBy("ordinal_position", "ASC"))
	if err != nil {
		return nil, err
	}
	columns := make([]*Column, len(records))
	for i, r := range records {
		columns[i] = &Column{
			Name:       r.text(0),
			Type:       r.text(1),
			Nullable:   r.flag(2),
			Default:    r.nullable(3),
			Size:       r.number(4),
			PrimaryKey: r.text(5) == "PRI",
			Unique:     r.text(5) == "UNI",
		}
	}
	return columns, nil
}

// Indexes implements Inspector.
func (m *MySQL) Indexes(ctx context.Context, table string) ([]*Index, error) {
	records, err := m.query(ctx, m.builder().
		Select("index_name", "column_name").
		Column(sql.Raw("non_unique = 0"), "is_unique").
		Column(sql.Raw("index_name = 'PRIMARY'"), "is_primary").
		From("information_schema.statistics").
		Where("table_schema", "=", m.schemaValue("DATABASE()")).
		Where("table_name", "=", table).
		OrderBy("index_name", "ASC").
		OrderBy("seq_in_index", "ASC"))
	if err != nil {
		return nil, err
	}
	return groupIndexes(table, records), nil
}

// Triggers implements Inspector.
func (m *MySQL) Triggers(ctx context.Context, table string) ([]*Trigger, error) {
	records, err := m.query(ctx, m.builder().
		Select("trigger_name", "event_manipulation", "action_timing").
		From("information_schema.triggers").
		Where("event_object_schema", "=", m.schemaValue("DATABASE()")).
		Where("event_object_table", "=", table).
		OrderBy("trigger_name", "ASC"))
	if err != nil {
		return nil, err
	}
	return groupTriggers(table, records), nil
}

func views(records []record) []*View {
	vs := make([]*View, len(records))
	for i, r := range records {
		vs[i] = &View{Name: r.text(0), Definition: r.text(1)}
	}
	return vs
}

var _ Inspector = (*MySQL)(nil)
