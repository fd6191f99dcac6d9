package schema

import (
	"context"

	"github.com/leapdb/leap/dialect/sql"
)

// Postgres inspects PostgreSQL through information_schema and pg_catalog.
type Postgres struct{ *conn }

// Tables implements Inspector.
func (p *Postgres) Tables(ctx context.Context) ([]*Table, error) {
	records, err := p.query(ctx, p.builder().
		Select("table_name", "table_schema").
		From("information_schema.tables").
		Where("table_schema", "=", p.schemaValue("CURRENT_SCHEMA()")).
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
func (p *Postgres) Views(ctx context.Context) ([]*View, error) {
	records, err := p.query(ctx, p.builder().
		Select("table_name", "view_definition").
		From("information_schema.views").
		Where("table_schema", "=", p.schemaValue("CURRENT_SCHEMA()")).
		OrderBy("table_name", "ASC"))
	if err != nil {
		return nil, err
	}
	return views(records), nil
}

// Fields implements Inspector.
func (p *Postgres) Fields(ctx context.Context, table string) ([]*Column, error) {
	records, err := p.query(ctx, p.builder().
		Select("column_name", "data_type", "is_nullable", "column_default", "character_maximum_length").
		From("information_schema.columns").
		Where("table_schema", "=", p.schemaValue("CURRENT_SCHEMA()")).
		Where("table_name", "=", table).
		OrderBy("ordinal_position", "ASC"))
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
			Size:     r.number(4),
		}
	}
	return columns, nil
}

// Indexes implements Inspector.
func (p *Postgres) Indexes(ctx context.Context, table string) ([]*Index, error) {
	records, err := p.query(ctx, p.builder().
		Select("i.relname", "a.attname", "ix.indisunique", "ix.indisprimary").
		From("pg_index", "ix").
		Join("INNER", "pg_class", "t").On("t.oid", "=", "ix.indrelid").
		Join("INNER", "pg_class", "i").On("i.oid", "=", "ix.indexrelid").
		Join("INNER", "pg_namespace", "n").On("n.oid", "=", "t.relnamespace").
		Join("INNER", "pg_attribute", "a").
		On("a.attrelid", "=", "t.oid").
		On("a.attnum", "=", sql.Raw("ANY(ix.indkey)")).
		Where("n.nspname", "=", p.schemaValue("CURRENT_SCHEMA()")).
		Where("t.relname", "=", table).
		OrderBy("i.relname", "ASC").
		OrderBy(sql.Raw("array_position(ix.indkey::int2[], a.attnum)"), "ASC"))
	if err != nil {
		return nil, err
	}
	return groupIndexes(table, records), nil
}

// Triggers implements Inspector.
func (p *Postgres) Triggers(ctx context.Context, table string) ([]*Trigger, error) {
	records, err := p.query(ctx, p.builder().
		Select("trigger_name", "event_manipulation", "action_timing").
		From("information_schema.triggers").
		Where("event_object_schema", "=", p.schemaValue("CURRENT_SCHEMA()")).
		Where("event_object_table", "=", table).
		OrderBy("trigger_name", "ASC").
		OrderBy("event_manipulation", "ASC"))
	if err != nil {
		return nil, err
	}
	return groupTriggers(table, records), nil
}

var _ Inspector = (*Postgres)(nil)
