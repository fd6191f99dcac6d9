package schema

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/leapdb/leap/dialect/sql"
	"github.com/leapdb/leap/dialect/sql/sqllex"
)

// SQLite inspects SQLite through sqlite_master and the table-valued pragma
// functions.
type SQLite struct{ *conn }

func (s *SQLite) master(typ string, columns ...any) *sql.Selector {
	return s.builder().Select(columns...).
		From("sqlite_master").
		Where("type", "=", typ).
		Where("name", "NOT LIKE", "sqlite_%")
}

// Tables implements Inspector.
func (s *SQLite) Tables(ctx context.Context) ([]*Table, error) {
	records, err := s.query(ctx, s.master("table", "name").OrderBy("name", "ASC"))
	if err != nil {
		return nil, err
	}
	tables := make([]*Table, len(records))
	for i, r := range records {
		tables[i] = &Table{Name: r.text(0), Schema: "main"}
	}
	return tables, nil
}

// Views implements Inspector.
func (s *SQLite) Views(ctx context.Context) ([]*View, error) {
	records, err := s.query(ctx, s.master("view", "name", "sql").OrderBy("name", "ASC"))
	if err != nil {
		return nil, err
	}
	return views(records), nil
}

func pragma(fn, table string) *sql.Expression {
	return sql.Expr(fn+"(:table)", map[string]any{"table": table})
}

// Fields implements Inspector.
func (s *SQLite) Fields(ctx context.Context, table string) ([]*Column, error) {
	records, err := s.query(ctx, s.builder().
		Select("name", "type", "notnull", "dflt_value", "pk").
		From(pragma("pragma_table_info", table)).
		OrderBy("cid", "ASC"))
	if err != nil {
		return nil, err
	}
	columns := make([]*Column, len(records))
	for i, r := range records {
		columns[i] = &Column{
			Name:       r.text(0),
			Type:       r.text(1),
			Nullable:   !r.flag(2),
			Default:    r.nullable(3),
			Size:       typeSize(r.text(1)),
			PrimaryKey: r.number(4) > 0,
		}
	}
	return columns, nil
}

// Indexes implements Inspector.
func (s *SQLite) Indexes(ctx context.Context, table string) ([]*Index, error) {
	records, err := s.query(ctx, s.builder().
		Select("il.name", "ii.name", "il.unique").
		Column(sql.Raw("il.origin = 'pk'"), "is_primary").
		From(pragma("pragma_index_list", table), "il").
		Join("CROSS", sql.Raw("pragma_index_info(il.name)"), "ii").
		OrderBy("il.name", "ASC").
		OrderBy("ii.seqno", "ASC"))
	if err != nil {
		return nil, err
	}
	return groupIndexes(table, records), nil
}

// Triggers implements Inspector.
func (s *SQLite) Triggers(ctx context.Context, table string) ([]*Trigger, error) {
	records, err := s.query(ctx, s.master("trigger", "name", "sql").
		Where("tbl_name", "=", table).
		OrderBy("name", "ASC"))
	if err != nil {
		return nil, err
	}
	trs := make([]*Trigger, len(records))
	for i, r := range records {
		tr := &Trigger{Name: r.text(0), Table: table}
		tr.Timing, tr.Event = triggerClause(r.text(1))
		trs[i] = tr
	}
	return trs, nil
}

// triggerClause reads the timing and event of a CREATE TRIGGER statement.
// SQLite triggers without a timing run BEFORE.
func triggerClause(stmt string) (timing, event string) {
	timing = "BEFORE"
	for _, t := range sqllex.Tokenize(stmt) {
		switch {
		case t.Is("ON"):
			return timing, event
		case t.Is("BEFORE"), t.Is("AFTER"):
			timing = strings.ToUpper(t.Text)
		case t.Is("INSTEAD"):
			timing = "INSTEAD OF"
		case event == "" && (t.Is("INSERT") || t.Is("UPDATE") || t.Is("DELETE")):
			event = strings.ToUpper(t.Text)
		}
	}
	return timing, event
}

// typeSize returns the first length argument of a declared type, as in
// VARCHAR(255).
func typeSize(typ string) int64 {
	tokens := slices.DeleteFunc(sqllex.Tokenize(typ), func(t sqllex.Token) bool {
		return t.Kind == sqllex.Whitespace
	})
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i].IsOpen() && tokens[i+1].Kind == sqllex.Number {
			n, _ := strconv.ParseInt(tokens[i+1].Text, 10, 64)
			return n
		}
	}
	return 0
}

var _ Inspector = (*SQLite)(nil)
