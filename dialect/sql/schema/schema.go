// Package schema reads the structure of a live database and compares
// schema snapshots.
//
// An Inspector lists the tables, views, columns, indexes and triggers of
// the connected schema. Its catalog queries are rendered with the statement
// builder of the driver dialect:
//
//	ins, err := schema.NewInspector(drv)
//	if err != nil {
//		return err
//	}
//	s, err := schema.Inspect(ctx, ins, schema.WithConcurrency(4))
package schema

// Schema is the result of Inspect.
type Schema struct {
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	Tables []*Table `json:"tables" yaml:"tables"`
	Views  []*View  `json:"views,omitempty" yaml:"views,omitempty"`
}

// Table returns the table with the given name.
func (s *Schema) Table(name string) (*Table, bool) {
	for _, t := range s.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Table is a base table.
type Table struct {
	Name        string        `json:"name" yaml:"name"`
	Schema      string        `json:"schema,omitempty" yaml:"schema,omitempty"`
	Columns     []*Column     `json:"columns" yaml:"columns"`
	Indexes     []*Index      `json:"indexes,omitempty" yaml:"indexes,omitempty"`
	Triggers    []*Trigger    `json:"triggers,omitempty" yaml:"triggers,omitempty"`
	ForeignKeys []*ForeignKey `json:"foreign_keys,omitempty" yaml:"foreign_keys,omitempty"`
}

// NewTable returns a new table with the given name.
func NewTable(name string) *Table {
	return &Table{Name: name}
}

// AddColumns appends the given columns to the table.
func (t *Table) AddColumns(columns ...*Column) *Table {
	t.Columns = append(t.Columns, columns...)
	return t
}

// AddIndex appends an index over the named columns.
func (t *Table) AddIndex(name string, unique bool, columns ...string) *Table {
	t.Indexes = append(t.Indexes, &Index{Name: name, Table: t.Name, Unique: unique, Columns: columns})
	return t
}

// AddForeignKey appends a foreign key.
func (t *Table) AddForeignKey(fk *ForeignKey) *Table {
	t.ForeignKeys = append(t.ForeignKeys, fk)
	return t
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Index returns the index with the given name.
func (t *Table) Index(name string) (*Index, bool) {
	for _, idx := range t.Indexes {
		if idx.Name == name {
			return idx, true
		}
	}
	return nil, false
}

// PrimaryKey returns the primary key columns in index order, falling back
// to the columns flagged as primary key.
func (t *Table) PrimaryKey() []string {
	for _, idx := range t.Indexes {
		if idx.Primary {
			return idx.Columns
		}
	}
	var pk []string
	for _, c := range t.Columns {
		if c.PrimaryKey {
			pk = append(pk, c.Name)
		}
	}
	return pk
}

// Column is a table column.
type Column struct {
	Name       string  `json:"name" yaml:"name"`
	Type       string  `json:"type" yaml:"type"`
	Nullable   bool    `json:"nullable" yaml:"nullable"`
	Default    *string `json:"default,omitempty" yaml:"default,omitempty"`
	Size       int64   `json:"size,omitempty" yaml:"size,omitempty"`
	Unique     bool    `json:"unique,omitempty" yaml:"unique,omitempty"`
	PrimaryKey bool    `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
}

// Index is a table index.
type Index struct {
	Name    string   `json:"name" yaml:"name"`
	Table   string   `json:"table,omitempty" yaml:"table,omitempty"`
	Columns []string `json:"columns" yaml:"columns"`
	Unique  bool     `json:"unique,omitempty" yaml:"unique,omitempty"`
	Primary bool     `json:"primary,omitempty" yaml:"primary,omitempty"`
}

// Trigger is a table trigger.
type Trigger struct {
	Name   string `json:"name" yaml:"name"`
	Table  string `json:"table,omitempty" yaml:"table,omitempty"`
	Event  string `json:"event" yaml:"event"`   // INSERT, UPDATE or DELETE; events are joined with " OR "
	Timing string `json:"timing" yaml:"timing"` // BEFORE, AFTER or INSTEAD OF
}

// View is a view and its defining query.
type View struct {
	Name       string `json:"name" yaml:"name"`
	Definition string `json:"definition,omitempty" yaml:"definition,omitempty"`
}

// ForeignKey is a foreign key constraint of a declared schema.
type ForeignKey struct {
	Symbol     string   `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Columns    []string `json:"columns" yaml:"columns"`
	RefTable   string   `json:"ref_table" yaml:"ref_table"`
	RefColumns []string `json:"ref_columns" yaml:"ref_columns"`
}
