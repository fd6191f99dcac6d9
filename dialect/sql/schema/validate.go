package schema

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError is a finding of a schema validation.
type ValidationError struct {
	Table   string
	Column  string
	Message string
	// Breaking marks changes that lose data or break running clients.
	Breaking bool
}

func (e *ValidationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s.%s: %s", e.Table, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// ValidationResult holds the findings of a validation. Errors block a
// change, warnings only flag it.
type ValidationResult struct {
	Errors   []*ValidationError
	Warnings []*ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// HasBreakingChanges returns true if there are any breaking changes.
func (r *ValidationResult) HasBreakingChanges() bool {
	breaking := func(e *ValidationError) bool { return e.Breaking }
	return slices.ContainsFunc(r.Errors, breaking) || slices.ContainsFunc(r.Warnings, breaking)
}

// String returns a human-readable summary of the validation result.
func (r *ValidationResult) String() string {
	if !r.HasErrors() && !r.HasWarnings() {
		return "No issues found"
	}
	var sb strings.Builder
	writeFindings(&sb, "Errors", r.Errors)
	writeFindings(&sb, "Warnings", r.Warnings)
	return sb.String()
}

func writeFindings(sb *strings.Builder, title string, errs []*ValidationError) {
	if len(errs) == 0 {
		return
	}
	sb.WriteString(title + ":\n")
	for _, e := range errs {
		sb.WriteString("  - " + e.Error())
		if e.Breaking {
			sb.WriteString(" [BREAKING]")
		}
		sb.WriteString("\n")
	}
}

// add records err as a warning when allowed, or as an error otherwise.
func (r *ValidationResult) add(err *ValidationError, allowed bool) {
	if allowed {
		r.Warnings = append(r.Warnings, err)
	} else {
		r.Errors = append(r.Errors, err)
	}
}

func (r *ValidationResult) warn(table, column, format string, args ...any) {
	r.Warnings = append(r.Warnings, &ValidationError{Table: table, Column: column, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) fail(table, column, format string, args ...any) {
	r.Errors = append(r.Errors, &ValidationError{Table: table, Column: column, Message: fmt.Sprintf(format, args...)})
}

// merge appends the findings of o.
func (r *ValidationResult) merge(o *ValidationResult) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// ValidateOption configures schema validation.
type ValidateOption func(*validateConfig)

type validateConfig struct {
	allowDropColumn    bool
	allowDropTable     bool
	allowDropIndex     bool
	allowNullToNotNull bool
}

// AllowDropColumn allows dropping columns without error.
func AllowDropColumn() ValidateOption {
	return func(c *validateConfig) {
		c.allowDropColumn = true
	}
}

// AllowDropTable allows dropping tables without error.
func AllowDropTable() ValidateOption {
	return func(c *validateConfig) {
		c.allowDropTable = true
	}
}

// AllowDropIndex allows dropping indexes without error.
func AllowDropIndex() ValidateOption {
	return func(c *validateConfig) {
		c.allowDropIndex = true
	}
}

// AllowNullToNotNull allows changing nullable columns to not null.
func AllowNullToNotNull() ValidateOption {
	return func(c *validateConfig) {
		c.allowNullToNotNull = true
	}
}

// ValidateDiff compares a current schema, usually read with Inspect,
// with a desired one. Dropped tables, columns and indexes and new NOT NULL
// constraints are errors unless allowed by an option; type changes, size
// reductions and new unique constraints are warnings.
//
//	cur, err := schema.Inspect(ctx, ins)
//	if err != nil {
//		return err
//	}
//	if res := schema.ValidateDiff(cur.Tables, desired); res.HasErrors() {
//		return fmt.Errorf("unsafe migration:\n%s", res)
//	}
func ValidateDiff(current, desired []*Table, opts ...ValidateOption) *ValidationResult {
	cfg := &validateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	result := &ValidationResult{}
	want := make(map[string]*Table, len(desired))
	for _, t := range desired {
		want[t.Name] = t
	}
	for _, cur := range current {
		next, ok := want[cur.Name]
		if !ok {
			result.add(&ValidationError{Table: cur.Name, Message: "table will be dropped", Breaking: true}, cfg.allowDropTable)
			continue
		}
		validateTableDiff(cur, next, cfg, result)
	}
	return result
}

func validateTableDiff(current, desired *Table, cfg *validateConfig, result *ValidationResult) {
	for _, c := range current.Columns {
		if _, ok := desired.Column(c.Name); !ok {
			result.add(&ValidationError{Table: current.Name, Column: c.Name, Message: "column will be dropped", Breaking: true}, cfg.allowDropColumn)
		}
	}
	for _, next := range desired.Columns {
		cur, ok := current.Column(next.Name)
		if !ok {
			if !next.Nullable && next.Default == nil {
				result.warn(current.Name, next.Name, "new NOT NULL column without default value may fail if table has data")
			}
			continue
		}
		if !strings.EqualFold(cur.Type, next.Type) {
			result.warn(current.Name, next.Name, "column type changing from %s to %s", cur.Type, next.Type)
		}
		if cur.Nullable && !next.Nullable {
			result.add(&ValidationError{
				Table:    current.Name,
				Column:   next.Name,
				Message:  "column changing from NULL to NOT NULL may fail if column has NULL values",
				Breaking: true,
			}, cfg.allowNullToNotNull)
		}
		if cur.Size > 0 && next.Size > 0 && next.Size < cur.Size {
			result.warn(current.Name, next.Name, "column size reducing from %d to %d may truncate data", cur.Size, next.Size)
		}
		if !cur.Unique && next.Unique {
			result.warn(current.Name, next.Name, "adding UNIQUE constraint may fail if duplicate values exist")
		}
	}
	for _, idx := range current.Indexes {
		next, ok := desired.Index(idx.Name)
		if !ok {
			result.add(&ValidationError{Table: current.Name, Message: fmt.Sprintf("index %q will be dropped", idx.Name)}, cfg.allowDropIndex)
			continue
		}
		if !idx.Unique && next.Unique {
			result.warn(current.Name, "", "index %q becoming UNIQUE may fail if duplicate values exist", idx.Name)
		}
	}
}

// ValidateTable checks a single table definition.
func ValidateTable(t *Table) *ValidationResult {
	result := &ValidationResult{}
	if len(t.PrimaryKey()) == 0 {
		result.warn(t.Name, "", "table has no primary key")
	}
	columns := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if columns[c.Name] {
			result.fail(t.Name, c.Name, "duplicate column name")
		}
		columns[c.Name] = true
	}
	indexes := make(map[string]bool, len(t.Indexes))
	for _, idx := range t.Indexes {
		if indexes[idx.Name] {
			result.fail(t.Name, "", "duplicate index name: %s", idx.Name)
		}
		indexes[idx.Name] = true
		if len(idx.Columns) == 0 {
			result.fail(t.Name, "", "index %q has no columns", idx.Name)
		}
		for _, col := range idx.Columns {
			if !columns[col] {
				result.fail(t.Name, "", "index %q references non-existent column %q", idx.Name, col)
			}
		}
	}
	for _, fk := range t.ForeignKeys {
		for _, col := range fk.Columns {
			if !columns[col] {
				result.fail(t.Name, "", "foreign key references non-existent column %q", col)
			}
		}
		if len(fk.Columns) != len(fk.RefColumns) {
			result.fail(t.Name, "", "foreign key to %q has %d columns but references %d", fk.RefTable, len(fk.Columns), len(fk.RefColumns))
		}
	}
	return result
}

// ValidateSchema checks every table and the foreign keys between them.
func ValidateSchema(tables []*Table) *ValidationResult {
	result := &ValidationResult{}
	byName := make(map[string]*Table, len(tables))
	for _, t := range tables {
		if _, ok := byName[t.Name]; ok {
			result.fail(t.Name, "", "duplicate table name")
		}
		byName[t.Name] = t
		result.merge(ValidateTable(t))
	}
	for _, t := range tables {
		for _, fk := range t.ForeignKeys {
			ref, ok := byName[fk.RefTable]
			if !ok {
				result.fail(t.Name, "", "foreign key references non-existent table %q", fk.RefTable)
				continue
			}
			for _, col := range fk.RefColumns {
				if _, ok := ref.Column(col); !ok {
					result.fail(t.Name, "", "foreign key references non-existent column %q of table %q", col, fk.RefTable)
				}
			}
		}
	}
	return result
}
