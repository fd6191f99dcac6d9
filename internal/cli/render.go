package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/leapdb/leap/dialect/sql"
)

// conditionOps are matched in order, so longer operators come first.
var conditionOps = []string{">=", "<=", "!=", "<>", "=", ">", "<"}

type renderOptions struct {
	table   string
	columns []string
	where   []string
	orderBy []string
	limit   int
	offset  int
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a SELECT statement for a dialect",
		Long: `Render builds a SELECT statement with the dialect builder and prints it.
Conditions are written as column<op>value and are joined with AND.`,
		Example: `  leap render --dialect mssql --table users --columns id,email --where "age>=18" --limit 10
  leap render --dialect postgres --table users --where "deleted_at=null" --order "name desc"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := envOf(cmd)
			s, err := buildSelect(e.cfg.DefaultDialect, opts)
			if err != nil {
				return err
			}
			q, err := s.Statement(false)
			if err != nil {
				return err
			}
			out := struct {
				Dialect   string `json:"dialect" yaml:"dialect"`
				Statement string `json:"statement" yaml:"statement"`
			}{e.cfg.DefaultDialect, q}
			return render(cmd.OutOrStdout(), e.cfg.Output, out, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, q)
				return err
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.table, "table", "", "table to select from")
	f.StringSliceVar(&opts.columns, "columns", nil, "columns to select (default *)")
	f.StringArrayVar(&opts.where, "where", nil, "condition column<op>value (repeatable)")
	f.StringArrayVar(&opts.orderBy, "order", nil, `ordering "column [asc|desc]" (repeatable)`)
	f.IntVar(&opts.limit, "limit", 0, "row limit")
	f.IntVar(&opts.offset, "offset", 0, "rows to skip")
	_ = cmd.MarkFlagRequired("table")
	return cmd
}

func buildSelect(d string, opts renderOptions) (*sql.Selector, error) {
	cols := make([]any, len(opts.columns))
	for i, c := range opts.columns {
		cols[i] = strings.TrimSpace(c)
	}
	s := sql.Dialect(d).Select(cols...).From(opts.table)
	for _, w := range opts.where {
		column, op, value, err := parseCondition(w)
		if err != nil {
			return nil, err
		}
		s.Where(column, op, value)
	}
	for _, o := range opts.orderBy {
		column, dir, _ := strings.Cut(strings.TrimSpace(o), " ")
		if dir = strings.TrimSpace(dir); dir == "" {
			dir = "ASC"
		}
		s.OrderBy(column, dir)
	}
	if opts.limit > 0 {
		s.Limit(opts.limit)
	}
	if opts.offset > 0 {
		s.Offset(opts.offset)
	}
	return s, nil
}

// parseCondition splits "column<op>value". The value null maps to NULL,
// numbers stay numeric and quoted values are unquoted.
func parseCondition(s string) (column, op string, value any, err error) {
	for _, candidate := range conditionOps {
		if i := strings.Index(s, candidate); i > 0 {
			column = strings.TrimSpace(s[:i])
			op = candidate
			value = parseValue(strings.TrimSpace(s[i+len(candidate):]))
			return column, op, value, nil
		}
	}
	return "", "", nil, fmt.Errorf("render: invalid condition %q (expected column<op>value)", s)
}

func parseValue(s string) any {
	if strings.EqualFold(s, "null") {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
