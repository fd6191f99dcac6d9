package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/leapdb/leap/datasource"
	"github.com/leapdb/leap/dialect/sql/schema"
)

type inspectOptions struct {
	source      string
	tables      []string
	concurrency int
	views       bool
}

func newInspectCmd() *cobra.Command {
	opts := inspectOptions{views: true}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the schema of a configured data source",
		Long: `Inspect connects to a data source from the config file and prints its
tables with their columns, indexes and triggers.`,
		Example: `  leap inspect --source main
  leap inspect --source main --tables users,orders -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts, datasource.Builtin())
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.source, "source", "s", "", "data source name")
	f.StringSliceVar(&opts.tables, "tables", nil, "only inspect these tables")
	f.IntVar(&opts.concurrency, "concurrency", 4, "tables inspected at once")
	f.BoolVar(&opts.views, "views", true, "include views")
	_ = cmd.MarkFlagRequired("source")
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions, reg *datasource.Registry) error {
	ctx := cmd.Context()
	e := envOf(cmd)
	src, err := e.cfg.Source(opts.source)
	if err != nil {
		return err
	}
	drv, err := reg.Open(ctx, src, datasource.WithLogger(e.logger))
	if err != nil {
		return err
	}
	defer drv.Close()
	ins, err := schema.NewInspector(drv)
	if err != nil {
		return err
	}
	inspectOpts := []schema.InspectOption{
		schema.WithConcurrency(opts.concurrency),
		schema.WithTables(opts.tables...),
		schema.WithLogger(e.logger),
	}
	if !opts.views {
		inspectOpts = append(inspectOpts, schema.WithoutViews())
	}
	s, err := schema.Inspect(ctx, ins, inspectOpts...)
	if err != nil {
		return err
	}
	e.logger.Info("schema inspected", "source", opts.source, "tables", len(s.Tables), "views", len(s.Views))
	return render(cmd.OutOrStdout(), e.cfg.Output, s, func(w io.Writer) error {
		return writeSchema(w, s)
	})
}

func writeSchema(w io.Writer, s *schema.Schema) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, t := range s.Tables {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "TABLE %s\n", t.Name)
		for _, c := range t.Columns {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", c.Name, c.Type, columnFlags(c))
		}
		for _, idx := range t.Indexes {
			kind := "INDEX"
			switch {
			case idx.Primary:
				kind = "PRIMARY KEY"
			case idx.Unique:
				kind = "UNIQUE"
			}
			fmt.Fprintf(tw, "  %s %s\t(%s)\t\n", kind, idx.Name, strings.Join(idx.Columns, ", "))
		}
		for _, tr := range t.Triggers {
			fmt.Fprintf(tw, "  TRIGGER %s\t%s %s\t\n", tr.Name, tr.Timing, tr.Event)
		}
	}
	for _, v := range s.Views {
		fmt.Fprintf(tw, "VIEW %s\n", v.Name)
	}
	return tw.Flush()
}

func columnFlags(c *schema.Column) string {
	var flags []string
	if c.PrimaryKey {
		flags = append(flags, "PK")
	}
	if c.Unique {
		flags = append(flags, "UNIQUE")
	}
	if !c.Nullable {
		flags = append(flags, "NOT NULL")
	}
	if c.Default != nil {
		flags = append(flags, "DEFAULT "+*c.Default)
	}
	return strings.Join(flags, " ")
}
