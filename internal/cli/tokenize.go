package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/leapdb/leap/dialect/sql/sqllex"
)

func newTokenizeCmd() *cobra.Command {
	var cleanse bool
	cmd := &cobra.Command{
		Use:   "tokenize [file|-]",
		Short: "Split SQL into tokens",
		Long: `Tokenize prints the tokens of a SQL statement with their byte offsets.
The statement is read from the file argument or from stdin.`,
		Example: `  echo "SELECT a FROM t" | leap tokenize
  leap tokenize query.sql --cleanse -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			tokens := sqllex.Tokenize(src)
			if cleanse {
				tokens = sqllex.Cleanse(tokens)
			}
			e := envOf(cmd)
			e.logger.Debug("tokenized", "bytes", len(src), "tokens", len(tokens))
			if err := render(cmd.OutOrStdout(), e.cfg.Output, tokens, func(w io.Writer) error {
				for _, t := range tokens {
					if _, err := fmt.Fprintf(w, "%5d  %-11s %q\n", t.Offset, t.Kind, t.Text); err != nil {
						return err
					}
				}
				return nil
			}); err != nil {
				return err
			}
			return sqllex.FirstError(tokens)
		},
	}
	cmd.Flags().BoolVar(&cleanse, "cleanse", false, "collapse whitespace and comments to single spaces")
	return cmd
}
