package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapdb/leap/dialect/sql"
)

type keywordCheck struct {
	Word     string `json:"word" yaml:"word"`
	Reserved bool   `json:"reserved" yaml:"reserved"`
}

func newKeywordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keywords [word...]",
		Short: "List or check the reserved words of a dialect",
		Long: `Without arguments keywords lists the reserved words of the dialect.
With arguments it reports whether each word is reserved.`,
		Example: `  leap keywords --dialect postgres
  leap keywords --dialect mssql user order id`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envOf(cmd)
			pc, err := sql.NewPrecompiler(e.cfg.DefaultDialect, nil)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				words := pc.Keywords()
				return render(cmd.OutOrStdout(), e.cfg.Output, words, func(w io.Writer) error {
					_, err := fmt.Fprintln(w, strings.Join(words, "\n"))
					return err
				})
			}
			checks := make([]keywordCheck, len(args))
			for i, word := range args {
				checks[i] = keywordCheck{Word: word, Reserved: pc.IsKeyword(word)}
			}
			return render(cmd.OutOrStdout(), e.cfg.Output, checks, func(w io.Writer) error {
				for _, c := range checks {
					status := "not reserved"
					if c.Reserved {
						status = "reserved"
					}
					if _, err := fmt.Fprintf(w, "%s: %s\n", c.Word, status); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
