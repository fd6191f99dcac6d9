package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapdb/leap/dialect"
	"github.com/leapdb/leap/dialect/sql/sqltranslate"
)

// watchDelay coalesces the burst of events an editor save produces.
var watchDelay = 100 * time.Millisecond

func newTranslateCmd() *cobra.Command {
	var (
		from, to string
		watch    bool
	)
	cmd := &cobra.Command{
		Use:   "translate [file|-]",
		Short: "Translate MySQL statements to another dialect",
		Long: `Translate rewrites MySQL family statements for a target dialect:
` + strings.Join(sqltranslate.Targets(), ", ") + `.

With --watch the file is translated again every time it changes.`,
		Example: `  echo "SELECT a FROM t LIMIT 5" | leap translate --to mssql
  leap translate --to postgres --watch queries.sql`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				return errors.New("translate: --to is required")
			}
			e := envOf(cmd)
			if from == "" {
				from = dialect.MySQL
				if dialect.IsMySQLFamily(e.cfg.DefaultDialect) {
					from = e.cfg.DefaultDialect
				}
			}
			tr, err := sqltranslate.New(from, to)
			if err != nil {
				return err
			}
			if watch {
				if len(args) == 0 || args[0] == "-" {
					return errors.New("translate: --watch requires a file")
				}
				return watchFile(cmd.Context(), tr, args[0], cmd.OutOrStdout(), e.logger)
			}
			src, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			out, err := tr.TranslateString(src)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "source dialect (mysql, mariadb or drizzle)")
	cmd.Flags().StringVar(&to, "to", "", "target dialect")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "translate again when the file changes")
	_ = cmd.RegisterFlagCompletionFunc("to", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return sqltranslate.Targets(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// watchFile translates path now and after every change until ctx is done.
// Translation errors are logged and do not stop the watch.
func watchFile(ctx context.Context, tr *sqltranslate.Translator, path string, w io.Writer, logger *slog.Logger) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("translate: create watcher: %w", err)
	}
	defer watcher.Close()
	// Editors often replace the file on save, so watch its directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("translate: watch %s: %w", path, err)
	}
	translateFile(tr, path, w, logger)
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Name != path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDelay)
			} else {
				timer.Reset(watchDelay)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			translateFile(tr, path, w, logger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "file", path, "error", err)
		}
	}
}

func translateFile(tr *sqltranslate.Translator, path string, w io.Writer, logger *slog.Logger) {
	src, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read failed", "file", path, "error", err)
		return
	}
	out, err := tr.TranslateString(string(src))
	if err != nil {
		logger.Error("translation failed", "file", path, "target", tr.Target(), "error", err)
		return
	}
	fmt.Fprintln(w, out)
	logger.Info("translated", "file", path, "target", tr.Target())
}
