package sql

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/leapdb/leap"
	"github.com/leapdb/leap/dialect"
	"github.com/leapdb/leap/dialect/sql/sqllex"
)

// StatementKind classifies a statement by the verb it runs.
type StatementKind int

// Statement kinds.
const (
	KindOther StatementKind = iota
	KindSelect
	KindInsert
	KindUpdate
	KindDelete
	numKinds
)

var kindNames = [numKinds]string{"other", "select", "insert", "update", "delete"}

func (k StatementKind) String() string {
	if k < 0 || k >= numKinds {
		return kindNames[KindOther]
	}
	return kindNames[k]
}

// ClassifyStatement returns the kind of query. Leading comments and
// parentheses are skipped, and a WITH clause classifies as the statement
// that follows its common table expressions. REPLACE counts as an insert.
func ClassifyStatement(query string) StatementKind {
	depth, with := 0, false
	for t := range sqllex.All(query) {
		switch {
		case t.IsOpen():
			depth++
			continue
		case t.IsClose():
			depth--
			continue
		case !t.IsWord() || depth > 0 && with:
			continue
		}
		switch strings.ToUpper(t.Text) {
		case "SELECT":
			return KindSelect
		case "INSERT", "REPLACE":
			return KindInsert
		case "UPDATE":
			return KindUpdate
		case "DELETE":
			return KindDelete
		case "WITH":
			with = true
		default:
			if !with {
				return KindOther
			}
		}
	}
	return KindOther
}

// event is one statement or transaction step observed by a tracer.
type event struct {
	op    string // query, exec, begin, commit or rollback
	query string
	args  any
	tx    bool
}

func (e event) statement() bool { return e.op == "query" || e.op == "exec" }

// tracer observes the statements of a driver and its transactions.
type tracer interface {
	trace(ctx context.Context, e event, run func() error) error
}

// tracedTx is a transaction whose statements go through a tracer.
type tracedTx struct {
	dialect.Tx
	t tracer
}

func (tx *tracedTx) Query(ctx context.Context, query string, args, v any) error {
	return tx.t.trace(ctx, event{op: "query", query: query, args: args, tx: true}, func() error {
		return tx.Tx.Query(ctx, query, args, v)
	})
}

func (tx *tracedTx) Exec(ctx context.Context, query string, args, v any) error {
	return tx.t.trace(ctx, event{op: "exec", query: query, args: args, tx: true}, func() error {
		return tx.Tx.Exec(ctx, query, args, v)
	})
}

func (tx *tracedTx) Commit() error {
	return tx.t.trace(context.Background(), event{op: "commit", tx: true}, tx.Tx.Commit)
}

func (tx *tracedTx) Rollback() error {
	return tx.t.trace(context.Background(), event{op: "rollback", tx: true}, tx.Tx.Rollback)
}

func traceQuery(ctx context.Context, t tracer, drv *Driver, query string, args, v any) error {
	return t.trace(ctx, event{op: "query", query: query, args: args}, func() error {
		return drv.Query(ctx, query, args, v)
	})
}

func traceExec(ctx context.Context, t tracer, drv *Driver, query string, args, v any) error {
	return t.trace(ctx, event{op: "exec", query: query, args: args}, func() error {
		return drv.Exec(ctx, query, args, v)
	})
}

func traceTx(ctx context.Context, t tracer, drv *Driver) (dialect.Tx, error) {
	var tx dialect.Tx
	err := t.trace(ctx, event{op: "begin", tx: true}, func() (err error) {
		tx, err = drv.Tx(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &tracedTx{Tx: tx, t: t}, nil
}

// StatsSnapshot is a point-in-time copy of the counters of a StatsDriver.
type StatsSnapshot struct {
	Statements  [numKinds]int64
	Duration    time.Duration // total time spent in statements
	Errors      int64
	Constraints int64 // errors that are constraint violations
	Slow        int64
}

// Count returns the number of statements of kind k.
func (s StatsSnapshot) Count(k StatementKind) int64 { return s.Statements[k] }

// Total returns the number of statements of all kinds.
func (s StatsSnapshot) Total() (n int64) {
	for _, c := range s.Statements {
		n += c
	}
	return n
}

// Avg returns the mean statement duration.
func (s StatsSnapshot) Avg() time.Duration {
	if n := s.Total(); n > 0 {
		return s.Duration / time.Duration(n)
	}
	return 0
}

func (s StatsSnapshot) String() string {
	var b strings.Builder
	for k := KindSelect; k < numKinds; k++ {
		fmt.Fprintf(&b, "%s=%d ", k, s.Statements[k])
	}
	fmt.Fprintf(&b, "other=%d errors=%d constraints=%d slow=%d avg=%s",
		s.Statements[KindOther], s.Errors, s.Constraints, s.Slow, s.Avg())
	return b.String()
}

// LogValue implements slog.LogValuer.
func (s StatsSnapshot) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, numKinds+4)
	for k := range numKinds {
		attrs = append(attrs, slog.Int64(k.String(), s.Statements[k]))
	}
	return slog.GroupValue(append(attrs,
		slog.Int64("errors", s.Errors),
		slog.Int64("constraints", s.Constraints),
		slog.Int64("slow", s.Slow),
		slog.Duration("avg", s.Avg()),
	)...)
}

// SlowQuery describes a statement that ran longer than the slow threshold.
type SlowQuery struct {
	Dialect  string
	Kind     StatementKind
	Query    string
	Args     []any
	Duration time.Duration
	Err      error
}

// SlowQueryHook is called for every slow statement.
type SlowQueryHook func(context.Context, SlowQuery)

// StatsDriver counts the statements of a Driver per kind and reports slow
// ones. It is safe for concurrent use.
type StatsDriver struct {
	*Driver
	statements  [numKinds]atomic.Int64
	duration    atomic.Int64
	errors      atomic.Int64
	constraints atomic.Int64
	slow        atomic.Int64
	threshold   atomic.Int64
	hook        SlowQueryHook
}

// StatsOption configures a StatsDriver.
type StatsOption func(*StatsDriver)

// WithSlowThreshold sets the duration above which a statement is slow. It
// defaults to 100ms.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *StatsDriver) { s.threshold.Store(int64(d)) }
}

// WithSlowQueryHook calls hook for every slow statement.
func WithSlowQueryHook(hook SlowQueryHook) StatsOption {
	return func(s *StatsDriver) { s.hook = hook }
}

// WithSlowQueryLog logs slow statements at warn level, to the default
// logger when logger is nil.
func WithSlowQueryLog(logger *slog.Logger) StatsOption {
	if logger == nil {
		logger = slog.Default()
	}
	return WithSlowQueryHook(func(ctx context.Context, q SlowQuery) {
		attrs := []any{"dialect", q.Dialect, "kind", q.Kind.String(), "duration", q.Duration, "query", q.Query, "args", q.Args}
		if q.Err != nil {
			attrs = append(attrs, "error", q.Err)
		}
		logger.WarnContext(ctx, "slow query", attrs...)
	})
}

// NewStatsDriver wraps drv with statement statistics:
//
//	drv := sql.NewStatsDriver(sql.OpenDB(dialect.Postgres, db),
//		sql.WithSlowThreshold(200*time.Millisecond),
//		sql.WithSlowQueryLog(logger),
//	)
//	...
//	logger.Info("statements", "stats", drv.Stats())
func NewStatsDriver(drv *Driver, opts ...StatsOption) *StatsDriver {
	s := &StatsDriver{Driver: drv}
	s.threshold.Store(int64(100 * time.Millisecond))
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats returns a snapshot of the counters.
func (d *StatsDriver) Stats() StatsSnapshot {
	var s StatsSnapshot
	for k := range d.statements {
		s.Statements[k] = d.statements[k].Load()
	}
	s.Duration = time.Duration(d.duration.Load())
	s.Errors = d.errors.Load()
	s.Constraints = d.constraints.Load()
	s.Slow = d.slow.Load()
	return s
}

// ResetStats sets all counters to zero.
func (d *StatsDriver) ResetStats() {
	for k := range d.statements {
		d.statements[k].Store(0)
	}
	for _, c := range []*atomic.Int64{&d.duration, &d.errors, &d.constraints, &d.slow} {
		c.Store(0)
	}
}

// SlowThreshold returns the slow statement threshold.
func (d *StatsDriver) SlowThreshold() time.Duration { return time.Duration(d.threshold.Load()) }

// SetSlowThreshold changes the slow statement threshold.
func (d *StatsDriver) SetSlowThreshold(t time.Duration) { d.threshold.Store(int64(t)) }

// Query implements dialect.ExecQuerier.
func (d *StatsDriver) Query(ctx context.Context, query string, args, v any) error {
	return traceQuery(ctx, d, d.Driver, query, args, v)
}

// Exec implements dialect.ExecQuerier.
func (d *StatsDriver) Exec(ctx context.Context, query string, args, v any) error {
	return traceExec(ctx, d, d.Driver, query, args, v)
}

// Tx starts a transaction whose statements are counted too.
func (d *StatsDriver) Tx(ctx context.Context) (dialect.Tx, error) {
	return traceTx(ctx, d, d.Driver)
}

func (d *StatsDriver) trace(ctx context.Context, e event, run func() error) error {
	if !e.statement() {
		return run()
	}
	start := time.Now()
	err := run()
	took := time.Since(start)
	kind := ClassifyStatement(e.query)
	d.statements[kind].Add(1)
	d.duration.Add(int64(took))
	if err != nil {
		d.errors.Add(1)
		if leap.IsConstraintError(err) {
			d.constraints.Add(1)
		}
	}
	if took > d.SlowThreshold() {
		d.slow.Add(1)
		if d.hook != nil {
			args, _ := e.args.([]any)
			d.hook(ctx, SlowQuery{Dialect: d.Dialect(), Kind: kind, Query: e.query, Args: args, Duration: took, Err: err})
		}
	}
	return err
}

// DebugDriver logs every statement of a Driver and its transactions at
// debug level, with the dialect, duration and error.
type DebugDriver struct {
	*Driver
	logger *slog.Logger
}

// NewDebugDriver wraps drv with statement logging to logger, or to the
// default logger when it is nil.
func NewDebugDriver(drv *Driver, logger *slog.Logger) *DebugDriver {
	if logger == nil {
		logger = slog.Default()
	}
	return &DebugDriver{Driver: drv, logger: logger.With("dialect", drv.Dialect())}
}

// Query implements dialect.ExecQuerier.
func (d *DebugDriver) Query(ctx context.Context, query string, args, v any) error {
	return traceQuery(ctx, d, d.Driver, query, args, v)
}

// Exec implements dialect.ExecQuerier.
func (d *DebugDriver) Exec(ctx context.Context, query string, args, v any) error {
	return traceExec(ctx, d, d.Driver, query, args, v)
}

// Tx starts a transaction whose statements are logged too.
func (d *DebugDriver) Tx(ctx context.Context) (dialect.Tx, error) {
	return traceTx(ctx, d, d.Driver)
}

func (d *DebugDriver) trace(ctx context.Context, e event, run func() error) error {
	if !d.logger.Enabled(ctx, slog.LevelDebug) {
		return run()
	}
	start := time.Now()
	err := run()
	attrs := make([]slog.Attr, 0, 6)
	if e.statement() {
		attrs = append(attrs,
			slog.String("kind", ClassifyStatement(e.query).String()),
			slog.String("query", e.query),
			slog.Any("args", e.args),
		)
	}
	attrs = append(attrs, slog.Bool("tx", e.tx), slog.Duration("duration", time.Since(start)))
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	d.logger.LogAttrs(ctx, slog.LevelDebug, e.op, attrs...)
	return err
}

var (
	_ dialect.Driver = (*StatsDriver)(nil)
	_ dialect.Driver = (*DebugDriver)(nil)
	_ dialect.Tx     = (*tracedTx)(nil)
	_ tracer         = (*StatsDriver)(nil)
	_ tracer         = (*DebugDriver)(nil)
)
