package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/leapdb/leap"
	"github.com/leapdb/leap/dialect"
	"github.com/leapdb/leap/dialect/sql/sqllex"
)

// resetTimeout bounds the statements that clear session variables before a
// pinned connection returns to the pool.
const resetTimeout = 5 * time.Second

type sessionKey struct{}

type sessionVar struct{ name, value string }

// WithVar returns a context that sets the session variable name to value
// before every statement executed with it. Outside a transaction the
// statement runs on a dedicated connection and the variable is cleared
// afterwards.
//
// The variable is set with SET/RESET on PostgreSQL, SET SESSION on the
// MySQL family, sp_set_session_context on SQL Server and PRAGMA on SQLite.
func WithVar(ctx context.Context, name, value string) context.Context {
	vars, _ := ctx.Value(sessionKey{}).([]sessionVar)
	return context.WithValue(ctx, sessionKey{}, append(slices.Clip(vars), sessionVar{name, value}))
}

// WithIntVar calls WithVar with the decimal form of value.
func WithIntVar(ctx context.Context, name string, value int) context.Context {
	return WithVar(ctx, name, strconv.Itoa(value))
}

// VarFromContext returns the last value set for name on ctx.
func VarFromContext(ctx context.Context, name string) (string, bool) {
	vars, _ := ctx.Value(sessionKey{}).([]sessionVar)
	for i := len(vars) - 1; i >= 0; i-- {
		if vars[i].name == name {
			return vars[i].value, true
		}
	}
	return "", false
}

// sessionStatements returns the statements that set and clear a session
// variable in dialect d. An empty reset means the value cannot be cleared.
func sessionStatements(d, name, value string) (set, reset string, err error) {
	if !validVarName(name) {
		return "", "", leap.NewInvalidArgumentError("WithVar", name, "invalid session variable name")
	}
	switch {
	case d == dialect.Postgres:
		return "SET " + name + " = " + QuoteString(d, value), "RESET " + name, nil
	case dialect.IsMySQLFamily(d):
		return "SET SESSION " + name + " = " + QuoteString(d, value), "SET SESSION " + name + " = DEFAULT", nil
	case d == dialect.MsSQL:
		key := "EXEC sp_set_session_context @key = " + QuoteString(d, name) + ", @value = "
		return key + QuoteString(d, value), key + "NULL", nil
	case d == dialect.SQLite:
		return "PRAGMA " + name + " = " + QuoteString(d, value), "", nil
	}
	return "", "", leap.NewInvalidArgumentError("WithVar", name, "session variables are not supported by "+d)
}

// validVarName reports whether name is an identifier or a dotted path of
// identifiers, such as search_path or app.tenant_id.
func validVarName(name string) bool {
	if name == "" || len(name) > 128 {
		return false
	}
	word := true
	for t := range sqllex.All(name) {
		switch {
		case word && t.IsWord():
		case !word && t.Kind == sqllex.Period:
		default:
			return false
		}
		word = !word
	}
	return !word
}

func noRelease() error { return nil }

// session applies the session variables of ctx. On a pool it pins a
// connection; release clears the variables and returns it.
func (c Conn) session(ctx context.Context) (ex ExecQuerier, release func() error, err error) {
	vars, _ := ctx.Value(sessionKey{}).([]sessionVar)
	if len(vars) == 0 {
		return c.ExecQuerier, noRelease, nil
	}
	type statements struct{ set, reset string }
	stmts := make([]statements, len(vars))
	for i, v := range vars {
		if stmts[i].set, stmts[i].reset, err = sessionStatements(c.dialect, v.name, v.value); err != nil {
			return nil, nil, err
		}
	}
	switch e := c.ExecQuerier.(type) {
	case *sql.Tx, *sql.Conn:
		// The variables live as long as the transaction or connection.
		ex, release = e, noRelease
	case *sql.DB:
		conn, err := e.Conn(ctx)
		if err != nil {
			return nil, nil, err
		}
		var resets []string
		seen := make(map[string]bool, len(vars))
		for i, v := range vars {
			if !seen[v.name] && stmts[i].reset != "" {
				resets = append(resets, stmts[i].reset)
			}
			seen[v.name] = true
		}
		ex, release = conn, func() error {
			// The caller's context may already be canceled.
			rctx, cancel := context.WithTimeout(context.Background(), resetTimeout)
			defer cancel()
			for _, q := range resets {
				if _, err := conn.ExecContext(rctx, q); err != nil {
					return errors.Join(err, conn.Close())
				}
			}
			return conn.Close()
		}
	default:
		return nil, nil, fmt.Errorf("session variables: unsupported ExecQuerier %T", c.ExecQuerier)
	}
	for _, s := range stmts {
		if _, err := ex.ExecContext(ctx, s.set); err != nil {
			return nil, nil, errors.Join(fmt.Errorf("set session variable: %w", err), release())
		}
	}
	return ex, release, nil
}
