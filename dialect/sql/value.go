package sql

import (
	"database/sql/driver"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/leapdb/leap"
)

// dateRe matches date and datetime literals that are quoted without escaping.
var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(\s\d{2}:\d{2}:\d{2})?$`)

// DateTimeFormat is the layout used for time.Time literals.
const DateTimeFormat = "2006-01-02 15:04:05"

func (p *precompiler) PrepareValue(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "NULL", nil
	case bool:
		if v {
			return "'1'", nil
		}
		return "'0'", nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return formatFloat(v), nil
	case string:
		return p.prepareString(v)
	case []byte:
		return p.prepareString(string(v))
	case decimal.Decimal:
		return v.String(), nil
	case time.Time:
		return "'" + v.Format(DateTimeFormat) + "'", nil
	case uuid.UUID:
		return "'" + v.String() + "'", nil
	case *Expression:
		return v.Value(p)
	case Statement:
		s, err := v.Statement(false)
		if err != nil {
			return "", err
		}
		return "(" + s + ")", nil
	case driver.Valuer:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "NULL", nil
		}
		dv, err := v.Value()
		if err != nil {
			return "", leap.NewInvalidArgumentError("PrepareValue", v, err.Error())
		}
		return p.PrepareValue(dv)
	}
	return p.prepareReflect(v)
}

// prepareReflect handles named types, pointers and collections.
func (p *precompiler) prepareReflect(v any) (string, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "NULL", nil
		}
		return p.PrepareValue(rv.Elem().Interface())
	case reflect.Bool:
		return p.PrepareValue(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return formatFloat(rv.Float()), nil
	case reflect.String:
		return p.prepareString(rv.String())
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			s, err := p.PrepareValue(rv.Index(i).Interface())
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "(" + strings.Join(parts, ", ") + ")", nil
	}
	return "", leap.NewInvalidArgumentError("PrepareValue", v, "unsupported value type")
}

func (p *precompiler) prepareString(s string) (string, error) {
	switch {
	case s == "":
		return "''", nil
	case dateRe.MatchString(s):
		return "'" + s + "'", nil
	}
	q, err := p.esc.Quote(s)
	if err != nil {
		return "", leap.NewInvalidArgumentError("PrepareValue", s, err.Error())
	}
	return q, nil
}

// formatFloat renders f in fixed notation with six decimals.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}
