package querybuilder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// InsertModel inserts one struct row. Columns come from exported fields
// tagged `db:"..."`; untagged and `db:"-"` fields are skipped.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	return InsertModels(table, []any{model}, suffix)
}

// InsertModels builds one multi-row INSERT from models of the same type.
func InsertModels[T any](table string, models []T, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, errors.New("insert: no models")
	}

	b := InsertInto(table).Suffix(suffix)
	for i, model := range models {
		v, err := structValue(model)
		if err != nil {
			return "", nil, fmt.Errorf("insert model %d: %w", i, err)
		}
		cols := dbColumns(v.Type())
		if len(cols) == 0 {
			return "", nil, fmt.Errorf("insert model %d: no db columns on %s", i, v.Type())
		}
		if i == 0 {
			names := make([]string, len(cols))
			for j, c := range cols {
				names[j] = c.name
			}
			b.Columns(names...)
		}
		row := make([]any, len(cols))
		for j, c := range cols {
			row[j] = v.Field(c.index).Interface()
		}
		b.Values(row...)
	}
	return b.ToSQL()
}

func structValue(model any) (reflect.Value, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, errors.New("nil model")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("model is %s, not a struct", v.Kind())
	}
	return v, nil
}

type dbColumn struct {
	name  string
	index int
}

var columnCache sync.Map // reflect.Type -> []dbColumn

func dbColumns(t reflect.Type) []dbColumn {
	if cached, ok := columnCache.Load(t); ok {
		return cached.([]dbColumn)
	}
	var cols []dbColumn
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		cols = append(cols, dbColumn{name: name, index: i})
	}
	columnCache.Store(t, cols)
	return cols
}
