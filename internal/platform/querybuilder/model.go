package querybuilder

import (
	"errors"
	"reflect"
	"strings"
)

// InsertModel builds an INSERT from the db-tagged exported fields of model.
func InsertModel(table string, model any) (*InsertBuilder, error) {
	cols, vals, err := columnsAndValues(model)
	if err != nil {
		return nil, err
	}
	return InsertInto(table).Columns(cols...).Values(vals...), nil
}

// ColumnsOf lists the db column names of a model type in field order.
func ColumnsOf(model any) []string {
	cols, _, err := columnsAndValues(model)
	if err != nil {
		return nil
	}
	return cols
}

// Without returns cols minus the excluded names, keeping order.
func Without(cols []string, exclude ...string) []string {
	skip := make(map[string]struct{}, len(exclude))
	for _, c := range exclude {
		skip[c] = struct{}{}
	}
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if _, ok := skip[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}

func columnsAndValues(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, errors.New("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, errors.New("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}
	if len(cols) == 0 {
		return nil, nil, errNoColumns
	}
	return cols, vals, nil
}
