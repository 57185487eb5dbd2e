package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// UpsertModels builds a multi-row upsert from structs tagged with `db`.
// All models must share one type.
func UpsertModels[T any](table string, conflictTarget []string, models []T) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("upsert %s: no rows", table)
	}

	builder := InsertInto(table)
	for i, model := range models {
		cols, vals, err := columnsAndValuesFromModel(model)
		if err != nil {
			return "", nil, fmt.Errorf("upsert %s row %d: %w", table, i, err)
		}
		if i == 0 {
			builder.Columns(cols...)
		}
		builder.Values(vals...)
	}

	if len(conflictTarget) == 0 {
		return builder.ToSQL()
	}
	return builder.OnConflictUpdate(conflictTarget).ToSQL()
}

// InsertModel builds a single-row insert that skips rows already present.
func InsertModel(table string, conflictTarget []string, model any) (string, []any, error) {
	cols, vals, err := columnsAndValuesFromModel(model)
	if err != nil {
		return "", nil, err
	}

	builder := InsertInto(table).Columns(cols...).Values(vals...)
	if len(conflictTarget) > 0 {
		builder.OnConflictDoNothing(conflictTarget...)
	}
	return builder.ToSQL()
}

// Columns lists the `db` columns of a model type in field order.
func Columns(model any) []string {
	cols, _, err := columnsAndValuesFromModel(model)
	if err != nil {
		return nil
	}
	return cols
}

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		col := strings.TrimSpace(strings.Split(field.Tag.Get("db"), ",")[0])
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}
