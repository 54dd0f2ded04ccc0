package querybuilder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// InsertModel inserts one struct whose exported fields carry db tags.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	layout, value, err := layoutOf(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).
		Columns(layout.columns...).
		Values(layout.values(value)...).
		Suffix(suffix).
		ToSQL()
}

// InsertModels builds one multi-row insert. Every model must expose the same
// db columns.
func InsertModels[T any](table string, models []T, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, errors.New("insert models are required")
	}

	builder := InsertInto(table).Suffix(suffix)
	var first *modelLayout
	for i, model := range models {
		layout, value, err := layoutOf(model)
		if err != nil {
			return "", nil, fmt.Errorf("model %d: %w", i, err)
		}
		if first == nil {
			first = layout
			builder.Columns(layout.columns...)
		} else if layout != first {
			return "", nil, fmt.Errorf("model %d columns differ from model 0", i)
		}
		builder.Values(layout.values(value)...)
	}
	return builder.ToSQL()
}

// modelLayout maps db columns to struct field indexes for one type.
type modelLayout struct {
	columns []string
	fields  []int
}

func (l *modelLayout) values(v reflect.Value) []any {
	out := make([]any, len(l.fields))
	for i, idx := range l.fields {
		out[i] = v.Field(idx).Interface()
	}
	return out
}

var layouts sync.Map // reflect.Type -> *modelLayout

func layoutOf(model any) (*modelLayout, reflect.Value, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, value, errors.New("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, value, errors.New("model must be struct")
	}

	if cached, ok := layouts.Load(value.Type()); ok {
		return cached.(*modelLayout), value, nil
	}
	layout := buildLayout(value.Type())
	if len(layout.columns) == 0 {
		return nil, value, errors.New("model has no db columns")
	}
	actual, _ := layouts.LoadOrStore(value.Type(), layout)
	return actual.(*modelLayout), value, nil
}

func buildLayout(typ reflect.Type) *modelLayout {
	layout := &modelLayout{}
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		layout.columns = append(layout.columns, name)
		layout.fields = append(layout.fields, i)
	}
	return layout
}
