package postgres

import (
	"reflect"
	"sync"
)

// ExtractDBColumns lists column names from "db" tags, descending into
// embedded structs. Called once per repository at construction.
//
//	ExtractDBColumns[shop.Shop]() // ["id", "deletion_mark", "version", "name", "number", "address"]
func ExtractDBColumns[T any]() []string {
	var zero T
	return columnsOf(reflect.TypeOf(zero))
}

func columnsOf(t reflect.Type) []string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	meta := metadataOf(t)
	cols := make([]string, 0, len(meta.fields))
	for _, f := range meta.fields {
		if f.embedded {
			cols = append(cols, columnsOf(t.Field(f.index).Type)...)
			continue
		}
		cols = append(cols, f.column)
	}
	return cols
}

type fieldInfo struct {
	index    int
	column   string
	embedded bool
}

type typeMetadata struct {
	fields []fieldInfo // in declaration order
}

var typeCache sync.Map // map[reflect.Type]*typeMetadata

func metadataOf(t reflect.Type) *typeMetadata {
	if cached, ok := typeCache.Load(t); ok {
		return cached.(*typeMetadata)
	}

	meta := &typeMetadata{}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			meta.fields = append(meta.fields, fieldInfo{index: i, embedded: true})
			continue
		}
		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		meta.fields = append(meta.fields, fieldInfo{index: i, column: tag})
	}

	actual, _ := typeCache.LoadOrStore(t, meta)
	return actual.(*typeMetadata)
}

// StructToMap converts a struct (or pointer to one) to column → value using "db" tags.
func StructToMap(v any) map[string]any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	res := make(map[string]any)
	collect(rv, res)
	return res
}

func collect(rv reflect.Value, into map[string]any) {
	for _, f := range metadataOf(rv.Type()).fields {
		fv := rv.Field(f.index)
		if !f.embedded {
			into[f.column] = fv.Interface()
			continue
		}
		if fv.Kind() == reflect.Ptr {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		if fv.Kind() == reflect.Struct {
			collect(fv, into)
		}
	}
}
