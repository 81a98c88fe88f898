package postgres

import "reflect"

// StructToMap flattens a struct (including embedded structs) into a
// column map keyed by db tags. Fields without a db tag, or tagged "-",
// are skipped.
func StructToMap(v any) map[string]any {
	out := make(map[string]any)
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Struct {
		collectFields(rv, out)
	}
	return out
}

func collectFields(rv reflect.Value, out map[string]any) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			collectFields(rv.Field(i), out)
			continue
		}
		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		out[tag] = rv.Field(i).Interface()
	}
}

// ExtractDBColumns returns the db-tagged column names of T in
// declaration order, embedded structs first.
func ExtractDBColumns[T any]() []string {
	var zero T
	rt := reflect.TypeOf(zero)
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	var cols []string
	appendColumns(rt, &cols)
	return cols
}

func appendColumns(rt reflect.Type, cols *[]string) {
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			appendColumns(field.Type, cols)
			continue
		}
		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		*cols = append(*cols, tag)
	}
}
