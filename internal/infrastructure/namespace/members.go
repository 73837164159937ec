package namespace

import (
	"reflect"
	"sort"
	"strings"
)

// Members lists the attribute names reachable from v: exported methods
// (promoted ones included), visible struct fields under their expr tag
// name, and string map keys.
func Members(v any) []string {
	if v == nil {
		return nil
	}
	seen := make(map[string]struct{})
	rv := reflect.ValueOf(v)

	addMethods(rv.Type(), seen)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return sorted(seen)
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		for _, f := range reflect.VisibleFields(rv.Type()) {
			if !f.IsExported() || f.Anonymous {
				continue
			}
			if name, ok := fieldName(f); ok {
				seen[name] = struct{}{}
			}
		}
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			for _, key := range rv.MapKeys() {
				seen[key.String()] = struct{}{}
			}
		}
	}
	return sorted(seen)
}

func addMethods(t reflect.Type, seen map[string]struct{}) {
	for i := 0; i < t.NumMethod(); i++ {
		if m := t.Method(i); m.IsExported() {
			seen[m.Name] = struct{}{}
		}
	}
}

func fieldName(f reflect.StructField) (string, bool) {
	tag, ok := f.Tag.Lookup("expr")
	if !ok {
		return f.Name, true
	}
	name, _, _ := strings.Cut(tag, ",")
	switch name {
	case "-":
		return "", false
	case "":
		return f.Name, true
	}
	return name, true
}

func sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
