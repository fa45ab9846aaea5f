package admin

import (
	"reflect"
	"strings"
	"unicode"
)

// fieldNames returns the set of declared field names of a model in
// snake_case, matching the column naming of the persistence layer.
// Fields explicitly excluded from persistence (gorm:"-") are skipped.
func fieldNames(model any) map[string]bool {
	t := reflect.TypeOf(model)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	out := make(map[string]bool)
	if t.Kind() != reflect.Struct {
		return out
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		if tag := field.Tag.Get("gorm"); tag == "-" {
			continue
		}

		out[snakeCase(field.Name)] = true
	}

	return out
}

// hasAccessor reports whether the model declares a computed accessor for the
// given snake_case name, i.e. an exported niladic method with the camel-case
// spelling ("get_name" resolves to GetName).
func hasAccessor(model any, name string) bool {
	t := reflect.TypeOf(model)
	if t == nil {
		return false
	}

	// methods with pointer receivers are only in the pointer method set
	if t.Kind() != reflect.Pointer {
		t = reflect.PointerTo(t)
	}

	method, ok := t.MethodByName(camelCase(name))
	if !ok {
		return false
	}

	// receiver only, single return value
	return method.Type.NumIn() == 1 && method.Type.NumOut() == 1
}

// snakeCase converts an exported Go identifier to its snake_case field name.
// Initialisms are kept together: SiteID becomes site_id.
func snakeCase(in string) string {
	var out strings.Builder

	runes := []rune(in)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]))
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if i > 0 && (prevLower || nextLower) {
				out.WriteByte('_')
			}

			out.WriteRune(unicode.ToLower(r))

			continue
		}

		out.WriteRune(r)
	}

	return out.String()
}

// camelCase converts a snake_case name to its exported Go spelling.
func camelCase(in string) string {
	var out strings.Builder

	for _, part := range strings.Split(in, "_") {
		if part == "" {
			continue
		}

		runes := []rune(part)
		out.WriteRune(unicode.ToUpper(runes[0]))
		out.WriteString(string(runes[1:]))
	}

	return out.String()
}
