package binder

import (
	"reflect"
	"strings"
	"unicode"
)

// sanitizeStrings walks v and cleans every settable string in place.
// Raw JSON values ([]byte based types) are left untouched.
func sanitizeStrings(rv reflect.Value) {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if !rv.IsNil() {
			sanitizeStrings(rv.Elem())
		}
	case reflect.String:
		if rv.CanSet() {
			rv.SetString(sanitizeString(rv.String()))
		}
	case reflect.Struct:
		for i := range rv.NumField() {
			if f := rv.Field(i); f.CanSet() {
				sanitizeStrings(f)
			}
		}
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return
		}
		for i := range rv.Len() {
			sanitizeStrings(rv.Index(i))
		}
	}
}

// sanitizeString trims surrounding whitespace and drops control characters
// other than tab and newline.
func sanitizeString(s string) string {
	s = strings.TrimSpace(s)
	if strings.IndexFunc(s, isStrippable) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isStrippable(r) {
			return -1
		}
		return r
	}, s)
}

func isStrippable(r rune) bool {
	return unicode.IsControl(r) && r != '\t' && r != '\n'
}
