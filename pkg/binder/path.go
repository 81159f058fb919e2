package binder

import (
	"fmt"
	"net/http"
	"reflect"
)

// PathExtractor returns the value of the named path parameter, or an empty
// string when the route has no such parameter. chi.URLParam satisfies it.
type PathExtractor func(r *http.Request, name string) string

// Path creates a binder for path parameters using the `path` tag.
//
//	router.Get("/{key}", handler.Wrap(getFlag,
//		handler.WithBinders[handler.Context, getFlagRequest](binder.Path(chi.URLParam)),
//	))
func Path(extract PathExtractor) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extract == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrFailedToParsePath)
		}

		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Ptr || rv.IsNil() {
			return fmt.Errorf("%w: target must be a non-nil pointer", ErrFailedToParsePath)
		}
		if rv.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a pointer to struct", ErrFailedToParsePath)
		}

		rt := rv.Elem().Type()
		values := make(map[string][]string, rt.NumField())
		for i := range rt.NumField() {
			sf := rt.Field(i)
			if !sf.IsExported() {
				continue
			}
			name, skip := parseFieldTag(sf, "path")
			if skip {
				continue
			}
			if val := extract(r, name); val != "" {
				values[name] = []string{val}
			}
		}

		return bindToStruct(v, "path", values, ErrFailedToParsePath)
	}
}
