package logger

import (
	"log/slog"
	"strconv"
)

// Attribute keys shared by every component of the service.
const (
	KeyError     = "error"
	KeyRequestID = "request_id"
	KeyTenantID  = "tenant_id"
	KeyFlag      = "flag"
	KeyPlan      = "plan"
	KeyComponent = "component"
)

// Group nests attrs under name.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err. Nil errors produce an empty Attr, which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any(KeyError, err)
}

// Errors groups the non-nil errs under "errors", keyed by their position.
func Errors(errs ...error) slog.Attr {
	var group []slog.Attr
	for i, err := range errs {
		if err != nil {
			group = append(group, slog.Any(strconv.Itoa(i), err))
		}
	}
	if group == nil {
		return slog.Attr{}
	}
	return Group("errors", group...)
}

func optional(key string, v any) slog.Attr {
	if v == nil {
		return slog.Attr{}
	}
	return slog.Any(key, v)
}

func RequestID(id any) slog.Attr { return optional(KeyRequestID, id) }
func TenantID(id any) slog.Attr { return optional(KeyTenantID, id) }

func FlagKey(key string) slog.Attr { return slog.String(KeyFlag, key) }
func Plan(name string) slog.Attr { return slog.String(KeyPlan, name) }
func Component(name string) slog.Attr { return slog.String(KeyComponent, name) }
func Event(name string) slog.Attr { return slog.String("event", name) }
func Attempt(n int) slog.Attr { return slog.Int("attempt", n) }
func Duration(d any) slog.Attr { return slog.Any("duration", d) }
