package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Username records the account name under the key "username".
func Username(name string) slog.Attr {
	return slog.String("username", name)
}

// ProductID records the product identifier under the key "product_id".
// If id is nil, it returns an empty Attr.
func ProductID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("product_id", id)
}
