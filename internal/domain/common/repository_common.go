// internal/domain/common/repository_common.go
package common

import (
	"errors"
	"strings"
)

// ErrNotFound is returned by stores when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Fields is the persisted shape of a document: field name -> value.
type Fields = map[string]any

// Document is a stored record together with its document id.
type Document struct {
	ID     string
	Fields Fields
}

// String returns the string value of field key, or "" when absent or not a string.
func (d Document) String(key string) string {
	if d.Fields == nil {
		return ""
	}
	if v, ok := d.Fields[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// Has reports whether field key is present.
func (d Document) Has(key string) bool {
	if d.Fields == nil {
		return false
	}
	_, ok := d.Fields[key]
	return ok
}
