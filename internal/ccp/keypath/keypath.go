// Package keypath navigates and mutates decoded JSON documents using dotted
// key paths such as "env.ANTHROPIC_BASE_URL". The dot is strictly a separator:
// keys containing literal dots cannot be addressed. Paths address nested
// objects only; arrays are not indexable.
package keypath

import (
	"fmt"
	"strings"

	"github.com/example/claude-code-profiles/internal/ccp/domain"
)

// Get resolves path inside doc and returns a deep copy of the value together
// with whether it was found. A missing segment or a non-object intermediate
// node is a benign not-found, never an error.
func Get(doc any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	current := doc
	for _, segment := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[segment]
		if !ok {
			return nil, false
		}
	}
	return deepCopy(current), true
}

// Set inserts or overwrites the value at path, creating empty intermediate
// objects for missing segments. When an existing intermediate node is not an
// object, Set fails with domain.ErrTypeMismatch; objects auto-created before
// that point are not rolled back.
func Set(doc any, path string, value any) error {
	if path == "" {
		return domain.ErrKeyPathEmpty
	}
	segments := strings.Split(path, ".")
	current := doc
	blocking := "document root"
	for i, segment := range segments {
		obj, ok := current.(map[string]any)
		if !ok {
			return fmt.Errorf("cannot set %q: %s is not an object: %w", path, blocking, domain.ErrTypeMismatch)
		}
		if i == len(segments)-1 {
			obj[segment] = value
			return nil
		}
		next, exists := obj[segment]
		if !exists {
			next = map[string]any{}
			obj[segment] = next
		}
		current = next
		blocking = fmt.Sprintf("%q", segment)
	}
	return nil
}

// Unset removes the key at path from its containing object and reports whether
// a removal occurred. It follows existing structure only: a missing or
// non-object intermediate yields false without error.
func Unset(doc any, path string) bool {
	if path == "" {
		return false
	}
	segments := strings.Split(path, ".")
	current := doc
	for i, segment := range segments {
		obj, ok := current.(map[string]any)
		if !ok {
			return false
		}
		if i == len(segments)-1 {
			if _, exists := obj[segment]; !exists {
				return false
			}
			delete(obj, segment)
			return true
		}
		next, exists := obj[segment]
		if !exists {
			return false
		}
		current = next
	}
	return false
}

func deepCopy(value any) any {
	switch v := value.(type) {
	case map[string]any:
		copied := make(map[string]any, len(v))
		for key, item := range v {
			copied[key] = deepCopy(item)
		}
		return copied
	case []any:
		copied := make([]any, len(v))
		for i, item := range v {
			copied[i] = deepCopy(item)
		}
		return copied
	default:
		return v
	}
}
