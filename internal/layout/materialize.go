package layout

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rileyhilliard/genui/internal/errors"
)

// FailureKind tells syntax failures from grammar failures.
type FailureKind int

const (
	// KindSyntax means the candidate is not parseable JSON.
	KindSyntax FailureKind = iota + 1
	// KindSchema means the candidate parsed but breaks the node grammar.
	KindSchema
)

func (k FailureKind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindSchema:
		return "schema"
	default:
		return "unknown"
	}
}

// Failure is returned by Materialize for malformed candidates. It is an
// ordinary value: streams hit it routinely while a document is still
// being generated.
type Failure struct {
	Kind   FailureKind
	Path   string
	Detail string
	Cause  error
}

func (f *Failure) Error() string {
	if f.Path == "" {
		return fmt.Sprintf("%s: %s", f.Kind, f.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", f.Kind, f.Path, f.Detail)
}

// Unwrap exposes the failure as a structured error so callers can use
// errors.IsCode with ErrSyntax or ErrSchema.
func (f *Failure) Unwrap() error {
	code := errors.ErrSchema
	if f.Kind == KindSyntax {
		code = errors.ErrSyntax
	}
	msg := f.Detail
	if f.Path != "" {
		msg = f.Path + ": " + f.Detail
	}
	return errors.WrapWithCode(f.Cause, code, msg, "")
}

// Materialize parses candidate as JSON and validates it against the node
// grammar. It has no side effects; the same candidate always yields the
// same result. Keys outside the grammar are ignored.
func Materialize(candidate string) (Node, error) {
	var doc any
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return nil, &Failure{Kind: KindSyntax, Detail: err.Error(), Cause: err}
	}
	return decodeNode(doc, "$")
}

func decodeNode(v any, path string) (Node, error) {
	obj, kind, err := object(v, path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindContainer:
		items, err := array(obj, "children", path)
		if err != nil {
			return nil, err
		}
		children := make([]Node, 0, len(items))
		for i, item := range items {
			child, err := decodeNode(item, childPath(path, i))
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		return &Container{Children: children}, nil

	case KindText:
		content, err := str(obj, "content", path)
		if err != nil {
			return nil, err
		}
		return &Text{Content: content}, nil

	case KindInput, KindButton:
		return decodeQuery(obj, kind, path)

	case KindForm:
		items, err := array(obj, "children", path)
		if err != nil {
			return nil, err
		}
		children := make([]FormItem, 0, len(items))
		for i, item := range items {
			p := childPath(path, i)
			itemObj, itemKind, err := object(item, p)
			if err != nil {
				return nil, err
			}
			if itemKind != KindInput && itemKind != KindButton {
				return nil, schemaFailure(p, "form children must be input or button, got %q", itemKind)
			}
			child, err := decodeQuery(itemObj, itemKind, p)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		return &Form{Children: children}, nil
	}

	return nil, schemaFailure(path, "unknown node id %q", kind)
}

func decodeQuery(obj map[string]any, kind Kind, path string) (FormItem, error) {
	queryID, err := str(obj, "queryId", path)
	if err != nil {
		return nil, err
	}
	query, err := str(obj, "query", path)
	if err != nil {
		return nil, err
	}
	if kind == KindInput {
		return &Input{QueryID: queryID, Query: query}, nil
	}
	return &Button{QueryID: queryID, Query: query}, nil
}

// object asserts v is a JSON object with a string "id".
func object(v any, path string) (map[string]any, Kind, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, "", schemaFailure(path, "expected object, got %s", typeName(v))
	}
	id, err := str(obj, "id", path)
	if err != nil {
		return nil, "", err
	}
	return obj, Kind(id), nil
}

func str(obj map[string]any, field, path string) (string, error) {
	raw, ok := obj[field]
	if !ok {
		return "", schemaFailure(path, "missing field %q", field)
	}
	s, ok := raw.(string)
	if !ok {
		return "", schemaFailure(path+"."+field, "expected string, got %s", typeName(raw))
	}
	return s, nil
}

func array(obj map[string]any, field, path string) ([]any, error) {
	raw, ok := obj[field]
	if !ok {
		return nil, schemaFailure(path, "missing field %q", field)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, schemaFailure(path+"."+field, "expected array, got %s", typeName(raw))
	}
	return items, nil
}

func childPath(path string, i int) string {
	return path + ".children[" + strconv.Itoa(i) + "]"
}

func schemaFailure(path, format string, args ...any) *Failure {
	return &Failure{Kind: KindSchema, Path: path, Detail: fmt.Sprintf(format, args...)}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
