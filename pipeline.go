package pipecheck

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Pipeline is the payload submitted by a graph editor.
type Pipeline struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node represents a vertex of the pipeline.
// Position, Data, Width and Height are display metadata; they are kept
// verbatim and never inspected.
type Node struct {
	ID       string          `json:"id" validate:"required"`
	Type     string          `json:"type,omitempty"`
	Position json.RawMessage `json:"position,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
	Width    json.RawMessage `json:"width,omitempty"`
	Height   json.RawMessage `json:"height,omitempty"`
}

// Edge represents a directed connection from Source to Target.
// ID is optional and not required to be unique.
type Edge struct {
	ID           string `json:"id,omitempty"`
	Source       string `json:"source" validate:"required"`
	Target       string `json:"target" validate:"required"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
	Type         string `json:"type,omitempty"`
}

// validate only reads the struct tags above; it is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Field names accepted in each object, taken from the json tags.
var (
	pipelineFields = jsonFieldNames(reflect.TypeFor[Pipeline]())
	nodeFields     = jsonFieldNames(reflect.TypeFor[Node]())
	edgeFields     = jsonFieldNames(reflect.TypeFor[Edge]())
)

func jsonFieldNames(t reflect.Type) []string {
	names := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			names = append(names, name)
		}
	}
	return names
}

// Decode parses a JSON payload into a Pipeline.
// Missing "nodes" or "edges" keys are treated as empty lists. Keys are
// matched exactly: "ID" is not accepted for "id".
func Decode(data []byte) (*Pipeline, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &InputError{Err: ErrMalformedInput, Detail: "payload must be a JSON object"}
	}
	if !utf8.Valid(trimmed) {
		return nil, &InputError{Err: ErrMalformedInput, Detail: "payload is not valid UTF-8"}
	}

	top, err := decodeObject(trimmed, "", pipelineFields)
	if err != nil {
		return nil, err
	}
	rawNodes, err := decodeList(top["nodes"], "nodes")
	if err != nil {
		return nil, err
	}
	rawEdges, err := decodeList(top["edges"], "edges")
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		Nodes: make([]Node, len(rawNodes)),
		Edges: make([]Edge, len(rawEdges)),
	}
	for i, raw := range rawNodes {
		if err := decodeRecord(raw, fmt.Sprintf("nodes[%d]", i), nodeFields, &p.Nodes[i]); err != nil {
			return nil, err
		}
	}
	for i, raw := range rawEdges {
		if err := decodeRecord(raw, fmt.Sprintf("edges[%d]", i), edgeFields, &p.Edges[i]); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// decodeObject decodes raw as a JSON object (null yields nil) and rejects
// keys that only differ in case from one of known.
func decodeObject(raw json.RawMessage, path string, known []string) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, decodeError(err, path, "object")
	}
	for key := range obj {
		for _, name := range known {
			if key != name && strings.EqualFold(key, name) {
				return nil, &InputError{
					Err:    ErrMalformedInput,
					Field:  joinPath(path, key),
					Detail: fmt.Sprintf("unknown field, expected %q", name),
				}
			}
		}
	}
	return obj, nil
}

func decodeList(raw json.RawMessage, path string) ([]json.RawMessage, error) {
	if raw == nil {
		return nil, nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, decodeError(err, path, "array")
	}
	return list, nil
}

func decodeRecord(raw json.RawMessage, path string, known []string, dst any) error {
	if _, err := decodeObject(raw, path, known); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return decodeError(err, path, "")
	}
	return nil
}

// decodeError converts a json error into an InputError located at path.
// want names the expected JSON kind when path itself has the wrong type.
func decodeError(err error, path, want string) error {
	ie := &InputError{Err: ErrMalformedInput, Field: path, Detail: err.Error()}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field != "" {
			ie.Field = joinPath(path, typeErr.Field)
			ie.Detail = fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value)
		} else {
			ie.Detail = fmt.Sprintf("expected %s, got %s", want, typeErr.Value)
		}
	}
	return ie
}

func joinPath(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}

// Validate checks that every record carries its required fields.
// It does not check id uniqueness or edge references; Build does.
func (p *Pipeline) Validate() error {
	for i := range p.Nodes {
		if err := checkRecord(&p.Nodes[i], fmt.Sprintf("nodes[%d]", i)); err != nil {
			return err
		}
	}
	for i := range p.Edges {
		if err := checkRecord(&p.Edges[i], fmt.Sprintf("edges[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func checkRecord(rec any, path string) error {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &InputError{
			Err:    ErrMalformedInput,
			Field:  path + "." + fe.Field(),
			Detail: "missing required field",
		}
	}
	return &InputError{Err: ErrMalformedInput, Field: path, Detail: err.Error()}
}
