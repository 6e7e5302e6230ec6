package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// ErrUnsupportedSchema is returned by [FromJSONSchema] when a
// *jsonschema.Schema has no type information this package's Kind set can
// represent (e.g. the unconstrained "true" schema, or a bare "not").
var ErrUnsupportedSchema = errors.New("unsupported json schema shape")

// FromJSONSchema adapts a *jsonschema.Schema -- the schema representation
// github.com/google/jsonschema-go/jsonschema produces -- into this
// package's introspection surface. $ref/$defs pairs become [LazySchema]
// nodes, so a self-referential schema (built by hand, or emitted by a
// reflector over a recursive Go type) resolves into a working recursive
// [Schema] without the caller writing a thunk themselves.
func FromJSONSchema(js *jsonschema.Schema) (Schema, error) {
	c := &converter{
		defs:  collectDefs(js),
		cache: make(map[string]*LazySchema),
	}

	return c.convert(js)
}

type converter struct {
	defs  map[string]*jsonschema.Schema
	cache map[string]*LazySchema
}

func collectDefs(js *jsonschema.Schema) map[string]*jsonschema.Schema {
	defs := make(map[string]*jsonschema.Schema)

	for name, s := range js.Definitions {
		defs[name] = s
	}

	for name, s := range js.Defs {
		defs[name] = s
	}

	return defs
}

func (c *converter) convert(js *jsonschema.Schema) (Schema, error) {
	if js == nil {
		return nil, fmt.Errorf("%w: nil schema", ErrUnsupportedSchema)
	}

	if js.Ref != "" {
		return c.lazyForRef(js.Ref), nil
	}

	if js.Const != nil {
		return Literal(*js.Const), nil
	}

	if len(js.Enum) > 0 {
		return enumFromAny(js.Enum), nil
	}

	if len(js.OneOf) > 0 {
		return c.convertArms(js.OneOf)
	}

	if len(js.AnyOf) > 0 {
		return c.convertArms(js.AnyOf)
	}

	types := effectiveTypes(js)

	// A type list including "null" alongside exactly one other type is the
	// conventional JSON Schema spelling of nullable; split it into a
	// NullableSchema wrapping the remaining type.
	if len(types) == 2 && containsStr(types, "null") {
		other := types[0]
		if other == "null" {
			other = types[1]
		}

		inner, err := c.convertTyped(js, other)
		if err != nil {
			return nil, err
		}

		return Nullable(inner), nil
	}

	var t string
	if len(types) == 1 {
		t = types[0]
	}

	result, err := c.convertTyped(js, t)
	if err != nil {
		return nil, err
	}

	if len(js.Default) > 0 {
		var def any

		if jsonErr := json.Unmarshal(js.Default, &def); jsonErr == nil {
			return Default(result, def), nil
		}
	}

	return result, nil
}

func (c *converter) convertTyped(js *jsonschema.Schema, t string) (Schema, error) {
	switch t {
	case "string":
		return String(), nil
	case "integer":
		return Integer(), nil
	case "number":
		return Number(), nil
	case "boolean":
		return Boolean(), nil
	case "null":
		return Null(), nil
	case "array":
		return c.convertArray(js)
	case "object":
		return c.convertObject(js)
	case "":
		// No explicit type: fall back to structural inference, the way
		// magicschema/infer.go infers a type from YAML shape when an
		// annotation is silent on it.
		switch {
		case js.Properties != nil:
			return c.convertObject(js)
		case js.Items != nil:
			return c.convertArray(js)
		default:
			return nil, fmt.Errorf("%w: no type, properties, or items", ErrUnsupportedSchema)
		}
	default:
		return nil, fmt.Errorf("%w: type %q", ErrUnsupportedSchema, t)
	}
}

func (c *converter) convertArray(js *jsonschema.Schema) (Schema, error) {
	if js.Items == nil {
		return Array(String()), nil
	}

	elem, err := c.convert(js.Items)
	if err != nil {
		return nil, fmt.Errorf("array items: %w", err)
	}

	return Array(elem), nil
}

func (c *converter) convertObject(js *jsonschema.Schema) (Schema, error) {
	// An object schema with no declared properties, but an
	// AdditionalProperties sub-schema, is a map rather than a fixed-field
	// object.
	if len(js.Properties) == 0 && js.AdditionalProperties != nil {
		val, err := c.convert(js.AdditionalProperties)
		if err != nil {
			return nil, fmt.Errorf("map value: %w", err)
		}

		return Map(String(), val), nil
	}

	required := make(map[string]bool, len(js.Required))
	for _, name := range js.Required {
		required[name] = true
	}

	names := propertyOrder(js)

	fields := make([]Field, 0, len(names))

	for _, name := range names {
		propSchema, ok := js.Properties[name]
		if !ok {
			continue
		}

		fieldSchema, err := c.convert(propSchema)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}

		fields = append(fields, Field{
			Name:     name,
			Schema:   fieldSchema,
			Required: required[name],
		})
	}

	return Object(js.Title, fields...), nil
}

func (c *converter) convertArms(arms []*jsonschema.Schema) (Schema, error) {
	converted := make([]Schema, 0, len(arms))

	for i, arm := range arms {
		s, err := c.convert(arm)
		if err != nil {
			return nil, fmt.Errorf("union arm %d: %w", i, err)
		}

		converted = append(converted, s)
	}

	return Union(converted...), nil
}

// lazyForRef resolves a $ref (e.g. "#/$defs/JsonValue" or
// "#/definitions/JsonValue") against the root schema's Defs/Definitions,
// memoizing on the ref string so repeated references to the same
// definition -- including the cycle that makes the schema recursive in
// the first place -- share one *LazySchema identity.
func (c *converter) lazyForRef(ref string) *LazySchema {
	if existing, ok := c.cache[ref]; ok {
		return existing
	}

	lazy := Lazy(func() Schema {
		name := refName(ref)

		target, ok := c.defs[name]
		if !ok {
			return Null()
		}

		resolved, err := c.convert(target)
		if err != nil {
			return Null()
		}

		return resolved
	})

	c.cache[ref] = lazy

	return lazy
}

func refName(ref string) string {
	idx := strings.LastIndex(ref, "/")
	if idx < 0 {
		return ref
	}

	return ref[idx+1:]
}

func effectiveTypes(js *jsonschema.Schema) []string {
	if js.Type != "" {
		return []string{js.Type}
	}

	return js.Types
}

func containsStr(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}

	return false
}

func propertyOrder(js *jsonschema.Schema) []string {
	if len(js.PropertyOrder) > 0 {
		seen := make(map[string]bool, len(js.PropertyOrder))

		names := make([]string, 0, len(js.PropertyOrder))

		for _, name := range js.PropertyOrder {
			if _, ok := js.Properties[name]; ok && !seen[name] {
				names = append(names, name)
				seen[name] = true
			}
		}

		for name := range js.Properties {
			if !seen[name] {
				names = append(names, name)
			}
		}

		return names
	}

	names := make([]string, 0, len(js.Properties))
	for name := range js.Properties {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func enumFromAny(values []any) *EnumSchema {
	members := make([]EnumMember, 0, len(values))

	for _, v := range values {
		members = append(members, EnumMember{Name: fmt.Sprint(v)})
	}

	return Enum(members...)
}
