/**
 * Copyright (c) 2019, The Sable Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package graphql implements the core of a GraphQL engine: the type system, validation of parsed
// query documents against a schema, coercion of input values, and execution of operations against
// a resolver graph.
package graphql

import (
	"context"
	"fmt"

	"github.com/sablegql/sable/graphql/language/ast"
)

// Type is implemented by the closed set of type variants: Scalar, Object, Interface, Union, Enum,
// InputObject, List and NonNull.
type Type interface {
	// String renders the type reference, e.g. "[Episode!]".
	String() string

	typeMarker()
}

// Named returns the underlying type with any List and NonNull wrappers removed.
func Named(t Type) Type {
	for {
		switch wrapper := t.(type) {
		case *List:
			t = wrapper.OfType
		case *NonNull:
			t = wrapper.OfType
		default:
			return t
		}
	}
}

// Nullable returns the type with a directly enclosing NonNull wrapper removed.
func Nullable(t Type) Type {
	if nonNull, ok := t.(*NonNull); ok {
		return nonNull.OfType
	}
	return t
}

// TypeName returns the name of a named type and "" for wrappers.
func TypeName(t Type) string {
	switch t := t.(type) {
	case *Scalar:
		return t.Name
	case *Object:
		return t.Name
	case *Interface:
		return t.Name
	case *Union:
		return t.Name
	case *Enum:
		return t.Name
	case *InputObject:
		return t.Name
	}
	return ""
}

// IsInputType reports whether values of the type can be supplied as arguments and variables:
// scalars, enums, input objects, and List/NonNull wrappings thereof.
func IsInputType(t Type) bool {
	switch Named(t).(type) {
	case *Scalar, *Enum, *InputObject:
		return true
	}
	return false
}

// IsCompositeType reports whether the type can be selected into: Object, Interface or Union.
func IsCompositeType(t Type) bool {
	switch t.(type) {
	case *Object, *Interface, *Union:
		return true
	}
	return false
}

// IsLeafType reports whether execution terminates at the type: Scalar or Enum.
func IsLeafType(t Type) bool {
	switch t.(type) {
	case *Scalar, *Enum:
		return true
	}
	return false
}

// Abstract is implemented by Interface and Union: the types whose concrete Object is only known
// at execution time.
type Abstract interface {
	Type

	// PossibleType resolves a field value to the Object type it represents, nil when it cannot.
	PossibleType(value interface{}, info ResolveInfo) *Object

	// IsPossibleType reports whether t can satisfy the abstract type.
	IsPossibleType(t *Object) bool

	// PossibleTypes enumerates the Object types that can satisfy the abstract type.
	PossibleTypes() []*Object
}

//===------------------------------------------------------------------------------------------===//
// Scalar
//===------------------------------------------------------------------------------------------===//

// SerializeFn coerces an internal value for return in a result. A nil result marks the value as
// not serializable; the field then resolves to null.
type SerializeFn func(value interface{}) interface{}

// ParseValueFn coerces a variable value into the internal representation; nil marks failure.
type ParseValueFn func(value interface{}) interface{}

// ParseLiteralFn coerces a literal from the query document; nil marks failure.
type ParseLiteralFn func(valueAST ast.Value) interface{}

// ScalarConfig describes a Scalar to create.
type ScalarConfig struct {
	Name         string
	Description  string
	Serialize    SerializeFn
	ParseValue   ParseValueFn
	ParseLiteral ParseLiteralFn
}

// Scalar is a leaf type whose values are produced and consumed through its three coercion
// functions.
type Scalar struct {
	Name        string
	Description string

	serialize    SerializeFn
	parseValue   ParseValueFn
	parseLiteral ParseLiteralFn
}

// NewScalar defines a scalar type. Serialize is required.
func NewScalar(config ScalarConfig) *Scalar {
	if config.Name == "" {
		panic("Scalar must be named.")
	}
	if config.Serialize == nil {
		panic(fmt.Sprintf("%v must provide \"serialize\" function.", config.Name))
	}
	return &Scalar{
		Name:         config.Name,
		Description:  config.Description,
		serialize:    config.Serialize,
		parseValue:   config.ParseValue,
		parseLiteral: config.ParseLiteral,
	}
}

// Serialize coerces an internal value for output; nil when the value cannot be represented.
func (t *Scalar) Serialize(value interface{}) interface{} {
	return t.serialize(value)
}

// ParseValue coerces a variable value; nil on failure.
func (t *Scalar) ParseValue(value interface{}) interface{} {
	if t.parseValue == nil {
		return nil
	}
	return t.parseValue(value)
}

// ParseLiteral coerces a literal from the document; nil on failure.
func (t *Scalar) ParseLiteral(valueAST ast.Value) interface{} {
	if t.parseLiteral == nil {
		return nil
	}
	return t.parseLiteral(valueAST)
}

// String implements Type.
func (t *Scalar) String() string { return t.Name }

func (*Scalar) typeMarker() {}

//===------------------------------------------------------------------------------------------===//
// Object
//===------------------------------------------------------------------------------------------===//

// ResolveParams carries the inputs of one resolver call.
type ResolveParams struct {
	// Source is the value the enclosing field resolved to.
	Source interface{}

	// Args are the coerced argument values for the field.
	Args map[string]interface{}

	// Info describes the field and the execution it is part of.
	Info ResolveInfo

	// Context is the request context the execution was started with.
	Context context.Context
}

// ResolveFn computes the value of one field.
type ResolveFn func(p ResolveParams) (interface{}, error)

// IsTypeOfFn reports whether a field value belongs to the Object the function is attached to. It
// backs abstract type resolution when an Interface or Union has no ResolveType of its own.
type IsTypeOfFn func(value interface{}, info ResolveInfo) bool

// ResolveTypeFn resolves a field value of an abstract type to its concrete Object.
type ResolveTypeFn func(value interface{}, info ResolveInfo) *Object

// FieldDefinition describes one field of an Object or Interface.
type FieldDefinition struct {
	Type              Type
	Args              FieldArgs
	Resolve           ResolveFn
	Description       string
	DeprecationReason string
}

// Fields maps field names to their definitions.
type Fields map[string]*FieldDefinition

// FieldsThunk defers the field map so mutually recursive types can reference each other. It is
// invoked once, when the fields are first needed.
type FieldsThunk func() Fields

// ArgumentConfig describes one argument taken by a field or a directive.
type ArgumentConfig struct {
	Type         Type
	DefaultValue interface{}
	Description  string
}

// FieldArgs maps argument names to their configurations.
type FieldArgs map[string]*ArgumentConfig

// ObjectConfig describes an Object to create. Exactly one of Fields and FieldsThunk supplies the
// field map; the thunk form breaks definition cycles.
type ObjectConfig struct {
	Name        string
	Description string
	Interfaces  []*Interface
	Fields      Fields
	FieldsThunk FieldsThunk
	IsTypeOf    IsTypeOfFn
}

// Object is a composite output type: named, implementing interfaces, and carrying resolvable
// fields.
type Object struct {
	Name        string
	Description string
	IsTypeOf    IsTypeOfFn

	interfaces  []*Interface
	fields      Fields
	fieldsThunk FieldsThunk
}

// NewObject defines an object type.
func NewObject(config ObjectConfig) *Object {
	if config.Name == "" {
		panic("Object must be named.")
	}
	return &Object{
		Name:        config.Name,
		Description: config.Description,
		IsTypeOf:    config.IsTypeOf,
		interfaces:  config.Interfaces,
		fields:      config.Fields,
		fieldsThunk: config.FieldsThunk,
	}
}

// Fields returns the field map, forcing the thunk on first use.
func (t *Object) Fields() Fields {
	if t.fields == nil && t.fieldsThunk != nil {
		t.fields = t.fieldsThunk()
		t.fieldsThunk = nil
	}
	return t.fields
}

// Interfaces returns the interfaces the object implements.
func (t *Object) Interfaces() []*Interface {
	return t.interfaces
}

// String implements Type.
func (t *Object) String() string { return t.Name }

func (*Object) typeMarker() {}

//===------------------------------------------------------------------------------------------===//
// Interface
//===------------------------------------------------------------------------------------------===//

// InterfaceConfig describes an Interface to create.
type InterfaceConfig struct {
	Name        string
	Description string
	Fields      Fields
	FieldsThunk FieldsThunk
	ResolveType ResolveTypeFn
}

// Interface is an abstract type listing the fields its possible Object types share.
type Interface struct {
	Name        string
	Description string
	ResolveType ResolveTypeFn

	fields      Fields
	fieldsThunk FieldsThunk

	// The objects declaring this interface; recorded when the schema's type map is built.
	possibleTypes []*Object
}

// NewInterface defines an interface type.
func NewInterface(config InterfaceConfig) *Interface {
	if config.Name == "" {
		panic("Interface must be named.")
	}
	return &Interface{
		Name:        config.Name,
		Description: config.Description,
		ResolveType: config.ResolveType,
		fields:      config.Fields,
		fieldsThunk: config.FieldsThunk,
	}
}

// Fields returns the field map, forcing the thunk on first use.
func (t *Interface) Fields() Fields {
	if t.fields == nil && t.fieldsThunk != nil {
		t.fields = t.fieldsThunk()
		t.fieldsThunk = nil
	}
	return t.fields
}

// PossibleType implements Abstract.
func (t *Interface) PossibleType(value interface{}, info ResolveInfo) *Object {
	if t.ResolveType != nil {
		return t.ResolveType(value, info)
	}
	return defaultResolveType(value, info, t.possibleTypes)
}

// IsPossibleType implements Abstract.
func (t *Interface) IsPossibleType(object *Object) bool {
	for _, possible := range t.possibleTypes {
		if possible == object {
			return true
		}
	}
	return false
}

// PossibleTypes implements Abstract.
func (t *Interface) PossibleTypes() []*Object {
	return t.possibleTypes
}

// String implements Type.
func (t *Interface) String() string { return t.Name }

func (*Interface) typeMarker() {}

//===------------------------------------------------------------------------------------------===//
// Union
//===------------------------------------------------------------------------------------------===//

// UnionConfig describes a Union to create.
type UnionConfig struct {
	Name        string
	Description string
	Types       []*Object
	ResolveType ResolveTypeFn
}

// Union is an abstract type enumerating the Object types a value may take.
type Union struct {
	Name        string
	Description string
	ResolveType ResolveTypeFn

	types []*Object
}

// NewUnion defines a union type.
func NewUnion(config UnionConfig) *Union {
	if config.Name == "" {
		panic("Union must be named.")
	}
	if len(config.Types) == 0 {
		panic(fmt.Sprintf("Must provide types for Union %v.", config.Name))
	}
	return &Union{
		Name:        config.Name,
		Description: config.Description,
		ResolveType: config.ResolveType,
		types:       config.Types,
	}
}

// PossibleType implements Abstract.
func (t *Union) PossibleType(value interface{}, info ResolveInfo) *Object {
	if t.ResolveType != nil {
		return t.ResolveType(value, info)
	}
	return defaultResolveType(value, info, t.types)
}

// IsPossibleType implements Abstract.
func (t *Union) IsPossibleType(object *Object) bool {
	for _, possible := range t.types {
		if possible == object {
			return true
		}
	}
	return false
}

// PossibleTypes implements Abstract.
func (t *Union) PossibleTypes() []*Object {
	return t.types
}

// String implements Type.
func (t *Union) String() string { return t.Name }

func (*Union) typeMarker() {}

// defaultResolveType probes the possible types' IsTypeOf predicates.
func defaultResolveType(value interface{}, info ResolveInfo, possibleTypes []*Object) *Object {
	for _, possible := range possibleTypes {
		if possible.IsTypeOf != nil && possible.IsTypeOf(value, info) {
			return possible
		}
	}
	return nil
}

//===------------------------------------------------------------------------------------------===//
// Enum
//===------------------------------------------------------------------------------------------===//

// EnumValueConfig describes one member of an Enum. The internal Value defaults to the member's
// name.
type EnumValueConfig struct {
	Value             interface{}
	Description       string
	DeprecationReason string
}

// EnumValues maps member names to their configurations.
type EnumValues map[string]*EnumValueConfig

// EnumConfig describes an Enum to create.
type EnumConfig struct {
	Name        string
	Description string
	Values      EnumValues
}

// Enum is a leaf type over a fixed set of named members.
type Enum struct {
	Name        string
	Description string

	values EnumValues

	// Lookup tables between member names and internal values.
	nameToValue map[string]interface{}
	valueToName map[interface{}]string
}

// NewEnum defines an enum type.
func NewEnum(config EnumConfig) *Enum {
	if config.Name == "" {
		panic("Enum must be named.")
	}
	t := &Enum{
		Name:        config.Name,
		Description: config.Description,
		values:      config.Values,
		nameToValue: make(map[string]interface{}, len(config.Values)),
		valueToName: make(map[interface{}]string, len(config.Values)),
	}
	for name, value := range config.Values {
		internal := value.Value
		if internal == nil {
			internal = name
		}
		t.nameToValue[name] = internal
		t.valueToName[internal] = name
	}
	return t
}

// Values returns the member configurations.
func (t *Enum) Values() EnumValues {
	return t.values
}

// Serialize coerces an internal value to its member name; nil when the value names no member.
func (t *Enum) Serialize(value interface{}) interface{} {
	if name, ok := t.valueToName[value]; ok {
		return name
	}
	return nil
}

// ParseValue coerces a member name from variables to the internal value; nil on failure.
func (t *Enum) ParseValue(value interface{}) interface{} {
	if name, ok := value.(string); ok {
		if internal, ok := t.nameToValue[name]; ok {
			return internal
		}
	}
	return nil
}

// ParseLiteral coerces an enum literal to the internal value; nil on failure. Only EnumValue
// literals are accepted: an enum member is spelled bare, not as a string.
func (t *Enum) ParseLiteral(valueAST ast.Value) interface{} {
	if enumValue, ok := valueAST.(*ast.EnumValue); ok {
		if internal, ok := t.nameToValue[enumValue.Value]; ok {
			return internal
		}
	}
	return nil
}

// String implements Type.
func (t *Enum) String() string { return t.Name }

func (*Enum) typeMarker() {}

//===------------------------------------------------------------------------------------------===//
// InputObject
//===------------------------------------------------------------------------------------------===//

// InputObjectFieldConfig describes one field of an InputObject.
type InputObjectFieldConfig struct {
	Type         Type
	DefaultValue interface{}
	Description  string
}

// InputObjectFields maps input field names to their configurations.
type InputObjectFields map[string]*InputObjectFieldConfig

// InputObjectConfig describes an InputObject to create.
type InputObjectConfig struct {
	Name        string
	Description string
	Fields      InputObjectFields
}

// InputObject is a structured input type.
type InputObject struct {
	Name        string
	Description string

	fields InputObjectFields
}

// NewInputObject defines an input object type.
func NewInputObject(config InputObjectConfig) *InputObject {
	if config.Name == "" {
		panic("InputObject must be named.")
	}
	return &InputObject{
		Name:        config.Name,
		Description: config.Description,
		fields:      config.Fields,
	}
}

// Fields returns the input field map.
func (t *InputObject) Fields() InputObjectFields {
	return t.fields
}

// String implements Type.
func (t *InputObject) String() string { return t.Name }

func (*InputObject) typeMarker() {}

//===------------------------------------------------------------------------------------------===//
// List and NonNull
//===------------------------------------------------------------------------------------------===//

// List wraps an element type.
type List struct {
	OfType Type
}

// NewList wraps ofType in a List.
func NewList(ofType Type) *List {
	if ofType == nil {
		panic("Can only create List of a Type.")
	}
	return &List{OfType: ofType}
}

// String implements Type.
func (t *List) String() string { return "[" + t.OfType.String() + "]" }

func (*List) typeMarker() {}

// NonNull marks the wrapped type as never resolving to null.
type NonNull struct {
	OfType Type
}

// NewNonNull wraps ofType in a NonNull. Doubled NonNull wrappers are invalid.
func NewNonNull(ofType Type) *NonNull {
	if ofType == nil {
		panic("Can only create NonNull of a Type.")
	}
	if _, ok := ofType.(*NonNull); ok {
		panic("Cannot nest NonNull inside NonNull.")
	}
	return &NonNull{OfType: ofType}
}

// String implements Type.
func (t *NonNull) String() string { return t.OfType.String() + "!" }

func (*NonNull) typeMarker() {}
