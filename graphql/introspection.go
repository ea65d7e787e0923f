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

package graphql

import (
	"fmt"
	"sort"
	"strconv"
)

// This file implements the introspection schema: the __Schema/__Type family of types and the
// __schema, __type and __typename meta fields. Every schema's type map includes these types.

// The introspection types reference each other, so they are created in init with field thunks.
var (
	typeKindEnum            *Enum
	typeIntrospection       *Object
	fieldIntrospection      *Object
	inputValueIntrospection *Object
	enumValueIntrospection  *Object
	directiveIntrospection  *Object
	schemaIntrospection     *Object

	schemaMetaFieldDef   *FieldDefinition
	typeMetaFieldDef     *FieldDefinition
	typeNameMetaFieldDef *FieldDefinition
)

// namedField pairs a field definition with the name it is registered under, for serving the
// "fields" and "args" introspection lists.
type namedField struct {
	Name string
	Def  *FieldDefinition
}

type namedInputValue struct {
	Name         string
	Type         Type
	DefaultValue interface{}
	Description  string
}

type namedEnumValue struct {
	Name string
	Def  *EnumValueConfig
}

func typeKindOf(t Type) string {
	switch t.(type) {
	case *Scalar:
		return "SCALAR"
	case *Object:
		return "OBJECT"
	case *Interface:
		return "INTERFACE"
	case *Union:
		return "UNION"
	case *Enum:
		return "ENUM"
	case *InputObject:
		return "INPUT_OBJECT"
	case *List:
		return "LIST"
	case *NonNull:
		return "NON_NULL"
	}
	return ""
}

// printDefaultValue renders an input default as a string: strings quoted, booleans as true or
// false, and any other value (lists and input objects included) in Go's %v form.
func printDefaultValue(value interface{}) interface{} {
	if value == nil {
		return nil
	}
	switch value := value.(type) {
	case string:
		return strconv.Quote(value)
	case bool:
		return strconv.FormatBool(value)
	}
	return fmt.Sprintf("%v", value)
}

func init() {
	typeKindEnum = NewEnum(EnumConfig{
		Name:        "__TypeKind",
		Description: "An enum describing what kind of type a given `__Type` is.",
		Values: EnumValues{
			"SCALAR":       {Value: "SCALAR"},
			"OBJECT":       {Value: "OBJECT"},
			"INTERFACE":    {Value: "INTERFACE"},
			"UNION":        {Value: "UNION"},
			"ENUM":         {Value: "ENUM"},
			"INPUT_OBJECT": {Value: "INPUT_OBJECT"},
			"LIST":         {Value: "LIST"},
			"NON_NULL":     {Value: "NON_NULL"},
		},
	})

	typeIntrospection = NewObject(ObjectConfig{
		Name:        "__Type",
		FieldsThunk: typeIntrospectionFields,
	})

	fieldIntrospection = NewObject(ObjectConfig{
		Name: "__Field",
		FieldsThunk: func() Fields {
			return Fields{
				"name": {
					Type: NewNonNull(String),
					Resolve: func(p ResolveParams) (interface{}, error) {
						return p.Source.(namedField).Name, nil
					},
				},
				"description": {
					Type: String,
					Resolve: func(p ResolveParams) (interface{}, error) {
						return stringOrNil(p.Source.(namedField).Def.Description), nil
					},
				},
				"args": {
					Type: NewNonNull(NewList(NewNonNull(inputValueIntrospection))),
					Resolve: func(p ResolveParams) (interface{}, error) {
						return sortedArgs(p.Source.(namedField).Def.Args), nil
					},
				},
				"type": {
					Type: NewNonNull(typeIntrospection),
					Resolve: func(p ResolveParams) (interface{}, error) {
						return p.Source.(namedField).Def.Type, nil
					},
				},
				"isDeprecated": {
					Type: NewNonNull(Boolean),
					Resolve: func(p ResolveParams) (interface{}, error) {
						return p.Source.(namedField).Def.DeprecationReason != "", nil
					},
				},
				"deprecationReason": {
					Type: String,
					Resolve: func(p ResolveParams) (interface{}, error) {
						return stringOrNil(p.Source.(namedField).Def.DeprecationReason), nil
					},
				},
			}
		},
	})

	inputValueIntrospection = NewObject(ObjectConfig{
		Name: "__InputValue",
		FieldsThunk: func() Fields {
			return Fields{
				"name": {
					Type: NewNonNull(String),
					Resolve: func(p ResolveParams) (interface{}, error) {
						return p.Source.(namedInputValue).Name, nil
					},
				},
				"description": {
					Type: String,
					Resolve: func(p ResolveParams) (interface{}, error) {
						return stringOrNil(p.Source.(namedInputValue).Description), nil
					},
				},
				"type": {
					Type: NewNonNull(typeIntrospection),
					Resolve: func(p ResolveParams) (interface{}, error) {
						return p.Source.(namedInputValue).Type, nil
					},
				},
				"defaultValue": {
					Type: String,
					Resolve: func(p ResolveParams) (interface{}, error) {
						return printDefaultValue(p.Source.(namedInputValue).DefaultValue), nil
					},
				},
			}
		},
	})

	enumValueIntrospection = NewObject(ObjectConfig{
		Name: "__EnumValue",
		FieldsThunk: func() Fields {
			return Fields{
				"name": {
					Type: NewNonNull(String),
					Resolve: func(p ResolveParams) (interface{}, error) {
						return p.Source.(namedEnumValue).Name, nil
					},
				},
				"description": {
					Type: String,
					Resolve: func(p ResolveParams) (interface{}, error) {
						return stringOrNil(p.Source.(namedEnumValue).Def.Description), nil
					},
				},
				"isDeprecated": {
					Type: NewNonNull(Boolean),
					Resolve: func(p ResolveParams) (interface{}, error) {
						return p.Source.(namedEnumValue).Def.DeprecationReason != "", nil
					},
				},
				"deprecationReason": {
					Type: String,
					Resolve: func(p ResolveParams) (interface{}, error) {
						return stringOrNil(p.Source.(namedEnumValue).Def.DeprecationReason), nil
					},
				},
			}
		},
	})

	directiveIntrospection = NewObject(ObjectConfig{
		Name: "__Directive",
		FieldsThunk: func() Fields {
			return Fields{
				"name": {
					Type: NewNonNull(String),
					Resolve: func(p ResolveParams) (interface{}, error) {
						return p.Source.(*Directive).Name, nil
					},
				},
				"description": {
					Type: String,
					Resolve: func(p ResolveParams) (interface{}, error) {
						return stringOrNil(p.Source.(*Directive).Description), nil
					},
				},
				"args": {
					Type: NewNonNull(NewList(NewNonNull(inputValueIntrospection))),
					Resolve: func(p ResolveParams) (interface{}, error) {
						return sortedArgs(p.Source.(*Directive).Args), nil
					},
				},
				"onOperation": {
					Type: NewNonNull(Boolean),
					Resolve: func(p ResolveParams) (interface{}, error) {
						return p.Source.(*Directive).OnOperation, nil
					},
				},
				"onField": {
					Type: NewNonNull(Boolean),
					Resolve: func(p ResolveParams) (interface{}, error) {
						return p.Source.(*Directive).OnField, nil
					},
				},
				"onFragment": {
					Type: NewNonNull(Boolean),
					Resolve: func(p ResolveParams) (interface{}, error) {
						return p.Source.(*Directive).OnFragment, nil
					},
				},
			}
		},
	})

	schemaIntrospection = NewObject(ObjectConfig{
		Name: "__Schema",
		Description: "A GraphQL Schema defines the capabilities of a GraphQL server. It exposes " +
			"all available types and directives on the server, as well as the entry points for " +
			"query and mutation operations.",
		FieldsThunk: func() Fields {
			return Fields{
				"types": {
					Type:        NewNonNull(NewList(NewNonNull(typeIntrospection))),
					Description: "A list of all types supported by this server.",
					Resolve: func(p ResolveParams) (interface{}, error) {
						schema := p.Source.(*Schema)
						names := make([]string, 0, len(schema.TypeMap()))
						for name := range schema.TypeMap() {
							names = append(names, name)
						}
						sort.Strings(names)
						types := make([]interface{}, len(names))
						for i, name := range names {
							types[i] = schema.Type(name)
						}
						return types, nil
					},
				},
				"queryType": {
					Type:        NewNonNull(typeIntrospection),
					Description: "The type that query operations will be rooted at.",
					Resolve: func(p ResolveParams) (interface{}, error) {
						return p.Source.(*Schema).QueryType(), nil
					},
				},
				"mutationType": {
					Type:        typeIntrospection,
					Description: "If this server supports mutation, the type that mutation operations will be rooted at.",
					Resolve: func(p ResolveParams) (interface{}, error) {
						if mutation := p.Source.(*Schema).MutationType(); mutation != nil {
							return mutation, nil
						}
						return nil, nil
					},
				},
				"directives": {
					Type:        NewNonNull(NewList(NewNonNull(directiveIntrospection))),
					Description: "A list of all directives supported by this server.",
					Resolve: func(p ResolveParams) (interface{}, error) {
						directives := p.Source.(*Schema).Directives()
						out := make([]interface{}, len(directives))
						for i, directive := range directives {
							out[i] = directive
						}
						return out, nil
					},
				},
			}
		},
	})

	schemaMetaFieldDef = &FieldDefinition{
		Type:        NewNonNull(schemaIntrospection),
		Description: "Access the current type schema of this server.",
		Resolve: func(p ResolveParams) (interface{}, error) {
			return p.Info.Schema, nil
		},
	}

	typeMetaFieldDef = &FieldDefinition{
		Type:        typeIntrospection,
		Description: "Request the type information of a single type.",
		Args: FieldArgs{
			"name": {Type: NewNonNull(String)},
		},
		Resolve: func(p ResolveParams) (interface{}, error) {
			name, _ := p.Args["name"].(string)
			if t := p.Info.Schema.Type(name); t != nil {
				return t, nil
			}
			return nil, nil
		},
	}

	typeNameMetaFieldDef = &FieldDefinition{
		Type:        NewNonNull(String),
		Description: "The name of the current Object type at runtime.",
		Resolve: func(p ResolveParams) (interface{}, error) {
			return p.Info.ParentType.Name, nil
		},
	}
}

func typeIntrospectionFields() Fields {
	return Fields{
		"kind": {
			Type: NewNonNull(typeKindEnum),
			Resolve: func(p ResolveParams) (interface{}, error) {
				if kind := typeKindOf(p.Source.(Type)); kind != "" {
					return kind, nil
				}
				return nil, fmt.Errorf("Unknown kind of type: %v", p.Source)
			},
		},
		"name": {
			Type: String,
			Resolve: func(p ResolveParams) (interface{}, error) {
				return stringOrNil(TypeName(p.Source.(Type))), nil
			},
		},
		"description": {
			Type: String,
			Resolve: func(p ResolveParams) (interface{}, error) {
				switch t := p.Source.(type) {
				case *Scalar:
					return stringOrNil(t.Description), nil
				case *Object:
					return stringOrNil(t.Description), nil
				case *Interface:
					return stringOrNil(t.Description), nil
				case *Union:
					return stringOrNil(t.Description), nil
				case *Enum:
					return stringOrNil(t.Description), nil
				case *InputObject:
					return stringOrNil(t.Description), nil
				}
				return nil, nil
			},
		},
		"fields": {
			Type: NewList(NewNonNull(fieldIntrospection)),
			Args: FieldArgs{
				"includeDeprecated": {Type: Boolean, DefaultValue: false},
			},
			Resolve: func(p ResolveParams) (interface{}, error) {
				var fields Fields
				switch t := p.Source.(type) {
				case *Object:
					fields = t.Fields()
				case *Interface:
					fields = t.Fields()
				default:
					return nil, nil
				}
				includeDeprecated, _ := p.Args["includeDeprecated"].(bool)

				names := make([]string, 0, len(fields))
				for name := range fields {
					names = append(names, name)
				}
				sort.Strings(names)

				out := make([]interface{}, 0, len(names))
				for _, name := range names {
					if !includeDeprecated && fields[name].DeprecationReason != "" {
						continue
					}
					out = append(out, namedField{Name: name, Def: fields[name]})
				}
				return out, nil
			},
		},
		"interfaces": {
			Type: NewList(NewNonNull(typeIntrospection)),
			Resolve: func(p ResolveParams) (interface{}, error) {
				if object, ok := p.Source.(*Object); ok {
					out := make([]interface{}, len(object.Interfaces()))
					for i, iface := range object.Interfaces() {
						out[i] = iface
					}
					return out, nil
				}
				return nil, nil
			},
		},
		"possibleTypes": {
			Type: NewList(NewNonNull(typeIntrospection)),
			Resolve: func(p ResolveParams) (interface{}, error) {
				if abstract, ok := p.Source.(Abstract); ok {
					possibleTypes := abstract.PossibleTypes()
					out := make([]interface{}, len(possibleTypes))
					for i, possible := range possibleTypes {
						out[i] = possible
					}
					return out, nil
				}
				return nil, nil
			},
		},
		"enumValues": {
			Type: NewList(NewNonNull(enumValueIntrospection)),
			Args: FieldArgs{
				"includeDeprecated": {Type: Boolean, DefaultValue: false},
			},
			Resolve: func(p ResolveParams) (interface{}, error) {
				enum, ok := p.Source.(*Enum)
				if !ok {
					return nil, nil
				}
				includeDeprecated, _ := p.Args["includeDeprecated"].(bool)

				names := make([]string, 0, len(enum.Values()))
				for name := range enum.Values() {
					names = append(names, name)
				}
				sort.Strings(names)

				out := make([]interface{}, 0, len(names))
				for _, name := range names {
					if !includeDeprecated && enum.Values()[name].DeprecationReason != "" {
						continue
					}
					out = append(out, namedEnumValue{Name: name, Def: enum.Values()[name]})
				}
				return out, nil
			},
		},
		"inputFields": {
			Type: NewList(NewNonNull(inputValueIntrospection)),
			Resolve: func(p ResolveParams) (interface{}, error) {
				inputObject, ok := p.Source.(*InputObject)
				if !ok {
					return nil, nil
				}
				names := make([]string, 0, len(inputObject.Fields()))
				for name := range inputObject.Fields() {
					names = append(names, name)
				}
				sort.Strings(names)

				out := make([]interface{}, 0, len(names))
				for _, name := range names {
					field := inputObject.Fields()[name]
					out = append(out, namedInputValue{
						Name:         name,
						Type:         field.Type,
						DefaultValue: field.DefaultValue,
						Description:  field.Description,
					})
				}
				return out, nil
			},
		},
		"ofType": {
			Type: typeIntrospection,
			Resolve: func(p ResolveParams) (interface{}, error) {
				switch t := p.Source.(type) {
				case *List:
					return t.OfType, nil
				case *NonNull:
					return t.OfType, nil
				}
				return nil, nil
			},
		},
	}
}

// sortedArgs renders an argument map as introspection input values in name order.
func sortedArgs(args FieldArgs) []interface{} {
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]interface{}, len(names))
	for i, name := range names {
		arg := args[name]
		out[i] = namedInputValue{
			Name:         name,
			Type:         arg.Type,
			DefaultValue: arg.DefaultValue,
			Description:  arg.Description,
		}
	}
	return out
}

// stringOrNil maps the empty string to null in introspection output.
func stringOrNil(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
