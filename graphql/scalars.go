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
	"math"
	"strconv"

	"github.com/sablegql/sable/graphql/language/ast"
)

// The Int scalar is a signed 32-bit integer; values outside that range do not coerce.
const (
	maxInt = 1 << 31
	minInt = -(1 << 31) - 1
)

func coerceInt(value interface{}) interface{} {
	switch value := value.(type) {
	case bool:
		if value {
			return 1
		}
		return 0
	case int:
		if value >= maxInt || value <= minInt {
			return nil
		}
		return value
	case int8:
		return int(value)
	case int16:
		return int(value)
	case int32:
		return int(value)
	case int64:
		if value >= maxInt || value <= minInt {
			return nil
		}
		return int(value)
	case uint:
		if value >= maxInt {
			return nil
		}
		return int(value)
	case uint8:
		return int(value)
	case uint16:
		return int(value)
	case uint32:
		if value >= maxInt {
			return nil
		}
		return int(value)
	case uint64:
		if value >= maxInt {
			return nil
		}
		return int(value)
	case float32:
		return coerceInt(float64(value))
	case float64:
		if value != math.Trunc(value) || value >= maxInt || value <= minInt {
			return nil
		}
		return int(value)
	case string:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil
		}
		return coerceInt(parsed)
	}
	return nil
}

func coerceFloat(value interface{}) interface{} {
	switch value := value.(type) {
	case bool:
		if value {
			return float64(1)
		}
		return float64(0)
	case int:
		return float64(value)
	case int32:
		return float64(value)
	case int64:
		return float64(value)
	case float32:
		return float64(value)
	case float64:
		return value
	case string:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil
		}
		return parsed
	}
	return nil
}

func coerceString(value interface{}) interface{} {
	if value == nil {
		return nil
	}
	switch value := value.(type) {
	case string:
		return value
	case bool:
		if value {
			return "true"
		}
		return "false"
	}
	return fmt.Sprintf("%v", value)
}

func coerceBoolean(value interface{}) interface{} {
	switch value := value.(type) {
	case bool:
		return value
	case int:
		return value != 0
	case string:
		return value == "true"
	}
	return nil
}

var (
	// Int is the built-in 32-bit integer scalar.
	Int = NewScalar(ScalarConfig{
		Name:      "Int",
		Serialize: coerceInt,
		ParseValue: func(value interface{}) interface{} {
			return coerceInt(value)
		},
		ParseLiteral: func(valueAST ast.Value) interface{} {
			if intValue, ok := valueAST.(*ast.IntValue); ok {
				if parsed, err := strconv.Atoi(intValue.Value); err == nil && parsed < maxInt && parsed > minInt {
					return parsed
				}
			}
			return nil
		},
	})

	// Float is the built-in double precision scalar.
	Float = NewScalar(ScalarConfig{
		Name:      "Float",
		Serialize: coerceFloat,
		ParseValue: func(value interface{}) interface{} {
			return coerceFloat(value)
		},
		ParseLiteral: func(valueAST ast.Value) interface{} {
			switch valueAST := valueAST.(type) {
			case *ast.FloatValue:
				if parsed, err := strconv.ParseFloat(valueAST.Value, 64); err == nil {
					return parsed
				}
			case *ast.IntValue:
				if parsed, err := strconv.ParseFloat(valueAST.Value, 64); err == nil {
					return parsed
				}
			}
			return nil
		},
	})

	// String is the built-in UTF-8 string scalar.
	String = NewScalar(ScalarConfig{
		Name:      "String",
		Serialize: coerceString,
		ParseValue: func(value interface{}) interface{} {
			return coerceString(value)
		},
		ParseLiteral: func(valueAST ast.Value) interface{} {
			if stringValue, ok := valueAST.(*ast.StringValue); ok {
				return stringValue.Value
			}
			return nil
		},
	})

	// Boolean is the built-in boolean scalar.
	Boolean = NewScalar(ScalarConfig{
		Name:      "Boolean",
		Serialize: coerceBoolean,
		ParseValue: func(value interface{}) interface{} {
			return coerceBoolean(value)
		},
		ParseLiteral: func(valueAST ast.Value) interface{} {
			if boolValue, ok := valueAST.(*ast.BooleanValue); ok {
				return boolValue.Value
			}
			return nil
		},
	})

	// ID is the built-in identifier scalar. It serializes like String and accepts both string and
	// int literals.
	ID = NewScalar(ScalarConfig{
		Name:      "ID",
		Serialize: coerceString,
		ParseValue: func(value interface{}) interface{} {
			return coerceString(value)
		},
		ParseLiteral: func(valueAST ast.Value) interface{} {
			switch valueAST := valueAST.(type) {
			case *ast.StringValue:
				return valueAST.Value
			case *ast.IntValue:
				return valueAST.Value
			}
			return nil
		},
	})
)
