// Copyright The OpenTelemetry Authors
// SPDX-License-Identifier: Apache-2.0

// Package attribute provides key-value pairs used to describe resources and
// records throughout the pipeline.
package attribute // import "github.com/kudlatyamroth/otelpipeline/attribute"

import "fmt"

// Key is the key part of a key-value pair.
type Key string

// Type identifies the kind of value held by a Value.
type Type int

const (
	INVALID Type = iota
	BOOL
	INT64
	FLOAT64
	STRING
)

// Value represents a value of one of the supported attribute types.
type Value struct {
	vtype  Type
	bool   bool
	num    int64
	float  float64
	string string
}

func BoolValue(v bool) Value        { return Value{vtype: BOOL, bool: v} }
func Int64Value(v int64) Value      { return Value{vtype: INT64, num: v} }
func IntValue(v int) Value          { return Int64Value(int64(v)) }
func Float64Value(v float64) Value  { return Value{vtype: FLOAT64, float: v} }
func StringValue(v string) Value    { return Value{vtype: STRING, string: v} }

// Type returns the type of the value.
func (v Value) Type() Type { return v.vtype }

// AsInterface returns the value held by v as an interface{}.
func (v Value) AsInterface() interface{} {
	switch v.vtype {
	case BOOL:
		return v.bool
	case INT64:
		return v.num
	case FLOAT64:
		return v.float
	case STRING:
		return v.string
	default:
		return nil
	}
}

// Emit returns a string representation of v suitable for logging.
func (v Value) Emit() string {
	switch v.vtype {
	case BOOL:
		return fmt.Sprintf("%t", v.bool)
	case INT64:
		return fmt.Sprintf("%d", v.num)
	case FLOAT64:
		return fmt.Sprintf("%g", v.float)
	case STRING:
		return v.string
	default:
		return "<invalid>"
	}
}

// KeyValue is a key-value pair used to describe resources and records.
type KeyValue struct {
	Key   Key
	Value Value
}

// Bool creates a KeyValue with a bool value.
func Bool(k string, v bool) KeyValue { return KeyValue{Key: Key(k), Value: BoolValue(v)} }

// Int creates a KeyValue with an int value.
func Int(k string, v int) KeyValue { return KeyValue{Key: Key(k), Value: IntValue(v)} }

// Int64 creates a KeyValue with an int64 value.
func Int64(k string, v int64) KeyValue { return KeyValue{Key: Key(k), Value: Int64Value(v)} }

// Float64 creates a KeyValue with a float64 value.
func Float64(k string, v float64) KeyValue { return KeyValue{Key: Key(k), Value: Float64Value(v)} }

// String creates a KeyValue with a string value.
func String(k, v string) KeyValue { return KeyValue{Key: Key(k), Value: StringValue(v)} }
