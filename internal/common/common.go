// Package common classifies Go types into wire classes for the
// reflection-driven codec.
package common

import "reflect"

// Class identifies which wire encoding a type maps to.
type Class int

const (
	ClassInvalid Class = iota
	ClassU8            // raw byte
	ClassUint          // varint
	ClassInt           // zigzag varint
	ClassBool          // 0x00/0x01 byte
	ClassF32           // tagged float, 4-byte raw payload
	ClassF64           // tagged float, 8-byte raw payload
	ClassString        // byte count + raw bytes
	ClassBytes         // byte count + raw bytes
	ClassBoolSlice     // element count + packed bits
	ClassSlice         // element count + element encodings
	ClassByteArray     // raw bytes, no prefix; width is part of the type
	ClassArray         // element count + element encodings, count must match
	ClassStruct        // field encodings in declared order
	ClassPointer       // pointee's encoding
)

// IsScalarKind reports whether k maps directly to a scalar wire slot.
func IsScalarKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// MinWidth returns the fewest bytes a value of type t can occupy on the
// wire. Container elements must have a nonzero minimum width, otherwise the
// count-vs-remaining bound decoders rely on cannot hold.
func MinWidth(t reflect.Type) int {
	return minWidth(t, nil)
}

func minWidth(t reflect.Type, seen map[reflect.Type]bool) int {
	switch t.Kind() {
	case reflect.Slice, reflect.String:
		return 1 // count prefix
	case reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return t.Len()
		}
		return 1
	case reflect.Pointer:
		return minWidth(t.Elem(), seen)
	case reflect.Struct:
		if seen[t] {
			// A cycle can only be encoded through a non-nil pointer chain
			// that eventually carries data; never zero-width.
			return 1
		}
		if seen == nil {
			seen = make(map[reflect.Type]bool)
		}
		seen[t] = true
		w := 0
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if sf.PkgPath != "" && !sf.Anonymous {
				continue
			}
			w += minWidth(sf.Type, seen)
		}
		// Only the active recursion path counts as a cycle; a zero-width
		// struct reached twice as a sibling must still total zero.
		delete(seen, t)
		return w
	default:
		return 1
	}
}

// Classify maps t to its wire class. Platform-width int/uint are rejected:
// the wire format is width-explicit and their size differs across targets.
// Slice and array element types that can encode to zero bytes are rejected
// too; their counts could never be validated against the remaining input.
func Classify(t reflect.Type) Class {
	switch t.Kind() {
	case reflect.Uint8:
		return ClassU8
	case reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ClassUint
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ClassInt
	case reflect.Bool:
		return ClassBool
	case reflect.Float32:
		return ClassF32
	case reflect.Float64:
		return ClassF64
	case reflect.String:
		return ClassString
	case reflect.Slice:
		switch t.Elem().Kind() {
		case reflect.Uint8:
			return ClassBytes
		case reflect.Bool:
			return ClassBoolSlice
		}
		if Classify(t.Elem()) == ClassInvalid || MinWidth(t.Elem()) == 0 {
			return ClassInvalid
		}
		return ClassSlice
	case reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return ClassByteArray
		}
		if Classify(t.Elem()) == ClassInvalid || MinWidth(t.Elem()) == 0 {
			return ClassInvalid
		}
		return ClassArray
	case reflect.Struct:
		return ClassStruct
	case reflect.Pointer:
		if t.Elem().Kind() == reflect.Struct {
			return ClassPointer
		}
		return ClassInvalid
	default:
		return ClassInvalid
	}
}
