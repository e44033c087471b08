package ggcontainer

import "fmt"

// ValueKind identifies the wire type of a metadata value.
//
// The numbering is fixed by the container's wire format and must never
// change: it is read and written as a single byte per metadata entry.
// Two writer variants exist in the tooling this format descends from,
// disagreeing on a handful of these codes (see DESIGN.md, Open Question
// O1); this taxonomy is the one all readers and writers in this module
// use.
type ValueKind uint8

const (
	// KindString is a length-prefixed UTF-8 string.
	KindString ValueKind = 1
	// KindArray is recognized but unsupported on read: a reader
	// encountering it must stop parsing metadata rather than guess at
	// its payload length.
	KindArray ValueKind = 2
	KindU8    ValueKind = 3
	KindI8    ValueKind = 4
	KindU16   ValueKind = 5
	KindI16   ValueKind = 6
	KindU32   ValueKind = 7
	KindI32   ValueKind = 8
	KindU64   ValueKind = 9
	KindBool  ValueKind = 10
	KindI64   ValueKind = 11
	KindF64   ValueKind = 12
	KindF32   ValueKind = 13
	// KindStringArray is a length-prefixed sequence of strings.
	KindStringArray ValueKind = 14
	// KindBinary is a length-prefixed opaque byte blob.
	KindBinary ValueKind = 15
)

var kindNames = map[ValueKind]string{
	KindString:      "String",
	KindArray:       "Array",
	KindU8:          "U8",
	KindI8:          "I8",
	KindU16:         "U16",
	KindI16:         "I16",
	KindU32:         "U32",
	KindI32:         "I32",
	KindU64:         "U64",
	KindBool:        "Bool",
	KindI64:         "I64",
	KindF64:         "F64",
	KindF32:         "F32",
	KindStringArray: "StringArray",
	KindBinary:      "Binary",
}

// String returns a human-readable name for k, or "Unknown(<code>)" for
// a code outside the 15 recognized kinds.
func (k ValueKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint8(k))
}

// knownKind reports whether k is one of the 15 wire codes this module
// recognizes (including Array, which is recognized but not decodable).
func knownKind(k ValueKind) bool {
	_, ok := kindNames[k]
	return ok
}
