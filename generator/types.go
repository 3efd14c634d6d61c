package generator

import (
	"fmt"

	"github.com/ardanlabs/glgen/parser"
)

// baseTypes maps registry base types to the declarations in package gl.
var baseTypes = map[parser.RawType]string{
	parser.TypeBitfield:       "Bitfield",
	parser.TypeBoolean:        "Boolean",
	parser.TypeByte:           "Byte",
	parser.TypeChar:           "Char",
	parser.TypeCharARB:        "CharARB",
	parser.TypeClampd:         "Clampd",
	parser.TypeClampf:         "Clampf",
	parser.TypeClampx:         "Clampx",
	parser.TypeDebugProc:      "DebugProc",
	parser.TypeDebugProcAMD:   "DebugProcAMD",
	parser.TypeDebugProcARB:   "DebugProcARB",
	parser.TypeDebugProcKHR:   "DebugProcKHR",
	parser.TypeDouble:         "Double",
	parser.TypeEGLImageOES:    "EGLImageOES",
	parser.TypeEnum:           "Enum",
	parser.TypeFixed:          "Fixed",
	parser.TypeFloat:          "Float",
	parser.TypeHalfNV:         "HalfNV",
	parser.TypeHandleARB:      "HandleARB",
	parser.TypeInt:            "Int",
	parser.TypeInt64:          "Int64",
	parser.TypeInt64EXT:       "Int64EXT",
	parser.TypeIntptr:         "Intptr",
	parser.TypeIntptrARB:      "IntptrARB",
	parser.TypeShort:          "Short",
	parser.TypeSizei:          "Sizei",
	parser.TypeSizeiptr:       "Sizeiptr",
	parser.TypeSizeiptrARB:    "SizeiptrARB",
	parser.TypeSync:           "Sync",
	parser.TypeUbyte:          "Ubyte",
	parser.TypeUint:           "Uint",
	parser.TypeUint64:         "Uint64",
	parser.TypeUint64EXT:      "Uint64EXT",
	parser.TypeUshort:         "Ushort",
	parser.TypeVdpauSurfaceNV: "VdpauSurfaceNV",
	parser.TypeGLvoid:         "struct{}",
	parser.TypeVoid:           "struct{}",
	parser.TypeCLContext:      "CLContext",
	parser.TypeCLEvent:        "CLEvent",
	parser.TypeVoidPointer:    "unsafe.Pointer",
	parser.TypeUbytePointer:   "*Ubyte",
}

func baseGoType(t parser.RawType) string {
	s, ok := baseTypes[t]
	if !ok {
		panic(fmt.Sprintf("unreachable: no Go type for %q", t))
	}
	return s
}

// goType returns the Go type expression for a parameter. The pair must be
// one the parser accepts.
func goType(t parser.RawType, p parser.PointerShape) string {
	if !parser.ValidPair(t, p) {
		panic(fmt.Sprintf("unreachable: invalid parameter type %q with pointer %q", t, p))
	}

	switch p {
	case parser.PointerMutable:
		// "GLvoid *" is spelled with a ptype element, unlike "void *".
		if t.IsVoid() {
			return "unsafe.Pointer"
		}
		return "*" + baseGoType(t)

	case parser.PointerImmutable, parser.PointerArray2:
		return "*" + baseGoType(t)

	case parser.PointerMutableRaw, parser.PointerImmutableRaw:
		return "unsafe.Pointer"

	case parser.PointerMutableMutableRaw, parser.PointerMutableImmutableRaw, parser.PointerImmutableImmutableRaw:
		return "*unsafe.Pointer"

	case parser.PointerMutableImmutable, parser.PointerImmutableImmutable:
		return "**" + baseGoType(t)
	}

	return baseGoType(t)
}

// goReturnType returns the Go result type of a command, or false when the
// command returns nothing.
func goReturnType(t parser.RawType) (string, bool) {
	if t.IsVoid() {
		return "", false
	}
	return goType(t, parser.PointerNone), true
}
