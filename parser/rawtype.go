package parser

// RawType is a base type spelling used by the registry.
type RawType int

const (
	TypeNone RawType = iota // no type element, only valid behind a raw pointer
	TypeBitfield
	TypeBoolean
	TypeByte
	TypeChar
	TypeCharARB
	TypeClampd
	TypeClampf
	TypeClampx
	TypeDebugProc
	TypeDebugProcAMD
	TypeDebugProcARB
	TypeDebugProcKHR
	TypeDouble
	TypeEGLImageOES
	TypeEnum
	TypeFixed
	TypeFloat
	TypeHalfNV
	TypeHandleARB
	TypeInt
	TypeInt64
	TypeInt64EXT
	TypeIntptr
	TypeIntptrARB
	TypeShort
	TypeSizei
	TypeSizeiptr
	TypeSizeiptrARB
	TypeSync
	TypeUbyte
	TypeUint
	TypeUint64
	TypeUint64EXT
	TypeUshort
	TypeVdpauSurfaceNV
	TypeGLvoid
	TypeCLContext
	TypeCLEvent
	TypeVoid
	TypeVoidPointer
	TypeUbytePointer
)

var rawTypeSpellings = [...]string{
	TypeNone:           "",
	TypeBitfield:       "GLbitfield",
	TypeBoolean:        "GLboolean",
	TypeByte:           "GLbyte",
	TypeChar:           "GLchar",
	TypeCharARB:        "GLcharARB",
	TypeClampd:         "GLclampd",
	TypeClampf:         "GLclampf",
	TypeClampx:         "GLclampx",
	TypeDebugProc:      "GLDEBUGPROC",
	TypeDebugProcAMD:   "GLDEBUGPROCAMD",
	TypeDebugProcARB:   "GLDEBUGPROCARB",
	TypeDebugProcKHR:   "GLDEBUGPROCKHR",
	TypeDouble:         "GLdouble",
	TypeEGLImageOES:    "GLeglImageOES",
	TypeEnum:           "GLenum",
	TypeFixed:          "GLfixed",
	TypeFloat:          "GLfloat",
	TypeHalfNV:         "GLhalfNV",
	TypeHandleARB:      "GLhandleARB",
	TypeInt:            "GLint",
	TypeInt64:          "GLint64",
	TypeInt64EXT:       "GLint64EXT",
	TypeIntptr:         "GLintptr",
	TypeIntptrARB:      "GLintptrARB",
	TypeShort:          "GLshort",
	TypeSizei:          "GLsizei",
	TypeSizeiptr:       "GLsizeiptr",
	TypeSizeiptrARB:    "GLsizeiptrARB",
	TypeSync:           "GLsync",
	TypeUbyte:          "GLubyte",
	TypeUint:           "GLuint",
	TypeUint64:         "GLuint64",
	TypeUint64EXT:      "GLuint64EXT",
	TypeUshort:         "GLushort",
	TypeVdpauSurfaceNV: "GLvdpauSurfaceNV",
	TypeGLvoid:         "GLvoid",
	TypeCLContext:      "struct _cl_context",
	TypeCLEvent:        "struct _cl_event",
	TypeVoid:           "void",
	TypeVoidPointer:    "void *",
	TypeUbytePointer:   "GLubyte *",
}

var rawTypesBySpelling = func() map[string]RawType {
	m := make(map[string]RawType, len(rawTypeSpellings))
	for t, s := range rawTypeSpellings {
		m[s] = RawType(t)
	}
	return m
}()

// RawTypes lists every known base type in declaration order.
func RawTypes() []RawType {
	types := make([]RawType, len(rawTypeSpellings))
	for i := range types {
		types[i] = RawType(i)
	}
	return types
}

func ParseRawType(s string) (RawType, bool) {
	t, ok := rawTypesBySpelling[s]
	return t, ok
}

func (t RawType) String() string {
	if t < 0 || int(t) >= len(rawTypeSpellings) {
		return "invalid"
	}
	return rawTypeSpellings[t]
}

// IsVoid reports whether t names the void base type.
func (t RawType) IsVoid() bool {
	return t == TypeVoid || t == TypeGLvoid
}

// PointerShape is the pointer annotation around a parameter's base type,
// with all spaces removed.
type PointerShape int

const (
	PointerNone PointerShape = iota
	PointerMutable
	PointerImmutable
	PointerMutableRaw
	PointerImmutableRaw
	PointerMutableMutableRaw
	PointerMutableImmutable
	PointerMutableImmutableRaw
	PointerImmutableImmutable
	PointerImmutableImmutableRaw
	PointerArray2
)

var pointerSpellings = [...]string{
	PointerNone:                  "",
	PointerMutable:               "*",
	PointerImmutable:             "const*",
	PointerMutableRaw:            "void*",
	PointerImmutableRaw:          "constvoid*",
	PointerMutableMutableRaw:     "void**",
	PointerMutableImmutable:      "const**",
	PointerMutableImmutableRaw:   "constvoid**",
	PointerImmutableImmutable:    "const*const*",
	PointerImmutableImmutableRaw: "constvoid*const*",
	PointerArray2:                "[2]",
}

var pointersBySpelling = func() map[string]PointerShape {
	m := make(map[string]PointerShape, len(pointerSpellings))
	for p, s := range pointerSpellings {
		m[s] = PointerShape(p)
	}
	return m
}()

// PointerShapes lists every known pointer shape in declaration order.
func PointerShapes() []PointerShape {
	shapes := make([]PointerShape, len(pointerSpellings))
	for i := range shapes {
		shapes[i] = PointerShape(i)
	}
	return shapes
}

func ParsePointerShape(s string) (PointerShape, bool) {
	p, ok := pointersBySpelling[s]
	return p, ok
}

func (p PointerShape) String() string {
	if p < 0 || int(p) >= len(pointerSpellings) {
		return "invalid"
	}
	return pointerSpellings[p]
}

// Raw reports whether the shape spells out its own void pointee, making the
// declared base type irrelevant.
func (p PointerShape) Raw() bool {
	switch p {
	case PointerMutableRaw, PointerImmutableRaw, PointerMutableMutableRaw,
		PointerMutableImmutableRaw, PointerImmutableImmutableRaw:
		return true
	}
	return false
}

// ValidPair reports whether a parameter may combine t and p. A missing base
// type is only meaningful when the pointer shape names void itself.
func ValidPair(t RawType, p PointerShape) bool {
	if t < 0 || int(t) >= len(rawTypeSpellings) || p < 0 || int(p) >= len(pointerSpellings) {
		return false
	}
	return t != TypeNone || p.Raw()
}
