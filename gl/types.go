package gl

import "unsafe"

// Scalar types. Enum is signed to match the int32 enumerant constants.
type (
	Bitfield       = uint32
	Boolean        = bool
	Byte           = int8
	Char           = int8
	CharARB        = int8
	Clampd         = float64
	Clampf         = float32
	Clampx         = int32
	Double         = float64
	Enum           = int32
	Fixed          = int32
	Float          = float32
	HalfNV         = uint16
	Int            = int32
	Int64          = int64
	Int64EXT       = int64
	Intptr         = int
	IntptrARB      = int
	Short          = int16
	Sizei          = int32
	Sizeiptr       = int
	SizeiptrARB    = int
	Ubyte          = uint8
	Uint           = uint32
	Uint64         = uint64
	Uint64EXT      = uint64
	Ushort         = uint16
	VdpauSurfaceNV = int
)

// Handle types.
type (
	HandleARB   = unsafe.Pointer
	EGLImageOES = unsafe.Pointer
)

// Sync is a fence sync object returned by FenceSync.
type Sync uintptr

// DebugProc and friends are C function pointers. Build them with
// NewDebugProc and NewDebugProcAMD.
type (
	DebugProc    = uintptr
	DebugProcARB = DebugProc
	DebugProcKHR = DebugProc
	DebugProcAMD = uintptr
)

// CLContext and CLEvent are OpenCL's opaque structs. They only appear behind
// pointers.
type (
	CLContext struct{ _ [0]func() }
	CLEvent   struct{ _ [0]func() }
)
