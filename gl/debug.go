//go:build darwin || (linux && (amd64 || arm64))

package gl

import (
	"unsafe"

	"github.com/ebitengine/purego"
)

// NewDebugProc wraps fn as a C callback for DebugMessageCallback. Callbacks
// are never freed and purego limits how many may exist, so create one per
// process.
func NewDebugProc(fn func(source, typ Enum, id Uint, severity Enum, length Sizei, message *Char, userParam unsafe.Pointer)) DebugProc {
	return purego.NewCallback(fn)
}

// NewDebugProcAMD wraps fn as a C callback for DebugMessageCallbackAMD.
func NewDebugProcAMD(fn func(id Uint, category, severity Enum, length Sizei, message *Char, userParam unsafe.Pointer)) DebugProcAMD {
	return purego.NewCallback(fn)
}
