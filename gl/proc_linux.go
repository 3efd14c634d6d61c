//go:build linux

package gl

import (
	"fmt"
	"sync"

	"github.com/ebitengine/purego"
)

var libGLNames = []string{"libGL.so.1", "libGL.so"}

var (
	libOnce     sync.Once
	libGL       uintptr
	libErr      error
	getProcAddr func(name string) uintptr
)

func openLibGL() {
	for _, name := range libGLNames {
		h, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			libErr = err
			continue
		}
		libGL = h
		break
	}
	if libGL == 0 {
		return
	}

	for _, sym := range []string{"glXGetProcAddressARB", "glXGetProcAddress"} {
		if addr, err := purego.Dlsym(libGL, sym); err == nil && addr != 0 {
			purego.RegisterFunc(&getProcAddr, addr)
			return
		}
	}
}

// systemResolver asks GLX for entry points and falls back to the symbol
// table of libGL.
type systemResolver struct{}

func (systemResolver) Resolve(name string) (uintptr, bool) {
	libOnce.Do(openLibGL)
	if libGL == 0 {
		panic(fmt.Sprintf("failed to obtain OpenGL library handle: %v", libErr))
	}

	if getProcAddr != nil {
		if addr := getProcAddr(name); addr != 0 {
			return addr, true
		}
	}

	addr, err := purego.Dlsym(libGL, name)
	return addr, err == nil && addr != 0
}
