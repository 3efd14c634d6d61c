//go:build darwin

package gl

import (
	"fmt"
	"sync"

	"github.com/ebitengine/purego"
)

const framework = "/System/Library/Frameworks/OpenGL.framework/OpenGL"

var (
	libOnce sync.Once
	libGL   uintptr
	libErr  error
)

// systemResolver looks entry points up in the OpenGL framework.
type systemResolver struct{}

func (systemResolver) Resolve(name string) (uintptr, bool) {
	libOnce.Do(func() {
		libGL, libErr = purego.Dlopen(framework, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
	})
	if libErr != nil {
		panic(fmt.Sprintf("failed to obtain OpenGL library handle: %v", libErr))
	}

	addr, err := purego.Dlsym(libGL, name)
	return addr, err == nil && addr != 0
}
