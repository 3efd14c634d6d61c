//go:build !linux && !darwin

package gl

// systemResolver has no default library to search. Install a resolver with
// SetResolver before calling any function.
type systemResolver struct{}

func (systemResolver) Resolve(name string) (uintptr, bool) {
	panic("unsupported OS: install a resolver with gl.SetResolver")
}
