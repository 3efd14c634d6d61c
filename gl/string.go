package gl

import "unsafe"

// GoString copies a NUL terminated message, as passed to a debug callback,
// into a Go string.
func GoString(message *Char, length Sizei) string {
	if message == nil {
		return ""
	}
	if length >= 0 {
		return string(unsafe.Slice((*byte)(unsafe.Pointer(message)), length))
	}
	p := unsafe.Pointer(message)
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(p), n))
}
