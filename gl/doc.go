// Package gl binds the OpenGL API.
//
// The constants and function loaders in constants.go and loader.go are
// generated from the Khronos registry by glgen. This package declares the
// types they use and resolves entry points at run time.
//
// Every function is resolved on its first call. By default entry points are
// looked up in the system OpenGL library; call SetResolver before the first
// call to use a windowing library's GetProcAddress instead. A function that
// cannot be resolved panics with the versions and extensions that provide
// it.
package gl

// The registry is not vendored. Fetch xml/gl.xml from
// https://github.com/KhronosGroup/OpenGL-Registry into registry/gl.xml first.
//
//go:generate go run .. --registry ../registry/gl.xml --output . --package gl
