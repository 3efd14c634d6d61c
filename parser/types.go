package parser

import "fmt"

// API identifies the product line a feature version belongs to.
type API int

const (
	MainLine API = iota
	EmbeddedLine
)

type Version struct {
	API   API
	Major int
	Minor int
}

// Equal reports whether both versions belong to the same line and carry the
// same major and minor numbers.
func (v Version) Equal(o Version) bool {
	switch v.API {
	case MainLine:
		return o.API == MainLine && v.Major == o.Major && v.Minor == o.Minor
	case EmbeddedLine:
		return o.API == EmbeddedLine && v.Major == o.Major && v.Minor == o.Minor
	}
	return false
}

func (v Version) String() string {
	if v.API == EmbeddedLine {
		return fmt.Sprintf("OpenGL ES %d.%d", v.Major, v.Minor)
	}
	return fmt.Sprintf("OpenGL %d.%d", v.Major, v.Minor)
}

type SupportKind int

const (
	SupportAdded SupportKind = iota
	SupportRemoved
	SupportExtension
)

// Support is one entry in a command's availability history.
type Support struct {
	Kind      SupportKind
	Version   Version
	Extension string
}

func Added(v Version) Support   { return Support{Kind: SupportAdded, Version: v} }
func Removed(v Version) Support { return Support{Kind: SupportRemoved, Version: v} }

func Extension(name string) Support {
	return Support{Kind: SupportExtension, Extension: name}
}

// Equal compares two support entries. Added and Removed entries compare
// their versions. Extension entries compare equal to any other Extension
// entry regardless of name; lookups in the merge rule depend on this.
func (s Support) Equal(o Support) bool {
	switch s.Kind {
	case SupportAdded:
		return o.Kind == SupportAdded && s.Version.Equal(o.Version)
	case SupportRemoved:
		return o.Kind == SupportRemoved && s.Version.Equal(o.Version)
	case SupportExtension:
		return o.Kind == SupportExtension
	}
	return false
}

func (s Support) String() string {
	switch s.Kind {
	case SupportAdded:
		return "Available since " + s.Version.String()
	case SupportRemoved:
		return "Unavailable since " + s.Version.String()
	default:
		return fmt.Sprintf("Available in extension '%s'", s.Extension)
	}
}

type Parameter struct {
	Name    string
	Type    RawType
	Pointer PointerShape

	// Group and Length are carried from the registry but not used for
	// generation.
	Group  string
	Length string
}

type Command struct {
	Name       string
	ReturnType RawType
	Params     []Parameter
}

// IntType is the Go integer type a constant is declared with.
type IntType int

const (
	Int32 IntType = iota
	Uint32
	Uint64
)

func (t IntType) String() string {
	switch t {
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	default:
		return "int32"
	}
}

type Constant struct {
	Name  string
	Type  IntType
	Value string
}

// Registry is the fully resolved model of one registry document.
type Registry struct {
	Commands  []Command
	Constants []Constant

	// Support maps a command name to its availability history in document
	// order.
	Support map[string][]Support

	// Skipped counts unrecognized elements by tag name.
	Skipped map[string]int
}
