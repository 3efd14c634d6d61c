package parser

import (
	"fmt"
	"go/token"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
)

// rootTag is the document element. It is transparent to path matching.
const rootTag = "registry"

// NamespacePrefix is stripped from constant and extension names.
const NamespacePrefix = "GL_"

// OcclusionQueryEventMaskAMD holds bit flags but its enums block is not
// declared as a bitmask.
const bitmaskNamespaceException = "OcclusionQueryEventMaskAMD"

var (
	es10 = Version{API: EmbeddedLine, Major: 1, Minor: 0}
	es20 = Version{API: EmbeddedLine, Major: 2, Minor: 0}
)

// Go keywords that appear as registry parameter names.
var keywordNames = map[string]string{
	"func":  "fn",
	"type":  "typ",
	"range": "rng",
	"map":   "m",
}

// ParseFile parses the registry document at path.
func ParseFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	defer f.Close()

	return parse(path, f)
}

// Parse parses a registry document read from r.
func Parse(r io.Reader) (*Registry, error) {
	return parse("", r)
}

func parse(file string, r io.Reader) (*Registry, error) {
	b := NewBuilder(slog.Default())

	if err := Stream(file, r, b); err != nil {
		return nil, err
	}

	reg, err := b.Finish()
	if err != nil {
		return nil, &Error{Pos: Position{File: file}, Err: err}
	}

	return reg, nil
}

type pendingCommand struct {
	name       string
	returnType string
	params     []Parameter
}

type pendingParam struct {
	name    string
	typ     string
	pointer string
	group   string
	length  string
}

// Builder is the registry state machine. It consumes markup events and
// dispatches on the full path of open elements.
type Builder struct {
	logger *slog.Logger
	path   Path
	reg    *Registry

	constants map[string]struct{}
	bitmask   bool

	command   *pendingCommand
	param     *pendingParam
	version   *Version
	extension *Support
}

func NewBuilder(logger *slog.Logger) *Builder {
	return &Builder{
		logger: logger,
		reg: &Registry{
			Support: make(map[string][]Support),
			Skipped: make(map[string]int),
		},
		constants: make(map[string]struct{}),
	}
}

// Path returns the currently open elements.
func (b *Builder) Path() Path {
	return slices.Clone(b.path)
}

func (b *Builder) StartElement(name string, attrs map[string]string) error {
	if name == rootTag {
		return nil
	}

	node, ok := LookupNode(name)
	if !ok {
		b.reg.Skipped[name]++
		b.logger.Debug("unrecognized element", "tag", name, "path", b.path.String())
		return nil
	}

	b.path = append(b.path, node)

	switch {
	case b.path.Is(NodeExtensions, NodeExtension):
		extn, err := requireAttr(attrs, "name", name)
		if err != nil {
			return err
		}
		s := Extension(strings.TrimPrefix(extn, NamespacePrefix))
		b.extension = &s

	case b.path.Is(NodeExtensions, NodeExtension, NodeRequire, NodeCommand):
		cmd, err := requireAttr(attrs, "name", name)
		if err != nil {
			return err
		}
		b.reg.Support[cmd] = append(b.reg.Support[cmd], *b.extension)

	case b.path.Is(NodeFeature):
		v, err := parseFeature(attrs)
		if err != nil {
			return err
		}
		b.version = &v

	case b.path.Is(NodeFeature, NodeRequire, NodeCommand):
		cmd, err := requireAttr(attrs, "name", name)
		if err != nil {
			return err
		}
		b.addVersion(cmd, *b.version)

	case b.path.Is(NodeFeature, NodeRemove, NodeCommand):
		cmd, err := requireAttr(attrs, "name", name)
		if err != nil {
			return err
		}
		b.reg.Support[cmd] = append(b.reg.Support[cmd], Removed(*b.version))

	case b.path.Is(NodeEnums):
		b.bitmask = attrs["type"] == "bitmask" || attrs["namespace"] == bitmaskNamespaceException

	case b.path.Is(NodeEnums, NodeEnum):
		return b.addConstant(attrs)

	case b.path.Is(NodeCommands, NodeCommand):
		b.command = &pendingCommand{}

	case b.path.Is(NodeCommands, NodeCommand, NodeParam):
		b.param = &pendingParam{
			group:  attrs["group"],
			length: attrs["len"],
		}
	}

	return nil
}

func (b *Builder) CharData(text string) error {
	switch {
	// Return types only ever have "const" or "void" before the ptype
	// element, if there is one at all. The ptype text replaces whatever
	// was collected so far and a trailing "*" is appended after it.
	case b.path.Is(NodeCommands, NodeCommand, NodeProto):
		b.command.returnType += strings.TrimRight(text, " \n")

	case b.path.Is(NodeCommands, NodeCommand, NodeProto, NodePtype):
		b.command.returnType = text

	case b.path.Is(NodeCommands, NodeCommand, NodeProto, NodeName):
		b.command.name = text

	case b.path.Is(NodeCommands, NodeCommand, NodeParam):
		b.param.pointer += strings.ReplaceAll(text, " ", "")

	case b.path.Is(NodeCommands, NodeCommand, NodeParam, NodePtype):
		b.param.typ = text

	case b.path.Is(NodeCommands, NodeCommand, NodeParam, NodeName):
		b.param.name = text
	}

	return nil
}

func (b *Builder) EndElement(name string) error {
	if name == rootTag {
		return nil
	}

	node, ok := LookupNode(name)
	if !ok {
		return nil
	}

	if len(b.path) == 0 || b.path[len(b.path)-1] != node {
		return faultf(ErrMalformed, "mismatched tag '%s' in %s", name, b.path)
	}

	switch {
	case b.path.Is(NodeCommands, NodeCommand):
		cmd, err := b.command.finish()
		if err != nil {
			return err
		}
		b.reg.Commands = append(b.reg.Commands, cmd)
		b.command = nil

	case b.path.Is(NodeCommands, NodeCommand, NodeParam):
		p, err := b.param.finish(b.command.name)
		if err != nil {
			return err
		}
		b.command.params = append(b.command.params, p)
		b.param = nil

	case b.path.Is(NodeFeature):
		b.version = nil

	case b.path.Is(NodeExtensions, NodeExtension):
		b.extension = nil
	}

	b.path = b.path[:len(b.path)-1]
	return nil
}

func (b *Builder) ProcInst(target, data string) error {
	return nil
}

// Finish returns the completed registry. It fails if any element is still
// open.
func (b *Builder) Finish() (*Registry, error) {
	if len(b.path) != 0 {
		return nil, faultf(ErrMalformed, "unclosed elements %s", b.path)
	}
	return b.reg, nil
}

// addVersion records that a feature version requires cmd. OpenGL ES 2.0
// supersedes an ES 1.0 entry in place, and ES 1.0 is dropped when ES 2.0 is
// already recorded.
func (b *Builder) addVersion(cmd string, v Version) {
	history := b.reg.Support[cmd]

	switch {
	case v.Equal(es20):
		if i := indexSupport(history, Added(es10)); i >= 0 {
			history[i] = Added(v)
			return
		}
	case v.Equal(es10):
		if indexSupport(history, Added(es20)) >= 0 {
			return
		}
	}

	b.reg.Support[cmd] = append(history, Added(v))
}

func indexSupport(history []Support, s Support) int {
	return slices.IndexFunc(history, func(h Support) bool {
		return h.Equal(s)
	})
}

func (b *Builder) addConstant(attrs map[string]string) error {
	name, err := requireAttr(attrs, "name", "enum")
	if err != nil {
		return err
	}

	// Some enumerants have different values per API, e.g.
	// GL_ACTIVE_PROGRAM_EXT.
	if api, ok := attrs["api"]; ok {
		name += "_" + api
	}
	name = strings.TrimPrefix(name, NamespacePrefix)

	value, err := requireAttr(attrs, "value", "enum")
	if err != nil {
		return err
	}

	typ := Int32
	switch attrs["type"] {
	case "u":
		typ = Uint32
	case "ull":
		typ = Uint64
	default:
		if b.bitmask {
			typ = Uint32
		}
	}

	if _, dup := b.constants[name]; dup {
		return faultf(ErrDuplicateConstant, "constant '%s' is defined more than once", name)
	}
	b.constants[name] = struct{}{}

	b.reg.Constants = append(b.reg.Constants, Constant{
		Name:  name,
		Type:  typ,
		Value: value,
	})

	return nil
}

func (c *pendingCommand) finish() (Command, error) {
	if c.name == "" {
		return Command{}, faultf(ErrMissingName, "command '' has no name")
	}

	rt, ok := ParseRawType(c.returnType)
	if !ok || rt == TypeNone {
		return Command{}, faultf(ErrInvalidType, "command '%s' has an invalid return type '%s'", c.name, c.returnType)
	}

	return Command{
		Name:       c.name,
		ReturnType: rt,
		Params:     c.params,
	}, nil
}

func (p *pendingParam) finish(command string) (Parameter, error) {
	if p.name == "" {
		return Parameter{}, faultf(ErrMissingName, "parameter of command '%s' has no name", command)
	}

	typ, ok := ParseRawType(p.typ)
	if !ok {
		return Parameter{}, faultf(ErrInvalidType, "parameter '%s' has an invalid type '%s'", p.name, p.typ)
	}

	ptr, ok := ParsePointerShape(p.pointer)
	if !ok {
		return Parameter{}, faultf(ErrInvalidPointer, "parameter '%s' has an invalid pointer type '%s'", p.name, p.pointer)
	}

	if !ValidPair(typ, ptr) {
		return Parameter{}, faultf(ErrInvalidType, "parameter '%s' has no type for pointer '%s'", p.name, p.pointer)
	}

	return Parameter{
		Name:    paramName(p.name),
		Type:    typ,
		Pointer: ptr,
		Group:   p.group,
		Length:  p.length,
	}, nil
}

func paramName(name string) string {
	if !token.IsKeyword(name) {
		return name
	}
	if r, ok := keywordNames[name]; ok {
		return r
	}
	return name + "_"
}

func parseFeature(attrs map[string]string) (Version, error) {
	number, ok := attrs["number"]
	if !ok {
		return Version{}, faultf(ErrMissingAttribute, "feature has no 'number'")
	}

	major, minor, found := strings.Cut(number, ".")
	v1, err1 := strconv.Atoi(major)
	v2, err2 := strconv.Atoi(minor)
	if !found || err1 != nil || err2 != nil {
		return Version{}, faultf(ErrInvalidFeature, "invalid feature number '%s'", number)
	}

	api, ok := attrs["api"]
	if !ok {
		return Version{}, faultf(ErrMissingAttribute, "feature %s has no 'api'", number)
	}

	switch api {
	case "gl":
		return Version{API: MainLine, Major: v1, Minor: v2}, nil
	case "gles1", "gles2":
		return Version{API: EmbeddedLine, Major: v1, Minor: v2}, nil
	}

	return Version{}, faultf(ErrInvalidFeature, "invalid feature api '%s'", api)
}

func requireAttr(attrs map[string]string, attr, element string) (string, error) {
	v, ok := attrs[attr]
	if !ok {
		return "", faultf(ErrMissingAttribute, "<%s> has no '%s'", element, attr)
	}
	if v == "" && attr == "name" {
		return "", faultf(ErrMissingName, "<%s> has an empty name", element)
	}
	return v, nil
}
