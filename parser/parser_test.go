package parser

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	gl10 = Version{API: MainLine, Major: 1, Minor: 0}
	gl32 = Version{API: MainLine, Major: 3, Minor: 2}
)

func parseString(t *testing.T, doc string) *Registry {
	t.Helper()
	reg, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return reg
}

func parseErr(t *testing.T, doc string) *Error {
	t.Helper()
	_, err := Parse(strings.NewReader(doc))
	require.Error(t, err)

	var pe *Error
	require.True(t, errors.As(err, &pe), "error %v is not a *parser.Error", err)
	return pe
}

func commandDoc(body string) string {
	return "<registry><commands namespace=\"GL\"><command>" + body + "</command></commands></registry>"
}

func findCommand(t *testing.T, reg *Registry, name string) Command {
	t.Helper()
	for _, c := range reg.Commands {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("command %s not found", name)
	return Command{}
}

func TestParseMinimalRegistry(t *testing.T) {
	reg := parseString(t, `<?xml version="1.0" encoding="UTF-8"?>
<registry>
    <comment>minimal</comment>
    <enums namespace="GL" group="AttribMask" type="bitmask">
        <enum value="0x00004000" name="GL_COLOR_BUFFER_BIT"/>
    </enums>
    <commands namespace="GL">
        <command>
            <proto>void <name>glFlush</name></proto>
        </command>
    </commands>
    <feature api="gl" name="GL_VERSION_1_0" number="1.0">
        <require>
            <command name="glFlush"/>
        </require>
    </feature>
</registry>`)

	require.Len(t, reg.Commands, 1)
	assert.Equal(t, Command{Name: "glFlush", ReturnType: TypeVoid}, reg.Commands[0])

	assert.Equal(t, []Constant{{Name: "COLOR_BUFFER_BIT", Type: Uint32, Value: "0x00004000"}}, reg.Constants)
	assert.Equal(t, []Support{Added(gl10)}, reg.Support["glFlush"])
	assert.Empty(t, reg.Skipped)
}

func TestParseSampleRegistry(t *testing.T) {
	reg, err := ParseFile("../testdata/gl.xml")
	require.NoError(t, err)

	assert.Len(t, reg.Commands, 14)
	assert.Len(t, reg.Constants, 13)

	assert.Equal(t, map[string]int{"kinds": 1, "kind": 1}, reg.Skipped)

	assert.Equal(t, []Support{Added(gl10), Added(es20)}, reg.Support["glClear"])
	assert.Equal(t, []Support{Added(gl10), Removed(gl32)}, reg.Support["glBegin"])
	assert.Equal(t, []Support{Added(gl10), Added(es10)}, reg.Support["glGetPointerv"])
	assert.Equal(t, []Support{Extension("ARB_cl_event")}, reg.Support["glCreateSyncFromCLeventARB"])

	// Support is recorded even for commands the document never defines.
	assert.Equal(t, []Support{Extension("OES_mapbuffer")}, reg.Support["glMapBufferOES"])
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile("testdata/does-not-exist.xml")
	assert.Error(t, err)
}

func TestReturnTypes(t *testing.T) {
	tests := []struct {
		proto string
		want  RawType
	}{
		{`<proto>void <name>glFlush</name></proto>`, TypeVoid},
		{`<proto><ptype>GLenum</ptype> <name>glGetError</name></proto>`, TypeEnum},
		{`<proto>const <ptype>GLubyte</ptype> *<name>glGetString</name></proto>`, TypeUbytePointer},
		{`<proto>void *<name>glMapBuffer</name></proto>`, TypeVoidPointer},
		{`<proto class="sync"><ptype>GLsync</ptype> <name>glFenceSync</name></proto>`, TypeSync},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			reg := parseString(t, commandDoc(tt.proto))
			require.Len(t, reg.Commands, 1)
			assert.Equal(t, tt.want, reg.Commands[0].ReturnType)
		})
	}
}

func TestParameters(t *testing.T) {
	tests := []struct {
		param string
		want  Parameter
	}{
		{
			`<param group="ClearBufferMask"><ptype>GLbitfield</ptype> <name>mask</name></param>`,
			Parameter{Name: "mask", Type: TypeBitfield, Group: "ClearBufferMask"},
		},
		{
			`<param len="n">const <ptype>GLuint</ptype> *<name>buffers</name></param>`,
			Parameter{Name: "buffers", Type: TypeUint, Pointer: PointerImmutable, Length: "n"},
		},
		{
			`<param><ptype>GLint</ptype> *<name>params</name></param>`,
			Parameter{Name: "params", Type: TypeInt, Pointer: PointerMutable},
		},
		{
			`<param>const void *<name>pixels</name></param>`,
			Parameter{Name: "pixels", Type: TypeNone, Pointer: PointerImmutableRaw},
		},
		{
			`<param>void **<name>params</name></param>`,
			Parameter{Name: "params", Type: TypeNone, Pointer: PointerMutableMutableRaw},
		},
		{
			`<param>const void *const*<name>indices</name></param>`,
			Parameter{Name: "indices", Type: TypeNone, Pointer: PointerImmutableImmutableRaw},
		},
		{
			`<param>const <ptype>GLchar</ptype> *const*<name>string</name></param>`,
			Parameter{Name: "string", Type: TypeChar, Pointer: PointerImmutableImmutable},
		},
		{
			`<param><ptype>GLfloat</ptype> <name>v</name>[2]</param>`,
			Parameter{Name: "v", Type: TypeFloat, Pointer: PointerArray2},
		},
		{
			`<param><ptype>struct _cl_context</ptype> *<name>context</name></param>`,
			Parameter{Name: "context", Type: TypeCLContext, Pointer: PointerMutable},
		},
		{
			`<param group="PixelType"><ptype>GLenum</ptype> <name>type</name></param>`,
			Parameter{Name: "typ", Type: TypeEnum, Group: "PixelType"},
		},
		{
			`<param><ptype>GLuint</ptype> <name>range</name></param>`,
			Parameter{Name: "rng", Type: TypeUint},
		},
		{
			`<param><ptype>GLuint</ptype> <name>func</name></param>`,
			Parameter{Name: "fn", Type: TypeUint},
		},
		{
			`<param><ptype>GLuint</ptype> <name>select</name></param>`,
			Parameter{Name: "select_", Type: TypeUint},
		},
	}

	for _, tt := range tests {
		t.Run(tt.want.Name, func(t *testing.T) {
			reg := parseString(t, commandDoc(`<proto>void <name>glTest</name></proto>`+tt.param))
			require.Len(t, reg.Commands, 1)
			require.Len(t, reg.Commands[0].Params, 1)
			assert.Equal(t, tt.want, reg.Commands[0].Params[0])
		})
	}
}

func TestParametersKeepOrder(t *testing.T) {
	reg, err := ParseFile("../testdata/gl.xml")
	require.NoError(t, err)

	cmd := findCommand(t, reg, "glBufferData")

	var names []string
	for _, p := range cmd.Params {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"target", "size", "data", "usage"}, names)
}

func TestESMergeRule(t *testing.T) {
	feature := func(api, number string) string {
		return `<feature api="` + api + `" name="F" number="` + number + `"><require><command name="glClear"/></require></feature>`
	}

	t.Run("ES2 replaces ES1 in place", func(t *testing.T) {
		reg := parseString(t, "<registry>"+feature("gl", "1.0")+feature("gles1", "1.0")+feature("gl", "1.1")+feature("gles2", "2.0")+"</registry>")

		gl11 := Version{API: MainLine, Major: 1, Minor: 1}
		assert.Equal(t, []Support{Added(gl10), Added(es20), Added(gl11)}, reg.Support["glClear"])
	})

	t.Run("ES1 after ES2 is dropped", func(t *testing.T) {
		reg := parseString(t, "<registry>"+feature("gles2", "2.0")+feature("gles1", "1.0")+"</registry>")

		assert.Equal(t, []Support{Added(es20)}, reg.Support["glClear"])
	})

	t.Run("other ES versions append", func(t *testing.T) {
		reg := parseString(t, "<registry>"+feature("gles1", "1.0")+feature("gles2", "3.0")+"</registry>")

		es30 := Version{API: EmbeddedLine, Major: 3, Minor: 0}
		assert.Equal(t, []Support{Added(es10), Added(es30)}, reg.Support["glClear"])
	})

	t.Run("removal is appended", func(t *testing.T) {
		reg := parseString(t, `<registry>`+feature("gl", "1.0")+
			`<feature api="gl" name="F" number="3.2"><remove profile="core"><command name="glClear"/></remove></feature></registry>`)

		assert.Equal(t, []Support{Added(gl10), Removed(gl32)}, reg.Support["glClear"])
	})
}

func TestExtensionNames(t *testing.T) {
	reg := parseString(t, `<registry><extensions>
		<extension name="GL_KHR_debug" supported="gl"><require><command name="glDebugMessageCallback"/></require></extension>
		<extension name="WGL_EXT_swap_control" supported="wgl"><require><command name="wglSwapIntervalEXT"/></require></extension>
	</extensions></registry>`)

	assert.Equal(t, []Support{Extension("KHR_debug")}, reg.Support["glDebugMessageCallback"])
	assert.Equal(t, []Support{Extension("WGL_EXT_swap_control")}, reg.Support["wglSwapIntervalEXT"])
}

func TestConstants(t *testing.T) {
	reg := parseString(t, `<registry>
		<enums namespace="GL" type="bitmask">
			<enum value="0x1" name="GL_MASK_BIT"/>
			<enum value="0xFFFFFFFFFFFFFFFF" name="GL_WIDE_MASK" type="ull"/>
		</enums>
		<enums namespace="OcclusionQueryEventMaskAMD">
			<enum value="0x1" name="GL_QUERY_DEPTH_PASS_EVENT_BIT_AMD"/>
		</enums>
		<enums namespace="GL">
			<enum value="0x0004" name="GL_TRIANGLES"/>
			<enum value="0xFFFFFFFF" name="GL_INVALID_INDEX" type="u"/>
			<enum value="0x8259" name="GL_ACTIVE_PROGRAM_EXT" api="gles2"/>
			<enum value="0x8B8D" name="GL_ACTIVE_PROGRAM_EXT" api="gl"/>
			<enum value="0x0600" name="GL_2D"/>
			<enum value="0x1" name="EGL_TRUE"/>
		</enums>
	</registry>`)

	assert.Equal(t, []Constant{
		{Name: "MASK_BIT", Type: Uint32, Value: "0x1"},
		{Name: "WIDE_MASK", Type: Uint64, Value: "0xFFFFFFFFFFFFFFFF"},
		{Name: "QUERY_DEPTH_PASS_EVENT_BIT_AMD", Type: Uint32, Value: "0x1"},
		{Name: "TRIANGLES", Type: Int32, Value: "0x0004"},
		{Name: "INVALID_INDEX", Type: Uint32, Value: "0xFFFFFFFF"},
		{Name: "ACTIVE_PROGRAM_EXT_gles2", Type: Int32, Value: "0x8259"},
		{Name: "ACTIVE_PROGRAM_EXT_gl", Type: Int32, Value: "0x8B8D"},
		{Name: "2D", Type: Int32, Value: "0x0600"},
		{Name: "EGL_TRUE", Type: Int32, Value: "0x1"},
	}, reg.Constants)
}

func TestBitmaskContextEndsWithBlock(t *testing.T) {
	reg := parseString(t, `<registry>
		<enums namespace="GL" type="bitmask"><enum value="0x1" name="GL_A"/></enums>
		<enums namespace="GL"><enum value="0x2" name="GL_B"/></enums>
	</registry>`)

	require.Len(t, reg.Constants, 2)
	assert.Equal(t, Uint32, reg.Constants[0].Type)
	assert.Equal(t, Int32, reg.Constants[1].Type)
}

func TestIgnoredPaths(t *testing.T) {
	reg := parseString(t, `<registry>
		<types><type>typedef unsigned int <name>GLenum</name>;</type></types>
		<groups><group name="G"><enum name="GL_NOT_A_CONSTANT"/></group></groups>
		<feature api="gl" name="F" number="1.0"><require><enum name="GL_ALSO_NOT"/></require></feature>
		<extensions><extension name="GL_X" supported="gl"><require><enum name="GL_NOR_THIS"/></require></extension></extensions>
	</registry>`)

	assert.Empty(t, reg.Constants)
	assert.Empty(t, reg.Commands)
	assert.Empty(t, reg.Support)
}

func TestUnrecognizedElementsAreSkipped(t *testing.T) {
	reg := parseString(t, commandDoc(`<proto>void <name>glFlush</name></proto><vendor-note>x</vendor-note><vendor-note/>`))

	require.Len(t, reg.Commands, 1)
	assert.Equal(t, "glFlush", reg.Commands[0].Name)
	assert.Equal(t, map[string]int{"vendor-note": 2}, reg.Skipped)
}

func TestFaults(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown parameter type", commandDoc(`<proto>void <name>glX</name></proto><param><ptype>GLquux</ptype> <name>a</name></param>`), ErrInvalidType},
		{"unknown pointer", commandDoc(`<proto>void <name>glX</name></proto><param><ptype>GLint</ptype> ***<name>a</name></param>`), ErrInvalidPointer},
		{"untyped non-pointer parameter", commandDoc(`<proto>void <name>glX</name></proto><param><name>a</name></param>`), ErrInvalidType},
		{"unnamed parameter", commandDoc(`<proto>void <name>glX</name></proto><param><ptype>GLint</ptype></param>`), ErrMissingName},
		{"unknown return type", commandDoc(`<proto><ptype>GLquux</ptype> <name>glX</name></proto>`), ErrInvalidType},
		{"missing return type", commandDoc(`<proto><name>glX</name></proto>`), ErrInvalidType},
		{"unnamed command", commandDoc(`<proto>void </proto>`), ErrMissingName},
		{"enum without name", `<registry><enums><enum value="1"/></enums></registry>`, ErrMissingAttribute},
		{"enum without value", `<registry><enums><enum name="GL_A"/></enums></registry>`, ErrMissingAttribute},
		{"duplicate constant", `<registry><enums><enum value="1" name="GL_A"/><enum value="2" name="GL_A"/></enums></registry>`, ErrDuplicateConstant},
		{"feature without number", `<registry><feature api="gl" name="F"/></registry>`, ErrMissingAttribute},
		{"feature with bad number", `<registry><feature api="gl" name="F" number="one"/></registry>`, ErrInvalidFeature},
		{"feature without api", `<registry><feature name="F" number="1.0"/></registry>`, ErrMissingAttribute},
		{"feature with unknown api", `<registry><feature api="glsc2" name="F" number="2.0"/></registry>`, ErrInvalidFeature},
		{"required command without name", `<registry><feature api="gl" name="F" number="1.0"><require><command/></require></feature></registry>`, ErrMissingAttribute},
		{"extension with empty name", `<registry><extensions><extension name=""/></extensions></registry>`, ErrMissingName},
		{"mismatched markup", `<registry><commands></command></registry>`, ErrSyntax},
		{"truncated markup", `<registry><commands>`, ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe := parseErr(t, tt.doc)
			assert.ErrorIs(t, pe, tt.want)
			assert.NotZero(t, pe.Pos.Line)
		})
	}
}

func TestFaultPosition(t *testing.T) {
	doc := "<registry>\n<commands>\n<command>\n<proto>void <name>glX</name></proto>\n<param><ptype>GLquux</ptype> <name>a</name></param>\n</command>\n</commands>\n</registry>"

	_, err := ParseFile(writeTemp(t, doc))
	require.Error(t, err)

	var pe *Error
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 5, pe.Pos.Line)
	assert.Contains(t, err.Error(), "registry.xml:5:")
	assert.Contains(t, err.Error(), "GLquux")
}

func TestBuilderRejectsMismatchedNesting(t *testing.T) {
	b := NewBuilder(slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, b.StartElement("registry", nil))
	require.NoError(t, b.StartElement("commands", nil))
	require.NoError(t, b.StartElement("command", nil))
	assert.Equal(t, Path{NodeCommands, NodeCommand}, b.Path())

	err := b.EndElement("commands")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestBuilderRejectsUnclosedElements(t *testing.T) {
	b := NewBuilder(slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, b.StartElement("enums", map[string]string{}))

	_, err := b.Finish()
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestBuilderIgnoresProcessingInstructions(t *testing.T) {
	b := NewBuilder(slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, b.ProcInst("xml", `version="1.0"`))

	reg, err := b.Finish()
	require.NoError(t, err)
	assert.Empty(t, reg.Commands)
}
