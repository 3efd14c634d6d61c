package generator

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strings"
	"text/template"

	"golang.org/x/sync/errgroup"

	"github.com/ardanlabs/glgen/parser"
)

// Output file names, relative to the output directory.
const (
	ConstantsFile = "constants.go"
	LoaderFile    = "loader.go"
)

// Preamble starts every generated file.
const Preamble = "// Code generated by glgen. DO NOT EDIT.\n"

type Generator struct {
	packageName string
	registry    *parser.Registry
}

func New(packageName string, registry *parser.Registry) *Generator {
	return &Generator{
		packageName: packageName,
		registry:    registry,
	}
}

// Generate renders both output files. The two passes only read the registry
// and run concurrently.
func (g *Generator) Generate() (map[string]string, error) {
	var (
		eg                errgroup.Group
		constants, loader string
	)

	eg.Go(func() error {
		var err error
		if constants, err = g.generateConstants(); err != nil {
			return fmt.Errorf("generating constants: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		var err error
		if loader, err = g.generateLoader(); err != nil {
			return fmt.Errorf("generating loader: %w", err)
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return map[string]string{
		ConstantsFile: constants,
		LoaderFile:    loader,
	}, nil
}

func (g *Generator) generateConstants() (string, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s\npackage %s\n\n", Preamble, g.packageName)

	fmt.Fprintf(&buf, "const (\n")
	for _, c := range g.registry.Constants {
		fmt.Fprintf(&buf, "\t%s %s = %s\n", toConstName(c.Name), c.Type, c.Value)
	}
	fmt.Fprintf(&buf, ")\n")

	return formatSource(buf.Bytes())
}

var loaderHeader = template.Must(template.New("loader").Parse(`{{.Preamble}}
package {{.Package}}
{{if or .Std .Third}}
import (
{{- range .Std}}
	"{{.}}"
{{- end}}
{{- if and .Std .Third}}
{{end}}
{{- range .Third}}
	"{{.}}"
{{- end}}
)
{{end}}
{{- if .Support}}
const (
{{- range $i, $s := .Support}}
	ss{{$i}} = {{printf "%q" $s}}
{{- end}}
)
{{end}}
// OpenGL function loaders. Each binding starts out pointing at its loader,
// which resolves the entry point, rebinds the binding and forwards the call.

`))

func (g *Generator) generateLoader() (string, error) {
	support := supportDescriptions(g.registry)
	index := make(map[string]int, len(support))
	for i, s := range support {
		index[s] = i
	}

	var body bytes.Buffer
	var usesUnsafe bool

	for _, cmd := range g.registry.Commands {
		if g.generateCommand(&body, cmd, index) {
			usesUnsafe = true
		}
	}

	if len(g.registry.Commands) > 0 {
		fmt.Fprintf(&body, "func init() {\n")
		for _, cmd := range g.registry.Commands {
			name := toGoName(cmd.Name)
			fmt.Fprintf(&body, "\tfp%s = load%s\n", name, name)
		}
		fmt.Fprintf(&body, "}\n")
	}

	var std, third []string
	if usesUnsafe {
		std = append(std, "unsafe")
	}
	if len(g.registry.Commands) > 0 {
		third = append(third, "github.com/ebitengine/purego")
	}

	var buf bytes.Buffer
	err := loaderHeader.Execute(&buf, map[string]any{
		"Preamble": Preamble,
		"Package":  g.packageName,
		"Std":      std,
		"Third":    third,
		"Support":  support,
	})
	if err != nil {
		return "", err
	}
	buf.Write(body.Bytes())

	return formatSource(buf.Bytes())
}

// generateCommand writes the binding, loader and wrappers of one command. It
// reports whether any of them mention package unsafe.
func (g *Generator) generateCommand(buf *bytes.Buffer, cmd parser.Command, index map[string]int) bool {
	name := toGoName(cmd.Name)
	fp := "fp" + name

	var params, args, fields, fieldArgs []string
	var usesUnsafe bool

	for _, p := range cmd.Params {
		typ := goType(p.Type, p.Pointer)
		if strings.Contains(typ, "unsafe.") {
			usesUnsafe = true
		}
		field := toExported(p.Name)

		params = append(params, fmt.Sprintf("%s %s", p.Name, typ))
		args = append(args, p.Name)
		fields = append(fields, fmt.Sprintf("\t%s %s\n", field, typ))
		fieldArgs = append(fieldArgs, "p."+field)
	}

	var ret, retKw string
	if typ, ok := goReturnType(cmd.ReturnType); ok {
		if strings.Contains(typ, "unsafe.") {
			usesUnsafe = true
		}
		ret = " " + typ
		retKw = "return "
	}

	history := g.registry.Support[cmd.Name]

	var supportArgs strings.Builder
	for _, s := range history {
		fmt.Fprintf(&supportArgs, ", ss%d", index[s.String()])
	}

	paramList := strings.Join(params, ", ")
	argList := strings.Join(args, ", ")

	fmt.Fprintf(buf, "var %s func(%s)%s\n\n", fp, paramList, ret)

	fmt.Fprintf(buf, "func load%s(%s)%s {\n", name, paramList, ret)
	fmt.Fprintf(buf, "\tpurego.RegisterFunc(&%s, procAddress(%q%s))\n", fp, cmd.Name, supportArgs.String())
	fmt.Fprintf(buf, "\t%s%s(%s)\n", retKw, fp, argList)
	fmt.Fprintf(buf, "}\n\n")

	fmt.Fprintf(buf, "// %s calls %s.\n", name, cmd.Name)
	if len(history) > 0 {
		fmt.Fprintf(buf, "//\n")
		for _, s := range history {
			fmt.Fprintf(buf, "// %s\n", s)
		}
	}
	fmt.Fprintf(buf, "func %s(%s)%s {\n", name, paramList, ret)
	fmt.Fprintf(buf, "\t%s%s(%s)\n", retKw, fp, argList)
	fmt.Fprintf(buf, "}\n\n")

	if len(cmd.Params) == 0 {
		return usesUnsafe
	}

	fmt.Fprintf(buf, "// %sParams holds the arguments of %s by name.\n", name, cmd.Name)
	fmt.Fprintf(buf, "type %sParams struct {\n%s}\n\n", name, strings.Join(fields, ""))

	fmt.Fprintf(buf, "// Call invokes %s with the fields of p.\n", cmd.Name)
	fmt.Fprintf(buf, "func (p %sParams) Call()%s {\n", name, ret)
	fmt.Fprintf(buf, "\t%s%s(%s)\n", retKw, fp, strings.Join(fieldArgs, ", "))
	fmt.Fprintf(buf, "}\n\n")

	return usesUnsafe
}

// supportDescriptions returns every distinct support description in the
// registry, sorted.
func supportDescriptions(reg *parser.Registry) []string {
	seen := make(map[string]struct{})
	for _, history := range reg.Support {
		for _, s := range history {
			seen[s.String()] = struct{}{}
		}
	}

	descs := make([]string, 0, len(seen))
	for s := range seen {
		descs = append(descs, s)
	}
	sort.Strings(descs)

	return descs
}

func formatSource(src []byte) (string, error) {
	out, err := format.Source(src)
	if err != nil {
		return "", fmt.Errorf("formatting: %w", err)
	}
	return string(out), nil
}
