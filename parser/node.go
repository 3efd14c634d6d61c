package parser

import "strings"

// Node is a registry element kind the parser tracks on its path stack.
type Node int

const (
	NodeExtensions Node = iota
	NodeExtension
	NodeRequire
	NodeCommands
	NodeCommand
	NodeFeature
	NodeRemove
	NodeGroups
	NodeGroup
	NodeEnums
	NodeEnum
	NodeParam
	NodeProto
	NodePtype
	NodeName

	// Recognized so nesting stays balanced, never dispatched on.
	NodeTypes
	NodeType
	NodeApientry
	NodeGlx
	NodeVecequiv
	NodeAlias
	NodeUnused
	NodeComment
)

var nodeTags = [...]string{
	NodeExtensions: "extensions",
	NodeExtension:  "extension",
	NodeRequire:    "require",
	NodeCommands:   "commands",
	NodeCommand:    "command",
	NodeFeature:    "feature",
	NodeRemove:     "remove",
	NodeGroups:     "groups",
	NodeGroup:      "group",
	NodeEnums:      "enums",
	NodeEnum:       "enum",
	NodeParam:      "param",
	NodeProto:      "proto",
	NodePtype:      "ptype",
	NodeName:       "name",
	NodeTypes:      "types",
	NodeType:       "type",
	NodeApientry:   "apientry",
	NodeGlx:        "glx",
	NodeVecequiv:   "vecequiv",
	NodeAlias:      "alias",
	NodeUnused:     "unused",
	NodeComment:    "comment",
}

var nodesByTag = func() map[string]Node {
	m := make(map[string]Node, len(nodeTags))
	for n, tag := range nodeTags {
		m[tag] = Node(n)
	}
	return m
}()

// LookupNode classifies a tag name. Tags outside the closed set report false.
func LookupNode(tag string) (Node, bool) {
	n, ok := nodesByTag[tag]
	return n, ok
}

func (n Node) String() string {
	if n < 0 || int(n) >= len(nodeTags) {
		return "unknown"
	}
	return nodeTags[n]
}

// Path is the stack of open recognized elements, outermost first.
type Path []Node

// Is reports whether the path is exactly the given node sequence.
func (p Path) Is(nodes ...Node) bool {
	if len(p) != len(nodes) {
		return false
	}
	for i := range p {
		if p[i] != nodes[i] {
			return false
		}
	}
	return true
}

func (p Path) String() string {
	tags := make([]string, len(p))
	for i, n := range p {
		tags[i] = n.String()
	}
	return "[" + strings.Join(tags, " ") + "]"
}
