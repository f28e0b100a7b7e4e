package layout

import (
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
	"strings"
)

// Node is one element of a folder template: Leaf, Group or Sequence.
type Node interface {
	isNode()
}

// Leaf marks a directory with no children to pre-create.
type Leaf struct{}

// Entry is a named child of a Group; Name becomes exactly one directory.
type Entry struct {
	Name  string
	Child Node
}

// Group maps child names to child nodes. Entry order only fixes creation order.
type Group struct {
	Entries []Entry
}

// Sequence attaches its items to the same parent directory.
type Sequence struct {
	Items []Node
}

func (Leaf) isNode()     {}
func (Group) isNode()    {}
func (Sequence) isNode() {}

func Named(name string, child Node) Entry {
	return Entry{Name: name, Child: child}
}

func NewGroup(entries ...Entry) Group {
	return Group{Entries: entries}
}

// Dir is a single directory without children, the bare-string list element of
// the template grammar.
func Dir(name string) Group {
	return NewGroup(Named(name, Leaf{}))
}

func Seq(items ...Node) Sequence {
	return Sequence{Items: items}
}

// IsEmpty reports whether node creates no descendants.
func IsEmpty(node Node) bool {
	switch n := node.(type) {
	case nil, Leaf:
		return true
	case Group:
		return len(n.Entries) == 0
	case Sequence:
		for _, item := range n.Items {
			if !IsEmpty(item) {
				return false
			}
		}
		return true
	}
	return true
}

// TopLevelNames lists the directory names node creates directly under its root.
func TopLevelNames(node Node) []string {
	var names []string
	switch n := node.(type) {
	case Group:
		for _, entry := range n.Entries {
			names = append(names, entry.Name)
		}
	case Sequence:
		for _, item := range n.Items {
			names = append(names, TopLevelNames(item)...)
		}
	}
	return names
}

// Validate rejects empty names, names containing path separators or dot
// segments, and duplicate keys within one Group.
func Validate(node Node) error {
	switch n := node.(type) {
	case nil, Leaf:
		return nil
	case Group:
		seen := make(map[string]struct{}, len(n.Entries))
		for _, entry := range n.Entries {
			if err := validateName(entry.Name); err != nil {
				return err
			}
			if _, dup := seen[entry.Name]; dup {
				return fmt.Errorf("duplicate folder %q in template group", entry.Name)
			}
			seen[entry.Name] = struct{}{}
			if err := Validate(entry.Child); err != nil {
				return fmt.Errorf("%s: %w", entry.Name, err)
			}
		}
	case Sequence:
		for _, item := range n.Items {
			if err := Validate(item); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown template node %T", node)
	}
	return nil
}

func validateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.New("empty folder name in template")
	case name == "." || name == "..":
		return fmt.Errorf("invalid folder name %q in template", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("folder name %q contains a path separator", name)
	}
	return nil
}

// Template is the YAML-facing wrapper of a template root node.
//
//	MODEL:
//	  - Characters: {High_Resolution: {__char_name: []}}
//	  - SHOTS
//	RENDERING: []
type Template struct {
	Root Node
}

func (t *Template) UnmarshalYAML(value *yaml.Node) error {
	root, err := decodeNode(value)
	if err != nil {
		return err
	}
	if err := Validate(root); err != nil {
		return err
	}
	t.Root = root
	return nil
}

func (t Template) IsZero() bool {
	return t.Root == nil
}

func decodeNode(value *yaml.Node) (Node, error) {
	switch value.Kind {
	case yaml.DocumentNode:
		if len(value.Content) == 0 {
			return Leaf{}, nil
		}
		return decodeNode(value.Content[0])
	case yaml.AliasNode:
		return decodeNode(value.Alias)
	case yaml.MappingNode:
		if len(value.Content) == 0 {
			return Leaf{}, nil
		}
		group := Group{}
		for i := 0; i+1 < len(value.Content); i += 2 {
			key, val := value.Content[i], value.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: template keys must be folder names", key.Line)
			}
			child, err := decodeNode(val)
			if err != nil {
				return nil, err
			}
			group.Entries = append(group.Entries, Named(key.Value, child))
		}
		return group, nil
	case yaml.SequenceNode:
		if len(value.Content) == 0 {
			return Leaf{}, nil
		}
		seq := Sequence{}
		for _, item := range value.Content {
			child, err := decodeNode(item)
			if err != nil {
				return nil, err
			}
			seq.Items = append(seq.Items, child)
		}
		return seq, nil
	case yaml.ScalarNode:
		if value.Tag == "!!null" || value.Value == "" {
			return Leaf{}, nil
		}
		return Dir(value.Value), nil
	}
	return nil, fmt.Errorf("line %d: unsupported template node", value.Line)
}
