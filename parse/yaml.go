package parse

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/signadot/docval/doc"
	"gopkg.in/yaml.v3"
)

func parseYAML(data []byte) (doc.Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return doc.Value{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if root.Kind == 0 {
		return doc.Null(), nil
	}
	y := &yamlReader{active: map[*yaml.Node]bool{}}
	return y.node(&root)
}

// yamlReader converts a yaml.v3 node tree, keeping mapping key order.
type yamlReader struct {
	// aliases currently being expanded
	active map[*yaml.Node]bool
}

func (y *yamlReader) node(n *yaml.Node) (doc.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return doc.Null(), nil
		}
		return y.node(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return doc.Null(), nil
		}
		if y.active[n.Alias] {
			return doc.Value{}, fmt.Errorf("%w: alias *%s at line %d", doc.ErrCyclicReference, n.Value, n.Line)
		}
		y.active[n.Alias] = true
		defer delete(y.active, n.Alias)
		return y.node(n.Alias)
	case yaml.SequenceNode:
		a := doc.NewMutableArray()
		for _, elt := range n.Content {
			v, err := y.node(elt)
			if err != nil {
				return doc.Value{}, err
			}
			if err := a.Append(v); err != nil {
				return doc.Value{}, err
			}
		}
		return a.AsValue(), nil
	case yaml.MappingNode:
		return y.mapping(n)
	case yaml.ScalarNode:
		return y.scalar(n)
	}
	return doc.Value{}, fmt.Errorf("%w: unexpected yaml node kind %d at line %d", ErrParse, n.Kind, n.Line)
}

func (y *yamlReader) mapping(n *yaml.Node) (doc.Value, error) {
	d := doc.NewMutableDictionary()
	var merges []*yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return doc.Value{}, fmt.Errorf("%w at line %d", ErrYAMLKey, k.Line)
		}
		if k.ShortTag() == "!!merge" {
			merges = append(merges, v)
			continue
		}
		val, err := y.node(v)
		if err != nil {
			return doc.Value{}, fmt.Errorf("%s: %w", k.Value, err)
		}
		if err := d.SetValue(k.Value, val); err != nil {
			return doc.Value{}, err
		}
	}
	// explicit keys win over merged ones
	for _, m := range merges {
		srcs := []*yaml.Node{m}
		if m.Kind == yaml.SequenceNode {
			srcs = m.Content
		}
		for _, src := range srcs {
			val, err := y.node(src)
			if err != nil {
				return doc.Value{}, err
			}
			if val.Type() != doc.DictionaryType {
				return doc.Value{}, fmt.Errorf("%w: merge of %s at line %d", ErrParse, val.Type(), src.Line)
			}
			for k, v := range val.Entries() {
				if d.Contains(k) {
					continue
				}
				if err := d.SetValue(k, v); err != nil {
					return doc.Value{}, err
				}
			}
		}
	}
	if b, ok := doc.BlobFromProperties(d); ok {
		return doc.FromBlob(b), nil
	}
	return d.AsValue(), nil
}

func (y *yamlReader) scalar(n *yaml.Node) (doc.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return doc.Null(), nil
	case "!!str":
		return doc.FromString(n.Value), nil
	case "!!binary":
		data, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(n.Value), ""))
		if err != nil {
			return doc.Value{}, fmt.Errorf("%w: binary at line %d: %w", ErrParse, n.Line, err)
		}
		return doc.FromBlob(doc.NewBlob(doc.OctetStream, data)), nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return doc.Value{}, fmt.Errorf("%w: line %d: %w", ErrParse, n.Line, err)
		}
		return doc.FromDate(t), nil
	case "!!bool", "!!int", "!!float":
		var x any
		if err := n.Decode(&x); err != nil {
			return doc.Value{}, fmt.Errorf("%w: line %d: %w", ErrParse, n.Line, err)
		}
		v, err := doc.Coerce(x)
		if err != nil {
			return doc.Value{}, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
	return doc.FromString(n.Value), nil
}
