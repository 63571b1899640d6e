package wbxml

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Node kinds in the exported tree form.
const (
	kindElement = 1
	kindText    = 2
	kindOpaque  = 3
)

// treeNode is the serialized form of a Node. CBOR uses integer keys; JSON
// uses short names.
type treeNode struct {
	Kind       int         `cbor:"1,keyasint" json:"kind"`
	Name       string      `cbor:"2,keyasint,omitempty" json:"name,omitempty"`
	Page       int         `cbor:"3,keyasint,omitempty" json:"page,omitempty"`
	Prefix     string      `cbor:"4,keyasint,omitempty" json:"prefix,omitempty"`
	Namespaces []Namespace `cbor:"5,keyasint,omitempty" json:"namespaces,omitempty"`
	Reference  string      `cbor:"6,keyasint,omitempty" json:"ref,omitempty"`
	Text       string      `cbor:"7,keyasint,omitempty" json:"text,omitempty"`
	Data       []byte      `cbor:"8,keyasint,omitempty" json:"data,omitempty"`
	Children   []treeNode  `cbor:"9,keyasint,omitempty" json:"children,omitempty"`
}

var (
	treeEncMode cbor.EncMode
	treeDecMode cbor.DecMode
)

func init() {
	var err error

	treeEncMode, err = cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create tree CBOR encoder mode: %v", err))
	}

	treeDecMode, err = cbor.DecOptions{
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
		IndefLength:     cbor.IndefLengthForbidden,
		MaxNestedLevels: 256,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create tree CBOR decoder mode: %v", err))
	}
}

func toTree(n Node) (treeNode, error) {
	switch v := n.(type) {
	case *Element:
		if v == nil {
			return treeNode{}, fmt.Errorf("%w: nil element", ErrUnencodableTag)
		}
		t := treeNode{
			Kind:       kindElement,
			Name:       v.Name,
			Page:       v.Page,
			Prefix:     v.Prefix,
			Namespaces: v.Namespaces,
			Reference:  v.Reference,
		}
		for _, c := range v.Children {
			ct, err := toTree(c)
			if err != nil {
				return treeNode{}, err
			}
			t.Children = append(t.Children, ct)
		}
		return t, nil
	case Text:
		return treeNode{Kind: kindText, Text: string(v)}, nil
	case Opaque:
		return treeNode{Kind: kindOpaque, Data: []byte(v)}, nil
	default:
		return treeNode{}, fmt.Errorf("%w: unexpected node %T", ErrUnencodableTag, n)
	}
}

func fromTree(t treeNode) (Node, error) {
	switch t.Kind {
	case kindElement:
		el := &Element{
			Name:       t.Name,
			Page:       t.Page,
			Prefix:     t.Prefix,
			Namespaces: t.Namespaces,
			Reference:  t.Reference,
		}
		for _, ct := range t.Children {
			c, err := fromTree(ct)
			if err != nil {
				return nil, err
			}
			el.Children = append(el.Children, c)
		}
		return el, nil
	case kindText:
		return Text(t.Text), nil
	case kindOpaque:
		if t.Data == nil {
			return Opaque{}, nil
		}
		return Opaque(t.Data), nil
	default:
		return nil, fmt.Errorf("unknown node kind %d", t.Kind)
	}
}

func docToTree(doc *Document) ([]treeNode, error) {
	out := make([]treeNode, 0, len(doc.Children))
	for _, n := range doc.Children {
		t, err := toTree(n)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func treeToDoc(nodes []treeNode) (*Document, error) {
	doc := &Document{}
	for _, t := range nodes {
		n, err := fromTree(t)
		if err != nil {
			return nil, err
		}
		doc.Children = append(doc.Children, n)
	}
	return doc, nil
}

// MarshalTree serializes doc to CBOR, keeping presentation fields.
func MarshalTree(doc *Document) ([]byte, error) {
	nodes, err := docToTree(doc)
	if err != nil {
		return nil, err
	}
	return treeEncMode.Marshal(nodes)
}

// UnmarshalTree restores a document written by MarshalTree.
func UnmarshalTree(data []byte) (*Document, error) {
	var nodes []treeNode
	if err := treeDecMode.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("decoding tree: %w", err)
	}
	return treeToDoc(nodes)
}

// MarshalTreeJSON serializes doc to indented JSON. Opaque data is base64.
func MarshalTreeJSON(doc *Document) ([]byte, error) {
	nodes, err := docToTree(doc)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(nodes, "", "  ")
}

// UnmarshalTreeJSON restores a document written by MarshalTreeJSON.
func UnmarshalTreeJSON(data []byte) (*Document, error) {
	var nodes []treeNode
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("decoding tree: %w", err)
	}
	return treeToDoc(nodes)
}
