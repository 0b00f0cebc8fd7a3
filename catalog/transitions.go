package catalog

import (
	"fmt"

	"github.com/automoto/tileforge/circuit"
	"github.com/automoto/tileforge/transition"
	"gopkg.in/yaml.v3"
)

type transitionYAML struct {
	Type  string        `yaml:"type"`
	In    string        `yaml:"in"`
	Out   string        `yaml:"out"`
	Tiles []tileRefYAML `yaml:"tiles"`
}

type transitionsFile struct {
	Transitions []transitionYAML `yaml:"transitions"`
}

type circuitsFile struct {
	Circuits []transitionYAML `yaml:"circuits"`
}

// DecodeTransitions reads a transitions file.
func DecodeTransitions(file string, data []byte) (transition.Catalog, error) {
	var f transitionsFile
	if err := decode(file, data, &f); err != nil {
		return nil, err
	}
	catalog := make(transition.Catalog)
	for i, ty := range f.Transitions {
		node := fmt.Sprintf("transitions[%d]", i)
		if ty.In == "" || ty.Out == "" {
			return nil, missing(file, node, "in/out")
		}
		typ, err := transition.ParseType(ty.Type)
		if err != nil {
			return nil, typeError(file, node, err)
		}
		tr := transition.Transition{Type: typ, In: ty.In, Out: ty.Out}
		if len(ty.Tiles) == 0 {
			return nil, missing(file, tr.String(), "tiles")
		}
		tiles, err := refs(file, tr.String(), ty.Tiles)
		if err != nil {
			return nil, err
		}
		for _, r := range tiles {
			catalog.Add(tr, r)
		}
	}
	return catalog, nil
}

// EncodeTransitions writes a catalog sorted by groups then type.
func EncodeTransitions(catalog transition.Catalog) ([]byte, error) {
	f := transitionsFile{}
	for _, tr := range catalog.Transitions() {
		f.Transitions = append(f.Transitions, transitionYAML{
			Type:  tr.Type.String(),
			In:    tr.In,
			Out:   tr.Out,
			Tiles: refsYAML(catalog.Refs(tr)),
		})
	}
	return yaml.Marshal(f)
}

// DecodeCircuits reads a circuits file.
func DecodeCircuits(file string, data []byte) (circuit.Catalog, error) {
	var f circuitsFile
	if err := decode(file, data, &f); err != nil {
		return nil, err
	}
	catalog := make(circuit.Catalog)
	for i, cy := range f.Circuits {
		node := fmt.Sprintf("circuits[%d]", i)
		if cy.In == "" || cy.Out == "" {
			return nil, missing(file, node, "in/out")
		}
		typ, err := circuit.ParseType(cy.Type)
		if err != nil {
			return nil, typeError(file, node, err)
		}
		c := circuit.Circuit{Type: typ, In: cy.In, Out: cy.Out}
		if len(cy.Tiles) == 0 {
			return nil, missing(file, c.String(), "tiles")
		}
		tiles, err := refs(file, c.String(), cy.Tiles)
		if err != nil {
			return nil, err
		}
		for _, r := range tiles {
			catalog.Add(c, r)
		}
	}
	return catalog, nil
}

func EncodeCircuits(catalog circuit.Catalog) ([]byte, error) {
	f := circuitsFile{}
	for _, c := range catalog.Circuits() {
		f.Circuits = append(f.Circuits, transitionYAML{
			Type:  c.Type.String(),
			In:    c.In,
			Out:   c.Out,
			Tiles: refsYAML(catalog.Refs(c)),
		})
	}
	return yaml.Marshal(f)
}
