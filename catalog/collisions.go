package catalog

import (
	"fmt"

	"github.com/automoto/tileforge/collision"
	"github.com/automoto/tileforge/shared/tilemap"
	"gopkg.in/yaml.v3"
)

type rangeYAML struct {
	Output string `yaml:"output"`
	MinX   *int   `yaml:"minX"`
	MaxX   *int   `yaml:"maxX"`
	MinY   *int   `yaml:"minY"`
	MaxY   *int   `yaml:"maxY"`
}

func (r *rangeYAML) decode(file, node string) (collision.Range, error) {
	var out collision.Range
	if r.Output == "" {
		return out, missing(file, node, "range.output")
	}
	output, err := collision.ParseAxis(r.Output)
	if err != nil {
		return out, configError(file, node, err)
	}
	out.Output = output
	for _, b := range []struct {
		dst  *int
		src  *int
		name string
	}{
		{&out.MinX, r.MinX, "range.minX"},
		{&out.MaxX, r.MaxX, "range.maxX"},
		{&out.MinY, r.MinY, "range.minY"},
		{&out.MaxY, r.MaxY, "range.maxY"},
	} {
		if *b.dst, err = required(b.src, file, node, b.name); err != nil {
			return out, err
		}
	}
	return out, nil
}

func rangeOf(r collision.Range) *rangeYAML {
	minX, maxX, minY, maxY := r.MinX, r.MaxX, r.MinY, r.MaxY
	return &rangeYAML{Output: r.Output.String(), MinX: &minX, MaxX: &maxX, MinY: &minY, MaxY: &maxY}
}

type functionYAML struct {
	Type string   `yaml:"type,omitempty"`
	A    *float64 `yaml:"a"`
	B    *float64 `yaml:"b"`
}

type constraintYAML struct {
	Orientation string   `yaml:"orientation"`
	Require     []string `yaml:"require,omitempty"`
	Forbid      []string `yaml:"forbid,omitempty"`
}

type formulaYAML struct {
	Name        string           `yaml:"name"`
	Range       *rangeYAML       `yaml:"range"`
	Function    *functionYAML    `yaml:"function"`
	Constraints []constraintYAML `yaml:"constraints,omitempty"`
}

type formulasFile struct {
	Formulas []formulaYAML `yaml:"formulas"`
}

const functionLinear = "linear"

// DecodeFormulas reads a formulas file.
func DecodeFormulas(file string, data []byte) ([]*collision.Formula, error) {
	var f formulasFile
	if err := decode(file, data, &f); err != nil {
		return nil, err
	}
	formulas := make([]*collision.Formula, 0, len(f.Formulas))
	for i, fy := range f.Formulas {
		node := fmt.Sprintf("formulas[%d]", i)
		if fy.Name == "" {
			return nil, missing(file, node, "name")
		}
		node = fmt.Sprintf("formula %s", fy.Name)
		if fy.Range == nil {
			return nil, missing(file, node, "range")
		}
		if fy.Function == nil {
			return nil, missing(file, node, "function")
		}
		if fy.Function.Type != "" && fy.Function.Type != functionLinear {
			return nil, configError(file, node, fmt.Errorf("function %q: %w", fy.Function.Type, ErrUnknownType))
		}
		r, err := fy.Range.decode(file, node)
		if err != nil {
			return nil, err
		}
		a, err := required(fy.Function.A, file, node, "function.a")
		if err != nil {
			return nil, err
		}
		b, err := required(fy.Function.B, file, node, "function.b")
		if err != nil {
			return nil, err
		}
		constraint := collision.NewConstraint()
		for _, cy := range fy.Constraints {
			o, err := tilemap.ParseOrientation(cy.Orientation)
			if err != nil {
				return nil, configError(file, node, err)
			}
			constraint.Require(o, cy.Require...).Forbid(o, cy.Forbid...)
		}
		formula, err := collision.NewFormula(fy.Name, r, collision.Linear{A: a, B: b}, constraint)
		if err != nil {
			return nil, configError(file, node, err)
		}
		formulas = append(formulas, formula)
	}
	return formulas, nil
}

// EncodeFormulas writes formulas. Only linear functions can be written.
func EncodeFormulas(formulas []*collision.Formula) ([]byte, error) {
	f := formulasFile{Formulas: make([]formulaYAML, 0, len(formulas))}
	for _, formula := range formulas {
		linear, ok := formula.Function.(collision.Linear)
		if !ok {
			return nil, configError("", "formula "+formula.Name, fmt.Errorf("function %T: %w", formula.Function, ErrUnknownType))
		}
		a, b := linear.A, linear.B
		fy := formulaYAML{
			Name:     formula.Name,
			Range:    rangeOf(formula.Range),
			Function: &functionYAML{Type: functionLinear, A: &a, B: &b},
		}
		for _, o := range tilemap.Orientations {
			req, forbid := formula.Constraint.Required(o), formula.Constraint.Forbidden(o)
			if len(req) == 0 && len(forbid) == 0 {
				continue
			}
			fy.Constraints = append(fy.Constraints, constraintYAML{Orientation: o.String(), Require: req, Forbid: forbid})
		}
		f.Formulas = append(f.Formulas, fy)
	}
	return yaml.Marshal(f)
}

type collisionYAML struct {
	Group    string   `yaml:"group"`
	Formulas []string `yaml:"formulas"`
}

type collisionsFile struct {
	Collisions []collisionYAML `yaml:"collisions"`
}

// DecodeCollisions reads a collisions file, resolving formula names against
// formulas.
func DecodeCollisions(file string, data []byte, formulas []*collision.Formula) ([]*collision.Group, error) {
	var f collisionsFile
	if err := decode(file, data, &f); err != nil {
		return nil, err
	}
	byName := make(map[string]*collision.Formula, len(formulas))
	for _, formula := range formulas {
		byName[formula.Name] = formula
	}

	groups := make([]*collision.Group, 0, len(f.Collisions))
	for i, cy := range f.Collisions {
		node := fmt.Sprintf("collisions[%d]", i)
		if cy.Group == "" {
			return nil, missing(file, node, "group")
		}
		g := &collision.Group{Name: cy.Group}
		for _, name := range cy.Formulas {
			formula, ok := byName[name]
			if !ok {
				return nil, configError(file, "collision "+cy.Group, fmt.Errorf("%s: %w", name, ErrUnknownFormula))
			}
			g.Formulas = append(g.Formulas, formula)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func EncodeCollisions(groups []*collision.Group) ([]byte, error) {
	f := collisionsFile{Collisions: make([]collisionYAML, 0, len(groups))}
	for _, g := range groups {
		cy := collisionYAML{Group: g.Name, Formulas: make([]string, 0, len(g.Formulas))}
		for _, formula := range g.Formulas {
			cy.Formulas = append(cy.Formulas, formula.Name)
		}
		f.Collisions = append(f.Collisions, cy)
	}
	return yaml.Marshal(f)
}

type categoryYAML struct {
	Name   string   `yaml:"name"`
	Axis   string   `yaml:"axis"`
	X      *int     `yaml:"x"`
	Y      *int     `yaml:"y"`
	Glue   *bool    `yaml:"glue,omitempty"`
	Groups []string `yaml:"groups,omitempty"`
}

type categoriesFile struct {
	Categories []categoryYAML `yaml:"categories"`
}

// DecodeCategories reads a categories file. Glue defaults to true. Group
// names are not checked, see ResolveCategories.
func DecodeCategories(file string, data []byte) ([]*collision.Category, error) {
	var f categoriesFile
	if err := decode(file, data, &f); err != nil {
		return nil, err
	}
	categories := make([]*collision.Category, 0, len(f.Categories))
	for i, cy := range f.Categories {
		node := fmt.Sprintf("categories[%d]", i)
		if cy.Name == "" {
			return nil, missing(file, node, "name")
		}
		node = "category " + cy.Name
		axis, err := collision.ParseAxis(cy.Axis)
		if err != nil {
			return nil, configError(file, node, err)
		}
		x, err := required(cy.X, file, node, "x")
		if err != nil {
			return nil, err
		}
		y, err := required(cy.Y, file, node, "y")
		if err != nil {
			return nil, err
		}
		glue := true
		if cy.Glue != nil {
			glue = *cy.Glue
		}
		categories = append(categories, &collision.Category{
			Name:    cy.Name,
			Axis:    axis,
			OffsetX: x,
			OffsetY: y,
			Glue:    glue,
			Groups:  cy.Groups,
		})
	}
	return categories, nil
}

// ResolveCategories checks every group a category names against the loaded
// collision groups.
func ResolveCategories(file string, categories []*collision.Category, model *collision.Model) error {
	for _, c := range categories {
		for _, g := range c.Groups {
			if !model.HasGroup(g) {
				return configError(file, "category "+c.Name, fmt.Errorf("%s: %w", g, ErrUnknownGroup))
			}
		}
	}
	return nil
}

func EncodeCategories(categories []*collision.Category) ([]byte, error) {
	f := categoriesFile{Categories: make([]categoryYAML, 0, len(categories))}
	for _, c := range categories {
		glue, x, y := c.Glue, c.OffsetX, c.OffsetY
		f.Categories = append(f.Categories, categoryYAML{
			Name:   c.Name,
			Axis:   c.Axis.String(),
			X:      &x,
			Y:      &y,
			Glue:   &glue,
			Groups: c.Groups,
		})
	}
	return yaml.Marshal(f)
}
