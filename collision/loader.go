package collision

import "fmt"

// Loader holds the formulas and collision groups in use. Load replaces both
// at once, so a failed load leaves the previous data untouched.
type Loader struct {
	formulas     map[string]*Formula
	formulaOrder []string
	groups       map[string]*Group
	groupOrder   []string
	revision     uint64
}

func NewLoader() *Loader {
	return &Loader{
		formulas: make(map[string]*Formula),
		groups:   make(map[string]*Group),
	}
}

// Load validates and installs formulas and groups. Every formula a group
// lists must be part of formulas.
func (l *Loader) Load(formulas []*Formula, groups []*Group) error {
	fm := make(map[string]*Formula, len(formulas))
	forder := make([]string, 0, len(formulas))
	for _, f := range formulas {
		if _, ok := fm[f.Name]; ok {
			return fmt.Errorf("formula %s: %w", f.Name, ErrDuplicateName)
		}
		if err := f.Range.Validate(); err != nil {
			return fmt.Errorf("formula %s: %w", f.Name, err)
		}
		fm[f.Name] = f
		forder = append(forder, f.Name)
	}

	gm := make(map[string]*Group, len(groups))
	gorder := make([]string, 0, len(groups))
	for _, g := range groups {
		if _, ok := gm[g.Name]; ok {
			return fmt.Errorf("collision group %s: %w", g.Name, ErrDuplicateName)
		}
		for _, f := range g.Formulas {
			if known, ok := fm[f.Name]; !ok || known != f {
				return fmt.Errorf("collision group %s formula %s: %w", g.Name, f.Name, ErrUnknownFormula)
			}
		}
		gm[g.Name] = g
		gorder = append(gorder, g.Name)
	}

	l.formulas, l.formulaOrder = fm, forder
	l.groups, l.groupOrder = gm, gorder
	l.revision++
	return nil
}

// Revision changes on every successful Load.
func (l *Loader) Revision() uint64 {
	return l.revision
}

func (l *Loader) Formula(name string) (*Formula, bool) {
	f, ok := l.formulas[name]
	return f, ok
}

// Group returns the collision group of that name. Unknown names give an
// empty group, so tiles without collision data never collide.
func (l *Loader) Group(name string) *Group {
	if g, ok := l.groups[name]; ok {
		return g
	}
	return &Group{Name: name}
}

func (l *Loader) HasGroup(name string) bool {
	_, ok := l.groups[name]
	return ok
}

// Formulas returns formulas in load order.
func (l *Loader) Formulas() []*Formula {
	out := make([]*Formula, 0, len(l.formulaOrder))
	for _, name := range l.formulaOrder {
		out = append(out, l.formulas[name])
	}
	return out
}

// Groups returns collision groups in load order.
func (l *Loader) Groups() []*Group {
	out := make([]*Group, 0, len(l.groupOrder))
	for _, name := range l.groupOrder {
		out = append(out, l.groups[name])
	}
	return out
}
