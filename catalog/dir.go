package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/automoto/tileforge/circuit"
	"github.com/automoto/tileforge/collision"
	"github.com/automoto/tileforge/generator"
	"github.com/automoto/tileforge/shared/tilemap"
	"github.com/automoto/tileforge/tilegroup"
	"github.com/automoto/tileforge/transition"
)

// File names inside a catalog directory.
const (
	SheetsFile      = "sheets.yaml"
	GroupsFile      = "groups.yaml"
	FormulasFile    = "formulas.yaml"
	CollisionsFile  = "collisions.yaml"
	CategoriesFile  = "categories.yaml"
	TransitionsFile = "transitions.yaml"
	CircuitsFile    = "circuits.yaml"
	GeneratorFile   = "generator.yaml"
)

// Set is everything a catalog directory describes. Only groups are
// required; missing files leave their field empty.
type Set struct {
	Sheets     []tilemap.Sheet
	Groups     []tilegroup.TileGroup
	Formulas   []*collision.Formula
	Collisions []*collision.Group
	Categories []*collision.Category

	Transitions transition.Catalog
	Circuits    circuit.Catalog
	Parameters  *generator.Parameters
}

// GroupModel builds a tile group model from the set.
func (s *Set) GroupModel() *tilegroup.Model {
	m := tilegroup.NewModel()
	m.LoadGroups(s.Groups)
	return m
}

// CollisionModel builds a collision model of m and resolves the category
// groups against it.
func (s *Set) CollisionModel(m *tilemap.MapTile) (*collision.Model, error) {
	model := collision.NewModel(m, s.GroupModel())
	if err := model.LoadCollisions(s.Formulas, s.Collisions); err != nil {
		return nil, err
	}
	if err := ResolveCategories(CategoriesFile, s.Categories, model); err != nil {
		return nil, err
	}
	return model, nil
}

// Load reads a catalog directory. It takes an fs.FS so callers can pass
// embed.FS or os.DirFS.
func Load(fsys fs.FS) (*Set, error) {
	s := &Set{}

	data, err := fs.ReadFile(fsys, GroupsFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", GroupsFile, err)
	}
	if s.Groups, err = DecodeGroups(GroupsFile, data); err != nil {
		return nil, err
	}

	if data, ok, err := readOptional(fsys, SheetsFile); err != nil {
		return nil, err
	} else if ok {
		if s.Sheets, err = DecodeSheets(SheetsFile, data); err != nil {
			return nil, err
		}
	}

	if data, ok, err := readOptional(fsys, FormulasFile); err != nil {
		return nil, err
	} else if ok {
		if s.Formulas, err = DecodeFormulas(FormulasFile, data); err != nil {
			return nil, err
		}
	}

	if data, ok, err := readOptional(fsys, CollisionsFile); err != nil {
		return nil, err
	} else if ok {
		if s.Collisions, err = DecodeCollisions(CollisionsFile, data, s.Formulas); err != nil {
			return nil, err
		}
	}

	if data, ok, err := readOptional(fsys, CategoriesFile); err != nil {
		return nil, err
	} else if ok {
		if s.Categories, err = DecodeCategories(CategoriesFile, data); err != nil {
			return nil, err
		}
	}

	if data, ok, err := readOptional(fsys, TransitionsFile); err != nil {
		return nil, err
	} else if ok {
		if s.Transitions, err = DecodeTransitions(TransitionsFile, data); err != nil {
			return nil, err
		}
	}

	if data, ok, err := readOptional(fsys, CircuitsFile); err != nil {
		return nil, err
	} else if ok {
		if s.Circuits, err = DecodeCircuits(CircuitsFile, data); err != nil {
			return nil, err
		}
	}

	if data, ok, err := readOptional(fsys, GeneratorFile); err != nil {
		return nil, err
	} else if ok {
		if s.Parameters, err = DecodeParameters(GeneratorFile, data); err != nil {
			return nil, err
		}
	}

	log.Printf("Loaded catalog: %d sheets, %d groups, %d formulas, %d transitions, %d circuits",
		len(s.Sheets), len(s.Groups), len(s.Formulas), len(s.Transitions), len(s.Circuits))
	return s, nil
}

func readOptional(fsys fs.FS, name string) ([]byte, bool, error) {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", name, err)
	}
	return data, true, nil
}

// SaveCollisions writes the formulas and collision groups of a model, and
// the categories probing them, into dir.
func SaveCollisions(dir string, model *collision.Model, categories []*collision.Category) error {
	return saveCollisions(dir, model.Formulas(), model.Groups(), categories)
}

func saveCollisions(dir string, formulas []*collision.Formula, groups []*collision.Group, categories []*collision.Category) error {
	data, err := EncodeFormulas(formulas)
	if err != nil {
		return err
	}
	if err := writeFile(dir, FormulasFile, data); err != nil {
		return err
	}
	if data, err = EncodeCollisions(groups); err != nil {
		return err
	}
	if err := writeFile(dir, CollisionsFile, data); err != nil {
		return err
	}
	if data, err = EncodeCategories(categories); err != nil {
		return err
	}
	return writeFile(dir, CategoriesFile, data)
}

// Save writes the set into dir, one file per part. Parts left empty are
// not written.
func (s *Set) Save(dir string) error {
	data, err := EncodeGroups(s.Groups)
	if err != nil {
		return err
	}
	if err := writeFile(dir, GroupsFile, data); err != nil {
		return err
	}
	if len(s.Sheets) > 0 {
		if data, err = EncodeSheets(s.Sheets); err != nil {
			return err
		}
		if err := writeFile(dir, SheetsFile, data); err != nil {
			return err
		}
	}
	if len(s.Formulas) > 0 || len(s.Collisions) > 0 || len(s.Categories) > 0 {
		if err := saveCollisions(dir, s.Formulas, s.Collisions, s.Categories); err != nil {
			return err
		}
	}
	if s.Transitions != nil && s.Circuits != nil {
		if err := SaveCatalogs(dir, s.Transitions, s.Circuits); err != nil {
			return err
		}
	}
	if s.Parameters != nil {
		if data, err = EncodeParameters(s.Parameters); err != nil {
			return err
		}
		if err := writeFile(dir, GeneratorFile, data); err != nil {
			return err
		}
	}
	log.Printf("Saved catalog into %s", dir)
	return nil
}

// SaveCatalogs writes extracted transitions and circuits into dir.
func SaveCatalogs(dir string, transitions transition.Catalog, circuits circuit.Catalog) error {
	data, err := EncodeTransitions(transitions)
	if err != nil {
		return err
	}
	if err := writeFile(dir, TransitionsFile, data); err != nil {
		return err
	}
	if data, err = EncodeCircuits(circuits); err != nil {
		return err
	}
	return writeFile(dir, CircuitsFile, data)
}

func writeFile(dir, name string, data []byte) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Category returns the category with the given name.
func (s *Set) Category(name string) (*collision.Category, bool) {
	for _, c := range s.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}
