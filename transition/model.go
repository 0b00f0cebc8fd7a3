package transition

import (
	"fmt"
	"log"
	"math/rand"
	"sort"

	"github.com/automoto/tileforge/config"
	"github.com/automoto/tileforge/shared/tilemap"
	"github.com/automoto/tileforge/tilegroup"
)

// AcceptFunc tells whether art may be placed where tile at stands.
type AcceptFunc func(ref tilemap.TileRef, at *tilemap.Tile) bool

type Option func(*Model)

// WithRand sets the random source used to pick among candidate art.
func WithRand(r *rand.Rand) Option {
	return func(m *Model) { m.rng = r }
}

// WithAccept filters candidate art, e.g. on collision constraints.
func WithAccept(fn AcceptFunc) Option {
	return func(m *Model) { m.accept = fn }
}

// Model is the transition feature of a map.
type Model struct {
	mapTile *tilemap.MapTile
	groups  *tilegroup.Model
	rng     *rand.Rand
	accept  AcceptFunc

	catalog Catalog
	byTile  map[tilemap.TileRef][]Transition
	links   map[string][]string
}

func NewModel(m *tilemap.MapTile, groups *tilegroup.Model, opts ...Option) *Model {
	model := &Model{
		mapTile: m,
		groups:  groups,
		rng:     rand.New(rand.NewSource(config.Generator.Seed)),
		catalog: make(Catalog),
		byTile:  make(map[tilemap.TileRef][]Transition),
		links:   make(map[string][]string),
	}
	for _, opt := range opts {
		opt(model)
	}
	return model
}

// LoadTransitions replaces the catalog.
func (m *Model) LoadTransitions(catalog Catalog) {
	next := make(Catalog, len(catalog))
	next.Merge(catalog)

	byTile := make(map[tilemap.TileRef][]Transition)
	linked := make(map[string]map[string]bool)
	for _, tr := range sortedTransitions(next) {
		for _, ref := range next.Refs(tr) {
			byTile[ref] = append(byTile[ref], tr)
		}
		if tr.Type == Center {
			continue
		}
		if linked[tr.In] == nil {
			linked[tr.In] = make(map[string]bool)
		}
		linked[tr.In][tr.Out] = true
	}
	links := make(map[string][]string, len(linked))
	for in, outs := range linked {
		for out := range outs {
			links[in] = append(links[in], out)
		}
		sort.Strings(links[in])
	}

	m.catalog, m.byTile, m.links = next, byTile, links
}

// Catalog returns the loaded catalog. It must not be modified.
func (m *Model) Catalog() Catalog {
	return m.catalog
}

// GetTransitions returns every known transition, sorted.
func (m *Model) GetTransitions() []Transition {
	return sortedTransitions(m.catalog)
}

// GetTiles returns the sorted art of a transition.
func (m *Model) GetTiles(tr Transition) []tilemap.TileRef {
	return m.catalog.Refs(tr)
}

// GetTransition returns the transition drawn by ref as seen from group.
func (m *Model) GetTransition(ref tilemap.TileRef, group string) (Transition, bool) {
	for _, tr := range m.byTile[ref] {
		if tr.In == group {
			return tr, true
		}
	}
	return Transition{}, false
}

// GetTransitives returns the shortest chain of group pairs with art going
// from in to out. It is nil when the groups are equal or not connected.
func (m *Model) GetTransitives(in, out string) []GroupTransition {
	if in == out {
		return nil
	}
	prev := map[string]string{in: ""}
	queue := []string{in}
	for len(queue) > 0 {
		g := queue[0]
		queue = queue[1:]
		if g == out {
			break
		}
		for _, next := range m.links[g] {
			if _, seen := prev[next]; !seen {
				prev[next] = g
				queue = append(queue, next)
			}
		}
	}
	if _, ok := prev[out]; !ok {
		return nil
	}

	var path []GroupTransition
	for g := out; g != in; g = prev[g] {
		path = append(path, GroupTransition{In: prev[g], Out: g})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func (m *Model) linked(in, out string) bool {
	for _, g := range m.links[in] {
		if g == out {
			return true
		}
	}
	return false
}

// LogicalGroup returns the terrain group a tile stands for. Transition art
// without a group stands for the lower of the groups it joins.
func (m *Model) LogicalGroup(t *tilemap.Tile) string {
	if t.Group != "" {
		return t.Group
	}
	art := m.groups.Group(t.Ref)
	if m.groups.Type(art) != tilegroup.TypeTransition {
		return art
	}
	group := tilegroup.NoGroup
	for _, tr := range m.byTile[t.Ref] {
		if group == tilegroup.NoGroup || m.groups.Priority(tr.In) < m.groups.Priority(group) {
			group = tr.In
		}
	}
	return group
}

// verdict is the outcome of looking at one cell: either the transition it
// needs, or a higher group it has to become.
type verdict struct {
	transition Transition
	promote    string
	skip       bool
}

// evaluate classifies a cell against its neighbours. Only neighbours of a
// higher priority terrain group matter; the cell takes the transition art
// towards them.
func (m *Model) evaluate(t *tilemap.Tile) (verdict, error) {
	in := m.LogicalGroup(t)
	if !m.groups.IsTerrain(in) {
		return verdict{skip: true}, nil
	}
	inPriority := m.groups.Priority(in)

	var groups [8]string
	var higher []string
	for _, o := range tilemap.Orientations {
		n := m.mapTile.Neighbor(t, o)
		if n == nil {
			continue
		}
		g := m.LogicalGroup(n)
		if g == in || !m.groups.IsTerrain(g) || m.groups.Priority(g) < inPriority {
			continue
		}
		groups[o] = g
		if !contains(higher, g) {
			higher = append(higher, g)
		}
	}

	if len(higher) == 0 {
		return verdict{transition: Transition{Type: Center, In: in, Out: in}}, nil
	}
	sort.Slice(higher, func(i, j int) bool {
		return m.groups.Priority(higher[i]) < m.groups.Priority(higher[j])
	})
	out := higher[0]
	if len(higher) > 1 {
		return verdict{promote: out}, nil
	}

	var mask uint8
	for o, g := range groups {
		if g == out {
			mask |= 1 << uint(o)
		}
	}
	typ, ok := Classify(mask)
	if !ok {
		return verdict{promote: out}, nil
	}
	tr := Transition{Type: typ, In: in, Out: out}
	if m.linked(in, out) {
		return verdict{transition: tr}, nil
	}

	path := m.GetTransitives(in, out)
	if len(path) > 1 && m.groups.Priority(path[0].Out) > inPriority {
		return verdict{promote: path[0].Out}, nil
	}
	return verdict{}, fmt.Errorf("tile %d,%d %s: %w", t.X, t.Y, tr, ErrMissingTransition)
}

// Classify returns the transition a tile needs in its current neighbourhood.
// ok is false for cells that would have to change group, and for cells that
// are not terrain.
func (m *Model) Classify(t *tilemap.Tile) (Transition, bool) {
	v, err := m.evaluate(t)
	if err != nil || v.skip || v.promote != "" {
		return Transition{}, false
	}
	return v.transition, true
}

// Resolve updates a tile and its neighbours after an edit.
func (m *Model) Resolve(t *tilemap.Tile) error {
	seed := []*tilemap.Tile{t}
	for _, o := range tilemap.Orientations {
		if n := m.mapTile.Neighbor(t, o); n != nil {
			seed = append(seed, n)
		}
	}
	return m.resolve(seed)
}

// ResolveAll updates every tile of the map.
func (m *Model) ResolveAll() error {
	var seed []*tilemap.Tile
	m.mapTile.Each(func(t *tilemap.Tile) { seed = append(seed, t) })
	return m.resolve(seed)
}

// resolve first promotes cells until every neighbourhood can be drawn, then
// places art. Promotions only ever raise a cell's priority, so the first
// phase ends.
func (m *Model) resolve(seed []*tilemap.Tile) error {
	limit := max(config.Generator.MaxPromotions, len(m.groups.Groups()))
	promotions := make(map[*tilemap.Tile]int)
	touched := make(map[*tilemap.Tile]bool, len(seed))
	order := make([]*tilemap.Tile, 0, len(seed))
	queued := make(map[*tilemap.Tile]bool, len(seed))
	queue := make([]*tilemap.Tile, 0, len(seed))

	push := func(t *tilemap.Tile) {
		if !touched[t] {
			touched[t] = true
			order = append(order, t)
		}
		if !queued[t] {
			queued[t] = true
			queue = append(queue, t)
		}
	}
	for _, t := range seed {
		push(t)
	}

	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		queued[t] = false

		v, err := m.evaluate(t)
		if err != nil {
			return err
		}
		if v.promote == "" {
			continue
		}
		promotions[t]++
		if promotions[t] > limit {
			return fmt.Errorf("tile %d,%d towards %s: %w", t.X, t.Y, v.promote, ErrNoConvergence)
		}
		t.Group = v.promote
		push(t)
		for _, o := range tilemap.Orientations {
			if n := m.mapTile.Neighbor(t, o); n != nil {
				push(n)
			}
		}
	}

	for _, t := range order {
		v, err := m.evaluate(t)
		if err != nil {
			return err
		}
		if v.skip {
			continue
		}
		if v.promote != "" {
			return fmt.Errorf("tile %d,%d towards %s: %w", t.X, t.Y, v.promote, ErrNoConvergence)
		}
		if err := m.place(t, v.transition); err != nil {
			return err
		}
	}
	return nil
}

// place gives the tile art for tr, keeping the current art when it fits.
func (m *Model) place(t *tilemap.Tile, tr Transition) error {
	t.Group = tr.In
	if tr.Type == Center && m.groups.Group(t.Ref) == tr.In {
		return nil
	}
	candidates := m.catalog.Refs(tr)
	if len(candidates) == 0 && tr.Type == Center {
		candidates = m.groups.Tiles(tr.In)
	}
	if len(candidates) == 0 {
		return fmt.Errorf("tile %d,%d %s: %w", t.X, t.Y, tr, ErrMissingTransition)
	}
	for _, ref := range candidates {
		if ref == t.Ref {
			return nil
		}
	}
	t.Ref = m.pick(candidates, t)
	return m.mapTile.SetTile(t)
}

func (m *Model) pick(candidates []tilemap.TileRef, t *tilemap.Tile) tilemap.TileRef {
	if m.accept != nil {
		accepted := make([]tilemap.TileRef, 0, len(candidates))
		for _, ref := range candidates {
			if m.accept(ref, t) {
				accepted = append(accepted, ref)
			}
		}
		if len(accepted) > 0 {
			candidates = accepted
		} else {
			log.Printf("No candidate keeps constraints at %d,%d, using any of %d", t.X, t.Y, len(candidates))
		}
	}
	return candidates[m.rng.Intn(len(candidates))]
}

func sortedTransitions(c Catalog) []Transition {
	trs := make([]Transition, 0, len(c))
	for tr := range c {
		trs = append(trs, tr)
	}
	sort.Slice(trs, func(i, j int) bool { return trs[i].Less(trs[j]) })
	return trs
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
