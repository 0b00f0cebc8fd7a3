package catalog

import (
	"fmt"
	"hash/fnv"
	"log"

	"github.com/automoto/tileforge/circuit"
	"github.com/automoto/tileforge/config"
	"github.com/automoto/tileforge/shared/tilemap"
	"github.com/automoto/tileforge/tilegroup"
	"github.com/automoto/tileforge/transition"
	"github.com/quasilyte/gdata"
)

// ItemStore is the part of a gdata manager the cache uses.
type ItemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Cache keeps extracted catalogs between runs, keyed by a fingerprint of
// the sample levels and groups they came from.
type Cache struct {
	store ItemStore
}

func NewCache(store ItemStore) *Cache {
	return &Cache{store: store}
}

// OpenCache opens the gdata store of the configured application. A disabled
// cache returns nil, which every Cache method accepts.
func OpenCache() (*Cache, error) {
	if !config.Cache.Enabled {
		return nil, nil
	}
	m, err := gdata.Open(gdata.Config{AppName: config.Cache.AppName})
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", config.Cache.AppName, err)
	}
	return NewCache(m), nil
}

// Fingerprint hashes everything extraction reads: the size and every tile
// of each level, in order, and the configured groups.
func Fingerprint(levels []*tilemap.MapTile, groups *tilegroup.Model) string {
	h := fnv.New64a()
	for _, m := range levels {
		fmt.Fprintf(h, "map %d %d %d %d\n", m.TileWidth, m.TileHeight, m.InTileWidth, m.InTileHeight)
		m.Each(func(t *tilemap.Tile) {
			fmt.Fprintf(h, "%d %d %s %q\n", t.X, t.Y, t.Ref, t.Group)
		})
	}
	for _, g := range groups.Export() {
		fmt.Fprintf(h, "group %q %s", g.Name, g.Type)
		for _, r := range g.Tiles {
			fmt.Fprintf(h, " %s", r)
		}
		h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// Key derives the item key of a catalog kind for a fingerprint.
func Key(kind, fingerprint string) string {
	return kind + "_" + fingerprint
}

// LoadTransitions returns the cached catalog, or nil when there is none.
func (c *Cache) LoadTransitions(fingerprint string) (transition.Catalog, error) {
	data, err := c.load(Key("transitions", fingerprint))
	if data == nil || err != nil {
		return nil, err
	}
	return DecodeTransitions("cache", data)
}

func (c *Cache) SaveTransitions(fingerprint string, catalog transition.Catalog) error {
	data, err := EncodeTransitions(catalog)
	if err != nil {
		return err
	}
	return c.save(Key("transitions", fingerprint), data)
}

// LoadCircuits returns the cached catalog, or nil when there is none.
func (c *Cache) LoadCircuits(fingerprint string) (circuit.Catalog, error) {
	data, err := c.load(Key("circuits", fingerprint))
	if data == nil || err != nil {
		return nil, err
	}
	return DecodeCircuits("cache", data)
}

func (c *Cache) SaveCircuits(fingerprint string, catalog circuit.Catalog) error {
	data, err := EncodeCircuits(catalog)
	if err != nil {
		return err
	}
	return c.save(Key("circuits", fingerprint), data)
}

func (c *Cache) load(key string) ([]byte, error) {
	if c == nil || c.store == nil {
		return nil, nil
	}
	data, err := c.store.LoadItem(key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return data, nil
}

func (c *Cache) save(key string, data []byte) error {
	if c == nil || c.store == nil {
		return nil
	}
	if err := c.store.SaveItem(key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	log.Printf("Cached %s (%d bytes)", key, len(data))
	return nil
}
