// Package leveldata reads sample levels drawn in Tiled into tile maps.
// It has no dependencies on donburi or resolv, pure data only.
package leveldata

import "errors"

// DefaultLayer is the tile layer sample levels are read from.
const DefaultLayer = "tiles"

var (
	ErrNoLevels     = errors.New("no .tmx files found")
	ErrMissingLayer = errors.New("tile layer not found")
)

// GroupProperty is the Tiled tile property naming the logical group of a
// cell. Tiles without it take the group of their art.
const GroupProperty = "group"
