package config

// Config holds general map configuration
type Config struct {
	TileWidth  int
	TileHeight int
}

// CollisionConfig contains tile collision tunables
type CollisionConfig struct {
	MaxSweepSteps int // Upper bound of sub steps per sweep, 0 = unbounded
}

// PhysicsConfig contains the movement applied before tile collisions
type PhysicsConfig struct {
	Gravity      float64
	MaxFallSpeed float64
	MaxSpeed     float64 // Clamp for both axes, keeps sweeps short
}

// GeneratorConfig contains map generator defaults
type GeneratorConfig struct {
	Seed          int64
	MaxPromotions int // Promotions allowed per cell before giving up
}

// CacheConfig contains extraction cache settings
type CacheConfig struct {
	AppName string
	Enabled bool
}

// PreviewConfig contains terminal preview settings
type PreviewConfig struct {
	LegendRows int
}

// Global configuration instances
var C *Config
var Collision CollisionConfig
var Physics PhysicsConfig
var Generator GeneratorConfig
var Cache CacheConfig
var Preview PreviewConfig

func init() {
	C = &Config{
		TileWidth:  16,
		TileHeight: 16,
	}

	Collision = CollisionConfig{
		MaxSweepSteps: 64,
	}

	Physics = PhysicsConfig{
		Gravity:      0.75,
		MaxFallSpeed: 10.0,
		MaxSpeed:     12.0,
	}

	Generator = GeneratorConfig{
		Seed:          1,
		MaxPromotions: 8,
	}

	Cache = CacheConfig{
		AppName: "tileforge",
		Enabled: true,
	}

	Preview = PreviewConfig{
		LegendRows: 1,
	}
}
