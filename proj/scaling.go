package proj

// TileConfig describes a multi-tile deployment used to scale single-node
// projections. Tiles is the total tile count; GPUs is informational.
type TileConfig struct {
	Label string
	Tiles int
	GPUs  int
}

// baselineTiles is the tile count of the configuration the projections are
// measured against.
const baselineTiles = 8

// DefaultTileConfigs are the deployment sizes reported alongside the
// single-node projections.
func DefaultTileConfigs() []TileConfig {
	return []TileConfig{
		{Label: "8T", Tiles: 8, GPUs: 4},
		{Label: "16T", Tiles: 16, GPUs: 8},
		{Label: "144T", Tiles: 144, GPUs: 72},
	}
}

// ScaledProjection is a projection scaled to a multi-tile deployment:
// throughput scales up with tiles, first-token latency scales down.
type ScaledProjection struct {
	Config            TileConfig
	BaselineTGS       float64
	ImprovedTGS       float64
	ScaledTTFTSeconds float64
}

// ScaleAcrossTiles scales one strategy result across the given tile
// configurations relative to the measured baseline tile count. ttftSeconds is
// the (already frequency-scaled) first-token latency at the baseline tile
// count; pass 0 when unknown.
func ScaleAcrossTiles(r ProjectionResult, ttftSeconds float64, configs []TileConfig) []ScaledProjection {
	scaled := make([]ScaledProjection, 0, len(configs))
	for _, cfg := range configs {
		if cfg.Tiles <= 0 {
			continue
		}
		factor := float64(cfg.Tiles) / float64(baselineTiles)
		scaled = append(scaled, ScaledProjection{
			Config:            cfg,
			BaselineTGS:       r.BaselineTGS * factor,
			ImprovedTGS:       r.ImprovedTGS * factor,
			ScaledTTFTSeconds: ttftSeconds / factor,
		})
	}
	return scaled
}
