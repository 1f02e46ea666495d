package generator

// Config drives the synthetic community generator.
type Config struct {
	NumMembers         int
	NumTaps            int
	NumClusters        int
	CrossClusterChance float64
	GeoChance          float64
	DaysOfHistory      int
	Seed               int64
}

// DefaultConfig returns baseline settings producing a community with visible
// clustering and a few weeks of history.
func DefaultConfig() Config {
	return Config{
		NumMembers:         250,
		NumTaps:            5000,
		NumClusters:        8,
		CrossClusterChance: 0.15,
		GeoChance:          0.6,
		DaysOfHistory:      90,
		Seed:               42,
	}
}
