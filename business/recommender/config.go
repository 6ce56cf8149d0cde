package recommender

import (
	"time"

	"fairTune/business/debias"
	"fairTune/business/explore"
)

// Config holds the service-level defaults. Stations override the stage
// knobs through their rerank profile; sessions own the live exploration
// rate.
type Config struct {
	Debias          debias.Config
	ExplorationRate float64
	DefaultCount    int
	SessionTTL      time.Duration
	MaxSessions     int
}

func DefaultConfig() Config {
	return Config{
		Debias:          debias.DefaultConfig(),
		ExplorationRate: explore.DefaultRate,
		DefaultCount:    20,
		SessionTTL:      2 * time.Hour,
		MaxSessions:     10000,
	}
}

func (c Config) withFallbacks() Config {
	if c.ExplorationRate <= 0 {
		c.ExplorationRate = explore.DefaultRate
	}
	if c.DefaultCount <= 0 {
		c.DefaultCount = 20
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = 2 * time.Hour
	}
	if c.MaxSessions <= 0 {
		c.MaxSessions = 10000
	}
	return c
}
