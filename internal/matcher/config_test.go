package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1.0, cfg.AmountTolerancePercent)
	assert.Equal(t, 5, cfg.DateToleranceDays)
	assert.Equal(t, 0.4, cfg.DescriptionThreshold)
}

func TestPresetConfigsAreValid(t *testing.T) {
	assert.NoError(t, StrictConfig().Validate())
	assert.NoError(t, RelaxedConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "default", mutate: func(c *Config) {}},
		{name: "negative amount tolerance", mutate: func(c *Config) { c.AmountTolerancePercent = -1 }, wantErr: true},
		{name: "amount tolerance over 100", mutate: func(c *Config) { c.AmountTolerancePercent = 101 }, wantErr: true},
		{name: "negative date tolerance", mutate: func(c *Config) { c.DateToleranceDays = -1 }, wantErr: true},
		{name: "threshold over 1", mutate: func(c *Config) { c.DescriptionThreshold = 1.5 }, wantErr: true},
		{name: "zero tolerances", mutate: func(c *Config) {
			c.AmountTolerancePercent = 0
			c.DateToleranceDays = 0
			c.DescriptionThreshold = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.DateToleranceDays = 99

	assert.Equal(t, 5, cfg.DateToleranceDays)

	var nilCfg *Config
	assert.Nil(t, nilCfg.Clone())
}

func TestEngineConfigIsACopy(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	got := engine.Config()
	got.DateToleranceDays = 99

	assert.Equal(t, 5, engine.Config().DateToleranceDays)
}
