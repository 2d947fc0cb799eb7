package config

import (
	"fmt"
	"strings"
)

// Validate checks the loaded values; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Output.WrapWidth < 1 {
		return fmt.Errorf("output.wrap_width must be >= 1 (got %d)", c.Output.WrapWidth)
	}
	switch strings.ToLower(c.Output.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("output.format must be text or json (got %q)", c.Output.Format)
	}
	if p := c.Humanise.ConnectorProbability; p < 0 || p > 1 {
		return fmt.Errorf("humanise.connector_probability must be within [0, 1] (got %v)", p)
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must be >= 0 (got %d)", c.Batch.Workers)
	}
	return nil
}
