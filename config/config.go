package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// Config represents the application configuration.
type Config struct {
	NullSentinel string `hcl:"null_sentinel,optional"` // marker PostgreSQL COPY reads as NULL
	BatchSize    int    `hcl:"batch_size,optional"`    // rows per staging transaction
	ProgressStep int64  `hcl:"progress_step,optional"` // bytes between progress reports
	StageTable   string `hcl:"stage_table,optional"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		NullSentinel: `\N`,
		BatchSize:    1000,
		ProgressStep: 1 << 20,
		StageTable:   "staging",
	}
}

// Load reads the configuration from the given HCL file.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(content, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file: %s", diags.Error())
	}

	cfg := DefaultConfig()
	diags = gohcl.DecodeBody(file.Body, nil, cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}

	return cfg, nil
}

// Export writes the configuration to the specified file in HCL format.
func Export(path string, cfg *Config) error {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	root.SetAttributeValue("null_sentinel", cty.StringVal(cfg.NullSentinel))
	root.SetAttributeValue("batch_size", cty.NumberIntVal(int64(cfg.BatchSize)))
	root.SetAttributeValue("progress_step", cty.NumberIntVal(cfg.ProgressStep))
	root.SetAttributeValue("stage_table", cty.StringVal(cfg.StageTable))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	_, err = file.Write(f.Bytes())
	if err != nil {
		return fmt.Errorf("failed to write config to file: %w", err)
	}

	return nil
}
