package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"retake/internal/config"
)

// commandContext lazily loads configuration for subcommands that need it.
type commandContext struct {
	configFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() error {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(*c.configFlag)
		if err != nil {
			c.configErr = err
			return
		}
		if !exists && *c.configFlag != "" {
			c.configErr = fmt.Errorf("config file not found at %s", path)
			return
		}
		c.config = cfg
		c.configPath = path
		c.configExists = exists
	})
	return c.configErr
}

func (c *commandContext) configValue() *config.Config {
	return c.config
}

// shouldSkipConfig reports whether cmd (or an ancestor) opted out of
// configuration loading via the skipConfigLoad annotation.
func shouldSkipConfig(cmd *cobra.Command) bool {
	for cur := cmd; cur != nil; cur = cur.Parent() {
		if cur.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
