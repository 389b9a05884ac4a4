package main

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"subtrans/internal/config"
	"subtrans/internal/logging"
)

type globalFlags struct {
	config    string
	logLevel  string
	logFormat string
	verbose   bool
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.flags != nil {
			path = strings.TrimSpace(c.flags.config)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// logger builds the logger for one invocation. Flags override the config
// file.
func (c *commandContext) logger(w io.Writer) (*slog.Logger, error) {
	var level, format string
	if c.flags != nil {
		level = strings.TrimSpace(c.flags.logLevel)
		if c.flags.verbose {
			level = "debug"
		}
		format = strings.TrimSpace(c.flags.logFormat)
	}
	return logging.NewFromConfig(c.config, w, level, format)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
