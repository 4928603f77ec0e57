//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package common holds the helpers shared by the dqc subcommands.
package common

import (
	"github.com/urfave/cli/v3"

	"github.com/xbrldq/dqengine/pkg/core"
	"github.com/xbrldq/dqengine/pkg/core/options"
	"github.com/xbrldq/dqengine/pkg/rules/templates"
)

// NewCliEngine constructs a validation engine from the shared CLI flags,
// layered on top of the configuration file and environment defaults.
func NewCliEngine(cmd *cli.Command) (*core.Engine, error) {
	var opts []options.EngineOptionsFunc

	if ids := cmd.StringSlice("suppress"); len(ids) > 0 {
		opts = append(opts, options.WithSuppression(ids...))
	}
	if d := cmd.Duration("budget"); d > 0 {
		opts = append(opts, options.WithBudget(d))
	}
	if n := cmd.Int("workers"); n > 0 {
		opts = append(opts, options.WithWorkers(int(n)))
	}
	if path := cmd.String("templates"); path != "" {
		store, err := templates.Load(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, options.WithTemplates(store))
	}

	return core.NewEngine(opts...)
}

// EngineFlags returns the CLI flags shared by every subcommand that
// constructs an engine.
func EngineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "suppress",
			Aliases: []string{"s"},
			Usage:   "Suppress a rule id (and its sub-rules). Can be specified multiple times.",
		},
		&cli.DurationFlag{
			Name:  "budget",
			Usage: "Wall-clock budget for the evaluation, e.g. 30s. Zero means no budget.",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Number of rules evaluated concurrently.",
		},
		&cli.StringFlag{
			Name:  "templates",
			Usage: "Load message templates from `FILE` instead of the embedded store.",
		},
	}
}
