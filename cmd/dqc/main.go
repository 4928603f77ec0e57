//
//  Copyright © Manetu Inc. All rights reserved.
//

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/xbrldq/dqengine/cmd/dqc/common"
	"github.com/xbrldq/dqengine/cmd/dqc/subcommands/rules"
	"github.com/xbrldq/dqengine/cmd/dqc/subcommands/serve"
	"github.com/xbrldq/dqengine/cmd/dqc/subcommands/validate"
	"github.com/xbrldq/dqengine/cmd/dqc/version"
)

func main() {
	cmd := &cli.Command{
		Name:    "dqc",
		Usage:   "A CLI application for data-quality validation of financial disclosure filings",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "validate",
				Usage: "Evaluates the rule registry against a filing document and reports violations",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Load the filing interchange document from `FILE`",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format. Must be one of 'text' or 'json'",
						Value: "text",
						Action: func(ctx context.Context, command *cli.Command, s string) error {
							if s != "text" && s != "json" {
								return fmt.Errorf("unsupported format: %s", s)
							}
							return nil
						},
					},
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "Exit with a non-zero status when violations are found",
					},
				}, common.EngineFlags()...),
				Action: validate.Execute,
			},
			{
				Name:   "rules",
				Usage:  "Lists the registered rules with their template versions",
				Flags:  common.EngineFlags(),
				Action: rules.Execute,
			},
			{
				Name:  "serve",
				Usage: "Creates a validation service",
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  "port",
						Usage: "The TCP port to serve on.",
						Value: 9000,
					},
				}, common.EngineFlags()...),
				Action: serve.Execute,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
