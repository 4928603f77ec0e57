//
//  Copyright © Manetu Inc. All rights reserved.
//

package rules

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/xbrldq/dqengine/cmd/dqc/common"
)

// Execute runs the rules command, listing the registered rules with their
// template versions.
func Execute(ctx context.Context, cmd *cli.Command) error {
	engine, err := common.NewCliEngine(cmd)
	if err != nil {
		return err
	}

	store := engine.Templates()
	for _, r := range engine.Rules() {
		version := "-"
		if entry, err := store.Lookup(r.ID); err == nil && entry.Version.Version != "" {
			version = entry.Version.Version
		}
		fmt.Printf("%-20s %-8s %s\n", r.ID, version, r.Description)
	}
	return nil
}
