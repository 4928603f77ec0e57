//
//  Copyright © Manetu Inc. All rights reserved.
//

package validate

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	clicommon "github.com/xbrldq/dqengine/cmd/dqc/common"
	"github.com/xbrldq/dqengine/pkg/common"
	"github.com/xbrldq/dqengine/pkg/core"
	"github.com/xbrldq/dqengine/pkg/filing/parsers"
	"github.com/xbrldq/dqengine/pkg/rules"
)

// Execute runs the validate command: load the filing document, evaluate
// the rule registry against it, and print the report.
func Execute(ctx context.Context, cmd *cli.Command) error {
	engine, err := clicommon.NewCliEngine(cmd)
	if err != nil {
		return err
	}

	f, err := parsers.Load(cmd.String("file"))
	if err != nil {
		return err
	}

	report, err := engine.Evaluate(ctx, f)
	if err != nil {
		return err
	}

	switch cmd.String("format") {
	case "json":
		if err := common.PrettyPrint(os.Stdout, report); err != nil {
			return err
		}
	default:
		printText(report)
	}

	if cmd.Bool("strict") && len(report.Violations) > 0 {
		return fmt.Errorf("%d violation(s) found", len(report.Violations))
	}
	return nil
}

func printText(report *core.Report) {
	for _, v := range report.Violations {
		fmt.Println(v.Message)
		for _, h := range v.Hints {
			fmt.Printf("  hint: %s\n", h)
		}
		for _, p := range v.Content {
			fmt.Printf("  %s\n", p)
		}
		fmt.Println()
	}

	printInconclusive(report.Inconclusive)
	fmt.Printf("%d violation(s), %d inconclusive, evaluated in %s\n",
		len(report.Violations), len(report.Inconclusive), report.Elapsed)
}

func printInconclusive(outcomes []rules.Outcome) {
	if len(outcomes) == 0 {
		return
	}
	fmt.Println("Inconclusive rules:")
	for _, o := range outcomes {
		fmt.Printf("  %s: %s\n", o.RuleID, o.Reason)
	}
	fmt.Println()
}
