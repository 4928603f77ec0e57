//
//  Copyright © Manetu Inc. All rights reserved.
//

package serve

import (
	"context"
	"os"
	"os/signal"

	"github.com/urfave/cli/v3"

	"github.com/xbrldq/dqengine/cmd/dqc/common"
	"github.com/xbrldq/dqengine/internal/logging"
	"github.com/xbrldq/dqengine/pkg/service/rest"
)

var logger = logging.GetLogger("dqengine")

const agent string = "serve"

// Execute runs the serve command, starting the validation service. It
// shuts down gracefully on interrupt signals.
func Execute(ctx context.Context, cmd *cli.Command) error {
	port := cmd.Int("port")

	engine, err := common.NewCliEngine(cmd)
	if err != nil {
		return err
	}

	server, err := rest.CreateServer(engine, int(port))
	if err != nil {
		return err
	}

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info(agent, "shutdown", "Shutting down server...")

	err = server.Stop(ctx)
	if err != nil {
		return err
	}

	logger.Info(agent, "shutdown", "Server exited gracefully.")
	return nil
}
