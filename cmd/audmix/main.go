// SPDX-License-Identifier: EPL-2.0

// Command audmix runs the mix job described by a YAML file.
//
//	audmix -config mix.yaml
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/fx"

	"github.com/ik5/audmix/internal/config"
	"github.com/ik5/audmix/internal/infrastructure"
	"github.com/ik5/audmix/internal/job"
)

func newApp(configPath string) *fx.App {
	return fx.New(
		fx.Supply(configPath),

		config.Module,
		infrastructure.LoggerModule,
		job.Module,

		fx.WithLogger(infrastructure.NewFxLogger),
	)
}

func main() {
	configPath := flag.String("config", "audmix.yaml", "path to the mix job")
	flag.Parse()

	app := newApp(*configPath)
	if err := app.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "audmix: %v\n", err)
		os.Exit(2)
	}

	// Run stops on SIGINT/SIGTERM or when the job finishes, and exits with
	// the job's exit code.
	app.Run()
}
