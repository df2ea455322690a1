// @title        Vehicle Catalog API
// @version      1.0
// @description  車輛型錄 (品牌、類型、車款、年式、價格表) 與帳號驗證 API
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var exitFunc = os.Exit

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "vehicle-api",
		Short:        "Vehicle catalog REST API",
		Long:         `Vehicle catalog REST API. Without a subcommand it runs "serve".`,
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())
	return root
}

func execute(ctx context.Context, args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := execute(ctx, os.Args[1:])
	stop()
	if err != nil {
		slog.Error("vehicle-api failed", slog.Any("error", err))
		exitFunc(1)
	}
}
