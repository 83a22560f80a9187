// Command wizard walks a user through the three profile steps in the terminal
// and submits the result to the profile server.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"profilewizard/client/api"
	"profilewizard/client/wizard"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	apiURL := loadAPIURL(os.Args[1:])

	logger, err := zap.NewDevelopment(zap.IncreaseLevel(zap.WarnLevel))
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := api.NewClient(apiURL, nil, logger)
	ctrl := wizard.NewController(client, client, logger)

	app := &App{
		ctrl:   ctrl,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	if err := app.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "wizard:", err)
		os.Exit(1)
	}
}

// loadAPIURL reads WIZARD_API_URL from the environment or a wizard.yaml file;
// the -api flag wins over both.
func loadAPIURL(args []string) string {
	v := viper.New()
	v.SetConfigName("wizard")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	v.SetDefault("WIZARD_API_URL", "http://localhost:5000")
	_ = v.ReadInConfig()

	fs := flag.NewFlagSet("wizard", flag.ExitOnError)
	apiFlag := fs.String("api", "", "profile server base URL")
	_ = fs.Parse(args)

	if *apiFlag != "" {
		return *apiFlag
	}
	return v.GetString("WIZARD_API_URL")
}
