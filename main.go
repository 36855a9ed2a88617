package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/fx"

	"github.com/joshuarp/msgcontext-gateway/internal/app"
)

var defaultBin string

func selectedModules(binValue string) []fx.Option {
	selected := strings.TrimSpace(strings.ToLower(binValue))

	switch selected {
	case "gateway":
		return []fx.Option{
			app.GatewayModule(),
		}
	case "inspect":
		return []fx.Option{
			app.InspectModule(),
		}
	default:
		return []fx.Option{
			app.GatewayModule(),
			app.InspectModule(),
		}
	}
}

func main() {
	bin := flag.String("bin", defaultBin, "select module binary: gateway|inspect (default: all)")
	issueToken := flag.String("issue-token", "", "print an operator token for the given subject and exit")
	flag.Parse()

	if *issueToken != "" {
		if err := app.IssueOperatorToken(context.Background(), *bin, *issueToken, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	app.New(*bin, selectedModules(*bin)...).Run()
}
