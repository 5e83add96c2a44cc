package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/camarero/camarero/config"
	"github.com/camarero/camarero/internal/cli"
	configfile "github.com/camarero/camarero/internal/providers/config/file"
	httpserver "github.com/camarero/camarero/internal/providers/server/http"
	sessionfile "github.com/camarero/camarero/internal/providers/session/file"
	"github.com/camarero/camarero/session"
	"github.com/spf13/pflag"
)

func main() {
	args := os.Args[1:]
	contexts := configfile.NewContextService("")
	deps := cli.Dependencies{Contexts: contexts}

	if !shouldSkipContextBootstrap(args) {
		bootstrapped, err := bootstrapDependencies(contexts, contextNameFromArgs(args))
		if err != nil {
			if !isShellCompletionInvocation(args) {
				_, _ = fmt.Fprintln(os.Stderr, err)
				os.Exit(cli.ExitCodeForError(err))
			}
		} else {
			deps = bootstrapped
		}
	}

	if err := cli.Execute(deps); err != nil {
		os.Exit(cli.ExitCodeForError(err))
	}
}

func bootstrapDependencies(contexts config.ContextService, contextName string) (cli.Dependencies, error) {
	resolved, err := contexts.ResolveContext(context.Background(), config.ContextSelection{Name: contextName})
	if err != nil {
		return cli.Dependencies{}, err
	}

	sessions := newSessionReader(resolved)

	options := []httpserver.Option{
		httpserver.WithAuthFailureHandler(func(_ context.Context, statusCode int) {
			_, _ = fmt.Fprintf(os.Stderr, "session rejected by server (%d): log in again\n", statusCode)
		}),
	}
	if resolved.API.ListJQ != "" {
		options = append(options, httpserver.WithListJQ(resolved.API.ListJQ))
	}

	gateway, err := httpserver.NewGateway(resolved.API.BaseURL, resolved.API.DefaultHeaders, sessions, options...)
	if err != nil {
		return cli.Dependencies{}, err
	}

	return cli.Dependencies{
		Contexts: contexts,
		Server:   gateway,
		Sessions: sessions,
	}, nil
}

func newSessionReader(resolved config.Context) session.Reader {
	path := ""
	if resolved.Session != nil {
		path = resolved.Session.File
	}
	return sessionfile.NewSessionReader(path)
}

// shouldSkipContextBootstrap keeps context-independent commands working
// without a resolvable context catalog.
func shouldSkipContextBootstrap(args []string) bool {
	if len(args) == 0 {
		return true
	}
	switch args[0] {
	case "help", "version", "completion", "config":
		return true
	}
	for _, current := range args {
		if current == "--" {
			break
		}
		if current == "--help" || current == "-h" {
			return true
		}
	}
	return false
}

func isShellCompletionInvocation(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "__complete", "__completeNoDesc":
		return true
	}
	return false
}

// contextNameFromArgs pre-parses --context ahead of cobra so the gateway
// can be built against the selected context before commands run.
func contextNameFromArgs(args []string) string {
	flags := pflag.NewFlagSet("bootstrap", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.SetOutput(io.Discard)

	var contextName string
	flags.StringVarP(&contextName, "context", "c", "", "context name")
	if err := flags.Parse(args); err != nil {
		return ""
	}
	return contextName
}
