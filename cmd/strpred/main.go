// Command strpred evaluates the string predicates from the command line and
// reports word classes over model description files.
//
// Predicate subcommands go through the same boundary layer as the shared
// library and print its integer result, so the output matches what a C
// caller of libstrpred would see.
//
// Logging:
//   - Base logger is created here with output format and level
//   - Logger is passed to all components via dependency injection
//   - No global slog configuration (no slog.SetDefault)
//   - Components scope loggers with their own attributes
package main

import (
	"context"
	"os"
	"os/signal"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	rootCmd := newRootCmd(os.LookupEnv)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
