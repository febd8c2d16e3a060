// scorectl is a command-line client for the remote score store.
//
// Usage:
//
//	scorectl ensure <name>            - Get or create a player record
//	scorectl upsert <name> <score>    - Set a player's score
//	scorectl delete <name>            - Remove a player's record
//	scorectl rank <name>              - Look up a player's rank
//	scorectl top                      - Show a leaderboard page
//
// Global flags:
//
//	--base-url <url>   - Score store base URL (or API_BASE_URL)
//	--timeout <dur>    - Per-request timeout (default: 10s)
//	--timezone <zone>  - Timestamp zone, utc or utc+7 (default: utc)
//	--verbose          - Log every request
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"scoresync/pkg/clock"
	"scoresync/pkg/logger"
	"scoresync/pkg/scorestore"
	"scoresync/pkg/transport"
)

var (
	// Global flags
	flagBaseURL  string
	flagTimeout  time.Duration
	flagTimezone string
	flagVerbose  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scorectl",
	Short: "Client for the remote score store",
	Long: `scorectl talks to a leaderboard score store over its REST API.

The store base URL comes from --base-url or the API_BASE_URL environment
variable. Every command issues single-attempt requests: there are no
retries, so a transport failure surfaces immediately.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", os.Getenv("API_BASE_URL"), "Score store base URL")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 10*time.Second, "Per-request timeout")
	rootCmd.PersistentFlags().StringVar(&flagTimezone, "timezone", "utc", "Timestamp zone (utc or utc+7)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Log every request")

	rootCmd.AddCommand(ensureCmd, upsertCmd, deleteCmd, rankCmd, topCmd)
}

// newStore builds a store client from the global flags
func newStore() (*scorestore.Store, error) {
	if flagBaseURL == "" {
		return nil, fmt.Errorf("no base URL: pass --base-url or set API_BASE_URL")
	}

	level := "warn"
	if flagVerbose {
		level = "debug"
	}
	l, err := logger.New(logger.Config{
		Level:       level,
		Environment: "development",
		ServiceName: "scorectl",
	})
	if err != nil {
		return nil, err
	}

	client := transport.New(transport.Config{
		Timeout:     flagTimeout,
		LogRequests: flagVerbose,
	}, l)
	return scorestore.New(scorestore.Config{
		BaseURL: flagBaseURL,
	}, client, clock.New(clock.Mode(flagTimezone)), l), nil
}
