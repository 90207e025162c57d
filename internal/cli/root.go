package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kabachok/dropclient/internal/catalog"
	"github.com/kabachok/dropclient/internal/config"
	"github.com/kabachok/dropclient/internal/inventory"
	"github.com/kabachok/dropclient/internal/opening"
	"github.com/kabachok/dropclient/internal/profile"
	"github.com/kabachok/dropclient/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "dropclient",
	Short: "CLI for the KabachokDrop case storefront",
	Long: `dropclient is a command-line client for the KabachokDrop storefront.

It manages your session, opens cases, and handles your vegetable inventory.

Environment Variables:
  DROPCLIENT_API_BASE_URL  Backend API URL (default: http://localhost:8000/api)`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides DROPCLIENT_API_BASE_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// app wires the full client stack for one command invocation.
type app struct {
	cfg       *config.Config
	session   *session.Manager
	catalog   catalog.Service
	inventory inventory.Service
	profile   profile.Service
	opening   opening.Service
}

// newApp loads configuration and assembles the services. The session manager
// owns the API client so every request carries credentials and the 401
// refresh protocol.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}

	mgr := session.NewManager(cfg.APIBaseURL, cfg.HTTPTimeout, session.NewFileStore(cfg.StateDir))
	api := mgr.API()

	cat := catalog.NewService(api, cfg.CacheSize, cfg.CacheTTL)
	inv := inventory.NewService(api, mgr, cfg.CacheTTL)

	return &app{
		cfg:       cfg,
		session:   mgr,
		catalog:   cat,
		inventory: inv,
		profile:   profile.NewService(api, mgr),
		opening:   opening.NewService(api, cat, mgr, inv),
	}, nil
}

// fail prints the error and exits with the given code.
func fail(err error, code int) {
	os.Stderr.WriteString("Error: " + err.Error() + "\n")
	os.Exit(code)
}
