package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/studiowebux/snmpconsole/internal/analytics"
	"github.com/studiowebux/snmpconsole/internal/cli"
	"github.com/studiowebux/snmpconsole/internal/config"
	"github.com/studiowebux/snmpconsole/internal/console"
	"github.com/studiowebux/snmpconsole/internal/executor"
	"github.com/studiowebux/snmpconsole/internal/history"
	"github.com/studiowebux/snmpconsole/internal/logger"
	"github.com/studiowebux/snmpconsole/internal/migrations"
	"github.com/studiowebux/snmpconsole/internal/mock"
	"github.com/studiowebux/snmpconsole/internal/prefs"
	"github.com/studiowebux/snmpconsole/internal/tui"
	"github.com/studiowebux/snmpconsole/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snmpconsole",
	Short: "SNMP console - send management requests and browse recorded frames",
	Long: `SNMP console sends GET, GETNEXT, SET and TRAP requests through the agent
backend and lists the frames it recorded.

Run without arguments to start the TUI.

Examples:
  snmpconsole                                          # Start interactive TUI
  snmpconsole send -t GET -a 10.0.0.1 -o 1.3.6.1.2.1.1.1.0
  snmpconsole history --search SET                     # Fuzzy search the history
  snmpconsole config save --ip 10.0.0.1 --community public
  snmpconsole mock                                     # Run the development backend`,
	Version:       version.Current,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(flagLogLevel)
	},
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send one SNMP request and print the backend answer",
	Long: `Send one request to the backend and print its JSON answer.

Target and community default to the saved configuration when omitted.
A payload file (JSON or JSONC) may provide the fields; flags override it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, closeEnv, err := newEnv()
		if err != nil {
			return err
		}
		defer closeEnv()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return cli.Send(ctx, env, cli.SendOptions{
			Type:         flagType,
			Community:    flagCommunity,
			Target:       flagTarget,
			OID:          flagOID,
			Value:        flagValue,
			FilePath:     flagFile,
			NoDefaults:   flagNoDefaults,
			OutputFormat: flagOutput,
			Filter:       flagFilter,
			Query:        flagQuery,
			SavePath:     flagSave,
			Interactive:  flagInteractive,
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Load and print the frame history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, closeEnv, err := newEnv()
		if err != nil {
			return err
		}
		defer closeEnv()

		return cli.History(cmd.Context(), env, cli.HistoryOptions{
			OutputFormat: flagOutput,
			Search:       flagSearch,
			Filter:       flagFilter,
		})
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the saved connection defaults",
}

var configSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the connection defaults (overwrites the previous ones)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, closeEnv, err := newEnv()
		if err != nil {
			return err
		}
		defer closeEnv()

		return cli.SavePreferences(env, console.ConfigForm{
			IP:        flagIP,
			Port:      flagPort,
			Community: flagCommunity,
		})
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved connection defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, closeEnv, err := newEnv()
		if err != nil {
			return err
		}
		defer closeEnv()

		return cli.ShowPreferences(env, flagOutput)
	},
}

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Run the development agent backend",
	Long: `Run the agent backend the console talks to.

By default requests are simulated. With --live they are sent to real agents.
The configuration is read from --config, ./mock.yaml or ~/.snmpconsole/mock.yaml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMock(cmd)
	},
}

var mockInitCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write a default backend configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		path := config.MockConfigFile
		if len(args) > 0 {
			path = args[0]
		}
		if err := mock.SaveConfig(mock.DefaultConfig(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Backend configuration written to %s\n", path)
		return nil
	},
}

var mockStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print statistics of the recorded frames",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadMockConfig()
		if err != nil {
			return err
		}

		hist, err := history.NewManager(cfg.DatabasePath())
		if err != nil {
			return fmt.Errorf("failed to open frame database: %w", err)
		}
		defer hist.Close()

		env := cli.Env{Out: os.Stdout, Err: os.Stderr}
		return cli.Stats(env, analytics.NewManager(hist.DB()), flagOutput)
	},
}

var mockClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded frame",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadMockConfig()
		if err != nil {
			return err
		}

		hist, err := history.NewManager(cfg.DatabasePath())
		if err != nil {
			return fmt.Errorf("failed to open frame database: %w", err)
		}
		defer hist.Close()

		count, err := hist.GetCount()
		if err != nil {
			return err
		}
		if err := hist.Clear(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d frame(s) deleted\n", count)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version, optionally comparing it with the backend's",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "snmpconsole %s\n", version.Current)
		if !flagCheckBackend {
			return nil
		}

		newer, backend, err := version.CheckBackend(cmd.Context(), config.BackendURL, version.Current)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "backend %s\n", backend)
		if newer {
			fmt.Fprintln(out, "The backend is newer than this console, consider upgrading")
		}
		return nil
	},
}

// Global flags
var (
	flagLogLevel  string
	flagLogFormat string
)

// Flags for send
var (
	flagType        string
	flagCommunity   string
	flagTarget      string
	flagOID         string
	flagValue       string
	flagFile        string
	flagNoDefaults  bool
	flagOutput      string
	flagFilter      string
	flagQuery       string
	flagSave        string
	flagInteractive bool
)

// Flags for history and config
var (
	flagSearch string
	flagIP     string
	flagPort   string
)

// Flags for mock
var (
	flagMockConfig string
	flagMockLive   bool
	flagMockPort   int

	flagCheckBackend bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug/info/warn/error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format for CLI commands (text/json)")

	sendCmd.Flags().StringVarP(&flagType, "type", "t", "", "Operation type (GET/GETNEXT/SET/TRAP)")
	sendCmd.Flags().StringVarP(&flagCommunity, "community", "c", "", "Community string")
	sendCmd.Flags().StringVarP(&flagTarget, "target", "a", "", "Target address")
	sendCmd.Flags().StringVarP(&flagOID, "oid", "o", "", "Object identifier")
	sendCmd.Flags().StringVarP(&flagValue, "value", "v", "", "Value (SET)")
	sendCmd.Flags().StringVarP(&flagFile, "file", "f", "", "Payload file (JSON or JSONC)")
	sendCmd.Flags().BoolVar(&flagNoDefaults, "no-defaults", false, "Do not fill target/community from the saved configuration")
	sendCmd.Flags().StringVar(&flagOutput, "output", "", "Output format (json/yaml/text)")
	sendCmd.Flags().StringVar(&flagFilter, "filter", "", "JMESPath filter applied to the answer")
	sendCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath query or $(shell command) applied to the answer")
	sendCmd.Flags().StringVarP(&flagSave, "save", "s", "", "Save the answer to file")
	sendCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Prompt for the type when missing")

	historyCmd.Flags().StringVar(&flagOutput, "output", "", "Output format (json/yaml/text)")
	historyCmd.Flags().StringVar(&flagSearch, "search", "", "Fuzzy search over every column")
	historyCmd.Flags().StringVar(&flagFilter, "filter", "", "JMESPath filter over the rows")

	configSaveCmd.Flags().StringVar(&flagIP, "ip", "", "Default agent address")
	configSaveCmd.Flags().StringVar(&flagPort, "port", "", "Default agent port")
	configSaveCmd.Flags().StringVar(&flagCommunity, "community", "", "Default community string")
	configShowCmd.Flags().StringVar(&flagOutput, "output", "", "Output format (json/yaml/text)")

	mockCmd.Flags().StringVar(&flagMockConfig, "config", "", "Backend configuration file (YAML or JSON)")
	mockCmd.Flags().BoolVar(&flagMockLive, "live", false, "Send requests to real agents")
	mockCmd.Flags().IntVarP(&flagMockPort, "port", "p", 0, "Listen port (overrides the configuration)")

	configCmd.AddCommand(configSaveCmd)
	configCmd.AddCommand(configShowCmd)
	mockStatsCmd.Flags().StringVar(&flagMockConfig, "config", "", "Backend configuration file (YAML or JSON)")
	mockStatsCmd.Flags().StringVar(&flagOutput, "output", "", "Output format (json/yaml/text)")
	mockClearCmd.Flags().StringVar(&flagMockConfig, "config", "", "Backend configuration file (YAML or JSON)")
	versionCmd.Flags().BoolVar(&flagCheckBackend, "backend", false, "Compare with the version of the running backend")

	mockCmd.AddCommand(mockInitCmd)
	mockCmd.AddCommand(mockStatsCmd)
	mockCmd.AddCommand(mockClearCmd)

	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mockCmd)
	rootCmd.AddCommand(versionCmd)
}

// newEnv wires the backend client, the preferences store and a stderr logger
func newEnv() (cli.Env, func(), error) {
	if err := config.Initialize(); err != nil {
		return cli.Env{}, nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	log, err := logger.Init(os.Stderr, flagLogLevel, flagLogFormat)
	if err != nil {
		return cli.Env{}, nil, err
	}

	db, err := migrations.Open(config.DatabasePath)
	if err != nil {
		return cli.Env{}, nil, fmt.Errorf("failed to open preferences database: %w", err)
	}

	env := cli.Env{
		Backend: executor.NewClient(config.BackendURL),
		Prefs:   prefs.NewSQLiteStore(db),
		Log:     log,
		Out:     os.Stdout,
		Err:     os.Stderr,
	}

	closeEnv := func() {
		if err := db.Close(); err != nil {
			log.WithError(err).Warn("error closing preferences database")
		}
	}

	return env, closeEnv, nil
}

// loadMockConfig reads --config, the local or the global backend configuration
func loadMockConfig() (*mock.Config, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	path := flagMockConfig
	if path == "" {
		path = config.GetMockConfigPath()
	}
	if path == "" {
		return mock.DefaultConfig(), nil
	}
	return mock.LoadConfig(path)
}

// runMock runs the backend until interrupted
func runMock(cmd *cobra.Command) error {
	cfg, err := loadMockConfig()
	if err != nil {
		return err
	}

	log, err := logger.Init(os.Stderr, flagLogLevel, flagLogFormat)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("live") {
		cfg.Live = flagMockLive
	}
	if flagMockPort != 0 {
		cfg.Port = flagMockPort
	}

	hist, err := history.NewManager(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("failed to open frame database: %w", err)
	}
	defer hist.Close()

	server := mock.NewServer(cfg, cfg.NewPerformer(), hist, log)
	log.WithFields(logrus.Fields{"live": cfg.Live, "database": cfg.DatabasePath()}).Info("backend ready")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Serve)
	g.Go(func() error {
		<-gctx.Done()
		return server.Stop(context.Background())
	})

	return g.Wait()
}
