package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ilinovom/posts-browser/internal/app"
	"github.com/ilinovom/posts-browser/internal/config"
	"github.com/ilinovom/posts-browser/internal/repository"
	"github.com/ilinovom/posts-browser/internal/widget"
)

var (
	verbose  bool
	envFile  string
	userID   string
	remember bool

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "postsbrowser",
	Short: "Browse JSONPlaceholder posts by user",
	Long: `postsbrowser loads the posts of a JSONPlaceholder user (ids 1-10),
shows them as a list and keeps the last result, plus the user id when asked
to, in local storage so the next start picks up where you left off.

Run without arguments to start the interactive terminal UI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return err
		}
		// the terminal UI owns the screen
		if cmd == cmd.Root() {
			return nil
		}
		logger, err = newLogger(cfg.LogLevel, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			return a.RunTUI(cmd.Context())
		})
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			return a.Serve(cmd.Context())
		})
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Load the posts of one user and print them",
	Example: `  postsbrowser fetch --user-id 3 --remember`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			w := a.Widget()
			err := w.Load(cmd.Context(), userID, remember)
			printView(cmd.OutOrStdout(), w.Snapshot())
			return err
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved user id and posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			a.Restore(cmd.Context())
			printView(cmd.OutOrStdout(), a.Widget().Snapshot())
			return nil
		})
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the saved posts (the remembered user id is kept)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			err := a.Widget().Clear(cmd.Context())
			printView(cmd.OutOrStdout(), a.Widget().Snapshot())
			return err
		})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file to load before reading the environment")

	fetchCmd.Flags().StringVarP(&userID, "user-id", "u", "", "user id (1-10)")
	fetchCmd.Flags().BoolVarP(&remember, "remember", "r", false, "remember the user id for the next start")
	_ = fetchCmd.MarkFlagRequired("user-id")

	rootCmd.AddCommand(serveCmd, fetchCmd, showCmd, clearCmd)
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}

func withApp(ctx context.Context, fn func(a *app.App) error) error {
	store, err := repository.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Storage, err)
	}
	a := app.New(cfg, store, logger)
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("close storage", zap.Error(err))
		}
	}()
	return fn(a)
}

func printView(out io.Writer, v widget.View) {
	if v.Remember {
		fmt.Fprintf(out, "remembered user: %s\n", v.Input)
	}
	fmt.Fprintf(out, "status: %s\n", v.Status.Message)
	for i, item := range v.Items {
		if item.Placeholder {
			fmt.Fprintf(out, "  %s\n", item.Title)
			continue
		}
		fmt.Fprintf(out, "%2d. %s\n    %s\n", i+1, item.Title, item.Body)
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
