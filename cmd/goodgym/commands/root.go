// Package commands implements the CLI commands for the Good-GYM launcher.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.goodgym.dev/launcher/internal/app"
	"go.goodgym.dev/launcher/internal/build"
)

// CLI represents the command line interface for goodgym.
type CLI struct {
	app     Application
	logs    LogSettings
	rootCmd *cobra.Command
	root    string
}

// Application represents the application logic interface.
type Application interface {
	Start(ctx context.Context, opts app.StartOptions) error
	Check(ctx context.Context, root string) error
	Status(ctx context.Context, root string) error
}

// LogSettings is implemented by loggers that can switch format and level at runtime.
type LogSettings interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// New creates a new CLI instance with the given app.
// logs may be nil, in which case --json and --verbose have no effect.
func New(a Application, logs LogSettings) *CLI {
	rootCmd := &cobra.Command{
		Use:           "goodgym",
		Short:         "Check dependencies and start the Good-GYM exercise API",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().String("root", "", "Launcher install directory (defaults to the executable's directory)")
	rootCmd.PersistentFlags().Bool("json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().Bool("verbose", false, "Show debug logs, including phase timings")

	c := &CLI{
		app:     a,
		logs:    logs,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = c.setup
	rootCmd.RunE = c.runStart
	addStartFlags(rootCmd)

	rootCmd.AddCommand(c.newStartCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if c.logs != nil {
		jsonLogs, _ := cmd.Flags().GetBool("json")
		verbose, _ := cmd.Flags().GetBool("verbose")
		c.logs.SetJSON(jsonLogs)
		c.logs.SetVerbose(verbose)
	}

	override, _ := cmd.Flags().GetString("root")
	root, err := app.ResolveRoot(override)
	if err != nil {
		return err
	}
	c.root = root
	return nil
}
