package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"habit-bot/internal/config"
	"habit-bot/internal/logging"

	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"
)

// Build information, set with -ldflags at release time
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// skipSetup marks commands that run without loading configuration
const skipSetup = "skip-setup"

// AppFactory builds the application from the final configuration. The
// returned cleanup releases whatever the app opened.
type AppFactory func(cfg *config.Config) (app *App, cleanup func(), err error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	loader  *config.Loader
	factory AppFactory
	config  *config.Config
	app     *App
	cleanup func()
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader, factory AppFactory) *RootCommand {
	root := &RootCommand{
		loader:  loader,
		factory: factory,
	}

	root.cmd = &cobra.Command{
		Use:   "hb",
		Short: "Daily plan and habit reminders backed by a spreadsheet",
		Long: `Habit bot (hb) reads a person's daily plans and habits from a spreadsheet web app,
lets them tick items off, and sends reminders ahead of each habit's time.

EXAMPLES:
  hb run                                   # Send reminders and digests until interrupted
  hb subscribe 123456                      # Add a chat user to the broadcast list
  hb today 123456                          # Show today's plans for a user
  hb habits 123456                         # Show today's habits for a user
  hb toggle 123456 task_D43                # Tick a task off
  hb command 123456 /id                    # Replay a chat command
  hb resolve 2026-10-19                    # Show which cells a date uses
  hb users                                 # List subscribers

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > .env file > defaults

    HB_STORE_URL (or WEBAPP_URL)           Spreadsheet web app URL (required unless --offline)
    HB_STORE_TIMEOUT                       Per-request timeout (default: 10s)
    HB_DB_DIR                              Database directory (default: ~/.habit-bot)
    HB_DB_FILENAME                         Database filename (default: habit-bot.db)
    HB_TASK_DIGEST_AT                      Daily plan broadcast, empty to disable (default: 10:00)
    HB_HABIT_DIGEST_AT                     Daily habit broadcast, empty to disable (default: off)
    HB_REMINDER_LEAD                       Reminder lead time (default: 10m)
    HB_TICK_INTERVAL                       Scheduler tick (default: 30s)
    HB_TIMEZONE                            Time zone of the sheet's days (default: Local)
    HB_APP_TIMEOUT                         Per-command timeout (default: 60s)
    HB_APP_VERBOSE                         Enable debug output (default: false)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipSetup] != "" {
				return nil
			}
			return root.setup()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command and releases the app afterwards
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx as the parent of every command context
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if r.cleanup != nil {
		r.cleanup()
		r.cleanup = nil
	}
	return err
}

// SetArgs overrides os.Args; used by tests
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Store configuration
	flags.String("store-url", "", "Spreadsheet web app URL (overrides HB_STORE_URL)")
	flags.Duration("store-timeout", 0, "Spreadsheet request timeout (overrides HB_STORE_TIMEOUT)")
	flags.Bool("offline", false, "Use an empty in-memory sheet instead of the web app")

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides HB_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides HB_DB_FILENAME)")

	// Schedule configuration
	flags.String("task-digest-at", "", "Daily plan broadcast time, empty to disable (overrides HB_TASK_DIGEST_AT)")
	flags.String("habit-digest-at", "", "Daily habit broadcast time, empty to disable (overrides HB_HABIT_DIGEST_AT)")
	flags.Duration("reminder-lead", 0, "How long before a habit to remind (overrides HB_REMINDER_LEAD)")
	flags.Duration("tick-interval", 0, "Scheduler tick interval (overrides HB_TICK_INTERVAL)")
	flags.String("timezone", "", "Time zone of the sheet's days (overrides HB_TIMEZONE)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Per-command timeout (overrides HB_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable debug output (overrides HB_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Send reminders and daily digests",
		Long: `Run the scheduler until interrupted. Every subscriber gets a reminder ahead of
each timed habit and the daily plan and habit digests at their configured times.
Messages are printed to the terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return r.app.registry.Execute(ctx, "run", args)
		},
	}

	todayCmd := &cobra.Command{
		Use:   "today <user>",
		Short: "Show today's plans for a user",
		Args:  cobra.ExactArgs(1),
		RunE:  r.runRegistered("today"),
	}

	habitsCmd := &cobra.Command{
		Use:   "habits <user>",
		Short: "Show today's habits for a user",
		Args:  cobra.ExactArgs(1),
		RunE:  r.runRegistered("habits"),
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle <user> <callback>",
		Short: "Tick a task or habit on or off",
		Long: `Press a checklist button. The callback is the data a button carries:

  task_D43          Task whose done cell is D43 (a bare "D43" also works)
  habit_AI4         Habit whose done cell is AI4
  toggle_2          Third task in today's list
  habit_toggle_0    First habit in today's list
  done              Close the list`,
		Args: cobra.ExactArgs(2),
		RunE: r.runRegistered("toggle"),
	}

	commandCmd := &cobra.Command{
		Use:   "command <user> </command>",
		Short: "Replay a chat command (/start, /id, /today, /habits)",
		Args:  cobra.MinimumNArgs(2),
		RunE:  r.runRegistered("command"),
	}

	subscribeCmd := &cobra.Command{
		Use:   "subscribe <user>",
		Short: "Add a user to the broadcast list",
		Args:  cobra.ExactArgs(1),
		RunE:  r.runRegistered("subscribe"),
	}

	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "List subscribers",
		Args:  cobra.NoArgs,
		RunE:  r.runRegistered("users"),
	}

	resolveCmd := &cobra.Command{
		Use:   "resolve [YYYY-MM-DD]",
		Short: "Show which sheet cells a date uses",
		Args:  cobra.MaximumNArgs(1),
		RunE:  r.runRegistered("resolve"),
	}

	r.cmd.AddCommand(
		runCmd,
		todayCmd,
		habitsCmd,
		toggleCmd,
		commandCmd,
		subscribeCmd,
		usersCmd,
		resolveCmd,
	)
	r.addVersion()
}

// runRegistered runs a registry command under the application timeout
func (r *RootCommand) runRegistered(name string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
		defer cancel()

		return r.app.registry.Execute(ctx, name, args)
	}
}

func (r *RootCommand) addVersion() {
	shortened := false
	output := "json"
	cmd := &cobra.Command{
		Use:         "version",
		Short:       "Print the hb version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			resp := goversion.FuncWithOutput(shortened, Version, Commit, Date, output)
			fmt.Fprint(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().BoolVarP(&shortened, "short", "s", false, "Print just the version number.")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format. One of 'yaml' or 'json'.")

	r.cmd.AddCommand(cmd)
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second // Default timeout
}

// setup loads configuration with flag overrides and builds the app
func (r *RootCommand) setup() error {
	cfg, err := r.loader.LoadWithOverrides(r.overridesFromFlags())
	if err != nil {
		return err
	}
	r.config = cfg
	if cfg.Application.Verbose {
		logging.SetDebug(true)
	}

	app, cleanup, err := r.factory(cfg)
	if err != nil {
		return err
	}
	r.app = app
	r.cleanup = cleanup
	return nil
}

// overridesFromFlags collects the flags the user actually set
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	o := &config.ConfigOverrides{}

	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	dur := func(name string) *time.Duration {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetDuration(name)
		return &v
	}
	boolean := func(name string) *bool {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetBool(name)
		return &v
	}

	o.StoreURL = str("store-url")
	o.StoreTimeout = dur("store-timeout")
	o.Offline = boolean("offline")
	o.DBDir = str("db-dir")
	o.DBFilename = str("db-filename")
	o.TaskDigestAt = str("task-digest-at")
	o.HabitDigestAt = str("habit-digest-at")
	o.ReminderLead = dur("reminder-lead")
	o.TickInterval = dur("tick-interval")
	o.Timezone = str("timezone")
	o.Timeout = dur("app-timeout")
	o.Verbose = boolean("verbose")
	return o
}
