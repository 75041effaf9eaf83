package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wbrown/janus-soutei/soutei/annotations"
	"github.com/wbrown/janus-soutei/soutei/config"
	"github.com/wbrown/janus-soutei/soutei/engine"
	"github.com/wbrown/janus-soutei/soutei/modecheck"
	"github.com/wbrown/janus-soutei/soutei/native"
	"github.com/wbrown/janus-soutei/soutei/parser"
	"github.com/wbrown/janus-soutei/soutei/store"
)

var (
	flagConfig  string
	flagStore   string
	flagSteps   int
	flagAnswers int
	flagVerbose bool
)

func main() {
	root := &cobra.Command{
		Use:   "soutei",
		Short: "Trust-management logic engine",
		Long: `soutei answers queries against assertions - named bundles of
Horn-clause rules attributed to principals - in the manner of the
Soutei authorization logic.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "soutei.yaml", "config file path")
	root.PersistentFlags().StringVar(&flagStore, "store", "", "assertion store path (overrides config)")
	root.PersistentFlags().IntVar(&flagSteps, "steps", 0, "scheduler step limit (overrides config)")
	root.PersistentFlags().IntVar(&flagAnswers, "answers", 0, "answer limit (overrides config)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "show resolution trace")

	root.AddCommand(queryCmd(), installCmd(), retractCmd(), listCmd(), showCmd(), checkCmd(), replCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// env bundles what every command needs: config, logger, store.
type env struct {
	cfg    config.Config
	logger *zap.Logger
	store  *store.Store
}

func openEnv() (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagStore != "" {
		cfg.StorePath = flagStore
	}
	if flagSteps > 0 {
		cfg.StepLimit = flagSteps
	}
	if flagAnswers > 0 {
		cfg.AnswerLimit = flagAnswers
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.StorePath, logger)
	if err != nil {
		logger.Sync()
		return nil, err
	}

	return &env{cfg: cfg, logger: logger, store: st}, nil
}

func (e *env) close() {
	e.store.Close()
	e.logger.Sync()
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("bad log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// natives returns the native assertions available to every command.
func natives() map[string]engine.NativeAssertion {
	return map[string]engine.NativeAssertion{
		"std": native.StdLib(),
	}
}

func queryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <goal>",
		Short: "Run a query, e.g. 'app says path(1, ?y)'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			db, err := e.store.Load(natives())
			if err != nil {
				return err
			}
			return runQuery(e, db, args[0])
		},
	}
}

func runQuery(e *env, db engine.Database, queryStr string) error {
	goal, err := parser.ParseQuery(queryStr)
	if err != nil {
		return err
	}

	opts := engine.Options{Logger: e.logger}
	if flagVerbose {
		formatter := annotations.NewOutputFormatter(os.Stderr)
		opts.Handler = formatter.Handle
	}

	start := time.Now()
	answers, stats := engine.RunWithOptions(opts, e.cfg.StepLimit, e.cfg.AnswerLimit, db, goal)
	elapsed := time.Since(start)

	fmt.Print(answerTable(goal, answers))
	fmt.Printf("\n_%d answers in %d steps, %s (%.3fms)_\n",
		stats.Answers, stats.Steps, stats.Termination,
		float64(elapsed.Microseconds())/1000.0)
	return nil
}

func installCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install <principal> <file>",
		Short: "Parse, mode-check, and install an assertion file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			source, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			if err := e.store.Install(args[0], string(source), natives()); err != nil {
				return err
			}
			fmt.Printf("Installed assertion for principal %q\n", args[0])
			return nil
		},
	}
}

func retractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retract <principal>",
		Short: "Remove a principal's assertion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.store.Retract(args[0]); err != nil {
				return err
			}
			fmt.Printf("Retracted assertion for principal %q\n", args[0])
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed principals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			principals, err := e.store.Principals()
			if err != nil {
				return err
			}
			if len(principals) == 0 {
				fmt.Println("No assertions installed.")
				return nil
			}
			for _, p := range principals {
				fmt.Println(p)
			}
			return nil
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <principal>",
		Short: "Print a principal's assertion source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			source, err := e.store.Source(args[0])
			if err != nil {
				return err
			}
			fmt.Print(source)
			return nil
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Mode-check an assertion file without installing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			rules, err := parser.ParseAssertion(string(source))
			if err != nil {
				return err
			}

			violations := modecheck.CheckAssertion(rules, natives())
			if len(violations) == 0 {
				fmt.Printf("%s: %d rules, no mode violations\n", args[0], len(rules))
				return nil
			}
			for _, v := range violations {
				fmt.Fprintf(os.Stderr, "%s: %s\n", args[0], v.Error())
			}
			return fmt.Errorf("%d mode violations", len(violations))
		},
	}
}

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive query loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			db, err := e.store.Load(natives())
			if err != nil {
				return err
			}

			fmt.Println("=== Soutei Interactive Mode ===")
			fmt.Println("Commands:")
			fmt.Println("  .help    - Show help")
			fmt.Println("  .exit    - Exit")
			fmt.Println("  .list    - List principals")
			fmt.Println("  <goal>   - Run a query, e.g. app says may(?u, read)")
			fmt.Println()

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					return nil
				}

				line := strings.TrimSpace(scanner.Text())
				switch {
				case line == "":
				case line == ".exit":
					return nil
				case line == ".help":
					fmt.Println("Enter a body literal (assn says lit) or a command.")
				case line == ".list":
					principals, err := e.store.Principals()
					if err != nil {
						fmt.Printf("Error: %v\n", err)
						continue
					}
					for _, p := range principals {
						fmt.Println(p)
					}
				default:
					if err := runQuery(e, db, line); err != nil {
						fmt.Printf("Error: %v\n", err)
					}
				}
			}
		},
	}
}
