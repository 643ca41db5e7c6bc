// Package cli wires the rip command line to the engine.
//
// rip is a single command whose mode is picked by flags, mirroring rm:
// bare invocation buries targets, -u unburies, -s holds a seance and
// -d decomposes the graveyard. The flags are folded into exactly one
// engine request per invocation.
package cli

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/rip/internal/config"
	"github.com/danieljhkim/rip/internal/engine"
	"github.com/danieljhkim/rip/internal/glob"
)

var (
	flagGraveyard string
	flagUnbury    bool
	flagDecompose bool
	flagSeance    bool
	flagMaxDepth  int
	flagLocal     bool
	flagShowAll   bool
	flagFullPath  bool
	flagPlain     bool
	flagInspect   bool
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "rip [TARGET...]",
	Short: "Soft-delete files by sending them to the graveyard",
	Long: `rip sends files to the graveyard ($XDG_DATA_HOME/graveyard if set, else
/tmp/graveyard-$USER by default) instead of unlinking them, and can
restore them later.

Targets can be globbed: '*glob', '**glob', '*.{png,jpg}', and '!' before
a pattern negates it.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&flagGraveyard, "graveyard", "G", "", "Directory where deleted files go to rest")
	flags.BoolVarP(&flagUnbury, "unbury", "u", false, "Undo the last removal, or restore some file(s) from the graveyard")
	flags.BoolVarP(&flagSeance, "seance", "s", false, "Print files that were sent under the current directory")
	flags.BoolVarP(&flagDecompose, "decompose", "d", false, "Permanently delete (unlink) the entire graveyard")
	flags.IntVarP(&flagMaxDepth, "max-depth", "m", glob.DefaultMaxDepth, "Max depth for glob to search")
	flags.BoolVarP(&flagLocal, "local", "l", false, "Undo files in the current directory (with -u)")
	flags.BoolVarP(&flagShowAll, "all", "a", false, "Print all files in the graveyard (with -s)")
	flags.BoolVarP(&flagFullPath, "full-path", "f", false, "Print the full path of listed files")
	flags.BoolVarP(&flagPlain, "plain", "p", false, "Print only file paths (no index, no time)")
	flags.BoolVarP(&flagInspect, "inspect", "i", false, "Print info about TARGET before prompting for action")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "Print what is going on")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the rip version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(os.Stdout, rootCmd.Version)
		},
	}
	rootCmd.AddCommand(versionCmd)
}

func run(cmd *cobra.Command, args []string) error {
	logger := log.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(log.WarnLevel)
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	paths, err := config.Resolve(flagGraveyard)
	if err != nil {
		return err
	}

	maxDepth := flagMaxDepth
	if !cmd.Flags().Changed("max-depth") {
		if fileCfg, err := config.LoadFile(); err == nil && fileCfg.MaxDepth > 0 {
			maxDepth = fileCfg.MaxDepth
		}
	}

	eng := newEngine(paths, maxDepth, logger)

	// Exactly one operation mode per invocation; unbury wins over
	// seance so the two flags compose.
	switch {
	case flagUnbury:
		return runUnbury(eng, paths, args)
	case flagSeance:
		return runSeance(eng, paths)
	case flagDecompose:
		return runDecompose(eng)
	default:
		if len(args) == 0 {
			return cmd.Help()
		}
		if err := paths.EnsureGraveyard(); err != nil {
			return err
		}
		return runBury(eng, args)
	}
}

func runBury(eng *engine.Engine, targets []string) error {
	result, err := eng.Bury(&engine.BuryRequest{Targets: targets, Inspect: flagInspect})
	var failed int
	if result != nil {
		failed = reportBury(result)
	}
	if err != nil {
		return err
	}
	return failedErr(failed)
}

func runUnbury(eng *engine.Engine, paths *config.Paths, targets []string) error {
	result, err := eng.Unbury(&engine.UnburyRequest{
		Targets: targets,
		Local:   flagLocal,
		Seance:  flagSeance,
	})
	var failed int
	if result != nil {
		failed = reportUnbury(result, paths)
	}
	if err != nil {
		return err
	}
	return failedErr(failed)
}

func runSeance(eng *engine.Engine, paths *config.Paths) error {
	result, err := eng.Seance(&engine.SeanceRequest{All: flagShowAll})
	if err != nil {
		return err
	}
	reportSeance(result, paths)
	return nil
}

func runDecompose(eng *engine.Engine) error {
	result, err := eng.Decompose(&engine.DecomposeRequest{Inventory: flagVerbose})
	if err != nil {
		return err
	}
	reportDecompose(result)
	return nil
}
