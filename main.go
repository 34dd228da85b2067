// farm 是一个俯视角的农场小游戏：小兔子在农场里收集小鸡和奶牛，
// 分数每到 10 的倍数会出现宝箱。
//
// Usage:
//
//	farm                 - Play (same as "farm play")
//	farm play            - Play
//	farm scores          - Show the top 10 sessions and the high score
//
// Global flags:
//
//	--verbose       - Debug logging
//	--db <path>     - Scores database (default: ~/.farm/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/decker502/farm/pkg/app"
	"github.com/decker502/farm/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagVerbose bool
	flagDBPath  string

	// Play flags
	flagSeed   int64
	flagDebug  bool
	flagScale  int
	flagAssets string
	flagData   string
)

func main() {
	embedded.Init(dataFS)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "farm",
	Short: "Farm - collect chickens and cows, open treasure chests",
	Long: `Farm is a small top-down game. Walk the rabbit around the farm,
pick up the wandering chickens and cows, and open the chest that
appears every 10 points.

Controls:
  Arrows/WASD  - Move
  F3           - Toggle collision boxes
  F11          - Toggle fullscreen
  R            - New game`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
	RunE: runPlay,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start a new game. The score is saved when the window is closed
or a new game is started.

Examples:
  farm play
  farm play --seed 42 --debug
  farm play --scale 2 --assets ./mygame`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.farm/scores.db", "Path to scores database (empty disables saving)")

	for _, cmd := range []*cobra.Command{rootCmd, playCmd} {
		cmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
		cmd.Flags().BoolVar(&flagDebug, "debug", false, "Draw collision boxes")
		cmd.Flags().IntVar(&flagScale, "scale", 0, "Window scale 1-4 (0 = saved setting)")
		cmd.Flags().StringVar(&flagAssets, "assets", ".", "Directory containing assets/ (missing images use placeholders)")
		cmd.Flags().StringVar(&flagData, "data", "", "Directory containing a data/ override")
	}

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setupLogging 默认只输出警告和错误，--verbose 时输出调试日志
func setupLogging() {
	log.SetReportTimestamp(false)
	log.SetLevel(log.WarnLevel)
	if flagVerbose {
		log.SetLevel(log.DebugLevel)
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	game, err := app.NewApp(app.Config{
		Seed:      flagSeed,
		DBPath:    flagDBPath,
		AssetsDir: flagAssets,
		DataDir:   flagData,
		Debug:     flagDebug,
		Scale:     flagScale,
	})
	if err != nil {
		return err
	}
	defer game.Close()

	game.ApplyWindowSettings()
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("game loop: %w", err)
	}
	return nil
}
