// typetris plays a falling-block game by typing its screen into a
// write-only editor buffer, one keystroke at a time.
//
// Usage:
//
//	typetris play            - Play in an emulated editor buffer
//	typetris demo            - Run a scripted headless session and print the surface
//	typetris keys            - Show the supported character-to-key mapping
//	typetris trace           - List recorded keystroke trace sessions
//
// Global flags:
//
//	--config <path>  - Path to a custom config YAML
//	--seed <value>   - Set RNG seed for reproducible sessions
//	--preset <name>  - Speed preset: relaxed, normal, fast
//	--trace-db <path> - Record keystrokes to a SQLite trace database
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig  string
	flagSeed    int64
	flagPreset  string
	flagTraceDB string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "typetris",
	Short: "typetris - a falling-block game typed into an editor buffer",
	Long: `typetris drives a falling-block game whose only output channel is
synthetic keystrokes. The game never reads the screen back; it types an
initial frame and then keeps the buffer current by retyping only the
lines that changed.

Available commands:
  play     - Play interactively in an emulated editor buffer
  demo     - Run a deterministic headless session and print the result
  keys     - Show which characters the typing scripts can produce
  trace    - List recorded keystroke trace sessions

Examples:
  typetris play
  typetris play --preset fast --seed 42
  typetris play --trace-db ~/.typetris/trace.db
  typetris demo --seed 7
  typetris trace --trace-db ~/.typetris/trace.db`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Speed preset: relaxed, normal, fast")
	rootCmd.PersistentFlags().StringVar(&flagTraceDB, "trace-db", "", "Path to a SQLite keystroke trace database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(traceCmd)
}
