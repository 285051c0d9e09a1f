package main

import (
	"strings"

	"github.com/aretw0/meihua"
	"github.com/aretw0/meihua/internal/cli"
	"github.com/aretw0/meihua/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Answer the prompts and get a reading",
	Long: `Starts the interactive lookup. Choose mode 1 (three numbers) or mode 2
(lunar year branch, month, day and hour branch) and answer the prompts.
With --loop the session keeps going until q or Ctrl+D.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := outputWriter(cmd)
		if err != nil {
			return err
		}
		loop, _ := cmd.Flags().GetBool("loop")

		a, err := loadApp(cmd, true)
		if err != nil {
			return err
		}
		eng, err := a.openEngine(cmd, cli.EngineOptions{})
		if err != nil {
			return err
		}
		defer eng.Close()

		out := cmd.OutOrStdout()
		if cli.IsTerminal(out) {
			tui.PrintBanner(out, strings.TrimSpace(meihua.Version))
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		session := &cli.Session{
			Engine: eng,
			In:     cmd.InOrStdin(),
			Out:    out,
			Writer: w,
			Loop:   loop,
			Logger: a.logger,
		}
		return session.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addOutputFlags(runCmd, false)
	runCmd.Flags().BoolP("loop", "l", false, "Keep asking after each reading")

	// 'run' is the default when no command is given.
	rootCmd.RunE = runCmd.RunE
	addOutputFlags(rootCmd, false)
	rootCmd.Flags().BoolP("loop", "l", false, "Keep asking after each reading")
}
