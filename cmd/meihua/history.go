package main

import (
	"fmt"

	"github.com/aretw0/meihua/internal/cli"
	"github.com/aretw0/meihua/internal/config"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past readings, newest first",
	Long: `Lists readings kept in the journal. Use a persistent backend
(--journal file or --journal redis) to keep readings across runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := outputWriter(cmd)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := loadApp(cmd, true)
		if err != nil {
			return err
		}
		if a.cfg.Journal.Backend == config.JournalNone {
			return fmt.Errorf("journal is disabled; pick a backend with --journal")
		}
		eng, err := a.openEngine(cmd, cli.EngineOptions{})
		if err != nil {
			return err
		}
		defer eng.Close()

		readings, err := eng.History(cmd.Context(), limit)
		if err != nil {
			return err
		}
		return w.WriteHistory(readings)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a past reading by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := outputWriter(cmd)
		if err != nil {
			return err
		}
		a, err := loadApp(cmd, true)
		if err != nil {
			return err
		}
		eng, err := a.openEngine(cmd, cli.EngineOptions{})
		if err != nil {
			return err
		}
		defer eng.Close()

		r, err := eng.Reading(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return w.WriteReading(r)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd, showCmd)
	addOutputFlags(historyCmd, false)
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of readings (0 for all)")
	addOutputFlags(showCmd, false)
}
