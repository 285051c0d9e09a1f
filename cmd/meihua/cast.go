package main

import (
	"github.com/aretw0/meihua/internal/cli"
	"github.com/aretw0/meihua/pkg/domain"
	"github.com/spf13/cobra"
)

var castCmd = &cobra.Command{
	Use:   "cast",
	Short: "Cast a hexagram and print the search hint",
}

var castThreeCmd = &cobra.Command{
	Use:   "three <n1> <n2> <n3>",
	Short: "Cast from three numbers (upper trigram, lower trigram, moving line)",
	Example: `  meihua cast three 3 7 5
  meihua cast three 8 8 6 --format json`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var ns [3]int
		for i, field := range []string{"n1", "n2", "n3"} {
			n, err := domain.ParseNumber(field, args[i])
			if err != nil {
				return err
			}
			ns[i] = n
		}
		return runCast(cmd, func(eng *engineHandle) (*domain.Reading, error) {
			return eng.CastThree(cmd.Context(), ns[0], ns[1], ns[2])
		})
	},
}

var castCalendarCmd = &cobra.Command{
	Use:   "calendar <year-branch> <month> <day> <hour-branch>",
	Short: "Cast from the lunar year branch, month, day and hour branch",
	Long: `Cast from the lunar calendar. Branches are given as 子丑寅卯辰巳午未申酉戌亥
or as their numbers 1..12; month and day are lunar.`,
	Example: `  meihua cast calendar 巳 1 1 未
  meihua cast calendar 6 1 1 8 --figure`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		yb, err := domain.ParseBranch(args[0])
		if err != nil {
			return err
		}
		month, err := domain.ParseNumber("month", args[1])
		if err != nil {
			return err
		}
		day, err := domain.ParseNumber("day", args[2])
		if err != nil {
			return err
		}
		hb, err := domain.ParseBranch(args[3])
		if err != nil {
			return err
		}
		return runCast(cmd, func(eng *engineHandle) (*domain.Reading, error) {
			return eng.CastCalendar(cmd.Context(), yb, month, day, hb)
		})
	},
}

func runCast(cmd *cobra.Command, cast func(*engineHandle) (*domain.Reading, error)) error {
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

	r, err := cast(eng)
	if err != nil {
		return err
	}
	return w.WriteReading(r)
}

// outputWriter reads --format and --figure.
func outputWriter(cmd *cobra.Command) (*cli.Writer, error) {
	name, _ := cmd.Flags().GetString("format")
	format, err := cli.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	figure, _ := cmd.Flags().GetBool("figure")
	return cli.NewWriter(cmd.OutOrStdout(), format, figure), nil
}

func addOutputFlags(cmd *cobra.Command, persistent bool) {
	flags := cmd.Flags()
	if persistent {
		flags = cmd.PersistentFlags()
	}
	flags.StringP("format", "f", "text", "Output format: text, markdown, json or yaml")
	flags.Bool("figure", false, "Draw the main and changed hexagrams")
}

func init() {
	rootCmd.AddCommand(castCmd)
	castCmd.AddCommand(castThreeCmd, castCalendarCmd)
	addOutputFlags(castCmd, true)
}
