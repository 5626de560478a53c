// Command cli is a one-shot calculator for scripted use:
//
//	gopower-cli power --teachers 25 --share 1.0
//	gopower-cli sample-size --effect-size 0.12 --clustering --icc 0.2
//	gopower-cli sweep --teachers 25 --clustering --icc 0.2
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gopower/adapters/stats/engine"
	"gopower/app"
	"gopower/domain/study"
)

func main() {
	service := app.NewPowerService(engine.NewTTestEngine())

	rootCmd := &cobra.Command{
		Use:   "gopower-cli",
		Short: "Power and sample-size calculator for teacher-level interventions",
	}

	rootCmd.AddCommand(
		newPowerCmd(service),
		newSampleSizeCmd(service),
		newSweepCmd(service),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type designFlags struct {
	teachers           int
	share              float64
	studentsPerTeacher int
	clustering         bool
	icc                float64
}

func (f *designFlags) register(cmd *cobra.Command, withTeachers bool) {
	if withTeachers {
		cmd.Flags().IntVar(&f.teachers, "teachers", 25, "intervention-arm teacher count")
	}
	cmd.Flags().Float64Var(&f.share, "share", 1.0, "fraction of teachers with measured outcomes")
	cmd.Flags().IntVar(&f.studentsPerTeacher, "students-per-teacher", study.DefaultStudentsPerTeacher, "assumed cluster size")
	cmd.Flags().BoolVar(&f.clustering, "clustering", false, "account for clustering")
	cmd.Flags().Float64Var(&f.icc, "icc", 0.2, "intraclass correlation coefficient (used with --clustering)")
}

func (f *designFlags) design() study.Design {
	return study.Design{
		Teachers:           f.teachers,
		OutcomeShare:       f.share,
		StudentsPerTeacher: f.studentsPerTeacher,
		UseClustering:      f.clustering,
		ICC:                f.icc,
	}
}

func newPowerCmd(service *app.PowerService) *cobra.Command {
	var flags designFlags
	var effectSize float64

	cmd := &cobra.Command{
		Use:   "power",
		Short: "Achieved power for a study design at one effect size",
		RunE: func(cmd *cobra.Command, args []string) error {
			est, err := service.EstimatePower(app.PowerRequest{
				Design:     flags.design(),
				EffectSize: effectSize,
			})
			if err != nil {
				return err
			}
			return printJSON(est)
		},
	}
	flags.register(cmd, true)
	cmd.Flags().Float64Var(&effectSize, "effect-size", 0.12, "standardized effect size")
	return cmd
}

func newSampleSizeCmd(service *app.PowerService) *cobra.Command {
	var flags designFlags
	var effectSize float64

	cmd := &cobra.Command{
		Use:   "sample-size",
		Short: "Teachers required for 80% power at a target effect size",
		RunE: func(cmd *cobra.Command, args []string) error {
			est, err := service.EstimateSampleSize(app.SampleSizeRequest{
				EffectSize:         effectSize,
				OutcomeShare:       flags.share,
				StudentsPerTeacher: flags.studentsPerTeacher,
				UseClustering:      flags.clustering,
				ICC:                flags.icc,
			})
			if err != nil {
				return err
			}
			return printJSON(est)
		},
	}
	flags.register(cmd, false)
	cmd.Flags().Float64Var(&effectSize, "effect-size", 0.12, "standardized effect size")
	return cmd
}

func newSweepCmd(service *app.PowerService) *cobra.Command {
	var flags designFlags

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Power table across the standard effect-size grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := service.PowerSweep(flags.design())
			if err != nil {
				return err
			}
			fmt.Printf("Effect Size  Band    Power\n")
			for _, row := range result.Rows {
				marker := " "
				if row.Adequate {
					marker = "*"
				}
				fmt.Printf("%10.2f  %-6s  %.3f %s\n", row.EffectSize, row.Band, row.Power, marker)
			}
			fmt.Printf("\n* power at or above %.2f\n", study.TargetPower)
			return nil
		},
	}
	flags.register(cmd, true)
	return cmd
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
