package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukerupert/dietlog/internal/model"
)

func newExercisesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercises",
		Short: "Manage logged exercise",
	}
	cmd.AddCommand(newExercisesListCmd(a), newExercisesSaveCmd(a), newExercisesDeleteCmd(a))
	return cmd
}

func newExercisesListCmd(a *app) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List exercises, optionally for one date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.client()
			var (
				items []model.Exercise
				err   error
			)
			if date != "" {
				items, err = c.GetExercisesByDate(cmd.Context(), date)
			} else {
				items, err = c.GetExercises(cmd.Context())
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tDATE\tTYPE\tNAME\tDURATION_MIN\tKCAL_BURNED")
			for _, e := range items {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.Date, e.Type, e.Name, num(e.Duration), num(e.CaloriesBurned))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Only exercises on this date (YYYY-MM-DD)")
	return cmd
}

func newExercisesSaveCmd(a *app) *cobra.Command {
	var (
		id  string
		typ string
		f   model.ExerciseFields
	)
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Create an exercise, or update it when --id names a stored exercise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range []string{"date", "name"} {
				if err := requireFlag(cmd, name); err != nil {
					return err
				}
			}
			f.Type = model.ExerciseType(typ)
			e, err := a.client().SaveExercise(cmd.Context(), id, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved exercise %s\n", e.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Identifier of the exercise to update")
	cmd.Flags().StringVar(&f.Date, "date", "", "Date of the exercise (YYYY-MM-DD)")
	cmd.Flags().StringVar(&typ, "type", string(model.ExerciseCardio), "cardio, strength, flexibility or other")
	cmd.Flags().StringVar(&f.Name, "name", "", "Name of the exercise")
	cmd.Flags().Float64Var(&f.Duration, "duration", 0, "Duration in minutes")
	cmd.Flags().Float64Var(&f.CaloriesBurned, "calories", 0, "Calories burned")
	return cmd
}

func newExercisesDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client().DeleteExercise(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted exercise %s\n", args[0])
			return nil
		},
	}
}
