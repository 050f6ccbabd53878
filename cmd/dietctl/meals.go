package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukerupert/dietlog/internal/model"
)

func newMealsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meals",
		Short: "Manage logged meals",
	}
	cmd.AddCommand(newMealsListCmd(a), newMealsSaveCmd(a), newMealsDeleteCmd(a))
	return cmd
}

func newMealsListCmd(a *app) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List meals, optionally for one date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.client()
			var (
				meals []model.Meal
				err   error
			)
			if date != "" {
				meals, err = c.GetMealsByDate(cmd.Context(), date)
			} else {
				meals, err = c.GetMeals(cmd.Context())
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tDATE\tTYPE\tNAME\tKCAL\tPROTEIN\tCARBS\tFAT")
			for _, m := range meals {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n", m.ID, m.Date, m.Type, m.Name, num(m.Calories), num(m.Protein), num(m.Carbs), num(m.Fat))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Only meals on this date (YYYY-MM-DD)")
	return cmd
}

func newMealsSaveCmd(a *app) *cobra.Command {
	var (
		id  string
		typ string
		f   model.MealFields
	)
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Create a meal, or update it when --id names a stored meal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range []string{"date", "name"} {
				if err := requireFlag(cmd, name); err != nil {
					return err
				}
			}
			f.Type = model.MealType(typ)
			m, err := a.client().SaveMeal(cmd.Context(), id, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved meal %s\n", m.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Identifier of the meal to update")
	cmd.Flags().StringVar(&f.Date, "date", "", "Date of the meal (YYYY-MM-DD)")
	cmd.Flags().StringVar(&typ, "type", string(model.MealSnack), "breakfast, lunch, dinner or snack")
	cmd.Flags().StringVar(&f.Name, "name", "", "Name of the meal")
	cmd.Flags().Float64Var(&f.Calories, "calories", 0, "Calories")
	cmd.Flags().Float64Var(&f.Protein, "protein", 0, "Protein in grams")
	cmd.Flags().Float64Var(&f.Carbs, "carbs", 0, "Carbohydrates in grams")
	cmd.Flags().Float64Var(&f.Fat, "fat", 0, "Fat in grams")
	return cmd
}

func newMealsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a meal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client().DeleteMeal(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal %s\n", args[0])
			return nil
		},
	}
}
