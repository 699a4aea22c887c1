package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danmuck/linksim/internal/config"
)

func scenarioCmd() *cobra.Command {
	var (
		output   string
		force    bool
		validate string
	)

	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Write a starter scenario TOML or validate an existing one",
		RunE: func(cmd *cobra.Command, args []string) error {
			if validate != "" {
				if _, err := config.LoadScenario(validate); err != nil {
					return err
				}
				fmt.Printf("validated scenario at %s\n", validate)
				return nil
			}
			if output == "" {
				fmt.Print(config.Template())
				return nil
			}
			if err := config.WriteTemplate(output, force); err != nil {
				return err
			}
			fmt.Printf("wrote scenario template to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: print to stdout)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing scenario file")
	cmd.Flags().StringVar(&validate, "validate", "", "validate the scenario at this path instead")

	return cmd
}
