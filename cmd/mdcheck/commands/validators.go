package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mdcheck/internal/validator"
)

func init() {
	rootCmd.AddCommand(validatorsCmd)
}

var validatorsCmd = &cobra.Command{
	Use:   "validators",
	Short: "List the available validators",
	Long: `Validators prints every built-in validator with its description.
Validator names are the keys used in the config file's validators section
and by the --enable and --disable flags.`,
	Run: func(cmd *cobra.Command, _ []string) {
		registry := validator.NewRegistry(
			validator.NewFrontmatter(),
			validator.NewAnnotations(),
			validator.NewContent(),
			validator.NewXMLTags(),
			validator.NewCrossRef("", nil),
		)
		for _, v := range registry.Validators() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n",
				color.CyanString(v.Name()), v.Description())
		}
	},
}
