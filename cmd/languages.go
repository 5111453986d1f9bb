package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/bookstruct/pkg/rules"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages with built-in rule sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, lang := range rules.DefaultRegistry().List() {
			fmt.Println(lang)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(languagesCmd)
}
