package main

import (
	"fmt"

	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/spf13/cobra"
)

var manCmd = &cobra.Command{
	Use:    "man",
	Short:  "Generate man pages",
	Args:   cobra.NoArgs,
	Hidden: true,
	RunE: func(_ *cobra.Command, _ []string) error {
		manPage, err := mcobra.NewManPage(1, rootCmd)
		if err != nil {
			return err
		}

		manPage = manPage.WithSection("Files", "The server reads $TICS_DATA_PATH/config.yaml, or the file named by "+
			"$TICS_CONFIG_LOCATION, and keeps versions under the configured storage path.")
		fmt.Println(manPage.Build(roff.NewDocument()))
		return nil
	},
}
