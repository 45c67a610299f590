package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newVenuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "venues",
		Short: "List configured venues",
		RunE:  runVenues,
	}
}

func runVenues(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(flagFormat)
	if err != nil {
		return err
	}

	venues, err := loadVenues()
	if err != nil {
		return err
	}

	if format == FormatJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(venues)
	}

	for _, v := range venues {
		fmt.Printf("%-16s %-8s %s", v.ID, v.Kind, v.Name)
		if v.Timezone != "" {
			fmt.Printf(" (%s)", v.Timezone)
		}
		if v.Channel != "" {
			fmt.Printf(" [channel %s]", v.Channel)
		}
		fmt.Println()
	}
	return nil
}
