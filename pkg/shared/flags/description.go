package flags

import (
	"strings"

	"github.com/spf13/cobra"
)

func AddDescription(cmd *cobra.Command, usage string) {
	cmd.Flags().StringP("description", "d", "", usage)
}

func HandleDescription(cmd *cobra.Command) (string, error) {
	description, err := cmd.Flags().GetString("description")
	return strings.TrimSpace(description), err
}
