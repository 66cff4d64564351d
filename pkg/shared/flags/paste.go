package flags

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

func AddPaste(cmd *cobra.Command) {
	cmd.Flags().
		Bool("paste", false, "Append the clipboard contents to the entry body.")
}

// HandlePaste returns the clipboard contents when --paste is set.
func HandlePaste(cmd *cobra.Command) (string, error) {
	paste, err := cmd.Flags().GetBool("paste")
	if err != nil || !paste {
		return "", err
	}

	content, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard: %w", err)
	}
	return content, nil
}
