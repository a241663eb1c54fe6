package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/adite/labyrinth/internal/engine"
)

var codexCmd = &cobra.Command{
	Use:   "codex",
	Short: "Print the enshrined principles",
	RunE: func(cmd *cobra.Command, args []string) error {
		vaultPath, err := resolveVaultPath(cmd)
		if err != nil {
			return err
		}
		raw, err := os.ReadFile(filepath.Join(vaultPath, filepath.FromSlash(engine.DefaultCodexPath)))
		if os.IsNotExist(err) {
			fmt.Println("The codex is empty.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read codex: %w", err)
		}
		fmt.Print(string(raw))
		return nil
	},
}
