package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/adite/labyrinth/internal/engine"
	"github.com/adite/labyrinth/internal/remediation"
	"github.com/adite/labyrinth/internal/store"
	"github.com/adite/labyrinth/internal/vault"
)

var rootCmd = &cobra.Command{
	Use:   "labyrinth",
	Short: "Failure log and Minotaur tracker",
	Long:  "Labyrinth — log failures against your task vault, find the dominant failure archetype (the Minotaur), and grind it down.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LABYRINTH_DB env var)")
	rootCmd.PersistentFlags().String("vault", "", "Path to the vault directory (overrides LABYRINTH_VAULT env var)")

	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(deferCmd)
	rootCmd.AddCommand(pendingCmd)
	rootCmd.AddCommand(recalcCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(bountyCmd)
	rootCmd.AddCommand(drillsCmd)
	rootCmd.AddCommand(codexCmd)
	rootCmd.AddCommand(resetWeekCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then LABYRINTH_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveVaultPath returns the vault root using --vault flag, then
// LABYRINTH_VAULT env var, then ~/Labyrinth.
func resolveVaultPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("vault"); p != "" {
		return p, nil
	}
	if p := os.Getenv("LABYRINTH_VAULT"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, "Labyrinth"), nil
}

// openEngine builds a fully wired engine. The returned closer releases
// the store.
func openEngine(cmd *cobra.Command) (*engine.Engine, func(), error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve database path: %w", err)
	}
	vaultPath, err := resolveVaultPath(cmd)
	if err != nil {
		return nil, nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	fs, err := vault.NewFS(vaultPath)
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("open vault: %w", err)
	}

	var lib *remediation.Library
	if path := os.Getenv("LABYRINTH_DRILLS"); path != "" {
		l, err := remediation.LoadLibrary(path)
		if err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("load drill library: %w", err)
		}
		lib = &l
	}

	e, err := engine.New(cmd.Context(), engine.Options{
		Vault:     fs,
		Tasks:     engine.NewVaultTaskSink(fs, engine.DefaultTasksPath),
		Snapshots: st.SnapshotRepo(),
		Audit:     st.EventRepo(),
		Library:   lib,
		Config:    engine.DefaultConfig(),
	})
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return e, func() { st.Close() }, nil
}
