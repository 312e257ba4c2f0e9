package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/labelforge/tagmatch/pkg/catalog"
)

// newCatalogCommand creates the catalog subcommand group.
func newCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect a product catalog",
	}
	cmd.AddCommand(newCatalogInfoCommand())
	return cmd
}

// newCatalogInfoCommand creates the catalog info subcommand.
func newCatalogInfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <catalog-file>",
		Short: "Show catalog index statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(args[0])
			if err != nil {
				return fmt.Errorf("loading catalog: %w", err)
			}
			index := catalog.Build(cat)

			fmt.Printf("Catalog:      %s\n", args[0])
			fmt.Printf("Version:      %s\n", index.Version())
			fmt.Printf("Records:      %d\n", index.Len())
			fmt.Printf("Vendors:      %d\n", index.Vendors())
			fmt.Printf("Key terms:    %d\n", index.Terms())
			return nil
		},
	}
	return cmd
}
