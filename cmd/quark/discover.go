package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gitter-badger/quark/pkg/catalog"
	"github.com/gitter-badger/quark/pkg/discovery"
)

var strictOrdering bool

// discoverCmd represents the discover command
var discoverCmd = &cobra.Command{
	Use:   "discover [backend-name]",
	Short: "Discover the schema catalog of a backend",
	Long: `Connect to a configured backend, run its catalog query and print the
discovered schemas, tables and columns with canonical column types.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openBackend(args[0])
		if err != nil {
			return err
		}

		log := newCommandLogger("discovery")

		opts := []discovery.Option{discovery.WithLogger(log)}
		if strictOrdering {
			opts = append(opts, discovery.WithStrictOrdering())
		}

		cat, err := discovery.New(opts...).Discover(cmd.Context(), conn)
		if err != nil {
			return err
		}

		printCatalog(cat)
		return nil
	},
}

func init() {
	discoverCmd.Flags().BoolVar(&strictOrdering, "strict-ordering", false,
		"Fail if the backend returns catalog rows out of order")
}

func printCatalog(cat catalog.Catalog) {
	schemas := make([]string, 0, len(cat.Schemas))
	for name := range cat.Schemas {
		schemas = append(schemas, name)
	}
	sort.Strings(schemas)

	for _, schemaName := range schemas {
		schema := cat.Schemas[schemaName]
		fmt.Printf("%s\n", schema.Name)

		tables := make([]string, 0, len(schema.Tables))
		for name := range schema.Tables {
			tables = append(tables, name)
		}
		sort.Strings(tables)

		for _, tableName := range tables {
			table := schema.Tables[tableName]
			fmt.Printf("  %s\n", table.Name)
			for _, col := range table.Columns {
				fmt.Printf("    %-32s %s\n", col.Name, col.Type)
			}
		}
	}
}
