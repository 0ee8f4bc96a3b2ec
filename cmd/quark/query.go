package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitter-badger/quark/pkg/engine"
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query [backend-name] [sql]",
	Short: "Run a query against a backend",
	Long:  `Connect to a configured backend, run the given SQL and stream the result rows.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openBackend(args[0])
		if err != nil {
			return err
		}

		log := newCommandLogger("engine")

		bridge := engine.NewBridge(conn, engine.WithLogger(log))
		seq, err := bridge.ExecuteQuery(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		defer seq.Close()

		columns, err := seq.Columns()
		if err != nil {
			return err
		}
		fmt.Println(strings.Join(columns, "\t"))

		for seq.Next() {
			values := seq.Values()
			fields := make([]string, len(values))
			for i, v := range values {
				fields[i] = formatValue(v)
			}
			fmt.Println(strings.Join(fields, "\t"))
		}
		return seq.Err()
	},
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
