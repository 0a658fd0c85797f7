package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"aligncheck/internal/checks"

	"github.com/spf13/cobra"
)

type checkInfo struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// listChecks prints the battery in execution order.
func listChecks(cmd *cobra.Command, args []string) error {
	battery := checks.Battery()
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		infos := make([]checkInfo, 0, len(battery))
		for _, c := range battery {
			infos = append(infos, checkInfo{Name: c.Name, Category: c.Category, Description: c.Description})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case "", "text":
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CHECK\tCATEGORY\tDESCRIPTION")
		for _, c := range battery {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.Name, c.Category, c.Description)
		}
		return w.Flush()
	default:
		return fmt.Errorf("unknown output format %q (valid: text, json)", format)
	}
}
