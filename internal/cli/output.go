package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/tidwall/gjson"
)

// printJSON writes v to stdout as a single line of JSON, matching the raw
// response echo the tool has always produced. When --filter is set, the
// named GJSON path is extracted from the encoded document instead.
func printJSON(v any) error {
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	if flagFilter != "" {
		result := gjson.GetBytes(encoded, flagFilter)
		if !result.Exists() {
			return fmt.Errorf("filter %q matched nothing", flagFilter)
		}
		fmt.Println(result.String())
		return nil
	}
	fmt.Println(string(encoded))
	return nil
}

// stdoutTable returns a borderless table writer for human-readable output.
// A nil header renders plain key/value rows.
func stdoutTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	if len(header) > 0 {
		table.SetHeader(header)
	}
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	return table
}
