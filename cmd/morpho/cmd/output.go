package cmd

import (
	"encoding/json"
	"fmt"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
)

// printJSON renders v as compact JSON, or indented with --pretty.
func printJSON(v any) error {
	var (
		data []byte
		err  error
	)
	if flagPretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
