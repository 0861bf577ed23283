package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/koscakluka/whereabouts/core/providers/websocket"
)

func printSchema(w io.Writer, commands bool) error {
	schema := websocket.Schema()
	if commands {
		schema = websocket.CommandSchema()
	}

	encoded, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(encoded)); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}
	return nil
}
