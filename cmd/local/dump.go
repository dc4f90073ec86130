package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Prints the decoded realtime feed as JSON",
	Args:  cobra.NoArgs,
	RunE:  dump,
}

func dump(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd.Context())
	if err != nil {
		return err
	}

	fm, err := client.RawFeed(cmd.Context(), feedID)
	if err != nil {
		return err
	}

	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(fm)
	if err != nil {
		return fmt.Errorf("encode feed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
