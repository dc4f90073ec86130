package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jusunglee/mta-mcp/internal/models"
)

var nextCmd = &cobra.Command{
	Use:   "next <station> <direction>",
	Short: "Lists upcoming arrivals at a station",
	Long: `Lists upcoming arrivals at a station in one direction.

The station name must match the MTA stop name exactly, e.g. "Times Sq-42 St".
Direction is N or S.`,
	Args: cobra.ExactArgs(2),
	RunE: next,
}

func next(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd.Context())
	if err != nil {
		return err
	}

	res := client.NextTrain(cmd.Context(), models.QueryParameters{
		TargetStation:   args[0],
		TargetDirection: args[1],
		FeedID:          feedID,
	})

	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(res.Text, "\n"))
	if !res.OK() {
		return fmt.Errorf("query failed: %s", res.Kind)
	}
	return nil
}
