package handlers

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jusunglee/mta-mcp/internal/feed"
	"github.com/jusunglee/mta-mcp/internal/logger"
	"github.com/jusunglee/mta-mcp/internal/models"
	"github.com/jusunglee/mta-mcp/pkg/mta"
)

const (
	// ServerName is the name advertised to MCP clients
	ServerName = "mta_subway_tracker"
	// ToolName is the single tool exposed by the server
	ToolName = "get_next_mta_train"
)

const toolDescription = `Get the next arrival times for MTA subway trains at a station.

target_station must match the station name exactly, e.g. "Times Sq-42 St".
target_direction is "N" for northbound or "S" for southbound.

` + feed.HelpText

// NewServer creates an MCP server with the next-train tool registered
func NewServer(version string, client mta.Client, log logger.Logger) *server.MCPServer {
	s := server.NewMCPServer(ServerName, version, server.WithToolCapabilities(false))
	RegisterTools(s, client, log)
	return s
}

// RegisterTools adds the next-train tool to s
func RegisterTools(s *server.MCPServer, client mta.Client, log logger.Logger) {
	t := &tools{client: client, log: log}
	if t.log == nil {
		t.log = logger.Nop()
	}
	s.AddTool(NextTrainTool(), t.handleNextTrain)
}

// NextTrainTool returns the tool definition
func NextTrainTool() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription(toolDescription),
		mcp.WithString("target_station",
			mcp.Required(),
			mcp.Description("Exact station name as published in the MTA static GTFS stops"),
		),
		mcp.WithString("target_direction",
			mcp.Required(),
			mcp.Description(`Direction of travel: "N" (northbound) or "S" (southbound)`),
			mcp.Enum(models.North, models.South),
		),
		mcp.WithString("feed_id",
			mcp.Description("MTA feed id; see the tool description for the list"),
			mcp.DefaultString(models.DefaultFeedID),
		),
	)
}

type tools struct {
	client mta.Client
	log    logger.Logger
}

func (t *tools) handleNextTrain(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	station, err := req.RequireString("target_station")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	direction, err := req.RequireString("target_direction")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	feedID, err := feedIDArgument(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := t.client.NextTrain(ctx, models.QueryParameters{
		TargetStation:   station,
		TargetDirection: direction,
		FeedID:          feedID,
	})
	if !res.OK() {
		t.log.Warn("Tool call failed", "tool", ToolName, "outcome", res.Kind.String())
		return mcp.NewToolResultError(res.Text), nil
	}
	return mcp.NewToolResultText(res.Text), nil
}

// feedIDArgument accepts feed_id as a string or a whole JSON number
func feedIDArgument(args map[string]any) (string, error) {
	v, ok := args["feed_id"]
	if !ok || v == nil {
		return models.DefaultFeedID, nil
	}
	switch id := v.(type) {
	case string:
		return id, nil
	case float64:
		if id != math.Trunc(id) || math.IsInf(id, 0) {
			return "", fmt.Errorf("feed_id must be a whole number or a string, got %v", id)
		}
		return strconv.FormatFloat(id, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(id), nil
	}
	return "", fmt.Errorf("feed_id must be a string, got %T", v)
}
