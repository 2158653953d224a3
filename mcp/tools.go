package mcp

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/ka2n/postview/api/controller"
	"github.com/ka2n/postview/api/datasource"
	"github.com/ka2n/postview/api/record"
	"github.com/ka2n/postview/api/sourceresolver"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

var validate = validator.New()

func InitTools() []server.ServerTool {
	return []server.ServerTool{
		newServerTool(ListRecords()),
	}
}

// listRecordsArguments are the arguments of the list_records tool
type listRecordsArguments struct {
	Source string `mapstructure:"source" validate:"omitempty,oneof=remote static"`
	URL    string `mapstructure:"url" validate:"omitempty,url"`
}

type listRecordsResult struct {
	Source  datasource.Kind `json:"source"`
	Count   int             `json:"count"`
	Records []record.Record `json:"records"`
}

func ListRecords() (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"list_records",
			mcp.WithDescription("Fetch the list of posts from a data source"),
			mcp.WithString("source", mcp.Description("Data source: remote (default) or static")),
			mcp.WithString("url", mcp.Description("JSON feed URL for the remote source")),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var args listRecordsArguments
			if err := mapstructure.Decode(req.Params.Arguments, &args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err := validate.StructCtx(ctx, args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			kind := datasource.Kind(args.Source)
			if kind == "" {
				kind = datasource.KindRemote
			}

			ds, err := sourceresolver.DataSource(sourceresolver.Options{
				Kind: kind,
				URL:  args.URL,
			})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			ctrl := controller.New(ctx, ds)
			defer ctrl.Close()

			select {
			case <-ctrl.Done():
			case <-ctx.Done():
				return mcp.NewToolResultError(ctx.Err().Error()), nil
			}

			if err := ctrl.Err(); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			items := ctrl.Items()
			b, err := json.Marshal(listRecordsResult{
				Source:  kind,
				Count:   len(items),
				Records: items,
			})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			return mcp.NewToolResultText(string(b)), nil
		}
}
