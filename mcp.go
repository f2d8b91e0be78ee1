// CLAUDE:SUMMARY MCP tool surface: bulletin_analyze and bulletin_runs.
package bulletin

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/bulletin/kit"
)

// RegisterMCP registers all bulletin tools on an MCP server.
func (s *Service) RegisterMCP(srv *mcp.Server) {
	s.registerAnalyze(srv)
	s.registerRuns(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func (s *Service) registerAnalyze(srv *mcp.Server) {
	type req struct {
		Dept         string   `json:"dept"`
		Year         string   `json:"year"`
		DelaySeconds *float64 `json:"delay_seconds"`
	}

	tool := &mcp.Tool{
		Name:        "bulletin_analyze",
		Description: "Scan the result portal for a department/year batch and compute summary statistics",
		InputSchema: inputSchema(map[string]any{
			"dept":          map[string]any{"type": "string", "description": "Department code (CS, CG, ET, ...)"},
			"year":          map[string]any{"type": "string", "description": "2-digit admission year (22, 23, ...)"},
			"delay_seconds": map[string]any{"type": "number", "description": "Delay between probes in seconds (default 1.0)"},
		}, []string{"dept", "year"}),
	}

	endpoint := func(ctx context.Context, r any) (any, error) {
		p := r.(*req)
		return s.Analyze(ctx, p.Dept, p.Year, p.DelaySeconds)
	}

	decode := func(r *mcp.CallToolRequest) (any, error) {
		var p req
		if err := json.Unmarshal(r.Params.Arguments, &p); err != nil {
			return nil, err
		}
		return &p, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

func (s *Service) registerRuns(srv *mcp.Server) {
	type req struct {
		Limit int `json:"limit"`
	}

	tool := &mcp.Tool{
		Name:        "bulletin_runs",
		Description: "List archived discovery runs, newest first",
		InputSchema: inputSchema(map[string]any{
			"limit": map[string]any{"type": "integer", "description": "Maximum runs to return (default 50)"},
		}, nil),
	}

	endpoint := func(ctx context.Context, r any) (any, error) {
		p := r.(*req)
		runs, err := s.Runs(ctx, p.Limit)
		if err != nil {
			return nil, err
		}
		return map[string]any{"runs": runs}, nil
	}

	decode := func(r *mcp.CallToolRequest) (any, error) {
		var p req
		if len(r.Params.Arguments) > 0 {
			if err := json.Unmarshal(r.Params.Arguments, &p); err != nil {
				return nil, err
			}
		}
		return &p, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}
