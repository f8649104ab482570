// Package mcp exposes desktop organizing as MCP tools over stdio so AI
// assistants can tidy the desktop, manage layouts and switch presets.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/icontile/internal/organize"
)

const (
	ServerName    = "icontile"
	ServerVersion = "0.1.0"
)

// Server is the MCP server wrapping an organizer.
type Server struct {
	mcpServer *mcpsdk.Server
	org       *organize.Organizer
}

// NewServer creates an MCP server around an organizer.
func NewServer(org *organize.Organizer) *Server {
	s := &Server{org: org}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "organize_desktop",
		Description: "Classify all desktop icons into groups and arrange them on the icon grid. Saves an undo snapshot first. Returns placement counts; a nonzero mismatched count usually means the desktop's own auto-arrange setting is fighting explicit positions.",
	}, s.handleOrganize)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "undo_organize",
		Description: "Restore icon positions from the snapshot taken before the most recent organize.",
	}, s.handleUndo)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_icons",
		Description: "List all desktop icons with their current positions and the group each one classifies into.",
	}, s.handleListIcons)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "save_layout",
		Description: "Save the current icon positions as a named layout. Names starting with underscore are reserved.",
	}, s.handleSaveLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "restore_layout",
		Description: "Move icons back to the positions stored in a named layout. Icons no longer on the desktop are skipped.",
	}, s.handleRestoreLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_layouts",
		Description: "List saved layouts with their icon counts and creation times.",
	}, s.handleListLayouts)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "apply_preset",
		Description: "Switch the active grouping preset. The by_extension preset regenerates its groups from the live desktop on every organize.",
	}, s.handleApplyPreset)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_presets",
		Description: "List available grouping presets, built-in and custom, marking the active one.",
	}, s.handleListPresets)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Report the current desktop state: icon count, target monitor, active preset, enabled groups and saved layout count.",
	}, s.handleGetStatus)
}

func (s *Server) handleOrganize(_ context.Context, _ *mcpsdk.CallToolRequest, _ struct{}) (*mcpsdk.CallToolResult, OrganizeOutput, error) {
	summary, err := s.org.Organize()
	if err != nil {
		return nil, OrganizeOutput{}, err
	}
	return nil, OrganizeOutput{
		Icons:      summary.Icons,
		Groups:     summary.Groups,
		Placed:     summary.Placed,
		Skipped:    summary.Skipped,
		Mismatched: summary.Mismatched,
		Empty:      summary.Empty,
	}, nil
}

func (s *Server) handleUndo(_ context.Context, _ *mcpsdk.CallToolRequest, _ struct{}) (*mcpsdk.CallToolResult, UndoOutput, error) {
	n, err := s.org.Undo()
	if err != nil {
		return nil, UndoOutput{}, err
	}
	return nil, UndoOutput{Restored: n}, nil
}

func (s *Server) handleListIcons(_ context.Context, _ *mcpsdk.CallToolRequest, _ struct{}) (*mcpsdk.CallToolResult, ListIconsOutput, error) {
	icons, err := s.org.Icons()
	if err != nil {
		return nil, ListIconsOutput{}, err
	}
	classifier := s.org.Classifier()
	out := ListIconsOutput{Icons: make([]IconInfo, len(icons))}
	for i, ic := range icons {
		out.Icons[i] = IconInfo{
			Name:      ic.Name,
			Group:     classifier.Classify(ic.Extension, ic.IsFolder, ic.IsSystem),
			X:         ic.X,
			Y:         ic.Y,
			IsFolder:  ic.IsFolder,
			IsSystem:  ic.IsSystem,
			Extension: ic.Extension,
		}
	}
	return nil, out, nil
}

func (s *Server) handleSaveLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args LayoutNameInput) (*mcpsdk.CallToolResult, SaveLayoutOutput, error) {
	saved, err := s.org.SaveLayout(args.Name)
	if err != nil {
		return nil, SaveLayoutOutput{}, err
	}
	return nil, SaveLayoutOutput{Name: saved.Name, Icons: len(saved.Positions)}, nil
}

func (s *Server) handleRestoreLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args LayoutNameInput) (*mcpsdk.CallToolResult, RestoreLayoutOutput, error) {
	n, err := s.org.RestoreLayout(args.Name)
	if err != nil {
		return nil, RestoreLayoutOutput{}, err
	}
	return nil, RestoreLayoutOutput{Restored: n}, nil
}

func (s *Server) handleListLayouts(_ context.Context, _ *mcpsdk.CallToolRequest, _ struct{}) (*mcpsdk.CallToolResult, ListLayoutsOutput, error) {
	layouts, err := s.org.Layouts().UserLayouts()
	if err != nil {
		return nil, ListLayoutsOutput{}, err
	}
	out := ListLayoutsOutput{Layouts: make([]LayoutInfo, len(layouts))}
	for i, l := range layouts {
		out.Layouts[i] = LayoutInfo{
			Name:      l.Name,
			Icons:     len(l.Positions),
			CreatedAt: l.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return nil, out, nil
}

func (s *Server) handleApplyPreset(_ context.Context, _ *mcpsdk.CallToolRequest, args ApplyPresetInput) (*mcpsdk.CallToolResult, any, error) {
	if err := s.org.ApplyPreset(args.ID); err != nil {
		return nil, nil, err
	}
	return nil, nil, nil
}

func (s *Server) handleListPresets(_ context.Context, _ *mcpsdk.CallToolRequest, _ struct{}) (*mcpsdk.CallToolResult, ListPresetsOutput, error) {
	presets, err := s.org.Presets().All()
	if err != nil {
		return nil, ListPresetsOutput{}, err
	}
	active := s.org.ActivePreset()
	out := ListPresetsOutput{Presets: make([]PresetInfo, len(presets))}
	for i, p := range presets {
		out.Presets[i] = PresetInfo{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Dynamic:     p.Dynamic,
			Active:      p.ID == active,
		}
	}
	return nil, out, nil
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ struct{}) (*mcpsdk.CallToolResult, StatusOutput, error) {
	status, err := s.org.Status()
	if err != nil {
		return nil, StatusOutput{}, err
	}
	return nil, StatusOutput{
		Icons:        status.Icons,
		Monitor:      status.Monitor,
		ActivePreset: status.ActivePreset,
		Groups:       status.Groups,
		Layouts:      status.Layouts,
	}, nil
}
