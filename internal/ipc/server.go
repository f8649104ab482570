package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/1broseidon/icontile/internal/layout"
	"github.com/1broseidon/icontile/internal/organize"
	"github.com/1broseidon/icontile/internal/preset"
)

// Controller is the daemon-side surface the IPC server drives. Mutating
// operations are expected to be serialized by the implementation.
type Controller interface {
	Organize() (organize.Summary, error)
	Undo() (int, error)
	SaveLayout(name string) (layout.SavedLayout, error)
	RestoreLayout(name string) (int, error)
	DeleteLayout(name string) (bool, error)
	RenameLayout(oldName, newName string) error
	ListLayouts() ([]layout.SavedLayout, error)
	ApplyPreset(id string) error
	ListPresets() ([]preset.Preset, error)
	ActivePreset() string
	Status() (organize.Status, error)
	Reload() error
}

// Server handles IPC requests from clients.
type Server struct {
	socketPath   string
	listener     net.Listener
	ctrl         Controller
	log          *log.Logger
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates an IPC server bound to socketPath. A stale socket file
// from a previous run is removed.
func NewServer(socketPath string, ctrl Controller, logger *log.Logger) *Server {
	os.Remove(socketPath)
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		socketPath: socketPath,
		ctrl:       ctrl,
		log:        logger,
	}
}

// Start begins listening for IPC connections.
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.log.Info("IPC server listening", "socket", s.socketPath)
	go s.acceptLoop()
	return nil
}

// Stop gracefully shuts down the IPC server.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.log.Error("IPC accept error", "err", err)
			continue
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(30 * time.Second))

	reader := bufio.NewReader(conn)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.log.Error("IPC read error", "err", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.send(conn, NewErrorResponse(fmt.Sprintf("Invalid request: %v", err)))
		return
	}

	s.send(conn, s.handleCommand(req))
}

func (s *Server) handleCommand(req *Request) *Response {
	s.log.Debug("IPC command", "command", req.Command)
	switch req.Command {
	case CommandOrganize:
		return s.handleOrganize()
	case CommandUndo:
		return s.handleUndo()
	case CommandSaveLayout:
		return s.handleSaveLayout(req.Payload)
	case CommandRestoreLayout:
		return s.handleRestoreLayout(req.Payload)
	case CommandDeleteLayout:
		return s.handleDeleteLayout(req.Payload)
	case CommandRenameLayout:
		return s.handleRenameLayout(req.Payload)
	case CommandListLayouts:
		return s.handleListLayouts()
	case CommandApplyPreset:
		return s.handleApplyPreset(req.Payload)
	case CommandListPresets:
		return s.handleListPresets()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandReload:
		return s.handleReload()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleOrganize() *Response {
	summary, err := s.ctrl.Organize()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Organize failed: %v", err))
	}
	resp, _ := NewOKResponse(summary)
	return resp
}

func (s *Server) handleUndo() *Response {
	n, err := s.ctrl.Undo()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Undo failed: %v", err))
	}
	resp, _ := NewOKResponse(RestoreData{Restored: n})
	return resp
}

func parseLayoutPayload(payload json.RawMessage) (LayoutPayload, error) {
	var p LayoutPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return p, fmt.Errorf("invalid layout payload: %w", err)
	}
	if p.Name == "" {
		return p, fmt.Errorf("name is required")
	}
	return p, nil
}

func (s *Server) handleSaveLayout(payload json.RawMessage) *Response {
	p, err := parseLayoutPayload(payload)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	saved, err := s.ctrl.SaveLayout(p.Name)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Save failed: %v", err))
	}
	resp, _ := NewOKResponse(layoutInfo(saved))
	return resp
}

func (s *Server) handleRestoreLayout(payload json.RawMessage) *Response {
	p, err := parseLayoutPayload(payload)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	n, err := s.ctrl.RestoreLayout(p.Name)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Restore failed: %v", err))
	}
	resp, _ := NewOKResponse(RestoreData{Restored: n})
	return resp
}

func (s *Server) handleDeleteLayout(payload json.RawMessage) *Response {
	p, err := parseLayoutPayload(payload)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	removed, err := s.ctrl.DeleteLayout(p.Name)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Delete failed: %v", err))
	}
	if !removed {
		return NewErrorResponse(fmt.Sprintf("layout %q not found", p.Name))
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleRenameLayout(payload json.RawMessage) *Response {
	p, err := parseLayoutPayload(payload)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	if p.NewName == "" {
		return NewErrorResponse("new_name is required")
	}
	if err := s.ctrl.RenameLayout(p.Name, p.NewName); err != nil {
		return NewErrorResponse(fmt.Sprintf("Rename failed: %v", err))
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleListLayouts() *Response {
	layouts, err := s.ctrl.ListLayouts()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("List failed: %v", err))
	}
	data := LayoutsData{Layouts: make([]LayoutInfo, len(layouts))}
	for i, l := range layouts {
		data.Layouts[i] = layoutInfo(l)
	}
	resp, _ := NewOKResponse(data)
	return resp
}

func (s *Server) handleApplyPreset(payload json.RawMessage) *Response {
	var p PresetPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("invalid preset payload: %v", err))
	}
	if p.ID == "" {
		return NewErrorResponse("id is required")
	}
	if err := s.ctrl.ApplyPreset(p.ID); err != nil {
		return NewErrorResponse(fmt.Sprintf("Apply failed: %v", err))
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleListPresets() *Response {
	presets, err := s.ctrl.ListPresets()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("List failed: %v", err))
	}
	active := s.ctrl.ActivePreset()
	data := PresetsData{Presets: make([]PresetInfo, len(presets))}
	for i, p := range presets {
		data.Presets[i] = PresetInfo{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Dynamic:     p.Dynamic,
			Groups:      len(p.Groups),
			Active:      p.ID == active,
		}
	}
	resp, _ := NewOKResponse(data)
	return resp
}

func (s *Server) handleGetStatus() *Response {
	status, err := s.ctrl.Status()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Status failed: %v", err))
	}
	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) handleReload() *Response {
	if err := s.ctrl.Reload(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Reload failed: %v", err))
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) send(conn net.Conn, resp *Response) {
	data, err := resp.Marshal()
	if err != nil {
		s.log.Error("failed to marshal response", "err", err)
		return
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		s.log.Error("failed to send response", "err", err)
	}
}

func layoutInfo(l layout.SavedLayout) LayoutInfo {
	return LayoutInfo{
		Name:      l.Name,
		Icons:     len(l.Positions),
		CreatedAt: l.CreatedAt.Format(time.RFC3339),
	}
}
