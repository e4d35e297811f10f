// Package hexmcp exposes the abstract library surface of spec (s)6
// (load_text, reveal, solve_step, solve_complete, undo, redo, remaining,
// mistakes) as MCP tools over github.com/mark3labs/mcp-go, grounded on
// mcpxcel's internal/registry tool-registration shape: typed
// input/output structs, mcp.NewTool + mcp.NewTypedToolHandler, and a
// session registry keyed by an opaque handle (mcpxcel keys workbook
// handles the same way in internal/workbooks).
package hexmcp

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/tmc/langchaingo/llms"

	"github.com/hexsolve/hexsolve/pkg/codec"
	"github.com/hexsolve/hexsolve/pkg/hexcoord"
	"github.com/hexsolve/hexsolve/pkg/hexentity"
	"github.com/hexsolve/hexsolve/pkg/hexlog"
	"github.com/hexsolve/hexsolve/pkg/hexscene"
)

// Sessions tracks open scenes by an opaque handle, the way mcpxcel's
// workbooks.Manager tracks open workbooks by handle.
type Sessions struct {
	mu     sync.RWMutex
	scenes map[string]*hexscene.Scene
}

// NewSessions constructs an empty session table.
func NewSessions() *Sessions {
	return &Sessions{scenes: make(map[string]*hexscene.Scene)}
}

func (s *Sessions) put(sc *hexscene.Scene) string {
	id := uuid.New().String()
	s.mu.Lock()
	s.scenes[id] = sc
	s.mu.Unlock()
	return id
}

func (s *Sessions) get(handle string) (*hexscene.Scene, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.scenes[handle]
	return sc, ok
}

// ModelContextSize reports a tool-context-size hint for startup logging,
// the same single-function use mcpxcel's registry makes of
// llms.GetModelContextSize. No LLM calls are made anywhere in this
// package; the solver remains fully deterministic.
func ModelContextSize(modelName string) int {
	return llms.GetModelContextSize(modelName)
}

// --- Typed tool schemas ---

type loadTextInput struct {
	LevelText string `json:"level_text" jsonschema_description:"Full .hexcells level text to load"`
}

type loadTextOutput struct {
	Handle    string `json:"handle"`
	Remaining int    `json:"remaining"`
	Mistakes  int    `json:"mistakes"`
}

type revealInput struct {
	Handle string `json:"handle" jsonschema_description:"Scene handle returned by load_text"`
	X      int    `json:"x" jsonschema_description:"Cell x coordinate"`
	Y      int    `json:"y" jsonschema_description:"Cell y coordinate"`
	Expect string `json:"expect" jsonschema_description:"Expected kind: full or empty"`
}

type revealOutput struct {
	Outcome   string `json:"outcome"`
	Remaining int    `json:"remaining"`
	Mistakes  int    `json:"mistakes"`
}

type handleInput struct {
	Handle string `json:"handle" jsonschema_description:"Scene handle returned by load_text"`
}

type solveStepOutput struct {
	Forced    int  `json:"forced"`
	Remaining int  `json:"remaining"`
	Complete  bool `json:"complete"`
}

type undoRedoOutput struct {
	Applied bool `json:"applied"`
}

type saveTextInput struct {
	Handle  string `json:"handle" jsonschema_description:"Scene handle returned by load_text"`
	Display *bool  `json:"display,omitempty" jsonschema_description:"Emit current display state instead of the pristine level"`
}

type statusOutput struct {
	Remaining int  `json:"remaining"`
	Mistakes  int  `json:"mistakes"`
	Complete  bool `json:"complete"`
}

func kindFromString(s string) (hexentity.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full":
		return hexentity.KindFull, nil
	case "empty":
		return hexentity.KindEmpty, nil
	default:
		return 0, fmt.Errorf("expect must be 'full' or 'empty', got %q", s)
	}
}

// Register wires every tool onto srv, storing opened scenes in sessions.
func Register(srv *server.MCPServer, sessions *Sessions) {
	loadText := mcp.NewTool(
		"load_text",
		mcp.WithDescription("Parse level text into a scene and return a handle"),
		mcp.WithString("level_text", mcp.Required(), mcp.Description("Full .hexcells level text")),
		mcp.WithOutputSchema[loadTextOutput](),
	)
	srv.AddTool(loadText, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in loadTextInput) (*mcp.CallToolResult, error) {
		if strings.TrimSpace(in.LevelText) == "" {
			return mcp.NewToolResultError("VALIDATION: level_text is required"), nil
		}
		sc, err := hexscene.LoadText(in.LevelText)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("PARSE_FAILED: %v", err)), nil
		}
		handle := sessions.put(sc)
		hexlog.Info("hexmcp: loaded scene %s", handle)
		out := loadTextOutput{Handle: handle, Remaining: sc.Remaining(), Mistakes: sc.Mistakes()}
		return mcp.NewToolResultStructured(out, "scene loaded"), nil
	}))

	reveal := mcp.NewTool(
		"reveal",
		mcp.WithDescription("Reveal a cell, returning whether it matched the expected kind"),
		mcp.WithString("handle", mcp.Required(), mcp.Description("Scene handle")),
		mcp.WithNumber("x", mcp.Required(), mcp.Description("Cell x coordinate")),
		mcp.WithNumber("y", mcp.Required(), mcp.Description("Cell y coordinate")),
		mcp.WithString("expect", mcp.Required(), mcp.Description("Expected kind: full or empty")),
		mcp.WithOutputSchema[revealOutput](),
	)
	srv.AddTool(reveal, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in revealInput) (*mcp.CallToolResult, error) {
		sc, ok := sessions.get(in.Handle)
		if !ok {
			return mcp.NewToolResultError("INVALID_HANDLE: scene handle not found"), nil
		}
		kind, err := kindFromString(in.Expect)
		if err != nil {
			return mcp.NewToolResultError("VALIDATION: " + err.Error()), nil
		}
		outcome, err := sc.Reveal(hexcoord.Coordinate{X: in.X, Y: in.Y}, kind)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("REVEAL_FAILED: %v", err)), nil
		}
		label := "correct"
		if outcome == hexscene.Mistake {
			label = "mistake"
		}
		out := revealOutput{Outcome: label, Remaining: sc.Remaining(), Mistakes: sc.Mistakes()}
		return mcp.NewToolResultStructured(out, "cell revealed"), nil
	}))

	solveStep := mcp.NewTool(
		"solve_step",
		mcp.WithDescription("Run one pass of the simple arithmetic solver"),
		mcp.WithString("handle", mcp.Required(), mcp.Description("Scene handle")),
		mcp.WithOutputSchema[solveStepOutput](),
	)
	srv.AddTool(solveStep, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in handleInput) (*mcp.CallToolResult, error) {
		sc, ok := sessions.get(in.Handle)
		if !ok {
			return mcp.NewToolResultError("INVALID_HANDLE: scene handle not found"), nil
		}
		kinds := sc.SolveStep()
		out := solveStepOutput{Forced: len(kinds), Remaining: sc.Remaining(), Complete: sc.SolveComplete()}
		return mcp.NewToolResultStructured(out, "solve step complete"), nil
	}))

	undo := mcp.NewTool(
		"undo",
		mcp.WithDescription("Undo the scene's last edit"),
		mcp.WithString("handle", mcp.Required(), mcp.Description("Scene handle")),
		mcp.WithOutputSchema[undoRedoOutput](),
	)
	srv.AddTool(undo, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in handleInput) (*mcp.CallToolResult, error) {
		sc, ok := sessions.get(in.Handle)
		if !ok {
			return mcp.NewToolResultError("INVALID_HANDLE: scene handle not found"), nil
		}
		return mcp.NewToolResultStructured(undoRedoOutput{Applied: sc.Undo()}, "undo applied"), nil
	}))

	redo := mcp.NewTool(
		"redo",
		mcp.WithDescription("Redo the scene's most recently undone edit"),
		mcp.WithString("handle", mcp.Required(), mcp.Description("Scene handle")),
		mcp.WithOutputSchema[undoRedoOutput](),
	)
	srv.AddTool(redo, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in handleInput) (*mcp.CallToolResult, error) {
		sc, ok := sessions.get(in.Handle)
		if !ok {
			return mcp.NewToolResultError("INVALID_HANDLE: scene handle not found"), nil
		}
		return mcp.NewToolResultStructured(undoRedoOutput{Applied: sc.Redo()}, "redo applied"), nil
	}))

	status := mcp.NewTool(
		"status",
		mcp.WithDescription("Report remaining count, mistake count, and completion"),
		mcp.WithString("handle", mcp.Required(), mcp.Description("Scene handle")),
		mcp.WithOutputSchema[statusOutput](),
	)
	srv.AddTool(status, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in handleInput) (*mcp.CallToolResult, error) {
		sc, ok := sessions.get(in.Handle)
		if !ok {
			return mcp.NewToolResultError("INVALID_HANDLE: scene handle not found"), nil
		}
		out := statusOutput{Remaining: sc.Remaining(), Mistakes: sc.Mistakes(), Complete: sc.SolveComplete()}
		return mcp.NewToolResultStructured(out, "status"), nil
	}))

	saveText := mcp.NewTool(
		"save_text",
		mcp.WithDescription("Emit the scene's current state back to level text"),
		mcp.WithString("handle", mcp.Required(), mcp.Description("Scene handle")),
		mcp.WithBoolean("display", mcp.DefaultBool(true), mcp.Description("Emit current display state instead of the pristine level")),
	)
	srv.AddTool(saveText, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in saveTextInput) (*mcp.CallToolResult, error) {
		sc, ok := sessions.get(in.Handle)
		if !ok {
			return mcp.NewToolResultError("INVALID_HANDLE: scene handle not found"), nil
		}
		display := in.Display == nil || *in.Display
		text, _, err := sc.SaveText(codec.EncodeOptions{Padding: true, Display: display})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("ENCODE_FAILED: %v", err)), nil
		}
		return mcp.NewToolResultText(text), nil
	}))
}
