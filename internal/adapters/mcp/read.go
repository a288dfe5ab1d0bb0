package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"novella/internal/application"
	"novella/internal/application/commands"
	"novella/internal/domain"
)

// SessionSource resolves the reader session a tool call acts on
type SessionSource interface {
	Session(ctx context.Context, profile string) (*application.Session, error)
}

// Tools binds tool handlers to a session source and a default profile
type Tools struct {
	sessions       SessionSource
	defaultProfile string
}

// NewTools creates the tool set
func NewTools(sessions SessionSource, defaultProfile string) *Tools {
	return &Tools{sessions: sessions, defaultProfile: defaultProfile}
}

// RegisterReadTools adds all read-only reader tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, t *Tools) {
	s.AddTool(statusTool(), t.statusHandler)
	s.AddTool(episodesTool(), t.episodesHandler)
	s.AddTool(inventoryTool(), t.inventoryHandler)
	s.AddTool(bookmarksTool(), t.bookmarksHandler)
	s.AddTool(searchTool(), t.searchHandler)
}

func profileOption() mcp.ToolOption {
	return mcp.WithString("profile",
		mcp.Description("Reader profile name. Omit to use the configured profile."),
	)
}

// session resolves the profile argument
func (t *Tools) session(ctx context.Context, req mcp.CallToolRequest) (*application.Session, error) {
	return t.sessions.Session(ctx, req.GetString("profile", t.defaultProfile))
}

// --- status ---

func statusTool() mcp.Tool {
	return mcp.NewTool("status",
		mcp.WithDescription("Show the paragraph the reader is on: number, speaker, text and visible options."),
		profileOption(),
	)
}

func (t *Tools) statusHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, err := t.session(ctx, req)
	if err != nil {
		return toolError(err)
	}
	result, err := commands.NewStatusCommand(session).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(result.Message), nil
}

// --- episodes ---

func episodesTool() mcp.Tool {
	return mcp.NewTool("episodes",
		mcp.WithDescription("List episodes with reading progress and whether the reader may open them."),
		profileOption(),
	)
}

func (t *Tools) episodesHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, err := t.session(ctx, req)
	if err != nil {
		return toolError(err)
	}
	episodes, err := commands.NewListEpisodesCommand(session, false).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return formatEntities(episodes, formatEpisode)
}

func formatEpisode(e application.EpisodeSummary) string {
	var flags []string
	if e.Current {
		flags = append(flags, "current")
	}
	if !e.Accessible {
		flags = append(flags, "locked")
	}
	if e.GuestLocked {
		flags = append(flags, "members only")
	}
	line := fmt.Sprintf("%d  %s  %s  %d/%d read  ~%d min", e.Number, e.ID, e.Title, e.Read, e.Total, e.Minutes)
	if len(flags) > 0 {
		line += "  [" + strings.Join(flags, ", ") + "]"
	}
	return line
}

// --- inventory ---

func inventoryTool() mcp.Tool {
	return mcp.NewTool("inventory",
		mcp.WithDescription("List collected items, story items, met characters and active paths."),
		profileOption(),
	)
}

func (t *Tools) inventoryHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, err := t.session(ctx, req)
	if err != nil {
		return toolError(err)
	}
	inv, err := commands.NewInventoryCommand(session).Execute(ctx)
	if err != nil {
		return toolError(err)
	}

	var sb strings.Builder
	sb.WriteString("Collectibles:\n")
	for _, it := range inv.Collectibles {
		fmt.Fprintf(&sb, "  %s  %s\n", it.ID, it.Name)
	}
	sb.WriteString("Story items:\n")
	for _, it := range inv.StoryItems {
		fmt.Fprintf(&sb, "  %s  %s\n", it.ID, it.Name)
	}
	sb.WriteString("Characters:\n")
	for _, c := range inv.MetCharacters {
		fmt.Fprintf(&sb, "  %s  %s (%s)", c.ID, c.Name, c.EpisodeID)
		if c.Comment != "" {
			fmt.Fprintf(&sb, ": %s", c.Comment)
		}
		sb.WriteString("\n")
	}
	if inv.PathNames != "" {
		fmt.Fprintf(&sb, "Paths: %s\n", inv.PathNames)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// --- bookmarks ---

func bookmarksTool() mcp.Tool {
	return mcp.NewTool("bookmarks",
		mcp.WithDescription("List bookmarks in reading order."),
		profileOption(),
	)
}

func (t *Tools) bookmarksHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, err := t.session(ctx, req)
	if err != nil {
		return toolError(err)
	}
	entries, err := commands.NewListBookmarksCommand(session).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return formatEntities(entries, func(e commands.BookmarkEntry) string {
		return fmt.Sprintf("%s  %s  %s", e.ID, e.Number, e.Comment)
	})
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Fuzzy search the paragraphs the reader can reach."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
		profileOption(),
	)
}

func (t *Tools) searchHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return toolError(fmt.Errorf("query is required"))
	}
	session, err := t.session(ctx, req)
	if err != nil {
		return toolError(err)
	}

	results, err := commands.NewSearchCommand(session, query).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("No results found."), nil
	}

	var sb strings.Builder
	for _, r := range results {
		fmt.Fprintf(&sb, "%s  %s  %s\n", r.Number, r.EpisodeTitle, r.MatchedText)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// stepText returns the step summary followed by the paragraph now shown
func stepText(message string, v domain.View) (*mcp.CallToolResult, error) {
	if !v.Found {
		return mcp.NewToolResultText(message), nil
	}
	return mcp.NewToolResultText(message + "\n\n" + commands.RenderView(v)), nil
}
