package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"novella/internal/application/commands"
)

// RegisterWriteTools adds the tools that move the reader or change the profile.
func RegisterWriteTools(s *server.MCPServer, t *Tools) {
	s.AddTool(navigateTool("next", "Advance to the next paragraph."), t.navigateHandler(commands.DirectionNext))
	s.AddTool(navigateTool("previous", "Go back to the previous paragraph in this episode."), t.navigateHandler(commands.DirectionPrevious))
	s.AddTool(navigateTool("sub_next", "Reveal the next beat of the current paragraph."), t.navigateHandler(commands.DirectionSubNext))
	s.AddTool(navigateTool("sub_previous", "Step back one beat in the current paragraph."), t.navigateHandler(commands.DirectionSubPrevious))
	s.AddTool(chooseTool(), t.chooseHandler)
	s.AddTool(jumpTool(), t.jumpHandler)
	s.AddTool(bookmarkAddTool(), t.bookmarkAddHandler)
	s.AddTool(bookmarkRemoveTool(), t.bookmarkRemoveHandler)
	s.AddTool(bookmarkOpenTool(), t.bookmarkOpenHandler)
	s.AddTool(characterNoteTool(), t.characterNoteHandler)
	s.AddTool(resetTool(), t.resetHandler)
}

// --- navigation ---

func navigateTool(name, description string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(description),
		profileOption(),
	)
}

func (t *Tools) navigateHandler(direction commands.Direction) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		session, err := t.session(ctx, req)
		if err != nil {
			return toolError(err)
		}
		result, err := commands.NewNavigateCommand(session, direction).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return stepText(result.Message, result.Step.View)
	}
}

// --- choose ---

func chooseTool() mcp.Tool {
	return mcp.NewTool("choose",
		mcp.WithDescription("Pick one of the visible options of the current choice."),
		mcp.WithString("option_id",
			mcp.Description("Option ID as listed by status"),
			mcp.Required(),
		),
		profileOption(),
	)
}

func (t *Tools) chooseHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, err := t.session(ctx, req)
	if err != nil {
		return toolError(err)
	}
	result, err := commands.NewChooseCommand(session, req.GetString("option_id", "")).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return stepText(result.Message, result.Step.View)
}

// --- jump ---

func jumpTool() mcp.Tool {
	return mcp.NewTool("jump",
		mcp.WithDescription("Start reading an episode from its first paragraph."),
		mcp.WithString("episode_id",
			mcp.Description("Episode ID as listed by episodes"),
			mcp.Required(),
		),
		profileOption(),
	)
}

func (t *Tools) jumpHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, err := t.session(ctx, req)
	if err != nil {
		return toolError(err)
	}
	result, err := commands.NewJumpToEpisodeCommand(session, req.GetString("episode_id", "")).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return stepText(result.Message, result.Step.View)
}

// --- bookmarks ---

func bookmarkAddTool() mcp.Tool {
	return mcp.NewTool("bookmark_add",
		mcp.WithDescription("Bookmark the current paragraph."),
		mcp.WithString("comment",
			mcp.Description("Note to keep with the bookmark"),
		),
		profileOption(),
	)
}

func (t *Tools) bookmarkAddHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, err := t.session(ctx, req)
	if err != nil {
		return toolError(err)
	}
	result, err := commands.NewAddBookmarkCommand(session, req.GetString("comment", "")).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(result.Message), nil
}

func bookmarkRemoveTool() mcp.Tool {
	return mcp.NewTool("bookmark_remove",
		mcp.WithDescription("Delete a bookmark."),
		mcp.WithString("id",
			mcp.Description("Bookmark ID as listed by bookmarks"),
			mcp.Required(),
		),
		profileOption(),
	)
}

func (t *Tools) bookmarkRemoveHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, err := t.session(ctx, req)
	if err != nil {
		return toolError(err)
	}
	result, err := commands.NewRemoveBookmarkCommand(session, req.GetString("id", "")).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(result.Message), nil
}

func bookmarkOpenTool() mcp.Tool {
	return mcp.NewTool("bookmark_open",
		mcp.WithDescription("Move the reader to a bookmark."),
		mcp.WithString("id",
			mcp.Description("Bookmark ID as listed by bookmarks"),
			mcp.Required(),
		),
		profileOption(),
	)
}

func (t *Tools) bookmarkOpenHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, err := t.session(ctx, req)
	if err != nil {
		return toolError(err)
	}
	result, err := commands.NewGoToBookmarkCommand(session, req.GetString("id", "")).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return stepText(result.Message, result.Step.View)
}

// --- characters ---

func characterNoteTool() mcp.Tool {
	return mcp.NewTool("character_note",
		mcp.WithDescription("Keep a note on a character the reader has met. An empty comment clears it."),
		mcp.WithString("id",
			mcp.Description("Character ID as listed by inventory"),
			mcp.Required(),
		),
		mcp.WithString("comment",
			mcp.Description("The note"),
		),
		profileOption(),
	)
}

func (t *Tools) characterNoteHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, err := t.session(ctx, req)
	if err != nil {
		return toolError(err)
	}
	result, err := commands.NewAnnotateCharacterCommand(session, req.GetString("id", ""), req.GetString("comment", "")).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(result.Message), nil
}

// --- reset ---

func resetTool() mcp.Tool {
	return mcp.NewTool("reset",
		mcp.WithDescription("Start the profile over from the first paragraph. Progress, paths and items are lost."),
		mcp.WithBoolean("confirm",
			mcp.Description("Must be true"),
			mcp.Required(),
		),
		profileOption(),
	)
}

func (t *Tools) resetHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !req.GetBool("confirm", false) {
		return toolError(fmt.Errorf("reset requires confirm=true"))
	}
	session, err := t.session(ctx, req)
	if err != nil {
		return toolError(err)
	}
	result, err := commands.NewResetProfileCommand(session).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(result.Message), nil
}
