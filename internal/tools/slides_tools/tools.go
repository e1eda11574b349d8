package slides_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/workspace-mcp/internal/server"
	"github.com/teemow/workspace-mcp/internal/slides"
	"github.com/teemow/workspace-mcp/internal/tools/common"
)

// slidesClient resolves the account argument and returns a Slides client
// for it. The third return value is a non-nil tool result when resolution
// or authorization failed.
func slidesClient(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) (*slides.Client, string, *mcp.CallToolResult) {
	account := common.GetAccountFromArgs(args, sc.DefaultAccount())
	if account == "" {
		return nil, "", common.MissingAccountResult()
	}
	client, err := sc.SlidesClientForAccount(ctx, account)
	if err != nil {
		return nil, account, common.AuthErrorResult(account, err)
	}
	return client, account, nil
}

// RegisterSlidesTools registers all Slides tools with the MCP server.
// Presentation creation and adding slides require write mode.
func RegisterSlidesTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	getPresentationTool := mcp.NewTool("slides_get_presentation",
		mcp.WithDescription("Get the slides of a Google Slides presentation with their text content"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("presentationId",
			mcp.Required(),
			mcp.Description("The ID of the presentation"),
		),
	)

	s.AddTool(getPresentationTool, common.InstrumentedToolHandlerWithService(
		"slides_get_presentation", "slides", "get_presentation", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetPresentation(ctx, request, sc)
		}))

	getPageTextTool := mcp.NewTool("slides_get_page_text",
		mcp.WithDescription("Get the text content of a single slide"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("presentationId",
			mcp.Required(),
			mcp.Description("The ID of the presentation"),
		),
		mcp.WithString("pageObjectId",
			mcp.Required(),
			mcp.Description("The object ID of the slide, as reported by slides_get_presentation"),
		),
	)

	s.AddTool(getPageTextTool, common.InstrumentedToolHandlerWithService(
		"slides_get_page_text", "slides", "get_page_text", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetPageText(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	createPresentationTool := mcp.NewTool("slides_create_presentation",
		mcp.WithDescription("Create a Google Slides presentation"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Presentation title"),
		),
	)

	s.AddTool(createPresentationTool, common.InstrumentedToolHandlerWithService(
		"slides_create_presentation", "slides", "create_presentation", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreatePresentation(ctx, request, sc)
		}))

	addSlideTool := mcp.NewTool("slides_add_slide",
		mcp.WithDescription("Append a slide to a Google Slides presentation"),
		mcp.WithString("account",
			mcp.Description("Account email address. Defaults to the server's default account."),
		),
		mcp.WithString("presentationId",
			mcp.Required(),
			mcp.Description("The ID of the presentation"),
		),
		mcp.WithString("layout",
			mcp.Description("Predefined layout, e.g. 'TITLE_AND_BODY' (default), 'TITLE_ONLY', 'BLANK', 'SECTION_HEADER'"),
		),
	)

	s.AddTool(addSlideTool, common.InstrumentedToolHandlerWithService(
		"slides_add_slide", "slides", "add_slide", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAddSlide(ctx, request, sc)
		}))

	return nil
}

func handleGetPresentation(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	presentationID, ok := args["presentationId"].(string)
	if !ok || presentationID == "" {
		return mcp.NewToolResultError("presentationId is required"), nil
	}

	client, _, errResult := slidesClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	summary, err := client.GetPresentation(presentationID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get presentation: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (id: %s, %d slides)\n", summary.Title, summary.ID, len(summary.Slides))
	for _, slide := range summary.Slides {
		fmt.Fprintf(&sb, "\nSlide %d (objectId: %s):\n", slide.Index, slide.ObjectID)
		if slide.Text == "" {
			sb.WriteString("  (no text)\n")
			continue
		}
		for _, line := range strings.Split(strings.TrimRight(slide.Text, "\n"), "\n") {
			fmt.Fprintf(&sb, "  %s\n", line)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func handleGetPageText(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	presentationID, ok := args["presentationId"].(string)
	if !ok || presentationID == "" {
		return mcp.NewToolResultError("presentationId is required"), nil
	}
	pageObjectID, ok := args["pageObjectId"].(string)
	if !ok || pageObjectID == "" {
		return mcp.NewToolResultError("pageObjectId is required"), nil
	}

	client, _, errResult := slidesClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	text, err := client.GetPageText(presentationID, pageObjectID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get page text: %v", err)), nil
	}
	if text == "" {
		return mcp.NewToolResultText("Slide has no text."), nil
	}
	return mcp.NewToolResultText(text), nil
}

func handleCreatePresentation(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	title, ok := args["title"].(string)
	if !ok || title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}

	client, _, errResult := slidesClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	summary, err := client.CreatePresentation(title)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create presentation: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Presentation created: %s (id: %s)", summary.Title, summary.ID)), nil
}

func handleAddSlide(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	presentationID, ok := args["presentationId"].(string)
	if !ok || presentationID == "" {
		return mcp.NewToolResultError("presentationId is required"), nil
	}
	layout := ""
	if v, ok := args["layout"].(string); ok {
		layout = v
	}

	client, _, errResult := slidesClient(ctx, sc, args)
	if errResult != nil {
		return errResult, nil
	}

	objectID, err := client.AddSlide(presentationID, layout)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to add slide: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Slide added (objectId: %s)", objectID)), nil
}
