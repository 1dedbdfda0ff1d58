package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driving"
	"github.com/lillianfidler/churchill-falls-assistant/internal/logger"
)

// Ensure ToolGateway implements the interface.
var _ driving.ToolGateway = (*ToolGateway)(nil)

// MaxSearchResults bounds the max_results argument of search_documents.
const MaxSearchResults = 20

// tool is a declared tool with its resolved schema and handler.
type tool struct {
	spec     domain.ToolSpec
	resolved *jsonschema.Resolved
	run      func(ctx context.Context, args map[string]any) (any, error)
}

// ToolGateway exposes the searchable partition as schema-checked tools.
type ToolGateway struct {
	store  *DocumentStore
	engine *SearchEngine
	tools  []tool
}

// NewToolGateway creates a gateway over the searchable partition of store.
func NewToolGateway(store *DocumentStore) (*ToolGateway, error) {
	g := &ToolGateway{
		store:  store,
		engine: NewSearchEngine(store.Partition(domain.PartitionSearchable)),
	}

	defs := []struct {
		name        string
		description string
		schema      *jsonschema.Schema
		run         func(ctx context.Context, args map[string]any) (any, error)
	}{
		{
			name: driving.ToolSearchDocuments,
			description: "Search the supplementary documents by keyword. Returns matching " +
				"documents ranked by relevance with short snippets of matching text.",
			schema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"query": {
						Type:        "string",
						Description: "Search keywords. Words of two characters or fewer are ignored.",
						MinLength:   ptr(1),
					},
					"max_results": {
						Type:        "integer",
						Description: "Maximum number of documents to return.",
						Default:     json.RawMessage("5"),
						Minimum:     ptr(1.0),
						Maximum:     ptr(float64(MaxSearchResults)),
					},
				},
				Required: []string{"query"},
			},
			run: g.runSearch,
		},
		{
			name:        driving.ToolGetDocument,
			description: "Retrieve the full text of a supplementary document by its filename.",
			schema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"filename": {
						Type:        "string",
						Description: "Exact filename as returned by search_documents or list_documents.",
						MinLength:   ptr(1),
					},
				},
				Required: []string{"filename"},
			},
			run: g.runGet,
		},
		{
			name:        driving.ToolListDocuments,
			description: "List all supplementary documents with their sizes.",
			schema: &jsonschema.Schema{
				Type:       "object",
				Properties: map[string]*jsonschema.Schema{},
			},
			run: g.runList,
		},
	}

	for _, d := range defs {
		resolved, err := d.schema.Resolve(nil)
		if err != nil {
			return nil, fmt.Errorf("resolving %s schema: %w", d.name, err)
		}
		raw, err := json.Marshal(d.schema)
		if err != nil {
			return nil, fmt.Errorf("encoding %s schema: %w", d.name, err)
		}
		g.tools = append(g.tools, tool{
			spec:     domain.ToolSpec{Name: d.name, Description: d.description, InputSchema: raw},
			resolved: resolved,
			run:      d.run,
		})
	}

	return g, nil
}

// Specs returns the declared tools in a stable order.
func (g *ToolGateway) Specs() []domain.ToolSpec {
	specs := make([]domain.ToolSpec, len(g.tools))
	for i, t := range g.tools {
		specs[i] = t.spec
	}
	return specs
}

// Call validates the arguments against the declared schema and executes the
// tool. Every failure becomes an error-flagged result.
func (g *ToolGateway) Call(ctx context.Context, call domain.ToolCall) domain.ToolResult {
	out, err := g.call(ctx, call)
	if err != nil {
		logger.Debug("Tool %s (%s) failed: %v", call.Name, call.ID, err)
		return domain.ToolResult{CallID: call.ID, Content: "Error: " + err.Error(), IsError: true}
	}
	logger.Debug("Tool %s (%s) returned %d bytes", call.Name, call.ID, len(out))
	return domain.ToolResult{CallID: call.ID, Content: out}
}

func (g *ToolGateway) call(ctx context.Context, call domain.ToolCall) (string, error) {
	t, ok := g.lookup(call.Name)
	if !ok {
		return "", &domain.ToolError{
			Tool:    call.Name,
			Kind:    domain.ToolErrorUnknownTool,
			Message: fmt.Sprintf("no tool named %q; available tools are %s, %s and %s", call.Name,
				driving.ToolSearchDocuments, driving.ToolGetDocument, driving.ToolListDocuments),
		}
	}

	args, err := decodeArgs(call.Input)
	if err != nil {
		return "", &domain.ToolError{Tool: call.Name, Kind: domain.ToolErrorInvalidInput, Message: err.Error()}
	}
	if err := t.resolved.Validate(args); err != nil {
		return "", &domain.ToolError{Tool: call.Name, Kind: domain.ToolErrorInvalidInput, Message: err.Error()}
	}

	result, err := t.run(ctx, args)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding %s result: %w", call.Name, err)
	}
	return string(data), nil
}

func (g *ToolGateway) lookup(name string) (tool, bool) {
	for _, t := range g.tools {
		if t.spec.Name == name {
			return t, true
		}
	}
	return tool{}, false
}

// SearchDocuments runs a keyword search over the searchable partition.
func (g *ToolGateway) SearchDocuments(ctx context.Context, query string, maxResults int) ([]domain.SearchResult, error) {
	if maxResults > MaxSearchResults {
		maxResults = MaxSearchResults
	}
	return g.engine.Search(ctx, query, maxResults)
}

// GetDocument returns a searchable document by filename.
func (g *ToolGateway) GetDocument(ctx context.Context, filename string) (*driving.DocumentContent, error) {
	if !g.store.InPartition(filename, domain.PartitionSearchable) {
		return nil, &domain.ToolError{
			Tool:    driving.ToolGetDocument,
			Kind:    domain.ToolErrorNotFound,
			Message: fmt.Sprintf("document %q not found in supplementary documents", filename),
		}
	}
	doc, err := g.store.Get(ctx, filename)
	if err != nil {
		return nil, err
	}
	return &driving.DocumentContent{Filename: doc.Name, Content: doc.Content, SizeBytes: doc.SizeBytes}, nil
}

// ListDocuments lists the searchable partition in catalog order.
func (g *ToolGateway) ListDocuments(ctx context.Context) []domain.DocumentInfo {
	return g.store.ListPartition(ctx, domain.PartitionSearchable)
}

func (g *ToolGateway) runSearch(ctx context.Context, args map[string]any) (any, error) {
	query, _ := args["query"].(string)
	maxResults := domain.DefaultMaxResults
	if v, ok := args["max_results"].(float64); ok {
		maxResults = int(v)
	}
	return g.SearchDocuments(ctx, query, maxResults)
}

func (g *ToolGateway) runGet(ctx context.Context, args map[string]any) (any, error) {
	filename, _ := args["filename"].(string)
	return g.GetDocument(ctx, filename)
}

func (g *ToolGateway) runList(ctx context.Context, _ map[string]any) (any, error) {
	return g.ListDocuments(ctx), nil
}

// decodeArgs parses raw tool arguments into a JSON object. Empty input is
// treated as an empty object.
func decodeArgs(raw json.RawMessage) (map[string]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

func ptr[T any](v T) *T {
	return &v
}
