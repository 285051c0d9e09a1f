package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/aretw0/meihua"
	"github.com/aretw0/meihua/internal/presentation/report"
	"github.com/aretw0/meihua/pkg/domain"
	"github.com/aretw0/meihua/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

const trigramsURI = "meihua://trigrams"

// CastResponse is the structured result of the casting tools.
type CastResponse struct {
	Reading *domain.Reading `json:"reading" jsonschema_description:"The derived reading: casting, hexagrams and search hint"`
	Report  string          `json:"report" jsonschema_description:"The reading rendered as a plain-text report"`
}

// HexagramResponse is the structured result of hexagram_name.
type HexagramResponse struct {
	Name   string              `json:"name" jsonschema_description:"Traditional name of the hexagram"`
	Bits   domain.Hexagram     `json:"bits" jsonschema_description:"Six-bit line vector, bit 0 is the bottom line"`
	Mutual domain.HexagramView `json:"mutual" jsonschema_description:"The mutual hexagram"`
}

// RelationResponse is the structured result of element_relation.
type RelationResponse struct {
	Relation  domain.Relation `json:"relation" jsonschema_description:"Relation key"`
	Text      string          `json:"text" jsonschema_description:"Traditional reading of the relation"`
	Favorable bool            `json:"favorable" jsonschema_description:"Whether the relation points toward an easy retrieval"`
}

// Engine defines the interface required by the MCP server.
type Engine interface {
	CastThree(ctx context.Context, n1, n2, n3 int) (*domain.Reading, error)
	CastCalendar(ctx context.Context, yearBranch domain.Branch, month, day int, hourBranch domain.Branch) (*domain.Reading, error)
	Reading(ctx context.Context, id string) (*domain.Reading, error)
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. A nil logger discards logs.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("meihua-mcp", strings.TrimSpace(meihua.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: cast_three
	s.mcpServer.AddTool(mcp.NewTool("cast_three",
		mcp.WithDescription("Cast a hexagram from three numbers: the first picks the upper trigram, the second the lower trigram, the third the moving line."),
		mcp.WithNumber("n1", mcp.Required(), mcp.Description("First number (upper trigram)")),
		mcp.WithNumber("n2", mcp.Required(), mcp.Description("Second number (lower trigram)")),
		mcp.WithNumber("n3", mcp.Required(), mcp.Description("Third number (moving line)")),
		mcp.WithOutputSchema[CastResponse](),
	), mcp.NewStructuredToolHandler(s.handleCastThree))

	// TOOL: cast_calendar
	s.mcpServer.AddTool(mcp.NewTool("cast_calendar",
		mcp.WithDescription("Cast a hexagram from the lunar year branch, lunar month, lunar day and hour branch."),
		mcp.WithString("year_branch", mcp.Required(), mcp.Description("Year branch: 子丑寅卯辰巳午未申酉戌亥 or 1..12")),
		mcp.WithNumber("month", mcp.Required(), mcp.Description("Lunar month")),
		mcp.WithNumber("day", mcp.Required(), mcp.Description("Lunar day")),
		mcp.WithString("hour_branch", mcp.Required(), mcp.Description("Hour branch: 子丑寅卯辰巳午未申酉戌亥 or 1..12")),
		mcp.WithOutputSchema[CastResponse](),
	), mcp.NewStructuredToolHandler(s.handleCastCalendar))

	// TOOL: hexagram_name
	s.mcpServer.AddTool(mcp.NewTool("hexagram_name",
		mcp.WithDescription("Name the hexagram formed by an upper and a lower trigram (1..8 in the order 乾兑离震巽坎艮坤) and give its mutual hexagram."),
		mcp.WithNumber("upper", mcp.Required(), mcp.Description("Upper trigram 1..8")),
		mcp.WithNumber("lower", mcp.Required(), mcp.Description("Lower trigram 1..8")),
		mcp.WithOutputSchema[HexagramResponse](),
	), mcp.NewStructuredToolHandler(s.handleHexagramName))

	// TOOL: element_relation
	s.mcpServer.AddTool(mcp.NewTool("element_relation",
		mcp.WithDescription("Classify the five-element relation between the body (seeker) and the use (object)."),
		mcp.WithString("body", mcp.Required(), mcp.Description("Body element: metal, wood, water, fire, earth or 金木水火土")),
		mcp.WithString("use", mcp.Required(), mcp.Description("Use element: metal, wood, water, fire, earth or 金木水火土")),
		mcp.WithOutputSchema[RelationResponse](),
	), mcp.NewStructuredToolHandler(s.handleElementRelation))

	// TOOL: get_reading
	s.mcpServer.AddTool(mcp.NewTool("get_reading",
		mcp.WithDescription("Fetch a previously cast reading by ID."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Reading ID")),
		mcp.WithOutputSchema[CastResponse](),
	), mcp.NewStructuredToolHandler(s.handleGetReading))
}

// Handler methods for structured tools

type threeArgs struct {
	N1 int `mapstructure:"n1"`
	N2 int `mapstructure:"n2"`
	N3 int `mapstructure:"n3"`
}

type calendarArgs struct {
	YearBranch domain.Branch `mapstructure:"year_branch"`
	Month      int           `mapstructure:"month"`
	Day        int           `mapstructure:"day"`
	HourBranch domain.Branch `mapstructure:"hour_branch"`
}

type pairArgs struct {
	Upper int `mapstructure:"upper"`
	Lower int `mapstructure:"lower"`
}

func (s *Server) handleCastThree(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (CastResponse, error) {
	var in threeArgs
	if err := bind(schema.ThreeNumbers, args, &in); err != nil {
		return CastResponse{}, err
	}
	r, err := s.engine.CastThree(ctx, in.N1, in.N2, in.N3)
	if err != nil {
		return CastResponse{}, fmt.Errorf("cast failed: %w", err)
	}
	s.logger.Debug("MCP cast_three", "id", r.ID, "main", r.Main.Name)
	return castResponse(r), nil
}

func (s *Server) handleCastCalendar(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (CastResponse, error) {
	var in calendarArgs
	if err := bind(schema.Calendar, args, &in); err != nil {
		return CastResponse{}, err
	}
	r, err := s.engine.CastCalendar(ctx, in.YearBranch, in.Month, in.Day, in.HourBranch)
	if err != nil {
		return CastResponse{}, fmt.Errorf("cast failed: %w", err)
	}
	s.logger.Debug("MCP cast_calendar", "id", r.ID, "main", r.Main.Name)
	return castResponse(r), nil
}

func (s *Server) handleHexagramName(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (HexagramResponse, error) {
	var in pairArgs
	if err := bind(schema.TrigramPair, args, &in); err != nil {
		return HexagramResponse{}, err
	}
	h, err := domain.Encode(domain.TrigramID(in.Upper), domain.TrigramID(in.Lower))
	if err != nil {
		return HexagramResponse{}, err
	}
	return HexagramResponse{
		Name:   h.Name(),
		Bits:   h,
		Mutual: h.Mutual().View(),
	}, nil
}

func (s *Server) handleElementRelation(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RelationResponse, error) {
	bodyStr, _ := args["body"].(string)
	useStr, _ := args["use"].(string)

	body, err := domain.ParseElement(bodyStr)
	if err != nil {
		return RelationResponse{}, err
	}
	use, err := domain.ParseElement(useStr)
	if err != nil {
		return RelationResponse{}, err
	}
	rel := domain.ElementRelation(body, use)
	return RelationResponse{Relation: rel, Text: rel.String(), Favorable: rel.Favorable()}, nil
}

func (s *Server) handleGetReading(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (CastResponse, error) {
	id, _ := args["id"].(string)
	r, err := s.engine.Reading(ctx, id)
	if err != nil {
		return CastResponse{}, fmt.Errorf("get reading %q: %w", id, err)
	}
	return castResponse(r), nil
}

func castResponse(r *domain.Reading) CastResponse {
	return CastResponse{Reading: r, Report: report.Text(r, report.Options{})}
}

var branchType = reflect.TypeOf(domain.Branch(0))

// bind validates args against shape and decodes them into out.
func bind(shape schema.Schema, args map[string]interface{}, out any) error {
	if err := schema.Validate(shape, args); err != nil {
		return err
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
			if to != branchType {
				return data, nil
			}
			return schema.AsBranch(data)
		},
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

func (s *Server) registerResources() {
	// EXPOSE: meihua://trigrams
	s.mcpServer.AddResource(mcp.NewResource(trigramsURI, "Trigram Catalog",
		mcp.WithResourceDescription("The eight trigrams with their element, direction, keywords and places."),
		mcp.WithMIMEType("application/json"),
	), s.readTrigrams)
}

func (s *Server) readTrigrams(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(domain.Trigrams())
	if err != nil {
		return nil, fmt.Errorf("failed to encode trigrams: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      trigramsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
