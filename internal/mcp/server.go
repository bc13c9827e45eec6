// Package mcp exposes the report pipeline over the Model Context
// Protocol: agents can run a build, extract the embeddable lab-data
// fragments, synthesize the error-path document and read build history
// without shelling out to the CLI.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"beacon/internal/audit"
	"beacon/internal/errorpath"
	"beacon/internal/labdata"
	"beacon/internal/locale"
	"beacon/internal/render"
	"beacon/internal/report"
	"beacon/internal/store"
	"beacon/internal/variants"
)

// Server wraps the MCP SDK server around the pipeline.
type Server struct {
	MCPServer *sdkmcp.Server

	mu sync.Mutex
	st store.Store
}

// NewServer creates an MCP server recording build history in st. A nil
// st means history is kept in memory for the lifetime of the process.
func NewServer(st store.Store) *Server {
	if st == nil {
		st = store.NewMemStore()
	}
	s := &Server{st: st}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "beacon", Version: "dev"},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "run_build",
		Description: "Run the report pipeline: expand a base Result into the locale/flavor matrix and write every rendering under the dist dir.",
	}, s.handleRunBuild)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "extract_lab_data",
		Description: "Extract the embeddable lab-data fragments (performance category, score gauge, score scale, final screenshot) from a Result.",
	}, s.handleExtractLabData)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "build_error_report",
		Description: "Synthesize the error-path Result: a failed page load scored through the audit engine with illustrative warning overrides.",
	}, s.handleBuildErrorReport)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "list_builds",
		Description: "List recorded builds, newest first.",
	}, s.handleListBuilds)
}

// --- Tool input/output types ---

type runBuildInput struct {
	BaseResultPath string   `json:"base_result_path,omitempty" jsonschema:"path of the base Result JSON; empty uses the built-in sample document"`
	DistDir        string   `json:"dist_dir" jsonschema:"output root for the rendered matrix"`
	Locales        []string `json:"locales,omitempty" jsonschema:"locale tags to expand (default es, ja, ar)"`
}

type runBuildOutput struct {
	BuildID   int64    `json:"build_id"`
	FileCount int      `json:"file_count"`
	Paths     []string `json:"paths"`
}

type extractLabDataInput struct {
	ResultPath string `json:"result_path,omitempty" jsonschema:"path of the Result JSON; empty uses the built-in sample document"`
}

type extractLabDataOutput struct {
	HostHTML        string `json:"host_html"`
	ScoreGaugeHTML  string `json:"score_gauge_html"`
	CategoryHTML    string `json:"category_html"`
	ScoreScaleHTML  string `json:"score_scale_html"`
	FinalScreenshot string `json:"final_screenshot"`
}

type buildErrorReportInput struct{}

type buildErrorReportOutput struct {
	ResultJSON string `json:"result_json"`
}

type listBuildsInput struct{}

type buildRecord struct {
	ID         int64  `json:"id"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
	BaseURL    string `json:"base_url"`
	DistDir    string `json:"dist_dir"`
	FileCount  int    `json:"file_count"`
}

type listBuildsOutput struct {
	Builds []buildRecord `json:"builds"`
	Total  int           `json:"total"`
}

// --- Tool handlers ---

func loadBase(path string) (*report.Result, error) {
	if path == "" {
		return report.Sample(), nil
	}
	return report.Load(path)
}

func (s *Server) handleRunBuild(ctx context.Context, _ *sdkmcp.CallToolRequest, input runBuildInput) (*sdkmcp.CallToolResult, runBuildOutput, error) {
	if input.DistDir == "" {
		return nil, runBuildOutput{}, fmt.Errorf("dist_dir is required")
	}
	base, err := loadBase(input.BaseResultPath)
	if err != nil {
		return nil, runBuildOutput{}, fmt.Errorf("run_build: %w", err)
	}

	o := variants.New(render.New(), locale.CatalogTranslator{}, audit.NewEngine(), input.DistDir)
	if len(input.Locales) > 0 {
		o.Locales = input.Locales
	}
	written, err := o.Run(ctx, base)
	if err != nil {
		return nil, runBuildOutput{}, fmt.Errorf("run_build: %w", err)
	}

	outputs := make([]store.Output, 0, len(written))
	paths := make([]string, 0, len(written))
	for _, w := range written {
		outputs = append(outputs, store.Output{
			Name: w.Name, Flavor: string(w.Flavor), Path: w.Path, Bytes: w.Bytes,
		})
		paths = append(paths, w.Path)
	}

	s.mu.Lock()
	buildID, err := s.st.RecordBuild(&store.Build{
		BaseURL: base.RequestedURL,
		DistDir: input.DistDir,
	}, outputs)
	s.mu.Unlock()
	if err != nil {
		return nil, runBuildOutput{}, fmt.Errorf("run_build: record history: %w", err)
	}

	return nil, runBuildOutput{
		BuildID:   buildID,
		FileCount: len(written),
		Paths:     paths,
	}, nil
}

func (s *Server) handleExtractLabData(_ context.Context, _ *sdkmcp.CallToolRequest, input extractLabDataInput) (*sdkmcp.CallToolResult, extractLabDataOutput, error) {
	r, err := loadBase(input.ResultPath)
	if err != nil {
		return nil, extractLabDataOutput{}, fmt.Errorf("extract_lab_data: %w", err)
	}

	bundle, err := labdata.Prepare(r, render.New())
	if err != nil {
		return nil, extractLabDataOutput{}, fmt.Errorf("extract_lab_data: %w", err)
	}
	host := labdata.NewHost()
	if err := bundle.Install(host); err != nil {
		return nil, extractLabDataOutput{}, fmt.Errorf("extract_lab_data: install: %w", err)
	}

	out := extractLabDataOutput{FinalScreenshot: bundle.FinalScreenshot}
	if out.HostHTML, err = labdata.RenderFragment(host); err != nil {
		return nil, extractLabDataOutput{}, fmt.Errorf("extract_lab_data: %w", err)
	}
	if out.ScoreGaugeHTML, err = labdata.RenderFragment(bundle.ScoreGauge); err != nil {
		return nil, extractLabDataOutput{}, fmt.Errorf("extract_lab_data: %w", err)
	}
	if out.CategoryHTML, err = labdata.RenderFragment(bundle.PerformanceCategory); err != nil {
		return nil, extractLabDataOutput{}, fmt.Errorf("extract_lab_data: %w", err)
	}
	if out.ScoreScaleHTML, err = labdata.RenderFragment(bundle.ScoreScale); err != nil {
		return nil, extractLabDataOutput{}, fmt.Errorf("extract_lab_data: %w", err)
	}
	return nil, out, nil
}

func (s *Server) handleBuildErrorReport(ctx context.Context, _ *sdkmcp.CallToolRequest, _ buildErrorReportInput) (*sdkmcp.CallToolResult, buildErrorReportOutput, error) {
	r, err := errorpath.Build(ctx, audit.NewEngine())
	if err != nil {
		return nil, buildErrorReportOutput{}, fmt.Errorf("build_error_report: %w", err)
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, buildErrorReportOutput{}, fmt.Errorf("build_error_report: encode: %w", err)
	}
	return nil, buildErrorReportOutput{ResultJSON: string(data)}, nil
}

func (s *Server) handleListBuilds(_ context.Context, _ *sdkmcp.CallToolRequest, _ listBuildsInput) (*sdkmcp.CallToolResult, listBuildsOutput, error) {
	s.mu.Lock()
	builds, err := s.st.ListBuilds()
	s.mu.Unlock()
	if err != nil {
		return nil, listBuildsOutput{}, fmt.Errorf("list_builds: %w", err)
	}
	out := listBuildsOutput{Total: len(builds)}
	for _, b := range builds {
		out.Builds = append(out.Builds, buildRecord{
			ID: b.ID, StartedAt: b.StartedAt, FinishedAt: b.FinishedAt,
			BaseURL: b.BaseURL, DistDir: b.DistDir, FileCount: b.FileCount,
		})
	}
	return nil, out, nil
}
