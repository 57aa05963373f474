package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/condoriano/internal/formatter"
	"github.com/desertthunder/condoriano/internal/models"
	"github.com/desertthunder/condoriano/internal/shared"
)

// ListSource enumerates stored lists. Implemented by repositories.ListRepository.
type ListSource interface {
	List(ctx context.Context, kind models.ListKind) ([]*models.ItemList, error)
}

// BulkExportOpts contains configuration for bulk list exports.
type BulkExportOpts struct {
	Format     formatter.Format // Export format: json, csv, markdown, txt
	OutputDir  string           // Base output directory (default: {kind}_export_{epoch})
	NumWorkers int              // Concurrent workers (default: 4, max: 10)
}

// ListExportResult is the outcome of writing one list.
type ListExportResult struct {
	Owner   string `json:"owner"`
	Items   int    `json:"items"`
	File    string `json:"file,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// BulkExportResult summarizes a bulk export and is written as the manifest.
type BulkExportResult struct {
	Kind              models.ListKind    `json:"kind"`
	Format            formatter.Format   `json:"format"`
	ExportedAt        time.Time          `json:"exported_at"`
	OutputDirectory   string             `json:"output_directory"`
	TotalLists        int                `json:"total_lists"`
	SuccessfulExports int                `json:"successful_exports"`
	FailedExports     int                `json:"failed_exports"`
	Results           []ListExportResult `json:"results"`
	ManifestPath      string             `json:"-"`
}

// Exporter writes stored lists to disk.
type Exporter struct {
	source ListSource
	logger *log.Logger
}

// NewExporter creates an Exporter reading from source.
func NewExporter(source ListSource, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Exporter{source: source, logger: logger}
}

// BulkExport exports every stored list of kind concurrently and writes a manifest.
//
// Individual write failures are recorded in the result and do not stop the export.
func (e *Exporter) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	kind models.ListKind,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if e.source == nil {
		return nil, fmt.Errorf("%w: list source not initialized", shared.ErrServiceUnavailable)
	}
	if opts.Format == "" {
		opts.Format = formatter.JSON
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("%s_export_%d", kind, time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}

	sendProgress(prog, fetchingListsUpdate(kind))
	all, err := e.source.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", kind.Plural(), err)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		Kind:            kind,
		Format:          opts.Format,
		ExportedAt:      time.Now().UTC(),
		OutputDirectory: opts.OutputDir,
		TotalLists:      len(all),
		Results:         make([]ListExportResult, 0, len(all)),
	}

	jobs := make(chan *models.ItemList, len(all))
	results := make(chan ListExportResult, len(all))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	for _, list := range all {
		jobs <- list
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		key := models.ListKey{Kind: kind, Owner: res.Owner}
		if res.Success {
			result.SuccessfulExports++
			sendProgress(prog, exportCompletedUpdate(completed, len(all), key, res.Items))
		} else {
			result.FailedExports++
			e.logger.Warn("list export failed", "key", key, "error", res.Error)
			sendProgress(prog, exportFailedUpdate(completed, len(all), key, fmt.Errorf("%s", res.Error)))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return result, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker writes lists from the jobs channel until it is drained or ctx ends.
func (e *Exporter) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan *models.ItemList,
	results chan<- ListExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for list := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}
		results <- exportSingleList(list, opts)
	}
}

func exportSingleList(list *models.ItemList, opts BulkExportOpts) ListExportResult {
	res := ListExportResult{Owner: list.Key.Owner, Items: list.Len()}

	path := filepath.Join(opts.OutputDir, formatter.DefaultFilename(list.Key, opts.Format))
	written, err := formatter.WriteExport(list, opts.Format, path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.File = written
	res.Success = true
	return res
}
