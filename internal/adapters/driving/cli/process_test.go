package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driving"
)

type stubProcessor struct {
	outcomes map[string]domain.FileOutcome
	calls    []string
	settings domain.Settings
}

func (s *stubProcessor) ProcessFile(_ context.Context, path string, settings domain.Settings) (domain.FileOutcome, error) {
	s.calls = append(s.calls, path)
	s.settings = settings
	if o, ok := s.outcomes[filepath.Base(path)]; ok {
		o.Path = path
		return o, o.Err
	}
	return domain.FileOutcome{Path: path, Status: domain.StatusRenamed, NewPath: path, Confidence: 0.9, ModelUsed: "sonnet"}, nil
}

var _ driving.ProcessorService = (*stubProcessor)(nil)

type stubSplitter struct {
	pages    []domain.PageRecord
	segments []domain.DocumentSegment
	split    []string
}

func (s *stubSplitter) Analyze(_ context.Context, _ string, _ domain.Settings) ([]domain.PageRecord, []domain.DocumentSegment, error) {
	return s.pages, s.segments, nil
}

func (s *stubSplitter) Split(_ string, _ []domain.DocumentSegment) ([]string, error) {
	return s.split, nil
}

var _ driving.SplitService = (*stubSplitter)(nil)

// resetProcessFlags restores flag defaults; values persist between
// Execute calls otherwise.
func resetProcessFlags() {
	processRecursive = false
	processModel = "sonnet"
	processSpeed = "balanced"
	processDryRun = false
	processForce = false
	processNoPatterns = false
	processSplit = false
	processWatch = false
}

func withProcessor(t *testing.T, p driving.ProcessorService, s driving.SplitService) {
	t.Helper()
	originalProcessor := processorService
	originalSplitter := splitService
	processorService = p
	splitService = s
	t.Cleanup(func() {
		processorService = originalProcessor
		splitService = originalSplitter
	})
	resetProcessFlags()
}

func TestProcessCmd_RenamesAll(t *testing.T) {
	dir := t.TempDir()
	touchFile(t, filepath.Join(dir, "a.pdf"))
	touchFile(t, filepath.Join(dir, "b.pdf"))
	stub := &stubProcessor{}
	withProcessor(t, stub, nil)

	out, err := runCommand(t, "process", dir)

	require.NoError(t, err)
	assert.Len(t, stub.calls, 2)
	assert.Contains(t, out, "Found 2 PDF(s) to process")
	assert.Contains(t, out, "Processed: 2")
	assert.Contains(t, out, "Failed: 0")
}

func TestProcessCmd_DryRun(t *testing.T) {
	dir := t.TempDir()
	touchFile(t, filepath.Join(dir, "a.pdf"))
	stub := &stubProcessor{outcomes: map[string]domain.FileOutcome{
		"a.pdf": {Status: domain.StatusDryRun, NewPath: "2026-01-01_Test.pdf", ModelUsed: "sonnet", Confidence: 0.8},
	}}
	withProcessor(t, stub, nil)

	out, err := runCommand(t, "process", dir, "--dry-run")

	require.NoError(t, err)
	assert.True(t, stub.settings.DryRun)
	assert.Contains(t, out, "[DRY RUN MODE - No files will be renamed]")
	assert.Contains(t, out, "[DRY RUN] a.pdf -> 2026-01-01_Test.pdf")
}

func TestProcessCmd_FailureSetsExitError(t *testing.T) {
	dir := t.TempDir()
	touchFile(t, filepath.Join(dir, "bad.pdf"))
	stub := &stubProcessor{outcomes: map[string]domain.FileOutcome{
		"bad.pdf": {Status: domain.StatusFailed, Err: domain.ErrExtractionFailed},
	}}
	withProcessor(t, stub, nil)

	out, err := runCommand(t, "process", dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 file(s) failed")
	assert.Contains(t, out, "Failed: 1")
}

func TestProcessCmd_SkipsCounted(t *testing.T) {
	dir := t.TempDir()
	touchFile(t, filepath.Join(dir, "done.pdf"))
	stub := &stubProcessor{outcomes: map[string]domain.FileOutcome{
		"done.pdf": {Status: domain.StatusSkippedProcessed, NewPath: "2025-12-01_Done.pdf"},
	}}
	withProcessor(t, stub, nil)

	out, err := runCommand(t, "process", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "already processed")
	assert.Contains(t, out, "Skipped: 1")
}

func TestProcessCmd_NoPDFs(t *testing.T) {
	dir := t.TempDir()
	withProcessor(t, &stubProcessor{}, nil)

	out, err := runCommand(t, "process", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "No PDF files found")
}

func TestProcessCmd_SplitDryRunReportsOnly(t *testing.T) {
	dir := t.TempDir()
	touchFile(t, filepath.Join(dir, "multi.pdf"))
	splitter := &stubSplitter{
		pages: []domain.PageRecord{{PageIndex: 0}, {PageIndex: 1}, {PageIndex: 2}},
		segments: []domain.DocumentSegment{
			{StartPage: 0, EndPage: 0},
			{StartPage: 1, EndPage: 2},
		},
	}
	stub := &stubProcessor{}
	withProcessor(t, stub, splitter)

	out, err := runCommand(t, "process", dir, "--split", "--dry-run")

	require.NoError(t, err)
	assert.Contains(t, out, "contains 2 documents")
	assert.Contains(t, out, "[DRY RUN] Would split into separate files")
	// The original file is still processed whole.
	assert.Len(t, stub.calls, 1)
}

func TestProcessCmd_SplitSkipChoice(t *testing.T) {
	dir := t.TempDir()
	touchFile(t, filepath.Join(dir, "multi.pdf"))
	splitter := &stubSplitter{
		pages: []domain.PageRecord{{PageIndex: 0}, {PageIndex: 1}},
		segments: []domain.DocumentSegment{
			{StartPage: 0, EndPage: 0},
			{StartPage: 1, EndPage: 1},
		},
	}
	stub := &stubProcessor{}
	withProcessor(t, stub, splitter)

	rootCmd.SetIn(strings.NewReader("S\n"))
	defer rootCmd.SetIn(nil)

	out, err := runCommand(t, "process", dir, "--split")

	require.NoError(t, err)
	assert.Contains(t, out, "[Y] Yes, split as shown")
	assert.Contains(t, out, "Skipping: multi.pdf")
	assert.Empty(t, stub.calls)
	assert.Contains(t, out, "Skipped: 1")
}
