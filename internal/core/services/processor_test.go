package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanhound/scanhound-cli/internal/adapters/driven/storage/memory"
	"github.com/scanhound/scanhound-cli/internal/core/domain"
)

type processorFixture struct {
	processor *Processor
	learning  *LearningEngine
	ledger    *Ledger
	oracle    *fakeOracle
	reader    *fakeReader
}

func newProcessorFixture(t *testing.T, pageText string) *processorFixture {
	t.Helper()
	oracle := &fakeOracle{replies: []string{
		`{"date": "2026-03-15", "description": "Electric_Bill", "confidence": 0.9, "reasoning": "utility header"}`,
	}}
	reader := &fakeReader{pages: []string{pageText}}
	learning := NewLearningEngine(memory.NewPatternStore(), memory.NewCorrectionStore())
	ledger := NewLedger(memory.NewLedgerStore())
	namer := NewNamer(oracle, nil)
	processor := NewProcessor(NewTextExtractor(reader, &fakeOCR{}), learning, ledger, namer)
	processor.SetClock(func() time.Time {
		return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	})
	return &processorFixture{
		processor: processor,
		learning:  learning,
		ledger:    ledger,
		oracle:    oracle,
		reader:    reader,
	}
}

func writeScan(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("pdf"), 0o644))
	return path
}

func TestProcessFile_OraclePathRenames(t *testing.T) {
	dir := t.TempDir()
	src := writeScan(t, dir, "scan_0001.pdf")
	f := newProcessorFixture(t, longText)

	outcome, err := f.processor.ProcessFile(context.Background(), src, domain.DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, domain.StatusRenamed, outcome.Status)
	assert.Equal(t, filepath.Join(dir, "2026-03-15_Electric_Bill.pdf"), outcome.NewPath)
	assert.NoFileExists(t, src)
	assert.FileExists(t, outcome.NewPath)

	// Recorded and learned.
	assert.Len(t, f.ledger.FindByOriginalName("scan_0001.pdf"), 1)
	assert.Len(t, f.learning.Patterns(), 1)
}

func TestProcessFile_DryRunHasNoSideEffects(t *testing.T) {
	dir := t.TempDir()
	src := writeScan(t, dir, "scan_0001.pdf")
	f := newProcessorFixture(t, longText)

	settings := domain.DefaultSettings()
	settings.DryRun = true

	outcome, err := f.processor.ProcessFile(context.Background(), src, settings)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusDryRun, outcome.Status)
	assert.Equal(t, filepath.Join(dir, "2026-03-15_Electric_Bill.pdf"), outcome.NewPath)
	assert.FileExists(t, src)
	assert.Empty(t, f.ledger.Entries(0))
	assert.Empty(t, f.learning.Patterns())
}

func TestProcessFile_AlreadyProcessedSkipped(t *testing.T) {
	dir := t.TempDir()
	src := writeScan(t, dir, "scan_0001.pdf")
	f := newProcessorFixture(t, longText)
	_, err := f.ledger.AddEntry(src, filepath.Join(dir, "named.pdf"), "sonnet", 0.9, "h", domain.MethodText, "", "")
	require.NoError(t, err)

	outcome, err := f.processor.ProcessFile(context.Background(), src, domain.DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, domain.StatusSkippedProcessed, outcome.Status)
	assert.FileExists(t, src)
	assert.Empty(t, f.oracle.prompts)
}

func TestProcessFile_ForceReprocesses(t *testing.T) {
	dir := t.TempDir()
	src := writeScan(t, dir, "scan_0001.pdf")
	f := newProcessorFixture(t, longText)
	_, err := f.ledger.AddEntry(src, filepath.Join(dir, "named.pdf"), "sonnet", 0.9, "h", domain.MethodText, "", "")
	require.NoError(t, err)

	settings := domain.DefaultSettings()
	settings.Force = true

	outcome, err := f.processor.ProcessFile(context.Background(), src, settings)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusRenamed, outcome.Status)
}

func TestProcessFile_EmptyDocumentSkipped(t *testing.T) {
	dir := t.TempDir()
	src := writeScan(t, dir, "blank.pdf")
	f := newProcessorFixture(t, "")

	outcome, err := f.processor.ProcessFile(context.Background(), src, domain.DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, domain.StatusSkippedEmpty, outcome.Status)
	assert.FileExists(t, src)
	assert.Empty(t, f.oracle.prompts)
}

func TestProcessFile_CorrectionTakesPriority(t *testing.T) {
	dir := t.TempDir()
	src := writeScan(t, dir, "scan_0001.pdf")
	f := newProcessorFixture(t, longText)

	hash := Fingerprint("--- Page 1 ---\n" + longText)
	_, err := f.learning.AddCorrection("scan_0001.pdf", "2026-01-01_Corrected_Name.pdf", hash, "")
	require.NoError(t, err)

	outcome, err := f.processor.ProcessFile(context.Background(), src, domain.DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, domain.StatusRenamed, outcome.Status)
	assert.Equal(t, "2026-01-01_Corrected_Name.pdf", filepath.Base(outcome.NewPath))
	assert.Equal(t, domain.ModelLearned, outcome.ModelUsed)
	assert.Equal(t, 1.0, outcome.Confidence)
	assert.Empty(t, f.oracle.prompts)
	// Learned outcomes are not re-trained on.
	assert.Empty(t, f.learning.Patterns())
}

func TestProcessFile_PatternMatchSkipsOracle(t *testing.T) {
	dir := t.TempDir()
	src := writeScan(t, dir, "scan_0001.pdf")
	f := newProcessorFixture(t, longText)
	f.learning.patterns = append(f.learning.patterns, domain.Pattern{
		ID:                  "pat_1",
		SignatureKeywords:   []string{"electric", "utility", "invoice", "statement"},
		DescriptionTemplate: "2026-02-01_Electric_Bill",
		TimesApplied:        2,
		ConfidenceAvg:       0.8,
	})

	outcome, err := f.processor.ProcessFile(context.Background(), src, domain.DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, domain.StatusRenamed, outcome.Status)
	assert.Equal(t, "2026-02-01_Electric_Bill.pdf", filepath.Base(outcome.NewPath))
	assert.Equal(t, domain.ModelLearned, outcome.ModelUsed)
	assert.Empty(t, f.oracle.prompts)

	entries := f.ledger.FindByOriginalName("scan_0001.pdf")
	require.Len(t, entries, 1)
	assert.Equal(t, "pat_1", entries[0].PatternID)
}

func TestProcessFile_NoPatternsGoesStraightToOracle(t *testing.T) {
	dir := t.TempDir()
	src := writeScan(t, dir, "scan_0001.pdf")
	f := newProcessorFixture(t, longText)

	hash := Fingerprint("--- Page 1 ---\n" + longText)
	_, err := f.learning.AddCorrection("scan_0001.pdf", "Corrected.pdf", hash, "")
	require.NoError(t, err)

	settings := domain.DefaultSettings()
	settings.NoPatterns = true

	outcome, err := f.processor.ProcessFile(context.Background(), src, settings)

	require.NoError(t, err)
	assert.Equal(t, "2026-03-15_Electric_Bill.pdf", filepath.Base(outcome.NewPath))
	assert.Len(t, f.oracle.prompts, 1)
}

func TestProcessFile_CollisionGetsCounterSuffix(t *testing.T) {
	dir := t.TempDir()
	src := writeScan(t, dir, "scan_0001.pdf")
	writeScan(t, dir, "2026-03-15_Electric_Bill.pdf")
	f := newProcessorFixture(t, longText)

	outcome, err := f.processor.ProcessFile(context.Background(), src, domain.DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, "2026-03-15_Electric_Bill_1.pdf", filepath.Base(outcome.NewPath))
	assert.FileExists(t, outcome.NewPath)
}

func TestProcessFile_OracleFailureFails(t *testing.T) {
	dir := t.TempDir()
	src := writeScan(t, dir, "scan_0001.pdf")
	f := newProcessorFixture(t, longText)
	f.oracle.err = domain.ErrOracleUnavailable

	outcome, err := f.processor.ProcessFile(context.Background(), src, domain.DefaultSettings())

	assert.ErrorIs(t, err, domain.ErrOracleUnavailable)
	assert.Equal(t, domain.StatusFailed, outcome.Status)
	assert.FileExists(t, src)
}
