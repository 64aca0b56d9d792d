package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hr-interviewer-api/pkg/pdftext"
	"github.com/noah-isme/hr-interviewer-api/pkg/pdftext/pdftest"
)

type extractorStub struct {
	text     string
	err      error
	lastPath string
	existed  bool
}

func (e *extractorStub) ExtractFile(path string) (string, error) {
	e.lastPath = path
	_, statErr := os.Stat(path)
	e.existed = statErr == nil
	return e.text, e.err
}

type evaluatorStub struct {
	calls    int
	received string
	reply    string
	err      error
	panics   bool
}

func (e *evaluatorStub) Evaluate(ctx context.Context, resume string) (string, error) {
	e.calls++
	e.received = resume
	if e.panics {
		panic("evaluator exploded")
	}
	return e.reply, e.err
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func longResume() string {
	return strings.Repeat("Built distributed systems in Go at Acme. ", 10)
}

func requireNoStagedFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestInterviewRejectsNonPDF(t *testing.T) {
	dir := t.TempDir()
	evaluator := &evaluatorStub{}
	svc := NewInterviewService(&extractorStub{}, evaluator, testLogger(), InterviewConfig{TempDir: dir})

	_, err := svc.Interview(context.Background(), buildFileHeader(t, "resume.txt", []byte("hello")))
	require.ErrorIs(t, err, ErrNotPDF)
	require.Zero(t, evaluator.calls)
	requireNoStagedFiles(t, dir)
}

func TestInterviewRequiresFile(t *testing.T) {
	svc := NewInterviewService(&extractorStub{}, &evaluatorStub{}, testLogger(), InterviewConfig{TempDir: t.TempDir()})

	_, err := svc.Interview(context.Background(), nil)
	require.ErrorIs(t, err, ErrFileRequired)
}

func TestInterviewAcceptsUppercaseExtension(t *testing.T) {
	dir := t.TempDir()
	extractor := &extractorStub{text: longResume()}
	evaluator := &evaluatorStub{reply: "## Overall Impression"}
	svc := NewInterviewService(extractor, evaluator, testLogger(), InterviewConfig{TempDir: dir})

	body, err := svc.Interview(context.Background(), buildFileHeader(t, "CV.PDF", []byte("%PDF-1.4")))
	require.NoError(t, err)
	require.Equal(t, "## Overall Impression", body)
}

func TestInterviewShortTextSkipsEvaluator(t *testing.T) {
	dir := t.TempDir()
	extractor := &extractorStub{text: "  \n  only a few words\n\n  "}
	evaluator := &evaluatorStub{}
	svc := NewInterviewService(extractor, evaluator, testLogger(), InterviewConfig{TempDir: dir})

	body, err := svc.Interview(context.Background(), buildFileHeader(t, "resume.pdf", []byte("%PDF-1.4")))
	require.NoError(t, err)
	require.Equal(t, NoTextMessage, body)
	require.Zero(t, evaluator.calls)
	require.True(t, extractor.existed)
	require.NoFileExists(t, extractor.lastPath)
	requireNoStagedFiles(t, dir)
}

func TestInterviewReturnsModelReplyVerbatim(t *testing.T) {
	dir := t.TempDir()
	raw := "Jane Doe\n" + longResume()
	extractor := &extractorStub{text: raw}
	evaluator := &evaluatorStub{reply: "## Overall Impression\n\nStrong.\n"}
	svc := NewInterviewService(extractor, evaluator, testLogger(), InterviewConfig{TempDir: dir})

	content := []byte("%PDF-1.4 uploaded bytes")
	body, err := svc.Interview(context.Background(), buildFileHeader(t, "resume.pdf", content))
	require.NoError(t, err)
	require.Equal(t, evaluator.reply, body)
	require.Equal(t, 1, evaluator.calls)
	require.Equal(t, Normalize(raw), evaluator.received)
	require.True(t, strings.HasPrefix(extractor.lastPath, dir))
	require.NoFileExists(t, extractor.lastPath)
	requireNoStagedFiles(t, dir)
}

func TestInterviewUpstreamFailureBecomesErrorDocument(t *testing.T) {
	dir := t.TempDir()
	evaluator := &evaluatorStub{err: errors.New("context deadline exceeded")}
	svc := NewInterviewService(&extractorStub{text: longResume()}, evaluator, testLogger(), InterviewConfig{TempDir: dir})

	body, err := svc.Interview(context.Background(), buildFileHeader(t, "resume.pdf", []byte("%PDF-1.4")))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(body, "# Error"))
	require.Contains(t, body, "`context deadline exceeded`")
	requireNoStagedFiles(t, dir)
}

func TestInterviewParseFailureBecomesErrorDocument(t *testing.T) {
	dir := t.TempDir()
	evaluator := &evaluatorStub{}
	extractor := &extractorStub{err: pdftext.ErrDocumentParse}
	svc := NewInterviewService(extractor, evaluator, testLogger(), InterviewConfig{TempDir: dir})

	body, err := svc.Interview(context.Background(), buildFileHeader(t, "resume.pdf", []byte("garbage")))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(body, "# Error"))
	require.Contains(t, body, pdftext.ErrDocumentParse.Error())
	require.Zero(t, evaluator.calls)
	requireNoStagedFiles(t, dir)
}

func TestInterviewRemovesStagedFileWhenEvaluatorPanics(t *testing.T) {
	dir := t.TempDir()
	extractor := &extractorStub{text: longResume()}
	svc := NewInterviewService(extractor, &evaluatorStub{panics: true}, testLogger(), InterviewConfig{TempDir: dir})

	require.Panics(t, func() {
		_, _ = svc.Interview(context.Background(), buildFileHeader(t, "resume.pdf", []byte("%PDF-1.4")))
	})
	require.NoFileExists(t, extractor.lastPath)
	requireNoStagedFiles(t, dir)
}

func TestInterviewStagingFailure(t *testing.T) {
	missing := t.TempDir() + "/does-not-exist"
	evaluator := &evaluatorStub{}
	svc := NewInterviewService(&extractorStub{text: longResume()}, evaluator, testLogger(), InterviewConfig{TempDir: missing})

	_, err := svc.Interview(context.Background(), buildFileHeader(t, "resume.pdf", []byte("%PDF-1.4")))
	require.Error(t, err)
	require.Zero(t, evaluator.calls)
}

func TestInterviewWithRealPDF(t *testing.T) {
	dir := t.TempDir()
	doc := pdftest.Build(
		[]string{"Jane Doe", "Staff Software Engineer with twelve years of experience building payment systems."},
		[]string{"Led the migration of a monolith to Go services handling ten thousand requests per second."},
	)
	evaluator := &evaluatorStub{reply: "## Final Recommendation\n\nHire"}
	svc := NewInterviewService(pdftext.NewExtractor(testLogger()), evaluator, testLogger(), InterviewConfig{TempDir: dir})

	body, err := svc.Interview(context.Background(), buildFileHeader(t, "jane.pdf", doc))
	require.NoError(t, err)
	require.Equal(t, evaluator.reply, body)
	require.Equal(t, 1, evaluator.calls)
	require.Contains(t, evaluator.received, "Jane Doe")
	require.NotContains(t, evaluator.received, "  ")
	requireNoStagedFiles(t, dir)
}

func buildFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {"form-data; name=\"file\"; filename=\"" + filename + "\""},
		"Content-Type":        {"application/pdf"},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content) + 1024))
	require.NoError(t, err)
	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}
