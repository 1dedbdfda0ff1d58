package cli

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/lillianfidler/churchill-falls-assistant/internal/adapters/driven/storage/sqlite"
	"github.com/lillianfidler/churchill-falls-assistant/internal/config"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driving"
)

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	reply *domain.ChatReply
	err   error
	got   domain.ChatRequest
}

func (m *mockChatService) Chat(_ context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	m.got = req
	return m.reply, m.err
}

// mockVoiceService is a mock implementation of driving.VoiceService.
type mockVoiceService struct {
	available bool
	usage     domain.VoiceUsage
	resets    int
}

func (m *mockVoiceService) Available() bool { return m.available }

func (m *mockVoiceService) Speak(_ context.Context, _ string) (*domain.SpeechResult, error) {
	return &domain.SpeechResult{Status: domain.VoiceGenerated}, nil
}

func (m *mockVoiceService) Usage(_ context.Context) (domain.VoiceUsage, error) {
	return m.usage, nil
}

func (m *mockVoiceService) ResetUsage(_ context.Context) error {
	m.resets++
	m.usage.Used = 0
	return nil
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	docs   []domain.Document
	report domain.LoadReport
}

func (m *mockDocumentService) Get(_ context.Context, name string) (*domain.Document, error) {
	for i := range m.docs {
		if m.docs[i].Name == name {
			return &m.docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocumentService) List(_ context.Context) []domain.DocumentInfo {
	infos := make([]domain.DocumentInfo, len(m.docs))
	for i, d := range m.docs {
		infos[i] = d.Info()
	}
	return infos
}

func (m *mockDocumentService) ListPartition(ctx context.Context, p domain.Partition) []domain.DocumentInfo {
	if p == domain.PartitionResident {
		return m.List(ctx)[:1]
	}
	return m.List(ctx)
}

func (m *mockDocumentService) Report() domain.LoadReport { return m.report }

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results    []domain.SearchResult
	query      string
	maxResults int
}

func (m *mockSearchService) Search(_ context.Context, query string, maxResults int) ([]domain.SearchResult, error) {
	m.query = query
	m.maxResults = maxResults
	return m.results, nil
}

// testApp bundles the mocks behind an app.
type testApp struct {
	chat   *mockChatService
	voice  *mockVoiceService
	docs   *mockDocumentService
	search *mockSearchService
	app    *app
	needs  []capability
}

// setupTestApp isolates configuration in a temp directory and makes every
// command use mock services.
func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	for _, key := range []string{config.EnvAnthropicKey, config.EnvAnthropicModel, config.EnvElevenLabsKey,
		config.EnvElevenLabsVoice, config.EnvPort, config.EnvContentDir} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Chdir(t.TempDir())

	ta := &testApp{
		chat:  &mockChatService{reply: &domain.ChatReply{Text: "Eleven turbines.", Mode: domain.ModeText}},
		voice: &mockVoiceService{available: true, usage: domain.VoiceUsage{Used: 1500, Limit: 100000}},
		docs: &mockDocumentService{
			docs: []domain.Document{
				domain.NewDocument("overview.txt", "Churchill Falls overview."),
				domain.NewDocument("contract.txt", "The 1969 power contract."),
			},
			report: domain.LoadReport{
				LoadedCount: 2,
				Files: []domain.FileStatus{
					{Name: "overview.txt", Status: domain.LoadStatusLoaded},
					{Name: "contract.txt", Status: domain.LoadStatusLoaded},
					{Name: "missing.txt", Status: domain.LoadStatusMissing},
				},
			},
		},
		search: &mockSearchService{
			results: []domain.SearchResult{{
				DocumentName: "contract.txt",
				Score:        3,
				Snippets:     []string{"The 1969 power contract."},
				SizeBytes:    24,
			}},
		},
	}
	ta.app = &app{
		cfg:       config.Default(),
		documents: ta.docs,
		search:    ta.search,
		voice:     ta.voice,
		chat:      ta.chat,
	}

	old := newApp
	newApp = func(_ context.Context, _ *config.Config, needs capability) (*app, error) {
		ta.needs = append(ta.needs, needs)
		return ta.app, nil
	}
	t.Cleanup(func() { newApp = old })
	return ta
}

// withHistory gives the app a persistent usage history.
func (ta *testApp) withHistory(months []sqlite.MonthUsage) {
	ta.app.history = func(_ context.Context, limit int) ([]sqlite.MonthUsage, error) {
		if limit < len(months) {
			return months[:limit], nil
		}
		return months, nil
	}
}

// execute runs the root command with args and returns its output.
// Command flags are reset to their defaults afterwards.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags()
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags() {
	searchLimit = domain.DefaultMaxResults
	searchJSON = false
	documentsPartition = ""
	documentsJSON = false
	askMode = ""
	askVoice = false
	askAudioOut = ""
	askJSON = false
	voiceHistory = 0
	mcpPort = 0
	servePort = 0
	serveMCPPort = 0
	serveNoMCP = false
	verbose = false
	configPath = ""
	envFile = ""
}

var _ driving.ChatService = (*mockChatService)(nil)
