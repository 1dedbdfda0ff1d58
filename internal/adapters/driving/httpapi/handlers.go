package httpapi

import (
	"encoding/base64"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
	"github.com/lillianfidler/churchill-falls-assistant/internal/logger"
)

// audioDataPrefix prefixes base64 MP3 audio in chat replies.
const audioDataPrefix = "data:audio/mpeg;base64,"

const messageRequired = "Valid message is required"

// ==================== Chat ====================

func (s *Server) chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, messageRequired, err)
		return
	}
	s.answer(c, domain.ChatRequest{
		Message: req.Message,
		History: req.ConversationHistory,
		Mode:    resolveMode(req.Mode, req.IsVoiceMode),
	})
}

func (s *Server) voiceChat(c *gin.Context) {
	var req VoiceChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, messageRequired, err)
		return
	}
	s.answer(c, domain.ChatRequest{
		Message: req.Message,
		History: req.ConversationHistory,
		Mode:    resolveMode("", req.RequestVoice),
	})
}

func (s *Server) answer(c *gin.Context, req domain.ChatRequest) {
	ctx := c.Request.Context()

	reply, err := s.ports.Chat.Chat(ctx, req)
	if err != nil {
		logger.Warn("Chat failed request_id=%s: %v", c.GetString(requestIDKey), err)
		writeError(c, err)
		return
	}

	resp := ChatResponse{
		Text:           reply.Text,
		VoiceAvailable: s.ports.Voice.Available(),
		Mode:           string(reply.Mode),
		Escalated:      reply.Escalated,
		Cached:         reply.Cached,
		Rounds:         reply.Rounds,
		ToolCalls:      reply.ToolCalls,
		CappedOut:      reply.CappedOut,
		ResponseTimeMS: reply.Duration.Milliseconds(),
	}
	if sp := reply.Speech; sp != nil {
		resp.Voice = &VoiceResult{
			Status:        string(sp.Status),
			QuotaExceeded: sp.Status == domain.VoiceQuotaExceeded,
			Characters:    sp.Characters,
		}
		if len(sp.Audio) > 0 {
			uri := audioDataPrefix + base64.StdEncoding.EncodeToString(sp.Audio)
			resp.Audio = &uri
		}
	}
	if usage, err := s.ports.Voice.Usage(ctx); err != nil {
		logger.Warn("Reading voice usage: %v", err)
	} else {
		resp.VoiceUsage = &VoiceUsageResponse{
			Used:        usage.Used,
			Limit:       usage.Limit,
			Remaining:   usage.Remaining(),
			PercentUsed: roundTenth(usage.PercentUsed()),
		}
	}

	c.JSON(http.StatusOK, resp)
}

// resolveMode picks the chat mode: an explicit mode wins, then the voice
// flag. An empty result selects the service default.
func resolveMode(explicit string, voice bool) domain.ChatMode {
	if explicit != "" {
		return domain.ChatMode(explicit)
	}
	if voice {
		return domain.ModeVoice
	}
	return ""
}

// ==================== Status ====================

func (s *Server) voiceStatus(c *gin.Context) {
	usage, err := s.ports.Voice.Usage(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := VoiceStatusResponse{
		Available:        s.ports.Voice.Available(),
		CreditsUsed:      usage.Used,
		CreditsRemaining: usage.Remaining(),
		MonthlyLimit:     usage.Limit,
		PercentUsed:      roundTenth(usage.PercentUsed()),
		DocumentsLoaded:  s.ports.Documents.Report().LoadedCount,
	}
	if resp.Available && s.cfg.VoiceID != "" {
		id := abbreviate(s.cfg.VoiceID, 8)
		resp.VoiceID = &id
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) health(c *gin.Context) {
	report := s.ports.Documents.Report()
	docs := DocumentsHealth{
		Loaded:        report.LoadedCount,
		TotalBytes:    report.TotalBytes,
		Resident:      report.ResidentCount,
		ResidentBytes: report.ResidentBytes,
	}
	for _, f := range report.Failed() {
		docs.Missing = append(docs.Missing, f.Name)
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:         "healthy",
		Version:        s.cfg.Version,
		Model:          s.cfg.Model,
		Documents:      docs,
		VoiceAvailable: s.ports.Voice.Available(),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	})
}

// ==================== Documents ====================

func (s *Server) listDocuments(c *gin.Context) {
	ctx := c.Request.Context()

	var docs []domain.DocumentInfo
	if p := c.Query("partition"); p != "" {
		partition := domain.Partition(strings.ToLower(p))
		if !partition.IsValid() {
			badRequest(c, "partition must be resident or searchable", nil)
			return
		}
		docs = s.ports.Documents.ListPartition(ctx, partition)
	} else {
		docs = s.ports.Documents.List(ctx)
	}
	if docs == nil {
		docs = []domain.DocumentInfo{}
	}
	c.JSON(http.StatusOK, DocumentListResponse{Documents: docs, Count: len(docs)})
}

func (s *Server) getDocument(c *gin.Context) {
	doc, err := s.ports.Documents.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, DocumentResponse{
		Filename: doc.Name,
		Content:  doc.Content,
		Size:     doc.SizeBytes,
	})
}

func (s *Server) search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		badRequest(c, "query parameter q is required", nil)
		return
	}
	maxResults := domain.DefaultMaxResults
	if raw := c.Query("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badRequest(c, "max must be a positive integer", err)
			return
		}
		maxResults = n
	}

	results, err := s.ports.Search.Search(c.Request.Context(), query, maxResults)
	if err != nil {
		writeError(c, err)
		return
	}
	if results == nil {
		results = []domain.SearchResult{}
	}
	c.JSON(http.StatusOK, SearchResponse{Query: query, Results: results, Count: len(results)})
}

// ==================== Helpers ====================

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// abbreviate keeps the first n characters and marks the cut.
func abbreviate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
