package httpapi

import (
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message             string                `json:"message" binding:"required"`
	ConversationHistory []domain.HistoryEntry `json:"conversationHistory"`
	IsVoiceMode         bool                  `json:"isVoiceMode"`
	Mode                string                `json:"mode" binding:"omitempty,oneof=voice voice-research text research"`
}

// VoiceChatRequest is the body of the legacy POST /api/voice-chat.
type VoiceChatRequest struct {
	Message             string                `json:"message" binding:"required"`
	ConversationHistory []domain.HistoryEntry `json:"conversationHistory"`
	RequestVoice        bool                  `json:"requestVoice"`
}

// ChatResponse is the reply to a chat request. Audio is a
// data:audio/mpeg;base64 URI or null.
type ChatResponse struct {
	Text           string              `json:"text"`
	Audio          *string             `json:"audio"`
	VoiceAvailable bool                `json:"voiceAvailable"`
	Voice          *VoiceResult        `json:"voice,omitempty"`
	VoiceUsage     *VoiceUsageResponse `json:"voiceUsage,omitempty"`
	Mode           string              `json:"mode"`
	Escalated      bool                `json:"escalated"`
	Cached         bool                `json:"cached"`
	Rounds         int                 `json:"rounds"`
	ToolCalls      int                 `json:"toolCalls"`
	CappedOut      bool                `json:"cappedOut"`
	ResponseTimeMS int64               `json:"responseTime"`
}

// VoiceResult describes the audio part of a reply.
type VoiceResult struct {
	Status        string `json:"status"`
	QuotaExceeded bool   `json:"quotaExceeded"`
	Characters    int    `json:"characters"`
}

// VoiceUsageResponse is the monthly budget snapshot.
type VoiceUsageResponse struct {
	Used        int     `json:"used"`
	Limit       int     `json:"limit"`
	Remaining   int     `json:"remaining"`
	PercentUsed float64 `json:"percentUsed"`
}

// VoiceStatusResponse is the reply of GET /api/voice-status.
type VoiceStatusResponse struct {
	Available        bool    `json:"available"`
	CreditsUsed      int     `json:"creditsUsed"`
	CreditsRemaining int     `json:"creditsRemaining"`
	MonthlyLimit     int     `json:"monthlyLimit"`
	PercentUsed      float64 `json:"percentUsed"`
	VoiceID          *string `json:"voiceId"`
	DocumentsLoaded  int     `json:"documentsLoaded"`
}

// HealthResponse is the reply of GET /api/health.
type HealthResponse struct {
	Status         string          `json:"status"`
	Version        string          `json:"version,omitempty"`
	Model          string          `json:"model,omitempty"`
	Documents      DocumentsHealth `json:"documents"`
	VoiceAvailable bool            `json:"voiceAvailable"`
	Timestamp      string          `json:"timestamp"`
}

// DocumentsHealth summarises the startup load.
type DocumentsHealth struct {
	Loaded        int      `json:"loaded"`
	TotalBytes    int      `json:"totalBytes"`
	Resident      int      `json:"resident"`
	ResidentBytes int      `json:"residentBytes"`
	Missing       []string `json:"missing,omitempty"`
}

// DocumentListResponse is the reply of GET /api/documents.
type DocumentListResponse struct {
	Documents []domain.DocumentInfo `json:"documents"`
	Count     int                   `json:"count"`
}

// DocumentResponse is the reply of GET /api/documents/:name.
type DocumentResponse struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	Size     int    `json:"size"`
}

// SearchResponse is the reply of GET /api/search.
type SearchResponse struct {
	Query   string                `json:"query"`
	Results []domain.SearchResult `json:"results"`
	Count   int                   `json:"count"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	Retryable bool   `json:"retryable"`
	RequestID string `json:"requestId,omitempty"`
}
