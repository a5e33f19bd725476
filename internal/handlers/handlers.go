package handlers

import (
	"github.com/carloshsbsilva/ringconnect/internal/auth"
	"github.com/carloshsbsilva/ringconnect/internal/linkpreview"
	"github.com/carloshsbsilva/ringconnect/internal/search"
	"github.com/carloshsbsilva/ringconnect/internal/storage"
	"github.com/carloshsbsilva/ringconnect/internal/websocket"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	authService *auth.Service
	wsHandler   *websocket.Handler
	search      *search.Client
	uploader    *storage.S3Uploader
	linkPreview *linkpreview.Fetcher
}

// NewHandlers creates a new handlers instance
func NewHandlers(authService *auth.Service) *Handlers {
	return &Handlers{
		authService: authService,
		linkPreview: linkpreview.NewFetcher(),
	}
}

// SetWebSocketHandler sets the WebSocket handler for real-time delivery
func (h *Handlers) SetWebSocketHandler(ws *websocket.Handler) {
	h.wsHandler = ws
}

// SetSearchClient sets the Elasticsearch search client
func (h *Handlers) SetSearchClient(searchClient *search.Client) {
	h.search = searchClient
}

// SetUploader sets the S3 media uploader
func (h *Handlers) SetUploader(uploader *storage.S3Uploader) {
	h.uploader = uploader
}
