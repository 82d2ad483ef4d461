package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gradhub/research-assistant/pkg/archive"
	"github.com/gradhub/research-assistant/pkg/clients"
	"github.com/gradhub/research-assistant/pkg/research"
	"github.com/gradhub/research-assistant/pkg/session"
)

// sessionHeader carries the client's session id. A session is created on the
// first interaction and lives for the rest of the process.
const sessionHeader = "X-Session-Id"

type Handler struct {
	Service *Service

	sessions  map[string]*session.Session
	sessionMu sync.RWMutex
}

func NewHandler(s *Service) *Handler {
	return &Handler{
		Service:  s,
		sessions: make(map[string]*session.Session),
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/session", h.getSession)
		api.POST("/session/model", h.selectModel)
		api.POST("/session/provider", h.selectProvider)
		api.POST("/session/restart", h.restart)

		api.POST("/research", h.runResearch)

		api.GET("/report/download", h.downloadReport)
		api.GET("/reports", h.listReports)
		api.GET("/reports/:id", h.getReport)
	}
}

// resolveSession returns the caller's session, creating one on first
// interaction. The session id is echoed back so the client can pin it.
func (h *Handler) resolveSession(c *gin.Context) *session.Session {
	id := c.GetHeader(sessionHeader)

	if id != "" {
		h.sessionMu.RLock()
		sess, ok := h.sessions[id]
		h.sessionMu.RUnlock()
		if ok {
			c.Header(sessionHeader, id)
			return sess
		}
	}

	if id == "" {
		id = uuid.New().String()
	}

	model, err := clients.ParseModel(h.Service.Cfg.DefaultModel)
	if err != nil {
		model = clients.Llama3_70B
	}
	sess := session.New(model, research.ProviderTavily)

	h.sessionMu.Lock()
	h.sessions[id] = sess
	h.sessionMu.Unlock()

	c.Header(sessionHeader, id)
	return sess
}

type sessionView struct {
	session.Snapshot
	Models    []clients.ModelType     `json:"models"`
	Providers []research.ProviderName `json:"providers"`
}

func (h *Handler) getSession(c *gin.Context) {
	sess := h.resolveSession(c)
	c.JSON(http.StatusOK, sessionView{
		Snapshot:  sess.State(),
		Models:    clients.Models(),
		Providers: research.Providers(),
	})
}

func (h *Handler) selectModel(c *gin.Context) {
	var req struct {
		Model string `json:"model"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model, err := clients.ParseModel(req.Model)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := h.resolveSession(c)
	changed := sess.SelectModel(model)
	c.JSON(http.StatusOK, gin.H{"changed": changed, "state": sess.State()})
}

func (h *Handler) selectProvider(c *gin.Context) {
	var req struct {
		Provider string `json:"provider"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	provider, err := research.ParseProvider(req.Provider)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := h.resolveSession(c)
	changed := sess.SelectProvider(provider)
	c.JSON(http.StatusOK, gin.H{"changed": changed, "state": sess.State()})
}

func (h *Handler) restart(c *gin.Context) {
	sess := h.resolveSession(c)
	sess.Restart()
	c.JSON(http.StatusOK, gin.H{"state": sess.State()})
}

// runResearch submits a topic and streams the pipeline as server-sent
// events. The stream is consumed to completion (or failure) before the
// client becomes interactive again; there is no mid-stream cancellation
// short of dropping the connection.
func (h *Handler) runResearch(c *gin.Context) {
	var req struct {
		Topic string `json:"topic"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := h.resolveSession(c)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Transfer-Encoding", "chunked")

	next := h.Service.Run(c.Request.Context(), sess, req.Topic)

	for event, err := range next {
		data, marshalErr := json.Marshal(event)
		if marshalErr != nil {
			return
		}
		_, _ = c.Writer.Write([]byte("data: "))
		_, _ = c.Writer.Write(data)
		_, _ = c.Writer.Write([]byte("\n\n"))
		c.Writer.Flush()

		if err != nil {
			// The error event above is the last frame of the stream.
			return
		}
	}
}

func (h *Handler) downloadReport(c *gin.Context) {
	c.FileAttachment(h.Service.Cfg.ReportPath, "report.json")
}

func (h *Handler) listReports(c *gin.Context) {
	if h.Service.Archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "report archive is not configured"})
		return
	}

	records, err := h.Service.Archive.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if records == nil {
		records = []archive.Record{}
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) getReport(c *gin.Context) {
	if h.Service.Archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "report archive is not configured"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid"})
		return
	}

	record, err := h.Service.Archive.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, record)
}
