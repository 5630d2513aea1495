package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dutymanager/dutymanager/backend/go-services/internal/audit"
	"github.com/dutymanager/dutymanager/backend/go-services/internal/config"
	"github.com/dutymanager/dutymanager/backend/go-services/internal/store"
	"github.com/dutymanager/dutymanager/backend/go-services/pkg/logger"
	"github.com/dutymanager/dutymanager/backend/go-services/pkg/metrics"
)

// audit hooks are package vars so tests can substitute them.
var (
	auditRecordFunc = audit.Record
	auditRecentFunc = audit.Recent
)

// ScheduleHandler serves the persistence API around a single schedule
// document: health, save (with pre-overwrite backup), load, export, and
// the read-only backup/history listings.
type ScheduleHandler struct {
	cfg   *config.Config
	store store.Store
}

func NewScheduleHandler(cfg *config.Config, st store.Store) *ScheduleHandler {
	return &ScheduleHandler{cfg: cfg, store: st}
}

func (h *ScheduleHandler) Register(r *gin.Engine) {
	r.GET("/api/health", h.Health)
	r.POST("/api/save", h.Save)
	r.GET("/api/load", h.Load)
	r.GET("/api/export", h.Export)
	r.GET("/api/backups", h.Backups)
	r.GET("/api/history", h.History)
}

// Health always reports healthy; the exists flag tells the frontend
// whether a first save has happened yet.
func (h *ScheduleHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"timestamp":        time.Now().Format(time.RFC3339),
		"data_file_exists": h.store.Exists(),
	})
}

// Save replaces the stored document with the request body — any JSON
// value, not just an object. The store snapshots the prior document
// first; a failed snapshot never fails the save, a failed write does.
func (h *ScheduleHandler) Save(c *gin.Context) {
	var doc any
	if err := c.ShouldBindJSON(&doc); err != nil {
		metrics.SavesTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided"})
		return
	}

	if err := h.store.Save(doc); err != nil {
		if errors.Is(err, store.ErrEmptyDocument) {
			metrics.SavesTotal.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided"})
			return
		}
		logger.Errorf("error saving data: %v", err)
		metrics.SavesTotal.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "message": "Failed to save data"})
		return
	}

	now := time.Now()
	logger.Infof("data saved successfully at %s", now.Format(time.RFC3339))
	metrics.SavesTotal.WithLabelValues("ok").Inc()

	h.recordAudit(int(c.Request.ContentLength), c.ClientIP(), now)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Data saved successfully",
		"timestamp": now.Format(time.RFC3339),
	})
}

// recordAudit writes a save record to the optional Mongo audit trail.
// Best-effort and asynchronous: a slow or absent Mongo never delays the
// save response.
func (h *ScheduleHandler) recordAudit(bytes int, remoteAddr string, ts time.Time) {
	uri, db := h.mongoTarget()
	rec := &audit.SaveRecord{Timestamp: ts, Bytes: bytes, RemoteAddr: remoteAddr}
	if infos, err := h.store.Backups(); err == nil && len(infos) > 0 {
		rec.BackupFile = infos[0].Name
	}
	record := auditRecordFunc
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := record(ctx, uri, db, rec); err != nil {
			logger.Warnf("save audit record failed: %v", err)
		}
	}()
}

// Load returns the stored document, or an empty object before the first
// save. Every call re-reads the file; there is no cache.
func (h *ScheduleHandler) Load(c *gin.Context) {
	doc, err := h.store.Load()
	if err != nil {
		logger.Errorf("error loading data: %v", err)
		metrics.LoadsTotal.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "message": "Failed to load data"})
		return
	}
	metrics.LoadsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, doc)
}

// Export is the same contract as Load on a distinct route, so clients
// can tell "fetch for display" from "fetch for download".
func (h *ScheduleHandler) Export(c *gin.Context) {
	h.Load(c)
}

// Backups lists the on-disk snapshots, newest first. Listing only —
// nothing deletes or restores a backup through this API.
func (h *ScheduleHandler) Backups(c *gin.Context) {
	infos, err := h.store.Backups()
	if err != nil {
		logger.Errorf("error listing backups: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "message": "Failed to list backups"})
		return
	}
	c.JSON(http.StatusOK, infos)
}

// History returns recent save-audit records. Empty list when the audit
// trail is not configured.
func (h *ScheduleHandler) History(c *gin.Context) {
	uri, db := h.mongoTarget()
	recs, err := auditRecentFunc(c.Request.Context(), uri, db, 50)
	if err != nil {
		logger.Errorf("error loading save history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "message": "Failed to load save history"})
		return
	}
	if recs == nil {
		recs = []audit.SaveRecord{}
	}
	c.JSON(http.StatusOK, recs)
}

func (h *ScheduleHandler) mongoTarget() (uri, db string) {
	if h.cfg == nil {
		return "", ""
	}
	return h.cfg.MongoDB.URI, h.cfg.MongoDB.Database
}
