package leaderboard

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"scoresync/pkg/logger"
	"scoresync/pkg/record"
)

// Handler serves the score store REST API over a Store
type Handler struct {
	store  *Store
	logger *logger.Logger
}

// NewHandler creates a Handler
func NewHandler(store *Store, l *logger.Logger) *Handler {
	return &Handler{store: store, logger: l}
}

// Router builds the gin engine with the API routes. The rank lookup
// shares the :id wildcard because gin's route tree cannot hold a static
// "rank" segment next to it; ByID rejects the literal and RankByName
// claims the two-segment form.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/scores", h.List)
	r.POST("/api/scores", h.Create)
	r.GET("/api/scores/:id", h.ByID)
	r.GET("/api/scores/:id/:name", h.RankByName)
	r.PUT("/api/scores/:id", h.Update)
	r.DELETE("/api/scores/:id", h.Delete)

	return r
}

// List returns one page of records as a bare JSON array, with the total
// record count in the X-Total-Count header
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "100"))

	records, total, err := h.store.List(page, pageSize)
	if err != nil {
		h.logger.Error("list query failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.Header("X-Total-Count", strconv.Itoa(total))
	c.JSON(http.StatusOK, records)
}

// Create inserts a new record; the id in the body, if any, is ignored
func (h *Handler) Create(c *gin.Context) {
	var rec record.ScoreRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if rec.PlayerName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "playerName is required"})
		return
	}

	rec.ID = 0
	created, err := h.store.Create(rec)
	if err != nil {
		h.logger.Error("insert failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ByID fetches one record
func (h *Handler) ByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	rec, err := h.store.Get(id)
	if err != nil {
		h.logger.Error("get query failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// RankByName serves GET /api/scores/rank/{playerName}
func (h *Handler) RankByName(c *gin.Context) {
	if c.Param("id") != "rank" {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	rank, err := h.store.Rank(c.Param("name"))
	if err != nil {
		h.logger.Error("rank query failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if rank == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, rank)
}

// Update replaces a record's mutable fields and returns no body, which
// forces clients onto their re-fetch path
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var rec record.ScoreRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	rec.ID = id

	found, err := h.store.Update(rec)
	if err != nil {
		h.logger.Error("update failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete removes a record; success is signaled by status code only
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	found, err := h.store.Delete(id)
	if err != nil {
		h.logger.Error("delete failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
