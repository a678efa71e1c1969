// Package server exposes the extraction pipeline and document store over
// HTTP: upload a document, read back the scored field set, correct fields
// after manual review.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"idextract/internal/extract"
	"idextract/internal/imaging"
	"idextract/internal/logger"
	"idextract/internal/store"
)

// Processor runs one document through the extraction pipeline.
type Processor interface {
	Process(ctx context.Context, data []byte) (*extract.Result, error)
}

// Server wires the pipeline and store into HTTP handlers.
type Server struct {
	pipeline  Processor
	store     *store.Store
	maxUpload int64
	log       zerolog.Logger
}

// New creates a server. maxUpload bounds the accepted request body size in
// bytes; zero or negative means no limit.
func New(pipeline Processor, st *store.Store, maxUpload int64) *Server {
	return &Server{
		pipeline:  pipeline,
		store:     st,
		maxUpload: maxUpload,
		log:       logger.WithComponent("server"),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", s.health)

	api := router.Group("/api")
	{
		api.POST("/documents", s.createDocument)
		api.GET("/documents", s.listDocuments)
		api.GET("/documents/:id", s.getDocument)
		api.DELETE("/documents/:id", s.deleteDocument)
		api.PUT("/documents/:id/fields", s.correctFields)
	}

	return router
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// createDocument accepts a multipart upload ("file" part), runs the
// pipeline, and stores the result. Quality rejections and failed PDF
// conversions are the client's problem (400); recognition failures are an
// upstream problem (502).
func (s *Server) createDocument(c *gin.Context) {
	if s.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart 'file' field is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}

	result, err := s.pipeline.Process(c.Request.Context(), data)
	if err != nil {
		s.log.Error().
			Err(err).
			Str("filename", fileHeader.Filename).
			Msg("Document processing failed")

		status := http.StatusBadGateway
		if errors.Is(err, imaging.ErrUnsuitableImage) || errors.Is(err, imaging.ErrConversionFailed) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": extract.UserMessage(err)})
		return
	}

	doc, err := s.store.SaveResult(c.Request.Context(), fileHeader.Filename, result)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to save document")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save document"})
		return
	}

	c.JSON(http.StatusCreated, doc)
}

func (s *Server) listDocuments(c *gin.Context) {
	limit := queryInt(c, "limit", 100)
	offset := queryInt(c, "offset", 0)

	docs, err := s.store.List(c.Request.Context(), limit, offset)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list documents")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": docs, "count": len(docs)})
}

func (s *Server) getDocument(c *gin.Context) {
	doc, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to load document")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load document"})
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (s *Server) deleteDocument(c *gin.Context) {
	err := s.store.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to delete document")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete document"})
		return
	}

	c.Status(http.StatusNoContent)
}

type correctionRequest struct {
	Fields map[string]string `json:"fields" binding:"required"`
}

// correctFields records manual corrections to extracted field values.
func (s *Server) correctFields(c *gin.Context) {
	var req correctionRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must contain a non-empty 'fields' object"})
		return
	}

	doc, err := s.store.CorrectFields(c.Request.Context(), c.Param("id"), req.Fields)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}
	if errors.Is(err, store.ErrFieldNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to correct fields")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to correct fields"})
		return
	}

	c.JSON(http.StatusOK, doc)
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
