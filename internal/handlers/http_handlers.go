package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"

	"luckymint/internal/notify"
	"luckymint/internal/services"
	"luckymint/internal/storage"
)

// HTTPHandler holds the dependencies for the HTTP handlers.
type HTTPHandler struct {
	service *services.MintService
	recent  *notify.MemorySink
	mintFee uint64
}

// NewHTTPHandler creates a new HTTPHandler.
func NewHTTPHandler(service *services.MintService, recent *notify.MemorySink, mintFee uint64) *HTTPHandler {
	return &HTTPHandler{
		service: service,
		recent:  recent,
		mintFee: mintFee,
	}
}

// RegisterRoutes registers all the application routes.
func (h *HTTPHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/rounds", h.CreateRound)
	router.GET("/rounds/:id", h.GetRound)
	router.POST("/mint", h.Mint)
	router.GET("/participants/:id", h.GetParticipant)
	router.GET("/mints", h.ListRecentMints)
}

// CreateRound handles the request to initialize a new round.
func (h *HTTPHandler) CreateRound(c *gin.Context) {
	round, err := h.service.CreateRound(c.Request.Context())
	if err != nil {
		logger.Infof("Error creating round: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create round"})
		return
	}
	c.JSON(http.StatusCreated, round)
}

// GetRound returns the current state of a round.
func (h *HTTPHandler) GetRound(c *gin.Context) {
	round, err := h.service.GetRoundInfo(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrRoundNotInitialized) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Infof("Error loading round: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load round"})
		return
	}
	c.JSON(http.StatusOK, round)
}

// MintRequest is the payload for POST /mint. The fee accompanies the
// request and is checked here, before the engine runs.
type MintRequest struct {
	ParticipantID string `json:"participantId" binding:"required"`
	RoundID       string `json:"roundId" binding:"required"`
	Fee           uint64 `json:"fee"`
}

// Mint handles a participant's mint request.
func (h *HTTPHandler) Mint(c *gin.Context) {
	var req MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "participantId and roundId are required"})
		return
	}

	if req.Fee < h.mintFee {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": services.ErrInsufficientMintFee.Error()})
		return
	}

	record, err := h.service.ResolveMint(c.Request.Context(), req.ParticipantID, req.RoundID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoundNotInitialized):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrCooldownNotFinished):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrExceedRoundMax):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Infof("Error resolving mint: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve mint"})
		}
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetParticipant returns the lifetime statistics for a participant.
func (h *HTTPHandler) GetParticipant(c *gin.Context) {
	participant, err := h.service.GetParticipantInfo(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrParticipantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Infof("Error loading participant: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load participant"})
		return
	}
	c.JSON(http.StatusOK, participant)
}

// ListRecentMints returns the retained mint records, oldest first.
func (h *HTTPHandler) ListRecentMints(c *gin.Context) {
	c.JSON(http.StatusOK, h.recent.Recent())
}
