package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/containerq/backend/internal/domain"
	"github.com/containerq/backend/internal/usecase"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContainerMatcher finds containers matching a class expression
type ContainerMatcher interface {
	MatchingContainers(ctx context.Context, request *domain.MatchRequest) *domain.MatchOutcome
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	matcher ContainerMatcher
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(matcher ContainerMatcher, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		matcher: matcher,
		logger:  logger.Named("http"),
	}
}

// MatchRequestBody is the JSON body of a container match request
type MatchRequestBody struct {
	QueryString    string            `json:"queryString" binding:"required"`
	PrefixMap      map[string]string `json:"prefixMap,omitempty"`
	KBName         string            `json:"kbName,omitempty"`
	AddlConditions string            `json:"addlConditions,omitempty"`
	AtStrateos     bool              `json:"atStrateos,omitempty"`
	StrateosIDs    bool              `json:"strateosIds,omitempty"`
}

// MatchResponse is returned for a successful match
type MatchResponse struct {
	Instances   []domain.InstanceURI          `json:"instances"`
	Count       int                           `json:"count"`
	StrateosIDs map[domain.InstanceURI]string `json:"strateosIds,omitempty"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "containerq-backend",
		"version": "1.0.0",
	})
}

// MatchContainers handles container match requests
func (h *Handler) MatchContainers(c *gin.Context) {
	if h.matcher == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "container matching is not configured"})
		return
	}

	var body MatchRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefixes := domain.PrefixMap(body.PrefixMap)
	if len(prefixes) == 0 {
		prefixes = domain.DefaultPrefixes()
	}

	addl := body.AddlConditions
	if body.AtStrateos {
		addl = usecase.JoinConditions(addl, domain.StrateosAvailability)
	}

	outcome := h.matcher.MatchingContainers(c.Request.Context(), &domain.MatchRequest{
		Spec:           domain.NewClassExpressionSpec(body.QueryString, prefixes),
		KBName:         body.KBName,
		AddlConditions: addl,
	})

	instances, err := outcome.Result()
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	resp := MatchResponse{Instances: instances, Count: len(instances)}
	if body.StrateosIDs {
		resp.StrateosIDs = make(map[domain.InstanceURI]string, len(instances))
		for _, inst := range instances {
			id, err := usecase.StrateosID(string(inst))
			if err != nil {
				h.logger.Debug("no strateos ID", zap.String("uri", string(inst)))
				continue
			}
			resp.StrateosIDs[inst] = id
		}
	}

	c.JSON(http.StatusOK, resp)
}

// StrateosID extracts the catalog ID from the uri query parameter
func (h *Handler) StrateosID(c *gin.Context) {
	uri := c.Query("uri")
	if uri == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uri query parameter is required"})
		return
	}

	id, err := usecase.StrateosID(uri)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "uri": uri})
		return
	}

	c.JSON(http.StatusOK, gin.H{"uri": uri, "strateosId": id})
}

// statusForError maps a failed outcome onto an HTTP status
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}
