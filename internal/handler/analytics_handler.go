package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/crime-analytics-go/internal/models"
	"github.com/jengzang/crime-analytics-go/internal/service"
	"github.com/jengzang/crime-analytics-go/internal/stats"
	"github.com/jengzang/crime-analytics-go/pkg/response"
)

// AnalyticsHandler handles HTTP requests for crime and tweet analytics
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// DescribeCategorical handles GET /api/v1/crimes/describe-categorical
func (h *AnalyticsHandler) DescribeCategorical(c *gin.Context) {
	var q models.FieldQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err)
		return
	}

	table, err := h.analyticsService.DescribeCategorical(c.Request.Context(),
		q.Name(service.DefaultCrimesDataset), q.FieldName(), c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, table)
}

// DescribeNumeric handles GET /api/v1/crimes/describe-numeric
func (h *AnalyticsHandler) DescribeNumeric(c *gin.Context) {
	var q models.FieldQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err)
		return
	}

	desc, err := h.analyticsService.DescribeNumeric(c.Request.Context(),
		q.Name(service.DefaultCrimesDataset), q.FieldName(), c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, desc)
}

// Distribution returns a handler for GET /api/v1/crimes/{hour,month,station,day-of-week}
func (h *AnalyticsHandler) Distribution(kind service.Distribution) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q models.DatasetQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			response.BadRequest(c, err)
			return
		}

		data, err := h.analyticsService.Distribution(c.Request.Context(),
			q.Name(service.DefaultCrimesDataset), kind, c.Request.URL.Query())
		if err != nil {
			writeError(c, err)
			return
		}

		response.Data(c, data)
	}
}

// Points handles GET /api/v1/crimes/points
func (h *AnalyticsHandler) Points(c *gin.Context) {
	var q models.DatasetQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err)
		return
	}

	points, err := h.analyticsService.Points(c.Request.Context(),
		q.Name(service.DefaultCrimesDataset), c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{"clusters": points})
}

// Tree handles GET /api/v1/crimes/tree
func (h *AnalyticsHandler) Tree(c *gin.Context) {
	var q models.DatasetQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err)
		return
	}

	tree, err := h.analyticsService.Tree(c.Request.Context(),
		q.Name(service.DefaultCrimesDataset), c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, tree)
}

// TotalFiltered handles GET /api/v1/crimes/total_filtered
func (h *AnalyticsHandler) TotalFiltered(c *gin.Context) {
	var q models.DatasetQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err)
		return
	}

	ratio, err := h.analyticsService.TotalFiltered(c.Request.Context(),
		q.Name(service.DefaultCrimesDataset), c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}

	response.Data(c, ratio)
}

// Boxplot handles GET /api/v1/tweets/boxplot
func (h *AnalyticsHandler) Boxplot(c *gin.Context) {
	var q models.BoxplotQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err)
		return
	}

	box, err := h.analyticsService.Boxplot(c.Request.Context(),
		q.Name(service.DefaultTweetsDataset), q.Variable, q.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Data(c, box)
}

// Scatter handles GET /api/v1/tweets/scatter
func (h *AnalyticsHandler) Scatter(c *gin.Context) {
	var q models.ScatterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err)
		return
	}

	points, err := h.analyticsService.Scatter(c.Request.Context(),
		q.Name(service.DefaultTweetsDataset), q.XAxis, q.YAxis, q.Limit, c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}

	response.Data(c, points)
}

// writeError maps service and engine errors onto HTTP responses
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBadRequest), errors.Is(err, stats.ErrInvalidBins):
		response.BadRequest(c, err)
	case errors.Is(err, stats.ErrNoData):
		response.NotFound(c, err)
	default:
		log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		_ = c.Error(err)
		response.InternalError(c, err)
	}
}
