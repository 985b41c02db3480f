package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jengzang/crime-analytics-go/internal/config"
	"github.com/jengzang/crime-analytics-go/internal/filter"
	"github.com/jengzang/crime-analytics-go/internal/models"
	"github.com/jengzang/crime-analytics-go/internal/repository"
	"github.com/jengzang/crime-analytics-go/internal/spatial"
	"github.com/jengzang/crime-analytics-go/internal/stats"
)

// ErrBadRequest marks errors caused by invalid request parameters
var ErrBadRequest = errors.New("bad request")

const (
	DefaultCrimesDataset   = "crimes_2020"
	DefaultTweetsDataset   = "tweets_2020"
	DefaultBins            = 6
	DefaultLimit           = 1000
	DefaultBoxplotVariable = "likeCount"
)

// Distribution names a fixed-bucket distribution
type Distribution string

const (
	DistributionHour      Distribution = "hour"
	DistributionMonth     Distribution = "month"
	DistributionSeason    Distribution = "season"
	DistributionDayOfWeek Distribution = "dayOfWeek"
)

func (d Distribution) field() string {
	switch d {
	case DistributionHour:
		return filter.FieldHour
	case DistributionMonth:
		return filter.FieldMonth
	case DistributionSeason:
		return filter.FieldSeason
	case DistributionDayOfWeek:
		return filter.FieldDayOfWeek
	}
	return ""
}

func (d Distribution) keys() []string {
	switch d {
	case DistributionHour:
		return stats.IntKeys(0, 23)
	case DistributionMonth:
		return stats.IntKeys(1, 12)
	case DistributionSeason:
		return filter.Seasons
	case DistributionDayOfWeek:
		return stats.IntKeys(1, 7)
	}
	return nil
}

// AnalyticsService handles business logic for exploratory analytics
type AnalyticsService struct {
	repo    *repository.EventRepository
	catalog *config.Catalog
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repo *repository.EventRepository, catalog *config.Catalog) *AnalyticsService {
	return &AnalyticsService{
		repo:    repo,
		catalog: catalog,
	}
}

// DescribeCategorical builds the frequency table of a categorical field
func (s *AnalyticsService) DescribeCategorical(ctx context.Context, dataset, field string, params url.Values) (*models.FrequencyTable, error) {
	d, p, err := s.prepare(dataset, params)
	if err != nil {
		return nil, err
	}
	if field == "" {
		return nil, fmt.Errorf("%w: field is required", ErrBadRequest)
	}
	if !d.IsCategorical(field) {
		return nil, fmt.Errorf("%w: field %q is not categorical in %s", ErrBadRequest, field, d.Name)
	}

	counts, err := s.repo.GroupCounts(ctx, d, p, field)
	if err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", field, err)
	}
	counts = stats.MergeCounts(counts)
	if len(counts) == 0 {
		return nil, fmt.Errorf("no values of %s: %w", field, stats.ErrNoData)
	}

	stats.RankCounts(counts)
	return &models.FrequencyTable{
		Frequencies: counts,
		Total:       stats.TotalCount(counts),
	}, nil
}

// DescribeNumeric summarizes a numeric field and builds its histogram
func (s *AnalyticsService) DescribeNumeric(ctx context.Context, dataset, field string, params url.Values) (*models.NumericDescription, error) {
	d, p, err := s.prepare(dataset, params)
	if err != nil {
		return nil, err
	}
	if field == "" {
		return nil, fmt.Errorf("%w: field is required", ErrBadRequest)
	}
	if !d.IsNumeric(field) {
		return nil, fmt.Errorf("%w: field %q is not numeric in %s", ErrBadRequest, field, d.Name)
	}

	bins := filter.Parse(params).BinCount(DefaultBins)
	if bins < 1 {
		return nil, fmt.Errorf("%w: bins must be a positive integer", ErrBadRequest)
	}

	raw, err := s.repo.Values(ctx, d, p, field, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", field, err)
	}

	values := stats.NumericValues(raw)
	summary, err := stats.Summarize(values)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize %s: %w", field, err)
	}
	histogram, err := stats.HistogramFromSummary(values, summary, bins)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s histogram: %w", field, err)
	}

	return &models.NumericDescription{Stats: summary, Histogram: histogram}, nil
}

// Distribution counts matching records per fixed bucket. Every bucket is
// present, empty ones with zero.
func (s *AnalyticsService) Distribution(ctx context.Context, dataset string, kind Distribution, params url.Values) (map[string]int64, error) {
	field := kind.field()
	if field == "" {
		return nil, fmt.Errorf("%w: unknown distribution %q", ErrBadRequest, kind)
	}

	d, p, err := s.prepare(dataset, params)
	if err != nil {
		return nil, err
	}
	if err := requireFields(d, field); err != nil {
		return nil, err
	}

	counts, err := s.repo.GroupCounts(ctx, d, p, field)
	if err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", field, err)
	}

	return stats.FillBuckets(counts, kind.keys()), nil
}

// Points returns one centroid per cluster of the matching crimes
func (s *AnalyticsService) Points(ctx context.Context, dataset string, params url.Values) ([]models.ClusterPoint, error) {
	d, p, err := s.prepare(dataset, params)
	if err != nil {
		return nil, err
	}
	if err := requireFields(d, repository.FieldCluster, repository.FieldLatitude, repository.FieldLongitude, repository.FieldCountCrimes); err != nil {
		return nil, err
	}

	members, err := s.repo.ClusterMembers(ctx, d, p)
	if err != nil {
		return nil, fmt.Errorf("failed to load cluster members: %w", err)
	}

	return spatial.ClusterCentroids(members), nil
}

// Tree counts matching records per selected category label. The selection
// comes from the crimes parameter, or from categories when crimes is absent.
func (s *AnalyticsService) Tree(ctx context.Context, dataset string, params url.Values) ([]models.TreeCount, error) {
	spec := filter.Parse(params)
	if len(spec.TreeSelection) == 0 {
		spec.TreeSelection = spec.Categories
		spec.Categories = nil
	}
	if len(spec.TreeSelection) == 0 {
		return []models.TreeCount{}, nil
	}

	d, err := s.dataset(dataset)
	if err != nil {
		return nil, err
	}
	p := filter.Compile(spec)
	if err := requireFields(d, p.Fields()...); err != nil {
		return nil, err
	}

	records, err := s.repo.CategoryLabels(ctx, d, p)
	if err != nil {
		return nil, fmt.Errorf("failed to load category labels: %w", err)
	}

	return stats.RollUp(records, spec.TreeSelection), nil
}

// TotalFiltered compares the matching record count with the dataset total
func (s *AnalyticsService) TotalFiltered(ctx context.Context, dataset string, params url.Values) (*models.RatioResult, error) {
	d, p, err := s.prepare(dataset, params)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, d, filter.Predicate{})
	if err != nil {
		return nil, fmt.Errorf("failed to count total: %w", err)
	}
	filtered, err := s.repo.Count(ctx, d, p)
	if err != nil {
		return nil, fmt.Errorf("failed to count filtered: %w", err)
	}

	ratio, err := stats.Ratio(total, filtered)
	if err != nil {
		return nil, err
	}
	return &ratio, nil
}

// Boxplot summarizes the first limit values of a numeric field. Filters do
// not apply.
func (s *AnalyticsService) Boxplot(ctx context.Context, dataset, variable, limit string) (*models.BoxplotSummary, error) {
	d, err := s.dataset(dataset)
	if err != nil {
		return nil, err
	}
	if variable == "" {
		variable = DefaultBoxplotVariable
	}
	if !d.IsNumeric(variable) {
		return nil, fmt.Errorf("%w: variable %q is not numeric in %s", ErrBadRequest, variable, d.Name)
	}
	n, err := parseLimit(limit)
	if err != nil {
		return nil, err
	}

	raw, err := s.repo.Values(ctx, d, filter.Predicate{}, variable, n)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", variable, err)
	}

	summary, err := stats.Boxplot(stats.NumericValues(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to summarize %s: %w", variable, err)
	}
	summary.Variable = variable
	return &summary, nil
}

// Scatter returns (x, y) pairs of matching records where both are numbers
func (s *AnalyticsService) Scatter(ctx context.Context, dataset, xAxis, yAxis, limit string, params url.Values) ([]models.ScatterPoint, error) {
	d, p, err := s.prepare(dataset, params)
	if err != nil {
		return nil, err
	}
	if xAxis == "" || yAxis == "" {
		return nil, fmt.Errorf("%w: xAxis and yAxis are required", ErrBadRequest)
	}
	for _, axis := range []string{xAxis, yAxis} {
		if !d.IsNumeric(axis) {
			return nil, fmt.Errorf("%w: field %q is not numeric in %s", ErrBadRequest, axis, d.Name)
		}
	}
	n, err := parseLimit(limit)
	if err != nil {
		return nil, err
	}

	pairs, err := s.repo.Pairs(ctx, d, p, xAxis, yAxis, n)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s/%s: %w", xAxis, yAxis, err)
	}

	points := make([]models.ScatterPoint, 0, len(pairs))
	for _, pair := range pairs {
		x, okX := stats.Numeric(pair[0])
		y, okY := stats.Numeric(pair[1])
		if okX && okY {
			points = append(points, models.ScatterPoint{X: x, Y: y})
		}
	}
	return points, nil
}

// prepare resolves the dataset and compiles the filter parameters against it
func (s *AnalyticsService) prepare(dataset string, params url.Values) (*config.Dataset, filter.Predicate, error) {
	d, err := s.dataset(dataset)
	if err != nil {
		return nil, filter.Predicate{}, err
	}

	p := filter.CompileValues(params)
	if err := requireFields(d, p.Fields()...); err != nil {
		return nil, filter.Predicate{}, err
	}
	return d, p, nil
}

func (s *AnalyticsService) dataset(name string) (*config.Dataset, error) {
	d, ok := s.catalog.Dataset(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown dataset %q (available: %s)",
			ErrBadRequest, name, strings.Join(s.catalog.Names(), ", "))
	}
	return d, nil
}

func requireFields(d *config.Dataset, fields ...string) error {
	for _, f := range fields {
		if _, ok := d.Field(f); !ok {
			return fmt.Errorf("%w: dataset %s has no field %q", ErrBadRequest, d.Name, f)
		}
	}
	return nil
}

func parseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: limit must be a positive integer", ErrBadRequest)
	}
	return n, nil
}
