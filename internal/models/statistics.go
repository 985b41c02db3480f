package models

// NumericSummary represents descriptive statistics over a numeric field
type NumericSummary struct {
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"` // Population standard deviation
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Count  int     `json:"count"`
}

// HistogramBucket represents one equal-width bin of a histogram
type HistogramBucket struct {
	BinStart float64 `json:"binStart"`
	BinEnd   float64 `json:"binEnd"`
	Count    int     `json:"count"`
}

// NumericDescription is the describe-numeric payload
type NumericDescription struct {
	Stats     NumericSummary    `json:"stats"`
	Histogram []HistogramBucket `json:"histogram"`
}

// BoxplotSummary represents a box-plot of a numeric variable
type BoxplotSummary struct {
	Variable     string    `json:"variable,omitempty"`
	Count        int       `json:"count"`
	Min          float64   `json:"min"` // Observed minimum
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	Max          float64   `json:"max"` // Observed maximum
	IQR          float64   `json:"iqr"`
	LowerWhisker float64   `json:"lowerWhisker"`
	UpperWhisker float64   `json:"upperWhisker"`
	Outliers     []float64 `json:"outliers"`
	Values       []float64 `json:"values"` // Sorted ascending
}

// CategoryCount represents the frequency of one distinct value
type CategoryCount struct {
	Value interface{} `json:"value"`
	Count int64       `json:"count"`
}

// RankedLabels holds the primary, secondary and tertiary category of a record.
// A nil entry means the level is absent.
type RankedLabels [3]*string

// TreeCount represents the number of records attributed to a category label
type TreeCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// ClusterMember is one matched record carrying a pre-assigned cluster id
type ClusterMember struct {
	Cluster     int64
	Latitude    float64
	Longitude   float64
	CountCrimes int64 // Precomputed upstream, trusted as-is
}

// ClusterPoint represents the centroid of one cluster
type ClusterPoint struct {
	Cluster      int64   `json:"cluster"`
	Latitude     float64 `json:"Latitude"`
	Longitude    float64 `json:"Longitude"`
	CountCrimes  int64   `json:"count_crimes"`
	Matched      int     `json:"matched"`       // Records of the cluster in the filtered set
	SpreadMeters float64 `json:"spread_meters"` // Max distance from centroid to a member
}

// RatioResult represents filtered records as a share of all records
type RatioResult struct {
	Total      int64   `json:"total"`
	Filtered   int64   `json:"filtered"`
	Percentage float64 `json:"percentage"`
}

// ScatterPoint is one (x, y) pair
type ScatterPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FrequencyTable is the frequency table of a categorical field
type FrequencyTable struct {
	Frequencies []CategoryCount `json:"frequencies"`
	Total       int64           `json:"total"`
}
