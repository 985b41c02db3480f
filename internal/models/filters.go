package models

// DatasetQuery selects the dataset an operation runs against
type DatasetQuery struct {
	Dataset    string `form:"dataset"`
	Collection string `form:"collection"` // Legacy alias of dataset
}

// Name returns the requested dataset, falling back to def
func (q DatasetQuery) Name(def string) string {
	if q.Dataset != "" {
		return q.Dataset
	}
	if q.Collection != "" {
		return q.Collection
	}
	return def
}

// FieldQuery represents parameters of frequency and numeric description queries
type FieldQuery struct {
	DatasetQuery
	Field    string `form:"field"`
	Variable string `form:"variable"` // Legacy alias of field
}

// FieldName returns the requested field
func (q FieldQuery) FieldName() string {
	if q.Field != "" {
		return q.Field
	}
	return q.Variable
}

// BoxplotQuery represents parameters of the box-plot query
type BoxplotQuery struct {
	DatasetQuery
	Variable string `form:"variable"`
	Limit    string `form:"limit"`
}

// ScatterQuery represents parameters of the scatter query
type ScatterQuery struct {
	DatasetQuery
	XAxis string `form:"xAxis"`
	YAxis string `form:"yAxis"`
	Limit string `form:"limit"`
}
