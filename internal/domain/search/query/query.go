// Package query builds Elasticsearch request bodies for record listing and
// aggregations. Every builder is a pure function of its arguments.
package query

import "github.com/kailas-cloud/salarydex/internal/domain/search/request"

// Aggregation names used in request bodies and read back from responses.
const (
	AggMean   = "mean_salary"
	AggMedian = "median_salary"
	AggValues = "values"

	// MedianPercent is the percentile requested for the median.
	MedianPercent = 50.0
	// TopRecords is the number of highest earners returned with statistics.
	TopRecords = 10
)

// List builds a paginated search: a fuzzy match on matchField when the request
// has a name, terms filters for every condition, match_all when neither is set.
func List(req request.Request, matchField string) map[string]any {
	return map[string]any{
		"query":            listQuery(req, matchField),
		"from":             req.Offset(),
		"size":             req.Limit(),
		"track_total_hits": true,
	}
}

func listQuery(req request.Request, matchField string) map[string]any {
	var must, filters []any

	if req.Name() != "" {
		must = append(must, map[string]any{
			"match": map[string]any{
				matchField: map[string]any{
					"query":     req.Name(),
					"fuzziness": "AUTO",
				},
			},
		})
	}

	for _, c := range req.Filters().Must() {
		values := make([]any, len(c.Values()))
		for i, v := range c.Values() {
			values[i] = v
		}
		filters = append(filters, map[string]any{
			"terms": map[string]any{c.Key(): values},
		})
	}

	if len(must) == 0 && len(filters) == 0 {
		return map[string]any{"match_all": map[string]any{}}
	}

	boolQuery := map[string]any{}
	if len(must) > 0 {
		boolQuery["must"] = must
	}
	if len(filters) > 0 {
		boolQuery["filter"] = filters
	}
	return map[string]any{"bool": boolQuery}
}

// Statistics builds the top earners query with mean and median aggregations on field.
func Statistics(field string, top int) map[string]any {
	if top <= 0 {
		top = TopRecords
	}
	return map[string]any{
		"query": map[string]any{"match_all": map[string]any{}},
		"size":  top,
		"sort": []any{
			map[string]any{field: map[string]any{"order": "desc"}},
		},
		"aggs": map[string]any{
			AggMean: map[string]any{
				"avg": map[string]any{"field": field},
			},
			AggMedian: map[string]any{
				"percentiles": map[string]any{
					"field":    field,
					"percents": []any{MedianPercent},
				},
			},
		},
	}
}

// Distinct builds a terms aggregation listing every value of field once,
// ordered by value.
func Distinct(field string, size int) map[string]any {
	return map[string]any{
		"size": 0,
		"aggs": map[string]any{
			AggValues: map[string]any{
				"terms": map[string]any{
					"field": field,
					"size":  size,
					"order": map[string]any{"_key": "asc"},
				},
			},
		},
	}
}
