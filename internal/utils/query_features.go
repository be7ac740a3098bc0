package utils

import (
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// reservedParams are control keys consumed by the builder itself; they never
// become filter predicates.
var reservedParams = map[string]bool{
	"page":   true,
	"sort":   true,
	"limit":  true,
	"fields": true,
}

var comparisonOps = map[string]string{
	"gte": "$gte",
	"gt":  "$gt",
	"lte": "$lte",
	"lt":  "$lt",
}

// QueryFeatures translates a request query string into a MongoDB filter plus
// find options. The four stages are chained in a fixed order:
//
//	features := NewQueryFeatures(c.Request.URL.Query()).
//	    Filter().Sort().LimitFields().Paginate()
//
// Each stage returns the builder, and re-running the chain on the same input
// always yields the same refined query.
type QueryFeatures struct {
	params url.Values
	filter bson.M
	opts   *options.FindOptions
	page   int
	limit  int
}

func NewQueryFeatures(params url.Values) *QueryFeatures {
	return &QueryFeatures{
		params: params,
		filter: bson.M{},
		opts:   options.Find(),
		page:   DefaultPage,
		limit:  DefaultLimit,
	}
}

// Filter strips the reserved control keys and applies the rest of the
// parameter map as an equality/range predicate. Comparison operators arrive
// as bracketed keys (price[gte]=100) and are rewritten to their store form
// ($gte); already-rewritten operators (price[$gte]) pass through unchanged.
func (q *QueryFeatures) Filter() *QueryFeatures {
	for key := range q.params {
		if reservedParams[key] {
			continue
		}

		value := q.params.Get(key)
		field, op, ok := splitOperatorKey(key)
		if !ok {
			q.filter[key] = parseValue(value)
			continue
		}

		rangeFilter, exists := q.filter[field].(bson.M)
		if !exists {
			rangeFilter = bson.M{}
			q.filter[field] = rangeFilter
		}
		rangeFilter[op] = parseValue(value)
	}

	return q
}

// Sort applies a comma-separated multi-key sort, descending for keys with a
// "-" prefix. Without a sort parameter, results are ordered by creation time
// descending.
func (q *QueryFeatures) Sort() *QueryFeatures {
	sortParam := q.params.Get("sort")
	if sortParam == "" {
		q.opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
		return q
	}

	sort := bson.D{}
	for _, key := range strings.Split(sortParam, ",") {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		order := 1
		if strings.HasPrefix(key, "-") {
			order = -1
			key = key[1:]
		}
		sort = append(sort, bson.E{Key: key, Value: order})
	}

	if len(sort) > 0 {
		q.opts.SetSort(sort)
	}
	return q
}

// LimitFields projects the comma-separated field list; a "-" prefix excludes
// a field instead. Without a fields parameter, the internal version key is
// excluded.
func (q *QueryFeatures) LimitFields() *QueryFeatures {
	fieldsParam := q.params.Get("fields")
	if fieldsParam == "" {
		q.opts.SetProjection(bson.M{"__v": 0})
		return q
	}

	projection := bson.M{}
	for _, field := range strings.Split(fieldsParam, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		if strings.HasPrefix(field, "-") {
			projection[field[1:]] = 0
		} else {
			projection[field] = 1
		}
	}

	if len(projection) > 0 {
		q.opts.SetProjection(projection)
	}
	return q
}

// Paginate computes skip/limit from the page and limit parameters.
func (q *QueryFeatures) Paginate() *QueryFeatures {
	if page, err := strconv.Atoi(q.params.Get("page")); err == nil && page > 0 {
		q.page = page
	}
	if limit, err := strconv.Atoi(q.params.Get("limit")); err == nil && limit > 0 {
		q.limit = limit
	}

	q.opts.SetSkip(int64(q.Skip()))
	q.opts.SetLimit(int64(q.limit))
	return q
}

// Apply runs all four stages in their fixed order.
func (q *QueryFeatures) Apply() *QueryFeatures {
	return q.Filter().Sort().LimitFields().Paginate()
}

func (q *QueryFeatures) FilterQuery() bson.M {
	return q.filter
}

// MergeFilter adds predicates on top of the parsed ones; used for implicit
// scoping such as nested routes and default visibility filters.
func (q *QueryFeatures) MergeFilter(extra bson.M) *QueryFeatures {
	for key, value := range extra {
		q.filter[key] = value
	}
	return q
}

func (q *QueryFeatures) FindOptions() *options.FindOptions {
	return q.opts
}

func (q *QueryFeatures) Page() int {
	return q.page
}

func (q *QueryFeatures) Limit() int {
	return q.limit
}

func (q *QueryFeatures) Skip() int {
	return (q.page - 1) * q.limit
}

// PageRequested reports whether the client asked for an explicit page; the
// out-of-range check only applies in that case.
func (q *QueryFeatures) PageRequested() bool {
	return q.params.Get("page") != ""
}

// splitOperatorKey recognizes bracketed comparison keys such as price[gte]
// or price[$gte] and returns the field and its store operator.
func splitOperatorKey(key string) (field, op string, ok bool) {
	open := strings.Index(key, "[")
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return "", "", false
	}

	field = key[:open]
	raw := key[open+1 : len(key)-1]

	if mongoOp, found := comparisonOps[raw]; found {
		return field, mongoOp, true
	}
	if mongoOp, found := comparisonOps[strings.TrimPrefix(raw, "$")]; found && strings.HasPrefix(raw, "$") {
		return field, mongoOp, true
	}
	return "", "", false
}

// parseValue converts numeric-looking query values so range predicates
// compare as numbers in the store.
func parseValue(value string) interface{} {
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}
