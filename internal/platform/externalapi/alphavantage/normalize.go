package alphavantage

import (
	"fmt"

	"github.com/guregu/null/v6"
	"github.com/tidwall/gjson"

	"quotepanel/internal/feature/quotes/domain"
	"quotepanel/internal/feature/quotes/domain/entity"
)

// Provider labels of the per-bucket sub-fields.
const (
	fieldOpen   = "1. open"
	fieldHigh   = "2. high"
	fieldLow    = "3. low"
	fieldClose  = "4. close"
	fieldVolume = "5. volume"
)

// messageFields are the top-level keys the provider uses instead of a series
// when it rejects or throttles a request.
var messageFields = []string{"Error Message", "Note", "Information"}

// SeriesField returns the top-level key that holds the series for interval,
// e.g. "Time Series (5min)".
func SeriesField(interval string) string {
	return fmt.Sprintf("Time Series (%s)", interval)
}

// Normalize flattens a TIME_SERIES_INTRADAY body into a Series.
//
// Records follow the key order of the provider object and are not re-sorted.
// ok is false when the series field is absent or not an object; an error is
// returned only when body is not JSON.
func Normalize(body []byte, interval string) (series entity.Series, ok bool, err error) {
	if !gjson.ValidBytes(body) {
		return nil, false, fmt.Errorf("%w: body is not valid JSON", domain.ErrMalformedResponse)
	}

	ts := member(gjson.ParseBytes(body), SeriesField(interval))
	if !ts.IsObject() {
		return entity.Series{}, false, nil
	}

	series = entity.Series{}
	// a repeated bucket key keeps its first position and its last value
	index := map[string]int{}
	ts.ForEach(func(key, value gjson.Result) bool {
		q := entity.Quote{
			Time:   key.String(),
			Open:   subField(value, fieldOpen),
			High:   subField(value, fieldHigh),
			Low:    subField(value, fieldLow),
			Close:  subField(value, fieldClose),
			Volume: subField(value, fieldVolume),
		}
		if i, seen := index[q.Time]; seen {
			series[i] = q
			return true
		}
		index[q.Time] = len(series)
		series = append(series, q)
		return true
	})
	return series, true, nil
}

// ProviderMessage returns the provider's explanation when a body carries no series.
func ProviderMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	root := gjson.ParseBytes(body)
	for _, name := range messageFields {
		if m := member(root, name); m.Type == gjson.String && m.Str != "" {
			return m.Str
		}
	}
	return ""
}

// member looks a key up literally. Provider keys contain '.', ' ' and parentheses,
// which gjson paths would otherwise interpret.
func member(obj gjson.Result, name string) gjson.Result {
	var out gjson.Result
	if !obj.IsObject() {
		return out
	}
	obj.ForEach(func(key, value gjson.Result) bool {
		if key.String() == name {
			out = value
		}
		return true
	})
	return out
}

func subField(bucket gjson.Result, name string) null.String {
	v := member(bucket, name)
	switch {
	case !v.Exists(), v.Type == gjson.Null:
		return null.String{}
	case v.Type == gjson.String:
		return null.StringFrom(v.Str)
	default:
		return null.StringFrom(v.Raw)
	}
}
