package service

import (
	"net/url"
	"strings"
)

// Разрешённые трекинг-параметры, в порядке применения
var trackingKeys = []string{"fbclid", "gclid", "ttclid", "twclid"}

// MergeTrackingParams переносит разрешённые трекинг-параметры входящего
// запроса в URL назначения. Существующие параметры URL назначения сохраняются,
// совпадающие по имени — перезаписываются. Без трекинг-параметров URL
// возвращается байт-в-байт. Повторное применение с теми же параметрами
// ничего не меняет.
//
// Приоритет отдаётся разобранной карте params; при nil разбирается rawQuery.
func MergeTrackingParams(rawURL string, params url.Values, rawQuery string) string {
	if params == nil && rawQuery != "" {
		parsed, err := url.ParseQuery(rawQuery)
		if err == nil {
			params = parsed
		}
	}
	if params == nil {
		return rawURL
	}

	type pair struct{ key, value string }
	var collected []pair
	for _, key := range trackingKeys {
		if value := params.Get(key); value != "" {
			collected = append(collected, pair{key, value})
		}
	}
	if len(collected) == 0 {
		return rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || !parsed.IsAbs() {
		// URL назначения не разбирается — дописываем строку запроса вручную
		var encoded []string
		for _, p := range collected {
			encoded = append(encoded, url.QueryEscape(p.key)+"="+url.QueryEscape(p.value))
		}
		separator := "?"
		if strings.Contains(rawURL, "?") {
			separator = "&"
		}
		return rawURL + separator + strings.Join(encoded, "&")
	}

	query := parsed.Query()
	for _, p := range collected {
		query.Set(p.key, p.value)
	}
	parsed.RawQuery = query.Encode()

	return parsed.String()
}
