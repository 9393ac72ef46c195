package models

import "net/url"

// LinkRecord запись ссылки в таблице DynamoDB.
// Clicks хранится указателем: само наличие атрибута (даже нулевого) означает,
// что ссылка участвует в учёте кликов.
type LinkRecord struct {
	PK        string `dynamodbav:"PK" json:"pk"`
	URL       string `dynamodbav:"Url" json:"url"`
	Clicks    *int64 `dynamodbav:"Clicks,omitempty" json:"clicks,omitempty"`
	Campaign  string `dynamodbav:"Campaign,omitempty" json:"campaign,omitempty"`
	Domain    string `dynamodbav:"Domain,omitempty" json:"domain,omitempty"`
	OfferID   string `dynamodbav:"OfferID,omitempty" json:"offer_id,omitempty"`
	OfferSK   string `dynamodbav:"OfferSK,omitempty" json:"offer_sk,omitempty"`
	AccountID string `dynamodbav:"AccountID,omitempty" json:"account_id,omitempty"`
}

// TracksClicks сообщает, ведётся ли по ссылке счётчик кликов
func (l *LinkRecord) TracksClicks() bool {
	return l.Clicks != nil
}

// Offer возвращает идентификатор оффера (легаси-записи хранят его в OfferSK)
func (l *LinkRecord) Offer() string {
	if l.OfferID != "" {
		return l.OfferID
	}
	return l.OfferSK
}

// ResolveRequest нормализованный входящий запрос на разрешение короткой ссылки
type ResolveRequest struct {
	Path          string
	ForwardedHost string
	UserAgent     string
	// Query разобранные параметры запроса; при nil используется RawQuery
	Query    url.Values
	RawQuery string
}
