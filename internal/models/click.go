package models

// ClickEvent событие клика для фонового учёта.
// LinkKey — точный ключ, по которому запись была найдена (не первый кандидат);
// пустое значение означает, что счётчик по ссылке не ведётся.
type ClickEvent struct {
	LinkKey   string
	Campaign  string
	Domain    string
	OfferID   string
	AccountID string
}

// HasOffer сообщает, подлежит ли событие оффер-учёту
func (e *ClickEvent) HasOffer() bool {
	return e.OfferID != "" && (e.Campaign != "" || e.Domain != "")
}
