package service

import "strings"

// Минимальная длина идентификатора ссылки; короче — отказ без похода в БД
const minLinkIDLength = 3

// CandidateKeys строит упорядоченный список ключей поиска для пути запроса.
//
// Схемы адресации сосуществуют, поэтому ключи перебираются по убыванию
// специфичности: host-scoped -> account-scoped (multi-tenant) -> bare.
// Пустой список — корректный исход "не найдено", а не ошибка.
func CandidateKeys(path, forwardedHost string, multiTenant bool) []string {
	linkID, accountID := splitPath(path)
	if len(linkID) < minLinkIDLength {
		return nil
	}

	var candidates []string
	if forwardedHost != "" {
		candidates = append(candidates, forwardedHost+"#"+linkID)
	}
	if multiTenant && accountID != "" {
		candidates = append(candidates, strings.ToUpper(accountID)+"#"+linkID)
	}
	if !multiTenant {
		candidates = append(candidates, linkID)
	}

	return candidates
}

// splitPath извлекает идентификатор ссылки и контекст аккаунта из пути.
// Один сегмент — голый идентификатор; два сегмента — легаси-адресация
// "/:account/linkId" (двоеточие опционально); больше двух — не ссылка.
func splitPath(path string) (linkID, accountID string) {
	var parts []string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}

	switch len(parts) {
	case 1:
		return parts[0], ""
	case 2:
		return parts[1], strings.TrimPrefix(parts[0], ":")
	default:
		return "", ""
	}
}
