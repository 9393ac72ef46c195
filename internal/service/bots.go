package service

import (
	"strings"

	"github.com/mssola/useragent"
)

// Сигнатуры известных краулеров: поисковики, превью соцсетей и мессенджеров,
// AI-краулеры, архиваторы. Классификация влияет только на учёт кликов,
// редирект для ботов выполняется как обычно.
var botSignatures = []string{
	"Googlebot",
	"Google-InspectionTool",
	"AdsBot-Google",
	"bingbot",
	"YandexBot",
	"Baiduspider",
	"DuckDuckBot",
	"Applebot",
	"PetalBot",
	"Bytespider",
	"Sogou",
	"Exabot",
	"Qwantify",
	"SeznamBot",
	"facebookexternalhit",
	"Facebot",
	"Twitterbot",
	"LinkedInBot",
	"Slackbot-LinkExpanding",
	"Discordbot",
	"WhatsApp/",
	"TelegramBot",
	"SkypeUriPreview",
	"GPTBot",
	"ClaudeBot",
	"PerplexityBot",
	"CCBot",
	"ia_archiver",
}

// IsBot определяет бота по подстроке User-Agent (без учёта регистра)
// с дополнительной общей проверкой парсером UA.
func IsBot(userAgent string) bool {
	if userAgent == "" {
		return false
	}

	normalized := strings.ToLower(userAgent)
	for _, signature := range botSignatures {
		if strings.Contains(normalized, strings.ToLower(signature)) {
			return true
		}
	}

	return useragent.New(userAgent).Bot()
}
