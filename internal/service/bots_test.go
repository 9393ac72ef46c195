package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andre-mr/centerpromos-shortlinks-resolver/internal/service"
)

// TestIsBot_KnownSignatures проверяет известные сигнатуры краулеров
func TestIsBot_KnownSignatures(t *testing.T) {
	botAgents := []string{
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
		"Mozilla/5.0 (compatible; bingbot/2.0; +http://www.bing.com/bingbot.htm)",
		"facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)",
		"Twitterbot/1.0",
		"GPTBot/1.0 (+https://openai.com/gptbot)",
		"Mozilla/5.0 (compatible; ClaudeBot/1.0)",
		"WhatsApp/2.23.20.0",
		"ia_archiver (+http://www.alexa.com/site/help/webmasters)",
	}

	for _, ua := range botAgents {
		assert.True(t, service.IsBot(ua), "должен распознаваться как бот: %s", ua)
	}
}

// TestIsBot_CaseInsensitive проверяет сравнение без учёта регистра
func TestIsBot_CaseInsensitive(t *testing.T) {
	assert.True(t, service.IsBot("mozilla/5.0 (compatible; GOOGLEBOT/2.1)"))
	assert.True(t, service.IsBot("telegrambot (like TwitterBot)"))
}

// TestIsBot_RegularBrowsers проверяет, что обычные браузеры ботами не считаются
func TestIsBot_RegularBrowsers(t *testing.T) {
	browserAgents := []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148",
	}

	for _, ua := range browserAgents {
		assert.False(t, service.IsBot(ua), "не должен распознаваться как бот: %s", ua)
	}
}

// TestIsBot_EmptyUserAgent: пустой User-Agent не классифицируется как бот
func TestIsBot_EmptyUserAgent(t *testing.T) {
	assert.False(t, service.IsBot(""))
}
