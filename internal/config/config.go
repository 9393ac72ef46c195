package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig
	AWS    AWSConfig
	Tables TableConfig
}

type AppConfig struct {
	Port string
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint переопределяет адрес DynamoDB (локальная разработка и тесты)
	Endpoint string
}

type TableConfig struct {
	// Links основная таблица ссылок
	Links string
	// DefaultOffers таблица офферов по умолчанию
	DefaultOffers string
	// MultiAccount включает multi-tenant адресацию ключей и таблиц офферов
	MultiAccount bool
	// DomainsToCampaigns статическое отображение домен -> кампания
	DomainsToCampaigns map[string]string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// .env опционален: достаточно переменных окружения
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var cfg Config
	cfg.App.Port = viper.GetString("APP_PORT")
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}

	cfg.AWS.Region = viper.GetString("AMAZON_REGION")
	cfg.AWS.AccessKeyID = viper.GetString("AMAZON_ACCESS_KEY_ID")
	cfg.AWS.SecretAccessKey = viper.GetString("AMAZON_SECRET_ACCESS_KEY")
	cfg.AWS.Endpoint = viper.GetString("DYNAMODB_ENDPOINT")

	cfg.Tables.Links = viper.GetString("AMAZON_DYNAMODB_TABLE")
	cfg.Tables.DefaultOffers = viper.GetString("AMAZON_DYNAMODB_TABLE_DEFAULT")
	cfg.Tables.MultiAccount = viper.GetBool("MULTI_ACCOUNT")

	mapping, err := parseDomainsToCampaigns(viper.GetString("DOMAINS_TO_CAMPAIGNS"))
	if err != nil {
		return nil, err
	}
	cfg.Tables.DomainsToCampaigns = mapping

	if cfg.Tables.Links == "" {
		return nil, errors.New("AMAZON_DYNAMODB_TABLE is required")
	}

	return &cfg, nil
}

// parseDomainsToCampaigns разбирает JSON-объект вида {"domain":"CAMPAIGN"}.
// Разбор выполняется один раз при загрузке конфига, дальше карта только читается.
func parseDomainsToCampaigns(raw string) (map[string]string, error) {
	mapping := make(map[string]string)
	if raw == "" {
		return mapping, nil
	}

	if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
		return nil, fmt.Errorf("invalid DOMAINS_TO_CAMPAIGNS: %w", err)
	}

	return mapping, nil
}
