package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration
type Config struct {
	Server    ServerConfig
	App       AppConfig
	AWS       AWSConfig
	Queue     QueueConfig
	Templates TemplateConfig
	Email     EmailConfig
	Functions FunctionConfig
}

// ServerConfig holds settings for the ops HTTP server
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// AppConfig holds application settings
type AppConfig struct {
	Environment string
	// Base URL used to build the order link embedded in emails
	OrderBaseURL string
}

// AWSConfig holds AWS credentials and settings (shared for SQS, S3, Lambda and SES)
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// QueueConfig holds order notification queue settings
type QueueConfig struct {
	URL string
	// Long poll wait per receive call
	WaitTime time.Duration
	// Max records fetched per receive call
	MaxMessages int
	// Wall-clock budget for processing one received batch; a record cut off
	// mid-processing is left for redelivery
	BatchTimeout time.Duration
}

// TemplateConfig holds the template bucket and the per-type template keys
type TemplateConfig struct {
	Bucket            string
	OrderCreatedKey   string
	OrderCanceledKey  string
	OrderDeliveredKey string
}

// EmailConfig holds outbound email addressing settings
type EmailConfig struct {
	FromAddress string
	FromName    string
	CCAddress   string
}

// FunctionConfig holds the downstream function identifiers the repositories invoke
type FunctionConfig struct {
	GetOrganization string
	ListInventories string
}

// Load loads configuration from environment. Missing required values are a
// fatal startup error, not a per-record one.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnvInt("SERVER_PORT", 8090),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		App: AppConfig{
			Environment:  getEnv("ENVIRONMENT", "development"),
			OrderBaseURL: getEnv("ORDER_BASE_URL", "https://halapp.io"),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "eu-central-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		},
		Queue: QueueConfig{
			URL:          getEnv("SQS_ORDER_QUEUE_URL", ""),
			WaitTime:     time.Duration(getEnvInt("SQS_WAIT_TIME_SECONDS", 20)) * time.Second,
			MaxMessages:  getEnvInt("SQS_MAX_MESSAGES", 10),
			BatchTimeout: time.Duration(getEnvInt("BATCH_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		Templates: TemplateConfig{
			Bucket:            getEnv("S3_TEMPLATE_BUCKET", ""),
			OrderCreatedKey:   getEnv("ORDER_CREATED_EMAIL_TEMPLATE", ""),
			OrderCanceledKey:  getEnv("ORDER_CANCELED_EMAIL_TEMPLATE", ""),
			OrderDeliveredKey: getEnv("ORDER_DELIVERED_EMAIL_TEMPLATE", ""),
		},
		Email: EmailConfig{
			FromAddress: getEnv("SES_FROM_EMAIL", ""),
			FromName:    getEnv("SES_FROM_NAME", ""),
			CCAddress:   getEnv("SES_CC_EMAIL", ""),
		},
		Functions: FunctionConfig{
			GetOrganization: getEnv("LAMBDA_GET_ORGANIZATION_FUNCTION", ""),
			ListInventories: getEnv("LAMBDA_LIST_INVENTORIES_FUNCTION", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that every value the pipeline cannot run without is present.
func (c *Config) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"SQS_ORDER_QUEUE_URL", c.Queue.URL},
		{"S3_TEMPLATE_BUCKET", c.Templates.Bucket},
		{"ORDER_CREATED_EMAIL_TEMPLATE", c.Templates.OrderCreatedKey},
		{"ORDER_CANCELED_EMAIL_TEMPLATE", c.Templates.OrderCanceledKey},
		{"ORDER_DELIVERED_EMAIL_TEMPLATE", c.Templates.OrderDeliveredKey},
		{"SES_FROM_EMAIL", c.Email.FromAddress},
		{"SES_CC_EMAIL", c.Email.CCAddress},
		{"LAMBDA_GET_ORGANIZATION_FUNCTION", c.Functions.GetOrganization},
		{"LAMBDA_LIST_INVENTORIES_FUNCTION", c.Functions.ListInventories},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
