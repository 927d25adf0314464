package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// RuleThresholds holds the cut-offs and point weights used by the risk
// evaluator. Values are fixed at load time; the evaluator never reads the
// environment on its own.
type RuleThresholds struct {
	AttendanceMinPct      float64
	AttendancePoints      int
	GPADropDelta          float64
	GPADropPoints         int
	LMSInactiveDays       int
	LMSInactivePoints     int
	FeeDelayDays          int
	FeeDelayPoints        int
	FailedModulesHighMin  int
	FailedModulesHighPts  int
	FailedModulesLowPts   int
	MissedAssessHighMin   int
	MissedAssessHighPts   int
	MissedAssessLowPts    int
	HeavyCourseLoadMin    int
	HeavyCourseLoadPoints int
	GPAScaleMax           float64
}

// Config holds runtime configuration values for the advisory service.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	DatabaseURL      string
	RedisURL         string
	JWTSecret        string
	OverviewCacheTTL time.Duration
	AgentWorkers     int
	GeneratorEnabled bool
	GeneratorTimeout time.Duration
	AIProvider       string
	OpenAIAPIKey     string
	OpenAIModel      string
	Rules            RuleThresholds
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// DefaultRuleThresholds returns the documented scoring rules.
func DefaultRuleThresholds() RuleThresholds {
	return RuleThresholds{
		AttendanceMinPct:      60,
		AttendancePoints:      30,
		GPADropDelta:          0.5,
		GPADropPoints:         25,
		LMSInactiveDays:       14,
		LMSInactivePoints:     20,
		FeeDelayDays:          30,
		FeeDelayPoints:        25,
		FailedModulesHighMin:  2,
		FailedModulesHighPts:  25,
		FailedModulesLowPts:   15,
		MissedAssessHighMin:   3,
		MissedAssessHighPts:   20,
		MissedAssessLowPts:    10,
		HeavyCourseLoadMin:    21,
		HeavyCourseLoadPoints: 10,
		GPAScaleMax:           4.0,
	}
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("DPA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Dropout Prevention API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("overview.cache_ttl", "5m")
	v.SetDefault("agent.workers", 4)
	v.SetDefault("generator.enabled", true)
	v.SetDefault("generator.timeout_ms", 30000)
	v.SetDefault("ai.provider", "openai")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("rules.gpa_scale_max", 4.0)

	ttlString := v.GetString("overview.cache_ttl")
	if ttlString == "" {
		ttlString = "5m"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid overview cache ttl: %w", err)
	}

	timeoutMs := v.GetInt("generator.timeout_ms")
	if timeoutMs <= 0 {
		timeoutMs = 30000
	}

	rules := DefaultRuleThresholds()
	if scale := v.GetFloat64("rules.gpa_scale_max"); scale > 0 {
		rules.GPAScaleMax = scale
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		AppPort:          v.GetString("app.port"),
		DatabaseURL:      v.GetString("database.url"),
		RedisURL:         v.GetString("redis.url"),
		JWTSecret:        v.GetString("jwt.secret"),
		OverviewCacheTTL: ttl,
		AgentWorkers:     v.GetInt("agent.workers"),
		GeneratorEnabled: v.GetBool("generator.enabled"),
		GeneratorTimeout: time.Duration(timeoutMs) * time.Millisecond,
		AIProvider:       strings.ToLower(v.GetString("ai.provider")),
		OpenAIAPIKey:     v.GetString("openai_api_key"),
		OpenAIModel:      v.GetString("openai.model"),
		Rules:            rules,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.AgentWorkers <= 0 {
		cfg.AgentWorkers = 4
	}

	return cfg, nil
}
