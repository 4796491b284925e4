package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// AI defaults
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout", "15s")
	v.SetDefault("ai.maxRetries", 3)
	v.SetDefault("ai.temperature", 0.1)
	v.SetDefault("ai.useSystemPrompts", true)

	// Match operation circuit breaker defaults
	v.SetDefault("ai.match.circuitBreaker.enabled", true)
	v.SetDefault("ai.match.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.match.circuitBreaker.interval", "60s")
	v.SetDefault("ai.match.circuitBreaker.timeout", "30s")
	v.SetDefault("ai.match.circuitBreaker.minRequests", 5)
	v.SetDefault("ai.match.circuitBreaker.failureThreshold", 0.6)

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", "30s")
	v.SetDefault("server.writeTimeout", "60s")
	v.SetDefault("server.idleTimeout", "120s")

	// TLS defaults
	v.SetDefault("server.tls.mode", "disabled")
	v.SetDefault("server.tls.minVersion", "1.2")
	v.SetDefault("server.tls.autoReload.enabled", false)
	v.SetDefault("server.tls.autoReload.debounceDelay", "5s")

	// Rate limiting defaults
	v.SetDefault("server.rateLimit.enabled", true)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", "1m")

	// Database defaults
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", "30m")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	// Auth defaults
	v.SetDefault("auth.accessTokenTTL", "24h")
	v.SetDefault("auth.bcryptCost", 10)

	// Broker defaults
	v.SetDefault("broker.enabled", false)
	v.SetDefault("broker.exchange", "hiremate.events")

	// App defaults
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxRequestSize", 1048576) // 1MB

	// Vault defaults
	v.SetDefault("vault.enabled", false)

	// Observability defaults
	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.serviceName", "hiremate")
	v.SetDefault("observability.serviceVersion", "dev")
	v.SetDefault("observability.sampleRate", 1.0)
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 30*time.Second)
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", false)
	v.SetDefault("observability.prometheus.enabled", false)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.healthCheck.timeout", 5*time.Second)
	v.SetDefault("observability.healthCheck.aiModelCheckTimeout", 10*time.Second)
}
