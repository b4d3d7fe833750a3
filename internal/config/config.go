package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App        App        `mapstructure:"app"`
	Server     Server     `mapstructure:"server"`
	LLM        LLM        `mapstructure:"llm"`
	Email      Email      `mapstructure:"email"`
	Marketing  Marketing  `mapstructure:"marketing"`
	Scraper    Scraper    `mapstructure:"scraper"`
	Topics     Topics     `mapstructure:"topics"`
	Generation Generation `mapstructure:"generation"`
	Storage    Storage    `mapstructure:"storage"`
	Blog       Blog       `mapstructure:"blog"`
	Logging    Logging    `mapstructure:"logging"`
}

// App holds general application configuration
type App struct {
	Debug bool `mapstructure:"debug"`
}

// Server holds HTTP server configuration
type Server struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"` // Upper bound on one request, model calls included
	CORS            CORS          `mapstructure:"cors"`
}

// CORS holds cross-origin settings for the HTTP server
type CORS struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LLM holds model provider configuration
type LLM struct {
	Provider    string  `mapstructure:"provider"` // groq, openai, ollama, gemini
	Model       string  `mapstructure:"model"`
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Temperature float64 `mapstructure:"temperature"`
}

// Email holds SMTP configuration
type Email struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Secure   bool   `mapstructure:"secure"` // implicit TLS instead of STARTTLS
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// Marketing holds recipients and schedules for automated delivery
type Marketing struct {
	TeamEmails     []string `mapstructure:"team_emails"`
	DailySchedule  string   `mapstructure:"daily_schedule"`
	WeeklySchedule string   `mapstructure:"weekly_schedule"`
	WeeklyCount    int      `mapstructure:"weekly_count"`
}

// Scraper holds outbound fetch configuration
type Scraper struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	UserAgent    string        `mapstructure:"user_agent"`
	SiteURL      string        `mapstructure:"site_url"`
	ResourcesURL string        `mapstructure:"resources_url"`
	BlogURL      string        `mapstructure:"blog_url"`
	PageDelay    time.Duration `mapstructure:"page_delay"`
}

// Topics holds topic research sources
type Topics struct {
	Sources     []TopicSource `mapstructure:"sources"`
	Feeds       []string      `mapstructure:"feeds"`
	CuratedFile string        `mapstructure:"curated_file"`
}

// TopicSource is one page scraped for headlines
type TopicSource struct {
	URL      string `mapstructure:"url"`
	Selector string `mapstructure:"selector"`
}

// Generation holds batch generation settings
type Generation struct {
	BatchConcurrency int `mapstructure:"batch_concurrency"`
}

// Storage holds persistence paths
type Storage struct {
	BlogsDir string `mapstructure:"blogs_dir"`
}

// Blog holds editorial lists exposed to clients
type Blog struct {
	Topics      []string `mapstructure:"topics"`
	SEOKeywords []string `mapstructure:"seo_keywords"`
}

// Logging holds logging configuration
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var globalConfig *Config

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".autoblog")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if configFile != "" || !os.IsNotExist(err) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := postProcessConfig(config); err != nil {
		return nil, fmt.Errorf("error post-processing config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app.debug", false)

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "10m")
	viper.SetDefault("server.shutdown_timeout", "10s")
	viper.SetDefault("server.request_timeout", "10m")
	viper.SetDefault("server.cors.enabled", true)
	viper.SetDefault("server.cors.allowed_origins", []string{"*"})

	// LLM defaults
	viper.SetDefault("llm.provider", "groq")
	viper.SetDefault("llm.model", "llama-3.1-8b-instant")
	viper.SetDefault("llm.temperature", 0.7)

	// Email defaults
	viper.SetDefault("email.host", "smtp.gmail.com")
	viper.SetDefault("email.port", 587)
	viper.SetDefault("email.secure", false)

	// Marketing defaults
	viper.SetDefault("marketing.team_emails", []string{})
	viper.SetDefault("marketing.daily_schedule", "0 9 * * *")
	viper.SetDefault("marketing.weekly_schedule", "0 9 * * 1")
	viper.SetDefault("marketing.weekly_count", 3)

	// Scraper defaults
	viper.SetDefault("scraper.timeout", "10s")
	viper.SetDefault("scraper.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	viper.SetDefault("scraper.site_url", "https://technologyrivers.com")
	viper.SetDefault("scraper.resources_url", "https://technologyrivers.com/resources/")
	viper.SetDefault("scraper.blog_url", "https://technologyrivers.com/blog/")
	viper.SetDefault("scraper.page_delay", "1s")

	// Topic research defaults
	viper.SetDefault("topics.sources", []map[string]string{
		{"url": "https://www.healthitsecurity.com", "selector": "h2, h3"},
		{"url": "https://www.hipaajournal.com", "selector": "h2, h3"},
		{"url": "https://www.healthcare.ai", "selector": "h2, h3"},
	})
	viper.SetDefault("topics.feeds", []string{})

	viper.SetDefault("generation.batch_concurrency", 2)
	viper.SetDefault("storage.blogs_dir", "blogs")

	viper.SetDefault("blog.topics", []string{
		"AI in Healthcare",
		"HIPAA Compliance",
		"Healthcare Data Security",
		"Medical AI Applications",
		"Digital Health Innovation",
		"Healthcare Technology Trends",
		"AI Regulation in Healthcare",
		"Patient Data Privacy",
		"Healthcare Automation",
		"Telemedicine and AI",
	})
	viper.SetDefault("blog.seo_keywords", []string{
		"healthcare AI",
		"HIPAA compliance",
		"medical technology",
		"healthcare innovation",
		"patient privacy",
		"healthcare data",
		"AI regulation",
		"digital health",
		"healthcare automation",
		"medical AI",
	})

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	bindEnvKeys("server.port", []string{"PORT"})

	bindEnvKeys("llm.provider", []string{"LLM_PROVIDER"})
	bindEnvKeys("llm.model", []string{"LLM_MODEL"})
	bindEnvKeys("llm.base_url", []string{"LLM_BASE_URL"})

	// API key - generic name first, then provider-specific names
	bindEnvKeys("llm.api_key", []string{
		"LLM_API_KEY",
		"GROQ_API_KEY",
		"OPENAI_API_KEY",
		"GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	bindEnvKeys("email.host", []string{"EMAIL_HOST", "SMTP_HOST"})
	bindEnvKeys("email.port", []string{"EMAIL_PORT", "SMTP_PORT"})
	bindEnvKeys("email.secure", []string{"EMAIL_SECURE"})
	bindEnvKeys("email.username", []string{"EMAIL_USER", "SMTP_USERNAME"})
	bindEnvKeys("email.password", []string{"EMAIL_PASS", "SMTP_PASSWORD"})
	bindEnvKeys("email.from", []string{"EMAIL_FROM"})

	bindEnvKeys("marketing.team_emails", []string{"MARKETING_TEAM_EMAILS"})
	bindEnvKeys("marketing.daily_schedule", []string{"DAILY_SCHEDULE"})
	bindEnvKeys("marketing.weekly_schedule", []string{"WEEKLY_SCHEDULE"})

	bindEnvKeys("app.debug", []string{"DEBUG", "AUTOBLOG_DEBUG"})
	bindEnvKeys("logging.level", []string{"LOG_LEVEL"})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// postProcessConfig applies post-processing to configuration values
func postProcessConfig(config *Config) error {
	if config.Storage.BlogsDir != "" {
		config.Storage.BlogsDir = expandPath(config.Storage.BlogsDir)
	}
	if config.Topics.CuratedFile != "" {
		config.Topics.CuratedFile = expandPath(config.Topics.CuratedFile)
	}

	// A comma list from MARKETING_TEAM_EMAILS arrives as a single element
	config.Marketing.TeamEmails = splitList(config.Marketing.TeamEmails)
	config.Topics.Feeds = splitList(config.Topics.Feeds)

	config.LLM.Provider = strings.ToLower(strings.TrimSpace(config.LLM.Provider))
	if config.LLM.Provider == "ollama" && config.LLM.BaseURL == "" {
		config.LLM.BaseURL = "http://localhost:11434"
	}
	if config.Email.From == "" {
		config.Email.From = config.Email.Username
	}

	for i, src := range config.Topics.Sources {
		if src.Selector == "" {
			config.Topics.Sources[i].Selector = "h2, h3"
		}
	}

	return nil
}

// splitList flattens comma-separated entries and drops blanks
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// validateConfig ensures configuration values are usable
func validateConfig(config *Config) error {
	var errors []string

	switch config.LLM.Provider {
	case "groq", "openai", "ollama", "gemini":
	default:
		errors = append(errors, fmt.Sprintf("Unknown LLM provider: %s. Supported: groq, openai, ollama, gemini", config.LLM.Provider))
	}

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		errors = append(errors, fmt.Sprintf("Invalid server port: %d", config.Server.Port))
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedules := map[string]string{
		"marketing.daily_schedule":  config.Marketing.DailySchedule,
		"marketing.weekly_schedule": config.Marketing.WeeklySchedule,
	}
	for key, spec := range schedules {
		if _, err := parser.Parse(spec); err != nil {
			errors = append(errors, fmt.Sprintf("Invalid cron expression for %s: %q", key, spec))
		}
	}

	if config.Marketing.WeeklyCount < 1 {
		errors = append(errors, "marketing.weekly_count must be at least 1")
	}
	if config.Generation.BatchConcurrency < 1 {
		errors = append(errors, "generation.batch_concurrency must be at least 1")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// RequiresAPIKey reports whether the configured provider needs a key
func (l LLM) RequiresAPIKey() bool {
	return l.Provider != "ollama"
}

// Convenience getters for commonly used configuration values
func GetServer() Server       { return Get().Server }
func GetLLM() LLM             { return Get().LLM }
func GetEmail() Email         { return Get().Email }
func GetMarketing() Marketing { return Get().Marketing }
func GetScraper() Scraper     { return Get().Scraper }
func GetLogging() Logging     { return Get().Logging }
func IsDebugMode() bool       { return Get().App.Debug }

// Reset clears the global configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viper.Reset()
}
