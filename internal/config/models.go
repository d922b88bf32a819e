package config

// LLMConfig represents the configuration for the LLM provider
type LLMConfig struct {
	Provider string
}

// ParserConfig represents the configuration for the extraction pipeline
type ParserConfig struct {
	ScoreThreshold              float64
	CombineRescheduleDelegation bool
	ThreadOrder                 string
	SplitStrategy               string
}

// ServerConfig represents the configuration for the intake server
type ServerConfig struct {
	IntakeType    string
	ListenAddress string
	Domain        string
	RelayEnabled  bool
	RelayAddress  string
}

// StoreConfig represents the configuration for the record store
type StoreConfig struct {
	Type       string
	SQLitePath string
	MySQLDSN   string
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// GetLLM returns the LLM configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider: c.GetString("llm.provider"),
	}
}

// GetParser returns the extraction pipeline configuration
func (c *Config) GetParser() ParserConfig {
	return ParserConfig{
		ScoreThreshold:              c.GetFloat64("parser.score_threshold"),
		CombineRescheduleDelegation: c.GetBool("parser.combine_reschedule_delegation"),
		ThreadOrder:                 c.GetString("parser.thread_order"),
		SplitStrategy:               c.GetString("parser.split_strategy"),
	}
}

// GetServer returns the intake server configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		IntakeType:    c.GetString("server.intake_type"),
		ListenAddress: c.GetString("server.listen_address"),
		Domain:        c.GetString("server.domain"),
		RelayEnabled:  c.GetBool("server.relay.enabled"),
		RelayAddress:  c.GetString("server.relay.address"),
	}
}

// GetStore returns the record store configuration
func (c *Config) GetStore() StoreConfig {
	return StoreConfig{
		Type:       c.GetString("store.type"),
		SQLitePath: c.GetString("store.sqlite_path"),
		MySQLDSN:   c.GetString("store.mysql_dsn"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
		MaxBodySize: c.GetInt("bedrock.max_body_size"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
		MaxBodySize: c.GetInt("gemini.max_body_size"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
		MaxBodySize: c.GetInt("openai.max_body_size"),
	}
}
