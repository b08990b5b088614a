package config

import (
	"os"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	LLM        LLMConfig        `yaml:"llm"`
	Data       DataConfig       `yaml:"data"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Extractor  ExtractorConfig  `yaml:"extractor"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release
}

type DatabaseConfig struct {
	Type string `yaml:"type"` // sqlite, mysql, postgres
	DSN  string `yaml:"dsn"`
}

type LLMConfig struct {
	APIURL      string        `yaml:"api_url"`
	APIKey      string        `yaml:"api_key"`
	Model       string        `yaml:"model"`
	MaxTokens   int           `yaml:"max_tokens"`
	HintTimeout time.Duration `yaml:"hint_timeout"` // 推荐提示调用的超时时间
}

type DataConfig struct {
	Dir       string `yaml:"dir"`
	UploadDir string `yaml:"upload_dir"`
}

type ClassifierConfig struct {
	// AutoCreateThreshold 分类置信度达到该值时自动创建/更新项目工件
	AutoCreateThreshold float64 `yaml:"auto_create_threshold"`
}

type ExtractorConfig struct {
	// URL 文档文本抽取微服务地址，留空则仅按文件名分类
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

var (
	cfg  *Config
	once sync.Once
)

func GetConfig() *Config {
	once.Do(func() {
		cfg = loadConfig()
	})
	return cfg
}

func loadConfig() *Config {
	config := &Config{
		Server: ServerConfig{
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Type: "sqlite",
			DSN:  "./data/app.db",
		},
		LLM: LLMConfig{
			APIURL:      "https://api.openai.com/v1",
			Model:       "gpt-4o",
			MaxTokens:   1024,
			HintTimeout: 20 * time.Second,
		},
		Data: DataConfig{
			Dir:       "./data",
			UploadDir: "./data/uploads",
		},
		Classifier: ClassifierConfig{
			AutoCreateThreshold: 0.5,
		},
		Extractor: ExtractorConfig{
			Timeout: 30 * time.Second,
		},
	}

	data, err := os.ReadFile(Path())
	if err == nil {
		yaml.Unmarshal(data, config)
	}

	// 环境变量优先级高于配置文件
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.LLM.APIKey = apiKey
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.LLM.APIURL = baseURL
	}
	if model := os.Getenv("OPENAI_MODEL_NAME"); model != "" {
		config.LLM.Model = model
	}

	// 数据库环境变量
	if dbType := os.Getenv("DB_TYPE"); dbType != "" {
		config.Database.Type = dbType
	}
	if dbDSN := os.Getenv("DB_DSN"); dbDSN != "" {
		config.Database.DSN = dbDSN
	}

	// 数据目录环境变量
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		config.Data.Dir = dataDir
	}
	if uploadDir := os.Getenv("UPLOAD_DIR"); uploadDir != "" {
		config.Data.UploadDir = uploadDir
	}

	if extractorURL := os.Getenv("EXTRACTOR_URL"); extractorURL != "" {
		config.Extractor.URL = extractorURL
	}
	if threshold := os.Getenv("CLASSIFIER_THRESHOLD"); threshold != "" {
		if v, err := strconv.ParseFloat(threshold, 64); err == nil && v > 0 {
			config.Classifier.AutoCreateThreshold = v
		}
	}

	return config
}

// Path 配置文件路径，CONFIG_PATH 环境变量可覆盖
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func UpdateConfig(newCfg *Config) {
	cfg = newCfg
}
