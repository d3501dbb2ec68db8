package config

import (
	"os"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gopkg.in/yaml.v3"
)

func Init(filepath string) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		panic(err)
	}

	var conf ServiceConf
	if err := yaml.Unmarshal(content, &conf); err != nil {
		panic(err)
	}
	globalConfig = conf

	hlog.Debugf("config debug: %+v", globalConfig)
}

func GetServerConf() ServerConf {
	return globalConfig.Server
}

func GetMySQLConf() MySQLConf {
	return globalConfig.MySQL
}

func GetRedisConf() RedisConf {
	return globalConfig.Redis
}

func GetJWTConfig() JWTConf {
	return globalConfig.JWT
}

func GetCORSConf() CORSConf {
	return globalConfig.CORS
}

func GetSessionConf() SessionConf {
	return globalConfig.Session
}

func GetRateLimitConf() []RateLimitConf {
	return globalConfig.RateLimit
}

func GetLoggerConf() LoggerConf {
	return globalConfig.Logger
}

func GetLoginProtectionConf() LoginProtectionConf {
	return globalConfig.LoginProtection
}

func GetRegisterProtectionConf() RegisterProtectionConf {
	return globalConfig.RegisterProtection
}

func GetPasswordConf() PasswordConf {
	return globalConfig.Password
}

func GetVerificationConf() VerificationConf {
	return globalConfig.Verification
}

func GetMailConf() MailConf {
	return globalConfig.Mail
}

var globalConfig ServiceConf

type ServiceConf struct {
	Server             ServerConf             `yaml:"server"`
	MySQL              MySQLConf              `yaml:"mysql"`
	Redis              RedisConf              `yaml:"redis"`
	JWT                JWTConf                `yaml:"jwt"`
	CORS               CORSConf               `yaml:"cors"`
	Session            SessionConf            `yaml:"session"`
	RateLimit          []RateLimitConf        `yaml:"rate_limit"`
	Logger             LoggerConf             `yaml:"logger"`
	LoginProtection    LoginProtectionConf    `yaml:"login_protection"`
	RegisterProtection RegisterProtectionConf `yaml:"register_protection"`
	Password           PasswordConf           `yaml:"password"`
	Verification       VerificationConf       `yaml:"verification"`
	Mail               MailConf               `yaml:"mail"`
}

type ServerConf struct {
	Addr string `yaml:"addr"`
}

type LoginProtectionConf struct {
	WindowSeconds        int `yaml:"window_seconds"`
	Limit                int `yaml:"limit"`
	BlockMinDuration     int `yaml:"block_min_duration"`
	BlockHourDuration    int `yaml:"block_hour_duration"`
	LevelDuration        int `yaml:"level_duration"`
	SuccessWindowSeconds int `yaml:"success_window_seconds"`
	SuccessLimit         int `yaml:"success_limit"`
}

type RegisterProtectionConf struct {
	BlockMinutes int `yaml:"block_minutes"`
}

type MySQLConf struct {
	DBName   string `yaml:"db_name"`
	IP       string `yaml:"ip"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	MaxOpenConns       int `yaml:"max_open_conns"`
	MaxIdleConns       int `yaml:"max_idle_conns"`
	ConnMaxLifetimeSec int `yaml:"conn_max_lifetime_sec"`
}

type RedisConf struct {
	IP       string `yaml:"ip"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type JWTConf struct {
	Issuer string `yaml:"issuer"`

	AccessTokenSecret  string `yaml:"access_token_secret"`
	RefreshTokenSecret string `yaml:"refresh_token_secret"`

	AccessExpiration  int `yaml:"access_expiration"`
	RefreshExpiration int `yaml:"refresh_expiration"`
}

type CORSConf struct {
	AllowOrigins     []string `yaml:"allow_origins"`
	AllowMethods     []string `yaml:"allow_methods"`
	AllowHeaders     []string `yaml:"allow_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAge           int      `yaml:"max_age"`
}

type SessionConf struct {
	StorePrefix  string `yaml:"store_prefix"`
	ClaimsPrefix string `yaml:"claims_prefix"`
	Name         string `yaml:"name"`
	Path         string `yaml:"path"`
	Domain       string `yaml:"domain"`
	MaxAge       int    `yaml:"max_age"`
	Secure       bool   `yaml:"secure"`
	HTTPOnly     bool   `yaml:"http_only"`
	SameSite     string `yaml:"same_site"`
}

type RateLimitConf struct {
	Path          string `yaml:"path"`
	WindowSeconds int    `yaml:"window_seconds"`
	Limit         int64  `yaml:"limit"`
	HasSession    bool   `yaml:"has_session"`
}

type LoggerConf struct {
	Level      string `yaml:"level"`
	Dir        string `yaml:"dir"`
	FileName   string `yaml:"file_name"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

// PasswordConf controls the pbkdf2 work factor. Every stored hash records the
// iteration count it was derived with, so raising it only affects new hashes.
type PasswordConf struct {
	Iterations int `yaml:"iterations"`
}

type VerificationConf struct {
	CodeLength  int `yaml:"code_length"`
	TTLSeconds  int `yaml:"ttl_seconds"`
	MaxAttempts int `yaml:"max_attempts"`
}

type MailConf struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	Address   string `yaml:"address"`
	Name      string `yaml:"name"`
	EnableTLS bool   `yaml:"enable_tls"`
}
