package config

import "time"

// Config es la configuración raíz de la aplicación.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Uploads  UploadsConfig  `yaml:"uploads"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"SERVER_ADDR"             env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// MaxUploadBytes limita el cuerpo multipart de los formularios con foto.
	MaxUploadBytes int64 `yaml:"max_upload_bytes" env:"SERVER_MAX_UPLOAD_BYTES" env-default:"10485760"`
}

// DatabaseConfig: driver sqlite (default, archivo local), postgres o memory.
type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"sqlite"`
	DSN    string `yaml:"dsn"    env:"DB_DSN"    env-default:"pawly.db"`
}

type SessionConfig struct {
	Secret     string        `yaml:"secret"      env:"SESSION_SECRET"      env-required:"true"`
	CookieName string        `yaml:"cookie_name" env:"SESSION_COOKIE_NAME" env-default:"pawly_session"`
	TTL        time.Duration `yaml:"ttl"         env:"SESSION_TTL"         env-default:"168h"`
	Secure     bool          `yaml:"secure"      env:"SESSION_SECURE"      env-default:"false"`
}

// UploadsConfig: backend local (directorio) o s3 (bucket compatible).
type UploadsConfig struct {
	Backend string   `yaml:"backend" env:"UPLOADS_BACKEND" env-default:"local"`
	Dir     string   `yaml:"dir"     env:"UPLOADS_DIR"     env-default:"static/uploads"`
	S3      S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"     env:"S3_BUCKET"`
	Region    string `yaml:"region"     env:"S3_REGION"     env-default:"us-east-1"`
	Endpoint  string `yaml:"endpoint"   env:"S3_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"S3_SECRET_KEY"`
	// PathStyle es necesario para MinIO y similares.
	PathStyle bool `yaml:"path_style" env:"S3_PATH_STYLE" env-default:"true"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
	App    string `yaml:"app"    env:"APP_NAME"   env-default:"pawly"`
}
