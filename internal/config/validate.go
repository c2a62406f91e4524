package config

import (
	"fmt"
	"strings"
)

const minSecretLen = 32

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	UploadsLocal = "local"
	UploadsS3    = "s3"
)

// Validate aplica reglas que los tags no expresan. Load la llama siempre.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required for driver %q", c.Database.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("database.driver must be sqlite, postgres or memory (got %q)", c.Database.Driver)
	}

	if len(c.Session.Secret) < minSecretLen {
		return fmt.Errorf("session.secret must be at least %d characters (got %d)", minSecretLen, len(c.Session.Secret))
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be > 0 (got %s)", c.Session.TTL)
	}

	switch c.Uploads.Backend {
	case UploadsLocal:
		if strings.TrimSpace(c.Uploads.Dir) == "" {
			return fmt.Errorf("uploads.dir is required for the local backend")
		}
	case UploadsS3:
		if strings.TrimSpace(c.Uploads.S3.Bucket) == "" {
			return fmt.Errorf("uploads.s3.bucket is required for the s3 backend")
		}
	default:
		return fmt.Errorf("uploads.backend must be local or s3 (got %q)", c.Uploads.Backend)
	}

	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be > 0 (got %d)", c.Server.MaxUploadBytes)
	}

	return nil
}
