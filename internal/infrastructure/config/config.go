package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=720h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo    MongoConfig
	Blob     BlobConfig
	Firebase FirebaseConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=storefront"`
}

// BlobConfig selects the object-storage bucket for product images. BucketURL
// is a gocloud.dev URL (gs://bucket in production, file:///path locally);
// PublicBaseURL is the prefix public image URLs are built from.
type BlobConfig struct {
	BucketURL     string `env:"BLOB_BUCKET_URL,       default=file:///tmp/storefront-media"`
	PublicBaseURL string `env:"BLOB_PUBLIC_BASE_URL,  default=http://localhost:8080/media"`
}

// FirebaseConfig points at the credential-service project. When
// CredentialsFile is empty, registration falls back to locally minted ids.
type FirebaseConfig struct {
	CredentialsFile string `env:"FIREBASE_CREDENTIALS_FILE"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
