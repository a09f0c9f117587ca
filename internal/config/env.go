package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr        string
	GinMode        string
	DBDriver       string
	DBDSN          string
	UploadDir      string
	PublicBaseURL  string
	ExportDir      string
	ExportSchedule string
	CORSOrigins    []string
	NewRelicKey    string
	NewRelicApp    string
	CompanyName    string
	CompanyAddress string
	PDFFontPath    string

	// Object storage for bill photos; empty endpoint keeps them on disk.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioPublicURL string

	// Redis relays trip changes between instances; empty disables it.
	RedisURL     string
	RedisChannel string
}

const defaultMySQLDSN = "root:@tcp(127.0.0.1:3306)/fleet_billing?parseTime=false&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"

// LoadEnv reads .env when present. Variables already set in the process
// environment are not overridden.
func LoadEnv() Env {
	_ = godotenv.Load()

	driver := strings.ToLower(getenv("DB_DRIVER", "mysql"))
	if driver == "postgres" || driver == "postgresql" {
		driver = "pgx"
	}

	return Env{
		AppAddr:        getenv("APP_ADDR", ":8080"),
		GinMode:        getenv("GIN_MODE", ""),
		DBDriver:       driver,
		DBDSN:          getenv("DB_DSN", defaultMySQLDSN),
		UploadDir:      getenv("UPLOAD_DIR", "uploads"),
		PublicBaseURL:  strings.TrimRight(getenv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		ExportDir:      getenv("EXPORT_DIR", "exports"),
		ExportSchedule: lookupenv("EXPORT_SCHEDULE", "0 5 0 20 * *"),
		CORSOrigins:    splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		NewRelicKey:    getenv("NEW_RELIC_LICENSE_KEY", ""),
		NewRelicApp:    getenv("NEW_RELIC_APP_NAME", "Fleet Billing API"),
		CompanyName:    getenv("COMPANY_NAME", ""),
		CompanyAddress: getenv("COMPANY_ADDRESS", ""),
		PDFFontPath:    getenv("PDF_FONT_PATH", ""),

		MinioEndpoint:  getenv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "fleet-bills"),
		MinioUseSSL:    getbool("MINIO_USE_SSL", false),
		MinioPublicURL: getenv("MINIO_PUBLIC_URL", ""),

		RedisURL:     getenv("REDIS_URL", ""),
		RedisChannel: getenv("REDIS_CHANNEL", "fleetbilling:trips"),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// lookupenv keeps an explicitly empty value, so EXPORT_SCHEDULE= disables
// the job.
func lookupenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return def
}

func getbool(key string, def bool) bool {
	v, err := strconv.ParseBool(getenv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
