package config

// Config is the typed application configuration assembled from the
// environment map. All values have working defaults for local
// development except the storage credentials, which must be set for
// uploads to function.
type Config struct {
	Port        string
	Environment string

	DatabasePath string

	AdminUsername string
	AdminPassword string

	JWTSecret          string
	AccessTokenExpiry  int // hours
	RefreshTokenExpiry int // hours

	StorageEndpoint  string
	StorageRegion    string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StoragePublicURL string

	AllowedOrigins []string
}

// Load assembles a Config from an environment map produced by New.
func Load(c map[string]string) *Config {
	return &Config{
		Port:        GetString(c, "PORT", "8080"),
		Environment: GetString(c, "ENVIRONMENT", "development"),

		DatabasePath: GetString(c, "DATABASE_PATH", "data/db.json"),

		AdminUsername: GetString(c, "ADMIN_USERNAME", "admin"),
		AdminPassword: GetString(c, "ADMIN_PASSWORD", ""),

		JWTSecret:          GetString(c, "JWT_SECRET", "dev-secret-change-me"),
		AccessTokenExpiry:  GetInt(c, "ACCESS_TOKEN_EXPIRY_HOURS", 24),
		RefreshTokenExpiry: GetInt(c, "REFRESH_TOKEN_EXPIRY_HOURS", 168),

		StorageEndpoint:  GetString(c, "STORAGE_ENDPOINT", "http://localhost:9000"),
		StorageRegion:    GetString(c, "STORAGE_REGION", "us-east-1"),
		StorageAccessKey: GetString(c, "STORAGE_ACCESS_KEY", ""),
		StorageSecretKey: GetString(c, "STORAGE_SECRET_KEY", ""),
		StorageBucket:    GetString(c, "STORAGE_BUCKET", "portfolio"),
		StoragePublicURL: GetString(c, "STORAGE_PUBLIC_URL", "http://localhost:9000"),

		AllowedOrigins: GetStrings(c, "ACCEPTED_ORIGINS", []string{"*"}),
	}
}

// IsDevelopment reports whether the process runs in development mode.
// Error responses include causes only in development.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
