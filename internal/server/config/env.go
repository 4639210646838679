package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const envPrefix = "USERKEEPER_"

// parseEnv overlays USERKEEPER_* variables. Unset or empty variables are
// ignored; malformed numeric, boolean or duration values are errors.
func parseEnv(config *Config) error {
	lookup := func(name string) (string, bool) {
		v, ok := os.LookupEnv(envPrefix + name)
		return v, ok && v != ""
	}

	strs := map[string]*string{
		"ADDR":         &config.EndpointAddrHTTP,
		"DATABASE_DSN": &config.DatabaseDSN,
		"SECRET_KEY":   &config.SecretKey,
		"LOG_LEVEL":    &config.LogLevel,
		"S3_USER":      &config.S3RootUser,
		"S3_PASSWORD":  &config.S3RootPassword,
		"S3_BUCKET":    &config.S3Bucket,
		"S3_REGION":    &config.S3Region,
		"S3_ENDPOINT":  &config.S3BaseEndpoint,
	}
	for name, dst := range strs {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}

	if v, ok := lookup("TOKEN_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sTOKEN_TTL: %w", envPrefix, err)
		}
		config.AccessTokenValidityDuration = d
	}
	if v, ok := lookup("BCRYPT_COST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sBCRYPT_COST: %w", envPrefix, err)
		}
		config.BcryptCost = n
	}
	if v, ok := lookup("VERIFY_IDENTITY"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sVERIFY_IDENTITY: %w", envPrefix, err)
		}
		config.VerifyIdentity = b
	}
	if v, ok := lookup("MAX_UPLOAD_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sMAX_UPLOAD_BYTES: %w", envPrefix, err)
		}
		config.MaxUploadBytes = n
	}
	if v, ok := lookup("CORS_ORIGINS"); ok {
		config.CORSAllowedOrigins = splitList(v)
	}
	return nil
}

// splitList parses a comma-separated list, dropping blank items.
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
