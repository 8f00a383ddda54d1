package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

const redacted = "[REDACTED]"

// Keys are matched by substring on the lower-cased key.
var (
	secretKeys = []string{"token", "authorization", "password", "secret", "cookie", "api_key", "apikey", "dsn"}
	hashedKeys = []string{"client_ip", "remote_addr", "user_agent"}
)

// redactor masks secret-looking values and hashes client identifiers so
// they stay correlatable without being logged verbatim.
type redactor struct {
	enabled bool
	salt    string
}

func redactorFromEnv() *redactor {
	r := &redactor{enabled: true, salt: strings.TrimSpace(os.Getenv("LOG_HASH_SALT"))}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_REDACTION_ENABLED"))) {
	case "0", "false", "no", "off":
		r.enabled = false
	}
	return r
}

func (r *redactor) pairs(kv []interface{}) []interface{} {
	if r == nil || !r.enabled || len(kv) == 0 {
		return kv
	}
	out := make([]interface{}, len(kv))
	copy(out, kv)
	for i := 0; i+1 < len(out); i += 2 {
		out[i+1] = r.value(keyOf(out[i]), out[i+1])
	}
	return out
}

func (r *redactor) value(key string, v interface{}) interface{} {
	switch {
	case key != "" && matchesAny(key, secretKeys):
		return redacted
	case key != "" && matchesAny(key, hashedKeys):
		return r.hash(v)
	}
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, inner := range t {
			out[k] = r.value(strings.ToLower(strings.TrimSpace(k)), inner)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, inner := range t {
			out[i] = r.value("", inner)
		}
		return out
	case string:
		if looksLikeCredential(t) {
			return redacted
		}
	}
	return v
}

func (r *redactor) hash(v interface{}) string {
	raw := stringOf(v)
	if raw == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(r.salt + raw))
	return "hash:" + hex.EncodeToString(sum[:])[:12]
}

func matchesAny(key string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(key, n) {
			return true
		}
	}
	return false
}

// looksLikeCredential catches bearer headers, OpenAI style keys and JWTs
// logged under an innocent key.
func looksLikeCredential(s string) bool {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(strings.ToLower(s), "bearer "):
		return true
	case strings.HasPrefix(s, "sk-") && len(s) > 20 && !strings.ContainsAny(s, " \n"):
		return true
	}
	parts := strings.Split(s, ".")
	return len(parts) == 3 && len(parts[0]) > 10 && len(parts[1]) > 10 && !strings.Contains(s, " ")
}

func keyOf(v interface{}) string {
	return strings.ToLower(strings.TrimSpace(stringOf(v)))
}

func stringOf(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
