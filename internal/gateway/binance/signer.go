package binance

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"strings"
)

// ErrNoCredentials is returned when a signed endpoint is called without API
// credentials configured. The original behaviour of attempting the call with
// empty keys only produced confusing remote rejections.
var ErrNoCredentials = errors.New("binance: api credentials not configured")

// Credentials carries the API key pair as an opaque value.
type Credentials struct {
	APIKey    string
	APISecret string
}

func (c Credentials) Empty() bool {
	return strings.TrimSpace(c.APIKey) == "" || strings.TrimSpace(c.APISecret) == ""
}

// Param is a single query parameter. Binance verifies the HMAC over the query
// string exactly as sent, so parameters are kept as an ordered list rather
// than a map: encoding order must match signing order.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered parameter list.
type Params []Param

func (p Params) With(key, value string) Params {
	return append(p, Param{Key: key, Value: value})
}

// Encode serializes the parameters in their given order, query-escaped.
func (p Params) Encode() string {
	var b strings.Builder
	for i, kv := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.Value))
	}
	return b.String()
}

// Sign computes the lowercase hex HMAC-SHA256 of the encoded parameter list.
// Pure function of (params, secret).
func (c Credentials) Sign(p Params) string {
	mac := hmac.New(sha256.New, []byte(c.APISecret))
	mac.Write([]byte(p.Encode()))
	return hex.EncodeToString(mac.Sum(nil))
}
