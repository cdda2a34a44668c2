package gateway

import (
	"crypto/hmac"
	"encoding/hex"
	"hash"
	"net/url"
	"sort"
	"strings"
)

// componentEscaper undoes the escapes url.QueryEscape adds beyond what the
// providers sign with. VNPay signs JavaScript encodeURIComponent output
// (spaces as "+"), whose unreserved set additionally keeps !*'() literal;
// escaping those here would break verification against live callbacks.
var componentEscaper = strings.NewReplacer(
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escapeComponent(s string) string {
	return componentEscaper.Replace(url.QueryEscape(s))
}

// canonicalize builds the provider signing payload: keys sorted
// alphabetically, values component-escaped, pairs ampersand-joined. The
// signature field itself must not be part of params.
func canonicalize(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+escapeComponent(params[k]))
	}
	return strings.Join(pairs, "&")
}

func hmacHex(newHash func() hash.Hash, secret, data string) string {
	mac := hmac.New(newHash, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
