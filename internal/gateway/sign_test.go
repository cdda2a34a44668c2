package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeSortsAndEscapes(t *testing.T) {
	got := canonicalize(map[string]string{
		"vnp_TxnRef":    "order-42",
		"vnp_Amount":    "1999000",
		"vnp_OrderInfo": "Thanh toan don hang #order-42",
	})
	assert.Equal(t,
		"vnp_Amount=1999000&vnp_OrderInfo=Thanh+toan+don+hang+%23order-42&vnp_TxnRef=order-42",
		got)
}

func TestEscapeComponentKeepsProviderUnreservedSet(t *testing.T) {
	// The provider signs with encodeURIComponent semantics: !*'() stay
	// literal, spaces become "+", everything else percent-escapes.
	assert.Equal(t, "Don+hang+(khuyen+mai!)+*'", escapeComponent("Don hang (khuyen mai!) *'"))
	assert.Equal(t, "100%25", escapeComponent("100%"))
	assert.Equal(t, "a%26b%3Dc", escapeComponent("a&b=c"))
	// A literal percent followed by an escape-looking pair must not be
	// unescaped back.
	assert.Equal(t, "%2521", escapeComponent("%21"))
}
