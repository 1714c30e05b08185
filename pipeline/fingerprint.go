package pipeline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/ham-zax/distill"
)

// Fingerprint derives the cache key for a capture processed under a
// configuration. Only settings that change the output participate.
func Fingerprint(html string, cfg distill.Config) string {
	h := xxhash.New()
	_, _ = io.WriteString(h, html)
	_, _ = io.WriteString(h, "\x00")
	_, _ = fmt.Fprintf(h, "%d|%s", cfg.MaxContentLength, strings.Join(cfg.RuleSets, ","))
	return strconv.FormatUint(h.Sum64(), 16)
}
