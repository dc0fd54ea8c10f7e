package tax

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/pdeclercq/becgt/util"
)

// SimilarityKey derives the equality key under which two securities are
// considered substantially identical for the wash-sale rule.
//
// Securities tracking the same formal benchmark are always identical, so
// a present benchmark id takes precedence. Otherwise the key is a
// canonical fingerprint of the security's top-holdings set, which
// requires an exact set match; partial overlap never matches.
//
// The key is a pure function of the SecurityInfo values, so it is stable
// across process instances.
func SimilarityKey(info SecurityInfo) string {
	if info.BenchmarkId != "" {
		return "BMK::" + info.BenchmarkId
	}
	return "FP::" + holdingsFingerprint(info.TopHoldings)
}

// Order-independent hash over the holdings set: dedupe, sort, then hash
// with a separator byte between entries. Hash collisions are accepted as
// a known low-probability risk and not defended against.
func holdingsFingerprint(holdings []string) string {
	seen := util.NewSet[string]()
	canonical := make([]string, 0, len(holdings))
	for _, h := range holdings {
		if seen.Has(h) {
			continue
		}
		seen.Add(h)
		canonical = append(canonical, h)
	}
	sort.Strings(canonical)

	hash := sha256.New()
	for _, h := range canonical {
		hash.Write([]byte(h))
		hash.Write([]byte{0})
	}
	return hex.EncodeToString(hash.Sum(nil))
}
