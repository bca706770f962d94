package grammar

import (
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"
)

// regexCacheSize bounds the compiled-pattern cache. This is not a packrat
// memo cache: it keys on pattern text, never on input position, so it has
// no bearing on match results - only on how often regexp.Compile runs.
const regexCacheSize = 256

var regexCache, _ = lru.New[string, *regexp.Regexp](regexCacheSize)

// compileCached compiles source into an anchored regexp, reusing a
// previously compiled pattern with the same source text if one is cached.
func compileCached(source string) (*regexp.Regexp, error) {
	pattern := `\A(?:` + source + `)`
	if re, ok := regexCache.Get(pattern); ok {
		return re, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	regexCache.Add(pattern, re)
	return re, nil
}
