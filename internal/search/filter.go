package search

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// FilterByAllowedDomains keeps results whose URL host equals an allow-list
// entry or is a subdomain of one. Order is preserved. An empty allow-list
// returns results unchanged.
func FilterByAllowedDomains[T any](results []T, allowList []string, urlOf func(T) (string, bool)) []T {
	allowed := normalizeAllowList(allowList)
	if len(allowed) == 0 {
		return results
	}

	filtered := make([]T, 0, len(results))
	for _, r := range results {
		raw, ok := urlOf(r)
		if !ok {
			continue
		}
		host := hostOf(raw)
		if host == "" {
			continue
		}
		if matchesAny(host, allowed) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// FilterResults - то же самое для уже нормализованных результатов
func FilterResults(results []SearchResult, allowList []string) []SearchResult {
	return FilterByAllowedDomains(results, allowList, func(r SearchResult) (string, bool) {
		return r.Link, r.Link != ""
	})
}

func normalizeAllowList(allowList []string) []string {
	out := make([]string, 0, len(allowList))
	for _, entry := range allowList {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		var d string
		if strings.Contains(entry, "://") {
			d = hostOf(entry)
		} else {
			if i := strings.IndexByte(entry, '/'); i >= 0 {
				entry = entry[:i]
			}
			d = normalizeHost(entry)
		}
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}

// только http/https с валидным хостом
func hostOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if u.Hostname() == "" {
		return ""
	}
	return normalizeHost(u.Hostname())
}

func normalizeHost(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		host = ascii
	}
	host = strings.TrimPrefix(host, "www.")
	return host
}

func matchesAny(host string, allowed []string) bool {
	for _, d := range allowed {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
