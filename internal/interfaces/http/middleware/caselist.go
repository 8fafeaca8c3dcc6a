package middleware

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// CaseListMemory remembers the last case list page the user came from so
// referral pages can link back to it. The case list is recognised either as
// the request path itself or as the path of a same-site Referer.
func CaseListMemory(prefixes []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "GET" {
			if path := caseListPath(c, prefixes); path != "" {
				if sess := GetSession(c); sess != nil {
					sess.SetRecentCaseListPath(path)
				}
			}
		}
		c.Next()
	}
}

func caseListPath(c *gin.Context, prefixes []string) string {
	if matchesPrefix(c.Request.URL.Path, prefixes) {
		return c.Request.URL.RequestURI()
	}

	referer, err := url.Parse(c.Request.Referer())
	if err != nil || referer.Path == "" {
		return ""
	}
	if referer.Host != "" && referer.Host != c.Request.Host {
		return ""
	}
	if matchesPrefix(referer.Path, prefixes) {
		return referer.RequestURI()
	}
	return ""
}

func matchesPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
