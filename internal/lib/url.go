package lib

import "net/url"

// RedactURL keeps only scheme and host, node urls often carry api keys in the path or userinfo
func RedactURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "<invalid url>"
	}
	return u.Scheme + "://" + u.Host
}
