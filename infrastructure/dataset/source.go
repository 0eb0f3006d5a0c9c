package dataset

import (
	"fmt"
	"net/url"
	"strings"

	"people-directory/domain/repositories"
	"people-directory/pkg/config"
)

// NewSource picks a source from the location's scheme:
// http(s) URLs, s3://bucket/key, file:// URLs or plain paths.
func NewSource(location string, minioCfg config.MinioConfig) (repositories.DatasetSource, error) {
	if location == "" {
		return nil, fmt.Errorf("dataset location is empty")
	}
	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" {
		return NewFileSource(location), nil
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return NewHTTPSource(location, nil), nil
	case "s3":
		src, err := NewMinioSource(minioCfg, u.Host, strings.TrimPrefix(u.Path, "/"))
		if err != nil {
			return nil, err
		}
		return src, nil
	case "file":
		return NewFileSource(u.Path), nil
	}
	return nil, fmt.Errorf("unsupported dataset scheme %q", u.Scheme)
}
