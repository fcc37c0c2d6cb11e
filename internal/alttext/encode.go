// Package alttext generates accessibility descriptions for the
// manual's images and writes them into the i18n tables.
package alttext

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// EncodeImage reads an image from a local path or http(s) URL and
// returns it as a base64 data URL suited to vision API calls. Relative
// paths are resolved against baseDir.
func EncodeImage(src, baseDir string) (string, error) {
	var data []byte
	var err error

	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		data, err = fetchImage(src)
	} else {
		path := src
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, strings.TrimPrefix(src, "./"))
		}
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading image %s: %w", src, err)
	}

	return fmt.Sprintf("data:image/%s;base64,%s",
		imageFormat(src), base64.StdEncoding.EncodeToString(data)), nil
}

func fetchImage(url string) ([]byte, error) {
	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// imageFormat maps a file extension to the data URL media subtype,
// defaulting to jpeg.
func imageFormat(src string) string {
	switch strings.ToLower(filepath.Ext(src)) {
	case ".png":
		return "png"
	case ".gif":
		return "gif"
	case ".webp":
		return "webp"
	default:
		return "jpeg"
	}
}
