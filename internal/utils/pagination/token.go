package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeToken creates an opaque continuation token from the id and date of the
// last entry of a page.
func EncodeToken(lastID string, lastDate time.Time) string {
	tokenStr := fmt.Sprintf("%s|%s", lastID, lastDate.Format(timeFormat))
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (string, time.Time, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", time.Time{}, fmt.Errorf("invalid pagination token format (split)")
	}
	lastDate, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}
	return parts[0], lastDate, nil
}
