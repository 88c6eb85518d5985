package imaging

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// EncodeDataURI turns binary image input into an embeddable data-URI string.
// The content type is sniffed from the payload; the stores treat the result
// as an opaque string and perform no further validation.
func EncodeDataURI(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return "", errors.New("empty image payload")
	}
	mime := http.DetectContentType(data)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
