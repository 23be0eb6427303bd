package service

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}

	return buf.String(), nil
}
