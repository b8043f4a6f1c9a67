package detector

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Format is a source document format.
type Format string

const (
	FormatUnknown  Format = ""
	FormatPDF      Format = "pdf"
	FormatHTML     Format = "html"
	FormatDocument Format = "document" // exported extraction JSON
)

// sniffLen matches what http.DetectContentType looks at.
const sniffLen = 512

var pdfMagic = []byte("%PDF-")

// FromExtension maps a file extension to a format.
func FromExtension(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF
	case ".html", ".htm", ".xhtml":
		return FormatHTML
	case ".json":
		return FormatDocument
	}
	return FormatUnknown
}

// Sniff classifies content by its first bytes.
func Sniff(data []byte) Format {
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), " \t\r\n")

	// PDF writers may put junk before the header; readers accept it within
	// the first kilobyte, so look anywhere in the sniffed prefix.
	if bytes.Contains(data, pdfMagic) {
		return FormatPDF
	}
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatDocument
	}

	contentType := http.DetectContentType(data)
	if strings.HasPrefix(contentType, "text/html") || strings.HasPrefix(contentType, "text/xml") {
		return FormatHTML
	}
	return FormatUnknown
}

// Detect returns the format of the file at path: by extension when it is a
// known one, by content otherwise.
func Detect(path string) (Format, error) {
	if f := FromExtension(path); f != FormatUnknown {
		return f, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return FormatUnknown, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Sniff(head[:n]), nil
}
