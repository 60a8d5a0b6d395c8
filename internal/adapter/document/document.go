// Package document extracts plain text from uploaded files.
package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/heartmarshall/wordcount-backend/internal/domain"
)

// Supported media types.
const (
	MediaTypePlain = "text/plain"
	MediaTypeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaTypePDF   = "application/pdf"
)

// ErrMalformed is returned when a file of a supported type cannot be read.
var ErrMalformed = fmt.Errorf("%w: malformed document", domain.ErrValidation)

var extensions = map[string]string{
	".txt":  MediaTypePlain,
	".text": MediaTypePlain,
	".docx": MediaTypeDOCX,
	".pdf":  MediaTypePDF,
}

// Supported returns the accepted media types.
func Supported() []string {
	return []string{MediaTypePlain, MediaTypeDOCX, MediaTypePDF}
}

// MediaTypeFromName guesses the media type from a file name's extension.
// It returns "" for unknown extensions.
func MediaTypeFromName(name string) string {
	return extensions[strings.ToLower(filepath.Ext(name))]
}

// ResolveMediaType returns the media type to use for an upload. The declared
// Content-Type wins unless it is missing or generic, in which case the file
// name decides.
func ResolveMediaType(contentType, name string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil || mt == "" || mt == "application/octet-stream" {
		return MediaTypeFromName(name)
	}
	return mt
}

// Extract returns the text content of raw, interpreted as mediaType.
// Unknown media types fail with domain.ErrUnsupportedMediaType.
func Extract(mediaType string, raw []byte) (string, error) {
	switch mediaType {
	case MediaTypePlain:
		return parsePlain(raw), nil
	case MediaTypeDOCX:
		return parseDOCX(raw)
	case MediaTypePDF:
		return parsePDF(raw)
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedMediaType, mediaType)
	}
}

func parsePlain(raw []byte) string {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return string(raw)
	}
	return strings.ToValidUTF8(string(raw), " ")
}

func parseDOCX(raw []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("%w: open docx zip: %w", ErrMalformed, err)
	}

	f, err := zr.Open("word/document.xml")
	if err != nil {
		return "", fmt.Errorf("%w: word/document.xml not found", ErrMalformed)
	}
	defer f.Close()

	decoder := xml.NewDecoder(f)
	var b strings.Builder
	inText := false
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: decode document.xml: %w", ErrMalformed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "p":
				if b.Len() > 0 {
					b.WriteString("\n")
				}
			case "tab", "br":
				b.WriteString(" ")
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}

func parsePDF(raw []byte) (text string, err error) {
	// The pdf reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: read pdf: %v", ErrMalformed, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %w", ErrMalformed, err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, pageErr := p.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}
