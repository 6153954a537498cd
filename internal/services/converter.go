package services

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// UploadedDocument is one file from an upload request. It lives only as long
// as the request.
type UploadedDocument struct {
	FileName string
	Data     []byte
}

type DocumentConverter interface {
	// Convert returns the document as plain text or markdown. Errors wrap
	// ErrUnsupportedFormat or ErrConversionFailure.
	Convert(ctx context.Context, doc UploadedDocument) (string, error)
}

// ImageTranscriber turns an image of a document into markdown.
type ImageTranscriber interface {
	TranscribeImage(ctx context.Context, data []byte, mimeType string) (string, error)
}

type docFormat int

const (
	formatUnknown docFormat = iota
	formatPDF
	formatDOCX
	formatText
	formatImage
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var extFormats = map[string]docFormat{
	".pdf":      formatPDF,
	".docx":     formatDOCX,
	".txt":      formatText,
	".text":     formatText,
	".md":       formatText,
	".markdown": formatText,
	".png":      formatImage,
	".jpg":      formatImage,
	".jpeg":     formatImage,
	".webp":     formatImage,
	".heic":     formatImage,
	".heif":     formatImage,
}

var imageMIMEs = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".heic": "image/heic",
	".heif": "image/heif",
}

type documentConverter struct {
	storage     StorageService
	transcriber ImageTranscriber
}

// NewDocumentConverter builds the converter. A nil transcriber disables image input.
func NewDocumentConverter(storage StorageService, transcriber ImageTranscriber) DocumentConverter {
	return &documentConverter{
		storage:     storage,
		transcriber: transcriber,
	}
}

func (d *documentConverter) Convert(ctx context.Context, doc UploadedDocument) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(doc.Data) == 0 {
		return "", fmt.Errorf("%w: %s is empty", ErrConversionFailure, doc.FileName)
	}

	format, mimeType := detectFormat(doc.FileName, doc.Data)

	var (
		text string
		err  error
	)
	switch format {
	case formatPDF:
		text, err = d.convertPDF(doc)
	case formatDOCX:
		text, err = convertDOCX(doc.Data)
	case formatText:
		text = strings.ToValidUTF8(string(doc.Data), "")
	case formatImage:
		if d.transcriber == nil {
			return "", fmt.Errorf("%w: images are not enabled (%s)", ErrUnsupportedFormat, doc.FileName)
		}
		text, err = d.transcriber.TranscribeImage(ctx, doc.Data, mimeType)
	default:
		return "", fmt.Errorf("%w: %s (%s)", ErrUnsupportedFormat, doc.FileName, mimeType)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrConversionFailure, doc.FileName, err)
	}

	text = NormalizeText(text)
	if text == "" {
		return "", fmt.Errorf("%w: no text content found in %s", ErrConversionFailure, doc.FileName)
	}

	return text, nil
}

func detectFormat(fileName string, data []byte) (docFormat, string) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if format, ok := extFormats[ext]; ok {
		switch format {
		case formatPDF:
			return format, mimePDF
		case formatDOCX:
			return format, mimeDOCX
		case formatImage:
			return format, imageMIMEs[ext]
		default:
			return format, "text/plain"
		}
	}

	// No usable extension; fall back to sniffing the content.
	mt := mimetype.Detect(data)
	switch {
	case mt.Is(mimePDF):
		return formatPDF, mimePDF
	case mt.Is(mimeDOCX):
		return formatDOCX, mimeDOCX
	case mt.Is("text/plain"):
		return formatText, "text/plain"
	case mt.Is("image/png"), mt.Is("image/jpeg"), mt.Is("image/webp"), mt.Is("image/heic"), mt.Is("image/heif"):
		return formatImage, mt.String()
	}
	return formatUnknown, mt.String()
}

// convertPDF goes through a scratch file because the reader works on paths.
// The file is removed on every return path.
func (d *documentConverter) convertPDF(doc UploadedDocument) (text string, err error) {
	path, cleanup, err := d.storage.WriteTemp(doc.FileName, doc.Data)
	if err != nil {
		return "", err
	}
	defer cleanup()

	// The pdf package panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), nil
}

func convertDOCX(data []byte) (string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer r.Close()

	return docxXMLToText(r.Editable().GetContent())
}

// docxXMLToText keeps the text of w:t runs and turns paragraph ends, breaks
// and run tabs into whitespace. Deleted text (w:delText), field instructions
// (w:instrText) and tab stop definitions (w:tabs) produce nothing.
func docxXMLToText(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	inText, inRun := 0, 0
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read DOCX body: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			if inText > 0 {
				buf.Write(t)
			}
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText++
			case "r":
				inRun++
			case "tab":
				if inRun > 0 {
					buf.WriteString("\t")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText--
			case "r":
				inRun--
			case "p", "br":
				buf.WriteString("\n")
			}
		}
	}
	return buf.String(), nil
}

// NormalizeText unifies line endings, trims trailing spaces and collapses
// runs of blank lines to one.
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			blank++
			if blank > 1 {
				continue
			}
			line = ""
		} else {
			blank = 0
		}
		cleaned = append(cleaned, line)
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}
