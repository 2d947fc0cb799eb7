package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/ledongthuc/pdf"
	"gopkg.in/yaml.v3"
)

var ErrUnsupported = errors.New("unsupported file type")

var (
	headingMarker = regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s+`)
	quoteMarker   = regexp.MustCompile(`(?m)^\s*>\s?`)
	listMarker    = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+[.)])\s+`)
	emphasis      = regexp.MustCompile(`\*\*|__|\x60`)
	mdLink        = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
)

type Parsed struct {
	Title       string
	SourcePath  string
	SourceBytes []byte
	Text        string
}

func ParseFile(path string) (*Parsed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ext := strings.ToLower(filepath.Ext(path))
	var text string
	switch ext {
	case "", ".txt", ".text":
		return &Parsed{Title: title, SourcePath: path, SourceBytes: raw, Text: string(raw)}, nil
	case ".md", ".markdown":
		var fmTitle string
		text, fmTitle = parseMarkdown(raw)
		if fmTitle != "" {
			title = fmTitle
		}
	case ".html", ".htm":
		text, err = parseHTML(raw)
		if err != nil {
			return nil, err
		}
	case ".docx":
		text, err = parseDOCX(raw)
		if err != nil {
			return nil, err
		}
	case ".pdf":
		text, err = parsePDF(path)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}

	return &Parsed{
		Title:       title,
		SourcePath:  path,
		SourceBytes: raw,
		Text:        normalizeWhitespace(text),
	}, nil
}

// ParseReader takes plain text, typically standard input. Plain text is
// kept verbatim; only converted formats have their whitespace normalised.
func ParseReader(name string, r io.Reader) (*Parsed, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return &Parsed{
		Title:       name,
		SourceBytes: raw,
		Text:        string(raw),
	}, nil
}

// parseMarkdown drops YAML front matter (returning its title, if any) and
// the most common block and inline markers.
func parseMarkdown(raw []byte) (string, string) {
	body, meta := splitFrontmatter(string(raw))
	title := ""
	if t, ok := meta["title"].(string); ok {
		title = strings.TrimSpace(t)
	}
	return plainMarkdown(body), title
}

func splitFrontmatter(content string) (string, map[string]any) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, "---\n") {
		return content, nil
	}
	rest := content[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return content, nil
	}
	var meta map[string]any
	if err := yaml.Unmarshal([]byte(rest[:end]), &meta); err != nil {
		return content, nil
	}
	body := rest[end+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")
	return body, meta
}

func plainMarkdown(s string) string {
	s = mdLink.ReplaceAllString(s, "$1")
	s = headingMarker.ReplaceAllString(s, "")
	s = quoteMarker.ReplaceAllString(s, "")
	s = listMarker.ReplaceAllString(s, "")
	return emphasis.ReplaceAllString(s, "")
}

func parseHTML(raw []byte) (string, error) {
	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(string(raw))
	if err != nil {
		return "", fmt.Errorf("convert html: %w", err)
	}
	return plainMarkdown(markdown), nil
}

func parseDOCX(raw []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open docx zip: %w", err)
	}

	var xmlData []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, openErr := f.Open()
		if openErr != nil {
			return "", fmt.Errorf("open document.xml: %w", openErr)
		}
		xmlData, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("read document.xml: %w", err)
		}
		break
	}
	if len(xmlData) == 0 {
		return "", fmt.Errorf("word/document.xml not found")
	}

	decoder := xml.NewDecoder(bytes.NewReader(xmlData))
	var b strings.Builder
	inText := false
	for {
		tok, tokenErr := decoder.Token()
		if tokenErr == io.EOF {
			break
		}
		if tokenErr != nil {
			return "", fmt.Errorf("decode document.xml: %w", tokenErr)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
			if t.Name.Local == "p" && b.Len() > 0 {
				b.WriteString("\n")
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

func parsePDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	total := r.NumPage()
	for i := 1; i <= total; i++ {
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
	if b.Len() == 0 {
		return "", fmt.Errorf("no extractable text found in pdf")
	}
	return b.String(), nil
}

// normalizeWhitespace keeps paragraph breaks but squeezes runs inside lines.
func normalizeWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, strings.Join(strings.Fields(line), " "))
	}
	return strings.Join(out, "\n")
}
