package parser

import (
	"strings"
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		wantType string
	}{
		{"call.txt", "*parser.TextParser"},
		{"notes.MD", "*parser.MarkdownParser"},
		{"data.csv", "*parser.CSVParser"},
		{"page.html", "*parser.HTMLParser"},
		{"page.htm", "*parser.HTMLParser"},
		{"report.pdf", "*parser.PDFParser"},
		{"memo.docx", "*parser.DOCXParser"},
	}
	for _, tt := range tests {
		p, err := ForFile(tt.filename)
		if err != nil {
			t.Errorf("ForFile(%q): %v", tt.filename, err)
			continue
		}
		if got := typeName(p); got != tt.wantType {
			t.Errorf("ForFile(%q) = %s, want %s", tt.filename, got, tt.wantType)
		}
	}

	if _, err := ForFile("archive.zip"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *TextParser:
		return "*parser.TextParser"
	case *MarkdownParser:
		return "*parser.MarkdownParser"
	case *CSVParser:
		return "*parser.CSVParser"
	case *HTMLParser:
		return "*parser.HTMLParser"
	case *PDFParser:
		return "*parser.PDFParser"
	case *DOCXParser:
		return "*parser.DOCXParser"
	default:
		return "unknown"
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("Call.TXT") {
		t.Error("extension check should be case-insensitive")
	}
	if IsSupportedExtension("evil.exe") {
		t.Error(".exe should not be supported")
	}
}

func TestTextParser(t *testing.T) {
	in := "First paragraph line one.\nLine two.\n\n\nSecond paragraph.\n"
	got, err := (&TextParser{}).Parse(strings.NewReader(in), "a.txt")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := "First paragraph line one.\nLine two.\n\nSecond paragraph."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTextParserEmptyInput(t *testing.T) {
	got, err := (&TextParser{}).Parse(strings.NewReader("   \n\n  "), "a.txt")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestMarkdownParser(t *testing.T) {
	in := "# Q4 Results\n\nRevenue grew **12%** this quarter.\n\n## Outlook\n\nGuidance unchanged.\n"
	got, err := (&MarkdownParser{}).Parse(strings.NewReader(in), "a.md")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for _, want := range []string{"Q4 Results", "Revenue grew", "12%", "Outlook", "Guidance unchanged."} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "**") || strings.Contains(got, "#") {
		t.Errorf("markdown syntax leaked into output:\n%s", got)
	}
}

func TestCSVParser(t *testing.T) {
	in := "Metric,FY25,FY24\nRevenue,500,420\nEBITDA,150,115\n"
	got, err := (&CSVParser{}).Parse(strings.NewReader(in), "a.csv")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(got, "Headers: Metric, FY25, FY24") {
		t.Errorf("missing header line:\n%s", got)
	}
	if !strings.Contains(got, "Metric: Revenue, FY25: 500, FY24: 420") {
		t.Errorf("missing labelled row:\n%s", got)
	}
}

func TestCSVParserRaggedRows(t *testing.T) {
	in := "a,b\n1,2,3\n"
	got, err := (&CSVParser{}).Parse(strings.NewReader(in), "a.csv")
	if err != nil {
		t.Fatalf("ragged rows should parse: %v", err)
	}
	if !strings.Contains(got, "a: 1, b: 2, 3") {
		t.Errorf("got %q", got)
	}
}

func TestHTMLParser(t *testing.T) {
	in := `<html><head><style>p{color:red}</style></head><body>
		<nav>Skip this menu</nav>
		<h1>Earnings Call</h1>
		<p>Revenue was <b>strong</b> this quarter.</p>
		<script>alert("nope")</script>
		<footer>Copyright notice</footer>
	</body></html>`
	got, err := (&HTMLParser{}).Parse(strings.NewReader(in), "a.html")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(got, "Earnings Call") {
		t.Errorf("missing heading:\n%s", got)
	}
	if !strings.Contains(got, "Revenue was strong this quarter.") {
		t.Errorf("missing paragraph text:\n%s", got)
	}
	for _, unwanted := range []string{"Skip this menu", "alert", "color:red", "Copyright"} {
		if strings.Contains(got, unwanted) {
			t.Errorf("output contains %q, should be stripped:\n%s", unwanted, got)
		}
	}
}

func TestJoinParagraphs(t *testing.T) {
	got := joinParagraphs([]string{" a ", "", "b", "  "})
	if got != "a\n\nb" {
		t.Errorf("joinParagraphs = %q", got)
	}
}
