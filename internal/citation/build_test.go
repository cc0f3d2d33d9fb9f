package citation

import (
	"testing"

	"github.com/citegraph/citegraph/internal/paper"
)

func validFieldMap() *FieldMap {
	return &FieldMap{
		Title:          "Attention Is All You Need",
		Authors:        []Name{{Given: "Ashish", Family: "Vaswani"}},
		ContainerTitle: "NeurIPS",
		Type:           "paper-conference",
		Issued:         []string{"2017"},
	}
}

func TestBuild_Valid(t *testing.T) {
	cit, reject := Build(validFieldMap(), "raw text")
	if cit == nil {
		t.Fatalf("Build rejected a valid field map: %s", reject)
	}
	if cit.Title != "Attention Is All You Need" {
		t.Errorf("title = %q", cit.Title)
	}
	if cit.Year != 2017 {
		t.Errorf("year = %d, want 2017", cit.Year)
	}
	if len(cit.Authors) != 1 || cit.Authors[0] != "Ashish Vaswani" {
		t.Errorf("authors = %v", cit.Authors)
	}
	if cit.Type != paper.ConferencePaper {
		t.Errorf("type = %q, want conference", cit.Type)
	}
	if cit.RawText != "raw text" {
		t.Errorf("raw text = %q", cit.RawText)
	}
}

func TestBuild_Gate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FieldMap)
		want   RejectReason
	}{
		{"missing title", func(fm *FieldMap) { fm.Title = "" }, RejectMissingTitle},
		{"bracket-only title", func(fm *FieldMap) { fm.Title = "[Online]" }, RejectMissingTitle},
		{"missing year", func(fm *FieldMap) { fm.Issued = nil }, RejectMissingYear},
		{"unparseable year", func(fm *FieldMap) { fm.Issued = []string{"n.d."} }, RejectMissingYear},
		{"missing authors", func(fm *FieldMap) { fm.Authors = nil }, RejectMissingAuthors},
		{"only unknown authors", func(fm *FieldMap) { fm.Authors = []Name{{}} }, RejectMissingAuthors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm := validFieldMap()
			tt.mutate(fm)
			cit, reject := Build(fm, "")
			if cit != nil {
				t.Fatalf("expected rejection, got %+v", cit)
			}
			if reject != tt.want {
				t.Errorf("reject = %q, want %q", reject, tt.want)
			}
		})
	}
}

func TestBuild_NilFieldMap(t *testing.T) {
	if cit, _ := Build(nil, ""); cit != nil {
		t.Errorf("expected nil for nil field map, got %+v", cit)
	}
}

func TestAssembleAuthors(t *testing.T) {
	names := []Name{
		{Given: "Jane", Family: "Smith"},
		{Family: "Doe"},
		{Literal: "ACME Research Group"},
		{Others: "et al."},
		{}, // unknown entry skipped, never an empty string
	}
	got := assembleAuthors(names)
	want := []string{"Jane Smith", "Doe", "ACME Research Group", "et al."}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("author %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtractYear(t *testing.T) {
	tests := []struct {
		name   string
		issued []string
		want   int
	}{
		{"plain year", []string{"2018"}, 2018},
		{"iso date", []string{"2018-06-01"}, 2018},
		{"dotted date", []string{"2018.06.01"}, 2018},
		{"year with month name", []string{"June 2018"}, 2018},
		{"list uses first entry", []string{"2019", "2020"}, 2019},
		{"extra digits truncated", []string{"20189"}, 2018},
		{"no digits", []string{"forthcoming"}, -1},
		{"empty", nil, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractYear(tt.issued); got != tt.want {
				t.Errorf("ExtractYear(%v) = %d, want %d", tt.issued, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		fm   FieldMap
		want paper.Type
	}{
		{"conference type tag", FieldMap{Type: "paper-conference"}, paper.ConferencePaper},
		{"workshop venue keyword", FieldMap{Type: "article-journal", ContainerTitle: "Workshop on Things"}, paper.ConferencePaper},
		{"proceedings venue keyword", FieldMap{ContainerTitle: "Proceedings of the 12th Symposium"}, paper.ConferencePaper},
		{"journal", FieldMap{Type: "article-journal", ContainerTitle: "Nature"}, paper.JournalPaper},
		{"arxiv note overrides journal", FieldMap{Type: "article-journal", Note: "arXiv:1706.03762v5"}, paper.ArxivPaper},
		{"book", FieldMap{Type: "book"}, paper.Book},
		{"chapter", FieldMap{Type: "chapter"}, paper.BookChapter},
		{"report", FieldMap{Type: "report"}, paper.Report},
		{"unknown", FieldMap{Type: "webpage"}, paper.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(&tt.fm); got != tt.want {
				t.Errorf("classify = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuild_ArxivID(t *testing.T) {
	fm := validFieldMap()
	fm.Type = "article-journal"
	fm.ContainerTitle = ""
	fm.Note = "arXiv:1706.03762v5"

	cit, _ := Build(fm, "")
	if cit == nil {
		t.Fatal("unexpected rejection")
	}
	if cit.Type != paper.ArxivPaper {
		t.Errorf("type = %q, want arxiv", cit.Type)
	}
	if cit.ArXivID != "1706.03762" {
		t.Errorf("arxiv id = %q, want 1706.03762", cit.ArXivID)
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Deep Learning [Online]", "Deep Learning"},
		{"- Wrapped Title", "Wrapped Title"},
		{"Plain Title", "Plain Title"},
		{"[Online]", ""},
		{"  spaced  ", "spaced"},
	}

	for _, tt := range tests {
		if got := CleanTitle(tt.input); got != tt.want {
			t.Errorf("CleanTitle(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
