package s2

import "testing"

func TestParsePaperID(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantType  string
		wantValue string
	}{
		{"doi prefix", "DOI:10.1038/nature12373", "DOI", "10.1038/nature12373"},
		{"arxiv prefix", "ARXIV:2106.15928", "ARXIV", "2106.15928"},
		{"pmid prefix", "PMID:19872477", "PMID", "19872477"},
		{"corpus id prefix", "CorpusId:215416146", "CorpusId", "215416146"},
		{"lowercase prefix", "doi:10.1038/nature12373", "DOI", "10.1038/nature12373"},
		{"raw s2 id", "649def34f8be52c8b66281af98ae884c09aef38b", "S2", "649def34f8be52c8b66281af98ae884c09aef38b"},
		{"bare arxiv", "2106.15928", "ARXIV", "2106.15928"},
		{"bare arxiv four digits", "1706.0376", "ARXIV", "1706.0376"},
		{"bare doi", "10.18653/v1/N18-3011", "DOI", "10.18653/v1/N18-3011"},
		{"surrounding whitespace", "  ARXIV:2106.15928  ", "ARXIV", "2106.15928"},
		{"unrecognized falls back to s2", "some-opaque-id", "S2", "some-opaque-id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePaperID(tt.input)
			if got.Type != tt.wantType || got.Value != tt.wantValue {
				t.Errorf("ParsePaperID(%q) = {%s %s}, want {%s %s}",
					tt.input, got.Type, got.Value, tt.wantType, tt.wantValue)
			}
		})
	}
}

func TestPaperIdentifierString(t *testing.T) {
	if got := (PaperIdentifier{Type: "DOI", Value: "10.1/x"}).String(); got != "DOI:10.1/x" {
		t.Errorf("String() = %q, want DOI:10.1/x", got)
	}
	raw := "649def34f8be52c8b66281af98ae884c09aef38b"
	if got := (PaperIdentifier{Type: "S2", Value: raw}).String(); got != raw {
		t.Errorf("S2 String() = %q, want bare value", got)
	}
}

func TestNormalizeDOI(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"10.1038/Nature12373", "10.1038/nature12373"},
		{"https://doi.org/10.1038/nature12373", "10.1038/nature12373"},
		{"http://doi.org/10.1038/nature12373", "10.1038/nature12373"},
		{"doi.org/10.1038/nature12373", "10.1038/nature12373"},
		{"DOI:10.1038/nature12373", "10.1038/nature12373"},
		{"  10.1038/nature12373  ", "10.1038/nature12373"},
	}

	for _, tt := range tests {
		if got := NormalizeDOI(tt.input); got != tt.want {
			t.Errorf("NormalizeDOI(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
