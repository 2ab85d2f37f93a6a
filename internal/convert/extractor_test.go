package convert

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/opus4tools/opusx/internal/extract"
	"github.com/opus4tools/opusx/internal/opus"
	"github.com/opus4tools/opusx/internal/record"
)

const testExport = `<?xml version="1.0" encoding="utf-8"?>
<Opus>
  <Opus_Document Type="article" PublishedYear="2020" Issue="3">
    <PersonAuthor FirstName="Ada" LastName="Lovelace"/>
    <TitleMain Value="On Computing"/>
    <Identifier Type="doi" Value="10.1/x"/>
  </Opus_Document>
  <Opus_Document Type="masterthesis">
    <PublishedDate Year="2021"/>
    <PersonAuthor FirstName="Grace" LastName="Hopper"/>
    <PersonAdvisor FirstName="Howard" LastName="Aiken"/>
    <TitleMain Value="Compilers"/>
    <ThesisDateAccepted UnixTimestamp="1609459200"/>
    <Enrichment KeyName="kds_Funding" Value="Navy"/>
    <Collection RoleName="kds_type_publicationtype" Name="Thesis"/>
  </Opus_Document>
  <Opus_Document Type="article" PublishedYear="2022">
    <PersonAuthor FirstName="Alan" LastName="Turing"/>
    <PersonAuthor FirstName="Alonzo" LastName="Church"/>
    <TitleMain Value="Computable Numbers"/>
  </Opus_Document>
  <Opus_Document>
    <TitleMain Value="Untyped Report"/>
  </Opus_Document>
  <Opus_Document Type="workingpaper" CreatingCorporation="Lab">
    <TitleMain Value="Draft"/>
  </Opus_Document>
</Opus>`

// newTestExtractor loads testExport and writes output into a temp dir.
func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "export.xml")
	if err := os.WriteFile(src, []byte(testExport), 0644); err != nil {
		t.Fatal(err)
	}
	e, err := Open(src, WithDir(dir), WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return e
}

func TestOpen_FindsSourceInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "only.xml"), []byte(testExport), 0644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	e, err := Open("")
	if err != nil {
		t.Fatalf("Open(\"\") error = %v", err)
	}
	if filepath.Base(e.Source.Path) != "only.xml" {
		t.Errorf("Source.Path = %q, want only.xml", e.Source.Path)
	}
}

func TestOpen_NoSource(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Open("")
	if !errors.Is(err, opus.ErrNoSourceFound) {
		t.Errorf("Open(\"\") error = %v, want ErrNoSourceFound", err)
	}
}

func TestOpen_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xml")
	if err := os.WriteFile(path, []byte("<Opus><Opus_Document"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Open(path)
	if !errors.Is(err, opus.ErrParse) {
		t.Errorf("Open() error = %v, want ErrParse", err)
	}
}

func TestExtractor_DocTypes(t *testing.T) {
	e := newTestExtractor(t)

	got := e.DocTypes()
	want := []string{"article", "greylit", "masterthesis", "workingpaper"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DocTypes() = %v, want %v", got, want)
	}
}

func TestExtractor_Records(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		name       string
		docTypes   []string
		wantTitles []string
	}{
		{"all", nil, []string{"On Computing", "Compilers", "Computable Numbers", "Untyped Report", "Draft"}},
		{"articles keep source order", []string{"article"}, []string{"On Computing", "Computable Numbers"}},
		{"untyped selected by label", []string{"greylit"}, []string{"Untyped Report"}},
		{"unknown type", []string{"book"}, nil},
		{"empty selection", []string{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := e.Records(tt.docTypes)
			var titles []string
			for _, r := range records {
				titles = append(titles, r.Value(extract.FieldTitle))
			}
			if !reflect.DeepEqual(titles, tt.wantTitles) {
				t.Errorf("Records(%v) titles = %v, want %v", tt.docTypes, titles, tt.wantTitles)
			}
		})
	}
}

func TestExtractor_RecordsThesis(t *testing.T) {
	e := newTestExtractor(t)

	records := e.Records([]string{"masterthesis"})
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]

	want := map[string]string{
		"type":                     "masterthesis",
		"year":                     "2021",
		"author(s)":                "Grace Hopper",
		"accepted":                 "2021-01-01",
		"advisors":                 "Howard Aiken",
		"referees":                 "",
		"enrichment_kds_funding":   "Navy",
		"kds_type_publicationtype": "Thesis",
	}
	for k, v := range want {
		got, ok := rec.Get(k)
		if !ok {
			t.Errorf("field %q missing", k)
			continue
		}
		if got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestExtractor_ToJSONRoundTrip(t *testing.T) {
	e := newTestExtractor(t)

	path, err := e.ToJSON("out", []string{"article", "masterthesis"})
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	if filepath.Base(path) != "out.json" {
		t.Errorf("ToJSON() path = %q, want out.json", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded []record.Record
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding JSON: %v", err)
	}
	if len(decoded) != 3 {
		t.Fatalf("decoded %d records, want 3", len(decoded))
	}

	var selected []opus.Node
	for _, doc := range e.Source.Documents {
		switch extract.DocType(doc) {
		case "article", "masterthesis":
			selected = append(selected, doc)
		}
	}
	for i, doc := range selected {
		basic := extract.BasicFields(doc, extract.DocType(doc))
		for _, k := range basic.Keys() {
			if got := decoded[i].Value(k); got != basic.Value(k) {
				t.Errorf("record %d %s = %q, want %q", i, k, got, basic.Value(k))
			}
		}
	}

	want := `{"type":"article","year":"2020","author(s)":"Ada Lovelace","title":"On Computing",` +
		`"parent_title":"","issue":"3","volume":"","page_first":"","page_last":"","doi":"10.1/x","issn":""}`
	first, err := json.Marshal(decoded[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != want {
		t.Errorf("first record =\n%s\nwant\n%s", first, want)
	}
}

func TestExtractor_ToJSONIdempotent(t *testing.T) {
	e := newTestExtractor(t)

	path, err := e.ToJSON("stable", nil)
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.ToJSON("stable", nil); err != nil {
		t.Fatalf("ToJSON() second run error = %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("JSON output differs between identical runs")
	}
}

func TestExtractor_ToCSVHeaderIsKeyUnion(t *testing.T) {
	e := newTestExtractor(t)

	path, err := e.ToCSV("table", nil)
	if err != nil {
		t.Fatalf("ToCSV() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading CSV: %v", err)
	}

	records := e.Records(nil)
	union := map[string]bool{}
	for _, r := range records {
		for _, k := range r.Keys() {
			union[k] = true
		}
	}

	header := rows[0]
	if len(header) != len(union) {
		t.Errorf("header has %d columns, union has %d", len(header), len(union))
	}
	for _, h := range header {
		if !union[h] {
			t.Errorf("header column %q not in any record", h)
		}
	}
	if len(rows) != len(records)+1 {
		t.Errorf("got %d rows, want %d", len(rows), len(records)+1)
	}
	for i, row := range rows[1:] {
		if len(row) != len(header) {
			t.Errorf("row %d has %d cells, want %d", i+1, len(row), len(header))
		}
	}
}

func TestExtractor_ToTXT(t *testing.T) {
	e := newTestExtractor(t)

	path, err := e.ToTXT("dump", []string{"article"})
	if err != nil {
		t.Fatalf("ToTXT() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "---\n"); n != 2 {
		t.Errorf("dump has %d records, want 2:\n%s", n, data)
	}
}

func TestExtractor_ConvertRandomName(t *testing.T) {
	e := newTestExtractor(t)

	path, err := e.Convert(FormatJSON, "", nil)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	base := strings.TrimSuffix(filepath.Base(path), ".json")
	if _, err := uuid.Parse(base); err != nil {
		t.Errorf("generated name %q is not a UUID: %v", base, err)
	}
	if filepath.Dir(path) != e.Dir {
		t.Errorf("output written to %q, want %q", filepath.Dir(path), e.Dir)
	}
}

func TestExtractor_ConvertOtherFormats(t *testing.T) {
	e := newTestExtractor(t)

	for _, f := range []Format{FormatBibTeX, FormatSQLite} {
		t.Run(string(f), func(t *testing.T) {
			path, err := e.Convert(f, "extra", nil)
			if err != nil {
				t.Fatalf("Convert(%s) error = %v", f, err)
			}
			if filepath.Ext(path) != f.Extension() {
				t.Errorf("path %q, want extension %q", path, f.Extension())
			}
			if _, err := os.Stat(path); err != nil {
				t.Errorf("output missing: %v", err)
			}
		})
	}
}

func TestExtractor_ConvertInvalid(t *testing.T) {
	e := newTestExtractor(t)

	if _, err := e.Convert(Format("xlsx"), "x", nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Convert(xlsx) error = %v, want ErrInvalidArgument", err)
	}
	bad := "sub" + string(filepath.Separator) + "x"
	if _, err := e.Convert(FormatJSON, bad, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Convert() with separator error = %v, want ErrInvalidArgument", err)
	}
}

func TestExtractor_WriteBuiltRecords(t *testing.T) {
	e := newTestExtractor(t)

	records := e.Records([]string{"article"})
	path, err := e.Write(FormatJSON, "articles", records)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got []record.Record
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got) != len(records) || len(got) != 2 {
		t.Fatalf("wrote %d records, want %d", len(got), len(records))
	}
	if got[1].Value("title") != "Computable Numbers" {
		t.Errorf("second title = %q", got[1].Value("title"))
	}

	converted, err := e.Convert(FormatJSON, "converted", []string{"article"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	again, err := os.ReadFile(converted)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, again) {
		t.Errorf("Write and Convert output differ:\n%s\n%s", data, again)
	}
}

func TestExtractor_Info(t *testing.T) {
	e := newTestExtractor(t)

	info := e.Info()
	if info.Publications != 5 {
		t.Errorf("Publications = %d, want 5", info.Publications)
	}
	if len(info.DocTypes) != 4 {
		t.Errorf("DocTypes = %v, want 4 types", info.DocTypes)
	}
	if !strings.Contains(e.String(), "Number of publications:  5") {
		t.Errorf("String() = %q", e.String())
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
