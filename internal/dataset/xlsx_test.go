package dataset

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const workbookXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <sheets>
    <sheet name="Reviews" sheetId="1" r:id="rId1"/>
    <sheet name="Scratch" sheetId="2" r:id="rId2"/>
  </sheets>
</workbook>`

const workbookRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="/xl/worksheets/sheet2.xml"/>
</Relationships>`

const sharedStringsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="6" uniqueCount="6">
  <si><t>Product</t></si>
  <si><t>Region</t></si>
  <si><t>Rating</t></si>
  <si><t>Review</t></si>
  <si><t>Laptop</t></si>
  <si><t>US</t></si>
</sst>`

// sheet1 mixes shared strings, inline strings, and a sparse row (missing
// review cell) to cover the branches of the sheet reader.
const sheet1XML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <sheetData>
    <row r="1">
      <c r="A1" t="s"><v>0</v></c>
      <c r="B1" t="s"><v>1</v></c>
      <c r="C1" t="s"><v>2</v></c>
      <c r="D1" t="s"><v>3</v></c>
    </row>
    <row r="2">
      <c r="A2" t="s"><v>4</v></c>
      <c r="B2" t="s"><v>5</v></c>
      <c r="C2"><v>5</v></c>
      <c r="D2" t="inlineStr"><is><t>great battery</t></is></c>
    </row>
    <row r="3">
      <c r="A3" t="inlineStr"><is><t>Phone</t></is></c>
      <c r="B3" t="inlineStr"><is><t>CN</t></is></c>
      <c r="C3"><v>2</v></c>
    </row>
  </sheetData>
</worksheet>`

const sheet2XML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <sheetData>
    <row r="1"><c r="A1" t="inlineStr"><is><t>scratch</t></is></c></row>
  </sheetData>
</worksheet>`

func writeXLSXFixture(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := map[string]string{
		"xl/workbook.xml":            workbookXML,
		"xl/_rels/workbook.xml.rels": workbookRelsXML,
		"xl/sharedStrings.xml":       sharedStringsXML,
		"xl/worksheets/sheet1.xml":   sheet1XML,
		"xl/worksheets/sheet2.xml":   sheet2XML,
	}
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	path := filepath.Join(t.TempDir(), "reviews.xlsx")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	return path
}

func TestLoadXLSX(t *testing.T) {
	path := writeXLSXFixture(t)
	recs, _, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %#v, want 2", recs)
	}
	want := Record{Product: "Laptop", Region: "US", Rating: 5, Text: "great battery"}
	if recs[0] != want {
		t.Fatalf("first = %#v, want %#v", recs[0], want)
	}
	// Sparse row: missing review cell becomes empty text.
	if recs[1].Product != "Phone" || recs[1].Text != "" {
		t.Fatalf("second = %#v", recs[1])
	}
}

func TestLoadXLSXBySheetName(t *testing.T) {
	path := writeXLSXFixture(t)
	opt := DefaultOptions()
	opt.SheetName = "reviews" // case-insensitive
	recs, _, err := Load(path, opt)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}

	opt.SheetName = "Nope"
	_, _, err = Load(path, opt)
	if err == nil || !strings.Contains(err.Error(), "available: Reviews, Scratch") {
		t.Fatalf("err = %v, want sheet listing", err)
	}
}

func TestLoadXLSXSheetWithoutReviewColumns(t *testing.T) {
	path := writeXLSXFixture(t)
	opt := DefaultOptions()
	opt.SheetIndex = 2
	_, _, err := Load(path, opt)
	if err == nil {
		t.Fatalf("expected column resolution error for scratch sheet")
	}
}

// Minimal OOXML writers may omit the optional r attribute on cells; such
// cells sit immediately after the previous one in the row.
const refLessSheetXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <sheetData>
    <row>
      <c t="inlineStr"><is><t>Product</t></is></c>
      <c t="inlineStr"><is><t>Region</t></is></c>
      <c t="inlineStr"><is><t>Rating</t></is></c>
      <c t="inlineStr"><is><t>Review</t></is></c>
    </row>
    <row>
      <c t="inlineStr"><is><t>Laptop</t></is></c>
      <c t="inlineStr"><is><t>US</t></is></c>
      <c><v>5</v></c>
      <c t="inlineStr"><is><t>great battery</t></is></c>
    </row>
    <row>
      <c r="A3" t="inlineStr"><is><t>Phone</t></is></c>
      <c t="inlineStr"><is><t>CN</t></is></c>
      <c><v>4</v></c>
    </row>
  </sheetData>
</worksheet>`

const refLessWorkbookXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <sheets>
    <sheet name="Reviews" sheetId="1" r:id="rId1"/>
  </sheets>
</workbook>`

const refLessRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>
</Relationships>`

func TestLoadXLSXCellsWithoutRefs(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := map[string]string{
		"xl/workbook.xml":            refLessWorkbookXML,
		"xl/_rels/workbook.xml.rels": refLessRelsXML,
		"xl/worksheets/sheet1.xml":   refLessSheetXML,
	}
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	path := filepath.Join(t.TempDir(), "refless.xlsx")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	recs, _, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %#v, want 2", recs)
	}
	want := Record{Product: "Laptop", Region: "US", Rating: 5, Text: "great battery"}
	if recs[0] != want {
		t.Fatalf("first = %#v, want %#v", recs[0], want)
	}
	// Mixed row: an explicit ref followed by ref-less cells still lines up.
	if recs[1].Product != "Phone" || recs[1].Region != "CN" || recs[1].Rating != 4 {
		t.Fatalf("second = %#v", recs[1])
	}
}
