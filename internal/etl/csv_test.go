package etl

import "testing"

// ─────────────────────────────────────────────────────────────
// CSV parsing + Record lookup
// ─────────────────────────────────────────────────────────────

func TestParseCSV_Basic(t *testing.T) {
	recs, err := ParseCSV(" 公司名稱 , 年度 \n 台積電 ,2023\n聯發科,2022\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0]["公司名稱"] != "台積電" || recs[0]["年度"] != "2023" {
		t.Fatalf("unexpected first record %v", recs[0])
	}
}

func TestParseCSV_RaggedRows(t *testing.T) {
	recs, err := ParseCSV("a,b,c\n1\n1,2,3,4\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	short := recs[0]
	if v, ok := short["c"]; !ok || v != "" {
		t.Fatalf("short row should carry empty c, got %q (present=%v)", v, ok)
	}
	if len(recs[1]) != 3 {
		t.Fatalf("extra cell should be dropped, got %v", recs[1])
	}
}

func TestParseCSV_SkipsBlankRowsAndQuotes(t *testing.T) {
	recs, err := ParseCSV("name,note\n\n\"Foo, Inc.\",say \"hi\"\n , \n")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d: %v", len(recs), recs)
	}
	if recs[0]["name"] != "Foo, Inc." {
		t.Fatalf("quoted comma lost: %q", recs[0]["name"])
	}
}

func TestParseCSV_Empty(t *testing.T) {
	recs, err := ParseCSV("")
	if err != nil || recs != nil {
		t.Fatalf("expected nil, nil; got %v, %v", recs, err)
	}
	recs, err = ParseCSV("only,header\n")
	if err != nil || len(recs) != 0 {
		t.Fatalf("header-only input should yield no records; got %v, %v", recs, err)
	}
}

func TestRecord_PickSkipsEmpty(t *testing.T) {
	r := Record{"a": "", "b": "x"}
	v, ok := r.Pick("a", "b")
	if !ok || v != "x" {
		t.Fatalf("expected x, got %q (%v)", v, ok)
	}
	if _, ok := r.Pick("missing"); ok {
		t.Fatal("missing alias should not resolve")
	}
	if r.PickPtr("a") != nil {
		t.Fatal("empty value should give nil pointer")
	}
}

func TestRecord_PickOrder(t *testing.T) {
	r := Record{"公告日期": "2024-01-01", "date": "2020-01-01"}
	if v, _ := r.Pick("公告日期", "date"); v != "2024-01-01" {
		t.Fatalf("first alias should win, got %s", v)
	}
}
