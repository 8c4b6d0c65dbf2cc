package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateValueNormalizesPartialMonths(t *testing.T) {
	v, err := Date("2024-05").Value()
	if err != nil {
		t.Fatal(err)
	}
	if v != "2024-05-01" {
		t.Fatalf("got %v, want 2024-05-01", v)
	}
}

func TestDateValueEmptyIsNull(t *testing.T) {
	v, err := Date("").Value()
	if err != nil {
		t.Fatal(err)
	}
	if v != nil {
		t.Fatalf("empty Date must bind as NULL, got %v", v)
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	if d != "2021-06-01" {
		t.Fatalf("got %q", d)
	}
	if err := d.Scan(nil); err != nil {
		t.Fatal(err)
	}
	if d != "" {
		t.Fatalf("nil should scan to empty, got %q", d)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(Date(""))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "null" {
		t.Fatalf("empty Date must marshal as null, got %s", b)
	}

	var d Date
	if err := json.Unmarshal([]byte(`null`), &d); err != nil {
		t.Fatal(err)
	}
	if d != "" {
		t.Fatalf("null should unmarshal to empty, got %q", d)
	}
	if err := json.Unmarshal([]byte(`"2020-01"`), &d); err != nil {
		t.Fatal(err)
	}
	if d != "2020-01" {
		t.Fatalf("got %q", d)
	}
}

func TestContactScanDefaultsToEmptyStrings(t *testing.T) {
	var c Contact
	if err := c.Scan(nil); err != nil {
		t.Fatal(err)
	}
	if c.Telephone != "" || c.Mobile != "" || c.Email != "" || c.Address != "" {
		t.Fatalf("nil contact must default to empty strings, got %+v", c)
	}

	// malformed blobs also fall back instead of propagating garbage
	if err := c.Scan([]byte("not-json")); err != nil {
		t.Fatal(err)
	}
	if c != (Contact{}) {
		t.Fatalf("malformed contact must default, got %+v", c)
	}

	if err := c.Scan([]byte(`{"telephone":"123","mobile":"","email":"a@b.c","address":""}`)); err != nil {
		t.Fatal(err)
	}
	if c.Telephone != "123" || c.Email != "a@b.c" {
		t.Fatalf("got %+v", c)
	}
}
