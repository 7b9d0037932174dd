package validation

import (
	"errors"
	"testing"
)

type form struct {
	Notes    string `validate:"required,min=20"`
	Category string `validate:"required,oneof=a b"`
}

var msgs = Messages{
	"Notes.min": "too short",
	"Category":  "pick one",
}

func TestStruct(t *testing.T) {
	cases := []struct {
		name string
		in   form
		want string
	}{
		{"ok", form{Notes: "yirmi karakterden uzun not", Category: "a"}, ""},
		{"short notes", form{Notes: "kısa", Category: "a"}, "too short"},
		{"missing category", form{Notes: "yirmi karakterden uzun not"}, "pick one"},
		{"bad category", form{Notes: "yirmi karakterden uzun not", Category: "z"}, "pick one"},
		{"empty notes falls back", form{Category: "a"}, DefaultMessage},
	}
	for _, c := range cases {
		err := Struct(c.in, msgs)
		if c.want == "" {
			if err != nil {
				t.Fatalf("%s: unexpected %v", c.name, err)
			}
			continue
		}
		var verr *Error
		if !errors.As(err, &verr) || verr.Message != c.want {
			t.Fatalf("%s: err = %v, want %q", c.name, err, c.want)
		}
	}
}

func TestMinCountsCharacters(t *testing.T) {
	// 20 runes, more than 20 bytes.
	notes := "ğğğğğğğğğğşşşşşşşşşş"
	if err := Struct(form{Notes: notes, Category: "a"}, msgs); err != nil {
		t.Fatalf("20 characters rejected: %v", err)
	}
	if err := Struct(form{Notes: notes[:len(notes)-2], Category: "a"}, msgs); err == nil {
		t.Fatal("19 characters accepted")
	}
}
