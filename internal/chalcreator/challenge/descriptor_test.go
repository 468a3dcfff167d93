package challenge

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	chalerrors "github.com/canopus/chalcreator/internal/chalcreator/errors"
)

func validParams() Params {
	return Params{
		Name:     "chal1",
		Author:   "canopus",
		Category: "Web",
		BaseDir:  "/tmp",
		Docker:   true,
	}
}

func TestAssemble_Valid(t *testing.T) {
	d, err := Assemble(validParams())
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	got := map[string]any{
		"name":     d.Name(),
		"author":   d.Author(),
		"category": d.Category(),
		"baseDir":  d.BaseDir(),
		"docker":   d.Docker(),
		"verbose":  d.Verbose(),
		"root":     d.Root(),
		"image":    d.Image(),
	}
	want := map[string]any{
		"name":     "chal1",
		"author":   "canopus",
		"category": Web,
		"baseDir":  "/tmp",
		"docker":   true,
		"verbose":  false,
		"root":     filepath.Join("/tmp", "chal1"),
		"image":    "canopus/chal1",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_DefaultsAndNormalization(t *testing.T) {
	p := validParams()
	p.BaseDir = ""
	p.Category = "pWn"

	d, err := Assemble(p)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if d.BaseDir() != "." {
		t.Errorf("BaseDir() = %q, want %q", d.BaseDir(), ".")
	}
	if d.Category() != Pwn {
		t.Errorf("Category() = %q, want %q", d.Category(), Pwn)
	}

	p.BaseDir = "/tmp/ctf/../ctf/"
	d, err = Assemble(p)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if d.BaseDir() != "/tmp/ctf" {
		t.Errorf("BaseDir() = %q, want cleaned path", d.BaseDir())
	}
}

func TestAssemble_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Params)
		wantField string
	}{
		{"empty name", func(p *Params) { p.Name = "" }, "name"},
		{"blank name", func(p *Params) { p.Name = "   " }, "name"},
		{"name with slash", func(p *Params) { p.Name = "a/b" }, "name"},
		{"name with backslash", func(p *Params) { p.Name = `a\b` }, "name"},
		{"dot name", func(p *Params) { p.Name = "." }, "name"},
		{"dotdot name", func(p *Params) { p.Name = ".." }, "name"},
		{"empty author", func(p *Params) { p.Author = "" }, "author"},
		{"author with slash", func(p *Params) { p.Author = "team/x" }, "author"},
		{"unknown category", func(p *Params) { p.Category = "Hardware" }, "type"},
		{"alternate reversing spelling", func(p *Params) { p.Category = "Reverse" }, "type"},
		{"empty category", func(p *Params) { p.Category = "" }, "type"},
		{"nul in dir", func(p *Params) { p.BaseDir = "/tmp/\x00" }, "dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)

			d, err := Assemble(p)
			if d != nil {
				t.Errorf("Assemble() returned a descriptor for invalid input")
			}
			if !errors.Is(err, chalerrors.ErrValidation) {
				t.Fatalf("Assemble() error = %v, want ErrValidation", err)
			}
			var verr *chalerrors.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestAssemble_ReportsEveryProblem(t *testing.T) {
	_, err := Assemble(Params{Category: "nope"})

	var verr *chalerrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Field != "name" {
		t.Errorf("first field = %q, want name", verr.Field)
	}
	if len(verr.Others) != 2 {
		t.Errorf("Others = %v, want author and type problems", verr.Others)
	}
	if !strings.Contains(err.Error(), `"nope" is not one of Crypto, Pwn, Reversing`) {
		t.Errorf("message should list valid categories: %s", err)
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		for _, in := range []string{string(c), strings.ToLower(string(c)), strings.ToUpper(string(c)), " " + string(c) + " "} {
			got, ok := ParseCategory(in)
			if !ok || got != c {
				t.Errorf("ParseCategory(%q) = %q, %v; want %q, true", in, got, ok, c)
			}
		}
	}

	if _, ok := ParseCategory("blockchain"); ok {
		t.Error("ParseCategory should reject unknown categories")
	}
}

func TestCategories_ReturnsCopy(t *testing.T) {
	cs := Categories()
	cs[0] = "Mutated"

	want := []string{"Crypto", "Pwn", "Reversing", "Web", "Misc", "Forensics", "Stego"}
	if diff := cmp.Diff(want, CategoryNames()); diff != "" {
		t.Errorf("CategoryNames() mismatch (-want +got):\n%s", diff)
	}
}
