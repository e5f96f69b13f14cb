package nft

import (
	"errors"
	"reflect"
	"testing"
)

var testDeployment = Deployment{
	Name:            "test",
	Network:         "testnet",
	PackageID:       "0xe463bad101ad1d0b2f7d048a5cf7b946d73f9b831c4dbe90465ad9921f8a5374",
	TemplateStoreID: "0xa4741e999ca62a46e260aed19f7571f87a3207acca23f510e719c78681547a88",
}

func validTemplateForm() FormInput {
	return FormInput{Title: "Sunset", Description: "First trip", ImageURL: "https://example.com/a.jpg", Rarity: 3}
}

func validIntroForm() FormInput {
	return FormInput{Name: "Linh", Description: "Builder", ImageURL: "https://example.com/me.jpg", Slogan: "ship it"}
}

func TestBuildArgumentOrder(t *testing.T) {
	t.Run("mint random", func(t *testing.T) {
		req, err := Build(OpMintRandom, EmptyForm(), testDeployment)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		want := []Arg{ObjectArg(testDeployment.TemplateStoreID)}
		if !reflect.DeepEqual(req.Args(), want) {
			t.Errorf("args = %#v, want %#v", req.Args(), want)
		}
		if got := req.Target().String(); got != testDeployment.PackageID+"::my_nft_collection::mint_random_memory_nft" {
			t.Errorf("unexpected target %s", got)
		}
	})

	t.Run("add template", func(t *testing.T) {
		req, err := Build(OpAddTemplate, validTemplateForm(), testDeployment)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		want := []Arg{
			ObjectArg(testDeployment.TemplateStoreID),
			StringArg("Sunset"),
			StringArg("First trip"),
			StringArg("https://example.com/a.jpg"),
			U8Arg(3),
		}
		if !reflect.DeepEqual(req.Args(), want) {
			t.Errorf("args = %#v, want %#v", req.Args(), want)
		}
		if req.Target().Function != "add_memory_template" {
			t.Errorf("function = %s", req.Target().Function)
		}
	})

	t.Run("mint self introduction", func(t *testing.T) {
		req, err := Build(OpMintIntroduction, validIntroForm(), testDeployment)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		want := []Arg{StringArg("Linh"), StringArg("Builder"), StringArg("https://example.com/me.jpg"), StringArg("ship it")}
		if !reflect.DeepEqual(req.Args(), want) {
			t.Errorf("args = %#v, want %#v", req.Args(), want)
		}
		if req.Target().Function != "mint_self_introduction_nft" {
			t.Errorf("function = %s", req.Target().Function)
		}
	})
}

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		form   FormInput
		fields []string
	}{
		{"empty template form", OpAddTemplate, FormInput{}, []string{"Title", "Description", "ImageURL", "Rarity"}},
		{"rarity too high", OpAddTemplate, func() FormInput { f := validTemplateForm(); f.Rarity = 6; return f }(), []string{"Rarity"}},
		{"rarity zero", OpAddTemplate, func() FormInput { f := validTemplateForm(); f.Rarity = 0; return f }(), []string{"Rarity"}},
		{"whitespace title", OpAddTemplate, func() FormInput { f := validTemplateForm(); f.Title = "   "; return f }(), []string{"Title"}},
		{"missing slogan", OpMintIntroduction, func() FormInput { f := validIntroForm(); f.Slogan = ""; return f }(), []string{"Slogan"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Build(tt.kind, tt.form, testDeployment)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !reflect.DeepEqual(verr.Fields, tt.fields) {
				t.Errorf("fields = %v, want %v", verr.Fields, tt.fields)
			}
			if len(req.Args()) != 0 || req.Target() != (Target{}) {
				t.Errorf("partial request returned: %#v", req)
			}
		})
	}

	t.Run("rarity bounds accepted", func(t *testing.T) {
		for r := 1; r <= 5; r++ {
			f := validTemplateForm()
			f.Rarity = r
			if _, err := Build(OpAddTemplate, f, testDeployment); err != nil {
				t.Errorf("rarity %d rejected: %v", r, err)
			}
		}
	})

	t.Run("introduction ignores rarity", func(t *testing.T) {
		f := validIntroForm()
		f.Rarity = 42
		if _, err := Build(OpMintIntroduction, f, testDeployment); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestBuildIncompleteDeployment(t *testing.T) {
	d := testDeployment
	d.TemplateStoreID = ""

	if _, err := Build(OpMintRandom, EmptyForm(), d); !errors.Is(err, ErrDeploymentIncomplete) {
		t.Errorf("expected ErrDeploymentIncomplete, got %v", err)
	}
	if _, err := Build(OpMintIntroduction, validIntroForm(), d); err != nil {
		t.Errorf("introduction does not need the store: %v", err)
	}
}

func TestArgsReturnsCopy(t *testing.T) {
	req, err := Build(OpAddTemplate, validTemplateForm(), testDeployment)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	args := req.Args()
	args[1] = StringArg("tampered")
	if req.Args()[1] != StringArg("Sunset") {
		t.Error("CallRequest was mutated through Args()")
	}
}
