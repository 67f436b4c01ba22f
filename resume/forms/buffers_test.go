package forms

import (
	"testing"

	"curriculum-backend/resume/model"
)

func TestLanguageInputResetsOnSubmit(t *testing.T) {
	in := NewLanguageInput()
	in.Name = " Spanish "
	in.Level = model.LevelFluent

	doc, err := in.Submit(model.New("", ""))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(doc.Languages) != 1 || doc.Languages[0].Name != "Spanish" || doc.Languages[0].Level != model.LevelFluent {
		t.Fatalf("languages = %+v", doc.Languages)
	}
	if in.Name != "" || in.Level != model.LevelIntermediate {
		t.Fatalf("buffer not reset: %+v", in)
	}
}

func TestBlankBuffersAreNoOps(t *testing.T) {
	doc := model.New("", "")

	skill := SkillInput{Value: "  "}
	got, err := skill.Submit(doc)
	if err != nil || got != doc {
		t.Fatalf("blank skill changed doc: %v", err)
	}
	if skill.Value != "  " {
		t.Fatalf("blank skill buffer was reset")
	}

	lang := LanguageInput{Level: model.LevelNative}
	got, err = lang.Submit(doc)
	if err != nil || got != doc {
		t.Fatalf("blank language changed doc: %v", err)
	}
	if lang.Level != model.LevelNative {
		t.Fatalf("blank language buffer was reset")
	}
}

func TestSkillInputSubmit(t *testing.T) {
	in := SkillInput{Value: "Kubernetes"}
	doc, err := in.Submit(model.New("", ""))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(doc.Skills) != 1 || in.Value != "" {
		t.Fatalf("skills = %v, buffer = %q", doc.Skills, in.Value)
	}
}

func TestValidatePersonal(t *testing.T) {
	errs := ValidatePersonal(model.PersonalDetails{FullName: "A", Email: "nope"}, "")
	got := errs.Map()
	if got["full_name"][0] != "Name must be at least 2 characters" {
		t.Fatalf("full_name = %v", got["full_name"])
	}
	if got["email"][0] != "Invalid email address" {
		t.Fatalf("email = %v", got["email"])
	}
	if _, ok := got["summary"]; ok {
		t.Fatalf("unexpected summary error")
	}

	if errs := ValidatePersonal(model.PersonalDetails{FullName: "Ada"}, "short"); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}
