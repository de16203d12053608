package forms_test

import (
	"testing"

	"github.com/voltrak-labs/showroom/internal/errors"
	"github.com/voltrak-labs/showroom/internal/forms"
	"github.com/voltrak-labs/showroom/internal/resources"
	"github.com/voltrak-labs/showroom/pkg/models"
)

func TestBufferResetsToTemplate(t *testing.T) {
	b := forms.NewBuffer(resources.QnA)
	b.Edit(models.QnA{ID: models.Int64(4), Question: "Q", Answer: "A"})
	if !b.Editing() {
		t.Error("Editing() = false after Edit")
	}
	b.Reset()
	if b.Editing() || b.Current() != (models.QnA{}) {
		t.Errorf("after Reset = %+v", b.Current())
	}
}

func TestBufferSetFieldByJSONName(t *testing.T) {
	b := forms.NewBuffer(resources.QnA)
	if err := b.SetField("question", "Q1"); err != nil {
		t.Fatal(err)
	}
	if err := b.SetField("answer", "A1"); err != nil {
		t.Fatal(err)
	}
	if err := b.SetField("id", "12"); err != nil {
		t.Fatal(err)
	}
	q, err := b.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if q.Question != "Q1" || q.Answer != "A1" || q.ID == nil || *q.ID != 12 {
		t.Errorf("value = %+v", q)
	}

	if err := b.SetField("id", ""); err != nil || b.Editing() {
		t.Errorf("clearing id: err=%v editing=%v", err, b.Editing())
	}
}

func TestBufferRejectsUnknownAndBadFields(t *testing.T) {
	b := forms.NewBuffer(resources.Awards)
	if err := b.SetField("title", "x"); err == nil {
		t.Error("expected error for unknown field")
	}
	if err := b.SetField("id", "seven"); err == nil {
		t.Error("expected error for non-integer id")
	}
}

func TestBufferValueChecksRequired(t *testing.T) {
	b := forms.NewBuffer(resources.QnA)
	b.SetField("question", "Q1")

	_, err := b.Value()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := errors.UserMessage(err); got != "invalid form: answer is required" {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestBufferValueChecksURL(t *testing.T) {
	b := forms.NewBuffer(resources.Media)
	b.SetField("url", "not a url")
	if _, err := b.Value(); err == nil {
		t.Fatal("expected validation error")
	}
	b.SetField("url", "https://news.example.com/story")
	if _, err := b.Value(); err != nil {
		t.Errorf("Value failed: %v", err)
	}
}

func TestSplitHelpers(t *testing.T) {
	urls := forms.SplitList(" a.jpg , b.jpg,, ")
	if len(urls) != 2 || urls[0] != "a.jpg" || urls[1] != "b.jpg" {
		t.Errorf("SplitList = %q", urls)
	}
	ids := forms.SplitIDs("3, x, 7,  ,9.5")
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 7 {
		t.Errorf("SplitIDs = %v", ids)
	}
	if forms.JoinIDs([]int64{1, 2}) != "1, 2" {
		t.Errorf("JoinIDs = %q", forms.JoinIDs([]int64{1, 2}))
	}
}

func TestProductFormConversions(t *testing.T) {
	f := forms.NewProductForm()
	steps := map[string]string{
		"name":                 "E-Tractor 40",
		"price":                "1250000",
		"image_urls":           "a.jpg, b.jpg",
		"related_products_ids": "2, three, 5",
		"specifications":       `{"motor":[{"parameter":"Power","value":"30 kW"}],"battery":[{"parameter":"Capacity","value":"40 kWh"}]}`,
	}
	for name, value := range steps {
		if err := f.SetField(name, value); err != nil {
			t.Fatalf("SetField(%s) failed: %v", name, err)
		}
	}

	p, err := f.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if p.Price != "1250000" || len(p.ImageURLs) != 2 || len(p.RelatedProductIDs) != 2 {
		t.Errorf("product = %+v", p)
	}
	if len(p.Specifications) != 2 || p.Specifications[0].Key != "motor" {
		t.Errorf("specifications = %+v", p.Specifications)
	}
}

func TestProductFormKeepsInvalidSpecificationsText(t *testing.T) {
	f := forms.NewProductForm()
	f.SetField("name", "Loader")
	if err := f.SetField("specifications", `{"motor": [`); err != nil {
		t.Fatalf("SetField should tolerate bad JSON, got %v", err)
	}

	raw, pending := f.SpecificationsRaw()
	if !pending || raw != `{"motor": [` {
		t.Errorf("raw = %q pending = %v", raw, pending)
	}
	if f.SpecificationsText() != `{"motor": [` {
		t.Errorf("SpecificationsText = %q", f.SpecificationsText())
	}

	_, err := f.Value()
	if err == nil {
		t.Fatal("expected InvalidSpecifications")
	}
	if errors.CodeOf(err) != errors.CodeValidation {
		t.Errorf("CodeOf = %d", errors.CodeOf(err))
	}

	// Fixing the text clears the pending state.
	f.SetField("specifications", "")
	if _, pending := f.SpecificationsRaw(); pending {
		t.Error("still pending after clearing")
	}
	if _, err := f.Value(); err != nil {
		t.Errorf("Value failed: %v", err)
	}
}

func TestProductFormEditCopiesLists(t *testing.T) {
	row := models.Product{ID: models.Int64(3), Name: "P", ImageURLs: []string{"a"}}
	f := forms.FromProduct(row)
	f.SetField("image_urls", "b, c")

	if row.ImageURLs[0] != "a" {
		t.Error("editing the form changed the source row")
	}
	if !f.Editing() {
		t.Error("Editing() = false")
	}
	f.Reset()
	if f.Editing() || f.Current().ImageURLs == nil || len(f.Current().ImageURLs) != 0 {
		t.Errorf("after Reset = %+v", f.Current())
	}
}

func TestFieldsListsJSONNames(t *testing.T) {
	names := forms.Fields[models.MediaItem]()
	if len(names) != 2 || names[0] != "id" || names[1] != "url" {
		t.Errorf("Fields = %v", names)
	}
}

func TestProductFormChecksOptionalURLs(t *testing.T) {
	for _, field := range []string{"main_image_url", "video_url", "tco_savings_image_url"} {
		f := forms.NewProductForm()
		f.SetField("name", "E-Tractor 40")
		f.SetField(field, "not a url")

		_, err := f.Value()
		if err == nil {
			t.Fatalf("%s: expected validation error", field)
		}
		if got, want := errors.UserMessage(err), "invalid form: "+field+" must be a valid URL"; got != want {
			t.Errorf("UserMessage = %q, want %q", got, want)
		}

		f.SetField(field, "")
		if _, err := f.Value(); err != nil {
			t.Errorf("%s: empty value should pass: %v", field, err)
		}
	}
}
