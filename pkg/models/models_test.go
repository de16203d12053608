package models_test

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/voltrak-labs/showroom/pkg/models"
)

func TestProductDecodesNativeComposites(t *testing.T) {
	body := `{
		"id": 7,
		"name": "E-Tractor 40",
		"price": 1250000,
		"image_urls": ["a.jpg", "b.jpg"],
		"related_products_ids": [3, 1],
		"specifications": {"motor": [{"parameter": "Power", "value": "30 kW"}], "battery": [{"feature": "Capacity", "value": 40}]}
	}`
	var p models.Product
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if p.ID == nil || *p.ID != 7 {
		t.Errorf("ID = %v, want 7", p.ID)
	}
	if p.Price != "1250000" {
		t.Errorf("Price = %q", p.Price)
	}
	if strings.Join(p.ImageURLs, ",") != "a.jpg,b.jpg" {
		t.Errorf("ImageURLs = %v", p.ImageURLs)
	}
	if len(p.RelatedProductIDs) != 2 || p.RelatedProductIDs[0] != 3 || p.RelatedProductIDs[1] != 1 {
		t.Errorf("RelatedProductIDs = %v", p.RelatedProductIDs)
	}
	if len(p.Specifications) != 2 || p.Specifications[0].Key != "motor" || p.Specifications[1].Key != "battery" {
		t.Fatalf("Specifications order not preserved: %+v", p.Specifications)
	}
	rows, _ := p.Specifications.Get("battery")
	if rows[0].Label() != "Capacity" || rows[0].Value != "40" {
		t.Errorf("battery row = %+v", rows[0])
	}
}

func TestProductDecodesStringEncodedComposites(t *testing.T) {
	body := `{
		"id": 2,
		"name": "Loader",
		"price": "990000",
		"image_urls": "[\"x.png\"]",
		"related_products_ids": "[5]",
		"specifications": "{\"dims\": [{\"parameter\": \"Length\", \"value\": \"3 m\"}]}"
	}`
	var p models.Product
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(p.ImageURLs) != 1 || p.ImageURLs[0] != "x.png" {
		t.Errorf("ImageURLs = %v", p.ImageURLs)
	}
	if len(p.RelatedProductIDs) != 1 || p.RelatedProductIDs[0] != 5 {
		t.Errorf("RelatedProductIDs = %v", p.RelatedProductIDs)
	}
	if rows, ok := p.Specifications.Get("dims"); !ok || rows[0].Value != "3 m" {
		t.Errorf("Specifications = %+v", p.Specifications)
	}
}

func TestProductMalformedCompositesDecodeEmpty(t *testing.T) {
	body := `{"name": "Odd", "image_urls": "not json", "related_products_ids": {"a": 1}, "specifications": [1, 2]}`
	var p models.Product
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if p.ImageURLs != nil || p.RelatedProductIDs != nil || p.Specifications != nil {
		t.Errorf("expected empty composites, got %v %v %v", p.ImageURLs, p.RelatedProductIDs, p.Specifications)
	}
}

func TestSpecificationsJSONRoundTripKeepsOrder(t *testing.T) {
	in := `{"zeta":[{"parameter":"A","value":"1"},{"parameter":"B","value":"2"}],"alpha":[{"feature":"C","value":"3"}]}`
	var specs models.Specifications
	if err := json.Unmarshal([]byte(in), &specs); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	out, err := json.Marshal(specs)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != in {
		t.Errorf("round trip changed output:\n got %s\nwant %s", out, in)
	}
}

func TestSpecificationsEmptyMarshalsAsObject(t *testing.T) {
	var specs models.Specifications
	out, err := json.Marshal(specs)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "{}" {
		t.Errorf("Marshal = %s, want {}", out)
	}
}

func TestSpecificationsYAMLKeepsOrder(t *testing.T) {
	src := `
performance:
  - parameter: Top speed
    value: 25 km/h
battery:
  - parameter: Capacity
    value: 40 kWh
`
	var specs models.Specifications
	if err := yaml.Unmarshal([]byte(src), &specs); err != nil {
		t.Fatalf("yaml.Unmarshal failed: %v", err)
	}
	if len(specs) != 2 || specs[0].Key != "performance" || specs[1].Key != "battery" {
		t.Errorf("order not preserved: %+v", specs)
	}
}

func TestSectionTitle(t *testing.T) {
	cases := map[string]string{
		"battery_pack":       "Battery Pack",
		"motor":              "Motor",
		"hydraulics_and_pto": "Hydraulics And Pto",
	}
	for in, want := range cases {
		if got := models.SectionTitle(in); got != want {
			t.Errorf("SectionTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPriceMarshal(t *testing.T) {
	cases := []struct {
		price models.Price
		want  string
	}{
		{"", "null"},
		{"1500", "1500"},
		{"12.5", "12.5"},
		{"on request", `"on request"`},
		{"1e3", "1e3"},
		{"-7", "-7"},
		{"05", `"05"`},
		{".5", `".5"`},
		{"5.", `"5."`},
		{"+5", `"+5"`},
		{"NaN", `"NaN"`},
		{"0x1p3", `"0x1p3"`},
	}
	for _, tc := range cases {
		out, err := json.Marshal(tc.price)
		if err != nil {
			t.Fatalf("Marshal(%q): %v", tc.price, err)
		}
		if string(out) != tc.want {
			t.Errorf("Marshal(%q) = %s, want %s", tc.price, out, tc.want)
		}
	}
}

func TestProductPayloadEncodesLooseNumericPrice(t *testing.T) {
	for _, in := range []string{"05", ".5", "+5", "NaN"} {
		data, err := json.Marshal(models.ProductPayload{Name: "x", Price: models.Price(in)})
		if err != nil {
			t.Fatalf("Marshal price %q: %v", in, err)
		}
		var back struct {
			Price string `json:"price"`
		}
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("price %q did not round trip as a string: %v (%s)", in, err, data)
		}
		if back.Price != in {
			t.Errorf("price = %q, want %q", back.Price, in)
		}
	}
}
