package site_test

import (
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/voltrak-labs/showroom/internal/backend"
	"github.com/voltrak-labs/showroom/internal/errors"
	"github.com/voltrak-labs/showroom/internal/site"
	"github.com/voltrak-labs/showroom/internal/tco"
)

type posted struct {
	path string
	body map[string]interface{}
}

type fakeSite struct {
	mu    sync.Mutex
	posts []posted
	fail  map[string]string
}

func (f *fakeSite) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if msg, ok := f.fail[r.URL.Path]; ok {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(msg))
		return
	}
	if r.Method == http.MethodPost {
		data, _ := io.ReadAll(r.Body)
		var body map[string]interface{}
		json.Unmarshal(data, &body)
		f.mu.Lock()
		f.posts = append(f.posts, posted{r.URL.Path, body})
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"ok"}`))
		return
	}
	switch r.URL.Path {
	case "/api/products":
		w.Write([]byte(`[{"id":1,"name":"A"},{"id":2,"name":"B"},{"id":3,"name":"C"},{"id":4,"name":"D"}]`))
	case "/api/products/2":
		w.Write([]byte(`{"id":2,"name":"B","specifications":"{\"motor\":[{\"parameter\":\"Power\",\"value\":\"30 kW\"}]}"}`))
	case "/api/blogs":
		w.Write([]byte(`[{"id":7,"title":"Seven"},{"id":8,"title":"Eight"}]`))
	case "/api/blogs/7":
		w.Write([]byte(`{"id":7,"title":"Seven","content":"<p>x</p>"}`))
	case "/api/awards":
		w.Write([]byte(`[{"id":1,"image_url":"a.png"}]`))
	default:
		w.Write([]byte(`[]`))
	}
}

func (f *fakeSite) Posts() []posted {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]posted(nil), f.posts...)
}

func newSite(t *testing.T, fail map[string]string) (*site.Site, *fakeSite) {
	t.Helper()
	fs := &fakeSite{fail: fail}
	srv := httptest.NewServer(fs)
	t.Cleanup(srv.Close)
	return site.New(backend.New(srv.URL, 0), site.WithRand(rand.New(rand.NewSource(1)))), fs
}

func TestProductDetailPicksTwoOtherProducts(t *testing.T) {
	s, _ := newSite(t, nil)
	page, err := s.ProductDetail(context.Background(), 2, tco.DefaultInputs())
	if err != nil {
		t.Fatalf("ProductDetail failed: %v", err)
	}
	if page.Product.Name != "B" {
		t.Errorf("product = %+v", page.Product)
	}
	if rows, ok := page.Product.Specifications.Get("motor"); !ok || rows[0].Value != "30 kW" {
		t.Errorf("specifications = %+v", page.Product.Specifications)
	}
	if len(page.Related) != 2 {
		t.Fatalf("related = %+v", page.Related)
	}
	for _, p := range page.Related {
		if *p.ID == 2 {
			t.Error("related includes the product itself")
		}
	}
	if page.TCO.SevenYearSavings != 2100000 {
		t.Errorf("tco = %+v", page.TCO)
	}
}

func TestBlogDetailRelatedExcludesSelf(t *testing.T) {
	s, _ := newSite(t, nil)
	page, err := s.BlogDetail(context.Background(), 7)
	if err != nil {
		t.Fatalf("BlogDetail failed: %v", err)
	}
	if len(page.Related) != 1 || *page.Related[0].ID != 8 {
		t.Errorf("related = %+v", page.Related)
	}
}

func TestGallerySectionsFailIndependently(t *testing.T) {
	s, _ := newSite(t, map[string]string{"/api/media": `{"error":"media offline"}`})
	g := s.Gallery(context.Background())
	if g.AwardsError != "" || len(g.Awards) != 1 {
		t.Errorf("awards = %+v / %q", g.Awards, g.AwardsError)
	}
	if g.MediaError != "media offline" {
		t.Errorf("media error = %q", g.MediaError)
	}
}

func TestAccordionTogglesIndependently(t *testing.T) {
	var a site.Accordion
	if !a.Toggle(1) || !a.Toggle(2) {
		t.Fatal("first toggle should expand")
	}
	if a.Toggle(1) {
		t.Error("second toggle should collapse")
	}
	if a.Expanded(1) || !a.Expanded(2) {
		t.Errorf("expanded = %v %v", a.Expanded(1), a.Expanded(2))
	}
}

func TestSubmitOrderIndividual(t *testing.T) {
	s, fs := newSite(t, nil)
	err := s.SubmitOrder(context.Background(), site.RequestForm{
		ProductName:  "E-Tractor",
		FullName:     "Asha Rao",
		Email:        "asha@example.com",
		PhoneNumber:  "9999999999",
		AadharNumber: "1234 5678 9012",
	})
	if err != nil {
		t.Fatalf("SubmitOrder failed: %v", err)
	}

	posts := fs.Posts()
	if len(posts) != 1 || posts[0].path != "/api/requests" {
		t.Fatalf("posts = %+v", posts)
	}
	body := posts[0].body
	if body["request_type"] != "order" || body["quantity"] != float64(1) {
		t.Errorf("body = %v", body)
	}
	if body["company_name"] != nil || body["pan_number"] != nil {
		t.Errorf("company/pan should be null: %v", body)
	}
	if body["aadhar_number"] != "1234 5678 9012" {
		t.Errorf("aadhar = %v", body["aadhar_number"])
	}
}

func TestSubmitDemoCompany(t *testing.T) {
	s, fs := newSite(t, nil)
	err := s.SubmitDemo(context.Background(), site.RequestForm{
		BuyerType:    site.BuyerCompany,
		ProductName:  "Loader",
		FullName:     "Ravi",
		Email:        "ravi@example.com",
		PhoneNumber:  "8888888888",
		CompanyName:  "Agro Ltd",
		AadharNumber: "ignored",
		PanNumber:    "ABCDE1234F",
		Quantity:     3,
	})
	if err != nil {
		t.Fatalf("SubmitDemo failed: %v", err)
	}
	body := fs.Posts()[0].body
	if body["request_type"] != "demo" || body["company_name"] != "Agro Ltd" || body["aadhar_number"] != nil {
		t.Errorf("body = %v", body)
	}
	if body["pan_number"] != "ABCDE1234F" || body["quantity"] != float64(3) {
		t.Errorf("body = %v", body)
	}
}

func TestSubmitRequiresCompanyNameForCompanies(t *testing.T) {
	s, fs := newSite(t, nil)
	err := s.SubmitOrder(context.Background(), site.RequestForm{
		BuyerType:   site.BuyerCompany,
		ProductName: "Loader",
		FullName:    "Ravi",
		Email:       "ravi@example.com",
		PhoneNumber: "8888888888",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := errors.UserMessage(err); got != "invalid form: company_name is required" {
		t.Errorf("UserMessage = %q", got)
	}
	if len(fs.Posts()) != 0 {
		t.Error("invalid form was posted")
	}
}

func TestSubmitFailureMessages(t *testing.T) {
	s, _ := newSite(t, map[string]string{
		"/api/requests":  `{"error":"product_name is required"}`,
		"/api/apply":     "<html>oops</html>",
		"/api/subscribe": `{"error":"already subscribed"}`,
	})
	ctx := context.Background()

	err := s.SubmitOrder(ctx, site.RequestForm{ProductName: "X", FullName: "N", Email: "n@example.com", PhoneNumber: "1"})
	if err == nil || err.Error() != "Failed to submit order: product_name is required" {
		t.Errorf("order err = %v", err)
	}
	err = s.Apply(ctx, site.ApplicationForm{Name: "N", Email: "n@example.com", Position: "Engineer"})
	if err == nil || err.Error() != "Failed to submit application: Server responded with non-JSON: <html>oops</html>..." {
		t.Errorf("apply err = %v", err)
	}
	err = s.Subscribe(ctx, "n@example.com")
	if err == nil || err.Error() != "Failed to subscribe: already subscribed" {
		t.Errorf("subscribe err = %v", err)
	}
}

func TestSubscribeWithoutBackend(t *testing.T) {
	s := site.New(backend.New("", 0))
	err := s.Subscribe(context.Background(), "n@example.com")
	if err == nil || err.Error() != "Failed to subscribe: Backend URL not configured." {
		t.Errorf("err = %v", err)
	}
}

func TestSubscribeRejectsBadEmail(t *testing.T) {
	s, fs := newSite(t, nil)
	if err := s.Subscribe(context.Background(), "not-an-email"); err == nil {
		t.Error("expected validation error")
	}
	if len(fs.Posts()) != 0 {
		t.Error("invalid email was posted")
	}
}

func TestApplyPostsForm(t *testing.T) {
	s, fs := newSite(t, nil)
	if err := s.Apply(context.Background(), site.ApplicationForm{Name: "N", Email: "n@example.com", Position: "Welder"}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	p := fs.Posts()[0]
	if p.path != "/api/apply" || p.body["position"] != "Welder" || p.body["name"] != "N" {
		t.Errorf("post = %+v", p)
	}
}
