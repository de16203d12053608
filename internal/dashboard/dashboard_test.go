package dashboard_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/voltrak-labs/showroom/internal/backend"
	"github.com/voltrak-labs/showroom/internal/dashboard"
	"github.com/voltrak-labs/showroom/internal/datasync"
	"github.com/voltrak-labs/showroom/internal/resources"
	"github.com/voltrak-labs/showroom/pkg/models"
)

type hit struct {
	method, path, body string
}

type fakeBackend struct {
	mu     sync.Mutex
	hits   []hit
	status int
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.hits = append(f.hits, hit{r.Method, r.URL.Path, string(body)})
	status := f.status
	f.mu.Unlock()

	if status != 0 && r.Method != http.MethodGet {
		w.WriteHeader(status)
		w.Write([]byte(`{"error":"rejected"}`))
		return
	}
	switch r.URL.Path {
	case "/api/qna":
		w.Write([]byte(`[{"id":5,"question":"Q5","answer":"A5"}]`))
	case "/api/products":
		w.Write([]byte(`[{"id":1,"name":"E-Tractor","image_urls":"[\"a.jpg\"]","specifications":"{}","related_products_ids":"[]"}]`))
	default:
		w.Write([]byte(`[]`))
	}
}

func (f *fakeBackend) Hits() []hit {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]hit(nil), f.hits...)
}

func (f *fakeBackend) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits = nil
}

func newDashboard(t *testing.T) (*dashboard.Dashboard, *fakeBackend) {
	t.Helper()
	fb := &fakeBackend{}
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)
	return dashboard.New(backend.New(srv.URL, 0), nil, nil), fb
}

func TestInitialTabIsProducts(t *testing.T) {
	d, fb := newDashboard(t)
	if d.Active() != dashboard.TabProducts {
		t.Errorf("Active = %q", d.Active())
	}
	if len(fb.Hits()) != 0 {
		t.Error("New should not fetch")
	}
}

func TestActivateAlwaysRefetches(t *testing.T) {
	d, fb := newDashboard(t)
	ctx := context.Background()

	for _, tab := range []dashboard.Tab{dashboard.TabProducts, dashboard.TabQnA, dashboard.TabProducts, dashboard.TabQnA} {
		if err := d.Activate(ctx, tab); err != nil {
			t.Fatalf("Activate(%s) failed: %v", tab, err)
		}
	}

	var qna int
	for _, h := range fb.Hits() {
		if h.method == http.MethodGet && h.path == "/api/qna" {
			qna++
		}
	}
	if qna != 2 {
		t.Errorf("qna fetched %d times, want 2", qna)
	}
	if d.Active() != dashboard.TabQnA {
		t.Errorf("Active = %q", d.Active())
	}
}

func TestApplicationsTabUsesApplyEndpoint(t *testing.T) {
	d, fb := newDashboard(t)
	if err := d.Activate(context.Background(), dashboard.TabApplications); err != nil {
		t.Fatal(err)
	}
	if h := fb.Hits(); len(h) != 1 || h[0].path != "/api/apply" {
		t.Errorf("hits = %+v", h)
	}
}

func TestParseTabRejectsUnknown(t *testing.T) {
	if _, err := dashboard.ParseTab("blogs"); err == nil {
		t.Error("expected error")
	}
	if tab, err := dashboard.ParseTab("media"); err != nil || tab != dashboard.TabMedia {
		t.Errorf("ParseTab(media) = %q, %v", tab, err)
	}
}

func TestConfirmDeleteIssuesDeleteThenFetch(t *testing.T) {
	d, fb := newDashboard(t)
	ctx := context.Background()
	d.Activate(ctx, dashboard.TabQnA)
	fb.Reset()

	d.RequestDelete(5)
	if d.Gate.State() != dashboard.GatePendingConfirmation {
		t.Fatal("gate should be pending")
	}
	if err := d.ConfirmDelete(ctx); err != nil {
		t.Fatalf("ConfirmDelete failed: %v", err)
	}

	hits := fb.Hits()
	if len(hits) != 2 {
		t.Fatalf("hits = %+v", hits)
	}
	if hits[0].method != http.MethodDelete || hits[0].path != "/api/qna/5" {
		t.Errorf("first = %+v", hits[0])
	}
	if hits[1].method != http.MethodGet || hits[1].path != "/api/qna" {
		t.Errorf("second = %+v", hits[1])
	}
	if d.Gate.State() != dashboard.GateIdle {
		t.Error("gate should be idle")
	}
}

func TestGateClosesBeforeDeleteSettles(t *testing.T) {
	d, fb := newDashboard(t)
	ctx := context.Background()
	d.Activate(ctx, dashboard.TabQnA)
	fb.mu.Lock()
	fb.status = http.StatusInternalServerError
	fb.mu.Unlock()

	d.RequestDelete(5)
	if err := d.ConfirmDelete(ctx); err == nil {
		t.Fatal("expected delete error")
	}
	if d.Gate.State() != dashboard.GateIdle {
		t.Error("gate should be idle after a failed delete")
	}
	if st := d.State(); st.Status != datasync.Failed || st.Message != "rejected" {
		t.Errorf("state = %+v", st)
	}
}

func TestGateIsIdleDuringDelete(t *testing.T) {
	var g dashboard.DeleteGate
	g.Request(5, resources.QnA.Info())

	err := g.Confirm(context.Background(), func(ctx context.Context, p dashboard.Pending) error {
		if g.State() != dashboard.GateIdle {
			t.Error("gate still pending while delete runs")
		}
		if p.ItemID != 5 || p.Resource.Endpoint != "qna" {
			t.Errorf("pending = %+v", p)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestGateHoldsOnePending(t *testing.T) {
	var g dashboard.DeleteGate
	g.Request(1, resources.Awards.Info())
	g.Request(2, resources.Media.Info())

	p, ok := g.Pending()
	if !ok || p.ItemID != 2 || p.Resource.Key != "media" {
		t.Errorf("pending = %+v", p)
	}
	g.Cancel()
	if _, ok := g.Pending(); ok {
		t.Error("Cancel should clear the pending target")
	}
	if err := g.Confirm(context.Background(), func(context.Context, dashboard.Pending) error {
		t.Error("del must not run with nothing pending")
		return nil
	}); err == nil {
		t.Error("expected NoPendingDeletion")
	}
}

func TestQnASubmitPostsAndResetsForm(t *testing.T) {
	d, fb := newDashboard(t)
	ctx := context.Background()
	d.Activate(ctx, dashboard.TabQnA)
	fb.Reset()

	d.SetField("question", "Q1")
	d.SetField("answer", "A1")
	if err := d.Save(ctx); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	hits := fb.Hits()
	if len(hits) != 2 || hits[0].method != http.MethodPost || hits[0].path != "/api/qna" {
		t.Fatalf("hits = %+v", hits)
	}
	if hits[0].body != `{"id":null,"question":"Q1","answer":"A1"}` {
		t.Errorf("body = %s", hits[0].body)
	}
	if d.QnAForm.Current() != (models.QnA{}) {
		t.Errorf("form = %+v, want empty template", d.QnAForm.Current())
	}
}

func TestEditSeedsFormAndSaveUpdates(t *testing.T) {
	d, fb := newDashboard(t)
	ctx := context.Background()
	d.Activate(ctx, dashboard.TabProducts)

	if err := d.Edit(1); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if got := d.ProductForm.Current(); got.Name != "E-Tractor" || len(got.ImageURLs) != 1 {
		t.Errorf("form = %+v", got)
	}
	if err := d.Edit(99); err == nil {
		t.Error("expected not-found error")
	}

	fb.Reset()
	d.SetField("tagline", "Quiet power")
	if err := d.Save(ctx); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if h := fb.Hits(); h[0].method != http.MethodPut || h[0].path != "/api/products/1" {
		t.Errorf("hits = %+v", h)
	}
}

func TestReadOnlyTabsRejectEdits(t *testing.T) {
	d, _ := newDashboard(t)
	ctx := context.Background()
	d.Activate(ctx, dashboard.TabRequests)

	if err := d.SetField("full_name", "x"); err == nil {
		t.Error("SetField should fail on requests")
	}
	if err := d.Save(ctx); err == nil {
		t.Error("Save should fail on requests")
	}
}
