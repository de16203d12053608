package cli_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/voltrak-labs/showroom/internal/cli"
	"github.com/voltrak-labs/showroom/internal/mockbackend"
	"github.com/voltrak-labs/showroom/pkg/models"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type result struct {
	code   int
	stdout string
	stderr string
}

func newBackend(t *testing.T) (*mockbackend.Server, string) {
	t.Helper()
	t.Setenv("BACKEND_URL", "")
	t.Setenv("SHOWROOM_BACKEND_URL", "")
	mb := mockbackend.New()
	srv := httptest.NewServer(mb.Handler())
	t.Cleanup(srv.Close)
	return mb, srv.URL
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	c := cli.New()
	c.SetIO(strings.NewReader(stdin), &out, &errOut)
	code := c.Run(args)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func TestAdminListEmpty(t *testing.T) {
	_, url := newBackend(t)
	r := run(t, "", "--backend", url, "admin", "products", "list")
	if r.code != cli.ExitSuccess {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	if !strings.Contains(r.stdout, "No products") {
		t.Errorf("stdout = %q", r.stdout)
	}
}

func TestAdminSaveCreatesAndRefetches(t *testing.T) {
	mb, url := newBackend(t)
	r := run(t, "", "--backend", url, "admin", "qna", "save",
		"--set", "question=How far on one charge?",
		"--set", "answer=About 8 hours of field work.")
	if r.code != cli.ExitSuccess {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	if !strings.Contains(r.stdout, "Saved qna (1 total)") {
		t.Errorf("stdout = %q", r.stdout)
	}
	if mb.Len("qna") != 1 {
		t.Errorf("stored %d qna", mb.Len("qna"))
	}
}

func TestAdminSaveProductSendsEncodedComposites(t *testing.T) {
	mb, url := newBackend(t)
	r := run(t, "", "--backend", url, "admin", "products", "save",
		"--set", "name=E-Tractor 40",
		"--set", "price=1250000",
		"--set", "image_urls=a.jpg, b.jpg,",
		"--set", "related_products_ids=3,x,5",
		"--set", `specifications={"motor":[{"parameter":"Power","value":"30 kW"}]}`)
	if r.code != cli.ExitSuccess {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}

	records := mb.Records("products")
	if len(records) != 1 {
		t.Fatalf("stored %d products", len(records))
	}
	if got := string(records[0]["image_urls"]); got != `["a.jpg","b.jpg"]` {
		t.Errorf("image_urls = %s", got)
	}
	if got := string(records[0]["related_products_ids"]); got != `[3,5]` {
		t.Errorf("related_products_ids = %s", got)
	}
}

func TestAdminSaveInvalidSpecifications(t *testing.T) {
	mb, url := newBackend(t)
	r := run(t, "", "--backend", url, "admin", "products", "save",
		"--set", "name=E-Tractor",
		"--set", "specifications={not json")
	if r.code != cli.ExitValidation {
		t.Errorf("exit = %d, want %d", r.code, cli.ExitValidation)
	}
	if mb.Len("products") != 0 {
		t.Error("invalid specifications must not be submitted")
	}
}

func TestAdminSaveRequiredField(t *testing.T) {
	mb, url := newBackend(t)
	r := run(t, "", "--backend", url, "admin", "qna", "save", "--set", "question=Only a question")
	if r.code != cli.ExitValidation {
		t.Errorf("exit = %d, want %d", r.code, cli.ExitValidation)
	}
	if !strings.Contains(r.stderr, "answer is required") {
		t.Errorf("stderr = %q", r.stderr)
	}
	if mb.Len("qna") != 0 {
		t.Error("nothing should be posted")
	}
}

func TestAdminSaveFromFile(t *testing.T) {
	mb, url := newBackend(t)
	path := filepath.Join(t.TempDir(), "award.yaml")
	if err := os.WriteFile(path, []byte("image_url: https://cdn.example.com/a.png\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := run(t, "", "--backend", url, "admin", "awards", "save", "--file", path)
	if r.code != cli.ExitSuccess {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	if mb.Len("awards") != 1 {
		t.Errorf("stored %d awards", mb.Len("awards"))
	}
}

func TestAdminEditUpdates(t *testing.T) {
	mb, url := newBackend(t)
	mb.Seed("media", models.MediaItem{URL: "https://x/old"})

	r := run(t, "", "--backend", url, "admin", "media", "edit", "1", "--set", "url=https://x/new")
	if r.code != cli.ExitSuccess {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	records := mb.Records("media")
	if len(records) != 1 || string(records[0]["url"]) != `"https://x/new"` {
		t.Errorf("records = %v", records)
	}

	r = run(t, "", "--backend", url, "admin", "media", "edit", "9")
	if r.code != cli.ExitValidation || !strings.Contains(r.stderr, "media 9 not found") {
		t.Errorf("exit %d: %s", r.code, r.stderr)
	}
}

func TestAdminShow(t *testing.T) {
	mb, url := newBackend(t)
	mb.Seed("qna", models.QnA{Question: "Warranty?", Answer: "Five years."})

	r := run(t, "", "--backend", url, "admin", "qna", "show", "1")
	if r.code != cli.ExitSuccess {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	if !strings.Contains(r.stdout, "question: Warranty?") || !strings.Contains(r.stdout, "id: 1") {
		t.Errorf("stdout = %q", r.stdout)
	}
}

func TestAdminDeletePrompt(t *testing.T) {
	mb, url := newBackend(t)
	mb.Seed("qna", models.QnA{Question: "Q", Answer: "A"})

	r := run(t, "n\n", "--backend", url, "admin", "qna", "delete", "1")
	if r.code != cli.ExitSuccess {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	if !strings.Contains(r.stdout, "Are you sure you want to delete this item? [y/N]") {
		t.Errorf("stdout = %q", r.stdout)
	}
	if !strings.Contains(r.stdout, "Cancelled") || mb.Len("qna") != 1 {
		t.Errorf("declined delete removed the item: %q", r.stdout)
	}

	r = run(t, "y\n", "--backend", url, "admin", "qna", "delete", "1")
	if r.code != cli.ExitSuccess {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	if mb.Len("qna") != 0 {
		t.Error("confirmed delete kept the item")
	}
}

func TestAdminDeleteReadOnlyResource(t *testing.T) {
	mb, url := newBackend(t)
	mb.Seed("apply", models.Application{Name: "Asha", Email: "asha@example.com"})

	r := run(t, "", "--backend", url, "admin", "applications", "delete", "1", "--yes")
	if r.code != cli.ExitSuccess {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	if mb.Len("apply") != 0 {
		t.Error("application not deleted")
	}
}

func TestBackendNotConfigured(t *testing.T) {
	newBackend(t)
	r := run(t, "", "products")
	if r.code != cli.ExitConfig {
		t.Errorf("exit = %d, want %d (%s)", r.code, cli.ExitConfig, r.stderr)
	}
}

func TestBackendFailureMessage(t *testing.T) {
	mb, url := newBackend(t)
	mb.FailNext(http.StatusInternalServerError, "database offline")

	r := run(t, "", "--backend", url, "products")
	if r.code != cli.ExitBackend {
		t.Errorf("exit = %d, want %d", r.code, cli.ExitBackend)
	}
	if !strings.Contains(r.stderr, "database offline") {
		t.Errorf("stderr = %q", r.stderr)
	}
}

func TestProductPage(t *testing.T) {
	mb, url := newBackend(t)
	p := models.Product{Name: "E-Tractor 40", Price: "1250000"}
	p.Specifications.Set("battery_pack", []models.SpecRow{{Parameter: "Capacity", Value: "40 kWh"}})
	mb.Seed("products", p, models.Product{Name: "E-Tractor 25"})

	r := run(t, "", "--backend", url, "product", "1", "--hours", "1200")
	if r.code != cli.ExitSuccess {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	for _, want := range []string{"E-Tractor 40", "Battery Pack", "Capacity", "₹300,000", "E-Tractor 25"} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, r.stdout)
		}
	}
}

func TestTCOJSON(t *testing.T) {
	newBackend(t)
	r := run(t, "", "--json", "tco", "--hours", "2000")
	if r.code != cli.ExitSuccess {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	var out struct {
		Result struct {
			AnnualSavings    float64 `json:"annual_savings"`
			SevenYearSavings float64 `json:"seven_year_savings"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(r.stdout), &out); err != nil {
		t.Fatalf("invalid JSON %q: %v", r.stdout, err)
	}
	if out.Result.AnnualSavings != 600000 || out.Result.SevenYearSavings != 4200000 {
		t.Errorf("result = %+v", out.Result)
	}
}

func TestOrder(t *testing.T) {
	mb, url := newBackend(t)

	r := run(t, "", "--backend", url, "order", "--product", "E-Tractor 40", "--name", "Ravi")
	if r.code != cli.ExitValidation {
		t.Errorf("incomplete order exit = %d", r.code)
	}

	r = run(t, "", "--backend", url, "order",
		"--product", "E-Tractor 40", "--name", "Ravi Kumar",
		"--email", "ravi@example.com", "--phone", "9999999999",
		"--aadhar", "1234")
	if r.code != cli.ExitSuccess {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	if !strings.Contains(r.stdout, "Your order request has been submitted successfully!") {
		t.Errorf("stdout = %q", r.stdout)
	}

	records := mb.Records("requests")
	if len(records) != 1 {
		t.Fatalf("stored %d requests", len(records))
	}
	rec := records[0]
	if string(rec["request_type"]) != `"order"` || string(rec["company_name"]) != "null" ||
		string(rec["pan_number"]) != "null" || string(rec["quantity"]) != "1" {
		t.Errorf("request = %v", rec)
	}
}

func TestSubscribeFailure(t *testing.T) {
	mb, url := newBackend(t)
	mb.FailNextRaw(http.StatusBadGateway, "<html>bad gateway</html>")

	r := run(t, "", "--backend", url, "subscribe", "a@b.co")
	if r.code != cli.ExitBackend {
		t.Errorf("exit = %d", r.code)
	}
	if !strings.Contains(r.stderr, "Failed to subscribe: Server responded with non-JSON: <html>bad gateway</html>...") {
		t.Errorf("stderr = %q", r.stderr)
	}
}

func TestGalleryShowsSectionErrors(t *testing.T) {
	mb, url := newBackend(t)
	mb.Seed("media", models.MediaItem{URL: "https://x/m"})
	mb.FailNext(http.StatusInternalServerError, "awards offline")

	r := run(t, "", "--backend", url, "gallery")
	if r.code != cli.ExitSuccess {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	// One of the two concurrent fetches fails; the other still renders.
	if !strings.Contains(r.stdout, "Error: awards offline") {
		t.Errorf("stdout = %q", r.stdout)
	}
}

func TestShell(t *testing.T) {
	mb, url := newBackend(t)
	script := strings.Join([]string{
		"tab qna",
		"set question Is it waterproof?",
		"set answer IP67 rated.",
		"save",
		"delete 1",
		"abort",
		"delete 1",
		"confirm",
		"confirm",
		"quit",
	}, "\n") + "\n"

	r := run(t, script, "--backend", url, "admin", "shell")
	if r.code != cli.ExitSuccess {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	for _, want := range []string{"✓ Saved", "Cancelled", "✓ Deleted", "Error: no deletion pending"} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, r.stdout)
		}
	}
	if mb.Len("qna") != 0 {
		t.Errorf("stored %d qna", mb.Len("qna"))
	}
}

func TestShellAcceptsLongLines(t *testing.T) {
	mb, url := newBackend(t)
	notes := strings.Repeat("x", 100*1024)
	script := strings.Join([]string{
		"tab products",
		"set name E-Tractor 40",
		`set specifications {"motor":[{"parameter":"Notes","value":"` + notes + `"}]}`,
		"save",
		"quit",
	}, "\n") + "\n"

	r := run(t, script, "--backend", url, "admin", "shell")
	if r.code != cli.ExitSuccess {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	if !strings.Contains(r.stdout, "✓ Saved") {
		t.Errorf("stdout missing save confirmation")
	}
	if mb.Len("products") != 1 {
		t.Fatalf("stored %d products", mb.Len("products"))
	}
	if !strings.Contains(string(mb.Records("products")[0]["specifications"]), notes) {
		t.Error("specifications value truncated")
	}
}

func TestSeedApplyAndAudit(t *testing.T) {
	mb, url := newBackend(t)
	dir := t.TempDir()

	configPath := filepath.Join(dir, "config.yaml")
	config := "audit:\n  driver: sqlite\n  dsn: " + filepath.Join(dir, "audit.db") + "\n"
	if err := os.WriteFile(configPath, []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}
	seedPath := filepath.Join(dir, "catalog.yaml")
	seedFile := "qna:\n  - question: Q1\n    answer: A1\n  - question: Q2\n    answer: A2\n"
	if err := os.WriteFile(seedPath, []byte(seedFile), 0o644); err != nil {
		t.Fatal(err)
	}

	r := run(t, "", "--config", configPath, "--backend", url, "seed", "apply", seedPath)
	if r.code != cli.ExitSuccess {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	if mb.Len("qna") != 2 {
		t.Errorf("stored %d qna", mb.Len("qna"))
	}

	r = run(t, "", "--config", configPath, "--json", "audit", "summary")
	if r.code != cli.ExitSuccess {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	var summary struct {
		SuccessCount int `json:"success_count"`
		FailureCount int `json:"failure_count"`
	}
	if err := json.Unmarshal([]byte(r.stdout), &summary); err != nil {
		t.Fatalf("invalid JSON %q: %v", r.stdout, err)
	}
	// Two saves, each followed by one fetch.
	if summary.SuccessCount != 4 || summary.FailureCount != 0 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestSeedValidateRejectsUnknownKey(t *testing.T) {
	newBackend(t)
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("blogs: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := run(t, "", "seed", "validate", path)
	if r.code != cli.ExitValidation || !strings.Contains(r.stderr, "unknown key: blogs") {
		t.Errorf("exit %d: %s", r.code, r.stderr)
	}
}

func TestDoctor(t *testing.T) {
	_, url := newBackend(t)
	r := run(t, "", "--backend", url, "doctor")
	if r.code != cli.ExitSuccess {
		t.Fatalf("exit %d: %s\n%s", r.code, r.stdout, r.stderr)
	}
	if !strings.Contains(r.stdout, "All checks passed") {
		t.Errorf("stdout = %q", r.stdout)
	}

	r = run(t, "", "doctor")
	if r.code != cli.ExitConfig {
		t.Errorf("exit = %d, want %d", r.code, cli.ExitConfig)
	}
}
