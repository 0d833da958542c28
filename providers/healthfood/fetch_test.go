package healthfood

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"nutrihub/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		HealthFoodBaseURL: baseURL,
		HealthFoodAPIKey:  "testkey",
	}
}

func TestFetchPageUnwrapsItems(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("pageNo") != "2" || q.Get("numOfRows") != "100" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		fmt.Fprint(w, `{
			"header":{"resultCode":"00","resultMsg":"NORMAL SERVICE."},
			"body":{
				"items":[
					{"item":{"STTEMNT_NO":"2004-100","PRDUCT":"Immuno Plus","ENTRPS":"HealthCorp","BASE_STANDARD":"1. Zinc : 10 mg"}},
					{"item":{"STTEMNT_NO":"2004-101","PRDUCT":"Omega Daily","ENTRPS":"SeaLabs"}}
				],
				"pageNo":2,"numOfRows":100,"totalCount":250
			}
		}`)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), zap.NewNop())
	page, err := client.FetchPage(2, 100)
	if err != nil {
		t.Fatalf("fetch page: %v", err)
	}
	if page.ResultCode != ResultCodeOK {
		t.Errorf("expected result code 00, got %q", page.ResultCode)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if page.Items[0].ReportNumber != "2004-100" || page.Items[0].Manufacturer != "HealthCorp" {
		t.Errorf("unexpected first item: %+v", page.Items[0])
	}
	if page.TotalCount != 250 {
		t.Errorf("expected total count 250, got %d", page.TotalCount)
	}
}

func TestFetchPagePassesThroughNonSuccessHeader(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"header":{"resultCode":"99","resultMsg":"SERVICE ERROR"},"body":{"items":[]}}`)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), zap.NewNop())
	page, err := client.FetchPage(1, 100)
	if err != nil {
		t.Fatalf("fetch page: %v", err)
	}
	// Kein Fehler: der Aufrufer entscheidet anhand des Codes.
	if page.ResultCode != "99" {
		t.Errorf("expected result code 99, got %q", page.ResultCode)
	}
	if len(page.Items) != 0 {
		t.Errorf("expected no items, got %d", len(page.Items))
	}
}

func TestFetchPageRejectsNon200(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), zap.NewNop())
	if _, err := client.FetchPage(1, 100); err == nil {
		t.Error("expected error on non-200 status")
	}
}

func TestFetchPageRejectsNonJSONBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OpenAPI_ServiceResponse: SERVICE KEY IS NOT REGISTERED")
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), zap.NewNop())
	if _, err := client.FetchPage(1, 100); err == nil {
		t.Error("expected error on non-JSON body")
	}
}
