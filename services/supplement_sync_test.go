package services

import (
	"context"
	"testing"

	"nutrihub/config"
	"nutrihub/models"
	"nutrihub/providers/healthfood"
)

// fakeSupplementSource liefert vorbereitete Seiten; Seiten jenseits der
// Liste sind leer und erfolgreich.
type fakeSupplementSource struct {
	pages     []*healthfood.Page
	pageCalls int
}

func (f *fakeSupplementSource) FetchPage(pageNo, numOfRows int) (*healthfood.Page, error) {
	f.pageCalls++
	if pageNo <= len(f.pages) {
		return f.pages[pageNo-1], nil
	}
	return &healthfood.Page{ResultCode: healthfood.ResultCodeOK}, nil
}

func supplementTestConfig() *config.Config {
	return &config.Config{SupplementPageSize: 100}
}

func okPage(items ...healthfood.Record) *healthfood.Page {
	return &healthfood.Page{ResultCode: healthfood.ResultCodeOK, Items: items}
}

func TestSupplementSyncCreatesProductsAndLinks(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	seedIngredient(t, db, "Vitamin C")
	seedIngredient(t, db, "Zinc")

	source := &fakeSupplementSource{pages: []*healthfood.Page{
		okPage(healthfood.Record{
			ReportNumber: "2004-100",
			ProductName:  "Immuno Plus",
			Manufacturer: "HealthCorp",
			Standards:    "1. Vitamin C (as ascorbic acid) : 500 mg\n2. Zinc: 10mg",
		}),
	}}
	sync := NewSupplementSyncService(supplementTestConfig(), db, source, testLogger())

	result, err := sync.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Created != 1 || result.Updated != 0 {
		t.Errorf("expected 1 created, got %+v", result)
	}
	if result.LinksCreated != 2 {
		t.Errorf("expected 2 links, got %+v", result)
	}

	var supplement models.Supplement
	err = db.Preload("Manufacturer").Where("report_number = ?", "2004-100").First(&supplement).Error
	if err != nil {
		t.Fatalf("reload supplement: %v", err)
	}
	if supplement.Manufacturer == nil || supplement.Manufacturer.Name != "HealthCorp" {
		t.Error("expected manufacturer resolved and attached")
	}

	var links []models.SupplementIngredient
	if err := db.Where("supplement_id = ?", supplement.ID).Find(&links).Error; err != nil {
		t.Fatalf("load links: %v", err)
	}
	contents := map[float64]bool{}
	for _, l := range links {
		contents[l.Content] = true
	}
	if !contents[500] || !contents[10] {
		t.Errorf("expected contents 500 and 10, got %v", contents)
	}
}

func TestSupplementSyncSecondRunUpdatesWithoutNewLinks(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	seedIngredient(t, db, "Zinc")

	source := &fakeSupplementSource{pages: []*healthfood.Page{
		okPage(healthfood.Record{
			ReportNumber: "2004-200",
			ProductName:  "Zinc Daily",
			Manufacturer: "HealthCorp",
			Standards:    "1. Zinc : 10 mg",
		}),
	}}
	sync := NewSupplementSyncService(supplementTestConfig(), db, source, testLogger())

	if _, err := sync.Run(context.Background(), 0); err != nil {
		t.Fatalf("first run: %v", err)
	}

	second, err := sync.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Created != 0 || second.Updated != 1 {
		t.Errorf("second run: expected 0 created / 1 updated, got %+v", second)
	}
	if second.LinksCreated != 0 {
		t.Errorf("second run: expected no new links, got %+v", second)
	}

	var manufacturers int64
	if err := db.Model(&models.Manufacturer{}).Count(&manufacturers).Error; err != nil {
		t.Fatalf("count manufacturers: %v", err)
	}
	if manufacturers != 1 {
		t.Errorf("expected manufacturer reused, got %d rows", manufacturers)
	}
}

func TestSupplementSyncHaltsOnNonSuccessHeader(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	source := &fakeSupplementSource{pages: []*healthfood.Page{
		okPage(healthfood.Record{ReportNumber: "2004-1", ProductName: "A", Manufacturer: "M"}),
		{ResultCode: "99", ResultMsg: "SERVICE ERROR"},
		okPage(healthfood.Record{ReportNumber: "2004-2", ProductName: "B", Manufacturer: "M"}),
	}}
	sync := NewSupplementSyncService(supplementTestConfig(), db, source, testLogger())

	result, err := sync.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// Seite 2 meldet "99": Schleife endet sofort, Zählung der ersten
	// Seite bleibt erhalten, Seite 3 wird nie angefragt.
	if source.pageCalls != 2 {
		t.Errorf("expected exactly 2 page fetches, got %d", source.pageCalls)
	}
	if result.Created != 1 || result.Pages != 1 {
		t.Errorf("expected prior page counts preserved, got %+v", result)
	}
}

func TestSupplementSyncStopsAtEmptyPage(t *testing.T) {
	t.Parallel()

	source := &fakeSupplementSource{pages: []*healthfood.Page{
		okPage(healthfood.Record{ReportNumber: "2004-1", ProductName: "A", Manufacturer: "M"}),
	}}
	sync := NewSupplementSyncService(supplementTestConfig(), openTestDB(t), source, testLogger())

	result, err := sync.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if source.pageCalls != 2 {
		t.Errorf("expected fetch of page 1 and the empty page 2, got %d calls", source.pageCalls)
	}
	if result.Pages != 1 {
		t.Errorf("expected 1 processed page, got %+v", result)
	}
}

func TestSupplementSyncHonorsPageCap(t *testing.T) {
	t.Parallel()

	source := &fakeSupplementSource{pages: []*healthfood.Page{
		okPage(healthfood.Record{ReportNumber: "2004-1", ProductName: "A", Manufacturer: "M"}),
		okPage(healthfood.Record{ReportNumber: "2004-2", ProductName: "B", Manufacturer: "M"}),
		okPage(healthfood.Record{ReportNumber: "2004-3", ProductName: "C", Manufacturer: "M"}),
	}}
	sync := NewSupplementSyncService(supplementTestConfig(), openTestDB(t), source, testLogger())

	result, err := sync.Run(context.Background(), 2)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if source.pageCalls != 2 {
		t.Errorf("expected the cap to stop after 2 fetches, got %d", source.pageCalls)
	}
	if result.Created != 2 || result.Pages != 2 {
		t.Errorf("expected 2 products from 2 pages, got %+v", result)
	}
}

// errAfterFirstPageSource liefert eine gute Seite und scheitert danach.
type errAfterFirstPageSource struct {
	fakeSupplementSource
}

func (e *errAfterFirstPageSource) FetchPage(pageNo, numOfRows int) (*healthfood.Page, error) {
	if pageNo > 1 {
		e.pageCalls++
		return nil, context.DeadlineExceeded
	}
	return e.fakeSupplementSource.FetchPage(pageNo, numOfRows)
}

func TestSupplementSyncHaltsOnTransportFailure(t *testing.T) {
	t.Parallel()

	source := &errAfterFirstPageSource{fakeSupplementSource{pages: []*healthfood.Page{
		okPage(healthfood.Record{ReportNumber: "2004-1", ProductName: "A", Manufacturer: "M"}),
	}}}
	sync := NewSupplementSyncService(supplementTestConfig(), openTestDB(t), source, testLogger())

	result, err := sync.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("transport failure must not surface as run error, got %v", err)
	}
	if result.Created != 1 || result.Pages != 1 {
		t.Errorf("expected first page preserved, got %+v", result)
	}
}

func TestSupplementSyncSkipsRecordsWithoutReportNumber(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	source := &fakeSupplementSource{pages: []*healthfood.Page{
		okPage(
			healthfood.Record{ReportNumber: "", ProductName: "Unreported", Manufacturer: "M"},
			healthfood.Record{ReportNumber: "2004-5", ProductName: "Reported", Manufacturer: "M"},
		),
	}}
	sync := NewSupplementSyncService(supplementTestConfig(), db, source, testLogger())

	result, err := sync.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Created != 1 || result.Updated != 0 {
		t.Errorf("expected only the keyed record counted, got %+v", result)
	}

	var count int64
	if err := db.Model(&models.Supplement{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected one supplement row, got %d", count)
	}
}
