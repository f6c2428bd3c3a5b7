package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authmw "github.com/trashquiz/trashquiz/internal/auth/middleware"
	"github.com/trashquiz/trashquiz/internal/catalog"
	"github.com/trashquiz/trashquiz/internal/quiz"
)

const apiCatalog = `{
  "categories": [{
    "name": "Plastics",
    "itemGroups": [{
      "name": "Bottles",
      "items": [
        {"name": "Plastic Bottle",
         "allowedConditionValues": {"cleanliness": ["Clean & Rinsed"], "shape": ["Intact"]},
         "rules": [{"if": {"cleanliness": "Clean & Rinsed"}, "bin": "Recycle"}],
         "defaultBin": "Trash"},
        {"name": "Plastic Bag", "skipConditions": true, "defaultBin": "Landfill"}
      ]
    }]
  }]
}`

func apiCat(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Parse([]byte(apiCatalog))
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

func asUser(r *http.Request, sub string) *http.Request {
	ctx := authmw.WithSubject(r.Context(), sub)
	return r.WithContext(ctx)
}

func TestClassifyHandler(t *testing.T) {
	h := ClassifyHandler(apiCat(t))

	body := `{"item_name":"Plastic Bottle","cleanliness":"Clean & Rinsed","shape":"Intact"}`
	req := httptest.NewRequest("POST", "/classify", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	if rec.Code != 200 {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var out struct {
		Bin         string `json:"bin"`
		Explanation string `json:"explanation"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Bin != "recycle" || out.Explanation == "" {
		t.Fatalf("classify: %+v", out)
	}

	req = httptest.NewRequest("POST", "/classify", strings.NewReader(`{"item_name":"Nope"}`))
	rec = httptest.NewRecorder()
	h(rec, req)
	if rec.Code != 404 {
		t.Fatalf("unknown item status=%d", rec.Code)
	}
}

func TestSearchHandler(t *testing.T) {
	h := SearchCatalogHandler(apiCat(t))
	req := httptest.NewRequest("GET", "/catalog/search?q=botle", nil)
	rec := httptest.NewRecorder()
	h(rec, req)
	if rec.Code != 200 {
		t.Fatalf("status=%d", rec.Code)
	}
	var out struct {
		Results []catalog.SearchResult `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Results) == 0 {
		t.Fatal("typo search returned nothing")
	}

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest("GET", "/catalog/search", nil))
	if rec.Code != 400 {
		t.Fatalf("missing q status=%d", rec.Code)
	}
}

func TestQuizFlowOverHTTP(t *testing.T) {
	cat := apiCat(t)
	stores := Stores{User: quiz.NewMemoryStore(), Guest: quiz.NewMemoryStore()}
	m := NewSessionManager(cat.Items(), stores, time.Hour, time.Hour)

	// start
	rec := httptest.NewRecorder()
	StartQuizHandler(m)(rec, asUser(httptest.NewRequest("POST", "/quiz/start", nil), "u1"))
	if rec.Code != 200 {
		t.Fatalf("start status=%d body=%s", rec.Code, rec.Body.String())
	}
	var snap quiz.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.State != quiz.StatePresenting || snap.Question == nil {
		t.Fatalf("start snapshot: %+v", snap)
	}

	// answer correctly
	body := `{"bin":"` + string(snap.Question.CorrectBin) + `"}`
	rec = httptest.NewRecorder()
	AnswerQuizHandler(m)(rec, asUser(httptest.NewRequest("POST", "/quiz/answer", strings.NewReader(body)), "u1"))
	if rec.Code != 200 {
		t.Fatalf("answer status=%d body=%s", rec.Code, rec.Body.String())
	}
	var res quiz.AnswerResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if !res.Correct || res.Points <= 0 {
		t.Fatalf("answer result: %+v", res)
	}

	// repeated answer while locked: benign, returns snapshot not result
	rec = httptest.NewRecorder()
	AnswerQuizHandler(m)(rec, asUser(httptest.NewRequest("POST", "/quiz/answer", strings.NewReader(body)), "u1"))
	if rec.Code != 200 {
		t.Fatalf("locked answer status=%d", rec.Code)
	}
	var locked quiz.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &locked); err != nil {
		t.Fatal(err)
	}
	if locked.State != quiz.StateLocked {
		t.Fatalf("locked snapshot: %+v", locked)
	}
	if locked.SessionScore != res.SessionScore {
		t.Fatal("locked resubmission changed the score")
	}

	// empty catalog start
	empty := NewSessionManager(nil, stores, time.Hour, time.Hour)
	rec = httptest.NewRecorder()
	StartQuizHandler(empty)(rec, asUser(httptest.NewRequest("POST", "/quiz/start", nil), "u1"))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("empty catalog status=%d", rec.Code)
	}
}

func TestStoreRoutingByIdentity(t *testing.T) {
	stores := Stores{User: quiz.NewMemoryStore(), Guest: quiz.NewMemoryStore()}
	if stores.For("guest|abc") != stores.Guest {
		t.Fatal("guest subject not routed to guest store")
	}
	if stores.For("alice") != stores.User {
		t.Fatal("user subject not routed to durable store")
	}
}

func TestHistoryHandlerFilter(t *testing.T) {
	stores := Stores{User: quiz.NewMemoryStore(), Guest: quiz.NewMemoryStore()}
	ctx := context.Background()
	_ = stores.User.AppendHistory(ctx, quiz.HistoryRecord{UserID: "u1", ItemName: "a", Correct: true})
	_ = stores.User.AppendHistory(ctx, quiz.HistoryRecord{UserID: "u1", ItemName: "b", Correct: false})

	h := MyHistoryHandler(stores)
	rec := httptest.NewRecorder()
	h(rec, asUser(httptest.NewRequest("GET", "/me/history?filter=correct", nil), "u1"))
	var out struct {
		History []quiz.HistoryRecord `json:"history"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.History) != 1 || out.History[0].ItemName != "a" {
		t.Fatalf("filtered history: %+v", out.History)
	}

	rec = httptest.NewRecorder()
	h(rec, asUser(httptest.NewRequest("GET", "/me/history?filter=bogus", nil), "u1"))
	if rec.Code != 400 {
		t.Fatalf("bogus filter status=%d", rec.Code)
	}
}
