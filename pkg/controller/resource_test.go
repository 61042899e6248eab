package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/grcledger/grcledger/pkg/controller"
	"github.com/grcledger/grcledger/pkg/observability/logger"
	"github.com/grcledger/grcledger/pkg/record"
	"github.com/grcledger/grcledger/pkg/server/router/gin"
	"github.com/grcledger/grcledger/pkg/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memo is the fixture resource for controller tests. It mirrors the shape
// shared by the real resources: surrogate identity, float business key,
// creation date, free-text fields.
type memo struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	No      float64            `bson:"No" json:"No"`
	Process string             `bson:"Process" json:"Process"`
	Date    time.Time          `bson:"Date" json:"Date"`
	Remarks string             `bson:"Remarks" json:"Remarks"`
}

func memoDescriptor() record.Descriptor[memo] {
	return record.Descriptor[memo]{
		Collection:   "Memos",
		Path:         "memos",
		SearchFields: []string{"Process", "Remarks"},
		KeyField:     "No",
		KeyedPatch: func(m *memo) bson.M {
			return bson.M{
				"Process": m.Process,
				"Remarks": m.Remarks,
			}
		},
		ID:         func(m *memo) primitive.ObjectID { return m.ID },
		SetID:      func(m *memo, id primitive.ObjectID) { m.ID = id },
		Key:        func(m *memo) float64 { return m.No },
		Created:    func(m *memo) time.Time { return m.Date },
		SetCreated: func(m *memo, t time.Time) { m.Date = t },
	}
}

// newTestAPI wires DocStore -> store -> service -> resource controller onto
// a real gin router, returning the router and the backing store.
func newTestAPI(t *testing.T) (http.Handler, *testutil.DocStore) {
	t.Helper()

	log, err := logger.NewZapLogger(logger.Config{Level: logger.ErrorLevel, Format: logger.JSONFormat})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	exec := testutil.NewDocStore()

	store, err := record.NewStore(exec, memoDescriptor(), log)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	svc := record.NewService(store, log)

	r := gin.NewRouter()
	api := r.Group("/api")
	controller.NewResource(svc, log).Register(api)
	return r, exec
}

func doJSON(t *testing.T, h http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding %q: %v", rec.Body.String(), err)
	}
}

func TestResourceCreateAndGet(t *testing.T) {
	h, _ := newTestAPI(t)

	rec := doJSON(t, h, http.MethodPost, "/api/memos", memo{No: 5.1, Process: "Treasury"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created memo
	decodeInto(t, rec, &created)
	if created.ID.IsZero() {
		t.Fatal("created record has no identity")
	}
	if created.Date.IsZero() {
		t.Error("created record has no creation date")
	}
	wantLoc := fmt.Sprintf("/api/memos/%s", created.ID.Hex())
	if loc := rec.Header().Get("Location"); loc != wantLoc {
		t.Errorf("Location = %q, want %q", loc, wantLoc)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/memos/"+created.ID.Hex(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d", rec.Code)
	}
	var got memo
	decodeInto(t, rec, &got)
	if got.Process != "Treasury" {
		t.Errorf("Process = %q", got.Process)
	}
}

func TestResourceGetErrors(t *testing.T) {
	h, _ := newTestAPI(t)

	t.Run("unknown id", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/memos/"+primitive.NewObjectID().Hex(), nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("malformed id reads as not found", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/memos/not-a-hex-id", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
		var body controller.ErrorResponse
		decodeInto(t, rec, &body)
		if body.Error != "not_found" {
			t.Errorf("error = %q", body.Error)
		}
	})
}

func TestResourceList(t *testing.T) {
	h, _ := newTestAPI(t)

	batch := make([]memo, 12)
	for i := range batch {
		batch[i] = memo{No: float64(i + 1), Process: fmt.Sprintf("Process %d", i+1)}
	}
	if rec := doJSON(t, h, http.MethodPost, "/api/memos/bulk", batch); rec.Code != http.StatusOK {
		t.Fatalf("bulk create status = %d", rec.Code)
	}

	t.Run("envelope", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/memos?page=2", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var result record.PagedResult[memo]
		decodeInto(t, rec, &result)
		if result.Page != 2 || result.PageSize != 10 || result.TotalItems != 12 || result.TotalPages != 2 {
			t.Errorf("envelope = %+v", result)
		}
		if len(result.Items) != 2 {
			t.Errorf("page 2 has %d items, want 2", len(result.Items))
		}
	})

	t.Run("empty page serializes as array", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/memos?page=99", nil)
		var raw map[string]json.RawMessage
		decodeInto(t, rec, &raw)
		if string(raw["Items"]) == "null" {
			t.Error("Items serialized as null, want []")
		}
	})

	t.Run("search", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/memos?search=Process+3", nil)
		var result record.PagedResult[memo]
		decodeInto(t, rec, &result)
		if result.TotalItems != 1 {
			t.Errorf("TotalItems = %d, want 1", result.TotalItems)
		}
	})

	t.Run("sortByNoAsc", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/memos?sortByNoAsc=true", nil)
		var result record.PagedResult[memo]
		decodeInto(t, rec, &result)
		if len(result.Items) == 0 || result.Items[0].No != 1 {
			t.Errorf("first item No = %v, want 1", result.Items[0].No)
		}
	})

	t.Run("bad page", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/memos?page=abc", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("bad sort flag", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/memos?sortByNoAsc=sideways", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestResourceUpdate(t *testing.T) {
	h, _ := newTestAPI(t)

	rec := doJSON(t, h, http.MethodPost, "/api/memos", memo{No: 1, Process: "A"})
	var created memo
	decodeInto(t, rec, &created)

	created.Process = "B"
	rec = doJSON(t, h, http.MethodPut, "/api/memos/"+created.ID.Hex(), created)
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPut, "/api/memos/"+primitive.NewObjectID().Hex(), created)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", rec.Code)
	}
}

func TestResourceUpdateByNo(t *testing.T) {
	h, _ := newTestAPI(t)

	rec := doJSON(t, h, http.MethodPost, "/api/memos", memo{No: 7, Process: "A", Remarks: "r"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	t.Run("modified", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPut, "/api/memos/by-no/7", memo{Process: "B", Remarks: "r"})
		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})

	t.Run("unchanged is still 204", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPut, "/api/memos/by-no/7", memo{Process: "B", Remarks: "r"})
		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPut, "/api/memos/by-no/404", memo{Process: "X"})
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("non-numeric key", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPut, "/api/memos/by-no/seven", memo{Process: "X"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestResourceBulkRoutes(t *testing.T) {
	h, _ := newTestAPI(t)

	batch := []memo{{No: 1, Process: "A"}, {No: 2, Process: "B"}}
	rec := doJSON(t, h, http.MethodPost, "/api/memos/bulk", batch)
	if rec.Code != http.StatusOK {
		t.Fatalf("bulk create status = %d", rec.Code)
	}
	var created []memo
	decodeInto(t, rec, &created)
	if len(created) != 2 || created[0].ID.IsZero() {
		t.Fatalf("bulk create returned %+v", created)
	}

	t.Run("update many", func(t *testing.T) {
		created[0].Process = "A2"
		rec := doJSON(t, h, http.MethodPut, "/api/memos/bulk", created)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var body map[string]int64
		decodeInto(t, rec, &body)
		if body["updatedCount"] != 1 {
			t.Errorf("updatedCount = %d, want 1", body["updatedCount"])
		}
	})

	t.Run("bulk update by no", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPut, "/api/memos/bulk-by-no", []memo{{No: 2, Process: "B2"}})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var body map[string]int64
		decodeInto(t, rec, &body)
		if body["updatedCount"] != 1 {
			t.Errorf("updatedCount = %d, want 1", body["updatedCount"])
		}
	})

	t.Run("delete many skips malformed ids", func(t *testing.T) {
		ids := []string{created[0].ID.Hex(), "", "garbage", created[1].ID.Hex()}
		rec := doJSON(t, h, http.MethodDelete, "/api/memos/bulk", ids)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var body map[string]int64
		decodeInto(t, rec, &body)
		if body["deletedCount"] != 2 {
			t.Errorf("deletedCount = %d, want 2", body["deletedCount"])
		}
	})
}

func TestResourceDelete(t *testing.T) {
	h, _ := newTestAPI(t)

	rec := doJSON(t, h, http.MethodPost, "/api/memos", memo{No: 1})
	var created memo
	decodeInto(t, rec, &created)

	rec = doJSON(t, h, http.MethodDelete, "/api/memos/"+created.ID.Hex(), nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	rec = doJSON(t, h, http.MethodDelete, "/api/memos/"+created.ID.Hex(), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestResourceStoreFailureMapsTo500(t *testing.T) {
	h, exec := newTestAPI(t)
	exec.FailOn["Find"] = record.ErrStoreUnavailable

	rec := doJSON(t, h, http.MethodGet, "/api/memos", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body controller.ErrorResponse
	decodeInto(t, rec, &body)
	if body.Code != "store.unavailable" {
		t.Errorf("code = %q", body.Code)
	}
}

func TestResourceRejectsBadBody(t *testing.T) {
	h, _ := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/memos", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
