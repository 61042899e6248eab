package mongodb_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/grcledger/grcledger/pkg/observability/logger"
	"github.com/grcledger/grcledger/pkg/record"
	"github.com/grcledger/grcledger/pkg/store/mongodb"
	"github.com/grcledger/grcledger/pkg/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// entry mirrors the shape of the portfolio records without depending on any
// particular resource schema.
type entry struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"Id"`
	No      float64            `bson:"No" json:"No"`
	Process string             `bson:"Process" json:"Process"`
	Date    time.Time          `bson:"Date" json:"Date"`
}

func entryDescriptor(collection string) record.Descriptor[entry] {
	return record.Descriptor[entry]{
		Collection:   collection,
		Path:         "entries",
		SearchFields: []string{"Process"},
		KeyField:     "No",
		KeyedPatch: func(e *entry) bson.M {
			return bson.M{"Process": e.Process}
		},
		ID:         func(e *entry) primitive.ObjectID { return e.ID },
		SetID:      func(e *entry, id primitive.ObjectID) { e.ID = id },
		Key:        func(e *entry) float64 { return e.No },
		Created:    func(e *entry) time.Time { return e.Date },
		SetCreated: func(e *entry, t time.Time) { e.Date = t },
		Paging:     record.PageSizing{Default: record.DefaultPageSize},
	}
}

func newLiveService(t *testing.T) (*record.Service[entry], *mongodb.Adapter) {
	t.Helper()
	testutil.RequireIntegration(t)

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("set MONGO_TEST_URI to run live MongoDB tests")
	}

	log, err := logger.NewZapLogger(logger.Config{Level: logger.ErrorLevel, Format: logger.JSONFormat})
	if err != nil {
		t.Fatalf("NewZapLogger: %v", err)
	}
	adapter, err := mongodb.NewAdapter(mongodb.Config{
		URL:              uri,
		Database:         "grcledger_test",
		ConnectTimeout:   5 * time.Second,
		OperationTimeout: 5 * time.Second,
	}, log)
	if err != nil {
		t.Fatalf("NewAdapter: %v", err)
	}
	t.Cleanup(func() { _ = adapter.Close() })

	collection := fmt.Sprintf("entries_%d", time.Now().UnixNano())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = adapter.Collection(collection).Drop(ctx)
	})

	store, err := record.NewStore(adapter, entryDescriptor(collection), log)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return record.NewService(store, log), adapter
}

func TestLiveRoundTrip(t *testing.T) {
	svc, _ := newLiveService(t)
	ctx := context.Background()

	created := entry{No: 1.1, Process: "Treasury"}
	if err := svc.Create(ctx, &created); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID.IsZero() {
		t.Fatal("Create did not assign an identity")
	}
	if created.Date.IsZero() {
		t.Fatal("Create did not stamp the date")
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Process != "Treasury" {
		t.Fatalf("Get Process = %q, want Treasury", got.Process)
	}

	got.Process = "Treasury Ops"
	if err := svc.Update(ctx, created.ID, got); err != nil {
		t.Fatalf("Update: %v", err)
	}

	page, err := svc.List(ctx, record.ListParams{Page: 1, Search: "ops"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.TotalItems != 1 || len(page.Items) != 1 {
		t.Fatalf("List returned %d items (total %d), want 1", len(page.Items), page.TotalItems)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); err != record.ErrNotFound {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}
}

func TestLiveKeyedUpdate(t *testing.T) {
	svc, _ := newLiveService(t)
	ctx := context.Background()

	if _, err := svc.CreateMany(ctx, []entry{
		{No: 1, Process: "Treasury"},
		{No: 2, Process: "Lending"},
	}); err != nil {
		t.Fatalf("CreateMany: %v", err)
	}

	patch := entry{No: 2, Process: "Retail Lending"}
	outcome, err := svc.UpdateByNo(ctx, 2, &patch)
	if err != nil {
		t.Fatalf("UpdateByNo: %v", err)
	}
	if outcome != record.OutcomeModified {
		t.Fatalf("UpdateByNo outcome = %v, want OutcomeModified", outcome)
	}

	ghost := entry{No: 9, Process: "Ghost"}
	outcome, err = svc.UpdateByNo(ctx, 9, &ghost)
	if err != nil {
		t.Fatalf("UpdateByNo missing key: %v", err)
	}
	if outcome != record.OutcomeNotFound {
		t.Fatalf("UpdateByNo outcome = %v, want OutcomeNotFound", outcome)
	}
}

func TestLiveHealthCheck(t *testing.T) {
	_, adapter := newLiveService(t)
	if err := adapter.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
}
