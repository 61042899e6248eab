package record_test

import (
	"testing"
	"time"

	"github.com/grcledger/grcledger/pkg/observability/logger"
	"github.com/grcledger/grcledger/pkg/record"
	"github.com/grcledger/grcledger/pkg/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// note is a minimal resource exercising every descriptor hook.
type note struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	No      float64            `bson:"No"`
	Process string             `bson:"Process"`
	Date    time.Time          `bson:"Date"`
	Remarks string             `bson:"Remarks"`
}

func noteDescriptor() record.Descriptor[note] {
	return record.Descriptor[note]{
		Collection:   "Notes",
		Path:         "notes",
		KeyField:     "No",
		SearchFields: []string{"Process", "Remarks"},
		KeyedPatch: func(n *note) bson.M {
			return bson.M{
				"Process": n.Process,
				"Remarks": n.Remarks,
			}
		},
		ID:         func(n *note) primitive.ObjectID { return n.ID },
		SetID:      func(n *note, id primitive.ObjectID) { n.ID = id },
		Key:        func(n *note) float64 { return n.No },
		Created:    func(n *note) time.Time { return n.Date },
		SetCreated: func(n *note, t time.Time) { n.Date = t },
	}
}

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.NewZapLogger(logger.Config{Level: logger.ErrorLevel, Format: logger.JSONFormat})
	if err != nil {
		t.Fatalf("creating logger: %v", err)
	}
	return log
}

func newExecAndLogger(t *testing.T) (*testutil.DocStore, logger.Logger) {
	t.Helper()
	return testutil.NewDocStore(), testLogger(t)
}

func newTestStore(t *testing.T) (*record.Store[note], *testutil.DocStore) {
	t.Helper()
	exec := testutil.NewDocStore()
	store, err := record.NewStore(exec, noteDescriptor(), testLogger(t))
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	return store, exec
}

func newTestService(t *testing.T) (*record.Service[note], *testutil.DocStore) {
	t.Helper()
	store, exec := newTestStore(t)
	return record.NewService(store, testLogger(t)), exec
}
