package grc

import (
	"errors"
	"fmt"
	"time"

	"github.com/grcledger/grcledger/pkg/controller"
	"github.com/grcledger/grcledger/pkg/observability/logger"
	"github.com/grcledger/grcledger/pkg/record"
	"github.com/grcledger/grcledger/pkg/server/router"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TransactionsCollection is the physical collection behind /api/transactions.
const TransactionsCollection = "Transactions"

// Transaction is the standalone finance-ledger record. It carries no business
// key, so it lives outside the shared record protocol: plain id-addressed
// CRUD, no paging or search.
type Transaction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Amount    float64            `bson:"amount" json:"amount"`
	Type      string             `bson:"type" json:"type"` // "income" or "expense"
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// TransactionHandler serves the transactions routes directly against the
// executor; the descriptor machinery has nothing to offer a keyless resource.
type TransactionHandler struct {
	exec record.Executor
	log  logger.Logger

	now func() time.Time
}

// NewTransactionHandler creates the transactions controller.
func NewTransactionHandler(exec record.Executor, log logger.Logger) *TransactionHandler {
	return &TransactionHandler{exec: exec, log: log, now: time.Now}
}

// Register mounts the transactions routes on the given router group.
func (h *TransactionHandler) Register(api router.Router) {
	g := api.Group("/transactions")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List handles GET /api/transactions: the full collection, unpaged.
func (h *TransactionHandler) List(c router.Context) error {
	var items []Transaction
	err := h.exec.Find(c.Request().Context(), TransactionsCollection, bson.M{}, nil, 0, 0, &items)
	if err != nil {
		return controller.Error(c, &record.StoreError{Op: "list transactions", Err: err})
	}
	if items == nil {
		items = []Transaction{}
	}
	return controller.OK(c, items)
}

// Get handles GET /api/transactions/{id}.
func (h *TransactionHandler) Get(c router.Context) error {
	id, err := transactionID(c)
	if err != nil {
		return controller.Error(c, err)
	}
	item, err := h.getByID(c, id)
	if err != nil {
		return controller.Error(c, err)
	}
	return controller.OK(c, item)
}

// Create handles POST /api/transactions. The creation timestamp is stamped
// server-side when the caller leaves it unset.
func (h *TransactionHandler) Create(c router.Context) error {
	var item Transaction
	if err := c.Bind(&item); err != nil {
		return controller.Error(c, controller.NewValidationError("invalid request body", nil))
	}
	item.ID = primitive.NilObjectID
	if item.CreatedAt.IsZero() {
		item.CreatedAt = h.now().UTC()
	}
	res, err := h.exec.InsertOne(c.Request().Context(), TransactionsCollection, &item)
	if err != nil {
		return controller.Error(c, &record.StoreError{Op: "insert transaction", Err: err})
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid
	}
	return controller.Created(c, fmt.Sprintf("/api/transactions/%s", item.ID.Hex()), item)
}

// Update handles PUT /api/transactions/{id}: a full replace.
func (h *TransactionHandler) Update(c router.Context) error {
	id, err := transactionID(c)
	if err != nil {
		return controller.Error(c, err)
	}
	var item Transaction
	if err := c.Bind(&item); err != nil {
		return controller.Error(c, controller.NewValidationError("invalid request body", nil))
	}
	if _, err := h.getByID(c, id); err != nil {
		return controller.Error(c, err)
	}
	item.ID = id
	res, err := h.exec.ReplaceOne(c.Request().Context(), TransactionsCollection, bson.M{"_id": id}, &item)
	if err != nil {
		return controller.Error(c, &record.StoreError{Op: "replace transaction", Err: err})
	}
	if res.ModifiedCount == 0 {
		return controller.Error(c, record.ErrUpdateFailed)
	}
	return controller.NoContent(c)
}

// Delete handles DELETE /api/transactions/{id}.
func (h *TransactionHandler) Delete(c router.Context) error {
	id, err := transactionID(c)
	if err != nil {
		return controller.Error(c, err)
	}
	if _, err := h.getByID(c, id); err != nil {
		return controller.Error(c, err)
	}
	res, err := h.exec.DeleteOne(c.Request().Context(), TransactionsCollection, bson.M{"_id": id})
	if err != nil {
		return controller.Error(c, &record.StoreError{Op: "delete transaction", Err: err})
	}
	if res.DeletedCount == 0 {
		return controller.Error(c, controller.NewInternalError("transaction was not deleted", nil))
	}
	return controller.NoContent(c)
}

func (h *TransactionHandler) getByID(c router.Context, id primitive.ObjectID) (*Transaction, error) {
	var item Transaction
	err := h.exec.FindOne(c.Request().Context(), TransactionsCollection, bson.M{"_id": id}, &item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, record.ErrNotFound
	}
	if err != nil {
		return nil, &record.StoreError{Op: "get transaction", Err: err}
	}
	return &item, nil
}

// transactionID parses the :id path segment with the same convention as the
// portfolio resources: a malformed id can never address a record, so it
// reports not-found.
func transactionID(c router.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, controller.NewNotFoundError("transaction not found")
	}
	return id, nil
}
