package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo implements Documents on top of the MongoDB driver.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongo connects to the document store and pings it once.
func NewMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, classify("connect", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, classify("ping", err)
	}
	return &Mongo{client: client, db: client.Database(database)}, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	if m == nil || m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}

// Healthy verifies store connectivity.
func (m *Mongo) Healthy(ctx context.Context) bool {
	if m == nil || m.client == nil {
		return false
	}
	return m.client.Ping(ctx, nil) == nil
}

func (m *Mongo) Insert(ctx context.Context, collection string, doc any) (string, error) {
	res, err := m.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", classify("insert "+collection, err)
	}
	switch id := res.InsertedID.(type) {
	case primitive.ObjectID:
		return id.Hex(), nil
	case string:
		return id, nil
	default:
		return "", &Error{Code: CodeInternal, Op: "insert " + collection, Err: errors.New("unexpected id type")}
	}
}

func (m *Mongo) FindAll(ctx context.Context, collection, orderBy string, out any) error {
	opts := options.Find().SetSort(bson.D{{Key: orderBy, Value: -1}})
	cur, err := m.db.Collection(collection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return classify("find "+collection, err)
	}
	defer cur.Close(ctx)
	if err := cur.All(ctx, out); err != nil {
		return classify("decode "+collection, err)
	}
	return nil
}

func (m *Mongo) FindByID(ctx context.Context, collection, id string, out any) error {
	err := m.db.Collection(collection).FindOne(ctx, idFilter(id)).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &Error{Code: CodeNotFound, Op: "find " + collection}
	}
	if err != nil {
		return classify("find "+collection, err)
	}
	return nil
}

func (m *Mongo) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	res, err := m.db.Collection(collection).UpdateOne(ctx, idFilter(id), bson.M{"$set": fields})
	if err != nil {
		return classify("update "+collection, err)
	}
	if res.MatchedCount == 0 {
		return &Error{Code: CodeNotFound, Op: "update " + collection}
	}
	return nil
}

func (m *Mongo) Upsert(ctx context.Context, collection, id string, fields map[string]any) error {
	opts := options.Update().SetUpsert(true)
	_, err := m.db.Collection(collection).UpdateOne(ctx, idFilter(id), bson.M{"$set": fields}, opts)
	if err != nil {
		return classify("upsert "+collection, err)
	}
	return nil
}

func (m *Mongo) Delete(ctx context.Context, collection, id string) error {
	res, err := m.db.Collection(collection).DeleteOne(ctx, idFilter(id))
	if err != nil {
		return classify("delete "+collection, err)
	}
	if res.DeletedCount == 0 {
		return &Error{Code: CodeNotFound, Op: "delete " + collection}
	}
	return nil
}

// idFilter accepts both ObjectID hex ids and plain string ids (the settings
// singleton uses a fixed string key).
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": oid}
	}
	return bson.M{"_id": id}
}

// classify maps driver failures onto the stable error codes the admin UI
// knows how to phrase.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Code: CodeDeadlineExceeded, Op: op, Err: err}
	case mongo.IsTimeout(err):
		return &Error{Code: CodeDeadlineExceeded, Op: op, Err: err}
	case mongo.IsNetworkError(err):
		return &Error{Code: CodeUnavailable, Op: op, Err: err}
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case 13: // Unauthorized
			return &Error{Code: CodePermissionDenied, Op: op, Err: err}
		case 16500: // throttled (hosted tiers)
			return &Error{Code: CodeResourceExhausted, Op: op, Err: err}
		}
	}
	return &Error{Code: CodeInternal, Op: op, Err: err}
}
