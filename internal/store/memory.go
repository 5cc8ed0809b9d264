package store

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process Documents backend for dev mode and tests. Documents
// round-trip through bson so tagged structs behave the same as against Mongo.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]bson.M
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string]bson.M)}
}

// coll materializes a collection; callers must hold the write lock.
func (m *Memory) coll(name string) map[string]bson.M {
	c, ok := m.collections[name]
	if !ok {
		c = make(map[string]bson.M)
		m.collections[name] = c
	}
	return c
}

func (m *Memory) Insert(_ context.Context, collection string, doc any) (string, error) {
	d, err := toDoc(doc)
	if err != nil {
		return "", &Error{Code: CodeInternal, Op: "insert " + collection, Err: err}
	}
	id, _ := d["_id"].(string)
	if id == "" {
		id = uuid.NewString()
	}
	d["_id"] = id

	m.mu.Lock()
	defer m.mu.Unlock()
	m.coll(collection)[id] = d
	return id, nil
}

func (m *Memory) FindAll(_ context.Context, collection, orderBy string, out any) error {
	// read without coll(): a missing collection is an empty result, and
	// materializing it here would be a map write under the read lock
	m.mu.RLock()
	c := m.collections[collection]
	docs := make([]bson.M, 0, len(c))
	for _, d := range c {
		docs = append(docs, d)
	}
	m.mu.RUnlock()

	sort.SliceStable(docs, func(i, j int) bool {
		return sortKey(docs[i][orderBy]) > sortKey(docs[j][orderBy])
	})
	return decodeSlice(docs, out)
}

func (m *Memory) FindByID(_ context.Context, collection, id string, out any) error {
	m.mu.RLock()
	d, ok := m.collections[collection][id]
	m.mu.RUnlock()
	if !ok {
		return &Error{Code: CodeNotFound, Op: "find " + collection}
	}
	return decodeDoc(d, out)
}

func (m *Memory) Update(_ context.Context, collection, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.coll(collection)[id]
	if !ok {
		return &Error{Code: CodeNotFound, Op: "update " + collection}
	}
	merge(d, fields)
	return nil
}

func (m *Memory) Upsert(_ context.Context, collection, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.coll(collection)
	d, ok := c[id]
	if !ok {
		d = bson.M{"_id": id}
		c[id] = d
	}
	merge(d, fields)
	return nil
}

func (m *Memory) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.coll(collection)
	if _, ok := c[id]; !ok {
		return &Error{Code: CodeNotFound, Op: "delete " + collection}
	}
	delete(c, id)
	return nil
}

func merge(dst bson.M, fields map[string]any) {
	for k, v := range fields {
		if t, ok := v.(time.Time); ok {
			dst[k] = primitive.NewDateTimeFromTime(t)
			continue
		}
		dst[k] = v
	}
}

func toDoc(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var d bson.M
	if err := bson.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	// bson omits empty _id tags; normalize the zero ObjectID away too.
	if oid, ok := d["_id"].(primitive.ObjectID); ok {
		if oid.IsZero() {
			delete(d, "_id")
		} else {
			d["_id"] = oid.Hex()
		}
	}
	return d, nil
}

func decodeDoc(d bson.M, out any) error {
	raw, err := bson.Marshal(d)
	if err != nil {
		return &Error{Code: CodeInternal, Op: "decode", Err: err}
	}
	if err := bson.Unmarshal(raw, out); err != nil {
		return &Error{Code: CodeInternal, Op: "decode", Err: err}
	}
	return nil
}

func decodeSlice(docs []bson.M, out any) error {
	outv := reflect.ValueOf(out)
	if outv.Kind() != reflect.Ptr || outv.Elem().Kind() != reflect.Slice {
		return &Error{Code: CodeInternal, Op: "decode", Err: errNotSlicePtr}
	}
	slice := outv.Elem()
	elemType := slice.Type().Elem()
	for _, d := range docs {
		ev := reflect.New(elemType)
		if err := decodeDoc(d, ev.Interface()); err != nil {
			return err
		}
		slice = reflect.Append(slice, ev.Elem())
	}
	outv.Elem().Set(slice)
	return nil
}

var errNotSlicePtr = errors.New("out must be a pointer to a slice")

// sortKey flattens the handful of value kinds a timestamp field can decode to.
func sortKey(v any) int64 {
	switch t := v.(type) {
	case primitive.DateTime:
		return int64(t)
	case time.Time:
		return t.UnixMilli()
	case int64:
		return t
	case int32:
		return int64(t)
	case float64:
		return int64(t)
	default:
		return 0
	}
}
