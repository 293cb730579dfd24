package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-faster/errors"

	"github.com/mytheresa/storefront/models"
)

// OrdersKey is the key the order list is stored under.
const OrdersKey = "orders"

// FileStore treats a JSON object file as a local key-value store and
// keeps the order list under OrdersKey. Other keys are left untouched.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load(ctx context.Context) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	kv, err := f.read()
	if err != nil {
		return nil, err
	}
	return decodeOrders(kv)
}

// Append reads the list, prepends order and rewrites the whole file.
func (f *FileStore) Append(ctx context.Context, order models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	kv, err := f.read()
	if err != nil {
		return err
	}
	orders, err := decodeOrders(kv)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(append([]models.Order{order}, orders...))
	if err != nil {
		return errors.Wrap(err, "encode orders")
	}
	kv[OrdersKey] = raw
	return f.write(kv)
}

func decodeOrders(kv map[string]json.RawMessage) ([]models.Order, error) {
	raw, ok := kv[OrdersKey]
	if !ok {
		return []models.Order{}, nil
	}
	var orders []models.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, errors.Wrap(err, "decode orders")
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (f *FileStore) read() (map[string]json.RawMessage, error) {
	kv := map[string]json.RawMessage{}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return kv, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read order history")
	}
	if len(data) == 0 {
		return kv, nil
	}
	if err := json.Unmarshal(data, &kv); err != nil {
		return nil, errors.Wrapf(err, "parse %s", f.path)
	}
	// A literal null decodes into a nil map.
	if kv == nil {
		kv = map[string]json.RawMessage{}
	}
	return kv, nil
}

func (f *FileStore) write(kv map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(kv, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode storage")
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create storage dir")
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return errors.Wrap(err, "replace order history")
	}
	return nil
}
