package store

import (
	"context"
	"encoding/json"
	"fmt"
)

type resultRepo struct {
	kv *kvStore
}

func (r *resultRepo) Latest(ctx context.Context) (*ProfileRecord, error) {
	var p ProfileRecord
	found, err := r.kv.get(ctx, KeyResult, &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (r *resultRepo) Save(ctx context.Context, p ProfileRecord) error {
	return r.kv.put(ctx, KeyResult, p)
}

func (r *resultRepo) Update(ctx context.Context, fn func(p *ProfileRecord) (bool, error)) (*ProfileRecord, bool, error) {
	var (
		current *ProfileRecord
		changed bool
	)
	err := r.kv.update(ctx, KeyResult, func(raw []byte) (any, error) {
		if raw != nil {
			var p ProfileRecord
			if err := unmarshalRecords(raw, &p); err != nil {
				return nil, err
			}
			current = &p
		}
		var err error
		changed, err = fn(current)
		if err != nil {
			return nil, err
		}
		if !changed || current == nil {
			changed = false
			return nil, nil
		}
		return current, nil
	})
	if err != nil {
		return nil, false, err
	}
	return current, changed, nil
}

func (r *resultRepo) Clear(ctx context.Context) error {
	return r.kv.delete(ctx, KeyResult)
}

func unmarshalRecords(raw []byte, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}
