package store

import "context"

type sessionRepo struct {
	kv *kvStore
}

func (r *sessionRepo) Current(ctx context.Context) (*UserRecord, error) {
	var rec UserRecord
	found, err := r.kv.get(ctx, KeySession, &rec)
	if err != nil || !found {
		return nil, err
	}
	return &rec, nil
}

func (r *sessionRepo) Set(ctx context.Context, rec UserRecord) error {
	return r.kv.put(ctx, KeySession, rec)
}

func (r *sessionRepo) Clear(ctx context.Context) error {
	return r.kv.delete(ctx, KeySession)
}
