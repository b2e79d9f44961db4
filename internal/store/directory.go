package store

import "context"

type directoryRepo struct {
	kv *kvStore
}

func (r *directoryRepo) All(ctx context.Context) ([]UserRecord, error) {
	var recs []UserRecord
	if _, err := r.kv.get(ctx, KeyDirectory, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *directoryRepo) Find(ctx context.Context, email string) (*UserRecord, error) {
	recs, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range recs {
		if recs[i].Identity.Email == email {
			return &recs[i], nil
		}
	}
	return nil, nil
}

func (r *directoryRepo) Put(ctx context.Context, rec UserRecord) error {
	return r.kv.update(ctx, KeyDirectory, func(raw []byte) (any, error) {
		var recs []UserRecord
		if raw != nil {
			if err := unmarshalRecords(raw, &recs); err != nil {
				return nil, err
			}
		}
		for i := range recs {
			if recs[i].Identity.Email == rec.Identity.Email {
				recs[i] = rec
				return recs, nil
			}
		}
		return append(recs, rec), nil
	})
}
