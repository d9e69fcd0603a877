package repositories

import (
	"context"
	"fmt"
	"time"

	"mediabox/logger"
	"mediabox/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type FirestoreFileRecordRepository struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreFileRecordRepository(client *firestore.Client, collection string) *FirestoreFileRecordRepository {
	return &FirestoreFileRecordRepository{client: client, collection: collection}
}

func (r *FirestoreFileRecordRepository) col() *firestore.CollectionRef {
	return r.client.Collection(r.collection)
}

func (r *FirestoreFileRecordRepository) Create(ctx context.Context, rec *models.FileRecord) error {
	ref, _, err := r.col().Add(ctx, recordDocument(rec))
	if err != nil {
		return err
	}
	rec.ID = ref.ID
	// Approximates the server timestamp written above.
	rec.UploadedAt = time.Now()
	return nil
}

func (r *FirestoreFileRecordRepository) GetByID(ctx context.Context, id string) (models.FileRecord, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return models.FileRecord{}, ErrNotFound
		}
		return models.FileRecord{}, err
	}
	return recordFromSnapshot(snap)
}

func (r *FirestoreFileRecordRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}

func (r *FirestoreFileRecordRepository) ListByUploadedAtDesc(ctx context.Context) ([]models.FileRecord, error) {
	snaps, err := r.col().OrderBy("uploaded_at", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	return decodeRecords(snaps, recordFromSnapshot), nil
}

// decodeRecords keeps every document that decodes. A malformed document is
// logged and left out of the listing.
func decodeRecords(snaps []*firestore.DocumentSnapshot, decode func(*firestore.DocumentSnapshot) (models.FileRecord, error)) []models.FileRecord {
	list := make([]models.FileRecord, 0, len(snaps))
	for _, snap := range snaps {
		rec, err := decode(snap)
		if err != nil {
			logger.Warnf("skip file document %s: %v", snap.Ref.ID, err)
			continue
		}
		list = append(list, rec)
	}
	return list
}

func recordDocument(rec *models.FileRecord) map[string]interface{} {
	return map[string]interface{}{
		"name":          rec.Name,
		"storage_path":  rec.StoragePath,
		"main":          rec.Main,
		"folder":        rec.Folder,
		"readable_date": rec.ReadableDate,
		"content_type":  rec.ContentType,
		"uploaded_at":   firestore.ServerTimestamp,
	}
}

func recordFromSnapshot(snap *firestore.DocumentSnapshot) (models.FileRecord, error) {
	var rec models.FileRecord
	if err := snap.DataTo(&rec); err != nil {
		return models.FileRecord{}, fmt.Errorf("decode %s: %w", snap.Ref.ID, err)
	}
	rec.ID = snap.Ref.ID
	return rec, nil
}
