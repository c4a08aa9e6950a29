// Package mongostore reads reservations from the legacy MongoDB backend so
// the aggregation endpoints can run against either store.
package mongostore

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"villa_backend/internal/models"
	"villa_backend/internal/repositories"
)

const reservationsCollection = "reservations"

// Connect opens a client and verifies the server is reachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}
	return client, nil
}

// ReservationStore implements repositories.ReservationSource over the
// reservations collection.
type ReservationStore struct {
	coll *mongo.Collection
}

var _ repositories.ReservationSource = (*ReservationStore)(nil)

// NewReservationStore creates a store on the given database.
func NewReservationStore(db *mongo.Database) *ReservationStore {
	return &ReservationStore{coll: db.Collection(reservationsCollection)}
}

// reservationDoc mirrors the fields of a legacy reservation document that the
// aggregator needs. Several clients wrote these documents with different
// types, so every field is decoded raw and a value of an unexpected type is
// treated as missing instead of failing the whole listing.
type reservationDoc struct {
	ID          bson.RawValue `bson:"_id"`
	BookingCode bson.RawValue `bson:"bookingCode"`
	Gro         bson.RawValue `bson:"gro"`
	Status      bson.RawValue `bson:"status"`
	FinalPrice  bson.RawValue `bson:"finalPrice"`
	CheckIn     bson.RawValue `bson:"checkIn"`
	CheckOut    bson.RawValue `bson:"checkOut"`
	CreatedAt   bson.RawValue `bson:"createdAt"`
}

func (d *reservationDoc) toRecord() models.ReservationRecord {
	status := ""
	if s := stringValue(d.Status); s != nil {
		status = *s
	}
	code := ""
	if s := stringValue(d.BookingCode); s != nil {
		code = *s
	}
	return models.ReservationRecord{
		ID:          documentID(d.ID),
		BookingCode: code,
		Gro:         stringValue(d.Gro),
		Status:      models.ReservationStatus(strings.ToUpper(strings.TrimSpace(status))),
		FinalPrice:  numericValue(d.FinalPrice),
		CheckIn:     dateValue(d.CheckIn),
		CheckOut:    dateValue(d.CheckOut),
		CreatedAt:   dateValue(d.CreatedAt),
	}
}

// stringValue returns the value of a BSON string, or nil for any other type.
func stringValue(v bson.RawValue) *string {
	s, ok := v.StringValueOK()
	if !ok {
		return nil
	}
	return &s
}

// dateValue returns a BSON datetime in UTC, or the zero time for any other type.
func dateValue(v bson.RawValue) time.Time {
	ms, ok := v.DateTimeOK()
	if !ok {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

func documentID(v bson.RawValue) string {
	if oid, ok := v.ObjectIDOK(); ok {
		return oid.Hex()
	}
	if s, ok := v.StringValueOK(); ok {
		return s
	}
	if v.Type == 0 {
		return ""
	}
	return v.String()
}

// numericValue returns the float value of any BSON numeric type, or nil.
func numericValue(v bson.RawValue) *float64 {
	var f float64
	if d, ok := v.DoubleOK(); ok {
		f = d
	} else if i, ok := v.Int32OK(); ok {
		f = float64(i)
	} else if i, ok := v.Int64OK(); ok {
		f = float64(i)
	} else if dec, ok := v.Decimal128OK(); ok {
		parsed, err := strconv.ParseFloat(dec.String(), 64)
		if err != nil {
			return nil
		}
		f = parsed
	} else {
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func buildQuery(filter models.ReservationRecordFilter) bson.M {
	query := bson.M{}
	if filter.Gro != nil {
		query["gro"] = *filter.Gro
	}
	if filter.CreatedFrom != nil {
		query["createdAt"] = bson.M{"$gte": *filter.CreatedFrom}
	}
	return query
}

// ListReservationRecords returns matching reservations, oldest first.
func (s *ReservationStore) ListReservationRecords(ctx context.Context, filter models.ReservationRecordFilter) ([]models.ReservationRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{
			"bookingCode": 1, "gro": 1, "status": 1, "finalPrice": 1,
			"checkIn": 1, "checkOut": 1, "createdAt": 1,
		})

	cursor, err := s.coll.Find(ctx, buildQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: finding reservations: %v", repositories.ErrDatabaseError, err)
	}
	defer cursor.Close(ctx)

	records := []models.ReservationRecord{}
	for cursor.Next(ctx) {
		var doc reservationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: decoding reservation: %v", repositories.ErrDatabaseError, err)
		}
		records = append(records, doc.toRecord())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating reservations: %v", repositories.ErrDatabaseError, err)
	}
	return records, nil
}
