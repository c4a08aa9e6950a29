package mongostore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"villa_backend/internal/models"
)

func decodeDoc(t *testing.T, doc bson.M) models.ReservationRecord {
	t.Helper()
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var decoded reservationDoc
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	return decoded.toRecord()
}

func TestToRecord_MapsFields(t *testing.T) {
	oid := primitive.NewObjectID()
	created := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)

	got := decodeDoc(t, bson.M{
		"_id":         oid,
		"bookingCode": "BK-20250303-0001",
		"gro":         "Made",
		"status":      "selesai",
		"finalPrice":  1250000.5,
		"checkIn":     created.AddDate(0, 0, 7),
		"checkOut":    created.AddDate(0, 0, 9),
		"createdAt":   created,
	})

	assert.Equal(t, oid.Hex(), got.ID)
	assert.Equal(t, "BK-20250303-0001", got.BookingCode)
	require.NotNil(t, got.Gro)
	assert.Equal(t, "Made", *got.Gro)
	assert.Equal(t, models.ReservationStatusSelesai, got.Status)
	require.NotNil(t, got.FinalPrice)
	assert.Equal(t, 1250000.5, *got.FinalPrice)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestToRecord_NumericFinalPriceTypes(t *testing.T) {
	dec, err := primitive.ParseDecimal128("750000.25")
	require.NoError(t, err)

	tests := []struct {
		name  string
		price interface{}
		want  float64
	}{
		{"double", 1000.5, 1000.5},
		{"int32", int32(500000), 500000},
		{"int64", int64(2000000), 2000000},
		{"decimal128", dec, 750000.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeDoc(t, bson.M{"_id": "legacy-1", "finalPrice": tt.price})
			require.NotNil(t, got.FinalPrice)
			assert.Equal(t, tt.want, *got.FinalPrice)
		})
	}
}

func TestToRecord_NonNumericFinalPriceIsMissing(t *testing.T) {
	for name, price := range map[string]interface{}{
		"string":  "1000000",
		"null":    nil,
		"boolean": true,
	} {
		t.Run(name, func(t *testing.T) {
			got := decodeDoc(t, bson.M{"_id": "x", "finalPrice": price})
			assert.Nil(t, got.FinalPrice)
		})
	}

	got := decodeDoc(t, bson.M{"_id": "x"})
	assert.Nil(t, got.FinalPrice)
}

func TestToRecord_MissingOrNullGro(t *testing.T) {
	got := decodeDoc(t, bson.M{"_id": "a", "gro": nil})
	assert.Nil(t, got.Gro)

	got = decodeDoc(t, bson.M{"_id": "b"})
	assert.Nil(t, got.Gro)
	assert.Equal(t, "b", got.ID)
}

func TestToRecord_MistypedFieldsAreMissing(t *testing.T) {
	tests := []struct {
		name string
		gro  interface{}
	}{
		{"number", 42},
		{"object id", primitive.NewObjectID()},
		{"array", bson.A{"Made"}},
		{"bool", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeDoc(t, bson.M{
				"_id":        "legacy-7",
				"gro":        tt.gro,
				"status":     int32(3),
				"createdAt":  "2025-03-03",
				"finalPrice": 500000.0,
			})
			assert.Nil(t, got.Gro)
			assert.Equal(t, models.ReservationStatus(""), got.Status)
			assert.True(t, got.CreatedAt.IsZero())
			require.NotNil(t, got.FinalPrice)
			assert.Equal(t, 500000.0, *got.FinalPrice)
		})
	}
}

func TestToRecord_UnknownStatusIsKept(t *testing.T) {
	got := decodeDoc(t, bson.M{"_id": "a", "status": "archived"})
	assert.Equal(t, models.ReservationStatus("ARCHIVED"), got.Status)
	assert.False(t, got.Status.IsValid())
}

func TestBuildQuery(t *testing.T) {
	assert.Empty(t, buildQuery(models.ReservationRecordFilter{}))

	gro := "Ketut"
	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	q := buildQuery(models.ReservationRecordFilter{Gro: &gro, CreatedFrom: &from})
	assert.Equal(t, "Ketut", q["gro"])
	assert.Equal(t, bson.M{"$gte": from}, q["createdAt"])
}
