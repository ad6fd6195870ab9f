package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDecodeSnapshotJSON_CoercesLegacyNumerics(t *testing.T) {
	raw := []byte(`{
		"transactions": [{
			"id": "1",
			"customerName": "Ali",
			"date": "2025-11-12T00:00:00Z",
			"oliveKg": "150",
			"pricePerKg": "bozuk",
			"paymentReceived": null,
			"tinCounts": {"s16": "2"}
		}],
		"pomaceRevenues": [{"id": "2", "loadKg": true, "totalRevenue": "90,5"}],
		"defaultPrices": {"pricePerKg": "4"}
	}`)

	snap, err := DecodeSnapshotJSON(raw)
	require.NoError(t, err)
	require.Len(t, snap.Transactions, 1)

	tx := snap.Transactions[0]
	assert.Equal(t, "Ali", tx.CustomerName)
	assert.Equal(t, 150.0, tx.OliveKg)
	assert.Zero(t, tx.PricePerKg)
	assert.Zero(t, tx.PaymentReceived)
	assert.Equal(t, 2.0, tx.TinCounts.S16)
	assert.Equal(t, time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC), tx.Date)

	require.Len(t, snap.PomaceRevenues, 1)
	assert.Equal(t, 1.0, snap.PomaceRevenues[0].LoadKg)
	assert.Zero(t, snap.PomaceRevenues[0].TotalRevenue)

	assert.Equal(t, 4.0, snap.DefaultPrices.PricePerKg)
}

func TestDecodeSnapshotJSON_TypedDocumentUnchanged(t *testing.T) {
	want := EmptySnapshot()
	want.Transactions = append(want.Transactions, Transaction{
		ID:           "1",
		CustomerName: "Ali",
		OliveKg:      1000,
		PricePerKg:   3,
		TotalCost:    3000,
	})

	raw, err := json.Marshal(want)
	require.NoError(t, err)

	got, err := DecodeSnapshotJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNormalizeDocument_MongoShapes(t *testing.T) {
	date := time.Date(2025, 11, 12, 10, 0, 0, 0, time.UTC)
	doc := bson.M{
		"transactions": primitive.A{bson.M{
			"id":           "1",
			"customerName": "Ali",
			"date":         primitive.NewDateTimeFromTime(date),
			"oliveKg":      "150",
			"oilLitre":     int32(30),
			"pricePerKg":   int64(3),
		}},
	}

	raw, err := bson.Marshal(NormalizeDocument(doc))
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, bson.Unmarshal(raw, &snap))
	require.Len(t, snap.Transactions, 1)

	tx := snap.Transactions[0]
	assert.Equal(t, 150.0, tx.OliveKg)
	assert.Equal(t, 30.0, tx.OilLitre)
	assert.Equal(t, 3.0, tx.PricePerKg)
	assert.True(t, tx.Date.Equal(date))
}
