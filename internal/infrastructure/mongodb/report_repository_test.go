package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/hrportal-api/internal/domain/repository"
)

func TestBuildReportQuery(t *testing.T) {
	filter, projection := buildReportQuery(repository.ReportQuery{
		Table:   "users",
		Columns: []string{"name", "email"},
		Filters: []repository.FieldMatch{
			{Field: "name", Value: "an"},
			{Field: "email", Value: "a.b+c@x"},
		},
	})

	assert.Equal(t, bson.M{"name": 1, "email": 1}, projection)
	assert.Equal(t, bson.M{"$regex": "an", "$options": "i"}, filter["name"])
	assert.Equal(t, bson.M{"$regex": `a\.b\+c@x`, "$options": "i"}, filter["email"], "el valor es literal")
}

func TestNormalize(t *testing.T) {
	oid := primitive.NewObjectID()
	ts := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	out := normalize(bson.M{"_id": oid, "createdAt": primitive.NewDateTimeFromTime(ts), "name": "Ana"})

	assert.Equal(t, oid.Hex(), out["_id"])
	assert.Equal(t, ts, out["createdAt"])
	assert.Equal(t, "Ana", out["name"])
}
