package mongodb

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/hrportal-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo ejecutor de reportes sobre colecciones de MongoDB.
type ReportRepo struct {
	db *mongo.Database
}

// NewReportRepository construye el adaptador.
func NewReportRepository(db *mongo.Database) *ReportRepo {
	return &ReportRepo{db: db}
}

// Find con proyección de inclusión y filtros $regex insensibles a mayúsculas.
func (r *ReportRepo) Find(ctx context.Context, q repository.ReportQuery) ([]map[string]any, error) {
	filter, projection := buildReportQuery(q)
	cur, err := r.db.Collection(q.Table).Find(ctx, filter, options.Find().SetProjection(projection))
	if err != nil {
		return nil, fmt.Errorf("report find: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]map[string]any, 0)
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode report row: %w", err)
		}
		out = append(out, normalize(doc))
	}
	return out, cur.Err()
}

// buildReportQuery cada filtro es una subcadena literal: el valor se escapa con QuoteMeta.
func buildReportQuery(q repository.ReportQuery) (bson.M, bson.M) {
	filter := bson.M{}
	for _, f := range q.Filters {
		filter[f.Field] = bson.M{"$regex": regexp.QuoteMeta(f.Value), "$options": "i"}
	}
	projection := bson.M{}
	for _, c := range q.Columns {
		projection[c] = 1
	}
	return filter, projection
}

// normalize convierte el ObjectID a hex para que la respuesta JSON sea un string.
func normalize(doc bson.M) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		switch val := v.(type) {
		case primitive.ObjectID:
			out[k] = val.Hex()
		case primitive.DateTime:
			out[k] = val.Time().UTC()
		default:
			out[k] = v
		}
	}
	return out
}
