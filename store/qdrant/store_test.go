package qdrant

import (
	"context"
	"testing"

	"github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanadlabs/hadithvec/ai/mock"
	"github.com/sanadlabs/hadithvec/store"
)

func TestNewStore_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("missing collection name", func(t *testing.T) {
		_, err := NewStore(ctx, Config{
			Host:       "localhost",
			Port:       6334,
			VectorSize: 3072,
			Embedder:   mock.NewMockEmbedder(),
		})
		assert.ErrorIs(t, err, store.ErrCollectionRequired)
	})

	t.Run("missing embedder", func(t *testing.T) {
		_, err := NewStore(ctx, Config{
			Host:           "localhost",
			Port:           6334,
			CollectionName: "rag_ahadees",
			VectorSize:     3072,
		})
		assert.ErrorIs(t, err, store.ErrEmbedderRequired)
	})

	t.Run("non-positive vector size", func(t *testing.T) {
		_, err := NewStore(ctx, Config{
			Host:           "localhost",
			Port:           6334,
			CollectionName: "rag_ahadees",
			Embedder:       mock.NewMockEmbedder(),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "vector size")
	})
}

func TestConvertValue(t *testing.T) {
	tests := []struct {
		name  string
		value *qdrant.Value
		want  any
	}{
		{"string", &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: "bukhari"}}, "bukhari"},
		{"integer", &qdrant.Value{Kind: &qdrant.Value_IntegerValue{IntegerValue: 97}}, int64(97)},
		{"double", &qdrant.Value{Kind: &qdrant.Value_DoubleValue{DoubleValue: 0.5}}, 0.5},
		{"bool", &qdrant.Value{Kind: &qdrant.Value_BoolValue{BoolValue: true}}, true},
		{"null", &qdrant.Value{Kind: &qdrant.Value_NullValue{}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, convertValue(tt.value))
		})
	}

	t.Run("list", func(t *testing.T) {
		v := &qdrant.Value{Kind: &qdrant.Value_ListValue{ListValue: &qdrant.ListValue{Values: []*qdrant.Value{
			{Kind: &qdrant.Value_StringValue{StringValue: "a"}},
			{Kind: &qdrant.Value_IntegerValue{IntegerValue: 1}},
		}}}}
		assert.Equal(t, []any{"a", int64(1)}, convertValue(v))
	})

	t.Run("struct", func(t *testing.T) {
		v := &qdrant.Value{Kind: &qdrant.Value_StructValue{StructValue: &qdrant.Struct{Fields: map[string]*qdrant.Value{
			"chapter": {Kind: &qdrant.Value_StringValue{StringValue: "Revelation"}},
		}}}}
		assert.Equal(t, map[string]any{"chapter": "Revelation"}, convertValue(v))
	})
}
