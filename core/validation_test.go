package core

import (
	"errors"
	"testing"
)

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		wantErr error
	}{
		{
			name:    "valid document",
			doc:     NewDocument("title", "Some contents."),
			wantErr: nil,
		},
		{
			name:    "valid document without title",
			doc:     NewDocument("", "Some contents."),
			wantErr: nil,
		},
		{
			name:    "valid document with ID 0",
			doc:     Document{Id: 0, Contents: "Some contents."},
			wantErr: nil,
		},
		{
			name:    "empty contents",
			doc:     Document{Title: "title"},
			wantErr: ErrEmptyContents,
		},
		{
			name:    "zero value document",
			doc:     Document{},
			wantErr: ErrInvalidDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDocument() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateDocument() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDocument() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateEmbedding(t *testing.T) {
	space := NewVectorSpace("test", 3)

	tests := []struct {
		name    string
		emb     Embedding
		wantErr error
	}{
		{
			name:    "valid embedding",
			emb:     Embedding{Space: space, Values: []float32{0.1, 0.2, 0.3}},
			wantErr: nil,
		},
		{
			name:    "missing space",
			emb:     Embedding{Values: []float32{0.1, 0.2, 0.3}},
			wantErr: ErrVectorSpaceRequired,
		},
		{
			name:    "empty values",
			emb:     Embedding{Space: space},
			wantErr: ErrEmptyVector,
		},
		{
			name:    "too few values",
			emb:     Embedding{Space: space, Values: []float32{0.1, 0.2}},
			wantErr: ErrDimensionMismatch,
		},
		{
			name:    "too many values",
			emb:     Embedding{Space: space, Values: []float32{0.1, 0.2, 0.3, 0.4}},
			wantErr: ErrDimensionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmbedding(tt.emb)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateEmbedding() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateEmbedding() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateEmbedding() error = %v, want %v", err, tt.wantErr)
			}

			if !errors.Is(err, ErrInvalidEmbedding) {
				t.Errorf("ValidateEmbedding() error should wrap ErrInvalidEmbedding, got %v", err)
			}
		})
	}
}
