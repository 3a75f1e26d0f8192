package service

import (
	"context"
	"testing"

	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/model"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/pkg/database"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/service/petitiongen"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

type mockGenerator struct {
	GenerateFunc func(ctx context.Context, in petitiongen.Input) (*petitiongen.Result, error)
	calls        []petitiongen.Input
}

func (m *mockGenerator) Generate(ctx context.Context, in petitiongen.Input) (*petitiongen.Result, error) {
	m.calls = append(m.calls, in)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, in)
	}
	return &petitiongen.Result{Source: model.SourceGenerated, Text: "generated for " + in.Title, Model: "mock"}, nil
}
