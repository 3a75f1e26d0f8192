package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/eventbus"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/model"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/pkg/database"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/repository"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/service"
	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/service/petitiongen"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubGenerator struct{}

func (stubGenerator) Generate(ctx context.Context, in petitiongen.Input) (*petitiongen.Result, error) {
	return &petitiongen.Result{Source: model.SourceFallback, Text: petitiongen.Fallback(in.Title)}, nil
}

type testServer struct {
	engine   *gin.Engine
	parishes service.ParishService
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)

	templateRepo := repository.NewPetitionTemplateRepository(db)
	parishSvc := service.NewParishService(repository.NewParishRepository(db), templateRepo)
	petitionSvc := service.NewPetitionService(
		repository.NewPetitionRepository(db),
		templateRepo,
		repository.NewGenerationLogRepository(db),
		stubGenerator{},
		eventbus.NewPetitionEventBus(),
	)

	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/healthz", NewHealthHandler(db).Healthz)
	api := r.Group("/api")
	NewParishHandler(parishSvc).RegisterRoutes(api)
	scoped := api.Group("", ParishScope(parishSvc))
	NewPetitionHandler(petitionSvc).RegisterRoutes(scoped)
	NewTemplateHandler(service.NewTemplateService(templateRepo)).RegisterRoutes(scoped)
	NewSettingsHandler(service.NewSettingsService(repository.NewSettingsRepository(db), nil)).RegisterRoutes(scoped)

	return &testServer{engine: r, parishes: parishSvc}
}

func (s *testServer) createParish(t *testing.T, name string) string {
	t.Helper()
	parish, err := s.parishes.Create(context.Background(), service.CreateParishRequest{Name: name})
	require.NoError(t, err)
	return parish.ID
}

func (s *testServer) do(method, path, parishID string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if parishID != "" {
		req.Header.Set(HeaderParishID, parishID)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestParishScopeRequiresHeader(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/petitions", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/petitions", "00000000-0000-0000-0000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestParishHandlerCreateAndGet(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/parishes", "", gin.H{"name": "St. Joseph"})
	require.Equal(t, http.StatusCreated, w.Code)
	parish := decode[model.Parish](t, w)

	w = s.do(http.MethodGet, "/api/parishes/"+parish.ID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/parishes", "", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPetitionHandlerLifecycle(t *testing.T) {
	s := newTestServer(t)
	parishID := s.createParish(t, "St. Mary")

	w := s.do(http.MethodPost, "/api/petitions", parishID, gin.H{
		"title": "Sunday Mass",
		"date":  "2024-12-15",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[model.Petition](t, w)
	assert.Equal(t, model.LanguageEnglish, created.Language)
	assert.Equal(t, model.SourceFallback, created.GenerationSource)
	assert.Contains(t, created.GeneratedContent, "let us pray to the Lord")

	path := "/api/petitions/" + itoa(created.ID)

	w = s.do(http.MethodPut, path+"/content", parishID, gin.H{"content": "edited", "version": created.Version})
	require.Equal(t, http.StatusOK, w.Code)
	edited := decode[model.Petition](t, w)
	assert.Equal(t, model.SourceManual, edited.GenerationSource)

	w = s.do(http.MethodPut, path, parishID, gin.H{"title": "Sunday Mass", "version": created.Version})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, path+"/regenerate", parishID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, path+"/generations", parishID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/petitions", parishID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Petition](t, w), 1)

	w = s.do(http.MethodDelete, path, parishID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, path, parishID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPetitionHandlerValidation(t *testing.T) {
	s := newTestServer(t)
	parishID := s.createParish(t, "St. Mary")

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing title", gin.H{"date": "2024-12-15"}},
		{"bad date", gin.H{"title": "Sunday Mass", "date": "15/12/2024"}},
		{"unsupported language", gin.H{"title": "Sunday Mass", "language": "klingon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/api/petitions", parishID, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	w := s.do(http.MethodGet, "/api/petitions/abc", parishID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPetitionHandlerParishIsolation(t *testing.T) {
	s := newTestServer(t)
	a := s.createParish(t, "St. Anne")
	b := s.createParish(t, "St. Benedict")

	w := s.do(http.MethodPost, "/api/petitions", a, gin.H{"title": "Daily Mass", "language": "latin"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[model.Petition](t, w)

	w = s.do(http.MethodGet, "/api/petitions/"+itoa(created.ID), b, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(http.MethodDelete, "/api/petitions/"+itoa(created.ID), b, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTemplateHandlerSeededAndCRUD(t *testing.T) {
	s := newTestServer(t)
	parishID := s.createParish(t, "St. Mary")

	w := s.do(http.MethodGet, "/api/petition-templates", parishID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	seeded := decode[[]model.PetitionTemplate](t, w)
	assert.Len(t, seeded, len(service.DefaultTemplates(parishID)))

	w = s.do(http.MethodDelete, "/api/petition-templates/"+itoa(seeded[0].ID), parishID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/api/petition-templates", parishID, gin.H{"title": "Baptism", "context": "For the newly baptized"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[model.PetitionTemplate](t, w)

	path := "/api/petition-templates/" + itoa(created.ID)
	w = s.do(http.MethodPut, path, parishID, gin.H{"title": "Baptisms", "context": "For the newly baptized"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodDelete, path, parishID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, path, parishID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSettingsHandler(t *testing.T) {
	s := newTestServer(t)
	parishID := s.createParish(t, "St. Mary")

	w := s.do(http.MethodGet, "/api/settings", parishID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[service.SettingsDTO](t, w).IsDefault)

	w = s.do(http.MethodPut, "/api/settings", parishID, gin.H{"prompt_template": "{{title}} for {{pastor}}"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[map[string]interface{}](t, w)
	assert.Equal(t, []interface{}{"{{pastor}}"}, body["unknown"])

	w = s.do(http.MethodPut, "/api/settings", parishID, gin.H{"prompt_template": "Write petitions for {{title}}"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[service.SettingsDTO](t, w).IsDefault)

	w = s.do(http.MethodPut, "/api/settings", parishID, gin.H{"prompt_template": ""})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[service.SettingsDTO](t, w).IsDefault)
}

func TestPetitionHandlerRejectsForeignTemplate(t *testing.T) {
	s := newTestServer(t)
	a := s.createParish(t, "St. Anne")
	b := s.createParish(t, "St. Benedict")

	w := s.do(http.MethodGet, "/api/petition-templates", b, nil)
	require.Equal(t, http.StatusOK, w.Code)
	foreign := decode[[]model.PetitionTemplate](t, w)[0]

	w = s.do(http.MethodPost, "/api/petitions", a, gin.H{"title": "Sunday Mass", "template_id": foreign.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
