package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/orris-inc/movecomments/internal/application/ticket/dto"
	"github.com/orris-inc/movecomments/internal/infrastructure/config"
	"github.com/orris-inc/movecomments/internal/infrastructure/migration"
	"github.com/orris-inc/movecomments/internal/infrastructure/persistence/models"
	sharedConfig "github.com/orris-inc/movecomments/internal/shared/config"
	"github.com/orris-inc/movecomments/internal/shared/constants"
	"github.com/orris-inc/movecomments/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type testServer struct {
	db        *gorm.DB
	router    *Router
	container *Container
}

func newTestServer(t *testing.T) *testServer {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, migration.NewGormAutoMigrateStrategy().Migrate(gdb))

	cfg := &config.Config{
		Auth: sharedConfig.AuthConfig{
			JWT: sharedConfig.JWTConfig{Secret: "test-secret", AccessExpMinutes: 15},
		},
		Permission: sharedConfig.PermissionConfig{Enabled: true},
		MoveComments: sharedConfig.MoveCommentsConfig{
			ShowUserTickets:          true,
			EnableSearch:             true,
			IncludeProjectName:       true,
			AttachmentOriginTracking: true,
		},
	}

	container, err := NewContainer(gdb, cfg, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(container.Shutdown)

	router := NewRouter(container)
	router.SetupRoutes()

	// projects 1 and 2; user 5 may only see project 1
	require.NoError(t, gdb.Create(&models.ProjectModel{ID: 1, Name: "Website"}).Error)
	require.NoError(t, gdb.Create(&models.ProjectModel{ID: 2, Name: "Secret"}).Error)
	require.NoError(t, gdb.Create(&models.TicketModel{ID: 1, ProjectID: 1, Subject: "Login broken", AuthorID: 5}).Error)
	require.NoError(t, gdb.Create(&models.TicketModel{ID: 2, ProjectID: 1, Subject: "Login page typo", AuthorID: 5}).Error)
	require.NoError(t, gdb.Create(&models.TicketModel{ID: 3, ProjectID: 2, Subject: "Login audit", AuthorID: 6}).Error)
	require.NoError(t, container.Visibility().GrantView(5, 1))

	return &testServer{db: gdb, router: router, container: container}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, userID uint) (int, apiResponse) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	if userID != 0 {
		token, err := s.container.JWTService().Generate(userID, "user")
		require.NoError(t, err)
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.GetEngine().ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)
	code, resp := s.do(t, http.MethodGet, "/health", nil, 0)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
}

func TestRouter_SwaggerDoc(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	w := httptest.NewRecorder()
	s.router.GetEngine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	paths, ok := doc["paths"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, paths, "/comments/{id}/move")
	assert.Contains(t, paths, "/tickets/search")
}

func TestRouter_RequiresAuth(t *testing.T) {
	s := newTestServer(t)
	code, _ := s.do(t, http.MethodGet, "/tickets/search?term=login", nil, 0)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRouter_SearchHonoursVisibility(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(t, http.MethodGet, "/tickets/search?term=LOGIN", nil, 5)
	require.Equal(t, http.StatusOK, code)

	var hits []dto.TicketSummaryDTO
	require.NoError(t, json.Unmarshal(resp.Data, &hits))
	require.Len(t, hits, 2)
	assert.Equal(t, uint(1), hits[0].ID)
	assert.Equal(t, uint(2), hits[1].ID)
	require.NotNil(t, hits[0].Project)
	assert.Equal(t, "Website", *hits[0].Project)

	// user 7 has no grants
	code, resp = s.do(t, http.MethodGet, "/tickets/search?term=3", nil, 7)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(resp.Data, &hits))
	assert.Empty(t, hits)
}

func TestRouter_MoveCommentEndToEnd(t *testing.T) {
	s := newTestServer(t)

	notes := "moved *notes*"
	require.NoError(t, s.db.Create(&models.CommentModel{ID: 10, TicketID: 1, UserID: 5, Notes: &notes, CreatedAt: 1700000000000}).Error)

	code, resp := s.do(t, http.MethodPost, "/comments/10/move", map[string]string{"new_issue_id": "#2"}, 5)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)

	var result dto.RelocationResultDTO
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, dto.StatusMoved, result.Status)
	assert.Equal(t, uint(2), result.TargetTicketID)
	assert.Contains(t, result.NotesHTML, "<em>notes</em>")

	var moved models.CommentModel
	require.NoError(t, s.db.First(&moved, result.NewCommentID).Error)
	assert.Equal(t, uint(2), moved.TicketID)

	var count int64
	require.NoError(t, s.db.Model(&models.CommentModel{}).Where("id = ?", 10).Count(&count).Error)
	assert.Zero(t, count)

	// the author now has notes on ticket 2 only
	code, resp = s.do(t, http.MethodGet, "/tickets/candidates", nil, 5)
	require.Equal(t, http.StatusOK, code)
	var candidates []dto.TicketSummaryDTO
	require.NoError(t, json.Unmarshal(resp.Data, &candidates))
	require.Len(t, candidates, 1)
	assert.Equal(t, uint(2), candidates[0].ID)
}

func TestRouter_MoveCommentInvalidTarget(t *testing.T) {
	s := newTestServer(t)

	notes := "stay"
	require.NoError(t, s.db.Create(&models.CommentModel{ID: 10, TicketID: 1, UserID: 5, Notes: &notes, CreatedAt: 1700000000000}).Error)

	code, resp := s.do(t, http.MethodPost, "/comments/10/move", map[string]string{"new_issue_id": "404"}, 5)
	require.Equal(t, http.StatusUnprocessableEntity, code)
	assert.False(t, resp.Success)

	var result dto.RelocationResultDTO
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, dto.StatusInvalidTarget, result.Status)
	assert.Equal(t, "404", result.WrongNewIssueID)

	var comment models.CommentModel
	require.NoError(t, s.db.First(&comment, 10).Error)
	assert.Equal(t, uint(1), comment.TicketID)
}

func TestRouter_MoveCommentIntoHiddenProject(t *testing.T) {
	s := newTestServer(t)

	notes := "stay"
	require.NoError(t, s.db.Create(&models.CommentModel{ID: 10, TicketID: 1, UserID: 5, Notes: &notes, CreatedAt: 1700000000000}).Error)

	// ticket 3 lives in project 2, which user 5 may not see
	code, resp := s.do(t, http.MethodPost, "/comments/10/move", map[string]string{"new_issue_id": "#3"}, 5)
	require.Equal(t, http.StatusUnprocessableEntity, code)

	var result dto.RelocationResultDTO
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, dto.StatusInvalidTarget, result.Status)
	assert.Equal(t, "#3", result.WrongNewIssueID)

	var comment models.CommentModel
	require.NoError(t, s.db.First(&comment, 10).Error)
	assert.Equal(t, uint(1), comment.TicketID)
	require.NotNil(t, comment.Notes)
	assert.Equal(t, "stay", *comment.Notes)

	require.NoError(t, s.container.Visibility().GrantView(5, 2))
	code, resp = s.do(t, http.MethodPost, "/comments/10/move", map[string]string{"new_issue_id": "#3"}, 5)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, dto.StatusMoved, result.Status)
	assert.Equal(t, uint(3), result.TargetTicketID)
}
