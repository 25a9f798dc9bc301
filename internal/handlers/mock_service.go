package handlers

import (
	"context"
	"net/http"
	"time"

	"bloglist/internal/models"
	"bloglist/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error
	logoutErr     error

	lastSignUpName     string
	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
	logoutCalls        []string
}

func (m *mockAuth) SignUp(name, username, password string) (int, error) {
	m.lastSignUpName = name
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(ctx context.Context, token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}
func (m *mockAuth) Logout(ctx context.Context, token string) error {
	m.logoutCalls = append(m.logoutCalls, token)
	return m.logoutErr
}

type mockBlogs struct {
	createBlog models.Blog
	createErr  error
	listResp   []models.Blog
	listErr    error
	rankedResp []models.Blog
	rankedErr  error
	likeCount  int
	likeErr    error
	deleteErr  error

	lastCreateOwner int
	lastLikeID      int
	lastDeleteOwner int
	lastDeleteID    int
	deleteCalls     int
}

func (m *mockBlogs) Create(ctx context.Context, ownerID int, title, author, url string) (models.Blog, error) {
	m.lastCreateOwner = ownerID
	if m.createErr != nil {
		return models.Blog{}, m.createErr
	}
	b := m.createBlog
	if b.Title == "" {
		b = models.Blog{Title: title, Author: author, URL: url, OwnerID: ownerID}
	}
	return b, nil
}
func (m *mockBlogs) List(ctx context.Context) ([]models.Blog, error) {
	return m.listResp, m.listErr
}
func (m *mockBlogs) Ranked(ctx context.Context) ([]models.Blog, error) {
	return m.rankedResp, m.rankedErr
}
func (m *mockBlogs) Like(ctx context.Context, id int) (int, error) {
	m.lastLikeID = id
	return m.likeCount, m.likeErr
}
func (m *mockBlogs) Delete(ctx context.Context, callerID, id int) error {
	m.deleteCalls++
	m.lastDeleteOwner = callerID
	m.lastDeleteID = id
	return m.deleteErr
}
func (m *mockBlogs) CanDelete(callerID int, b models.Blog) bool {
	return callerID != 0 && callerID == b.OwnerID
}

type mockEventLog struct {
	resp     []models.BlogEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.EventFilter) ([]models.BlogEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

type mockAdmin struct {
	err   error
	calls int
}

func (m *mockAdmin) Reset(ctx context.Context) error {
	m.calls++
	return m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
