package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "giveaway-bot-backend/internal/common/errors"
	"giveaway-bot-backend/internal/common/middleware"
	"giveaway-bot-backend/internal/features/giveaway/models"
)

// fakeService returns canned results per method.
type fakeService struct {
	createResp *models.GiveawayResponse
	createErr  error
	getResp    *models.GiveawayResponse
	getErr     error
	toggleResp *models.EntryResult
	toggleErr  error
	endResp    *models.EndResult
	endErr     error
	rerollResp *models.RerollResult
	rerollErr  error
	guildResp  []*models.GiveawayResponse
}

func (f *fakeService) Create(context.Context, *models.GiveawayCreate) (*models.GiveawayResponse, error) {
	return f.createResp, f.createErr
}

func (f *fakeService) GetByID(context.Context, string) (*models.GiveawayResponse, error) {
	return f.getResp, f.getErr
}

func (f *fakeService) GetByMessageID(context.Context, string) (*models.GiveawayResponse, error) {
	return f.getResp, f.getErr
}

func (f *fakeService) GetByGuild(context.Context, string) ([]*models.GiveawayResponse, error) {
	return f.guildResp, nil
}

func (f *fakeService) ToggleEntry(context.Context, string, string) (*models.EntryResult, error) {
	return f.toggleResp, f.toggleErr
}

func (f *fakeService) End(context.Context, string) (*models.EndResult, error) {
	return f.endResp, f.endErr
}

func (f *fakeService) Reroll(context.Context, string, int) (*models.RerollResult, error) {
	return f.rerollResp, f.rerollErr
}

func (f *fakeService) RerollByMessage(context.Context, string, int) (*models.RerollResult, error) {
	return f.rerollResp, f.rerollErr
}

func (f *fakeService) EndDue(context.Context, time.Time) (int, error) {
	return 0, nil
}

func setupRouter(svc *fakeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	v1 := router.Group("/api/v1")
	NewGiveawayHandler(svc).RegisterRoutes(v1)
	return router
}

func TestCreateGiveaway(t *testing.T) {
	svc := &fakeService{createResp: &models.GiveawayResponse{ID: "g1", Prize: "Nitro"}}
	router := setupRouter(svc)

	body, _ := json.Marshal(models.GiveawayCreate{
		GuildID:      "guild-1",
		ChannelID:    "channel-1",
		HostID:       "host-1",
		Prize:        "Nitro",
		Duration:     "1h",
		WinnersCount: 1,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/giveaways", bytes.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp models.GiveawayResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "g1", resp.ID)
}

func TestCreateGiveawayInvalidBody(t *testing.T) {
	router := setupRouter(&fakeService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/giveaways", bytes.NewReader([]byte(`{"prize":""}`)))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetGiveawayNotFound(t *testing.T) {
	svc := &fakeService{getErr: apperrors.NewGiveawayNotFoundError("missing")}
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/giveaways/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleEntry(t *testing.T) {
	svc := &fakeService{toggleResp: &models.EntryResult{Entered: true, TotalEntries: 1}}
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/giveaways/g1/entries", bytes.NewReader([]byte(`{"user_id":"u1"}`)))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var result models.EntryResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Entered)
}

func TestToggleEntryMissingUser(t *testing.T) {
	router := setupRouter(&fakeService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/giveaways/g1/entries", bytes.NewReader([]byte(`{}`)))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEndGiveaway(t *testing.T) {
	svc := &fakeService{endResp: &models.EndResult{GiveawayID: "g1", WinnerIDs: []string{"u1"}}}
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/giveaways/g1/end", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRerollConflict(t *testing.T) {
	svc := &fakeService{rerollErr: apperrors.New(apperrors.ErrCodeEmptyRerollPool, "No entrants left to reroll from")}
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/giveaways/g1/reroll", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRerollByMessage(t *testing.T) {
	svc := &fakeService{rerollResp: &models.RerollResult{GiveawayID: "g1", NewWinners: []string{"u2"}}}
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages/m1/reroll", bytes.NewReader([]byte(`{"count":1}`)))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRerollWithoutBody(t *testing.T) {
	svc := &fakeService{rerollResp: &models.RerollResult{GiveawayID: "g1", NewWinners: []string{"u2"}}}
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/giveaways/g1/reroll", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
