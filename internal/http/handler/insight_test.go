package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandpulse/internal/insights"
)

type fakeInsightStore struct {
	rows      []insights.Insight
	read      map[uint64]bool
	feedbacks map[uint64]int

	listType  string
	listLimit int
}

func newFakeInsightStore(rows ...insights.Insight) *fakeInsightStore {
	return &fakeInsightStore{
		rows:      rows,
		read:      map[uint64]bool{},
		feedbacks: map[uint64]int{},
	}
}

func (f *fakeInsightStore) List(ctx context.Context, userID uint64, typ string, limit int) ([]insights.Insight, error) {
	f.listType = typ
	f.listLimit = limit
	return f.rows, nil
}

func (f *fakeInsightStore) MarkRead(ctx context.Context, userID, id uint64) error {
	for _, row := range f.rows {
		if row.ID == id && row.UserID == userID {
			f.read[id] = true
			return nil
		}
	}
	return insights.ErrNotFound
}

func (f *fakeInsightStore) Feedback(ctx context.Context, userID, id uint64, rating int) error {
	if rating < 1 || rating > 5 {
		return insights.ErrInvalidRating
	}
	for _, row := range f.rows {
		if row.ID == id && row.UserID == userID {
			f.feedbacks[id] = rating
			return nil
		}
	}
	return insights.ErrNotFound
}

func TestInsightList(t *testing.T) {
	store := newFakeInsightStore(
		insights.Insight{ID: 1, UserID: 42, Type: insights.TypeRecommendation, Title: "a", ActionItems: []string{"do it"}},
		insights.Insight{ID: 2, UserID: 42, Type: insights.TypeWeekly, Title: "b"},
	)
	h := &InsightHandler{Store: store}

	rec := asUser(42, http.MethodGet, "/users/42/insights?type=recommendation&limit=5", "", "/users/{id}/insights", h.List)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "recommendation", store.listType)
	assert.Equal(t, 5, store.listLimit)

	var out []insightDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, []string{"do it"}, out[0].ActionItems)
}

func TestInsightListOtherUserForbidden(t *testing.T) {
	h := &InsightHandler{Store: newFakeInsightStore()}

	rec := asUser(42, http.MethodGet, "/users/7/insights", "", "/users/{id}/insights", h.List)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestInsightListInvalidLimit(t *testing.T) {
	h := &InsightHandler{Store: newFakeInsightStore()}

	for _, limit := range []string{"0", "-1", "101", "abc"} {
		rec := asUser(42, http.MethodGet, "/users/42/insights?limit="+limit, "", "/users/{id}/insights", h.List)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "limit=%s", limit)
	}
}

func TestFeedbackRatingBounds(t *testing.T) {
	store := newFakeInsightStore(insights.Insight{ID: 1, UserID: 42})
	h := &InsightHandler{Store: store}

	for _, body := range []string{`{"rating":0}`, `{"rating":6}`, `{"rating":-3}`} {
		rec := asUser(42, http.MethodPost, "/insights/1/feedback", body, "/insights/{id}/feedback", h.Feedback)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body=%s", body)
	}
	assert.Empty(t, store.feedbacks)

	rec := asUser(42, http.MethodPost, "/insights/1/feedback", `{"rating":4}`, "/insights/{id}/feedback", h.Feedback)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 4, store.feedbacks[1])
}

func TestFeedbackUnknownInsight(t *testing.T) {
	h := &InsightHandler{Store: newFakeInsightStore()}

	rec := asUser(42, http.MethodPost, "/insights/9/feedback", `{"rating":3}`, "/insights/{id}/feedback", h.Feedback)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	store := newFakeInsightStore(insights.Insight{ID: 1, UserID: 42})
	h := &InsightHandler{Store: store}

	for i := 0; i < 2; i++ {
		rec := asUser(42, http.MethodPost, "/insights/1/read", "", "/insights/{id}/read", h.MarkRead)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
	assert.True(t, store.read[1])
}

func TestMarkReadUnknownInsight(t *testing.T) {
	h := &InsightHandler{Store: newFakeInsightStore()}

	rec := asUser(42, http.MethodPost, "/insights/9/read", "", "/insights/{id}/read", h.MarkRead)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
