package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"microblog/internal/domain/entity"
	"microblog/internal/domain/sqlite"
	"microblog/internal/http/handler"
	"microblog/internal/http/middleware"
	"microblog/internal/infrastructure/storage"
	"microblog/internal/service"
)

//
// --- Helpers ---
//

func sendJSONRequest(t *testing.T, method, url string, body any, apiKey string, expectedStatus int) map[string]any {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json.Marshal failed: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("api-key", apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != expectedStatus {
		t.Fatalf("expected %d, got %d: %s", expectedStatus, resp.StatusCode, string(raw))
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("invalid JSON response %q: %v", string(raw), err)
	}
	return decoded
}

func assertBody(t *testing.T, got, want map[string]any) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("response mismatch\n got: %#v\nwant: %#v", got, want)
	}
}

func errorBody(errType, msg string) map[string]any {
	return map[string]any{
		"result":        false,
		"error_type":    errType,
		"error_message": msg,
	}
}

//
// --- Setup test server ---
//

func setupTestServer(t *testing.T) (*httptest.Server, *gorm.DB, string) {
	t.Helper()

	db, err := sqlite.Open("file::memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	seedFixture(t, db)

	mediaDir := t.TempDir()
	store, err := storage.NewLocalStorage(mediaDir, "/static/images")
	if err != nil {
		t.Fatalf("failed to init storage: %v", err)
	}

	validate := validator.New()
	tweetRoutes := handler.NewTweetDefault(service.NewTweetService(db, validate))
	userRoutes := handler.NewUserDefault(service.NewUserService(db))
	mediaRoutes := handler.NewMediaDefault(service.NewMediaService(db, store))

	e := echo.New()
	apiKey := middleware.NewAPIKeyMiddleware()

	e.POST("/api/tweets", tweetRoutes.CreateTweet, apiKey)
	e.GET("/api/tweets", tweetRoutes.GetFeed, apiKey)
	e.DELETE("/api/tweets/:id", tweetRoutes.DeleteTweet, apiKey)
	e.POST("/api/tweets/:id/likes", tweetRoutes.LikeTweet, apiKey)
	e.DELETE("/api/tweets/:id/likes", tweetRoutes.UnlikeTweet, apiKey)
	e.POST("/api/users/:id/follow", userRoutes.Follow, apiKey)
	e.DELETE("/api/users/:id/follow", userRoutes.Unfollow, apiKey)
	e.GET("/api/users/me", userRoutes.GetMe, apiKey)
	e.GET("/api/users/:id", userRoutes.GetUser)
	e.POST("/api/medias", mediaRoutes.AddMedia)

	ts := httptest.NewServer(e)
	t.Cleanup(ts.Close)
	return ts, db, mediaDir
}

// seedFixture loads four users with keys test..test4, their follow graph and
// five tweets at strictly increasing timestamps:
//
//	Irina(1) follows Alex(2), Olga(3); Alex follows Irina, Olga;
//	Olga follows Alex; John(4) follows Irina.
//	tweet1 by Alex, tweet2/tweet3 by Olga, tweet4 by Irina, tweet5 by John.
func seedFixture(t *testing.T, db *gorm.DB) {
	t.Helper()

	users := []*entity.User{{Name: "Irina"}, {Name: "Alex"}, {Name: "Olga"}, {Name: "John"}}
	if err := db.Create(&users).Error; err != nil {
		t.Fatalf("failed to seed users: %v", err)
	}

	apiKeys := []*entity.APIKey{
		{Key: "test", UserID: 1},
		{Key: "test2", UserID: 2},
		{Key: "test3", UserID: 3},
		{Key: "test4", UserID: 4},
	}
	if err := db.Create(&apiKeys).Error; err != nil {
		t.Fatalf("failed to seed api keys: %v", err)
	}

	follows := []*entity.Follow{
		{FollowerUserID: 1, FollowingUserID: 2},
		{FollowerUserID: 1, FollowingUserID: 3},
		{FollowerUserID: 2, FollowingUserID: 1},
		{FollowerUserID: 2, FollowingUserID: 3},
		{FollowerUserID: 3, FollowingUserID: 2},
		{FollowerUserID: 4, FollowingUserID: 1},
	}
	if err := db.Create(&follows).Error; err != nil {
		t.Fatalf("failed to seed follows: %v", err)
	}

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tweets := []*entity.Tweet{
		{Content: "tweet1", DateTime: base.Add(1 * time.Minute), AuthorID: 2},
		{Content: "tweet2", DateTime: base.Add(2 * time.Minute), AuthorID: 3},
		{Content: "tweet3", DateTime: base.Add(3 * time.Minute), AuthorID: 3},
		{Content: "tweet4", DateTime: base.Add(4 * time.Minute), AuthorID: 1},
		{Content: "tweet5", DateTime: base.Add(5 * time.Minute), AuthorID: 4},
	}
	if err := db.Create(&tweets).Error; err != nil {
		t.Fatalf("failed to seed tweets: %v", err)
	}

	one, two := int64(1), int64(2)
	attachments := []*entity.Attachment{
		{Link: "link1", TweetID: &one},
		{Link: "link2", TweetID: &one},
		{Link: "link3", TweetID: &two},
	}
	if err := db.Create(&attachments).Error; err != nil {
		t.Fatalf("failed to seed attachments: %v", err)
	}

	likes := []*entity.Like{
		{TweetID: 3, UserID: 1},
		{TweetID: 4, UserID: 1},
		{TweetID: 1, UserID: 2},
		{TweetID: 4, UserID: 2},
		{TweetID: 2, UserID: 3},
	}
	if err := db.Create(&likes).Error; err != nil {
		t.Fatalf("failed to seed likes: %v", err)
	}
}

//
// --- Tweets ---
//

func TestCreateTweet(t *testing.T) {
	ts, _, _ := setupTestServer(t)

	body := map[string]any{"tweet_data": "test_content"}
	got := sendJSONRequest(t, http.MethodPost, ts.URL+"/api/tweets", body, "test", http.StatusCreated)
	assertBody(t, got, map[string]any{"result": true, "tweet_id": float64(6)})

	body = map[string]any{"tweet_data": "test content", "tweet_media_ids": []int64{}}
	got = sendJSONRequest(t, http.MethodPost, ts.URL+"/api/tweets", body, "test", http.StatusCreated)
	assertBody(t, got, map[string]any{"result": true, "tweet_id": float64(7)})
}

func TestCreateTweetBindsUploadedMedia(t *testing.T) {
	ts, db, _ := setupTestServer(t)

	unbound := &entity.Attachment{Link: "/static/images/pic.png"}
	if err := db.Create(unbound).Error; err != nil {
		t.Fatalf("failed to create attachment: %v", err)
	}

	body := map[string]any{"tweet_data": "with media", "tweet_media_ids": []int64{unbound.ID}}
	got := sendJSONRequest(t, http.MethodPost, ts.URL+"/api/tweets", body, "test", http.StatusCreated)
	tweetID := int64(got["tweet_id"].(float64))

	var bound entity.Attachment
	if err := db.First(&bound, unbound.ID).Error; err != nil {
		t.Fatalf("failed to reload attachment: %v", err)
	}
	if bound.TweetID == nil || *bound.TweetID != tweetID {
		t.Fatalf("attachment not bound to tweet %d: %+v", tweetID, bound)
	}
}

func TestCreateTweetValidation(t *testing.T) {
	ts, _, _ := setupTestServer(t)

	long := make([]byte, 501)
	for i := range long {
		long[i] = 't'
	}
	body := map[string]any{"tweet_data": string(long)}
	got := sendJSONRequest(t, http.MethodPost, ts.URL+"/api/tweets", body, "test", http.StatusUnprocessableEntity)
	if got["result"] != false || got["error_type"] != "ValidationError" {
		t.Fatalf("unexpected validation envelope: %#v", got)
	}

	// the field has to be present
	sendJSONRequest(t, http.MethodPost, ts.URL+"/api/tweets", map[string]any{}, "test", http.StatusUnprocessableEntity)

	// but an empty string is a valid tweet
	body = map[string]any{"tweet_data": ""}
	got = sendJSONRequest(t, http.MethodPost, ts.URL+"/api/tweets", body, "test", http.StatusCreated)
	assertBody(t, got, map[string]any{"result": true, "tweet_id": float64(6)})
}

func TestInvalidIDParam(t *testing.T) {
	ts, _, _ := setupTestServer(t)
	want := errorBody("ValidationError", "Parameter 'id' has invalid type, expected: int")

	got := sendJSONRequest(t, http.MethodDelete, ts.URL+"/api/tweets/abc", nil, "test", http.StatusUnprocessableEntity)
	assertBody(t, got, want)

	got = sendJSONRequest(t, http.MethodPost, ts.URL+"/api/tweets/abc/likes", nil, "test", http.StatusUnprocessableEntity)
	assertBody(t, got, want)

	got = sendJSONRequest(t, http.MethodPost, ts.URL+"/api/users/abc/follow", nil, "test", http.StatusUnprocessableEntity)
	assertBody(t, got, want)

	got = sendJSONRequest(t, http.MethodGet, ts.URL+"/api/users/abc", nil, "", http.StatusUnprocessableEntity)
	assertBody(t, got, want)
}

func TestMissingAPIKey(t *testing.T) {
	ts, _, _ := setupTestServer(t)

	got := sendJSONRequest(t, http.MethodGet, ts.URL+"/api/tweets", nil, "", http.StatusUnprocessableEntity)
	assertBody(t, got, errorBody("ValidationError", "api-key header is required"))
}

func TestDeleteTweet(t *testing.T) {
	ts, db, _ := setupTestServer(t)

	// not the author
	got := sendJSONRequest(t, http.MethodDelete, ts.URL+"/api/tweets/1", nil, "test", http.StatusForbidden)
	assertBody(t, got, errorBody("PermissionError", "You are not author of the tweet"))

	// unknown tweet
	got = sendJSONRequest(t, http.MethodDelete, ts.URL+"/api/tweets/100", nil, "test", http.StatusNotFound)
	assertBody(t, got, errorBody("ValueError", "No such tweet"))

	// the author succeeds, and a second delete is a 404
	got = sendJSONRequest(t, http.MethodDelete, ts.URL+"/api/tweets/4", nil, "test", http.StatusOK)
	assertBody(t, got, map[string]any{"result": true})
	sendJSONRequest(t, http.MethodDelete, ts.URL+"/api/tweets/4", nil, "test", http.StatusNotFound)

	// likes of the deleted tweet are gone
	var likeCount int64
	if err := db.Model(&entity.Like{}).Where("tweet_id = ?", 4).Count(&likeCount).Error; err != nil {
		t.Fatalf("failed to count likes: %v", err)
	}
	if likeCount != 0 {
		t.Fatalf("expected likes of deleted tweet to be removed, found %d", likeCount)
	}
}

func TestLikeLifecycle(t *testing.T) {
	ts, _, _ := setupTestServer(t)

	// Olga likes tweet1, duplicates conflict
	got := sendJSONRequest(t, http.MethodPost, ts.URL+"/api/tweets/1/likes", nil, "test3", http.StatusCreated)
	assertBody(t, got, map[string]any{"result": true})

	got = sendJSONRequest(t, http.MethodPost, ts.URL+"/api/tweets/1/likes", nil, "test3", http.StatusBadRequest)
	assertBody(t, got, errorBody("IntegrityError", "You already liked this tweet"))

	got = sendJSONRequest(t, http.MethodDelete, ts.URL+"/api/tweets/1/likes", nil, "test3", http.StatusOK)
	assertBody(t, got, map[string]any{"result": true})

	got = sendJSONRequest(t, http.MethodDelete, ts.URL+"/api/tweets/1/likes", nil, "test3", http.StatusBadRequest)
	assertBody(t, got, errorBody("IntegrityError", "You didn't like this tweet"))
}

func TestLikeErrors(t *testing.T) {
	ts, _, _ := setupTestServer(t)

	got := sendJSONRequest(t, http.MethodPost, ts.URL+"/api/tweets/100/likes", nil, "test", http.StatusNotFound)
	assertBody(t, got, errorBody("ValueError", "No such tweet"))

	got = sendJSONRequest(t, http.MethodPost, ts.URL+"/api/tweets/4/likes", nil, "test", http.StatusBadRequest)
	assertBody(t, got, errorBody("IntegrityError", "You already liked this tweet"))

	got = sendJSONRequest(t, http.MethodDelete, ts.URL+"/api/tweets/100/likes", nil, "test", http.StatusNotFound)
	assertBody(t, got, errorBody("ValueError", "No such tweet"))

	got = sendJSONRequest(t, http.MethodDelete, ts.URL+"/api/tweets/2/likes", nil, "test", http.StatusBadRequest)
	assertBody(t, got, errorBody("IntegrityError", "You didn't like this tweet"))
}

//
// --- Follow graph ---
//

func TestFollowLifecycle(t *testing.T) {
	ts, _, _ := setupTestServer(t)

	// John follows Alex, duplicates conflict
	got := sendJSONRequest(t, http.MethodPost, ts.URL+"/api/users/2/follow", nil, "test4", http.StatusCreated)
	assertBody(t, got, map[string]any{"result": true})

	got = sendJSONRequest(t, http.MethodPost, ts.URL+"/api/users/2/follow", nil, "test4", http.StatusBadRequest)
	assertBody(t, got, errorBody("IntegrityError", "You already follower this user"))

	got = sendJSONRequest(t, http.MethodDelete, ts.URL+"/api/users/2/follow", nil, "test4", http.StatusOK)
	assertBody(t, got, map[string]any{"result": true})

	got = sendJSONRequest(t, http.MethodDelete, ts.URL+"/api/users/2/follow", nil, "test4", http.StatusBadRequest)
	assertBody(t, got, errorBody("IntegrityError", "You didn't followers this user"))
}

func TestFollowErrors(t *testing.T) {
	ts, _, _ := setupTestServer(t)

	got := sendJSONRequest(t, http.MethodPost, ts.URL+"/api/users/100/follow", nil, "test", http.StatusNotFound)
	assertBody(t, got, errorBody("ValueError", "No such user"))

	got = sendJSONRequest(t, http.MethodPost, ts.URL+"/api/users/3/follow", nil, "test", http.StatusBadRequest)
	assertBody(t, got, errorBody("IntegrityError", "You already follower this user"))

	got = sendJSONRequest(t, http.MethodDelete, ts.URL+"/api/users/100/follow", nil, "test", http.StatusNotFound)
	assertBody(t, got, errorBody("ValueError", "No such user"))

	got = sendJSONRequest(t, http.MethodDelete, ts.URL+"/api/users/4/follow", nil, "test", http.StatusBadRequest)
	assertBody(t, got, errorBody("IntegrityError", "You didn't followers this user"))
}

//
// --- Feed ---
//

func TestGetTweetFeed(t *testing.T) {
	ts, _, _ := setupTestServer(t)

	got := sendJSONRequest(t, http.MethodGet, ts.URL+"/api/tweets", nil, "test", http.StatusOK)
	want := map[string]any{
		"result": true,
		"tweets": []any{
			map[string]any{
				"id":          float64(4),
				"content":     "tweet4",
				"attachments": []any{},
				"author":      map[string]any{"id": float64(1), "name": "Irina"},
				"likes": []any{
					map[string]any{"user_id": float64(1), "name": "Irina"},
					map[string]any{"user_id": float64(2), "name": "Alex"},
				},
			},
			map[string]any{
				"id":          float64(3),
				"content":     "tweet3",
				"attachments": []any{},
				"author":      map[string]any{"id": float64(3), "name": "Olga"},
				"likes":       []any{map[string]any{"user_id": float64(1), "name": "Irina"}},
			},
			map[string]any{
				"id":          float64(2),
				"content":     "tweet2",
				"attachments": []any{"link3"},
				"author":      map[string]any{"id": float64(3), "name": "Olga"},
				"likes":       []any{map[string]any{"user_id": float64(3), "name": "Olga"}},
			},
			map[string]any{
				"id":          float64(1),
				"content":     "tweet1",
				"attachments": []any{"link1", "link2"},
				"author":      map[string]any{"id": float64(2), "name": "Alex"},
				"likes":       []any{map[string]any{"user_id": float64(2), "name": "Alex"}},
			},
		},
	}
	assertBody(t, got, want)
}

//
// --- Profiles ---
//

func TestGetUserInfoAboutSelf(t *testing.T) {
	ts, _, _ := setupTestServer(t)

	got := sendJSONRequest(t, http.MethodGet, ts.URL+"/api/users/me", nil, "test", http.StatusOK)
	want := map[string]any{
		"result": true,
		"user": map[string]any{
			"id":   float64(1),
			"name": "Irina",
			"followers": []any{
				map[string]any{"id": float64(2), "name": "Alex"},
				map[string]any{"id": float64(4), "name": "John"},
			},
			"following": []any{
				map[string]any{"id": float64(2), "name": "Alex"},
				map[string]any{"id": float64(3), "name": "Olga"},
			},
		},
	}
	assertBody(t, got, want)
}

func TestGetUserInfoAboutAnother(t *testing.T) {
	ts, _, _ := setupTestServer(t)

	got := sendJSONRequest(t, http.MethodGet, ts.URL+"/api/users/2", nil, "", http.StatusOK)
	want := map[string]any{
		"result": true,
		"user": map[string]any{
			"id":   float64(2),
			"name": "Alex",
			"followers": []any{
				map[string]any{"id": float64(1), "name": "Irina"},
				map[string]any{"id": float64(3), "name": "Olga"},
			},
			"following": []any{
				map[string]any{"id": float64(1), "name": "Irina"},
				map[string]any{"id": float64(3), "name": "Olga"},
			},
		},
	}
	assertBody(t, got, want)

	got = sendJSONRequest(t, http.MethodGet, ts.URL+"/api/users/100", nil, "", http.StatusNotFound)
	assertBody(t, got, errorBody("ValueError", "No such user"))
}

//
// --- Media ---
//

func TestAddFileMedia(t *testing.T) {
	ts, db, mediaDir := setupTestServer(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "picture.png")
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := part.Write([]byte("png-bytes")); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	writer.Close()

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/medias", &buf)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(raw))
	}

	var got map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if got["result"] != true {
		t.Fatalf("unexpected body: %#v", got)
	}

	mediaID := int64(got["media_id"].(float64))
	var attachment entity.Attachment
	if err := db.First(&attachment, mediaID).Error; err != nil {
		t.Fatalf("attachment row not created: %v", err)
	}
	if attachment.TweetID != nil {
		t.Fatalf("fresh attachment should be unbound, got tweet %d", *attachment.TweetID)
	}

	stored := filepath.Join(mediaDir, filepath.Base(attachment.Link))
	if _, err := os.Stat(stored); err != nil {
		t.Fatalf("stored file missing at %s: %v", stored, err)
	}
}

func TestAddFileMediaMissingFile(t *testing.T) {
	ts, _, _ := setupTestServer(t)

	got := sendJSONRequest(t, http.MethodPost, ts.URL+"/api/medias", nil, "", http.StatusUnprocessableEntity)
	assertBody(t, got, errorBody("ValidationError", "file field is required"))
}
