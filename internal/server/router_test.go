package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Diapolo10/5G00EV25-3001-server/internal/config"
	"github.com/Diapolo10/5G00EV25-3001-server/internal/db"
	"github.com/Diapolo10/5G00EV25-3001-server/internal/ws"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	roomRoot = "/api/v1/rooms"
	userRoot = "/api/v1/users"
)

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{
		Port:             "0",
		DatabaseDSN:      "test",
		Env:              "test",
		MinMessageLength: config.DefaultMinMessageLength,
		MaxMessageLength: config.DefaultMaxMessageLength,
	}
	gdb, err := db.ConnectSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return SetupRouter(cfg, gdb, ws.NewHub())
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	engine := setupTestServer(t)

	w := doJSON(t, engine, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRootHelloWorld(t *testing.T) {
	engine := setupTestServer(t)

	w := doJSON(t, engine, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"hello": "Hello, world!"}`, w.Body.String())
}

func TestRobotsTxt(t *testing.T) {
	engine := setupTestServer(t)

	w := doJSON(t, engine, http.MethodGet, "/robots.txt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "User-agent")
}

func TestRoomLifecycle(t *testing.T) {
	engine := setupTestServer(t)
	roomID := uuid.New()

	body := map[string]any{"id": roomID, "name": "Test", "public": true}
	w := doJSON(t, engine, http.MethodPost, roomRoot, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 同一载荷再次创建是冲突而不是 no-op。
	w = doJSON(t, engine, http.MethodPost, roomRoot, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, engine, http.MethodGet, fmt.Sprintf("%s/%s", roomRoot, roomID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodGet, roomRoot, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rooms []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rooms))
	assert.Len(t, rooms, 1)

	w = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("%s/%s", roomRoot, roomID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, engine, http.MethodGet, fmt.Sprintf("%s/%s", roomRoot, roomID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 删除是幂等的，目标已经没了照样 204。
	w = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("%s/%s", roomRoot, roomID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRoomValidation(t *testing.T) {
	engine := setupTestServer(t)

	// 没有房主的私有房间必须被校验层拒绝。
	body := map[string]any{"id": uuid.New(), "name": "Private", "public": false}
	w := doJSON(t, engine, http.MethodPost, roomRoot, body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

	body["owner"] = uuid.New().String()
	w = doJSON(t, engine, http.MethodPost, roomRoot, body)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestMessageLifecycle(t *testing.T) {
	engine := setupTestServer(t)
	roomID := uuid.New()
	messageID := uuid.New()
	userID := uuid.New()

	w := doJSON(t, engine, http.MethodPost, roomRoot, map[string]any{"id": roomID, "name": "Test", "public": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	msgBody := map[string]any{"id": messageID, "user_id": userID, "message": "hi"}
	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("%s/%s", roomRoot, roomID), msgBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("%s/%s", roomRoot, roomID), msgBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	msgPath := fmt.Sprintf("%s/%s/messages/%s", roomRoot, roomID, messageID)

	w = doJSON(t, engine, http.MethodGet, msgPath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "hi", got["message"])
	assert.Nil(t, got["last_edited"])

	w = doJSON(t, engine, http.MethodPut, msgPath, map[string]any{"message": "bye"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, engine, http.MethodGet, msgPath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "bye", got["message"])
	assert.NotNil(t, got["last_edited"])

	w = doJSON(t, engine, http.MethodDelete, msgPath, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, engine, http.MethodGet, msgPath, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMessageValidation(t *testing.T) {
	engine := setupTestServer(t)
	roomID := uuid.New()

	w := doJSON(t, engine, http.MethodPost, roomRoot, map[string]any{"id": roomID, "name": "Test", "public": true})
	require.Equal(t, http.StatusOK, w.Code)

	// 空消息低于长度下限。
	body := map[string]any{"id": uuid.New(), "user_id": uuid.New(), "message": ""}
	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("%s/%s", roomRoot, roomID), body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
}

func TestMessageUpdateNonexistent(t *testing.T) {
	engine := setupTestServer(t)

	path := fmt.Sprintf("%s/%s/messages/%s", roomRoot, uuid.New(), uuid.New())
	w := doJSON(t, engine, http.MethodPut, path, map[string]any{"message": "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserLifecycle(t *testing.T) {
	engine := setupTestServer(t)
	userID := uuid.New()

	body := map[string]any{"id": userID, "username": "tester", "email": "tester@example.com", "password": "hunter2"}
	w := doJSON(t, engine, http.MethodPost, userRoot, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotContains(t, created, "password")
	assert.NotContains(t, created, "password_hash")

	// 同 ID 再注册一次是冲突。
	w = doJSON(t, engine, http.MethodPost, userRoot, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 同邮箱不同 ID 同样是冲突。
	body["id"] = uuid.New()
	w = doJSON(t, engine, http.MethodPost, userRoot, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	userPath := fmt.Sprintf("%s/%s", userRoot, userID)

	w = doJSON(t, engine, http.MethodGet, userPath, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodPut, userPath, map[string]any{"username": "renamed", "email": "tester@example.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "renamed", updated["username"])

	w = doJSON(t, engine, http.MethodDelete, userPath, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, engine, http.MethodGet, userPath, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, engine, http.MethodDelete, userPath, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestUserUpdateEmailMismatch(t *testing.T) {
	engine := setupTestServer(t)
	userID := uuid.New()

	body := map[string]any{"id": userID, "username": "tester", "email": "real@example.com", "password": "hunter2"}
	w := doJSON(t, engine, http.MethodPost, userRoot, body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, engine, http.MethodPut, fmt.Sprintf("%s/%s", userRoot, userID),
		map[string]any{"username": "renamed", "email": "wrong@example.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserListPagination(t *testing.T) {
	engine := setupTestServer(t)

	for i := 0; i < 5; i++ {
		body := map[string]any{
			"id":       uuid.New(),
			"username": "tester",
			"email":    fmt.Sprintf("user%d@example.com", i),
			"password": "hunter2",
		}
		w := doJSON(t, engine, http.MethodPost, userRoot, body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	mails := func(users []map[string]any) []string {
		out := make([]string, 0, len(users))
		for _, u := range users {
			out = append(out, u["email"].(string))
		}
		return out
	}

	w := doJSON(t, engine, http.MethodGet, userRoot, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 5)

	// 切片必须恰好是存储顺序下偏移 1..3 的那三个用户。
	w = doJSON(t, engine, http.MethodGet, userRoot+"?skip=1&limit=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var users []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Equal(t, mails(all)[1:4], mails(users))

	w = doJSON(t, engine, http.MethodGet, userRoot+"?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Equal(t, mails(all)[:1], mails(users))
}

func TestMembershipEndpoints(t *testing.T) {
	engine := setupTestServer(t)
	roomID := uuid.New()
	userID := uuid.New()

	w := doJSON(t, engine, http.MethodPost, roomRoot, map[string]any{"id": roomID, "name": "Test", "public": true})
	require.Equal(t, http.StatusOK, w.Code)

	memberPath := fmt.Sprintf("%s/%s/users/%s", roomRoot, roomID, userID)

	w = doJSON(t, engine, http.MethodPost, memberPath, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	// 重复加入同样 204。
	w = doJSON(t, engine, http.MethodPost, memberPath, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, engine, http.MethodGet, fmt.Sprintf("%s/%s/users", roomRoot, roomID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var members []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &members))
	require.Len(t, members, 1)
	assert.Equal(t, userID.String(), members[0])

	w = doJSON(t, engine, http.MethodDelete, memberPath, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, engine, http.MethodGet, fmt.Sprintf("%s/%s/users", roomRoot, roomID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &members))
	assert.Empty(t, members)
}

func TestInvalidUUIDPath(t *testing.T) {
	engine := setupTestServer(t)

	w := doJSON(t, engine, http.MethodGet, roomRoot+"/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginLogoutStubs(t *testing.T) {
	engine := setupTestServer(t)

	body := map[string]any{"id": uuid.New(), "username": "tester", "email": "tester@example.com"}
	w := doJSON(t, engine, http.MethodPost, userRoot+"/login", body)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodPost, userRoot+"/logout", body)
	assert.Equal(t, http.StatusOK, w.Code)
}
