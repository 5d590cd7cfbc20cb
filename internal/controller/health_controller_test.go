package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"online_course_backend/internal/config"
	"online_course_backend/internal/util"
	"online_course_backend/pkg/database"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := database.InitDB(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "health.db"),
	})
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}

	r := gin.New()
	r.GET("/api/health", NewHealthController(db).HealthCheck)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d body=%s", w.Code, w.Body.String())
	}

	var resp util.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	data, _ := resp.Data.(map[string]interface{})
	if data["status"] != "ok" {
		t.Fatalf("status field: %+v", resp)
	}

	// 关闭连接后应返回 503
	sqlDB, _ := db.DB()
	sqlDB.Close()

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("closed db: want=503 got=%d", w.Code)
	}
}
