package ginmw_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	share "github.com/emlinh-ai/emlinh-ai-share"
	"github.com/emlinh-ai/emlinh-ai-share/middleware"
	ginmw "github.com/emlinh-ai/emlinh-ai-share/middleware/gin"
	"github.com/emlinh-ai/emlinh-ai-share/source/cborsrc"
	"github.com/emlinh-ai/emlinh-ai-share/types"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/messages", ginmw.ValidateJSON(types.CreateMessageSchema), func(c *gin.Context) {
		dm, ok := ginmw.GetDecoded[types.CreateMessage](c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"type":   dm.Value.Content.ContentType(),
			"status": dm.Value.Status,
		})
	})
	return r
}

func TestValidateJSON_CBORBody(t *testing.T) {
	body, err := cborsrc.Marshal(map[string]any{
		"conversationId": "6ba7b812-9dad-11d1-80b4-00c04fd430c8",
		"role":           "user",
		"content":        map[string]any{"type": "image", "imageUrl": "https://cdn.example.com/cat.png"},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/cbor")
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "image", got["type"])
	assert.Equal(t, "sent", got["status"])
}

func TestValidateJSON_AbortsOnIssues(t *testing.T) {
	body := `{"conversationId": "c-1", "role": "user", "content": {"type": "audio"}}`
	req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var got middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Issues, 2)
	assert.Equal(t, "/conversationId", got.Issues[0].Path)
	assert.Equal(t, share.CodeInvalidFormat, got.Issues[0].Code)
	assert.Equal(t, "/content/type", got.Issues[1].Path)
	assert.Equal(t, share.CodeUnrecognizedVariant, got.Issues[1].Code)
	assert.Equal(t, "one of text|image|file|code|system", got.Issues[1].Expected)
}

func TestValidateJSON_Malformed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(`{"role": `))
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var got middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Issues, 1)
	assert.Equal(t, share.CodeParseError, got.Issues[0].Code)
}
