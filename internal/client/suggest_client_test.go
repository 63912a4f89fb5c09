package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikita2423/approval-bff/internal/client"
	"github.com/nikita2423/approval-bff/internal/model"
)

// TestSuggestClient_Suggest 请求编码与响应解码
func TestSuggestClient_Suggest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/suggest/justification", r.URL.Path)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		matches, ok := payload["similar_matches"].([]interface{})
		require.True(t, ok)
		assert.Len(t, matches, 1)

		// current_case 是产品数组
		products, ok := payload["current_case"].([]interface{})
		require.True(t, ok)
		assert.Len(t, products, 1)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"justification":"Approved: complete documentation."}}`))
	}))
	defer server.Close()

	c := client.NewSuggestClient(server.URL)
	resp, err := c.Suggest(context.Background(), &client.SuggestRequest{
		SimilarMatches: []model.MatchContext{{Justify: "prior approval", ProdName: "Old Toy"}},
		CurrentCase:    []interface{}{map[string]interface{}{"product_name": "Toy Car"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Approved: complete documentation.", resp.Data.Justification)
}

// TestSuggestClient_NilCollections nil 的集合字段序列化为空集合而不是 null
func TestSuggestClient_NilCollections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.JSONEq(t, `[]`, string(payload["similar_matches"]))
		assert.JSONEq(t, `{}`, string(payload["application_data"]))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"justification":"ok"}}`))
	}))
	defer server.Close()

	c := client.NewSuggestClient(server.URL)
	resp, err := c.Suggest(context.Background(), &client.SuggestRequest{CurrentCase: []interface{}{}})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Data.Justification)
}
