// Package ai proxies text generation requests to the configured
// upstream so the API key never reaches the frontend.
package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

type generateBody struct {
	Message string `json:"message"`
}

type upstreamRequest struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
}

type upstreamResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func Generate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data generateBody
	if err := c.ShouldBind(&data); err != nil || data.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No message provided",
			"requestID": requestID,
		})
		return
	}

	apiKey := viper.GetString("ai.api_key")
	endpoint := viper.GetString("ai.endpoint")
	if apiKey == "" || endpoint == "" {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "AI service not configured",
			"requestID": requestID,
		})
		return
	}

	var reqBody upstreamRequest
	reqBody.Contents = make([]struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	}, 1)
	reqBody.Contents[0].Parts = make([]struct {
		Text string `json:"text"`
	}, 1)
	reqBody.Contents[0].Parts[0].Text = data.Message

	payload, err := json.Marshal(reqBody)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})
		return
	}

	url := fmt.Sprintf("%s?key=%s", endpoint, apiKey)
	resp, err := httpClient.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to generate response",
			"requestID": requestID,
		})

		zap.L().Error("AI upstream call failed", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to generate response",
			"requestID": requestID,
		})

		zap.L().Error("AI upstream returned non-200", zap.Int("status", resp.StatusCode), zap.String("requestID", requestID))
		return
	}

	var result upstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to generate response",
			"requestID": requestID,
		})

		zap.L().Error("Failed to decode AI upstream response", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	text := "Sorry, I couldn't generate a response."
	if len(result.Candidates) > 0 && len(result.Candidates[0].Content.Parts) > 0 {
		text = result.Candidates[0].Content.Parts[0].Text
	}

	c.JSON(http.StatusOK, gin.H{
		"response":  text,
		"requestID": requestID,
	})
}
