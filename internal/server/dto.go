package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"autoblog/internal/apperr"
	"autoblog/internal/core"
)

// flexInt accepts 1200 and "1200". Fractions and values outside the
// int32 range are rejected.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*n = 0
			return nil
		}
		v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
		if err != nil {
			return fmt.Errorf("%q is not a whole number in range", s)
		}
		*n = flexInt(v)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("%s is not a number", data)
	}
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return fmt.Errorf("%s is not a whole number in range", data)
	}
	*n = flexInt(f)
	return nil
}

// flexBool is true only for true and "true".
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	s := string(bytes.TrimSpace(data))
	*b = flexBool(s == "true" || s == `"true"`)
	return nil
}

type generationRequest struct {
	Topic                 string   `json:"topic"`
	Keywords              []string `json:"keywords"`
	TargetWordCount       flexInt  `json:"targetWordCount"`
	Tone                  string   `json:"tone"`
	IncludeRegulatoryInfo flexBool `json:"includeRegulatoryInfo"`
	SelectedLinks         []string `json:"selectedLinks"`
}

func decodeGenerationRequest(body []byte) (core.GenerationRequest, error) {
	var dto generationRequest
	if err := json.Unmarshal(body, &dto); err != nil {
		return core.GenerationRequest{}, apperr.NewValidationError("body", err.Error())
	}
	return core.GenerationRequest{
		Topic:                 strings.TrimSpace(dto.Topic),
		Keywords:              dto.Keywords,
		TargetWordCount:       int(dto.TargetWordCount),
		Tone:                  core.Tone(dto.Tone),
		IncludeRegulatoryInfo: bool(dto.IncludeRegulatoryInfo),
		SelectedLinks:         dto.SelectedLinks,
	}, nil
}

// blogPost is a post posted back by a client for download.
type blogPost struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Content     string   `json:"content"`
	Topic       string   `json:"topic"`
	Keywords    []string `json:"keywords"`
	WordCount   flexInt  `json:"wordCount"`
	ReadingTime flexInt  `json:"readingTime"`
	Status      string   `json:"status"`
	CreatedAt   string   `json:"createdAt"`
}

func decodeBlogPost(body []byte) (*core.GeneratedPost, error) {
	var dto blogPost
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, apperr.NewValidationError("body", err.Error())
	}
	if strings.TrimSpace(dto.Title) == "" {
		return nil, apperr.NewValidationError("title", "title is required")
	}

	created := time.Now().UTC()
	if t, err := time.Parse(time.RFC3339, dto.CreatedAt); err == nil {
		created = t
	}
	return &core.GeneratedPost{
		ID:          dto.ID,
		Title:       dto.Title,
		Summary:     dto.Summary,
		Content:     dto.Content,
		Topic:       dto.Topic,
		Keywords:    dto.Keywords,
		WordCount:   int(dto.WordCount),
		ReadingTime: int(dto.ReadingTime),
		Status:      core.PostStatus(dto.Status),
		CreatedAt:   created,
	}, nil
}
