package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"vidtube/internal/api/dto"
	"vidtube/internal/repository"
	"vidtube/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

// SearchFunc 执行 ES 查询，生产环境为 elasticsearch.Search
type SearchFunc func(ctx context.Context, index string, body io.Reader) (*esapi.Response, error)

type SearchService struct {
	videoRepo *repository.VideoRepository
	search    SearchFunc
	index     string
}

func NewSearchService(videoRepo *repository.VideoRepository, search SearchFunc, index string) *SearchService {
	return &SearchService{videoRepo: videoRepo, search: search, index: index}
}

// SearchVideos 搜索已公开视频（ES 优先，失败则降级到 DB）
func (s *SearchService) SearchVideos(ctx context.Context, req *dto.SearchVideoRequest) (*dto.SearchVideoData, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}
	req.Q = strings.TrimSpace(req.Q)

	if s.search != nil {
		data, err := s.searchFromES(ctx, req)
		if err == nil {
			return data, nil
		}
		logger.Warn("ES search failed, fallback to DB", zap.Error(err))
	}
	return s.searchFromDB(req)
}

func (s *SearchService) searchFromES(ctx context.Context, req *dto.SearchVideoRequest) (*dto.SearchVideoData, error) {
	queryJSON, err := json.Marshal(buildESQuery(req))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := s.search(ctx, s.index, bytes.NewReader(queryJSON))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("ES search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source struct {
					ID int64 `json:"id"`
				} `json:"_source"`
				Highlight map[string][]string `json:"highlight"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	videoIDs := make([]int64, 0, len(esResp.Hits.Hits))
	highlights := make(map[int64]map[string][]string)
	for _, h := range esResp.Hits.Hits {
		videoIDs = append(videoIDs, h.Source.ID)
		if len(h.Highlight) > 0 {
			highlights[h.Source.ID] = h.Highlight
		}
	}

	rows, err := s.videoRepo.ListRowsByIDs(videoIDs)
	if err != nil {
		return nil, err
	}

	// 按 ES 返回顺序回表，索引滞后导致的未公开/已删除视频直接跳过
	rowMap := make(map[int64]*repository.VideoRow, len(rows))
	for i := range rows {
		rowMap[rows[i].ID] = &rows[i]
	}
	ordered := make([]repository.VideoRow, 0, len(videoIDs))
	for _, id := range videoIDs {
		if r, ok := rowMap[id]; ok && r.IsPublished {
			ordered = append(ordered, *r)
		}
	}

	return buildSearchData(ordered, highlights, esResp.Hits.Total.Value, req.Page, req.PageSize), nil
}

func buildESQuery(req *dto.SearchVideoRequest) map[string]interface{} {
	boolQ := map[string]interface{}{
		"filter": []interface{}{},
		"must":   []interface{}{},
	}

	if req.Q != "" {
		boolQ["must"] = []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":                req.Q,
					"fields":               []string{"title^3", "description^1", "owner_name"},
					"type":                 "best_fields",
					"operator":             "or",
					"minimum_should_match": "50%",
				},
			},
		}
	}
	if req.OwnerID != nil {
		boolQ["filter"] = append(boolQ["filter"].([]interface{}),
			map[string]interface{}{"term": map[string]interface{}{"owner_id": *req.OwnerID}})
	}

	var sortConfig []interface{}
	switch req.Sort {
	case "time":
		sortConfig = append(sortConfig, map[string]interface{}{"created_at": map[string]string{"order": "desc"}})
	case "views":
		sortConfig = append(sortConfig, map[string]interface{}{"views": map[string]string{"order": "desc"}})
	default:
		sortConfig = append(sortConfig,
			map[string]interface{}{"_score": map[string]string{"order": "desc"}},
			map[string]interface{}{"created_at": map[string]string{"order": "desc"}},
		)
	}

	query := map[string]interface{}{
		"query":   map[string]interface{}{"bool": boolQ},
		"_source": []string{"id"},
		"from":    (req.Page - 1) * req.PageSize,
		"size":    req.PageSize,
		"sort":    sortConfig,
	}

	if req.Q != "" {
		query["highlight"] = map[string]interface{}{
			"fields": map[string]interface{}{
				"title":       map[string]interface{}{},
				"description": map[string]interface{}{},
			},
			"pre_tags":  []string{"<em>"},
			"post_tags": []string{"</em>"},
		}
	}
	return query
}

func (s *SearchService) searchFromDB(req *dto.SearchVideoRequest) (*dto.SearchVideoData, error) {
	sortBy := "created_at"
	if req.Sort == "views" {
		sortBy = "views"
	}

	rows, total, err := s.videoRepo.ListVideos(repository.VideoFilter{
		OwnerID:       req.OwnerID,
		Search:        req.Q,
		PublishedOnly: true,
		SortBy:        sortBy,
		SortDesc:      true,
		Skip:          (req.Page - 1) * req.PageSize,
		Limit:         req.PageSize,
	})
	if err != nil {
		return nil, err
	}
	return buildSearchData(rows, nil, total, req.Page, req.PageSize), nil
}

func buildSearchData(rows []repository.VideoRow, highlights map[int64]map[string][]string, total int64, page, pageSize int) *dto.SearchVideoData {
	items := make([]dto.SearchVideoInfo, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.SearchVideoInfo{
			ID:          r.ID,
			OwnerID:     r.OwnerID,
			OwnerName:   r.OwnerUsername,
			Title:       r.Title,
			Description: r.Description,
			VideoFile:   r.VideoFile,
			Thumbnail:   r.Thumbnail,
			Duration:    r.Duration,
			Views:       r.Views,
			Highlight:   highlights[r.ID],
		})
	}

	return &dto.SearchVideoData{
		Videos:     items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}
}
